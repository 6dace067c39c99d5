package repository

import (
	"bible_trivia_backend/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BibleVerseRepository struct {
	DB *gorm.DB
}

func NewBibleVerseRepository(db *gorm.DB) *BibleVerseRepository {
	return &BibleVerseRepository{DB: db}
}

func (r *BibleVerseRepository) Create(ctx context.Context, verse *model.BibleVerse) error {
	return r.DB.WithContext(ctx).Create(verse).Error
}

func (r *BibleVerseRepository) Update(ctx context.Context, verse *model.BibleVerse) error {
	return r.DB.WithContext(ctx).Save(verse).Error
}

func (r *BibleVerseRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&model.BibleVerse{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BibleVerseRepository) FindByID(ctx context.Context, id uint) (*model.BibleVerse, error) {
	var verse model.BibleVerse
	if err := r.DB.WithContext(ctx).First(&verse, id).Error; err != nil {
		return nil, err
	}
	return &verse, nil
}

func (r *BibleVerseRepository) FindByKey(ctx context.Context, key model.VerseKey) (*model.BibleVerse, error) {
	var verse model.BibleVerse
	err := r.DB.WithContext(ctx).
		Where("book_name = ? AND chapter = ? AND verse = ? AND version = ?", key.BookName, key.Chapter, key.Verse, key.Version).
		First(&verse).Error
	if err != nil {
		return nil, err
	}
	return &verse, nil
}

func (r *BibleVerseRepository) List(ctx context.Context, skip, limit int) ([]model.BibleVerse, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.BibleVerse{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var verses []model.BibleVerse
	err := r.DB.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&verses).Error
	return verses, total, err
}

// ExistingKeys reports which of keys are already stored.
func (r *BibleVerseRepository) ExistingKeys(ctx context.Context, keys []model.VerseKey) (map[model.VerseKey]bool, error) {
	existing := make(map[model.VerseKey]bool)
	if len(keys) == 0 {
		return existing, nil
	}
	books := make(map[string]bool)
	var bookNames []string
	for _, k := range keys {
		if !books[k.BookName] {
			books[k.BookName] = true
			bookNames = append(bookNames, k.BookName)
		}
	}
	var verses []model.BibleVerse
	if err := r.DB.WithContext(ctx).
		Select("book_name", "chapter", "verse", "version").
		Where("book_name IN ?", bookNames).
		Find(&verses).Error; err != nil {
		return nil, err
	}
	for i := range verses {
		existing[verses[i].Key()] = true
	}
	return existing, nil
}

// CreateBatch inserts verses in one transaction and returns the positions of
// those whose reference was already taken, including by a concurrent writer.
// Those verses are left unsaved.
func (r *BibleVerseRepository) CreateBatch(ctx context.Context, verses []model.BibleVerse) ([]int, error) {
	if len(verses) == 0 {
		return nil, nil
	}
	var conflicts []int
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conflicts = conflicts[:0]
		for i := range verses {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&verses[i])
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				conflicts = append(conflicts, i)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conflicts, nil
}
