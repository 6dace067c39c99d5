package repository

import (
	"bible_trivia_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func maxAttempt(db *gorm.DB, userID, sectionID uint) (int, error) {
	var max int
	err := db.Model(&model.Score{}).
		Where("user_id = ? AND section_id = ?", userID, sectionID).
		Select("COALESCE(MAX(attempt_number), 0)").
		Scan(&max).Error
	return max, err
}

// NextAttemptNumber is one past the highest recorded attempt, or 1 for a fresh pair.
func (r *ScoreRepository) NextAttemptNumber(ctx context.Context, userID, sectionID uint) (int, error) {
	max, err := maxAttempt(r.DB.WithContext(ctx), userID, sectionID)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Create inserts a score with a caller-chosen attempt number.
// A collision surfaces as a duplicate-key error.
func (r *ScoreRepository) Create(ctx context.Context, score *model.Score) error {
	return r.DB.WithContext(ctx).Create(score).Error
}

// CreateNextAttempt assigns max+1 and inserts inside one transaction.
// The unique index still rejects a concurrent writer that read the same max.
func (r *ScoreRepository) CreateNextAttempt(ctx context.Context, score *model.Score) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		max, err := maxAttempt(tx, score.UserID, score.SectionID)
		if err != nil {
			return err
		}
		score.AttemptNumber = max + 1
		return tx.Create(score).Error
	})
}

func (r *ScoreRepository) CountAttempts(ctx context.Context, userID, sectionID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Score{}).
		Where("user_id = ? AND section_id = ?", userID, sectionID).
		Count(&count).Error
	return count, err
}

func (r *ScoreRepository) FindByUser(ctx context.Context, userID uint) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("section_id ASC, attempt_number ASC").
		Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) FindBySection(ctx context.Context, sectionID uint) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("score DESC, id ASC").
		Find(&scores).Error
	return scores, err
}
