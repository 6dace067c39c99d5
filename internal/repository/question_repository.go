package repository

import (
	"bible_trivia_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.DB.WithContext(ctx).Create(question).Error
}

// CreateBatch inserts all questions in one transaction.
func (r *QuestionRepository) CreateBatch(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&questions, 100).Error
	})
}

func (r *QuestionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) FindAll(ctx context.Context) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&questions).Error
	return questions, err
}

// FindBySection lists a section's questions, optionally narrowed to one difficulty.
func (r *QuestionRepository) FindBySection(ctx context.Context, sectionID uint, difficulty model.Difficulty) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.WithContext(ctx).Where("section_id = ?", sectionID)
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	err := query.Order("id ASC").Find(&questions).Error
	return questions, err
}

// FindByIDsInSection loads the given questions that belong to sectionID, keyed by id.
func (r *QuestionRepository) FindByIDsInSection(ctx context.Context, sectionID uint, ids []uint) (map[uint]model.Question, error) {
	result := make(map[uint]model.Question, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var questions []model.Question
	if err := r.DB.WithContext(ctx).
		Where("section_id = ? AND id IN ?", sectionID, ids).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	for _, q := range questions {
		result[q.ID] = q
	}
	return result, nil
}

// DistinctBibleTexts returns the section's non-empty reference texts without repeats.
func (r *QuestionRepository) DistinctBibleTexts(ctx context.Context, sectionID uint) ([]string, error) {
	var texts []string
	err := r.DB.WithContext(ctx).
		Model(&model.Question{}).
		Where("section_id = ? AND bible_text IS NOT NULL AND bible_text <> ''", sectionID).
		Distinct("bible_text").
		Order("bible_text ASC").
		Pluck("bible_text", &texts).Error
	return texts, err
}
