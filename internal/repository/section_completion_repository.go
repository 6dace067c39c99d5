package repository

import (
	"bible_trivia_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type SectionCompletionRepository struct {
	DB *gorm.DB
}

func NewSectionCompletionRepository(db *gorm.DB) *SectionCompletionRepository {
	return &SectionCompletionRepository{DB: db}
}

func (r *SectionCompletionRepository) Create(ctx context.Context, completion *model.SectionCompletion) error {
	return r.DB.WithContext(ctx).Create(completion).Error
}

func (r *SectionCompletionRepository) FindByUserAndSection(ctx context.Context, userID, sectionID uint) ([]model.SectionCompletion, error) {
	var completions []model.SectionCompletion
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND section_id = ?", userID, sectionID).
		Order("date_completed DESC, id DESC").
		Find(&completions).Error
	return completions, err
}
