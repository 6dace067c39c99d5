package repository

import (
	"bible_trivia_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Create(ctx context.Context, progress *model.Progress) error {
	return r.DB.WithContext(ctx).Create(progress).Error
}

// CreateBatch writes one submission's records atomically.
func (r *ProgressRepository) CreateBatch(ctx context.Context, records []model.Progress) error {
	if len(records) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
}

func (r *ProgressRepository) FindByUser(ctx context.Context, userID uint) ([]model.Progress, error) {
	var records []model.Progress
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&records).Error
	return records, err
}

// SectionPerformance counts a user's answers in a section. Unsure answers are
// counted on their own and never as incorrect.
func (r *ProgressRepository) SectionPerformance(ctx context.Context, userID, sectionID uint) (*model.SectionPerformance, error) {
	var perf model.SectionPerformance
	err := r.DB.WithContext(ctx).
		Model(&model.Progress{}).
		Select(`COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) AS total_correct,
			COALESCE(SUM(CASE WHEN NOT is_correct AND NOT is_unsure THEN 1 ELSE 0 END), 0) AS total_incorrect,
			COALESCE(SUM(CASE WHEN is_unsure THEN 1 ELSE 0 END), 0) AS total_unsure`).
		Where("user_id = ? AND section_id = ?", userID, sectionID).
		Scan(&perf).Error
	if err != nil {
		return nil, err
	}
	return &perf, nil
}
