package repository

import (
	"bible_trivia_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type SectionRepository struct {
	DB *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

func (r *SectionRepository) Create(ctx context.Context, section *model.Section) error {
	return r.DB.WithContext(ctx).Create(section).Error
}

func (r *SectionRepository) FindByID(ctx context.Context, id uint) (*model.Section, error) {
	var section model.Section
	if err := r.DB.WithContext(ctx).First(&section, id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *SectionRepository) FindByName(ctx context.Context, name string) (*model.Section, error) {
	var section model.Section
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// ListWithCounts returns every section with the number of questions it owns.
func (r *SectionRepository) ListWithCounts(ctx context.Context) ([]model.SectionSummary, error) {
	var summaries []model.SectionSummary
	err := r.DB.WithContext(ctx).
		Table("sections").
		Select("sections.id, sections.name, sections.description, COUNT(questions.id) AS question_count").
		Joins("LEFT JOIN questions ON questions.section_id = sections.id").
		Group("sections.id, sections.name, sections.description").
		Order("sections.id ASC").
		Scan(&summaries).Error
	return summaries, err
}

func (r *SectionRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Section{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
