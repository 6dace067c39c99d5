package service

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/repository"
	"bible_trivia_backend/internal/util"
	"context"
)

type ProgressInput struct {
	SectionID  uint `json:"section_id" binding:"required"`
	QuestionID uint `json:"question_id" binding:"required"`
	IsCorrect  bool `json:"is_correct"`
	IsUnsure   bool `json:"is_unsure"`
}

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	QuestionRepo *repository.QuestionRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, questionRepo *repository.QuestionRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		QuestionRepo: questionRepo,
	}
}

// Record stores a single progress row. The unsure flag is kept as given.
func (s *ProgressService) Record(ctx context.Context, userID uint, in ProgressInput) (*model.Progress, error) {
	question, err := s.QuestionRepo.FindByID(ctx, in.QuestionID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if question.SectionID != in.SectionID {
		return nil, util.NewValidationError("question_id", "question %d is not in section %d", in.QuestionID, in.SectionID)
	}

	progress := &model.Progress{
		UserID:     userID,
		SectionID:  in.SectionID,
		QuestionID: in.QuestionID,
		IsCorrect:  in.IsCorrect,
		IsUnsure:   in.IsUnsure,
	}
	if err := s.ProgressRepo.Create(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *ProgressService) MyProgress(ctx context.Context, userID uint) ([]model.Progress, error) {
	records, err := s.ProgressRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.Progress{}
	}
	return records, nil
}

func (s *ProgressService) SectionPerformance(ctx context.Context, userID, sectionID uint) (*model.SectionPerformance, error) {
	return s.ProgressRepo.SectionPerformance(ctx, userID, sectionID)
}
