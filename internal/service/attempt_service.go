package service

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/repository"
	"bible_trivia_backend/internal/util"
	"bible_trivia_backend/pkg/logger"
	"bible_trivia_backend/pkg/monitoring"
	"bible_trivia_backend/pkg/tracing"
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const maxAttemptRetries = 3

// Feedback is the grading outcome for one submitted answer.
type Feedback struct {
	QuestionID    uint   `json:"question_id"`
	QuestionText  string `json:"question_text"`
	UserAnswer    int    `json:"user_answer"`
	CorrectAnswer int    `json:"correct_answer"`
	Result        string `json:"result"`
	Explanation   string `json:"explanation,omitempty"`
}

type AttemptStatus struct {
	SectionID         uint  `json:"section_id"`
	AttemptsMade      int64 `json:"attempts_made"`
	NextAttemptNumber int   `json:"next_attempt_number"`
}

// RecordAttemptInput leaves AttemptNumber at zero to let the server assign it.
type RecordAttemptInput struct {
	UserID        uint
	SectionID     uint
	AttemptNumber int
	Score         int
	TimeTaken     int
}

type CompletionInput struct {
	TimeTakenSeconds int `json:"time_taken_seconds"`
	TotalCorrect     int `json:"total_correct"`
	TotalIncorrect   int `json:"total_incorrect"`
	TotalUnsure      int `json:"total_unsure"`
}

type CompletionResult struct {
	SectionID        uint     `json:"section_id"`
	TotalCorrect     int      `json:"total_correct"`
	TotalIncorrect   int      `json:"total_incorrect"`
	TotalUnsure      int      `json:"total_unsure"`
	TimeTakenSeconds int      `json:"time_taken_seconds"`
	BonusPoints      int      `json:"bonus_points"`
	FinalScore       int      `json:"final_score"`
	BibleVerses      []string `json:"bible_verses"`
}

// LeaderboardInvalidator drops cached rankings after a new score lands.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context)
}

type AttemptService struct {
	SectionRepo    *repository.SectionRepository
	QuestionRepo   *repository.QuestionRepository
	ProgressRepo   *repository.ProgressRepository
	ScoreRepo      *repository.ScoreRepository
	CompletionRepo *repository.SectionCompletionRepository
	Leaderboard    LeaderboardInvalidator
	Now            func() time.Time
}

func NewAttemptService(
	sectionRepo *repository.SectionRepository,
	questionRepo *repository.QuestionRepository,
	progressRepo *repository.ProgressRepository,
	scoreRepo *repository.ScoreRepository,
	completionRepo *repository.SectionCompletionRepository,
	leaderboard LeaderboardInvalidator,
) *AttemptService {
	return &AttemptService{
		SectionRepo:    sectionRepo,
		QuestionRepo:   questionRepo,
		ProgressRepo:   progressRepo,
		ScoreRepo:      scoreRepo,
		CompletionRepo: completionRepo,
		Leaderboard:    leaderboard,
		Now:            time.Now,
	}
}

// Bonus awards points for finishing a section quickly.
func Bonus(elapsedSeconds int) int {
	switch {
	case elapsedSeconds < 60:
		return 10
	case elapsedSeconds < 120:
		return 5
	default:
		return 0
	}
}

func (s *AttemptService) requireSection(ctx context.Context, id uint) error {
	ok, err := s.SectionRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrSectionNotFound
	}
	return nil
}

// GradeSubmission grades answers against the section's questions and stores one
// progress record per graded answer. Unknown question ids are logged and left out.
func (s *AttemptService) GradeSubmission(ctx context.Context, userID, sectionID uint, answers map[uint]int) ([]Feedback, error) {
	ctx, span := tracing.StartSpan(ctx, "attempt.grade")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("section_id", int64(sectionID)),
		attribute.Int("answers", len(answers)),
	)

	ids := make([]uint, 0, len(answers))
	for id, option := range answers {
		if option < 1 || option > 4 {
			return nil, util.NewValidationError("answers", "option for question %d must be between 1 and 4", id)
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	questions, err := s.QuestionRepo.FindByIDsInSection(ctx, sectionID, ids)
	if err != nil {
		return nil, err
	}

	feedback := make([]Feedback, 0, len(ids))
	records := make([]model.Progress, 0, len(ids))
	for _, id := range ids {
		q, ok := questions[id]
		if !ok {
			logger.Log.Warn("submitted answer for unknown question",
				zap.Uint("question_id", id),
				zap.Uint("section_id", sectionID),
				zap.Uint("user_id", userID),
			)
			continue
		}

		submitted := answers[id]
		correct := q.IsCorrect(submitted)
		result := util.ResultIncorrect
		if correct {
			result = util.ResultCorrect
		}
		monitoring.AnswersGraded.WithLabelValues(result).Inc()

		feedback = append(feedback, Feedback{
			QuestionID:    q.ID,
			QuestionText:  q.QuestionText,
			UserAnswer:    submitted,
			CorrectAnswer: q.CorrectOption,
			Result:        result,
			Explanation:   q.Hint,
		})
		records = append(records, model.Progress{
			UserID:     userID,
			SectionID:  sectionID,
			QuestionID: q.ID,
			IsCorrect:  correct,
			IsUnsure:   false,
		})
	}

	if err := s.ProgressRepo.CreateBatch(ctx, records); err != nil {
		return nil, err
	}
	return feedback, nil
}

// CountCorrect is the raw score of a graded submission.
func CountCorrect(feedback []Feedback) int {
	n := 0
	for _, f := range feedback {
		if f.Result == util.ResultCorrect {
			n++
		}
	}
	return n
}

func (s *AttemptService) AttemptStatus(ctx context.Context, userID, sectionID uint) (*AttemptStatus, error) {
	made, err := s.ScoreRepo.CountAttempts(ctx, userID, sectionID)
	if err != nil {
		return nil, err
	}
	next, err := s.ScoreRepo.NextAttemptNumber(ctx, userID, sectionID)
	if err != nil {
		return nil, err
	}
	return &AttemptStatus{SectionID: sectionID, AttemptsMade: made, NextAttemptNumber: next}, nil
}

// RecordAttempt persists a score. Server-assigned attempt numbers are retried
// when a concurrent submission claims the same number; an explicit number that
// is already taken fails with ErrAttemptConflict.
func (s *AttemptService) RecordAttempt(ctx context.Context, in RecordAttemptInput) (*model.Score, error) {
	ctx, span := tracing.StartSpan(ctx, "attempt.record")
	defer span.End()

	if in.Score < 0 {
		return nil, util.NewValidationError("score", "must not be negative")
	}
	if in.TimeTaken < 0 {
		return nil, util.NewValidationError("time_taken", "must not be negative")
	}
	if in.AttemptNumber < 0 {
		return nil, util.NewValidationError("attempt_number", "must be positive")
	}
	if err := s.requireSection(ctx, in.SectionID); err != nil {
		return nil, err
	}

	score := &model.Score{
		UserID:        in.UserID,
		SectionID:     in.SectionID,
		AttemptNumber: in.AttemptNumber,
		Score:         in.Score,
		TimeTaken:     in.TimeTaken,
	}

	if in.AttemptNumber > 0 {
		if err := s.ScoreRepo.Create(ctx, score); err != nil {
			if repository.IsDuplicateKey(err) {
				monitoring.AttemptConflicts.Inc()
				return nil, util.ErrAttemptConflict
			}
			return nil, err
		}
	} else if err := s.createNextAttempt(ctx, score); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("attempt_number", score.AttemptNumber))
	monitoring.AttemptsRecorded.Inc()
	if s.Leaderboard != nil {
		s.Leaderboard.Invalidate(ctx)
	}
	return score, nil
}

func (s *AttemptService) createNextAttempt(ctx context.Context, score *model.Score) error {
	for try := 1; try <= maxAttemptRetries; try++ {
		score.ID = 0
		err := s.ScoreRepo.CreateNextAttempt(ctx, score)
		if err == nil {
			return nil
		}
		if !repository.IsDuplicateKey(err) {
			return err
		}
		monitoring.AttemptConflicts.Inc()
		logger.Log.Warn("attempt number collision, retrying",
			zap.Uint("user_id", score.UserID),
			zap.Uint("section_id", score.SectionID),
			zap.Int("attempt_number", score.AttemptNumber),
			zap.Int("try", try),
		)
	}
	return util.ErrAttemptConflict
}

// CompleteSection applies the time bonus and stores a completion record.
func (s *AttemptService) CompleteSection(ctx context.Context, userID, sectionID uint, in CompletionInput) (*CompletionResult, error) {
	counts := []struct {
		field string
		value int
	}{
		{"time_taken_seconds", in.TimeTakenSeconds},
		{"total_correct", in.TotalCorrect},
		{"total_incorrect", in.TotalIncorrect},
		{"total_unsure", in.TotalUnsure},
	}
	for _, c := range counts {
		if c.value < 0 {
			return nil, util.NewValidationError(c.field, "must not be negative")
		}
	}
	if err := s.requireSection(ctx, sectionID); err != nil {
		return nil, err
	}

	bonus := Bonus(in.TimeTakenSeconds)
	verses, err := s.QuestionRepo.DistinctBibleTexts(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if verses == nil {
		verses = []string{}
	}

	completion := &model.SectionCompletion{
		UserID:           userID,
		SectionID:        sectionID,
		TimeTakenSeconds: in.TimeTakenSeconds,
		BonusPoints:      bonus,
		TotalCorrect:     in.TotalCorrect,
		TotalIncorrect:   in.TotalIncorrect,
		TotalUnsure:      in.TotalUnsure,
		DateCompleted:    s.Now(),
	}
	if err := s.CompletionRepo.Create(ctx, completion); err != nil {
		return nil, err
	}

	return &CompletionResult{
		SectionID:        sectionID,
		TotalCorrect:     in.TotalCorrect,
		TotalIncorrect:   in.TotalIncorrect,
		TotalUnsure:      in.TotalUnsure,
		TimeTakenSeconds: in.TimeTakenSeconds,
		BonusPoints:      bonus,
		FinalScore:       in.TotalCorrect + bonus,
		BibleVerses:      verses,
	}, nil
}

func (s *AttemptService) Completions(ctx context.Context, userID, sectionID uint) ([]model.SectionCompletion, error) {
	completions, err := s.CompletionRepo.FindByUserAndSection(ctx, userID, sectionID)
	if err != nil {
		return nil, err
	}
	if completions == nil {
		completions = []model.SectionCompletion{}
	}
	return completions, nil
}

func (s *AttemptService) MyScores(ctx context.Context, userID uint) ([]model.Score, error) {
	scores, err := s.ScoreRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if scores == nil {
		scores = []model.Score{}
	}
	return scores, nil
}

func (s *AttemptService) SectionScores(ctx context.Context, sectionID uint) ([]model.Score, error) {
	scores, err := s.ScoreRepo.FindBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if scores == nil {
		scores = []model.Score{}
	}
	return scores, nil
}
