package service

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/repository"
	"bible_trivia_backend/internal/util"
	"bible_trivia_backend/pkg/logger"
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// QuestionInput is the wire and import shape of a question before validation.
type QuestionInput struct {
	SectionID                  uint     `json:"section_id"`
	QuestionText               string   `json:"question_text"`
	Option1                    string   `json:"option1"`
	Option2                    string   `json:"option2"`
	Option3                    string   `json:"option3"`
	Option4                    string   `json:"option4"`
	CorrectOption              int      `json:"correct_option"`
	Difficulty                 string   `json:"difficulty"`
	Topic                      string   `json:"topic"`
	Tags                       []string `json:"tags"`
	Hint                       string   `json:"hint"`
	BibleReference             string   `json:"bible_reference"`
	BibleText                  string   `json:"bible_text"`
	BibleReferenceBook         string   `json:"bible_reference_book"`
	BibleReferenceStartChapter *int     `json:"bible_reference_start_chapter"`
	BibleReferenceEndChapter   *int     `json:"bible_reference_end_chapter"`
	BibleReferenceStartVerse   *int     `json:"bible_reference_start_verse"`
	BibleReferenceEndVerse     *int     `json:"bible_reference_end_verse"`
}

// SkippedItem explains why one entry of a batch was not stored.
type SkippedItem struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type QuestionBatchResult struct {
	Created []model.Question `json:"created"`
	Skipped []SkippedItem    `json:"skipped"`
}

type ContentService struct {
	SectionRepo  *repository.SectionRepository
	QuestionRepo *repository.QuestionRepository
}

func NewContentService(sectionRepo *repository.SectionRepository, questionRepo *repository.QuestionRepository) *ContentService {
	return &ContentService{
		SectionRepo:  sectionRepo,
		QuestionRepo: questionRepo,
	}
}

func (s *ContentService) CreateSection(ctx context.Context, name, description string) (*model.Section, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.NewValidationError("name", "must not be empty")
	}

	if _, err := s.SectionRepo.FindByName(ctx, name); err == nil {
		return nil, util.ErrSectionExists
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	section := &model.Section{Name: name, Description: strings.TrimSpace(description)}
	if err := s.SectionRepo.Create(ctx, section); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, util.ErrSectionExists
		}
		return nil, err
	}
	return section, nil
}

// EnsureSection returns the named section, creating it when missing.
func (s *ContentService) EnsureSection(ctx context.Context, name, description string) (*model.Section, bool, error) {
	existing, err := s.SectionRepo.FindByName(ctx, strings.TrimSpace(name))
	if err == nil {
		return existing, false, nil
	}
	if !repository.IsNotFound(err) {
		return nil, false, err
	}
	section, err := s.CreateSection(ctx, name, description)
	if err != nil {
		return nil, false, err
	}
	return section, true, nil
}

func (s *ContentService) ListSections(ctx context.Context) ([]model.SectionSummary, error) {
	sections, err := s.SectionRepo.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}
	if sections == nil {
		sections = []model.SectionSummary{}
	}
	return sections, nil
}

func (s *ContentService) GetSection(ctx context.Context, id uint) (*model.Section, error) {
	section, err := s.SectionRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrSectionNotFound
		}
		return nil, err
	}
	return section, nil
}

func (s *ContentService) requireSection(ctx context.Context, id uint) error {
	ok, err := s.SectionRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrSectionNotFound
	}
	return nil
}

func (s *ContentService) checkSectionCached(ctx context.Context, id uint, known map[uint]bool) error {
	ok, seen := known[id]
	if !seen {
		exists, err := s.SectionRepo.Exists(ctx, id)
		if err != nil {
			return err
		}
		ok = exists
		known[id] = ok
	}
	if !ok {
		return util.ErrSectionNotFound
	}
	return nil
}

func positive(field string, v *int) error {
	if v != nil && *v <= 0 {
		return util.NewValidationError(field, "must be positive")
	}
	return nil
}

func orderedRange(field string, start, end *int) error {
	if start != nil && end != nil && *start > *end {
		return util.NewValidationError(field, "start must not exceed end")
	}
	return nil
}

// BuildQuestion validates in and converts it to a storable question.
// Categorical fields are checked against their closed sets.
func BuildQuestion(in QuestionInput) (*model.Question, error) {
	if in.SectionID == 0 {
		return nil, util.NewValidationError("section_id", "is required")
	}
	if strings.TrimSpace(in.QuestionText) == "" {
		return nil, util.NewValidationError("question_text", "must not be empty")
	}
	for i, opt := range []string{in.Option1, in.Option2, in.Option3, in.Option4} {
		if strings.TrimSpace(opt) == "" {
			return nil, util.NewValidationError("option"+strconv.Itoa(i+1), "must not be empty")
		}
	}
	if in.CorrectOption < 1 || in.CorrectOption > 4 {
		return nil, util.NewValidationError("correct_option", "must be between 1 and 4")
	}

	difficulty, err := model.ParseDifficulty(in.Difficulty)
	if err != nil {
		return nil, util.NewValidationError("difficulty", "%v", err)
	}
	topic, err := model.ParseTopic(in.Topic)
	if err != nil {
		return nil, util.NewValidationError("topic", "%v", err)
	}

	tags := make(datatypes.JSONSlice[string], 0, len(in.Tags))
	seen := make(map[model.Tag]bool, len(in.Tags))
	for _, raw := range in.Tags {
		tag, err := model.ParseTag(raw)
		if err != nil {
			return nil, util.NewValidationError("tags", "%v", err)
		}
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, string(tag))
		}
	}

	var book model.BibleBook
	if in.BibleReferenceBook != "" {
		if book, err = model.ParseBibleBook(in.BibleReferenceBook); err != nil {
			return nil, util.NewValidationError("bible_reference_book", "%v", err)
		}
	}
	for _, check := range []error{
		positive("bible_reference_start_chapter", in.BibleReferenceStartChapter),
		positive("bible_reference_end_chapter", in.BibleReferenceEndChapter),
		positive("bible_reference_start_verse", in.BibleReferenceStartVerse),
		positive("bible_reference_end_verse", in.BibleReferenceEndVerse),
		orderedRange("bible_reference_chapter", in.BibleReferenceStartChapter, in.BibleReferenceEndChapter),
	} {
		if check != nil {
			return nil, check
		}
	}
	// verse order only matters inside a single chapter
	sameChapter := in.BibleReferenceEndChapter == nil ||
		(in.BibleReferenceStartChapter != nil && *in.BibleReferenceStartChapter == *in.BibleReferenceEndChapter)
	if sameChapter {
		if err := orderedRange("bible_reference_verse", in.BibleReferenceStartVerse, in.BibleReferenceEndVerse); err != nil {
			return nil, err
		}
	}

	return &model.Question{
		SectionID:                  in.SectionID,
		QuestionText:               strings.TrimSpace(in.QuestionText),
		Option1:                    in.Option1,
		Option2:                    in.Option2,
		Option3:                    in.Option3,
		Option4:                    in.Option4,
		CorrectOption:              in.CorrectOption,
		Difficulty:                 difficulty,
		Topic:                      topic,
		Tags:                       tags,
		Hint:                       in.Hint,
		BibleReference:             in.BibleReference,
		BibleText:                  strings.TrimSpace(in.BibleText),
		BibleReferenceBook:         book,
		BibleReferenceStartChapter: in.BibleReferenceStartChapter,
		BibleReferenceEndChapter:   in.BibleReferenceEndChapter,
		BibleReferenceStartVerse:   in.BibleReferenceStartVerse,
		BibleReferenceEndVerse:     in.BibleReferenceEndVerse,
	}, nil
}

func (s *ContentService) CreateQuestion(ctx context.Context, in QuestionInput) (*model.Question, error) {
	question, err := BuildQuestion(in)
	if err != nil {
		return nil, err
	}
	if err := s.requireSection(ctx, question.SectionID); err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// CreateQuestions validates each input on its own. Invalid entries are reported
// as skipped and the valid ones are inserted together.
func (s *ContentService) CreateQuestions(ctx context.Context, inputs []QuestionInput) (*QuestionBatchResult, error) {
	result := &QuestionBatchResult{Created: []model.Question{}, Skipped: []SkippedItem{}}
	sectionOK := make(map[uint]bool)

	for i, in := range inputs {
		question, err := BuildQuestion(in)
		if err == nil {
			err = s.checkSectionCached(ctx, in.SectionID, sectionOK)
			if err != nil && !errors.Is(err, util.ErrSectionNotFound) {
				return nil, err
			}
		}
		if err != nil {
			logger.Log.Warn("skipping question in batch", zap.Int("index", i), zap.Error(err))
			result.Skipped = append(result.Skipped, SkippedItem{Index: i, Reason: err.Error()})
			continue
		}
		result.Created = append(result.Created, *question)
	}

	if err := s.QuestionRepo.CreateBatch(ctx, result.Created); err != nil {
		return nil, err
	}
	logger.Log.Info("question batch stored", zap.Int("created", len(result.Created)), zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

// QuestionsForSection returns a section's questions. An empty list is not an error.
func (s *ContentService) QuestionsForSection(ctx context.Context, sectionID uint, difficulty string) ([]model.Question, error) {
	var level model.Difficulty
	if difficulty != "" {
		parsed, err := model.ParseDifficulty(difficulty)
		if err != nil {
			return nil, util.NewValidationError("difficulty", "%v", err)
		}
		level = parsed
	}
	questions, err := s.QuestionRepo.FindBySection(ctx, sectionID, level)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

func (s *ContentService) AllQuestions(ctx context.Context) ([]model.Question, error) {
	questions, err := s.QuestionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

func (s *ContentService) GetQuestion(ctx context.Context, id uint) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}
