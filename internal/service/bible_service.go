package service

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/repository"
	"bible_trivia_backend/internal/util"
	"bible_trivia_backend/pkg/logger"
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

type VerseInput struct {
	BookName string `json:"book_name"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse"`
	Version  string `json:"version"`
	Text     string `json:"text"`
}

type VerseBatchResult struct {
	Created []model.BibleVerse `json:"created"`
	Skipped []SkippedItem      `json:"skipped"`
}

type VersePage struct {
	Verses []model.BibleVerse `json:"verses"`
	Total  int64              `json:"total"`
	Skip   int                `json:"skip"`
	Limit  int                `json:"limit"`
}

type BibleService struct {
	Repo *repository.BibleVerseRepository
}

func NewBibleService(repo *repository.BibleVerseRepository) *BibleService {
	return &BibleService{Repo: repo}
}

// buildVerse validates in. An empty version means KJV.
func buildVerse(in VerseInput) (*model.BibleVerse, error) {
	book := strings.TrimSpace(in.BookName)
	if book == "" {
		return nil, util.NewValidationError("book_name", "must not be empty")
	}
	if in.Chapter <= 0 {
		return nil, util.NewValidationError("chapter", "must be positive")
	}
	if in.Verse <= 0 {
		return nil, util.NewValidationError("verse", "must be positive")
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, util.NewValidationError("text", "must not be empty")
	}
	version := strings.TrimSpace(in.Version)
	if version == "" {
		version = model.DefaultBibleVersion
	}
	return &model.BibleVerse{
		BookName: book,
		Chapter:  in.Chapter,
		Verse:    in.Verse,
		Version:  strings.ToUpper(version),
		Text:     text,
	}, nil
}

func (s *BibleService) List(ctx context.Context, skip, limit int) (*VersePage, error) {
	if skip < 0 {
		return nil, util.NewValidationError("skip", "must not be negative")
	}
	if limit == 0 {
		limit = util.DefaultVersePageSize
	}
	if limit < 0 || limit > util.MaxVersePageSize {
		return nil, util.NewValidationError("limit", "must be between 1 and %d", util.MaxVersePageSize)
	}
	verses, total, err := s.Repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	if verses == nil {
		verses = []model.BibleVerse{}
	}
	return &VersePage{Verses: verses, Total: total, Skip: skip, Limit: limit}, nil
}

func (s *BibleService) Get(ctx context.Context, id uint) (*model.BibleVerse, error) {
	verse, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrVerseNotFound
		}
		return nil, err
	}
	return verse, nil
}

func (s *BibleService) Lookup(ctx context.Context, book string, chapter, verse int, version string) (*model.BibleVerse, error) {
	ref, err := buildVerse(VerseInput{BookName: book, Chapter: chapter, Verse: verse, Version: version, Text: "-"})
	if err != nil {
		return nil, err
	}
	found, err := s.Repo.FindByKey(ctx, ref.Key())
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrVerseNotFound
		}
		return nil, err
	}
	return found, nil
}

func (s *BibleService) Create(ctx context.Context, in VerseInput) (*model.BibleVerse, error) {
	verse, err := buildVerse(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.Repo.FindByKey(ctx, verse.Key()); err == nil {
		return nil, util.ErrVerseExists
	} else if !repository.IsNotFound(err) {
		return nil, err
	}
	if err := s.Repo.Create(ctx, verse); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, util.ErrVerseExists
		}
		return nil, err
	}
	return verse, nil
}

func (s *BibleService) Update(ctx context.Context, id uint, in VerseInput) (*model.BibleVerse, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := buildVerse(in)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	if err := s.Repo.Update(ctx, updated); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, util.ErrVerseExists
		}
		return nil, err
	}
	return updated, nil
}

func (s *BibleService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return util.ErrVerseNotFound
		}
		return err
	}
	return nil
}

// CreateBatch stores new verses and skips tuples that already exist, either in
// storage or earlier in the same batch. Loading the same data twice is a no-op.
func (s *BibleService) CreateBatch(ctx context.Context, inputs []VerseInput) (*VerseBatchResult, error) {
	result := &VerseBatchResult{Created: []model.BibleVerse{}, Skipped: []SkippedItem{}}

	candidates := make([]*model.BibleVerse, len(inputs))
	keys := make([]model.VerseKey, 0, len(inputs))
	for i, in := range inputs {
		verse, err := buildVerse(in)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedItem{Index: i, Reason: err.Error()})
			continue
		}
		candidates[i] = verse
		keys = append(keys, verse.Key())
	}

	existing, err := s.Repo.ExistingKeys(ctx, keys)
	if err != nil {
		return nil, err
	}

	var pending []model.BibleVerse
	var pendingIdx []int
	for i, verse := range candidates {
		if verse == nil {
			continue
		}
		key := verse.Key()
		if existing[key] {
			result.Skipped = append(result.Skipped, SkippedItem{Index: i, Reason: util.ErrVerseExists.Error()})
			continue
		}
		existing[key] = true
		pending = append(pending, *verse)
		pendingIdx = append(pendingIdx, i)
	}

	conflicts, err := s.Repo.CreateBatch(ctx, pending)
	if err != nil {
		return nil, err
	}
	lost := make(map[int]bool, len(conflicts))
	for _, j := range conflicts {
		lost[j] = true
		result.Skipped = append(result.Skipped, SkippedItem{Index: pendingIdx[j], Reason: util.ErrVerseExists.Error()})
	}
	for j := range pending {
		if !lost[j] {
			result.Created = append(result.Created, pending[j])
		}
	}

	sort.Slice(result.Skipped, func(i, j int) bool { return result.Skipped[i].Index < result.Skipped[j].Index })
	logger.Log.Info("verse batch stored", zap.Int("created", len(result.Created)), zap.Int("skipped", len(result.Skipped)))
	return result, nil
}
