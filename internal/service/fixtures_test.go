package service

import (
	"bible_trivia_backend/internal/config"
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/repository"
	"bible_trivia_backend/internal/testutil"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	auth        *AuthService
	content     *ContentService
	attempt     *AttemptService
	progress    *ProgressService
	leaderboard *LeaderboardService
	bible       *BibleService
}

func newFixture(t *testing.T, cache LeaderboardCache) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	sections := repository.NewSectionRepository(db)
	questions := repository.NewQuestionRepository(db)
	progress := repository.NewProgressRepository(db)

	f := &fixture{db: db}
	f.auth = NewAuthService(repository.NewUserRepository(db), config.JWTConfig{
		Secret:     testutil.JWTSecret,
		ExpireTime: testutil.Config().JWT.ExpireTime,
	})
	f.content = NewContentService(sections, questions)
	f.leaderboard = NewLeaderboardService(repository.NewLeaderboardRepository(db), cache)
	f.attempt = NewAttemptService(
		sections,
		questions,
		progress,
		repository.NewScoreRepository(db),
		repository.NewSectionCompletionRepository(db),
		f.leaderboard,
	)
	f.progress = NewProgressService(progress, questions)
	f.bible = NewBibleService(repository.NewBibleVerseRepository(db))
	return f
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), name, name+"@example.com", "secret123")
	require.NoError(t, err)
	return u
}

func (f *fixture) section(t *testing.T, name string) *model.Section {
	t.Helper()
	s, err := f.content.CreateSection(context.Background(), name, "")
	require.NoError(t, err)
	return s
}

func validQuestion(sectionID uint, text string, correct int) QuestionInput {
	return QuestionInput{
		SectionID:     sectionID,
		QuestionText:  text,
		Option1:       "Reuben",
		Option2:       "Judah",
		Option3:       "Benjamin",
		Option4:       "Levi",
		CorrectOption: correct,
		Difficulty:    "easy",
		Topic:         "Joseph's Story",
		Tags:          []string{"family"},
	}
}

func (f *fixture) question(t *testing.T, in QuestionInput) *model.Question {
	t.Helper()
	q, err := f.content.CreateQuestion(context.Background(), in)
	require.NoError(t, err)
	return q
}
