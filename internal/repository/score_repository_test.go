package repository

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/testutil"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedSection(t *testing.T, db *gorm.DB, name string) *model.Section {
	t.Helper()
	s := &model.Section{Name: name}
	require.NoError(t, NewSectionRepository(db).Create(context.Background(), s))
	return s
}

func TestNextAttemptNumber(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewScoreRepository(db)
	user := seedUser(t, db, "joseph")
	section := seedSection(t, db, "Genesis")

	next, err := repo.NextAttemptNumber(ctx, user.ID, section.ID)
	require.NoError(t, err)
	require.Equal(t, 1, next)

	for _, n := range []int{1, 2, 5} {
		require.NoError(t, repo.Create(ctx, &model.Score{UserID: user.ID, SectionID: section.ID, AttemptNumber: n, Score: n}))
	}
	next, err = repo.NextAttemptNumber(ctx, user.ID, section.ID)
	require.NoError(t, err)
	require.Equal(t, 6, next)

	count, err := repo.CountAttempts(ctx, user.ID, section.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}

func TestCreateNextAttemptNumbersSequentially(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewScoreRepository(db)
	user := seedUser(t, db, "jacob")
	genesis := seedSection(t, db, "Genesis")
	romans := seedSection(t, db, "Romans")

	for i := 1; i <= 3; i++ {
		s := &model.Score{UserID: user.ID, SectionID: genesis.ID, Score: 5}
		require.NoError(t, repo.CreateNextAttempt(ctx, s))
		require.Equal(t, i, s.AttemptNumber)
	}

	// numbering is per section
	s := &model.Score{UserID: user.ID, SectionID: romans.ID, Score: 1}
	require.NoError(t, repo.CreateNextAttempt(ctx, s))
	require.Equal(t, 1, s.AttemptNumber)

	scores, err := repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, scores, 4)
}

func TestCreateDuplicateAttemptIsRejected(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewScoreRepository(db)
	user := seedUser(t, db, "esau")
	section := seedSection(t, db, "Genesis")

	require.NoError(t, repo.Create(ctx, &model.Score{UserID: user.ID, SectionID: section.ID, AttemptNumber: 1, Score: 3}))
	err := repo.Create(ctx, &model.Score{UserID: user.ID, SectionID: section.ID, AttemptNumber: 1, Score: 9})
	require.Error(t, err)
	require.True(t, IsDuplicateKey(err), fmt.Sprintf("expected duplicate key, got %v", err))

	count, err := repo.CountAttempts(ctx, user.ID, section.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestFindBySectionOrdersByScore(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewScoreRepository(db)
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	section := seedSection(t, db, "Zechariah")

	require.NoError(t, repo.Create(ctx, &model.Score{UserID: a.ID, SectionID: section.ID, AttemptNumber: 1, Score: 4}))
	require.NoError(t, repo.Create(ctx, &model.Score{UserID: b.ID, SectionID: section.ID, AttemptNumber: 1, Score: 9}))

	scores, err := repo.FindBySection(ctx, section.ID)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	require.Equal(t, 9, scores[0].Score)
	require.Equal(t, b.ID, scores[0].UserID)
}
