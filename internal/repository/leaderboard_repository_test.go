package repository

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/testutil"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeaderboardSumsScoresPerUser(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	scores := NewScoreRepository(db)
	repo := NewLeaderboardRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	genesis := seedSection(t, db, "Genesis")
	romans := seedSection(t, db, "Romans")

	for _, s := range []model.Score{
		{UserID: alice.ID, SectionID: genesis.ID, AttemptNumber: 1, Score: 10},
		{UserID: alice.ID, SectionID: romans.ID, AttemptNumber: 1, Score: 5},
		{UserID: bob.ID, SectionID: genesis.ID, AttemptNumber: 1, Score: 8},
	} {
		s := s
		require.NoError(t, scores.Create(ctx, &s))
	}

	global, err := repo.Global(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, []model.LeaderboardEntry{
		{UserID: alice.ID, Username: "alice", TotalScore: 15},
		{UserID: bob.ID, Username: "bob", TotalScore: 8},
	}, global)

	section, err := repo.Section(ctx, romans.ID, 10)
	require.NoError(t, err)
	require.Equal(t, []model.LeaderboardEntry{
		{UserID: alice.ID, Username: "alice", TotalScore: 5},
	}, section)

	top, err := repo.Global(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.Equal(t, "alice", top[0].Username)
}

func TestLeaderboardTiesBreakByUserID(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	scores := NewScoreRepository(db)

	first := seedUser(t, db, "zeke")
	second := seedUser(t, db, "abel")
	section := seedSection(t, db, "Genesis")

	require.NoError(t, scores.Create(ctx, &model.Score{UserID: second.ID, SectionID: section.ID, AttemptNumber: 1, Score: 7}))
	require.NoError(t, scores.Create(ctx, &model.Score{UserID: first.ID, SectionID: section.ID, AttemptNumber: 1, Score: 7}))

	entries, err := NewLeaderboardRepository(db).Global(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, first.ID, entries[0].UserID)
	require.Equal(t, second.ID, entries[1].UserID)
}

func TestLeaderboardEmpty(t *testing.T) {
	db := testutil.NewDB(t)

	entries, err := NewLeaderboardRepository(db).Global(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}
