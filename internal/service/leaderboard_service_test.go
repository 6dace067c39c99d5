package service

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/repository"
	"bible_trivia_backend/internal/util"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	n, err := NormalizeLimit(0)
	require.NoError(t, err)
	require.Equal(t, util.DefaultLeaderboardSize, n)

	n, err = NormalizeLimit(util.MaxLeaderboardSize)
	require.NoError(t, err)
	require.Equal(t, util.MaxLeaderboardSize, n)

	var verr *util.ValidationError
	_, err = NormalizeLimit(-1)
	require.ErrorAs(t, err, &verr)
	_, err = NormalizeLimit(util.MaxLeaderboardSize + 1)
	require.ErrorAs(t, err, &verr)
}

func TestLeaderboardWithoutCache(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	empty, err := f.leaderboard.Global(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	genesis := f.section(t, "Genesis")
	romans := f.section(t, "Romans")
	for _, in := range []RecordAttemptInput{
		{UserID: alice.ID, SectionID: genesis.ID, Score: 10},
		{UserID: alice.ID, SectionID: romans.ID, Score: 5},
		{UserID: bob.ID, SectionID: genesis.ID, Score: 8},
	} {
		_, err := f.attempt.RecordAttempt(ctx, in)
		require.NoError(t, err)
	}

	global, err := f.leaderboard.Global(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []model.LeaderboardEntry{
		{UserID: alice.ID, Username: "alice", TotalScore: 15},
		{UserID: bob.ID, Username: "bob", TotalScore: 8},
	}, global)

	section, err := f.leaderboard.Section(ctx, genesis.ID, 1)
	require.NoError(t, err)
	require.Equal(t, []model.LeaderboardEntry{{UserID: alice.ID, Username: "alice", TotalScore: 10}}, section)
}

func TestLeaderboardCacheFollowsNewScores(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	f := newFixture(t, repository.NewLeaderboardCacheRepository(client, time.Minute))
	ctx := context.Background()
	alice := f.user(t, "alice")
	section := f.section(t, "Genesis")

	_, err = f.attempt.RecordAttempt(ctx, RecordAttemptInput{UserID: alice.ID, SectionID: section.ID, Score: 3})
	require.NoError(t, err)

	board, err := f.leaderboard.Global(ctx, 5)
	require.NoError(t, err)
	require.EqualValues(t, 3, board[0].TotalScore)
	require.True(t, mr.Exists("leaderboard:v1:global:5"))

	// a score written behind the service's back is hidden by the cache
	require.NoError(t, repository.NewScoreRepository(f.db).Create(ctx, &model.Score{
		UserID: alice.ID, SectionID: section.ID, AttemptNumber: 99, Score: 100,
	}))
	board, err = f.leaderboard.Global(ctx, 5)
	require.NoError(t, err)
	require.EqualValues(t, 3, board[0].TotalScore)

	// recording through the service invalidates
	_, err = f.attempt.RecordAttempt(ctx, RecordAttemptInput{UserID: alice.ID, SectionID: section.ID, Score: 2})
	require.NoError(t, err)
	board, err = f.leaderboard.Global(ctx, 5)
	require.NoError(t, err)
	require.EqualValues(t, 105, board[0].TotalScore)
}

// racingCache records a new score between computing a board and caching it.
type racingCache struct {
	*repository.LeaderboardCacheRepository
	beforeSet func()
}

func (c *racingCache) Set(ctx context.Context, version int64, scope string, limit int, entries []model.LeaderboardEntry) error {
	if c.beforeSet != nil {
		hook := c.beforeSet
		c.beforeSet = nil
		hook()
	}
	return c.LeaderboardCacheRepository.Set(ctx, version, scope, limit, entries)
}

func TestLeaderboardLateCacheFillIsNotServed(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := &racingCache{LeaderboardCacheRepository: repository.NewLeaderboardCacheRepository(client, time.Minute)}
	f := newFixture(t, cache)
	ctx := context.Background()
	alice := f.user(t, "alice")
	section := f.section(t, "Genesis")

	_, err = f.attempt.RecordAttempt(ctx, RecordAttemptInput{UserID: alice.ID, SectionID: section.ID, Score: 3})
	require.NoError(t, err)

	cache.beforeSet = func() {
		_, err := f.attempt.RecordAttempt(ctx, RecordAttemptInput{UserID: alice.ID, SectionID: section.ID, Score: 4})
		require.NoError(t, err)
	}
	board, err := f.leaderboard.Global(ctx, 10)
	require.NoError(t, err)
	require.EqualValues(t, 3, board[0].TotalScore)

	board, err = f.leaderboard.Global(ctx, 10)
	require.NoError(t, err)
	require.EqualValues(t, 7, board[0].TotalScore)
}

func TestLeaderboardFallsBackWhenCacheFails(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	f := newFixture(t, repository.NewLeaderboardCacheRepository(client, time.Minute))
	ctx := context.Background()
	user := f.user(t, "caleb")
	section := f.section(t, "Numbers")

	_, err := f.attempt.RecordAttempt(ctx, RecordAttemptInput{UserID: user.ID, SectionID: section.ID, Score: 6})
	require.NoError(t, err)

	board, err := f.leaderboard.Global(ctx, 0)
	require.NoError(t, err)
	require.Len(t, board, 1)
	require.EqualValues(t, 6, board[0].TotalScore)
}
