package repository

import (
	"bible_trivia_backend/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const leaderboardVersionKey = "leaderboard:version"

// LeaderboardCacheRepository stores ranked leaderboards in redis. Entries are
// keyed by a version counter so one INCR invalidates every cached board.
type LeaderboardCacheRepository struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewLeaderboardCacheRepository(client *redis.Client, ttl time.Duration) *LeaderboardCacheRepository {
	return &LeaderboardCacheRepository{Client: client, TTL: ttl}
}

func (r *LeaderboardCacheRepository) version(ctx context.Context) (int64, error) {
	v, err := r.Client.Get(ctx, leaderboardVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func boardKey(version int64, scope string, limit int) string {
	return fmt.Sprintf("leaderboard:v%d:%s:%d", version, scope, limit)
}

// Get returns the cached board, whether it was present, and the version it was
// looked up under. A miss should be filled with Set using that version.
func (r *LeaderboardCacheRepository) Get(ctx context.Context, scope string, limit int) ([]model.LeaderboardEntry, int64, bool, error) {
	v, err := r.version(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := r.Client.Get(ctx, boardKey(v, scope, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, v, false, nil
	}
	if err != nil {
		return nil, v, false, err
	}
	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, v, false, err
	}
	return entries, v, true, nil
}

// Set stores a board under version. A board computed before an Invalidate
// lands under the retired version and is never read.
func (r *LeaderboardCacheRepository) Set(ctx context.Context, version int64, scope string, limit int, entries []model.LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, boardKey(version, scope, limit), raw, r.TTL).Err()
}

// Invalidate retires every cached board. Old keys age out through their TTL.
func (r *LeaderboardCacheRepository) Invalidate(ctx context.Context) error {
	return r.Client.Incr(ctx, leaderboardVersionKey).Err()
}
