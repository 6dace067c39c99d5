package service

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/repository"
	"bible_trivia_backend/internal/util"
	"bible_trivia_backend/pkg/logger"
	"bible_trivia_backend/pkg/monitoring"
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// LeaderboardCache is an optional read-through store for computed rankings.
type LeaderboardCache interface {
	Get(ctx context.Context, scope string, limit int) ([]model.LeaderboardEntry, int64, bool, error)
	Set(ctx context.Context, version int64, scope string, limit int, entries []model.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

type LeaderboardService struct {
	Repo  *repository.LeaderboardRepository
	Cache LeaderboardCache

	group singleflight.Group
}

// NewLeaderboardService builds the service. cache may be nil.
func NewLeaderboardService(repo *repository.LeaderboardRepository, cache LeaderboardCache) *LeaderboardService {
	return &LeaderboardService{Repo: repo, Cache: cache}
}

// NormalizeLimit applies the default size and rejects out-of-range values.
func NormalizeLimit(n int) (int, error) {
	if n == 0 {
		return util.DefaultLeaderboardSize, nil
	}
	if n < 0 || n > util.MaxLeaderboardSize {
		return 0, util.NewValidationError("top_n", "must be between 1 and %d", util.MaxLeaderboardSize)
	}
	return n, nil
}

func (s *LeaderboardService) Global(ctx context.Context, topN int) ([]model.LeaderboardEntry, error) {
	limit, err := NormalizeLimit(topN)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, "global", limit, func() ([]model.LeaderboardEntry, error) {
		return s.Repo.Global(ctx, limit)
	})
}

func (s *LeaderboardService) Section(ctx context.Context, sectionID uint, topN int) ([]model.LeaderboardEntry, error) {
	limit, err := NormalizeLimit(topN)
	if err != nil {
		return nil, err
	}
	scope := "section:" + strconv.FormatUint(uint64(sectionID), 10)
	return s.load(ctx, scope, limit, func() ([]model.LeaderboardEntry, error) {
		return s.Repo.Section(ctx, sectionID, limit)
	})
}

// load serves from cache when possible and collapses concurrent misses into one query.
func (s *LeaderboardService) load(ctx context.Context, scope string, limit int, query func() ([]model.LeaderboardEntry, error)) ([]model.LeaderboardEntry, error) {
	if s.Cache == nil {
		return nonNil(query())
	}

	entries, version, ok, err := s.Cache.Get(ctx, scope, limit)
	if err != nil {
		monitoring.LeaderboardCache.WithLabelValues("error").Inc()
		logger.Log.Warn("leaderboard cache read failed", zap.String("scope", scope), zap.Error(err))
		return nonNil(query())
	}
	if ok {
		monitoring.LeaderboardCache.WithLabelValues("hit").Inc()
		return entries, nil
	}
	monitoring.LeaderboardCache.WithLabelValues("miss").Inc()

	// the version is read before the query, so a board that predates a new
	// score is written under the version that score retired
	v, err, _ := s.group.Do(fmt.Sprintf("v%d:%s:%d", version, scope, limit), func() (interface{}, error) {
		entries, err := nonNil(query())
		if err != nil {
			return nil, err
		}
		if err := s.Cache.Set(ctx, version, scope, limit, entries); err != nil {
			logger.Log.Warn("leaderboard cache write failed", zap.String("scope", scope), zap.Error(err))
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.LeaderboardEntry), nil
}

// Invalidate drops cached rankings. Failures only delay freshness until the TTL expires.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		logger.Log.Warn("leaderboard cache invalidation failed", zap.Error(err))
	}
}

func nonNil(entries []model.LeaderboardEntry, err error) ([]model.LeaderboardEntry, error) {
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	return entries, nil
}
