package repository

import (
	"bible_trivia_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

// LeaderboardRepository ranks users by the sum of their recorded scores.
type LeaderboardRepository struct {
	DB *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{DB: db}
}

func (r *LeaderboardRepository) rank(ctx context.Context, sectionID uint, limit int) ([]model.LeaderboardEntry, error) {
	query := r.DB.WithContext(ctx).
		Table("scores").
		Select("users.id AS user_id, users.username AS username, SUM(scores.score) AS total_score").
		Joins("JOIN users ON users.id = scores.user_id")
	if sectionID != 0 {
		query = query.Where("scores.section_id = ?", sectionID)
	}

	entries := make([]model.LeaderboardEntry, 0, limit)
	err := query.
		Group("users.id, users.username").
		Order("total_score DESC, users.id ASC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

func (r *LeaderboardRepository) Global(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	return r.rank(ctx, 0, limit)
}

func (r *LeaderboardRepository) Section(ctx context.Context, sectionID uint, limit int) ([]model.LeaderboardEntry, error) {
	return r.rank(ctx, sectionID, limit)
}
