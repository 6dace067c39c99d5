package model

// LeaderboardEntry is one ranked row. It is computed on read and never stored.
type LeaderboardEntry struct {
	UserID     uint   `json:"user_id"`
	Username   string `json:"username"`
	TotalScore int64  `json:"total_score"`
}
