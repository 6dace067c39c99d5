package model

import "time"

// swagger:model SectionCompletion
type SectionCompletion struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	SectionID        uint      `gorm:"index;not null" json:"section_id"`
	TimeTakenSeconds int       `gorm:"not null" json:"time_taken_seconds"`
	BonusPoints      int       `gorm:"default:0" json:"bonus_points"`
	TotalCorrect     int       `gorm:"default:0" json:"total_correct"`
	TotalIncorrect   int       `gorm:"default:0" json:"total_incorrect"`
	TotalUnsure      int       `gorm:"default:0" json:"total_unsure"`
	DateCompleted    time.Time `json:"date_completed"`
}

func (SectionCompletion) TableName() string {
	return "section_completions"
}
