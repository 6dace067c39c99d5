package model

import "time"

// Achievement is part of the schema but no flow awards one yet.
type Achievement struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	AchievementType string    `gorm:"size:100;not null" json:"achievement_type"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	DateAwarded     time.Time `json:"date_awarded"`
}

func (Achievement) TableName() string {
	return "achievements"
}
