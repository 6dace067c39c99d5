package model

// Score is one recorded attempt. AttemptNumber is unique per (user, section).
//
// swagger:model Score
type Score struct {
	ID            uint `gorm:"primaryKey;autoIncrement" json:"score_id"`
	UserID        uint `gorm:"not null;uniqueIndex:idx_scores_user_section_attempt,priority:1" json:"user_id"`
	SectionID     uint `gorm:"not null;index;uniqueIndex:idx_scores_user_section_attempt,priority:2" json:"section_id"`
	AttemptNumber int  `gorm:"not null;uniqueIndex:idx_scores_user_section_attempt,priority:3" json:"attempt_number"`
	Score         int  `gorm:"not null" json:"score"`
	TimeTaken     int  `gorm:"not null" json:"time_taken"` // seconds
	BaseModel
}

func (Score) TableName() string {
	return "scores"
}
