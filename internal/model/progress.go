package model

// swagger:model Progress
type Progress struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"progress_id"`
	UserID     uint `gorm:"index:idx_progress_user_section,priority:1;not null" json:"user_id"`
	SectionID  uint `gorm:"index:idx_progress_user_section,priority:2;not null" json:"section_id"`
	QuestionID uint `gorm:"index;not null" json:"question_id"`
	IsCorrect  bool `gorm:"default:false" json:"is_correct"`
	IsUnsure   bool `gorm:"default:false" json:"is_unsure"`
	BaseModel
}

func (Progress) TableName() string {
	return "progresses"
}

// SectionPerformance aggregates a user's progress rows for one section.
type SectionPerformance struct {
	TotalCorrect   int64 `json:"total_correct"`
	TotalIncorrect int64 `json:"total_incorrect"`
	TotalUnsure    int64 `json:"total_unsure"`
}
