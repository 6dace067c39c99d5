package model

// swagger:model Section
type Section struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"section_id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	BaseModel

	Questions []Question `gorm:"foreignKey:SectionID" json:"-"`
}

func (Section) TableName() string {
	return "sections"
}

// SectionSummary is a section row joined with its question count.
type SectionSummary struct {
	ID            uint   `json:"section_id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	QuestionCount int64  `json:"question_count"`
}
