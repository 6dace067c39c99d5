package model

import "gorm.io/datatypes"

// swagger:model Question
type Question struct {
	ID            uint                        `gorm:"primaryKey;autoIncrement" json:"question_id"`
	SectionID     uint                        `gorm:"index;not null" json:"section_id"`
	QuestionText  string                      `gorm:"type:text;not null" json:"question_text"`
	Option1       string                      `gorm:"size:255;not null" json:"option1"`
	Option2       string                      `gorm:"size:255;not null" json:"option2"`
	Option3       string                      `gorm:"size:255;not null" json:"option3"`
	Option4       string                      `gorm:"size:255;not null" json:"option4"`
	CorrectOption int                         `gorm:"not null" json:"correct_option"` // 1-based
	Difficulty    Difficulty                  `gorm:"size:16;index;not null" json:"difficulty"`
	Topic         Topic                       `gorm:"size:100;not null" json:"topic"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	Hint          string                      `gorm:"type:text" json:"hint,omitempty"`

	BibleReference             string    `gorm:"size:255" json:"bible_reference,omitempty"`
	BibleText                  string    `gorm:"type:text" json:"bible_text,omitempty"`
	BibleReferenceBook         BibleBook `gorm:"size:32" json:"bible_reference_book,omitempty"`
	BibleReferenceStartChapter *int      `json:"bible_reference_start_chapter,omitempty"`
	BibleReferenceEndChapter   *int      `json:"bible_reference_end_chapter,omitempty"`
	BibleReferenceStartVerse   *int      `json:"bible_reference_start_verse,omitempty"`
	BibleReferenceEndVerse     *int      `json:"bible_reference_end_verse,omitempty"`

	BaseModel
}

func (Question) TableName() string {
	return "questions"
}

// Options returns the four option strings in display order.
func (q *Question) Options() [4]string {
	return [4]string{q.Option1, q.Option2, q.Option3, q.Option4}
}

// IsCorrect reports whether the 1-based option matches the stored answer.
func (q *Question) IsCorrect(option int) bool {
	return option == q.CorrectOption
}
