package model

const DefaultBibleVersion = "KJV"

// swagger:model BibleVerse
type BibleVerse struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"verse_id"`
	BookName string `gorm:"size:100;not null;uniqueIndex:idx_bible_verses_ref,priority:1" json:"book_name"`
	Chapter  int    `gorm:"not null;uniqueIndex:idx_bible_verses_ref,priority:2" json:"chapter"`
	Verse    int    `gorm:"not null;uniqueIndex:idx_bible_verses_ref,priority:3" json:"verse"`
	Version  string `gorm:"size:50;not null;default:'KJV';uniqueIndex:idx_bible_verses_ref,priority:4" json:"version"`
	Text     string `gorm:"type:text;not null" json:"text"`
}

func (BibleVerse) TableName() string {
	return "bible_verses"
}

// VerseKey identifies a verse within one translation.
type VerseKey struct {
	BookName string
	Chapter  int
	Verse    int
	Version  string
}

func (v *BibleVerse) Key() VerseKey {
	return VerseKey{BookName: v.BookName, Chapter: v.Chapter, Verse: v.Verse, Version: v.Version}
}
