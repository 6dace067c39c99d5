package model

import "fmt"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

type Topic string

// topicValues lists every accepted Topic in declaration order.
var topicValues = []Topic{
	"Joseph's Story",
	"Joseph's Rise to Power",
	"Joseph's Family Reunion",
	"Joseph's Forgiveness and Reconciliation",
	"God's Providence and Sovereignty",
	"Joseph's Dreams and Interpretations",
	"Jacob's Blessings and Prophecies",
	"Judah’s Transformation and Leadership",
	"Jacob's Last Days and Blessings",
	"Zechariah's Visions",
	"Zechariah's Message of Repentance",
	"Zechariah's Future Messianic Hope",
	"Temple Rebuilding and Restoration",
	"God and Israel’s Future",
	"Priestly and Royal Leadership",
	"Justification by Faith",
	"All Have Sinned",
	"God's Righteous Judgment",
	"Abraham's Faith and Promise",
	"Peace with God through Christ",
	"God's Kindness",
	"Union with Christ",
	"The Role of the Law",
	"Struggle with Sin and Grace",
	"Life in the Spirit",
	"God's Wrath and Mercy",
	"God’s Faithfulness to Israel",
	"Adam and Christ Contrast",
}

var topics = func() map[Topic]struct{} {
	set := make(map[Topic]struct{}, len(topicValues))
	for _, v := range topicValues {
		set[v] = struct{}{}
	}
	return set
}()

func ParseTopic(s string) (Topic, error) {
	if _, ok := topics[Topic(s)]; ok {
		return Topic(s), nil
	}
	return "", fmt.Errorf("unknown topic %q", s)
}

type Tag string

// tagValues lists every accepted Tag in declaration order.
var tagValues = []Tag{
	"old testament",
	"new testament",
	"family",
	"jealousy",
	"betrayal",
	"reconciliation",
	"forgiveness",
	"blessings",
	"leadership",
	"legacy",
	"brotherhood",
	"parental blessing",
	"sibling rivalry",
	"providence",
	"sovereignty",
	"faith",
	"promise",
	"repentance",
	"restoration",
	"messianic hope",
	"prophecy",
	"visions",
	"symbolism",
	"covenant",
	"hope",
	"deliverance",
	"redemption",
	"dreams",
	"interpretation",
	"spiritual leadership",
	"priesthood",
	"royal leadership",
	"worship",
	"temple",
	"renewal",
	"holiness",
	"obedience",
	"justification",
	"grace",
	"righteousness",
	"mercy",
	"sin",
	"law",
	"gospel",
	"salvation",
	"faithfulness",
	"judgment",
	"wrath",
	"baptism",
	"atonement",
	"new life",
	"sanctification",
	"regeneration",
	"reconciliation with God",
	"struggle",
	"spiritual battle",
	"transformation",
	"perseverance",
	"endurance",
	"faith and works",
	"suffering",
	"spiritual identity",
	"contrast",
	"adam and christ",
	"death and life",
	"law and grace",
	"israel and gentiles",
	"exile",
	"divine promise",
	"inheritance",
	"divine intervention",
	"reconciliation with brothers",
	"spiritual restoration",
}

var tags = func() map[Tag]struct{} {
	set := make(map[Tag]struct{}, len(tagValues))
	for _, v := range tagValues {
		set[v] = struct{}{}
	}
	return set
}()

func ParseTag(s string) (Tag, error) {
	if _, ok := tags[Tag(s)]; ok {
		return Tag(s), nil
	}
	return "", fmt.Errorf("unknown tag %q", s)
}

type BibleBook string

// bibleBookValues lists every accepted BibleBook in declaration order.
var bibleBookValues = []BibleBook{
	"Genesis",
	"Exodus",
	"Leviticus",
	"Numbers",
	"Deuteronomy",
	"Joshua",
	"Judges",
	"Ruth",
	"1 Samuel",
	"2 Samuel",
	"1 Kings",
	"2 Kings",
	"1 Chronicles",
	"2 Chronicles",
	"Ezra",
	"Nehemiah",
	"Esther",
	"Job",
	"Psalms",
	"Proverbs",
	"Ecclesiastes",
	"Song of Solomon",
	"Isaiah",
	"Jeremiah",
	"Lamentations",
	"Ezekiel",
	"Daniel",
	"Hosea",
	"Joel",
	"Amos",
	"Obadiah",
	"Jonah",
	"Micah",
	"Nahum",
	"Habakkuk",
	"Zephaniah",
	"Haggai",
	"Zechariah",
	"Malachi",
	"Matthew",
	"Mark",
	"Luke",
	"John",
	"Acts",
	"Romans",
	"1 Corinthians",
	"2 Corinthians",
	"Galatians",
	"Ephesians",
	"Philippians",
	"Colossians",
	"1 Thessalonians",
	"2 Thessalonians",
	"1 Timothy",
	"2 Timothy",
	"Titus",
	"Philemon",
	"Hebrews",
	"James",
	"1 Peter",
	"2 Peter",
	"1 John",
	"2 John",
	"3 John",
	"Jude",
	"Revelation",
}

var bibleBooks = func() map[BibleBook]struct{} {
	set := make(map[BibleBook]struct{}, len(bibleBookValues))
	for _, v := range bibleBookValues {
		set[v] = struct{}{}
	}
	return set
}()

func ParseBibleBook(s string) (BibleBook, error) {
	if _, ok := bibleBooks[BibleBook(s)]; ok {
		return BibleBook(s), nil
	}
	return "", fmt.Errorf("unknown bible book %q", s)
}

// BibleBooks returns the canonical book names.
func BibleBooks() []BibleBook {
	out := make([]BibleBook, len(bibleBookValues))
	copy(out, bibleBookValues)
	return out
}
