package importer

import (
	"bible_trivia_backend/internal/config"
	"bible_trivia_backend/internal/repository"
	"bible_trivia_backend/internal/service"
	"bible_trivia_backend/internal/testutil"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const versesJSONL = `{"book_name":"Genesis","chapter":1,"verse":1,"text":"In the beginning God created the heaven and the earth.","translation_id":"KJV"}
{"book_name":"Genesis","chapter":1,"verse":2,"text":"And the earth was without form, and void.","translation_id":"KJV"}

{"book_name":"Genesis","chapter":1,"verse":3,"text":"And God said, Let there be light.","translation_id":"kjv"}
`

const questionsJSON = `{
  "sections": [
    {"name": "Genesis", "description": "The story of Joseph"},
    {"name": "Romans"}
  ],
  "questions": [
    {
      "section_name": "Genesis",
      "question_text": "Which son did Jacob love most?",
      "option1": "Joseph", "option2": "Reuben", "option3": "Judah", "option4": "Levi",
      "correct_option": 1,
      "difficulty": "easy",
      "topic": "Joseph's Story",
      "tags": ["family", "jealousy"],
      "bible_text": "Genesis 37:3"
    },
    {
      "section_name": "Exodus",
      "question_text": "Who led Israel out of Egypt?",
      "option1": "Moses", "option2": "Aaron", "option3": "Joshua", "option4": "Caleb",
      "correct_option": 1,
      "difficulty": "easy",
      "topic": "Joseph's Story"
    },
    {
      "section_name": "Romans",
      "question_text": "Who have sinned?",
      "option1": "All", "option2": "Some", "option3": "None", "option4": "Gentiles",
      "correct_option": 9,
      "difficulty": "easy",
      "topic": "All Have Sinned"
    },
    {
      "section_name": "Romans",
      "question_text": "What are we justified by?",
      "option1": "Faith", "option2": "Works", "option3": "Law", "option4": "Lineage",
      "correct_option": 1,
      "difficulty": "medium",
      "topic": "Justification by Faith",
      "tags": ["faith", "justification"]
    }
  ]
}`

func newImporter(t *testing.T) *Importer {
	t.Helper()
	db := testutil.NewDB(t)
	content := service.NewContentService(repository.NewSectionRepository(db), repository.NewQuestionRepository(db))
	bible := service.NewBibleService(repository.NewBibleVerseRepository(db))
	return New(content, bible)
}

func TestParseVerses(t *testing.T) {
	verses, err := ParseVerses(strings.NewReader(versesJSONL))
	require.NoError(t, err)
	require.Len(t, verses, 3)
	require.Equal(t, service.VerseInput{
		BookName: "Genesis",
		Chapter:  1,
		Verse:    1,
		Version:  "KJV",
		Text:     "In the beginning God created the heaven and the earth.",
	}, verses[0])

	_, err = ParseVerses(strings.NewReader("{\"book_name\":\"Genesis\"}\nnot json\n"))
	require.ErrorContains(t, err, "line 2")
}

func TestImportVersesTwiceStoresOnce(t *testing.T) {
	im := newImporter(t)
	ctx := context.Background()

	first, err := im.ImportVerses(ctx, strings.NewReader(versesJSONL))
	require.NoError(t, err)
	require.Equal(t, 3, first.Created)
	require.Empty(t, first.Skipped)

	second, err := im.ImportVerses(ctx, strings.NewReader(versesJSONL))
	require.NoError(t, err)
	require.Equal(t, 0, second.Created)
	require.Len(t, second.Skipped, 3)

	page, err := im.Bible.List(ctx, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 3, page.Total)
}

func TestImportQuestions(t *testing.T) {
	im := newImporter(t)
	ctx := context.Background()

	summary, err := im.ImportQuestions(ctx, strings.NewReader(questionsJSON))
	require.NoError(t, err)
	require.Equal(t, 2, summary.SectionsCreated)
	require.Equal(t, 2, summary.Created)
	require.Len(t, summary.Skipped, 2)

	skipped := map[int]string{}
	for _, s := range summary.Skipped {
		skipped[s.Index] = s.Reason
	}
	require.Contains(t, skipped[1], "Exodus")
	require.Contains(t, skipped[2], "correct_option")

	sections, err := im.Content.ListSections(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	require.EqualValues(t, 1, sections[0].QuestionCount)
	require.EqualValues(t, 1, sections[1].QuestionCount)

	// sections are reused on a second run
	again, err := im.ImportQuestions(ctx, strings.NewReader(questionsJSON))
	require.NoError(t, err)
	require.Equal(t, 0, again.SectionsCreated)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kjv.jsonl"), []byte(versesJSONL), 0o644))

	r, err := FileSource{Dir: dir}.Open(context.Background(), "kjv.jsonl")
	require.NoError(t, err)
	defer r.Close()
	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, versesJSONL, string(raw))

	_, err = FileSource{Dir: dir}.Open(context.Background(), "missing.jsonl")
	require.Error(t, err)
}

func TestNewMinioSourceRequiresBucket(t *testing.T) {
	_, err := NewMinioSource(&config.StorageConfig{MinioEndpoint: "localhost:9000"})
	require.Error(t, err)
}
