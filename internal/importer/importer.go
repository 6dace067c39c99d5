package importer

import (
	"bible_trivia_backend/internal/service"
	"bible_trivia_backend/pkg/logger"
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

const verseChunkSize = 1000

// verseLine is one record of a JSON-lines scripture dump.
type verseLine struct {
	BookName      string `json:"book_name"`
	Chapter       int    `json:"chapter"`
	Verse         int    `json:"verse"`
	Text          string `json:"text"`
	TranslationID string `json:"translation_id"`
}

// ParseVerses reads one JSON object per line. Blank lines are ignored.
func ParseVerses(r io.Reader) ([]service.VerseInput, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var verses []service.VerseInput
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var v verseLine
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		verses = append(verses, service.VerseInput{
			BookName: v.BookName,
			Chapter:  v.Chapter,
			Verse:    v.Verse,
			Version:  v.TranslationID,
			Text:     v.Text,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return verses, nil
}

// SectionSeed names a section to create before its questions.
type SectionSeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// QuestionSeed refers to its section by name instead of id.
type QuestionSeed struct {
	SectionName string `json:"section_name"`
	service.QuestionInput
}

type QuestionFile struct {
	Sections  []SectionSeed  `json:"sections"`
	Questions []QuestionSeed `json:"questions"`
}

func ParseQuestions(r io.Reader) (*QuestionFile, error) {
	var file QuestionFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

// Summary counts what an import stored and skipped.
type Summary struct {
	SectionsCreated int
	Created         int
	Skipped         []service.SkippedItem
}

type Importer struct {
	Content *service.ContentService
	Bible   *service.BibleService
}

func New(content *service.ContentService, bible *service.BibleService) *Importer {
	return &Importer{Content: content, Bible: bible}
}

// ImportVerses loads verses in chunks. Verses already stored are skipped, so a
// rerun over the same file stores nothing new.
func (im *Importer) ImportVerses(ctx context.Context, r io.Reader) (*Summary, error) {
	verses, err := ParseVerses(r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for start := 0; start < len(verses); start += verseChunkSize {
		end := start + verseChunkSize
		if end > len(verses) {
			end = len(verses)
		}
		result, err := im.Bible.CreateBatch(ctx, verses[start:end])
		if err != nil {
			return nil, fmt.Errorf("verses %d-%d: %w", start, end-1, err)
		}
		summary.Created += len(result.Created)
		for _, skip := range result.Skipped {
			skip.Index += start
			summary.Skipped = append(summary.Skipped, skip)
		}
	}

	logger.Log.Info("verse import finished", zap.Int("created", summary.Created), zap.Int("skipped", len(summary.Skipped)))
	return summary, nil
}

// ImportQuestions creates missing sections, then validates and stores questions
// through the same path as the HTTP batch endpoint.
func (im *Importer) ImportQuestions(ctx context.Context, r io.Reader) (*Summary, error) {
	file, err := ParseQuestions(r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	sectionIDs := make(map[string]uint, len(file.Sections))
	for _, seed := range file.Sections {
		section, created, err := im.Content.EnsureSection(ctx, seed.Name, seed.Description)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", seed.Name, err)
		}
		if created {
			summary.SectionsCreated++
		}
		sectionIDs[section.Name] = section.ID
	}

	inputs := make([]service.QuestionInput, 0, len(file.Questions))
	origin := make([]int, 0, len(file.Questions))
	for i, seed := range file.Questions {
		in := seed.QuestionInput
		if seed.SectionName != "" {
			id, ok := sectionIDs[strings.TrimSpace(seed.SectionName)]
			if !ok {
				summary.Skipped = append(summary.Skipped, service.SkippedItem{
					Index:  i,
					Reason: fmt.Sprintf("unknown section %q", seed.SectionName),
				})
				continue
			}
			in.SectionID = id
		}
		inputs = append(inputs, in)
		origin = append(origin, i)
	}

	result, err := im.Content.CreateQuestions(ctx, inputs)
	if err != nil {
		return nil, err
	}
	summary.Created = len(result.Created)
	for _, skip := range result.Skipped {
		skip.Index = origin[skip.Index]
		summary.Skipped = append(summary.Skipped, skip)
	}

	logger.Log.Info("question import finished",
		zap.Int("sections_created", summary.SectionsCreated),
		zap.Int("created", summary.Created),
		zap.Int("skipped", len(summary.Skipped)),
	)
	return summary, nil
}
