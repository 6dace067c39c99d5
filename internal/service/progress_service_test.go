package service

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/util"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgressRecordAndPerformance(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.user(t, "timothy")
	section := f.section(t, "Romans")
	q1 := f.question(t, validQuestion(section.ID, "q1", 1))
	q2 := f.question(t, validQuestion(section.ID, "q2", 1))
	q3 := f.question(t, validQuestion(section.ID, "q3", 1))

	for _, in := range []ProgressInput{
		{SectionID: section.ID, QuestionID: q1.ID, IsCorrect: true},
		{SectionID: section.ID, QuestionID: q2.ID},
		{SectionID: section.ID, QuestionID: q3.ID, IsUnsure: true},
	} {
		_, err := f.progress.Record(ctx, user.ID, in)
		require.NoError(t, err)
	}

	perf, err := f.progress.SectionPerformance(ctx, user.ID, section.ID)
	require.NoError(t, err)
	require.Equal(t, model.SectionPerformance{TotalCorrect: 1, TotalIncorrect: 1, TotalUnsure: 1}, *perf)
}

func TestProgressRecordChecksQuestion(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.user(t, "titus")
	genesis := f.section(t, "Genesis")
	romans := f.section(t, "Romans")
	q := f.question(t, validQuestion(genesis.ID, "q", 1))

	var verr *util.ValidationError
	_, err := f.progress.Record(ctx, user.ID, ProgressInput{SectionID: romans.ID, QuestionID: q.ID})
	require.ErrorAs(t, err, &verr)

	_, err = f.progress.Record(ctx, user.ID, ProgressInput{SectionID: genesis.ID, QuestionID: q.ID + 40})
	require.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestMyProgressEmpty(t *testing.T) {
	f := newFixture(t, nil)
	user := f.user(t, "philemon")

	records, err := f.progress.MyProgress(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
}
