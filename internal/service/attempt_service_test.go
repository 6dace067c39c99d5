package service

import (
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/util"
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBonus(t *testing.T) {
	cases := []struct {
		elapsed int
		want    int
	}{
		{0, 10},
		{59, 10},
		{60, 5},
		{90, 5},
		{119, 5},
		{120, 0},
		{3600, 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Bonus(tc.elapsed), "elapsed %d", tc.elapsed)
	}
}

func TestGradeSubmission(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.user(t, "joseph")
	section := f.section(t, "Genesis")
	other := f.section(t, "Romans")

	q1 := f.question(t, validQuestion(section.ID, "Who was sold into Egypt?", 1))
	q2 := f.question(t, validQuestion(section.ID, "Who offered himself in Benjamin's place?", 2))
	foreign := f.question(t, validQuestion(other.ID, "Who wrote Romans?", 3))

	feedback, err := f.attempt.GradeSubmission(ctx, user.ID, section.ID, map[uint]int{
		q2.ID:         4,
		q1.ID:         1,
		foreign.ID:    3,
		q2.ID + 10000: 1,
	})
	require.NoError(t, err)
	require.Len(t, feedback, 2)

	require.Equal(t, q1.ID, feedback[0].QuestionID)
	require.Equal(t, util.ResultCorrect, feedback[0].Result)
	require.Equal(t, 1, feedback[0].UserAnswer)
	require.Equal(t, 1, feedback[0].CorrectAnswer)

	require.Equal(t, q2.ID, feedback[1].QuestionID)
	require.Equal(t, util.ResultIncorrect, feedback[1].Result)
	require.Equal(t, 4, feedback[1].UserAnswer)
	require.Equal(t, 2, feedback[1].CorrectAnswer)

	require.Equal(t, 1, CountCorrect(feedback))

	records, err := f.progress.MyProgress(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		require.Equal(t, section.ID, r.SectionID)
		require.False(t, r.IsUnsure)
		require.Equal(t, r.QuestionID == q1.ID, r.IsCorrect)
	}
}

func TestGradeSubmissionRejectsOptionOutOfRange(t *testing.T) {
	f := newFixture(t, nil)
	user := f.user(t, "jacob")
	section := f.section(t, "Genesis")
	q := f.question(t, validQuestion(section.ID, "Who wrestled with God?", 1))

	_, err := f.attempt.GradeSubmission(context.Background(), user.ID, section.ID, map[uint]int{q.ID: 5})
	var verr *util.ValidationError
	require.ErrorAs(t, err, &verr)

	records, err := f.progress.MyProgress(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestGradeSubmissionEmpty(t *testing.T) {
	f := newFixture(t, nil)
	user := f.user(t, "leah")
	section := f.section(t, "Genesis")

	feedback, err := f.attempt.GradeSubmission(context.Background(), user.ID, section.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, feedback)
	require.Empty(t, feedback)
}

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

func TestRecordAttemptAssignsNumbers(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	inv := &countingInvalidator{}
	f.attempt.Leaderboard = inv
	user := f.user(t, "rachel")
	section := f.section(t, "Genesis")

	status, err := f.attempt.AttemptStatus(ctx, user.ID, section.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, status.AttemptsMade)
	require.Equal(t, 1, status.NextAttemptNumber)

	for i := 1; i <= 3; i++ {
		score, err := f.attempt.RecordAttempt(ctx, RecordAttemptInput{
			UserID:    user.ID,
			SectionID: section.ID,
			Score:     i * 2,
			TimeTaken: 45,
		})
		require.NoError(t, err)
		require.Equal(t, i, score.AttemptNumber)
	}

	status, err = f.attempt.AttemptStatus(ctx, user.ID, section.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, status.AttemptsMade)
	require.Equal(t, 4, status.NextAttemptNumber)
	require.Equal(t, 3, inv.calls)
}

func TestRecordAttemptExplicitNumberConflict(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.user(t, "benjamin")
	section := f.section(t, "Genesis")

	in := RecordAttemptInput{UserID: user.ID, SectionID: section.ID, AttemptNumber: 1, Score: 4, TimeTaken: 30}
	_, err := f.attempt.RecordAttempt(ctx, in)
	require.NoError(t, err)

	in.Score = 9
	_, err = f.attempt.RecordAttempt(ctx, in)
	require.ErrorIs(t, err, util.ErrAttemptConflict)

	scores, err := f.attempt.MyScores(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	require.Equal(t, 4, scores[0].Score)

	// the server-assigned path continues after the explicit number
	score, err := f.attempt.RecordAttempt(ctx, RecordAttemptInput{UserID: user.ID, SectionID: section.ID, Score: 1})
	require.NoError(t, err)
	require.Equal(t, 2, score.AttemptNumber)
}

func TestRecordAttemptValidation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.user(t, "dinah")
	section := f.section(t, "Genesis")

	var verr *util.ValidationError
	_, err := f.attempt.RecordAttempt(ctx, RecordAttemptInput{UserID: user.ID, SectionID: section.ID, Score: -1})
	require.ErrorAs(t, err, &verr)
	_, err = f.attempt.RecordAttempt(ctx, RecordAttemptInput{UserID: user.ID, SectionID: section.ID, TimeTaken: -5})
	require.ErrorAs(t, err, &verr)

	_, err = f.attempt.RecordAttempt(ctx, RecordAttemptInput{UserID: user.ID, SectionID: section.ID + 99, Score: 3})
	require.ErrorIs(t, err, util.ErrSectionNotFound)
}

func TestRecordAttemptConcurrentSubmissions(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.user(t, "judah")
	section := f.section(t, "Genesis")

	const n = 8
	numbers := make([]int, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			score, err := f.attempt.RecordAttempt(ctx, RecordAttemptInput{UserID: user.ID, SectionID: section.ID, Score: i})
			errs[i] = err
			if err == nil {
				numbers[i] = score.AttemptNumber
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	sort.Ints(numbers)
	for i, num := range numbers {
		require.Equal(t, i+1, num)
	}
}

func TestCompleteSection(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.attempt.Now = func() time.Time { return fixed }
	user := f.user(t, "asher")
	section := f.section(t, "Genesis")

	withVerse := func(text, verse string) QuestionInput {
		in := validQuestion(section.ID, text, 1)
		in.BibleText = verse
		return in
	}
	f.question(t, withVerse("q1", "Genesis 37:3"))
	f.question(t, withVerse("q2", "Genesis 37:3"))
	f.question(t, withVerse("q3", "Genesis 45:4"))
	f.question(t, withVerse("q4", ""))

	result, err := f.attempt.CompleteSection(ctx, user.ID, section.ID, CompletionInput{
		TimeTakenSeconds: 90,
		TotalCorrect:     7,
		TotalIncorrect:   2,
		TotalUnsure:      1,
	})
	require.NoError(t, err)
	require.Equal(t, 5, result.BonusPoints)
	require.Equal(t, 12, result.FinalScore)
	require.ElementsMatch(t, []string{"Genesis 37:3", "Genesis 45:4"}, result.BibleVerses)

	completions, err := f.attempt.Completions(ctx, user.ID, section.ID)
	require.NoError(t, err)
	require.Len(t, completions, 1)
	require.Equal(t, 5, completions[0].BonusPoints)
	require.Equal(t, 7, completions[0].TotalCorrect)
	require.True(t, fixed.Equal(completions[0].DateCompleted))
}

func TestCompleteSectionWithoutVerses(t *testing.T) {
	f := newFixture(t, nil)
	user := f.user(t, "gad")
	section := f.section(t, "Zechariah")

	result, err := f.attempt.CompleteSection(context.Background(), user.ID, section.ID, CompletionInput{TimeTakenSeconds: 30, TotalCorrect: 3})
	require.NoError(t, err)
	require.Equal(t, 10, result.BonusPoints)
	require.Equal(t, 13, result.FinalScore)
	require.NotNil(t, result.BibleVerses)
	require.Empty(t, result.BibleVerses)
}

func TestCompleteSectionRejectsBadInput(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.user(t, "naphtali")
	section := f.section(t, "Genesis")

	var verr *util.ValidationError
	_, err := f.attempt.CompleteSection(ctx, user.ID, section.ID, CompletionInput{TimeTakenSeconds: -1})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "time_taken_seconds", verr.Field)

	_, err = f.attempt.CompleteSection(ctx, user.ID, section.ID+50, CompletionInput{TimeTakenSeconds: 10})
	require.ErrorIs(t, err, util.ErrSectionNotFound)

	completions, err := f.attempt.Completions(ctx, user.ID, section.ID)
	require.NoError(t, err)
	require.Equal(t, []model.SectionCompletion{}, completions)
}
