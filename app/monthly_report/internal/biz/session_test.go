package biz

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/monthly_report/app/monthly_report/pkg/flow"
)

func newSessionUseCase(t *testing.T, f *flow.Flow) (*SessionUseCase, *memSessionRepo) {
	t.Helper()
	if f == nil {
		var err error
		f, err = flow.Standard()
		require.NoError(t, err)
	}
	repo := newMemSessionRepo()
	return NewSessionUseCase(repo, f, log.DefaultLogger), repo
}

func TestStartSession(t *testing.T) {
	uc, _ := newSessionUseCase(t, nil)

	v, err := uc.Start(context.Background(), 3, "2024-12")
	require.NoError(t, err)

	assert.NotEmpty(t, v.Session.ID)
	assert.Equal(t, "2024-12", v.Session.ReportMonth)
	assert.Equal(t, 1, v.Progress)
	assert.Equal(t, 9, v.Total)
	require.NotNil(t, v.Question)
	assert.Equal(t, flow.QTotalWorkHours, v.Question.ID)
	assert.Equal(t, "work_time", v.Category.Name)
	assert.Empty(t, v.Session.Answers)
	assert.False(t, v.Session.Complete)
}

func TestStartSessionDefaultMonth(t *testing.T) {
	uc, _ := newSessionUseCase(t, nil)
	uc.now = func() time.Time { return time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC) }

	v, err := uc.Start(context.Background(), 3, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-12", v.Session.ReportMonth)
}

func TestStartSessionInvalidMonth(t *testing.T) {
	uc, _ := newSessionUseCase(t, nil)
	for _, m := range []string{"2024-13", "202412", "Dec 2024"} {
		_, err := uc.Start(context.Background(), 3, m)
		assert.True(t, IsInvalidState(err), m)
	}
}

func TestSubmitAnswerWalksFlow(t *testing.T) {
	uc, _ := newSessionUseCase(t, nil)
	ctx := context.Background()

	v, err := uc.Start(ctx, 3, "2024-12")
	require.NoError(t, err)
	id := v.Session.ID

	for i := 1; i <= 9; i++ {
		assert.False(t, v.Session.Complete, "complete before answer %d", i)
		assert.Equal(t, i, v.Progress)
		v, err = uc.SubmitAnswer(ctx, id, "回答", "")
		require.NoError(t, err)
		assert.LessOrEqual(t, v.Progress, v.Total)
	}

	assert.True(t, v.Session.Complete)
	assert.Nil(t, v.Question)
	assert.Equal(t, 9, v.Progress)
	assert.Len(t, v.Session.Answers, 9)
	assert.Equal(t, []string{"work_time", "sales_activities", "financial", "reflection"}, v.Session.Completed)
}

func TestSubmitAnswerMovesToNextCategory(t *testing.T) {
	uc, _ := newSessionUseCase(t, nil)
	ctx := context.Background()

	v, err := uc.Start(ctx, 3, "2024-12")
	require.NoError(t, err)
	v, err = uc.SubmitAnswer(ctx, v.Session.ID, "160時間", "平日中心")
	require.NoError(t, err)
	assert.Equal(t, flow.QCodingHours, v.Question.ID)

	v, err = uc.SubmitAnswer(ctx, v.Session.ID, "120時間", "")
	require.NoError(t, err)
	assert.Equal(t, "sales_activities", v.Category.Name)
	assert.Equal(t, 0, v.Session.QuestionIndex)
	assert.Equal(t, 3, v.Progress)
	assert.Equal(t, Answer{Text: "160時間", Note: "平日中心"}, v.Session.Answers[flow.QTotalWorkHours])
}

func TestSubmitAnswerOnCompleteSession(t *testing.T) {
	uc, _ := newSessionUseCase(t, nil)
	ctx := context.Background()

	v, err := uc.Start(ctx, 3, "2024-12")
	require.NoError(t, err)
	for i := 0; i < 9; i++ {
		v, err = uc.SubmitAnswer(ctx, v.Session.ID, "x", "")
		require.NoError(t, err)
	}

	_, err = uc.SubmitAnswer(ctx, v.Session.ID, "extra", "")
	require.Error(t, err)
	assert.True(t, IsInvalidState(err))
	assert.EqualValues(t, 409, errors.FromError(err).Code)

	got, err := uc.Get(ctx, v.Session.ID)
	require.NoError(t, err)
	assert.Len(t, got.Session.Answers, 9)
}

func TestSubmitAnswerUnknownSession(t *testing.T) {
	uc, _ := newSessionUseCase(t, nil)
	_, err := uc.SubmitAnswer(context.Background(), "missing", "x", "")
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	_, err = uc.Get(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestSubmitBlankAnswer(t *testing.T) {
	uc, _ := newSessionUseCase(t, nil)
	ctx := context.Background()
	v, err := uc.Start(ctx, 3, "2024-12")
	require.NoError(t, err)

	_, err = uc.SubmitAnswer(ctx, v.Session.ID, "   ", "")
	assert.True(t, IsInvalidState(err))

	got, err := uc.Get(ctx, v.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Progress)
}

func TestProgressWithOutOfOrderCategories(t *testing.T) {
	f, err := flow.New("t",
		flow.Category{Name: "late", Order: 30, Questions: []flow.Question{{ID: flow.QChallenges}}},
		flow.Category{Name: "early", Order: 5, Questions: []flow.Question{{ID: flow.QGoodPoints}, {ID: flow.QGrowthPoints}}},
		flow.Category{Name: "middle", Order: 12, Questions: []flow.Question{{ID: flow.QNextMonthGoals}}},
	)
	require.NoError(t, err)
	uc, _ := newSessionUseCase(t, f)
	ctx := context.Background()

	v, err := uc.Start(ctx, 1, "2024-01")
	require.NoError(t, err)
	assert.Equal(t, "early", v.Category.Name)

	var order []string
	for !v.Session.Complete {
		order = append(order, string(v.Question.ID))
		v, err = uc.SubmitAnswer(ctx, v.Session.ID, "a", "")
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"good_points", "growth_points", "next_month_goals", "challenges"}, order)
	assert.Equal(t, 4, v.Progress)
}

func TestConcurrentSubmitDoesNotDropAnswers(t *testing.T) {
	uc, _ := newSessionUseCase(t, nil)
	ctx := context.Background()
	v, err := uc.Start(ctx, 3, "2024-12")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 9; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.SubmitAnswer(ctx, v.Session.ID, "並行", "")
		}()
	}
	wg.Wait()

	got, err := uc.Get(ctx, v.Session.ID)
	require.NoError(t, err)
	assert.True(t, got.Session.Complete)
	assert.Len(t, got.Session.Answers, 9)
}

func TestGetReturnsSnapshot(t *testing.T) {
	uc, _ := newSessionUseCase(t, nil)
	ctx := context.Background()
	v, err := uc.Start(ctx, 3, "2024-12")
	require.NoError(t, err)
	_, err = uc.SubmitAnswer(ctx, v.Session.ID, "160", "")
	require.NoError(t, err)

	got, err := uc.Get(ctx, v.Session.ID)
	require.NoError(t, err)
	got.Session.Answers[flow.QTotalWorkHours] = Answer{Text: "mutated"}

	again, err := uc.Get(ctx, v.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, "160", again.Session.AnswerText(flow.QTotalWorkHours))
}

func TestPreviewMatchesFlow(t *testing.T) {
	uc, _ := newSessionUseCase(t, nil)
	p := uc.Preview()
	total := 0
	for _, c := range p {
		total += c.QuestionCount
	}
	assert.Equal(t, uc.Flow().TotalQuestions(), total)
}
