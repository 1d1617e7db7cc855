package data

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/biz"
	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/conf"
	"github.com/iWorld-y/monthly_report/app/monthly_report/pkg/flow"
	"github.com/iWorld-y/monthly_report/app/monthly_report/pkg/narrative"
)

func newTestData(t *testing.T) *Data {
	t.Helper()
	d, cleanup, err := NewData(&conf.Data{Database: &conf.Database{
		Driver: "sqlite",
		Source: ":memory:",
	}}, log.DefaultLogger)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return d
}

func TestRebind(t *testing.T) {
	pg := &Data{driver: driverPostgres}
	assert.Equal(t, "a = $1 AND b = $2", pg.rebind("a = ? AND b = ?"))
	lite := &Data{driver: driverSQLite}
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}

func TestNewDataRejectsUnknownDriver(t *testing.T) {
	_, _, err := NewData(&conf.Data{Database: &conf.Database{Driver: "mysql"}}, log.DefaultLogger)
	assert.Error(t, err)
}

func sampleReport(owner int64, month string) *biz.Report {
	return &biz.Report{
		OwnerID:         owner,
		ReportMonth:     month,
		TotalWorkHours:  160,
		SalesEmailsSent: 50,
		ReceivedAmount:  500000,
		Narrative:       "# 月報：2024年12月\n本文",
		NarrativeSource: biz.SourceTemplate,
		GoodPoints:      "新しい技術の習得ができた",
	}
}

func TestReportRepoUpsert(t *testing.T) {
	repo := NewReportRepo(newTestData(t), log.DefaultLogger)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, sampleReport(3, "2024-12"))
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, 160.0, first.TotalWorkHours)
	assert.Equal(t, biz.SourceTemplate, first.NarrativeSource)

	again := sampleReport(3, "2024-12")
	again.TotalWorkHours = 170
	again.NarrativeSource = biz.SourceAI
	second, err := repo.Upsert(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 170.0, second.TotalWorkHours)
	assert.Equal(t, biz.SourceAI, second.NarrativeSource)
	assert.Equal(t, first.CreatedAt.UnixMilli(), second.CreatedAt.UnixMilli())

	items, total, err := repo.List(ctx, 3, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
}

func TestReportRepoCreateDuplicate(t *testing.T) {
	repo := NewReportRepo(newTestData(t), log.DefaultLogger)
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleReport(3, "2024-12"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, sampleReport(3, "2024-12"))
	assert.True(t, kerrors.Is(err, biz.ErrReportExists))

	_, err = repo.Create(ctx, sampleReport(4, "2024-12"))
	assert.NoError(t, err)
}

func TestReportRepoCRUD(t *testing.T) {
	repo := NewReportRepo(newTestData(t), log.DefaultLogger)
	ctx := context.Background()

	for _, m := range []string{"2024-10", "2024-12", "2024-11"} {
		_, err := repo.Create(ctx, sampleReport(3, m))
		require.NoError(t, err)
	}

	items, total, err := repo.List(ctx, 3, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, "2024-12", items[0].ReportMonth)
	assert.Equal(t, "2024-11", items[1].ReportMonth)

	items, _, err = repo.List(ctx, 3, 2, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	target := items[0]

	got, err := repo.Get(ctx, 3, target.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-10", got.ReportMonth)

	_, err = repo.Get(ctx, 99, target.ID)
	assert.True(t, kerrors.Is(err, biz.ErrReportNotFound))

	got.Challenges = "時間管理"
	updated, err := repo.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "時間管理", updated.Challenges)

	require.NoError(t, repo.Delete(ctx, 3, target.ID))
	assert.True(t, kerrors.Is(repo.Delete(ctx, 3, target.ID), biz.ErrReportNotFound))

	missing := *got
	missing.ID = 12345
	_, err = repo.Update(ctx, &missing)
	assert.True(t, kerrors.Is(err, biz.ErrReportNotFound))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: monthly_reports.owner_id (2067)")))
	assert.False(t, isUniqueViolation(errors.New("disk I/O error")))
}

func newTestSessionRepo(t *testing.T, c *conf.Conversation) *sessionRepo {
	t.Helper()
	repo, err := NewSessionRepo(c, log.DefaultLogger)
	require.NoError(t, err)
	return repo.(*sessionRepo)
}

func TestSessionRepoLifecycle(t *testing.T) {
	repo := newTestSessionRepo(t, nil)
	ctx := context.Background()

	s, err := repo.Create(ctx, &biz.Session{OwnerID: 3, ReportMonth: "2024-12", Answers: map[flow.QuestionID]biz.Answer{}})
	require.NoError(t, err)
	assert.Len(t, s.ID, 36)

	updated, err := repo.Update(ctx, s.ID, func(s *biz.Session) error {
		s.Answers[flow.QTotalWorkHours] = biz.Answer{Text: "160"}
		s.QuestionIndex = 1
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.QuestionIndex)

	_, err = repo.Update(ctx, s.ID, func(s *biz.Session) error {
		s.QuestionIndex = 7
		return biz.ErrSessionComplete
	})
	assert.True(t, kerrors.Is(err, biz.ErrSessionComplete))

	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.QuestionIndex)
	assert.Equal(t, "160", got.AnswerText(flow.QTotalWorkHours))

	require.NoError(t, repo.Delete(ctx, s.ID))
	_, err = repo.Get(ctx, s.ID)
	assert.True(t, kerrors.Is(err, biz.ErrSessionNotFound))
	assert.True(t, kerrors.Is(repo.Delete(ctx, s.ID), biz.ErrSessionNotFound))
}

func TestSessionRepoExpiry(t *testing.T) {
	repo := newTestSessionRepo(t, &conf.Conversation{SessionTtl: "1m"})
	now := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	s, err := repo.Create(ctx, &biz.Session{Answers: map[flow.QuestionID]biz.Answer{}})
	require.NoError(t, err)

	now = now.Add(50 * time.Second)
	_, err = repo.Update(ctx, s.ID, func(*biz.Session) error { return nil })
	require.NoError(t, err)

	// Update 会刷新过期时间
	now = now.Add(50 * time.Second)
	_, err = repo.Get(ctx, s.ID)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = repo.Get(ctx, s.ID)
	assert.True(t, kerrors.Is(err, biz.ErrSessionNotFound))
}

func TestSessionRepoEvictsOldest(t *testing.T) {
	repo := newTestSessionRepo(t, &conf.Conversation{MaxSessions: 2})
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		s, err := repo.Create(ctx, &biz.Session{ReportMonth: fmt.Sprintf("2024-0%d", i+1)})
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}
	_, err := repo.Get(ctx, ids[0])
	assert.True(t, kerrors.Is(err, biz.ErrSessionNotFound))
	_, err = repo.Get(ctx, ids[2])
	assert.NoError(t, err)
}

func TestSessionRepoSerialisesUpdates(t *testing.T) {
	repo := newTestSessionRepo(t, nil)
	ctx := context.Background()
	s, err := repo.Create(ctx, &biz.Session{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Update(ctx, s.ID, func(s *biz.Session) error {
				s.QuestionIndex++
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.QuestionIndex)
}

type stubModel struct{ content string }

func (m *stubModel) Generate(context.Context, []*schema.Message, ...model.Option) (*schema.Message, error) {
	return &schema.Message{Role: schema.Assistant, Content: m.content}, nil
}

func (m *stubModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

func TestNarrativeProvider(t *testing.T) {
	build := func(context.Context, narrative.Config) (model.BaseChatModel, error) {
		return &stubModel{content: "本文"}, nil
	}
	p, err := newNarrativeProvider(&conf.LLM{Timeout: "5s"}, build, log.DefaultLogger)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, p.Timeout())

	_, err = p.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, narrative.ErrNoCredential)

	gen, err := p.Resolve(context.Background(), "sk-request")
	require.NoError(t, err)
	out, err := gen.Generate(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "本文", out)
}
