package biz

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/sync/singleflight"
)

// Report 月报记录，(OwnerID, ReportMonth) 唯一
type Report struct {
	ID              int64
	OwnerID         int64
	ReportMonth     string
	CurrentPhase    string
	FamilyStatus    string
	TotalWorkHours  float64
	CodingHours     float64
	MeetingHours    float64
	SalesEmailsSent int
	SalesReplies    int
	SalesMeetings   int
	ReceivedAmount  float64
	Narrative       string
	NarrativeSource NarrativeSource
	GoodPoints      string
	Challenges      string
	NextMonthGoals  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReportPatch 部分更新，nil 字段保持不变
type ReportPatch struct {
	CurrentPhase    *string
	FamilyStatus    *string
	TotalWorkHours  *float64
	CodingHours     *float64
	MeetingHours    *float64
	SalesEmailsSent *int
	SalesReplies    *int
	SalesMeetings   *int
	ReceivedAmount  *float64
	Narrative       *string
	GoodPoints      *string
	Challenges      *string
	NextMonthGoals  *string
}

// Apply 将补丁写入 r
func (p *ReportPatch) Apply(r *Report) {
	setString(&r.CurrentPhase, p.CurrentPhase)
	setString(&r.FamilyStatus, p.FamilyStatus)
	setFloat(&r.TotalWorkHours, p.TotalWorkHours)
	setFloat(&r.CodingHours, p.CodingHours)
	setFloat(&r.MeetingHours, p.MeetingHours)
	setInt(&r.SalesEmailsSent, p.SalesEmailsSent)
	setInt(&r.SalesReplies, p.SalesReplies)
	setInt(&r.SalesMeetings, p.SalesMeetings)
	setFloat(&r.ReceivedAmount, p.ReceivedAmount)
	if p.Narrative != nil {
		r.Narrative = *p.Narrative
		r.NarrativeSource = SourceManual
	}
	setString(&r.GoodPoints, p.GoodPoints)
	setString(&r.Challenges, p.Challenges)
	setString(&r.NextMonthGoals, p.NextMonthGoals)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// ReportRepo 月报存储
//
// 找不到记录时返回 ErrReportNotFound，Create 遇到重复月份返回 ErrReportExists。
type ReportRepo interface {
	Upsert(ctx context.Context, r *Report) (*Report, error)
	Create(ctx context.Context, r *Report) (*Report, error)
	Update(ctx context.Context, r *Report) (*Report, error)
	Get(ctx context.Context, ownerID, id int64) (*Report, error)
	List(ctx context.Context, ownerID int64, page, size int) ([]*Report, int, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ReportUseCase 月报生成与管理
type ReportUseCase struct {
	repo      ReportRepo
	sessions  SessionRepo
	assembler *Assembler
	group     singleflight.Group
	log       *log.Helper
}

// NewReportUseCase 创建月报业务逻辑
func NewReportUseCase(repo ReportRepo, sessions SessionRepo, assembler *Assembler, logger log.Logger) *ReportUseCase {
	return &ReportUseCase{
		repo:      repo,
		sessions:  sessions,
		assembler: assembler,
		log:       log.NewHelper(logger),
	}
}

// Generate 由会话生成月报并按 (owner, month) 写入，成功后删除会话
//
// 同一会话的并发调用只会组装一次。共享的生成过程不随单个调用方取消，
// 调用方的 ctx 结束时只是自己提前返回。
func (uc *ReportUseCase) Generate(ctx context.Context, ownerID int64, sessionID, apiKey string) (*Report, error) {
	ch := uc.group.DoChan(sessionID, func() (interface{}, error) {
		return uc.generate(context.WithoutCancel(ctx), ownerID, sessionID, apiKey)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		r := *res.Val.(*Report)
		return &r, nil
	}
}

func (uc *ReportUseCase) generate(ctx context.Context, ownerID int64, sessionID, apiKey string) (*Report, error) {
	// 标记为生成中，期间提交的回答会被拒绝
	s, err := uc.sessions.Update(ctx, sessionID, func(s *Session) error {
		if s.OwnerID != ownerID {
			return ErrSessionNotFound
		}
		if s.Generating {
			return ErrSessionGenerating
		}
		s.Generating = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !s.Complete {
		uc.log.WithContext(ctx).Infof("generating report from incomplete session %s", s.ID)
	}

	saved, err := uc.assembleAndSave(ctx, s, apiKey)
	if err != nil {
		uc.release(ctx, sessionID)
		return nil, err
	}

	if err := uc.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		uc.log.WithContext(ctx).Warnf("delete session %s: %v", sessionID, err)
	}
	uc.log.WithContext(ctx).Infof("report %d saved owner=%d month=%s source=%s", saved.ID, saved.OwnerID, saved.ReportMonth, saved.NarrativeSource)
	return saved, nil
}

func (uc *ReportUseCase) assembleAndSave(ctx context.Context, s *Session, apiKey string) (*Report, error) {
	r, err := uc.assembler.Assemble(ctx, s, apiKey)
	if err != nil {
		return nil, err
	}
	saved, err := uc.repo.Upsert(ctx, r)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("save report owner=%d month=%s: %v", r.OwnerID, r.ReportMonth, err)
		return nil, persistErr(err)
	}
	return saved, nil
}

// release 生成失败后恢复会话，允许继续回答或重试
func (uc *ReportUseCase) release(ctx context.Context, sessionID string) {
	_, err := uc.sessions.Update(ctx, sessionID, func(s *Session) error {
		s.Generating = false
		return nil
	})
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		uc.log.WithContext(ctx).Warnf("release session %s: %v", sessionID, err)
	}
}

// Create 手动创建月报，同月已存在时返回 ErrReportExists
func (uc *ReportUseCase) Create(ctx context.Context, r *Report) (*Report, error) {
	m, err := ParseMonth(r.ReportMonth)
	if err != nil {
		return nil, ErrInvalidInput("%v", err)
	}
	r.ReportMonth = m.String()
	if r.Narrative != "" {
		r.Narrative = NormalizeTitle(r.Narrative, m)
	}
	if r.NarrativeSource == "" {
		r.NarrativeSource = SourceManual
	}
	saved, err := uc.repo.Create(ctx, r)
	if err != nil {
		return nil, persistErr(err)
	}
	return saved, nil
}

// Update 部分更新，正文的标题按月报月份规范
func (uc *ReportUseCase) Update(ctx context.Context, ownerID, id int64, p *ReportPatch) (*Report, error) {
	r, err := uc.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, persistErr(err)
	}
	p.Apply(r)
	if p.Narrative != nil && r.Narrative != "" {
		m, err := ParseMonth(r.ReportMonth)
		if err != nil {
			return nil, ErrInvalidInput("%v", err)
		}
		r.Narrative = NormalizeTitle(r.Narrative, m)
	}
	saved, err := uc.repo.Update(ctx, r)
	if err != nil {
		return nil, persistErr(err)
	}
	return saved, nil
}

// Get 读取单个月报
func (uc *ReportUseCase) Get(ctx context.Context, ownerID, id int64) (*Report, error) {
	r, err := uc.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, persistErr(err)
	}
	return r, nil
}

// List 按月份倒序分页
func (uc *ReportUseCase) List(ctx context.Context, ownerID int64, page, size int) ([]*Report, int, error) {
	page, size = NormalizePage(page, size)
	items, total, err := uc.repo.List(ctx, ownerID, page, size)
	if err != nil {
		return nil, 0, persistErr(err)
	}
	return items, total, nil
}

// Delete 删除月报
func (uc *ReportUseCase) Delete(ctx context.Context, ownerID, id int64) error {
	if err := uc.repo.Delete(ctx, ownerID, id); err != nil {
		return persistErr(err)
	}
	return nil
}

// NormalizePage 页码从 1 开始，每页默认 10 条，最多 100 条
func NormalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// persistErr 保留业务错误，其余按存储失败处理
func persistErr(err error) error {
	var e *errors.Error
	if errors.As(err, &e) {
		return err
	}
	return ErrPersistence(err)
}
