package biz

import (
	"context"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/monthly_report/app/monthly_report/pkg/extract"
	"github.com/iWorld-y/monthly_report/app/monthly_report/pkg/flow"
)

// 各字段的默认值，保证回答缺失时也能生成月报
const (
	defaultTotalHours  = 160.0
	defaultSalesEmails = 40
	defaultLLMTimeout  = 60 * time.Second
)

// Assembler 把会话回答组装成月报记录
type Assembler struct {
	flow     *flow.Flow
	provider NarrativeProvider
	log      *log.Helper
}

// NewAssembler provider 可以为 nil，此时只使用模板
func NewAssembler(f *flow.Flow, provider NarrativeProvider, logger log.Logger) *Assembler {
	return &Assembler{
		flow:     f,
		provider: provider,
		log:      log.NewHelper(logger),
	}
}

// Assemble 提取数值、生成正文并规范标题，不做持久化
func (a *Assembler) Assemble(ctx context.Context, s *Session, apiKey string) (*Report, error) {
	m, err := ParseMonth(s.ReportMonth)
	if err != nil {
		return nil, ErrInvalidInput("%v", err)
	}

	r := a.extract(s)
	r.OwnerID = s.OwnerID
	r.ReportMonth = m.String()

	attempts := make([]Attempt, 0, 2)
	if a.provider != nil {
		attempts = append(attempts, Attempt{
			Source: SourceAI,
			Run: func(ctx context.Context) (string, error) {
				return a.generate(ctx, s, m, apiKey)
			},
		})
	}
	attempts = append(attempts, Attempt{
		Source: SourceTemplate,
		Run: func(context.Context) (string, error) {
			return renderTemplate(a.flow, s, r, m)
		},
	})

	text, source, err := FirstSuccess(ctx, func(src NarrativeSource, err error) {
		a.log.WithContext(ctx).Warnf("narrative source %s failed for session %s: %v", src, s.ID, err)
	}, attempts...)
	if err != nil {
		return nil, err
	}

	r.Narrative = NormalizeTitle(text, m)
	r.NarrativeSource = source
	return r, nil
}

func (a *Assembler) generate(ctx context.Context, s *Session, m Month, apiKey string) (string, error) {
	gen, err := a.provider.Resolve(ctx, apiKey)
	if err != nil {
		return "", err
	}
	timeout := a.provider.Timeout()
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return gen.Generate(ctx, narrativeSystemPrompt, buildPrompt(a.flow, s, m))
}

func (a *Assembler) extract(s *Session) *Report {
	r := &Report{
		CurrentPhase:   a.text(s, flow.FieldCurrentPhase),
		FamilyStatus:   a.text(s, flow.FieldFamilyStatus),
		TotalWorkHours: extract.ExtractFloat(a.text(s, flow.FieldTotalHours), defaultTotalHours),
		CodingHours:    extract.ExtractFloat(a.text(s, flow.FieldCodingHours), 0),
		MeetingHours:   extract.ExtractFloat(a.text(s, flow.FieldMeetingHours), 0),
		ReceivedAmount: extract.Yen(a.text(s, flow.FieldIncome), 0),
		GoodPoints:     a.text(s, flow.FieldGoodPoints),
		Challenges:     a.text(s, flow.FieldChallenges),
		NextMonthGoals: a.text(s, flow.FieldNextMonthGoals),
	}

	if _, ok := a.flow.QuestionFor(flow.FieldSalesSummary); ok {
		r.SalesEmailsSent, r.SalesReplies, r.SalesMeetings = salesFromSummary(a.text(s, flow.FieldSalesSummary))
	} else {
		r.SalesEmailsSent = extract.ExtractInt(a.text(s, flow.FieldSalesEmails), 0)
		r.SalesReplies = extract.ExtractInt(a.text(s, flow.FieldSalesReplies), 0)
		r.SalesMeetings = extract.ExtractInt(a.text(s, flow.FieldSalesMeetings), 0)
	}
	return r
}

// salesFromSummary 按出现顺序取前三个整数作为 送信/返信/商談 件数
//
// 一个数字都没有时送信件数为 40，其余为 0。
func salesFromSummary(text string) (emails, replies, meetings int) {
	nums := extract.Integers(text)
	emails = defaultSalesEmails
	if len(nums) > 0 {
		emails = nums[0]
	}
	if len(nums) > 1 {
		replies = nums[1]
	}
	if len(nums) > 2 {
		meetings = nums[2]
	}
	return emails, replies, meetings
}

func (a *Assembler) text(s *Session, field flow.Field) string {
	q, ok := a.flow.QuestionFor(field)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s.AnswerText(q.ID))
}
