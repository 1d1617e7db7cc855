package biz

import (
	"context"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/conf"
	"github.com/iWorld-y/monthly_report/app/monthly_report/pkg/flow"
)

// Answer 单个问题的原始回答
type Answer struct {
	Text string
	Note string
}

// Session 对话式填写的会话状态
type Session struct {
	ID            string
	OwnerID       int64
	ReportMonth   string
	Category      string
	QuestionIndex int
	Answers       map[flow.QuestionID]Answer
	Completed     []string
	Complete      bool
	Generating    bool // 月报生成中，期间不接受回答
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Clone 深拷贝
func (s *Session) Clone() *Session {
	c := *s
	c.Answers = make(map[flow.QuestionID]Answer, len(s.Answers))
	for k, v := range s.Answers {
		c.Answers[k] = v
	}
	c.Completed = append([]string(nil), s.Completed...)
	return &c
}

// IsCompleted 分类是否已答完
func (s *Session) IsCompleted(category string) bool {
	for _, c := range s.Completed {
		if c == category {
			return true
		}
	}
	return false
}

// AnswerText 问题的回答文本，未回答时为空
func (s *Session) AnswerText(id flow.QuestionID) string {
	return s.Answers[id].Text
}

// SessionRepo 会话存储
//
// Update 在同一会话上串行执行 fn，fn 返回错误时不落盘。
type SessionRepo interface {
	Create(ctx context.Context, s *Session) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionView 返回给调用方的会话快照
type SessionView struct {
	Session  *Session
	Question *flow.Question
	Category *flow.Category
	Progress int
	Total    int
}

// NewQuestionFlow 按配置选择问题流程
func NewQuestionFlow(c *conf.Conversation) (*flow.Flow, error) {
	var name string
	if c != nil {
		name = c.Flow
	}
	return flow.ByName(name)
}

// SessionUseCase 会话状态机
type SessionUseCase struct {
	repo SessionRepo
	flow *flow.Flow
	log  *log.Helper
	now  func() time.Time
}

// NewSessionUseCase 创建会话业务逻辑
func NewSessionUseCase(repo SessionRepo, f *flow.Flow, logger log.Logger) *SessionUseCase {
	return &SessionUseCase{
		repo: repo,
		flow: f,
		log:  log.NewHelper(logger),
		now:  time.Now,
	}
}

// Flow 当前使用的问题流程
func (uc *SessionUseCase) Flow() *flow.Flow { return uc.flow }

// Start 开始新会话，month 为空时按 15 日规则取默认月份
func (uc *SessionUseCase) Start(ctx context.Context, ownerID int64, month string) (*SessionView, error) {
	var m Month
	if strings.TrimSpace(month) == "" {
		m = DefaultMonth(uc.now())
	} else {
		var err error
		if m, err = ParseMonth(month); err != nil {
			return nil, ErrInvalidInput("%v", err)
		}
	}

	now := uc.now()
	s, err := uc.repo.Create(ctx, &Session{
		OwnerID:     ownerID,
		ReportMonth: m.String(),
		Category:    uc.flow.First().Name,
		Answers:     make(map[flow.QuestionID]Answer),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	uc.log.WithContext(ctx).Infof("start session %s owner=%d month=%s", s.ID, ownerID, s.ReportMonth)
	return uc.view(s), nil
}

// SubmitAnswer 记录当前问题的回答并前进到下一题
func (uc *SessionUseCase) SubmitAnswer(ctx context.Context, sessionID, text, note string) (*SessionView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput("answer must not be blank")
	}
	s, err := uc.repo.Update(ctx, sessionID, func(s *Session) error {
		return uc.advance(s, Answer{Text: text, Note: note})
	})
	if err != nil {
		return nil, err
	}
	if s.Complete {
		uc.log.WithContext(ctx).Infof("session %s complete", s.ID)
	}
	return uc.view(s), nil
}

// Get 读取会话快照
func (uc *SessionUseCase) Get(ctx context.Context, sessionID string) (*SessionView, error) {
	s, err := uc.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return uc.view(s), nil
}

// Preview 问题流程概览
func (uc *SessionUseCase) Preview() []flow.CategoryPreview {
	return uc.flow.Preview()
}

func (uc *SessionUseCase) advance(s *Session, a Answer) error {
	if s.Generating {
		return ErrSessionGenerating
	}
	if s.Complete {
		return ErrSessionComplete
	}
	cat, ok := uc.flow.Category(s.Category)
	if !ok || s.QuestionIndex >= len(cat.Questions) {
		return ErrInvalidInput("session %s points at unknown question %s[%d]", s.ID, s.Category, s.QuestionIndex)
	}

	s.Answers[cat.Questions[s.QuestionIndex].ID] = a
	s.UpdatedAt = uc.now()

	if s.QuestionIndex+1 < len(cat.Questions) {
		s.QuestionIndex++
		return nil
	}

	s.Completed = append(s.Completed, cat.Name)
	if next, ok := uc.flow.NextCategory(s.IsCompleted); ok {
		s.Category = next.Name
		s.QuestionIndex = 0
		return nil
	}
	s.Complete = true
	return nil
}

func (uc *SessionUseCase) view(s *Session) *SessionView {
	v := &SessionView{
		Session:  s,
		Progress: uc.progress(s),
		Total:    uc.flow.TotalQuestions(),
	}
	if s.Complete {
		return v
	}
	if cat, ok := uc.flow.Category(s.Category); ok {
		v.Category = &cat
		if s.QuestionIndex < len(cat.Questions) {
			q := cat.Questions[s.QuestionIndex]
			v.Question = &q
		}
	}
	return v
}

// progress = 已完成分类的问题数 + 当前题序号(从 1 开始)，不超过总数
func (uc *SessionUseCase) progress(s *Session) int {
	total := uc.flow.TotalQuestions()
	if s.Complete {
		return total
	}
	n := s.QuestionIndex + 1
	for _, name := range s.Completed {
		if c, ok := uc.flow.Category(name); ok {
			n += len(c.Questions)
		}
	}
	if n > total {
		n = total
	}
	return n
}
