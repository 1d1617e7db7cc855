package service

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	pb "github.com/iWorld-y/monthly_report/app/monthly_report/api/report/v1"
	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/biz"
)

const stateCompleted = "completed"

type ConversationService struct {
	sessions *biz.SessionUseCase
	reports  *biz.ReportUseCase
	identity *Identity
	log      *log.Helper
}

var _ pb.ConversationHTTPServer = (*ConversationService)(nil)

func NewConversationService(sessions *biz.SessionUseCase, reports *biz.ReportUseCase, identity *Identity, logger log.Logger) *ConversationService {
	return &ConversationService{
		sessions: sessions,
		reports:  reports,
		identity: identity,
		log:      log.NewHelper(logger),
	}
}

func (s *ConversationService) StartConversation(ctx context.Context, req *pb.StartConversationRequest) (*pb.ConversationReply, error) {
	owner, err := s.identity.OwnerID(ctx)
	if err != nil {
		return nil, err
	}
	v, err := s.sessions.Start(ctx, owner, req.ReportMonth)
	if err != nil {
		return nil, err
	}
	return toConversationReply(v), nil
}

func (s *ConversationService) SubmitAnswer(ctx context.Context, req *pb.SubmitAnswerRequest) (*pb.ConversationReply, error) {
	if req.SessionId == "" {
		return nil, biz.ErrInvalidInput("session_id is required")
	}
	if err := s.checkOwner(ctx, req.SessionId); err != nil {
		return nil, err
	}
	v, err := s.sessions.SubmitAnswer(ctx, req.SessionId, req.Answer, req.AdditionalContext)
	if err != nil {
		return nil, err
	}
	return toConversationReply(v), nil
}

func (s *ConversationService) GetSession(ctx context.Context, req *pb.GetSessionRequest) (*pb.ConversationReply, error) {
	if err := s.checkOwner(ctx, req.SessionId); err != nil {
		return nil, err
	}
	v, err := s.sessions.Get(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	return toConversationReply(v), nil
}

func (s *ConversationService) GenerateReport(ctx context.Context, req *pb.GenerateReportRequest) (*pb.GenerateReportReply, error) {
	if req.SessionId == "" {
		return nil, biz.ErrInvalidInput("session_id is required")
	}
	owner, err := s.identity.OwnerID(ctx)
	if err != nil {
		return nil, err
	}
	r, err := s.reports.Generate(ctx, owner, req.SessionId, apiKeyFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return &pb.GenerateReportReply{
		Message:            "月報が作成されました",
		ReportId:           r.ID,
		ReportMonth:        r.ReportMonth,
		AiGeneratedContent: r.Narrative,
		NarrativeSource:    string(r.NarrativeSource),
	}, nil
}

func (s *ConversationService) PreviewQuestions(ctx context.Context, _ *pb.PreviewQuestionsRequest) (*pb.PreviewQuestionsReply, error) {
	f := s.sessions.Flow()
	reply := &pb.PreviewQuestionsReply{
		Flow:           f.Name(),
		TotalQuestions: int32(f.TotalQuestions()),
	}
	for _, c := range s.sessions.Preview() {
		reply.Categories = append(reply.Categories, &pb.CategoryPreview{
			Name:          c.Name,
			Title:         c.Title,
			Order:         int32(c.Order),
			QuestionCount: int32(c.QuestionCount),
			Questions:     c.Questions,
		})
	}
	return reply, nil
}

// checkOwner 其他用户的会话按不存在处理
func (s *ConversationService) checkOwner(ctx context.Context, sessionID string) error {
	owner, err := s.identity.OwnerID(ctx)
	if err != nil {
		return err
	}
	v, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if v.Session.OwnerID != owner {
		return biz.ErrSessionNotFound
	}
	return nil
}

func toConversationReply(v *biz.SessionView) *pb.ConversationReply {
	sess := v.Session
	answers := make(map[string]pb.AnswerData, len(sess.Answers))
	for id, a := range sess.Answers {
		answers[string(id)] = pb.AnswerData{Answer: a.Text, AdditionalContext: a.Note}
	}

	reply := &pb.ConversationReply{
		SessionId:      sess.ID,
		Progress:       int32(v.Progress),
		TotalQuestions: int32(v.Total),
		IsComplete:     sess.Complete,
		SessionData: &pb.SessionData{
			SessionId:            sess.ID,
			UserId:               sess.OwnerID,
			ReportMonth:          sess.ReportMonth,
			CurrentCategory:      sess.Category,
			CurrentQuestionIndex: int32(sess.QuestionIndex),
			Answers:              answers,
			CompletedCategories:  append([]string{}, sess.Completed...),
			IsComplete:           sess.Complete,
			CreatedAt:            sess.CreatedAt.Format(time.RFC3339),
		},
	}

	if sess.Complete || v.Question == nil {
		reply.QuestionType = stateCompleted
		reply.Category = stateCompleted
		return reply
	}
	prompt := v.Question.Prompt
	reply.Question = &prompt
	reply.QuestionId = string(v.Question.ID)
	reply.QuestionType = string(v.Question.Kind)
	reply.Example = v.Question.Example
	reply.FollowUp = v.Question.FollowUp
	if v.Category != nil {
		reply.Category = v.Category.Name
		reply.CategoryTitle = v.Category.Title
	}
	return reply
}
