package service

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	pb "github.com/iWorld-y/monthly_report/app/monthly_report/api/report/v1"
	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/biz"
)

type ReportService struct {
	uc       *biz.ReportUseCase
	identity *Identity
	log      *log.Helper
}

var _ pb.ReportHTTPServer = (*ReportService)(nil)

func NewReportService(uc *biz.ReportUseCase, identity *Identity, logger log.Logger) *ReportService {
	return &ReportService{
		uc:       uc,
		identity: identity,
		log:      log.NewHelper(logger),
	}
}

func (s *ReportService) ListReports(ctx context.Context, req *pb.ListReportsRequest) (*pb.ListReportsReply, error) {
	owner, err := s.identity.OwnerID(ctx)
	if err != nil {
		return nil, err
	}
	page, size := biz.NormalizePage(int(req.Page), int(req.Size))
	items, total, err := s.uc.List(ctx, owner, page, size)
	if err != nil {
		return nil, err
	}

	list := make([]*pb.Report, 0, len(items))
	for _, r := range items {
		list = append(list, toReport(r))
	}
	return &pb.ListReportsReply{
		Items: list,
		Total: int32(total),
		Page:  int32(page),
		Size:  int32(size),
		Pages: int32((total + size - 1) / size),
	}, nil
}

func (s *ReportService) CreateReport(ctx context.Context, req *pb.CreateReportRequest) (*pb.Report, error) {
	owner, err := s.identity.OwnerID(ctx)
	if err != nil {
		return nil, err
	}
	r, err := s.uc.Create(ctx, &biz.Report{
		OwnerID:         owner,
		ReportMonth:     req.ReportMonth,
		CurrentPhase:    req.CurrentPhase,
		FamilyStatus:    req.FamilyStatus,
		TotalWorkHours:  req.TotalWorkHours,
		CodingHours:     req.CodingHours,
		MeetingHours:    req.MeetingHours,
		SalesEmailsSent: int(req.SalesEmailsSent),
		SalesReplies:    int(req.SalesReplies),
		SalesMeetings:   int(req.SalesMeetings),
		ReceivedAmount:  req.ReceivedAmount,
		Narrative:       req.Narrative,
		NarrativeSource: biz.SourceManual,
		GoodPoints:      req.GoodPoints,
		Challenges:      req.Challenges,
		NextMonthGoals:  req.NextMonthGoals,
	})
	if err != nil {
		return nil, err
	}
	return toReport(r), nil
}

func (s *ReportService) GetReport(ctx context.Context, req *pb.GetReportRequest) (*pb.Report, error) {
	owner, err := s.identity.OwnerID(ctx)
	if err != nil {
		return nil, err
	}
	r, err := s.uc.Get(ctx, owner, req.Id)
	if err != nil {
		return nil, err
	}
	return toReport(r), nil
}

func (s *ReportService) UpdateReport(ctx context.Context, req *pb.UpdateReportRequest) (*pb.Report, error) {
	owner, err := s.identity.OwnerID(ctx)
	if err != nil {
		return nil, err
	}
	r, err := s.uc.Update(ctx, owner, req.Id, &biz.ReportPatch{
		CurrentPhase:    req.CurrentPhase,
		FamilyStatus:    req.FamilyStatus,
		TotalWorkHours:  req.TotalWorkHours,
		CodingHours:     req.CodingHours,
		MeetingHours:    req.MeetingHours,
		SalesEmailsSent: intPtr(req.SalesEmailsSent),
		SalesReplies:    intPtr(req.SalesReplies),
		SalesMeetings:   intPtr(req.SalesMeetings),
		ReceivedAmount:  req.ReceivedAmount,
		Narrative:       req.Narrative,
		GoodPoints:      req.GoodPoints,
		Challenges:      req.Challenges,
		NextMonthGoals:  req.NextMonthGoals,
	})
	if err != nil {
		return nil, err
	}
	return toReport(r), nil
}

func (s *ReportService) DeleteReport(ctx context.Context, req *pb.DeleteReportRequest) (*pb.DeleteReportReply, error) {
	owner, err := s.identity.OwnerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.uc.Delete(ctx, owner, req.Id); err != nil {
		return nil, err
	}
	return &pb.DeleteReportReply{Message: "月報を削除しました"}, nil
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func toReport(r *biz.Report) *pb.Report {
	return &pb.Report{
		Id:              r.ID,
		UserId:          r.OwnerID,
		ReportMonth:     r.ReportMonth,
		CurrentPhase:    r.CurrentPhase,
		FamilyStatus:    r.FamilyStatus,
		TotalWorkHours:  r.TotalWorkHours,
		CodingHours:     r.CodingHours,
		MeetingHours:    r.MeetingHours,
		SalesEmailsSent: int32(r.SalesEmailsSent),
		SalesReplies:    int32(r.SalesReplies),
		SalesMeetings:   int32(r.SalesMeetings),
		ReceivedAmount:  r.ReceivedAmount,
		Narrative:       r.Narrative,
		NarrativeSource: string(r.NarrativeSource),
		GoodPoints:      r.GoodPoints,
		Challenges:      r.Challenges,
		NextMonthGoals:  r.NextMonthGoals,
		CreatedAt:       r.CreatedAt.Format(time.DateTime),
		UpdatedAt:       r.UpdatedAt.Format(time.DateTime),
	}
}
