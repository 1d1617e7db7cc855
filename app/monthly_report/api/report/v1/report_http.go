package v1

import (
	context "context"

	http "github.com/go-kratos/kratos/v2/transport/http"
	binding "github.com/go-kratos/kratos/v2/transport/http/binding"
)

var _ = binding.EncodeURL

const (
	OperationConversationStartConversation = "/api.report.v1.Conversation/StartConversation"
	OperationConversationSubmitAnswer      = "/api.report.v1.Conversation/SubmitAnswer"
	OperationConversationGetSession        = "/api.report.v1.Conversation/GetSession"
	OperationConversationGenerateReport    = "/api.report.v1.Conversation/GenerateReport"
	OperationConversationPreviewQuestions  = "/api.report.v1.Conversation/PreviewQuestions"

	OperationReportListReports  = "/api.report.v1.Report/ListReports"
	OperationReportCreateReport = "/api.report.v1.Report/CreateReport"
	OperationReportGetReport    = "/api.report.v1.Report/GetReport"
	OperationReportUpdateReport = "/api.report.v1.Report/UpdateReport"
	OperationReportDeleteReport = "/api.report.v1.Report/DeleteReport"
)

type ConversationHTTPServer interface {
	StartConversation(context.Context, *StartConversationRequest) (*ConversationReply, error)
	SubmitAnswer(context.Context, *SubmitAnswerRequest) (*ConversationReply, error)
	GetSession(context.Context, *GetSessionRequest) (*ConversationReply, error)
	GenerateReport(context.Context, *GenerateReportRequest) (*GenerateReportReply, error)
	PreviewQuestions(context.Context, *PreviewQuestionsRequest) (*PreviewQuestionsReply, error)
}

func RegisterConversationHTTPServer(s *http.Server, srv ConversationHTTPServer) {
	r := s.Route("/")
	r.POST("/api/conversation/start", _Conversation_StartConversation0_HTTP_Handler(srv))
	r.POST("/api/conversation/answer", _Conversation_SubmitAnswer0_HTTP_Handler(srv))
	r.GET("/api/conversation/session/{session_id}", _Conversation_GetSession0_HTTP_Handler(srv))
	r.POST("/api/conversation/generate-report", _Conversation_GenerateReport0_HTTP_Handler(srv))
	r.GET("/api/conversation/questions/preview", _Conversation_PreviewQuestions0_HTTP_Handler(srv))
}

func _Conversation_StartConversation0_HTTP_Handler(srv ConversationHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in StartConversationRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationConversationStartConversation)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.StartConversation(ctx, req.(*StartConversationRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ConversationReply)
		return ctx.Result(200, reply)
	}
}

func _Conversation_SubmitAnswer0_HTTP_Handler(srv ConversationHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in SubmitAnswerRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationConversationSubmitAnswer)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.SubmitAnswer(ctx, req.(*SubmitAnswerRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ConversationReply)
		return ctx.Result(200, reply)
	}
}

func _Conversation_GetSession0_HTTP_Handler(srv ConversationHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GetSessionRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationConversationGetSession)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GetSession(ctx, req.(*GetSessionRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ConversationReply)
		return ctx.Result(200, reply)
	}
}

func _Conversation_GenerateReport0_HTTP_Handler(srv ConversationHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GenerateReportRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationConversationGenerateReport)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GenerateReport(ctx, req.(*GenerateReportRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*GenerateReportReply)
		return ctx.Result(200, reply)
	}
}

func _Conversation_PreviewQuestions0_HTTP_Handler(srv ConversationHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in PreviewQuestionsRequest
		http.SetOperation(ctx, OperationConversationPreviewQuestions)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.PreviewQuestions(ctx, req.(*PreviewQuestionsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*PreviewQuestionsReply)
		return ctx.Result(200, reply)
	}
}

type ReportHTTPServer interface {
	ListReports(context.Context, *ListReportsRequest) (*ListReportsReply, error)
	CreateReport(context.Context, *CreateReportRequest) (*Report, error)
	GetReport(context.Context, *GetReportRequest) (*Report, error)
	UpdateReport(context.Context, *UpdateReportRequest) (*Report, error)
	DeleteReport(context.Context, *DeleteReportRequest) (*DeleteReportReply, error)
}

func RegisterReportHTTPServer(s *http.Server, srv ReportHTTPServer) {
	r := s.Route("/")
	r.GET("/api/reports", _Report_ListReports0_HTTP_Handler(srv))
	r.POST("/api/reports", _Report_CreateReport0_HTTP_Handler(srv))
	r.GET("/api/reports/{id}", _Report_GetReport0_HTTP_Handler(srv))
	r.PUT("/api/reports/{id}", _Report_UpdateReport0_HTTP_Handler(srv))
	r.DELETE("/api/reports/{id}", _Report_DeleteReport0_HTTP_Handler(srv))
}

func _Report_ListReports0_HTTP_Handler(srv ReportHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListReportsRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationReportListReports)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListReports(ctx, req.(*ListReportsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ListReportsReply)
		return ctx.Result(200, reply)
	}
}

func _Report_CreateReport0_HTTP_Handler(srv ReportHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in CreateReportRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationReportCreateReport)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.CreateReport(ctx, req.(*CreateReportRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*Report)
		return ctx.Result(200, reply)
	}
}

func _Report_GetReport0_HTTP_Handler(srv ReportHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GetReportRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationReportGetReport)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GetReport(ctx, req.(*GetReportRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*Report)
		return ctx.Result(200, reply)
	}
}

func _Report_UpdateReport0_HTTP_Handler(srv ReportHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in UpdateReportRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationReportUpdateReport)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.UpdateReport(ctx, req.(*UpdateReportRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*Report)
		return ctx.Result(200, reply)
	}
}

func _Report_DeleteReport0_HTTP_Handler(srv ReportHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in DeleteReportRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationReportDeleteReport)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.DeleteReport(ctx, req.(*DeleteReportRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*DeleteReportReply)
		return ctx.Result(200, reply)
	}
}
