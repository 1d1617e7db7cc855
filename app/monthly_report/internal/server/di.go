package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/biz"
	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/data"
	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/service"
)

// ProviderSet 是月报服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Data providers
	data.NewData,
	data.NewReportRepo,
	data.NewSessionRepo,
	data.NewNarrativeProvider,

	// Biz providers
	biz.NewQuestionFlow,
	biz.NewSessionUseCase,
	biz.NewAssembler,
	biz.NewReportUseCase,

	// Service providers
	service.NewIdentity,
	service.NewConversationService,
	service.NewReportService,
)
