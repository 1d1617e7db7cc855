package biz

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/errors"
)

const (
	ReasonSessionNotFound    = "SESSION_NOT_FOUND"
	ReasonInvalidState       = "INVALID_STATE"
	ReasonReportNotFound     = "REPORT_NOT_FOUND"
	ReasonReportExists       = "REPORT_EXISTS"
	ReasonPersistenceFailure = "PERSISTENCE_FAILURE"
)

var (
	// ErrSessionNotFound 会话不存在或已过期
	ErrSessionNotFound = errors.NotFound(ReasonSessionNotFound, "セッションが見つかりません")
	// ErrSessionComplete 会话已完成，不再接受回答
	ErrSessionComplete = errors.Conflict(ReasonInvalidState, "session is already complete")
	// ErrSessionGenerating 会话正在生成月报
	ErrSessionGenerating = errors.Conflict(ReasonInvalidState, "report generation in progress")
	// ErrReportNotFound 月报不存在
	ErrReportNotFound = errors.NotFound(ReasonReportNotFound, "report not found")
	// ErrReportExists 同一月份的月报已存在
	ErrReportExists = errors.Conflict(ReasonReportExists, "該当月の月報は既に存在します")
)

// ErrInvalidInput 请求参数不合法
func ErrInvalidInput(format string, args ...interface{}) *errors.Error {
	return errors.BadRequest(ReasonInvalidState, fmt.Sprintf(format, args...))
}

// ErrPersistence 存储失败，附带原始错误
func ErrPersistence(err error) *errors.Error {
	return errors.InternalServer(ReasonPersistenceFailure, "failed to persist report").WithCause(err)
}

// IsInvalidState 是否为状态或参数错误
func IsInvalidState(err error) bool {
	return errors.Reason(err) == ReasonInvalidState
}
