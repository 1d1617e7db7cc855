// Package v1 月报服务的 HTTP 接口定义。
package v1

type StartConversationRequest struct {
	ReportMonth string `json:"report_month,omitempty"`
}

type SubmitAnswerRequest struct {
	SessionId         string `json:"session_id"`
	Answer            string `json:"answer"`
	AdditionalContext string `json:"additional_context,omitempty"`
}

type GetSessionRequest struct {
	SessionId string `json:"session_id"`
}

type AnswerData struct {
	Answer            string `json:"answer"`
	AdditionalContext string `json:"additional_context,omitempty"`
}

type SessionData struct {
	SessionId            string                `json:"session_id"`
	UserId               int64                 `json:"user_id"`
	ReportMonth          string                `json:"report_month"`
	CurrentCategory      string                `json:"current_category"`
	CurrentQuestionIndex int32                 `json:"current_question_index"`
	Answers              map[string]AnswerData `json:"answers"`
	CompletedCategories  []string              `json:"completed_categories"`
	IsComplete           bool                  `json:"is_complete"`
	CreatedAt            string                `json:"created_at"`
}

// ConversationReply 会话结束时 Question 为空，QuestionType 与 Category 为 "completed"
type ConversationReply struct {
	SessionId      string       `json:"session_id"`
	Question       *string      `json:"question"`
	QuestionId     string       `json:"question_id,omitempty"`
	QuestionType   string       `json:"question_type"`
	Category       string       `json:"category"`
	CategoryTitle  string       `json:"category_title,omitempty"`
	Progress       int32        `json:"progress"`
	TotalQuestions int32        `json:"total_questions"`
	IsComplete     bool         `json:"is_complete"`
	Example        string       `json:"example,omitempty"`
	FollowUp       string       `json:"follow_up,omitempty"`
	SessionData    *SessionData `json:"session_data"`
}

type GenerateReportRequest struct {
	SessionId string `json:"session_id"`
}

type GenerateReportReply struct {
	Message            string `json:"message"`
	ReportId           int64  `json:"report_id"`
	ReportMonth        string `json:"report_month"`
	AiGeneratedContent string `json:"ai_generated_content"`
	NarrativeSource    string `json:"narrative_source"`
}

type PreviewQuestionsRequest struct{}

type CategoryPreview struct {
	Name          string   `json:"name"`
	Title         string   `json:"title"`
	Order         int32    `json:"order"`
	QuestionCount int32    `json:"question_count"`
	Questions     []string `json:"questions"`
}

type PreviewQuestionsReply struct {
	Flow           string             `json:"flow"`
	TotalQuestions int32              `json:"total_questions"`
	Categories     []*CategoryPreview `json:"categories"`
}

type Report struct {
	Id              int64   `json:"id"`
	UserId          int64   `json:"user_id"`
	ReportMonth     string  `json:"report_month"`
	CurrentPhase    string  `json:"current_phase"`
	FamilyStatus    string  `json:"family_status"`
	TotalWorkHours  float64 `json:"total_work_hours"`
	CodingHours     float64 `json:"coding_hours"`
	MeetingHours    float64 `json:"meeting_hours"`
	SalesEmailsSent int32   `json:"sales_emails_sent"`
	SalesReplies    int32   `json:"sales_replies"`
	SalesMeetings   int32   `json:"sales_meetings"`
	ReceivedAmount  float64 `json:"received_amount"`
	Narrative       string  `json:"narrative"`
	NarrativeSource string  `json:"narrative_source"`
	GoodPoints      string  `json:"good_points"`
	Challenges      string  `json:"challenges"`
	NextMonthGoals  string  `json:"next_month_goals"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type ListReportsRequest struct {
	Page int32 `json:"page"`
	Size int32 `json:"size"`
}

type ListReportsReply struct {
	Items []*Report `json:"items"`
	Total int32     `json:"total"`
	Page  int32     `json:"page"`
	Size  int32     `json:"size"`
	Pages int32     `json:"pages"`
}

type CreateReportRequest struct {
	ReportMonth     string  `json:"report_month"`
	CurrentPhase    string  `json:"current_phase"`
	FamilyStatus    string  `json:"family_status"`
	TotalWorkHours  float64 `json:"total_work_hours"`
	CodingHours     float64 `json:"coding_hours"`
	MeetingHours    float64 `json:"meeting_hours"`
	SalesEmailsSent int32   `json:"sales_emails_sent"`
	SalesReplies    int32   `json:"sales_replies"`
	SalesMeetings   int32   `json:"sales_meetings"`
	ReceivedAmount  float64 `json:"received_amount"`
	Narrative       string  `json:"narrative"`
	GoodPoints      string  `json:"good_points"`
	Challenges      string  `json:"challenges"`
	NextMonthGoals  string  `json:"next_month_goals"`
}

type GetReportRequest struct {
	Id int64 `json:"id"`
}

// UpdateReportRequest 未出现的字段保持不变
type UpdateReportRequest struct {
	Id              int64    `json:"id"`
	CurrentPhase    *string  `json:"current_phase,omitempty"`
	FamilyStatus    *string  `json:"family_status,omitempty"`
	TotalWorkHours  *float64 `json:"total_work_hours,omitempty"`
	CodingHours     *float64 `json:"coding_hours,omitempty"`
	MeetingHours    *float64 `json:"meeting_hours,omitempty"`
	SalesEmailsSent *int32   `json:"sales_emails_sent,omitempty"`
	SalesReplies    *int32   `json:"sales_replies,omitempty"`
	SalesMeetings   *int32   `json:"sales_meetings,omitempty"`
	ReceivedAmount  *float64 `json:"received_amount,omitempty"`
	Narrative       *string  `json:"narrative,omitempty"`
	GoodPoints      *string  `json:"good_points,omitempty"`
	Challenges      *string  `json:"challenges,omitempty"`
	NextMonthGoals  *string  `json:"next_month_goals,omitempty"`
}

type DeleteReportRequest struct {
	Id int64 `json:"id"`
}

type DeleteReportReply struct {
	Message string `json:"message"`
}
