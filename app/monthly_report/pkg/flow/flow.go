// Package flow 定义对话式月报的问题流程（只读的静态配置）。
package flow

import (
	"fmt"
	"sort"
)

// AnswerKind 期望的回答类型
type AnswerKind string

const (
	KindNumber AnswerKind = "number"
	KindText   AnswerKind = "text"
)

// Field 问题对应的月报逻辑字段，供报告组装时按字段取回答
type Field string

const (
	FieldNone           Field = ""
	FieldCurrentPhase   Field = "current_phase"
	FieldFamilyStatus   Field = "family_status"
	FieldTotalHours     Field = "total_work_hours"
	FieldCodingHours    Field = "coding_hours"
	FieldMeetingHours   Field = "meeting_hours"
	FieldSalesSummary   Field = "sales_summary"
	FieldSalesEmails    Field = "sales_emails_sent"
	FieldSalesReplies   Field = "sales_replies"
	FieldSalesMeetings  Field = "sales_meetings"
	FieldIncome         Field = "received_amount"
	FieldGoodPoints     Field = "good_points"
	FieldChallenges     Field = "challenges"
	FieldNextMonthGoals Field = "next_month_goals"
)

// Question 单个问题
type Question struct {
	ID       QuestionID
	Prompt   string
	Label    string // 生成提示词时使用的简短标签
	Kind     AnswerKind
	Example  string
	FollowUp string
	Field    Field
}

// Category 问题分类，Order 决定遍历顺序
type Category struct {
	Name      string
	Title     string
	Order     int
	Questions []Question
}

// Flow 按 Order 升序排列的问题分类集合
type Flow struct {
	name       string
	categories []Category
	byName     map[string]int
	questions  map[QuestionID]Question
	byField    map[Field]QuestionID
	total      int
}

// New 校验并构建问题流程
func New(name string, categories ...Category) (*Flow, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("flow %q: no categories", name)
	}

	cats := make([]Category, len(categories))
	copy(cats, categories)
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].Order < cats[j].Order })

	f := &Flow{
		name:       name,
		categories: cats,
		byName:     make(map[string]int, len(cats)),
		questions:  make(map[QuestionID]Question),
		byField:    make(map[Field]QuestionID),
	}
	for i, c := range cats {
		if i > 0 && cats[i-1].Order == c.Order {
			return nil, fmt.Errorf("flow %q: categories %q and %q share order %d", name, cats[i-1].Name, c.Name, c.Order)
		}
		if _, dup := f.byName[c.Name]; dup {
			return nil, fmt.Errorf("flow %q: duplicate category %q", name, c.Name)
		}
		if len(c.Questions) == 0 {
			return nil, fmt.Errorf("flow %q: category %q has no questions", name, c.Name)
		}
		f.byName[c.Name] = i
		for _, q := range c.Questions {
			if !q.ID.Known() {
				return nil, fmt.Errorf("flow %q: unknown question id %q", name, q.ID)
			}
			if _, dup := f.questions[q.ID]; dup {
				return nil, fmt.Errorf("flow %q: duplicate question %q", name, q.ID)
			}
			f.questions[q.ID] = q
			if q.Field != FieldNone {
				if prev, dup := f.byField[q.Field]; dup {
					return nil, fmt.Errorf("flow %q: field %q bound to both %q and %q", name, q.Field, prev, q.ID)
				}
				f.byField[q.Field] = q.ID
			}
		}
		f.total += len(c.Questions)
	}
	return f, nil
}

// Name 流程名称
func (f *Flow) Name() string { return f.name }

// Categories 按顺序返回所有分类
func (f *Flow) Categories() []Category {
	out := make([]Category, len(f.categories))
	copy(out, f.categories)
	return out
}

// Category 按名称查找分类
func (f *Flow) Category(name string) (Category, bool) {
	i, ok := f.byName[name]
	if !ok {
		return Category{}, false
	}
	return f.categories[i], true
}

// First 返回 Order 最小的分类
func (f *Flow) First() Category {
	return f.categories[0]
}

// NextCategory 返回尚未完成的分类中 Order 最小的一个
func (f *Flow) NextCategory(completed func(name string) bool) (Category, bool) {
	for _, c := range f.categories {
		if !completed(c.Name) {
			return c, true
		}
	}
	return Category{}, false
}

// TotalQuestions 所有分类的问题总数
func (f *Flow) TotalQuestions() int { return f.total }

// Question 按 ID 查找问题
func (f *Flow) Question(id QuestionID) (Question, bool) {
	q, ok := f.questions[id]
	return q, ok
}

// QuestionFor 返回绑定到指定字段的问题
func (f *Flow) QuestionFor(field Field) (Question, bool) {
	id, ok := f.byField[field]
	if !ok {
		return Question{}, false
	}
	return f.questions[id], true
}

// CategoryPreview 分类概览
type CategoryPreview struct {
	Name          string   `json:"name"`
	Title         string   `json:"title"`
	Order         int      `json:"order"`
	QuestionCount int      `json:"question_count"`
	Questions     []string `json:"questions"`
}

// Preview 返回流程整体结构，供前端展示
func (f *Flow) Preview() []CategoryPreview {
	out := make([]CategoryPreview, 0, len(f.categories))
	for _, c := range f.categories {
		p := CategoryPreview{
			Name:          c.Name,
			Title:         c.Title,
			Order:         c.Order,
			QuestionCount: len(c.Questions),
		}
		for _, q := range c.Questions {
			p.Questions = append(p.Questions, q.Prompt)
		}
		out = append(out, p)
	}
	return out
}
