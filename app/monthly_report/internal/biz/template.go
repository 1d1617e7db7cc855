package biz

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/iWorld-y/monthly_report/app/monthly_report/pkg/flow"
)

// 不依赖外部服务的月报模板，回答缺失时使用默认文案
var fallbackTemplate = template.Must(template.New("report").Parse(`{{.Title}}

お疲れ様です。{{.Label}}分の月報を提出します。以下に今月の状況、実績、取り組み、気づき、来月の目標をまとめましたので、ご確認ください。

---

## 🏠 今月の状況・家庭のこと

- {{or (.Field "family_status") "家庭と仕事のバランスを大切に過ごしています"}}
- 生活バランス: {{or (.Answer "life_balance") "適切なワークライフバランスを心がけています"}}
- 役割: {{or (.Answer "roles_responsibilities") "家庭や仕事での責任を果たしています"}}

---

## 🎯 目指しているゴール・理想の生活

- {{or (.Field "current_phase") "理想の生活を目指して日々努力しています"}}
- {{or (.Answer "core_values") "大切にしている価値観を意識しています"}}
- {{or (.Answer "ideal_daily_life") "理想の未来に向けて着実に進んでいます"}}

---

## 📊 今月の目標と実績

**今月の目標**: {{or (.Answer "monthly_goals") "目標設定なし"}}

**達成状況**: {{or (.Answer "goal_achievement") "詳細な振り返りを実施中"}}

| 項目 | 実績 | 補足 |
| --- | --- | --- |
| 稼働時間 | {{.TotalHours}}時間 | {{if .CodingHours}}うち開発作業 {{.CodingHours}}時間{{else}}案件作業中心の活動{{end}} |
| 営業件数 | {{.SalesEmails}}件 | 返信 {{.SalesReplies}}件・商談 {{.SalesMeetings}}件 |
| 受注額 | {{.AmountMan}}万円 | 目標に向けた着実な進歩 |

---

## 💼 今月の業務内容・取り組み・学び

**主な活動**:
- {{or (.Answer "monthly_activities") "継続的な業務改善に取り組んでいます"}}

**案件の詳細**:
- {{or (.Answer "project_details") "各案件で着実な成果を上げています"}}

**営業活動**:
- {{or (.Field "sales_summary") "営業活動を継続的に実施"}}

**学習・スキルアップ**:
- {{or (.Answer "learning_highlights") "新しい技術や手法の学習を継続"}}

---

## 💡 課題・改善点・気づき

**今月の課題**:
- {{or (.Field "challenges") "今月の課題を整理中"}}

**気づき・改善策**:
- {{or (.Answer "discoveries") "新たな発見と改善策を模索中"}}

---

## 🌟 今月の成果・成長ポイント

- {{or (.Field "good_points") "継続的な成長を実感"}}
- {{or (.Answer "happy_moments") "充実した時間を過ごすことができました"}}

---

## 🚀 来月の目標・取り組み予定

**重点目標**:
- {{or (.Field "next_month_goals") "来月の目標を具体的に設定予定"}}

**やめること・減らすこと**:
- {{or (.Answer "things_to_stop") "効率化のための見直しを継続"}}

---

以上となります。来月もどうぞよろしくお願いいたします。
`))

type templateData struct {
	Title         string
	Label         string
	TotalHours    string
	CodingHours   string
	SalesEmails   int
	SalesReplies  int
	SalesMeetings int
	AmountMan     string

	session *Session
	flow    *flow.Flow
}

// Answer 按问题 ID 取回答
func (d templateData) Answer(id string) string {
	return strings.TrimSpace(d.session.AnswerText(flow.QuestionID(id)))
}

// Field 取绑定到某个字段的问题的回答
func (d templateData) Field(name string) string {
	q, ok := d.flow.QuestionFor(flow.Field(name))
	if !ok {
		return ""
	}
	return strings.TrimSpace(d.session.AnswerText(q.ID))
}

// renderTemplate 用已提取的数值和原始回答填充模板
func renderTemplate(f *flow.Flow, s *Session, r *Report, m Month) (string, error) {
	data := templateData{
		Title:         m.Title(),
		Label:         m.Label(),
		TotalHours:    formatHours(r.TotalWorkHours),
		SalesEmails:   r.SalesEmailsSent,
		SalesReplies:  r.SalesReplies,
		SalesMeetings: r.SalesMeetings,
		AmountMan:     fmt.Sprintf("%.0f", r.ReceivedAmount/10000),
		session:       s,
		flow:          f,
	}
	if r.CodingHours > 0 {
		data.CodingHours = formatHours(r.CodingHours)
	}

	var sb strings.Builder
	if err := fallbackTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render report template: %w", err)
	}
	return sb.String(), nil
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
