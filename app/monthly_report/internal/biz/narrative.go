package biz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iWorld-y/monthly_report/app/monthly_report/pkg/flow"
)

// NarrativeSource 正文来源
type NarrativeSource string

const (
	SourceAI       NarrativeSource = "ai"
	SourceTemplate NarrativeSource = "template"
	SourceManual   NarrativeSource = "manual"
)

// Valid 是否为已知来源
func (s NarrativeSource) Valid() bool {
	switch s {
	case SourceAI, SourceTemplate, SourceManual:
		return true
	}
	return false
}

// NarrativeGenerator 外部正文生成能力
type NarrativeGenerator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// NarrativeProvider 按请求凭据解析生成能力
//
// apiKey 为空时使用进程级配置；两者都没有时返回错误。
type NarrativeProvider interface {
	Resolve(ctx context.Context, apiKey string) (NarrativeGenerator, error)
	Timeout() time.Duration
}

// Attempt 一种获取正文的方式
type Attempt struct {
	Source NarrativeSource
	Run    func(ctx context.Context) (string, error)
}

// ErrNoAttempt 没有可用的正文来源
var ErrNoAttempt = errors.New("no narrative attempt succeeded")

// FirstSuccess 依次执行 attempts，返回第一个成功的结果
//
// 每次失败都会交给 onFail，全部失败时返回最后一个错误。
func FirstSuccess(ctx context.Context, onFail func(NarrativeSource, error), attempts ...Attempt) (string, NarrativeSource, error) {
	lastErr := ErrNoAttempt
	for _, a := range attempts {
		text, err := a.Run(ctx)
		if err == nil {
			return text, a.Source, nil
		}
		lastErr = err
		if onFail != nil {
			onFail(a.Source, err)
		}
	}
	return "", "", lastErr
}

const narrativeSystemPrompt = "あなたは優秀な月報作成アシスタントです。"

// buildPrompt 将全部回答按分类整理后嵌入固定的 markdown 骨架
func buildPrompt(f *flow.Flow, s *Session, m Month) string {
	ym := m.Label()

	var qa strings.Builder
	for _, c := range f.Categories() {
		fmt.Fprintf(&qa, "【%s】\n", c.Title)
		for _, q := range c.Questions {
			label := q.Label
			if label == "" {
				label = q.Prompt
			}
			a := s.Answers[q.ID]
			fmt.Fprintf(&qa, "%s: %s", label, a.Text)
			if a.Note != "" {
				fmt.Fprintf(&qa, "（補足: %s）", a.Note)
			}
			qa.WriteByte('\n')
		}
		qa.WriteByte('\n')
	}

	return fmt.Sprintf(promptTemplate, ym, ym, m.Title(), ym, qa.String(), ym, m.Title(), ym)
}

const promptTemplate = `あなたは優秀な月報作成アシスタントです。以下の質問と回答から、%s の月報を生成してください。

【重要な指示】
- 対象月は%sです
- タイトルには必ず「%s」を使用
- 他の年月は絶対に使用しない
- 現在日時に関係なく、指定された%sの月報として作成

## 回答データ:
%s
## 出力要件:
- 対象月: %s (厳守)
- 文字数: 基本は2000-3000文字
- 形式: Markdown（Notion互換）
- 語調: 丁寧で親しみやすい
- 絵文字: 見出しの先頭に1つずつ配置
- 箇条書き: 積極的に使用して読みやすく
- 感情・背景: 事実に基づいて適切に追加

## 必須出力フォーマット（この順序と形式を厳守）:

%s

お疲れ様です。%s分の月報を提出します。以下に今月の状況、実績、取り組み、気づき、来月の目標をまとめましたので、ご確認ください。

---

## 🏠 今月の状況・家庭のこと

[家庭や生活での出来事、変化を箇条書きで記載。感情や影響も含める]

---

## 🎯 目指しているゴール・理想の生活

[理想の暮らし・働き方・価値観を箇条書きで記載]

---

## 📊 今月の目標と実績

[まず今月の目標と達成状況を文章で記載]

| 項目 | 実績 | 補足 |
| --- | --- | --- |
| 稼働時間 | [回答から抽出]時間 | 内訳（案件・営業・学び）を含む |
| 営業件数 | [回答から抽出]件 | 新規・継続の内訳、反応状況も含む |
| 受注額 | [回答から抽出]万円 | 案件内容・外注の有無を含む |

---

## 💼 今月の業務内容・取り組み・学び

[業務内容、プロジェクト詳細、営業活動、学習内容をすべて箇条書きで記載]

---

## 💡 課題・改善点・気づき

[課題や困ったこと、気づきを箇条書きで記載。「だから来月は〜する」という改善アクションも含める]

---

## 🌟 今月の成果・成長ポイント

[できたこと、成長したこと、嬉しかったことを箇条書きで記載]

---

## 🚀 来月の目標・取り組み予定

[来月の目標、注力すること、新しく試すこと、やめることを箇条書きで記載]

---

以上となります。来月もどうぞよろしくお願いいたします。
`
