package flow

import "fmt"

// QuestionID 问题标识，取值限定为下列常量
type QuestionID string

const (
	// 标准流程
	QTotalWorkHours  QuestionID = "total_work_hours"
	QCodingHours     QuestionID = "coding_hours"
	QSalesEmailsSent QuestionID = "sales_emails_sent"
	QSalesReplies    QuestionID = "sales_replies"
	QSalesMeetings   QuestionID = "sales_meetings"
	QReceivedAmount  QuestionID = "received_amount"
	QGoodPoints      QuestionID = "good_points"
	QChallenges      QuestionID = "challenges"
	QNextMonthGoals  QuestionID = "next_month_goals"

	// 详细流程
	QIdealLifestyle        QuestionID = "ideal_lifestyle"
	QCoreValues            QuestionID = "core_values"
	QIdealDailyLife        QuestionID = "ideal_daily_life"
	QMonthlyGoals          QuestionID = "monthly_goals"
	QGoalAchievement       QuestionID = "goal_achievement"
	QMonthlyActivities     QuestionID = "monthly_activities"
	QProjectDetails        QuestionID = "project_details"
	QSalesActivities       QuestionID = "sales_activities"
	QLearningHighlights    QuestionID = "learning_highlights"
	QWorkHours             QuestionID = "work_hours"
	QMonthlyIncome         QuestionID = "monthly_income"
	QIncomeBreakdown       QuestionID = "income_breakdown"
	QLifeChanges           QuestionID = "life_changes"
	QLifeBalance           QuestionID = "life_balance"
	QRolesResponsibilities QuestionID = "roles_responsibilities"
	QDiscoveries           QuestionID = "discoveries"
	QGrowthPoints          QuestionID = "growth_points"
	QHappyMoments          QuestionID = "happy_moments"
	QThingsToStop          QuestionID = "things_to_stop"
)

var knownQuestions = map[QuestionID]struct{}{
	QTotalWorkHours: {}, QCodingHours: {}, QSalesEmailsSent: {}, QSalesReplies: {},
	QSalesMeetings: {}, QReceivedAmount: {}, QGoodPoints: {}, QChallenges: {},
	QNextMonthGoals: {}, QIdealLifestyle: {}, QCoreValues: {}, QIdealDailyLife: {},
	QMonthlyGoals: {}, QGoalAchievement: {}, QMonthlyActivities: {}, QProjectDetails: {},
	QSalesActivities: {}, QLearningHighlights: {}, QWorkHours: {}, QMonthlyIncome: {},
	QIncomeBreakdown: {}, QLifeChanges: {}, QLifeBalance: {}, QRolesResponsibilities: {},
	QDiscoveries: {}, QGrowthPoints: {}, QHappyMoments: {}, QThingsToStop: {},
}

// Known 是否为已定义的问题 ID
func (id QuestionID) Known() bool {
	_, ok := knownQuestions[id]
	return ok
}

// ParseQuestionID 校验外部传入的问题 ID
func ParseQuestionID(s string) (QuestionID, error) {
	id := QuestionID(s)
	if !id.Known() {
		return "", fmt.Errorf("unknown question id %q", s)
	}
	return id, nil
}

const (
	NameStandard = "standard"
	NameDetailed = "detailed"
)

// ByName 按名称返回内置流程，空名称返回标准流程
func ByName(name string) (*Flow, error) {
	switch name {
	case "", NameStandard:
		return Standard()
	case NameDetailed:
		return Detailed()
	default:
		return nil, fmt.Errorf("unknown question flow %q", name)
	}
}

// Standard 9 个问题的基础流程：稼働時間、営業、収入、振り返り
func Standard() (*Flow, error) {
	return New(NameStandard,
		Category{
			Name:  "work_time",
			Title: "稼働時間",
			Order: 1,
			Questions: []Question{
				{
					ID:       QTotalWorkHours,
					Prompt:   "今月の総稼働時間はどのくらいでしたか？",
					Label:    "総稼働時間",
					Kind:     KindNumber,
					Example:  "例：160時間",
					FollowUp: "平日と休日の作業時間の配分はいかがでしたか？",
					Field:    FieldTotalHours,
				},
				{
					ID:       QCodingHours,
					Prompt:   "そのうち、実際にコーディングや開発作業に費やした時間はどのくらいですか？",
					Label:    "開発作業時間",
					Kind:     KindNumber,
					Example:  "例：120時間",
					FollowUp: "どのような技術や言語を主に使用されましたか？",
					Field:    FieldCodingHours,
				},
			},
		},
		Category{
			Name:  "sales_activities",
			Title: "営業活動",
			Order: 2,
			Questions: []Question{
				{
					ID:       QSalesEmailsSent,
					Prompt:   "今月、営業メールはどのくらい送信されましたか？",
					Label:    "営業メール送信数",
					Kind:     KindNumber,
					Example:  "例：50件",
					FollowUp: "どのような内容のメールが多かったですか？",
					Field:    FieldSalesEmails,
				},
				{
					ID:       QSalesReplies,
					Prompt:   "そのうち、返信をいただけたのは何件くらいでしょうか？",
					Label:    "返信数",
					Kind:     KindNumber,
					Example:  "例：15件",
					FollowUp: "返信率についてはどのように感じていますか？",
					Field:    FieldSalesReplies,
				},
				{
					ID:       QSalesMeetings,
					Prompt:   "実際に商談や面談に進んだのは何件ありましたか？",
					Label:    "商談数",
					Kind:     KindNumber,
					Example:  "例：8件",
					FollowUp: "商談の手応えはいかがでしたか？",
					Field:    FieldSalesMeetings,
				},
			},
		},
		Category{
			Name:  "financial",
			Title: "収入",
			Order: 3,
			Questions: []Question{
				{
					ID:       QReceivedAmount,
					Prompt:   "今月の売上や受注金額はどのくらいでしたか？",
					Label:    "受領金額",
					Kind:     KindNumber,
					Example:  "例：合計30万円",
					FollowUp: "目標と比較していかがでしたか？",
					Field:    FieldIncome,
				},
			},
		},
		Category{
			Name:  "reflection",
			Title: "振り返り",
			Order: 4,
			Questions: []Question{
				{
					ID:       QGoodPoints,
					Prompt:   "今月特に良かった点や成果について教えてください。",
					Label:    "良かった点",
					Kind:     KindText,
					FollowUp: "その成果を生み出した要因は何だと思いますか？",
					Field:    FieldGoodPoints,
				},
				{
					ID:       QChallenges,
					Prompt:   "今月の課題や困ったことがあれば教えてください。",
					Label:    "課題",
					Kind:     KindText,
					FollowUp: "その課題に対してどのようなアプローチを考えていますか？",
					Field:    FieldChallenges,
				},
				{
					ID:       QNextMonthGoals,
					Prompt:   "来月の目標や重点的に取り組みたいことを教えてください。",
					Label:    "来月の目標",
					Kind:     KindText,
					FollowUp: "その目標を達成するための具体的な計画はありますか？",
					Field:    FieldNextMonthGoals,
				},
			},
		},
	)
}

// Detailed 7 个分类的完整引导流程
func Detailed() (*Flow, error) {
	return New(NameDetailed,
		Category{
			Name:  "vision_values",
			Title: "目指しているゴール・理想の生活",
			Order: 1,
			Questions: []Question{
				{
					ID:      QIdealLifestyle,
					Prompt:  "今、どんな暮らしや働き方を目指してる？",
					Label:   "理想の暮らし・働き方",
					Kind:    KindText,
					Example: "例：子どもの送迎をしながら、週4稼働で月50万円。自分の好きな仕事だけで生計を立てたい。",
					Field:   FieldCurrentPhase,
				},
				{
					ID:      QCoreValues,
					Prompt:  "その理想を叶えるために、普段どんなことを意識している？",
					Label:   "普段大事にしていること",
					Kind:    KindText,
					Example: "例：相手目線で動く、夜遅くまで作業しない、毎朝スケジュール確認をする。",
				},
				{
					ID:      QIdealDailyLife,
					Prompt:  "「これが理想！」と思う未来の生活を具体的に教えて！",
					Label:   "理想の未来像",
					Kind:    KindText,
					Example: "例：朝はカフェで仕事、午後はのんびり。週末は家族と公園、年1回は海外旅行。仕事はAI活用で効率化。",
				},
			},
		},
		Category{
			Name:  "monthly_goals",
			Title: "今月の目標と実績",
			Order: 2,
			Questions: []Question{
				{
					ID:      QMonthlyGoals,
					Prompt:  "今月の「これを達成しよう！」と思ってた目標は何だった？",
					Label:   "今月の目標",
					Kind:    KindText,
					Example: "例：営業50件送信、案件3件納品、ポモ部屋100時間。",
				},
				{
					ID:      QGoalAchievement,
					Prompt:  "その目標、どのくらい達成できた？できたこと・できなかったことは？",
					Label:   "目標達成状況",
					Kind:    KindText,
					Example: "例：営業は30件、案件は2件納品できた。ポモ部屋は80時間で少し届かなかった。",
				},
			},
		},
		Category{
			Name:  "work_activities",
			Title: "今月の業務内容・取り組み・学び",
			Order: 3,
			Questions: []Question{
				{
					ID:      QMonthlyActivities,
					Prompt:  "今月どんなことをやった？具体的に教えて！（作業内容や件数、学びやイベント参加など）",
					Label:   "今月やったこと",
					Kind:    KindText,
					Example: "例：LPコーディング2件納品、修正案件1件、営業30件、AIセミナー1回、ポモ部屋80時間。",
				},
				{
					ID:      QProjectDetails,
					Prompt:  "案件で特に印象に残ったことは？",
					Label:   "案件で印象に残ったこと",
					Kind:    KindText,
					Example: "例：初めて外注を使わずにLPを5万円で納品できた。修正のやりとりが多くて大変だったが、最後までやりきった。",
				},
				{
					ID:      QSalesActivities,
					Prompt:  "営業でやったこと、反応や成果はどうだった？",
					Label:   "営業活動と反応",
					Kind:    KindText,
					Example: "例：新規30件送信、返信は2件、面談は1件。既存クライアントから追加案件1件受注。",
					Field:   FieldSalesSummary,
				},
				{
					ID:      QLearningHighlights,
					Prompt:  "今月の学びで「これ良かった！」と思うことは？",
					Label:   "学びで良かったこと",
					Kind:    KindText,
					Example: "例：AIでの画像生成を試した。ポモ部屋で得た情報が次の案件に役立ちそうだった。",
				},
			},
		},
		Category{
			Name:  "time_management",
			Title: "稼働時間・収入",
			Order: 4,
			Questions: []Question{
				{
					ID:      QWorkHours,
					Prompt:  "今月の稼働時間はどれくらい？できれば内訳も教えて。",
					Label:   "稼働時間",
					Kind:    KindText,
					Example: "例：合計230時間。案件作業180時間、営業20時間、学び30時間。",
					Field:   FieldTotalHours,
				},
				{
					ID:      QMonthlyIncome,
					Prompt:  "今月の総収入はいくらでしたか？（合計金額を教えてください）",
					Label:   "収入",
					Kind:    KindText,
					Example: "例：合計30万円",
					Field:   FieldIncome,
				},
				{
					ID:      QIncomeBreakdown,
					Prompt:  "収入の内訳を教えてください（任意）",
					Label:   "収入の内訳",
					Kind:    KindText,
					Example: "例：LP案件2件で10万円、修正案件で6万円、継続案件で14万円",
				},
			},
		},
		Category{
			Name:  "life_balance",
			Title: "今月の状況・家庭のこと",
			Order: 5,
			Questions: []Question{
				{
					ID:      QLifeChanges,
					Prompt:  "家庭や生活で何か変化や大きな出来事はあった？",
					Label:   "家庭や生活の変化",
					Kind:    KindText,
					Example: "例：子どもが発熱で2日休み。夫が出張でワンオペ多めだった。健康診断で再検査の連絡がきた。",
					Field:   FieldFamilyStatus,
				},
				{
					ID:      QLifeBalance,
					Prompt:  "家族・仕事・自分の時間のバランスはどうだった？理想に近づけた？",
					Label:   "生活バランス",
					Kind:    KindText,
					Example: "例：案件作業が多くて家族時間が減った。まだ理想のバランスには遠いけど、朝の時間は確保できた。",
				},
				{
					ID:      QRolesResponsibilities,
					Prompt:  "家族や仕事、コミュニティで「自分はこういう役割だったな」と思うことは？",
					Label:   "役割",
					Kind:    KindText,
					Example: "例：家庭では送迎と夕食担当、仕事では案件管理と進捗確認、コミュニティでは相談役っぽい立ち位置。",
				},
			},
		},
		Category{
			Name:  "reflection",
			Title: "課題・改善点・気づき・成果",
			Order: 6,
			Questions: []Question{
				{
					ID:      QChallenges,
					Prompt:  "今月「これは大変だった」「困ったな」と思ったことは？",
					Label:   "大変だったこと・困ったこと",
					Kind:    KindText,
					Example: "例：営業を後回しにしてしまい動けなかった。子どもの送迎でスケジュールが崩れた。",
					Field:   FieldChallenges,
				},
				{
					ID:      QDiscoveries,
					Prompt:  "今月「これ気づいた！」とか「こうすればよかった！」と思ったことは？",
					Label:   "気づいたこと・改善点",
					Kind:    KindText,
					Example: "例：タスクは翌日に持ち越さず、その日のうちに終わらせた方が楽だった。外注を使うと負担が減ると気づいた。",
				},
				{
					ID:      QGrowthPoints,
					Prompt:  "今月「これできるようになった！」と思えた成長や変化は？",
					Label:   "成長したこと",
					Kind:    KindText,
					Example: "例：外注にタスクを振るのが前よりスムーズになった。コーディングのスピードが上がった。営業の文章作成が早くなった。",
					Field:   FieldGoodPoints,
				},
				{
					ID:      QHappyMoments,
					Prompt:  "今月嬉しかったこと・自分を褒めたいと思ったことは？",
					Label:   "嬉しかったこと",
					Kind:    KindText,
					Example: "例：初めて自力で5万円の案件を納品できた。夜作業を減らせた。子どもの行事に参加できた。",
				},
			},
		},
		Category{
			Name:  "next_month",
			Title: "来月の目標・取り組み予定",
			Order: 7,
			Questions: []Question{
				{
					ID:      QNextMonthGoals,
					Prompt:  "来月の目標は何？どんなことに力を入れたい？",
					Label:   "来月の目標",
					Kind:    KindText,
					Example: "例：営業50件送信、案件3件納品、家庭時間を増やす、外注活用を1件以上試す。",
					Field:   FieldNextMonthGoals,
				},
				{
					ID:      QThingsToStop,
					Prompt:  "来月「これはもうやらない！」と決めたこと・やめたいことはある？",
					Label:   "やらないと決めたこと",
					Kind:    KindText,
					Example: "例：夜遅くまでの作業をやめたい。お客さんの要望を何でも聞きすぎない。無理して全部自分でやらない。",
				},
			},
		},
	)
}
