package formatter

import (
	"fmt"
	"time"

	"github.com/johnquangdev/meeting-minutes/pkg/reldate"
)

const systemPrompt = `あなたは企業の会議議事録を構造化する専門アシスタントです。

【あなたの役割】
1. 長文の議事録テキストから議題ごとに重要な情報を正確に抽出する
2. 議題、決定事項、課題、期日、担当者、実行内容、目的を明確に区別する
3. 口語的な表現や話者ラベル（例:「田中:」「Speaker 1:」）を文脈から解釈する
4. 複数の議題が混在していても、それぞれを別の項目として分離する

【出力の品質基準】
- 元のテキストから逸脱しない
- 簡潔で分かりやすい表現にする
- 重要な情報を漏らさない

必ず {"items": [...]} 形式のJSONオブジェクトのみを返してください。説明文は不要です。`

const userPromptTemplate = `以下の会議議事録テキストを構造化してください。

【会議開催日】%s

【抽出項目】
- agenda: 議題（何について話し合われたか、50文字以内）
- decision: 決定事項（決まったこと、合意された内容。なければ空文字）
- issue: 課題（未解決の問題や懸念点。なければ空文字）
- action: 実行内容（具体的にやるべきこと）
- assignee: 担当者（個人名、チーム名、部署名。不明なら「未定」）
- deadline: 期日（YYYY-MM-DD形式、言及がない場合はnull）
- purpose: 目的・理由（なぜそうするのか）
- status: pending / in_progress / completed / overdue のいずれか
- notes1: 金額・件数・割合などの数値情報（なければ空文字）
- notes2: 場所・条件・制約などの補足（なければ空文字）

【出力形式】
{
  "items": [
    {
      "agenda": "議題の内容",
      "decision": "決定事項",
      "issue": "課題",
      "action": "実行内容",
      "assignee": "担当者名",
      "deadline": "%s",
      "purpose": "目的・理由",
      "status": "pending",
      "notes1": "",
      "notes2": ""
    }
  ]
}

【期日の変換ルール】（会議開催日 %s を基準とする）
- 「明日」→ %s
- 「来週」→ %s
- 「月末」「今月中」→ %s
- 「来月末」→ %s
- 具体的な日付は YYYY-MM-DD 形式に変換する
- 期日の言及がなければ null

【議事録テキスト】
%s

上記のテキストから構造化されたJSONを生成してください。`

// BuildPrompts returns the system and user messages for one transcript.
// Date examples are resolved against meetingDate so the model sees
// concrete conversions for the common relative expressions.
func BuildPrompts(rawText string, meetingDate time.Time) (string, string) {
	day := meetingDate.Format(reldate.Layout)
	resolve := func(expr string) string {
		s, _ := reldate.Resolve(expr, meetingDate)
		return s
	}
	user := fmt.Sprintf(userPromptTemplate,
		day,
		resolve("来週"),
		day,
		resolve("明日"),
		resolve("来週"),
		resolve("月末"),
		resolve("来月末"),
		rawText,
	)
	return systemPrompt, user
}
