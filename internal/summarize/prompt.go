package summarize

import (
	"fmt"
	"strings"

	"github.com/mtanaka/worklog/internal/aggregate"
	"github.com/mtanaka/worklog/internal/session"
)

// Payload bounds: noisy days must not grow the prompt without limit.
const (
	maxSessionLines  = 60
	maxUsageLines    = 10
	maxPromptExcerpt = 200  // characters quoted per session
	maxExcerptBudget = 6000 // characters of screen text across the whole prompt
)

// Input holds the locally computed evidence handed to the service.
type Input struct {
	Period      string // "2026-08-27" or "2026-W35"
	Dates       []string
	Sessions    []session.Session
	Usage       []aggregate.AppUsage
	Days        []aggregate.DayUsage
	TotalEvents int
}

const dailySystemPrompt = `あなたは作業ログから日報を作成するアシスタントです。

有効なJSONのみで応答してください。Markdownや説明文は不要です。スキーマ:
{
  "work_content": ["時間帯ごとの主な作業内容。推測を含む場合は「〜と思われる」を付ける", ...],
  "app_purposes": {"アプリ名": "主な用途を一行で", ...},
  "insights": "画面テキストやウィンドウタイトルから推測される学習内容・気づき。なければ「特になし」",
  "open_items": ["未完了と思われる作業やファイル", ...]
}

ルール:
- 推測は明示する
- 個人情報やセンシティブな情報は伏せる
- 簡潔に要点をまとめる
- 使用時間の数値はこちらで計算済みのため出力しない`

const weeklySystemPrompt = `あなたは週間作業ログから週報を作成するアシスタントです。

有効なJSONのみで応答してください。Markdownや説明文は不要です。スキーマ:
{
  "summary": ["今週の主要な作業を箇条書きで", ...],
  "daily_overview": {"YYYY-MM-DD": "その日の主な作業を1-2行で", ...},
  "learnings": "今週調べたこと・学んだこと・気づき",
  "reflection": "今週の良かった点、改善すべき点",
  "next_week": ["作業中のタスク、来週やるべきこと", ...],
  "app_purposes": {"アプリ名": "主な用途を一行で", ...},
  "open_items": ["未完了と思われる作業", ...]
}

ルール:
- 推測は明示する
- 個人情報やセンシティブな情報は伏せる
- 簡潔に要点をまとめる
- 金曜日のデータは18時時点の暫定データの可能性がある`

func buildDailyMessages(input Input) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: dailySystemPrompt},
		{Role: "user", Content: buildUserPrompt(input, fmt.Sprintf("%s の作業ログデータです。", input.Period))},
	}
}

func buildWeeklyMessages(input Input) []chatMessage {
	header := fmt.Sprintf("%s（%s）の週間作業ログデータです。", input.Period, strings.Join(input.Dates, ", "))
	return []chatMessage{
		{Role: "system", Content: weeklySystemPrompt},
		{Role: "user", Content: buildUserPrompt(input, header)},
	}
}

func buildUserPrompt(input Input, header string) string {
	var b strings.Builder

	b.WriteString(header)
	b.WriteString("\n\n## 記録概要\n")
	fmt.Fprintf(&b, "- 総記録数: %d件（約%d分）\n", input.TotalEvents, input.TotalEvents)
	if n := len(input.Sessions); n > 0 {
		first := input.Sessions[0].Start
		last := input.Sessions[n-1].End
		fmt.Fprintf(&b, "- 記録開始: %s\n", first.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "- 記録終了: %s\n", last.Format("2006-01-02 15:04"))
	}

	if len(input.Days) > 1 {
		b.WriteString("\n## 日ごとの作業時間\n")
		for _, d := range input.Days {
			fmt.Fprintf(&b, "- %s: %s\n", d.Date, aggregate.FormatSeconds(d.Seconds))
		}
	}

	if len(input.Usage) > 0 {
		b.WriteString("\n## アプリ使用時間\n")
		usage := input.Usage
		if len(usage) > maxUsageLines {
			usage = usage[:maxUsageLines]
		}
		for _, u := range usage {
			fmt.Fprintf(&b, "- %s: %s\n", u.App, aggregate.FormatSeconds(u.Seconds))
		}
	}

	b.WriteString("\n## 作業セッション\n")
	sessions := input.Sessions
	if len(sessions) > maxSessionLines {
		sessions = sessions[:maxSessionLines]
	}
	budget := maxExcerptBudget
	for _, s := range sessions {
		fmt.Fprintf(&b, "- %s–%s %s", s.Start.Format("15:04"), s.End.Format("15:04"), appOrUnknown(s.App))
		if len(s.Titles) > 0 {
			titles := s.Titles
			if len(titles) > 5 {
				titles = titles[:5]
			}
			fmt.Fprintf(&b, " | %s", strings.Join(titles, " / "))
		}
		b.WriteString("\n")

		if budget > 0 && len(s.Excerpts) > 0 {
			limit := maxPromptExcerpt
			if budget < limit {
				limit = budget
			}
			excerpt := clipRunes(flatten(s.Excerpts[0]), limit)
			budget -= len([]rune(excerpt))
			fmt.Fprintf(&b, "  画面: %s\n", excerpt)
		}
	}
	if len(input.Sessions) > maxSessionLines {
		fmt.Fprintf(&b, "- ...他%d件のセッション\n", len(input.Sessions)-maxSessionLines)
	}

	return b.String()
}

func appOrUnknown(app string) string {
	if app == "" {
		return "Unknown"
	}
	return app
}

func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func clipRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
