package report

import (
	"fmt"
	"strings"

	"github.com/mtanaka/worklog/internal/aggregate"
	"github.com/mtanaka/worklog/internal/summarize"
)

// noActivity is the fixed narrative for a period with zero events.
const noActivity = "活動記録はありません（no activity recorded）"

// DailyData holds everything needed to render one daily report. A nil
// Narrative means no activity was recorded and no summarization ran.
type DailyData struct {
	Date      string
	Usage     []aggregate.AppUsage
	Total     int // seconds
	Narrative *summarize.Result
}

// WeeklyData holds everything needed to render one weekly report.
type WeeklyData struct {
	Week      string // e.g. "2026-W35"
	Dates     []string
	Usage     []aggregate.AppUsage
	Days      []aggregate.DayUsage
	Total     int // seconds
	Narrative *summarize.WeeklyResult
}

// RenderDaily produces the fixed daily Markdown layout. Usage-time numbers
// come from the aggregator only; the narrative never carries durations.
func RenderDaily(d DailyData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s 日報\n\n", d.Date)

	b.WriteString("## 作業内容\n\n")
	if d.Narrative == nil {
		b.WriteString(noActivity + "\n\n")
	} else {
		fmt.Fprintf(&b, "（合計作業時間: %s）\n\n", aggregate.FormatSeconds(d.Total))
		writeBullets(&b, d.Narrative.WorkContent, "特になし")
	}

	b.WriteString("## 使用アプリ\n\n")
	writeUsageTable(&b, d.Usage, purposes(d.Narrative))

	b.WriteString("## 得られた知見・メモ\n\n")
	if d.Narrative == nil || d.Narrative.Insights == "" {
		b.WriteString("特になし\n\n")
	} else {
		b.WriteString(d.Narrative.Insights + "\n\n")
	}

	b.WriteString("## 作業中のもの\n\n")
	if d.Narrative == nil {
		b.WriteString("特になし\n")
	} else {
		writeBullets(&b, d.Narrative.OpenItems, "特になし")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// RenderWeekly produces the fixed weekly Markdown layout.
func RenderWeekly(d WeeklyData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s 週報（%s 〜 %s）\n\n", d.Week, d.Dates[0], d.Dates[len(d.Dates)-1])

	b.WriteString("## 今週の作業サマリー\n\n")
	if d.Narrative == nil {
		b.WriteString(noActivity + "\n\n")
	} else {
		fmt.Fprintf(&b, "（合計作業時間: %s）\n\n", aggregate.FormatSeconds(d.Total))
		writeBullets(&b, d.Narrative.Summary, "特になし")
	}

	b.WriteString("## 使用アプリ（週間）\n\n")
	usage := d.Usage
	if len(usage) > 5 {
		usage = usage[:5]
	}
	writeUsageTable(&b, usage, weeklyPurposes(d.Narrative))

	b.WriteString("## 日別の活動概要\n\n")
	if len(d.Days) == 0 {
		b.WriteString("特になし\n\n")
	} else {
		for _, day := range d.Days {
			line := fmt.Sprintf("- %s（%s）", day.Date, aggregate.FormatSeconds(day.Seconds))
			if d.Narrative != nil {
				if note := d.Narrative.DailyOverview[day.Date]; note != "" {
					line += ": " + note
				}
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## 学習・調査メモ\n\n")
	writeText(&b, narrativeField(d.Narrative, func(n *summarize.WeeklyResult) string { return n.Learnings }))

	b.WriteString("## 振り返り\n\n")
	writeText(&b, narrativeField(d.Narrative, func(n *summarize.WeeklyResult) string { return n.Reflection }))

	b.WriteString("## 来週の準備事項\n\n")
	if d.Narrative == nil {
		b.WriteString("特になし\n")
	} else {
		writeBullets(&b, d.Narrative.NextWeek, "特になし")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeBullets(b *strings.Builder, items []string, empty string) {
	if len(items) == 0 {
		b.WriteString(empty + "\n\n")
		return
	}
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
	b.WriteString("\n")
}

func writeText(b *strings.Builder, text string) {
	if text == "" {
		text = "特になし"
	}
	b.WriteString(text + "\n\n")
}

func writeUsageTable(b *strings.Builder, usage []aggregate.AppUsage, purposes map[string]string) {
	b.WriteString("| アプリ名 | 使用時間 | 主な用途 |\n")
	b.WriteString("|---------|---------|---------|\n")
	for _, u := range usage {
		purpose := purposes[u.App]
		if purpose == "" {
			purpose = "-"
		}
		fmt.Fprintf(b, "| %s | %s | %s |\n", u.App, aggregate.FormatSeconds(u.Seconds), purpose)
	}
	b.WriteString("\n")
}

func purposes(n *summarize.Result) map[string]string {
	if n == nil {
		return nil
	}
	return n.AppPurposes
}

func weeklyPurposes(n *summarize.WeeklyResult) map[string]string {
	if n == nil {
		return nil
	}
	return n.AppPurposes
}

func narrativeField(n *summarize.WeeklyResult, get func(*summarize.WeeklyResult) string) string {
	if n == nil {
		return ""
	}
	return get(n)
}
