package report

import (
	"strings"
	"testing"

	"github.com/mtanaka/worklog/internal/aggregate"
	"github.com/mtanaka/worklog/internal/summarize"
)

func TestRenderDaily(t *testing.T) {
	md := RenderDaily(DailyData{
		Date: "2026-08-27",
		Usage: []aggregate.AppUsage{
			{App: "Code", Seconds: 9000, Sessions: 3},
			{App: "Safari", Seconds: 1800, Sessions: 2},
		},
		Total: 10800,
		Narrative: &summarize.Result{
			WorkContent: []string{"午前はレビュー対応", "午後は実装と思われる"},
			AppPurposes: map[string]string{"Code": "Go開発"},
			Insights:    "zstdの辞書圧縮について学んだ",
			OpenItems:   []string{"capture.goの修正"},
		},
	})

	for _, want := range []string{
		"# 2026-08-27 日報",
		"## 作業内容",
		"（合計作業時間: 3時間）",
		"- 午前はレビュー対応",
		"## 使用アプリ",
		"| アプリ名 | 使用時間 | 主な用途 |",
		"| Code | 2時間30分 | Go開発 |",
		"| Safari | 30分 | - |", // no purpose from the narrative
		"## 得られた知見・メモ",
		"zstdの辞書圧縮について学んだ",
		"## 作業中のもの",
		"- capture.goの修正",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q\n%s", want, md)
		}
	}

	if !strings.HasSuffix(md, "\n") || strings.HasSuffix(md, "\n\n") {
		t.Error("report should end with exactly one newline")
	}
}

func TestRenderDaily_NoActivity(t *testing.T) {
	md := RenderDaily(DailyData{Date: "2026-08-27"})

	if !strings.Contains(md, "活動記録はありません（no activity recorded）") {
		t.Errorf("missing no-activity marker:\n%s", md)
	}
	if strings.Contains(md, "合計作業時間") {
		t.Error("empty day should not report a total")
	}
	// Section skeleton stays intact even with nothing to say.
	for _, heading := range []string{"## 作業内容", "## 使用アプリ", "## 得られた知見・メモ", "## 作業中のもの"} {
		if !strings.Contains(md, heading) {
			t.Errorf("missing heading %q", heading)
		}
	}
}

func TestRenderDaily_Deterministic(t *testing.T) {
	data := DailyData{
		Date:  "2026-08-27",
		Usage: []aggregate.AppUsage{{App: "Code", Seconds: 600}},
		Total: 600,
		Narrative: &summarize.Result{
			WorkContent: []string{"実装"},
		},
	}
	if RenderDaily(data) != RenderDaily(data) {
		t.Error("same input must render byte-identical output")
	}
}

func TestRenderWeekly(t *testing.T) {
	md := RenderWeekly(WeeklyData{
		Week:  "2026-W35",
		Dates: []string{"2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27", "2026-08-28"},
		Usage: []aggregate.AppUsage{
			{App: "Code", Seconds: 36000},
			{App: "Safari", Seconds: 7200},
			{App: "Slack", Seconds: 3600},
			{App: "Terminal", Seconds: 1800},
			{App: "Mail", Seconds: 900},
			{App: "Notes", Seconds: 300}, // sixth app is trimmed from the table
		},
		Days: []aggregate.DayUsage{
			{Date: "2026-08-24", Seconds: 14400},
			{Date: "2026-08-25", Seconds: 10800},
		},
		Total: 49800,
		Narrative: &summarize.WeeklyResult{
			Summary:       []string{"ログ基盤の整備"},
			DailyOverview: map[string]string{"2026-08-24": "設計と実装"},
			Learnings:     "JSONLの破損行の扱いを調査",
			Reflection:    "テストを先に書くべきだった",
			NextWeek:      []string{"リリース準備"},
			AppPurposes:   map[string]string{"Code": "Go開発"},
		},
	})

	for _, want := range []string{
		"# 2026-W35 週報（2026-08-24 〜 2026-08-28）",
		"## 今週の作業サマリー",
		"- ログ基盤の整備",
		"## 使用アプリ（週間）",
		"| Code | 10時間 | Go開発 |",
		"## 日別の活動概要",
		"- 2026-08-24（4時間）: 設計と実装",
		"- 2026-08-25（3時間）", // no note for this day
		"## 学習・調査メモ",
		"JSONLの破損行の扱いを調査",
		"## 振り返り",
		"## 来週の準備事項",
		"- リリース準備",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q\n%s", want, md)
		}
	}

	if strings.Contains(md, "Notes") {
		t.Error("weekly usage table should keep only the top 5 apps")
	}
}

func TestRenderWeekly_EmptyNarrativeFields(t *testing.T) {
	md := RenderWeekly(WeeklyData{
		Week:      "2026-W35",
		Dates:     []string{"2026-08-24", "2026-08-25", "2026-08-26", "2026-08-27", "2026-08-28"},
		Total:     600,
		Narrative: &summarize.WeeklyResult{},
	})

	if n := strings.Count(md, "特になし"); n < 4 {
		t.Errorf("empty fields should fall back to 特になし, found %d\n%s", n, md)
	}
}
