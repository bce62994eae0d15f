package notify

import (
	"strings"
	"testing"
)

func TestToMrkdwnHeadings(t *testing.T) {
	got := ToMrkdwn("# 2026-08-27 日報\n\n## 作業内容\n\n本文")

	if !strings.Contains(got, "*2026-08-27 日報*") {
		t.Errorf("h1 not converted: %q", got)
	}
	if !strings.Contains(got, "*作業内容*") {
		t.Errorf("h2 not converted: %q", got)
	}
	if strings.Contains(got, "#") {
		t.Errorf("heading marker leaked through: %q", got)
	}
}

func TestToMrkdwnBold(t *testing.T) {
	got := ToMrkdwn("これは**重要**な点と**もう一つ**です")
	want := "これは*重要*な点と*もう一つ*です"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToMrkdwnTable(t *testing.T) {
	md := strings.Join([]string{
		"| アプリ名 | 使用時間 | 主な用途 |",
		"|---------|---------|---------|",
		"| Code | 2時間30分 | Go開発 |",
		"| Safari | 30分 | - |",
	}, "\n")

	got := ToMrkdwn(md)

	if strings.Contains(got, "|") {
		t.Errorf("table pipes leaked through: %q", got)
	}
	if !strings.Contains(got, "• アプリ名: Code / 使用時間: 2時間30分 / 主な用途: Go開発") {
		t.Errorf("first row not bulleted: %q", got)
	}
	if !strings.Contains(got, "• アプリ名: Safari") {
		t.Errorf("second row not bulleted: %q", got)
	}
}

func TestToMrkdwnTableFollowedByText(t *testing.T) {
	md := "| a | b |\n|---|---|\n| 1 | 2 |\n\n後続の段落"
	got := ToMrkdwn(md)

	if !strings.Contains(got, "• a: 1 / b: 2") {
		t.Errorf("table not flushed: %q", got)
	}
	if !strings.Contains(got, "後続の段落") {
		t.Errorf("text after table lost: %q", got)
	}
}

func TestToMrkdwnListsPreserved(t *testing.T) {
	md := "- 一つ目\n- 二つ目"
	if got := ToMrkdwn(md); got != md {
		t.Errorf("plain list should pass through, got %q", got)
	}
}

func TestToMrkdwnHeaderOnlyTable(t *testing.T) {
	md := "| a | b |\n|---|---|"
	got := ToMrkdwn(md)
	if strings.Contains(got, "•") || strings.Contains(got, "|") {
		t.Errorf("header-only table should produce nothing, got %q", got)
	}
}
