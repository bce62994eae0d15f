package notify

import (
	"regexp"
	"strings"
)

var (
	tableRuleRe = regexp.MustCompile(`^\|[\s\-:|]+\|$`)
	boldRe      = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// ToMrkdwn converts report Markdown to Slack's mrkdwn dialect: headings
// become bold lines, **bold** becomes *bold*, and tables (which Slack
// cannot render) become bullet lines of "header: cell" pairs.
func ToMrkdwn(markdown string) string {
	var result []string
	var tableRows [][]string
	inTable := false

	flushTable := func() {
		result = append(result, tableToBullets(tableRows)...)
		tableRows = nil
		inTable = false
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "|") {
			inTable = true
			if tableRuleRe.MatchString(trimmed) {
				continue
			}
			if cells := splitRow(trimmed); len(cells) > 0 {
				tableRows = append(tableRows, cells)
			}
			continue
		}
		if inTable {
			flushTable()
		}

		switch {
		case strings.HasPrefix(line, "# "):
			result = append(result, "\n*"+strings.TrimSpace(line[2:])+"*")
		case strings.HasPrefix(line, "## "):
			result = append(result, "\n*"+strings.TrimSpace(line[3:])+"*")
		case strings.HasPrefix(line, "### "):
			result = append(result, "*"+strings.TrimSpace(line[4:])+"*")
		default:
			result = append(result, boldRe.ReplaceAllString(line, "*$1*"))
		}
	}
	if inTable {
		flushTable()
	}

	return strings.Join(result, "\n")
}

func splitRow(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return nil
	}
	cells := make([]string, 0, len(parts)-2)
	for _, p := range parts[1 : len(parts)-1] {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

func tableToBullets(rows [][]string) []string {
	if len(rows) < 2 {
		return nil
	}
	headers := rows[0]

	var bullets []string
	for _, row := range rows[1:] {
		if len(row) < len(headers) {
			continue
		}
		var parts []string
		for i, h := range headers {
			if row[i] != "" {
				parts = append(parts, h+": "+row[i])
			}
		}
		if len(parts) > 0 {
			bullets = append(bullets, "• "+strings.Join(parts, " / "))
		}
	}
	return bullets
}
