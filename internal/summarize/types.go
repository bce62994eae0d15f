package summarize

// Result holds the generated fields for a daily report. Durations are never
// taken from here; the composer always uses the aggregator's numbers.
type Result struct {
	WorkContent []string          `json:"work_content"` // 作業内容 bullets
	AppPurposes map[string]string `json:"app_purposes"` // app → one-line 主な用途
	Insights    string            `json:"insights"`     // 得られた知見・メモ
	OpenItems   []string          `json:"open_items"`   // 作業中のもの
}

// WeeklyResult holds the generated fields for a weekly report.
type WeeklyResult struct {
	Summary       []string          `json:"summary"`        // 今週の作業サマリー bullets
	DailyOverview map[string]string `json:"daily_overview"` // date → 1-2 line note
	Learnings     string            `json:"learnings"`      // 学習・調査メモ
	Reflection    string            `json:"reflection"`     // 振り返り
	NextWeek      []string          `json:"next_week"`      // 来週の準備事項
	AppPurposes   map[string]string `json:"app_purposes"`
	OpenItems     []string          `json:"open_items"`
}

// API request/response types for OpenAI-compatible chat completions.

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type respFormat struct {
	Type string `json:"type"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
