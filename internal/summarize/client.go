// Package summarize drives the external generative-summarization service:
// it turns session evidence into the narrative parts of a report. The
// service is OpenAI-compatible chat completions returning strict JSON.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/mtanaka/worklog/internal/config"
)

// ErrSummarizationFailed covers service errors, timeouts, and malformed
// responses. The composer aborts without touching the report store.
var ErrSummarizationFailed = errors.New("summarization failed")

// GenerateDaily asks the service for the daily narrative fields.
func GenerateDaily(ctx context.Context, cfg config.SummarizeConfig, input Input) (*Result, error) {
	content, err := complete(ctx, cfg, buildDailyMessages(input))
	if err != nil {
		return nil, err
	}

	var r Result
	if err := json.Unmarshal([]byte(content), &r); err != nil {
		return nil, fmt.Errorf("%w: unmarshal narrative JSON: %v", ErrSummarizationFailed, err)
	}
	return &r, nil
}

// GenerateWeekly asks the service for the weekly narrative fields.
func GenerateWeekly(ctx context.Context, cfg config.SummarizeConfig, input Input) (*WeeklyResult, error) {
	content, err := complete(ctx, cfg, buildWeeklyMessages(input))
	if err != nil {
		return nil, err
	}

	var r WeeklyResult
	if err := json.Unmarshal([]byte(content), &r); err != nil {
		return nil, fmt.Errorf("%w: unmarshal narrative JSON: %v", ErrSummarizationFailed, err)
	}
	return &r, nil
}

func complete(ctx context.Context, cfg config.SummarizeConfig, messages []chatMessage) (string, error) {
	if !cfg.Enabled {
		return "", fmt.Errorf("%w: summarization disabled in config", ErrSummarizationFailed)
	}

	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return "", fmt.Errorf("%w: %s not set", ErrSummarizationFailed, cfg.APIKeyEnv)
	}

	reqBody := chatRequest{
		Model:       cfg.Model,
		Messages:    messages,
		Temperature: 0.3,
		ResponseFormat: &respFormat{
			Type: "json_object",
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarizationFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrSummarizationFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrSummarizationFailed, resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: unmarshal response: %v", ErrSummarizationFailed, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: API error: %s", ErrSummarizationFailed, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices in response", ErrSummarizationFailed)
	}

	return parsed.Choices[0].Message.Content, nil
}
