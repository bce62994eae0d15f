// Package report reads closed log partitions, rebuilds sessions, aggregates
// time, drives the summarization service, and writes the final Markdown
// document. Report-side failures are all-or-nothing per period: a failed run
// never clobbers a previously committed report.
package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mtanaka/worklog/internal/aggregate"
	"github.com/mtanaka/worklog/internal/config"
	"github.com/mtanaka/worklog/internal/ledger"
	"github.com/mtanaka/worklog/internal/logstore"
	"github.com/mtanaka/worklog/internal/notify"
	"github.com/mtanaka/worklog/internal/reportstore"
	"github.com/mtanaka/worklog/internal/session"
	"github.com/mtanaka/worklog/internal/summarize"
)

// ErrNoInputData is returned when a report is requested for a period with
// no log partitions at all.
var ErrNoInputData = errors.New("no log data for period")

// Service produces the narrative fields of a report from session evidence.
type Service interface {
	Daily(ctx context.Context, input summarize.Input) (*summarize.Result, error)
	Weekly(ctx context.Context, input summarize.Input) (*summarize.WeeklyResult, error)
}

// LLM is the production Service backed by the external summarization API.
type LLM struct {
	Cfg config.SummarizeConfig
}

func (l LLM) Daily(ctx context.Context, input summarize.Input) (*summarize.Result, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()
	return summarize.GenerateDaily(ctx, l.Cfg, input)
}

func (l LLM) Weekly(ctx context.Context, input summarize.Input) (*summarize.WeeklyResult, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()
	return summarize.GenerateWeekly(ctx, l.Cfg, input)
}

func (l LLM) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(l.Cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// Composer generates reports for one period per invocation.
type Composer struct {
	Cfg     config.Config
	Logs    *logstore.Store
	Reports *reportstore.Store
	Service Service

	// Ledger is optional; nil disables history recording and post dedup.
	Ledger *ledger.Ledger

	// Post delivers a rendered report to a webhook; nil means notify.Post.
	Post func(ctx context.Context, url, heading, markdown string) error
}

// Daily (re)generates the report for target, an ISO date or a path to a
// specific partition file. Returns the written report path.
func (c *Composer) Daily(ctx context.Context, target string) (string, error) {
	date, events, err := c.loadDaily(target)
	if err != nil {
		return "", err
	}

	data := DailyData{Date: date}

	if len(events) > 0 {
		sessions := c.segment(events)
		data.Usage = aggregate.Usage(sessions)
		data.Total = aggregate.TotalSeconds(sessions)

		narrative, err := c.Service.Daily(ctx, summarize.Input{
			Period:      date,
			Sessions:    sessions,
			Usage:       data.Usage,
			TotalEvents: len(events),
		})
		if err != nil {
			return "", fmt.Errorf("daily report %s: %w", date, err)
		}
		data.Narrative = narrative
	}

	path, err := c.Reports.Write(date, RenderDaily(data))
	if err != nil {
		return "", fmt.Errorf("daily report %s: %w", date, err)
	}

	c.record(date, path, len(events))
	return path, nil
}

// Weekly (re)generates the Mon–Fri report for the week containing t and
// posts it to the configured webhook once per week.
func (c *Composer) Weekly(ctx context.Context, t time.Time) (string, error) {
	week := WeekNumber(t)
	dates := WeekDates(t)

	var events []logstore.Event
	for _, date := range dates {
		dayEvents, err := c.Logs.ReadDate(date)
		if err != nil {
			if errors.Is(err, logstore.ErrNoPartition) {
				continue
			}
			return "", fmt.Errorf("weekly report %s: %w", week, err)
		}
		events = append(events, dayEvents...)
	}
	if len(events) == 0 {
		return "", fmt.Errorf("%w: week %s", ErrNoInputData, week)
	}

	sessions := c.segment(events)
	usage := aggregate.Usage(sessions)
	days := aggregate.ByDay(sessions)
	total := aggregate.TotalSeconds(sessions)

	narrative, err := c.Service.Weekly(ctx, summarize.Input{
		Period:      week,
		Dates:       dates,
		Sessions:    sessions,
		Usage:       usage,
		Days:        days,
		TotalEvents: len(events),
	})
	if err != nil {
		return "", fmt.Errorf("weekly report %s: %w", week, err)
	}

	markdown := RenderWeekly(WeeklyData{
		Week:      week,
		Dates:     dates,
		Usage:     usage,
		Days:      days,
		Total:     total,
		Narrative: narrative,
	})

	path, err := c.Reports.Write(week, markdown)
	if err != nil {
		return "", fmt.Errorf("weekly report %s: %w", week, err)
	}

	c.record(week, path, len(events))
	c.post(ctx, week, markdown)
	return path, nil
}

func (c *Composer) loadDaily(target string) (string, []logstore.Event, error) {
	// An explicit partition path bypasses the store lookup.
	if strings.HasSuffix(target, ".jsonl") || strings.HasSuffix(target, ".jsonl.zst") {
		events, err := logstore.ReadFile(target)
		if err != nil {
			if os.IsNotExist(errors.Unwrap(err)) {
				return "", nil, fmt.Errorf("%w: %s", ErrNoInputData, target)
			}
			return "", nil, err
		}
		return dateFromPath(target), events, nil
	}

	events, err := c.Logs.ReadDate(target)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s", ErrNoInputData, target)
	}
	return target, events, nil
}

func (c *Composer) segment(events []logstore.Event) []session.Session {
	interval := time.Duration(c.Cfg.Capture.IntervalSeconds) * time.Second
	return session.Segment(events, interval, c.Cfg.Capture.MissedCycleTolerance)
}

func (c *Composer) record(period, path string, events int) {
	if c.Ledger == nil {
		return
	}
	if err := c.Ledger.RecordReport(period, path, events); err != nil {
		log.Printf("warning: %v", err)
	}
}

// post forwards the weekly report to the webhook sink, at most once per
// week. Delivery failure is a warning, never a report failure.
func (c *Composer) post(ctx context.Context, week, markdown string) {
	url := os.Getenv(c.Cfg.Notify.WebhookURLEnv)
	if url == "" {
		return
	}

	if c.Ledger != nil {
		posted, err := c.Ledger.Posted(week)
		if err != nil {
			log.Printf("warning: %v", err)
			return
		}
		if posted {
			return
		}
	}

	poster := c.Post
	if poster == nil {
		poster = notify.Post
	}
	if err := poster(ctx, url, fmt.Sprintf("📊 %s 週報", week), markdown); err != nil {
		log.Printf("warning: webhook post failed: %v", err)
		return
	}

	if c.Ledger != nil {
		if err := c.Ledger.MarkPosted(week); err != nil {
			log.Printf("warning: %v", err)
		}
	}
}

func dateFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".zst")
	return strings.TrimSuffix(base, ".jsonl")
}
