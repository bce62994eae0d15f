package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtanaka/worklog/internal/archive"
	"github.com/mtanaka/worklog/internal/capture"
	"github.com/mtanaka/worklog/internal/config"
	"github.com/mtanaka/worklog/internal/ledger"
	"github.com/mtanaka/worklog/internal/logstore"
	"github.com/mtanaka/worklog/internal/ocr"
	"github.com/mtanaka/worklog/internal/probe"
	"github.com/mtanaka/worklog/internal/report"
	"github.com/mtanaka/worklog/internal/reportstore"
)

const version = "0.1.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("worklog: ")

	if err := rootCmd().Execute(); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "worklog",
		Short:         "Records desktop activity and synthesizes daily/weekly reports",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(captureCmd(), reportCmd(), weeklyCmd(), archiveCmd(), historyCmd())
	return root
}

func captureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capture",
		Short: "Perform one capture cycle (run from a per-minute scheduler)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			mac := probe.Darwin{}
			runner := &capture.Runner{
				Cfg:       cfg,
				Window:    mac,
				System:    mac,
				Screen:    mac,
				Extractor: ocr.NewCommand(cfg.Capture.OCRCommand, cfg.Capture.Languages),
				Store:     logstore.New(cfg.LogsDir()),
			}

			result, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			if result.Skipped {
				fmt.Printf("skipped: %s\n", result.Reason)
				return nil
			}
			fmt.Printf("captured: %s - %s\n", result.Event.App, result.Event.WindowTitle)
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [date|file.jsonl]",
		Short: "(Re)generate a daily report (default: yesterday)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
			if len(args) > 0 {
				target = args[0]
			}

			composer, cleanup, err := newComposer()
			if err != nil {
				return err
			}
			defer cleanup()

			path, err := composer.Daily(cmd.Context(), target)
			if err != nil {
				return err
			}
			fmt.Printf("report saved: %s\n", path)
			return nil
		},
	}
}

func weeklyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weekly [date]",
		Short: "(Re)generate the Mon–Fri weekly report for the week containing date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := time.Now()
			if len(args) > 0 {
				parsed, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
				if err != nil {
					return fmt.Errorf("parse date %q: %w", args[0], err)
				}
				target = parsed
			}

			composer, cleanup, err := newComposer()
			if err != nil {
				return err
			}
			defer cleanup()

			path, err := composer.Weekly(cmd.Context(), target)
			if err != nil {
				return err
			}
			fmt.Printf("report saved: %s\n", path)
			return nil
		},
	}
}

func archiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Compress log partitions older than the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.Archive.Compress {
				fmt.Println("archiving disabled in config")
				return nil
			}

			archived, err := archive.Sweep(cfg.LogsDir(), cfg.Archive.RetentionDays, time.Now())
			for _, path := range archived {
				fmt.Printf("archived: %s\n", path)
			}
			if err != nil {
				return err
			}
			if len(archived) == 0 {
				fmt.Println("nothing to archive")
			}
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	limit := 20
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently generated reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			led, err := ledger.Open(cfg.StateDir())
			if err != nil {
				return err
			}
			defer led.Close()

			records, err := led.Reports(limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("no reports generated yet")
				return nil
			}
			for _, r := range records {
				fmt.Printf("%-12s %5d events   %s\n", r.Period, r.Events, r.Path)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum reports to list")
	return cmd
}

// newComposer wires the report pipeline. The ledger is best-effort: a
// failure to open it degrades history/dedup, not report generation.
func newComposer() (*report.Composer, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	led, err := ledger.Open(cfg.StateDir())
	if err != nil {
		log.Printf("warning: could not open ledger: %v", err)
		led = nil
	}
	cleanup := func() {
		if led != nil {
			led.Close()
		}
	}

	composer := &report.Composer{
		Cfg:     cfg,
		Logs:    logstore.New(cfg.LogsDir()),
		Reports: reportstore.New(cfg.ReportsDir()),
		Service: report.LLM{Cfg: cfg.Summarize},
		Ledger:  led,
	}
	return composer, cleanup, nil
}
