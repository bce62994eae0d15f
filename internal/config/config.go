package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all worklog configuration. It is built once at process start
// and passed down; nothing mutates it afterwards.
type Config struct {
	DataDir string `toml:"data_dir"`

	Capture   CaptureConfig   `toml:"capture"`
	Summarize SummarizeConfig `toml:"summarize"`
	Notify    NotifyConfig    `toml:"notify"`
	Archive   ArchiveConfig   `toml:"archive"`
}

type CaptureConfig struct {
	IdleThresholdSeconds int      `toml:"idle_threshold_seconds"`
	IntervalSeconds      int      `toml:"interval_seconds"`
	MissedCycleTolerance int      `toml:"missed_cycle_tolerance"`
	MaxTextLength        int      `toml:"max_text_length"`
	OCRCommand           string   `toml:"ocr_command"`
	Languages            []string `toml:"languages"`
}

type SummarizeConfig struct {
	Enabled        bool   `toml:"enabled"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Model          string `toml:"model"`
	APIKeyEnv      string `toml:"api_key_env"`
	BaseURL        string `toml:"base_url"`
}

type NotifyConfig struct {
	WebhookURLEnv string `toml:"webhook_url_env"`
}

type ArchiveConfig struct {
	Compress      bool `toml:"compress"`
	RetentionDays int  `toml:"retention_days"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DataDir: "~/.worklog",
		Capture: CaptureConfig{
			IdleThresholdSeconds: 300,
			IntervalSeconds:      60,
			MissedCycleTolerance: 1,
			MaxTextLength:        5000,
			OCRCommand:           "ocr_tool",
			Languages:            []string{"ja", "en"},
		},
		Summarize: SummarizeConfig{
			Enabled:        true,
			TimeoutSeconds: 60,
			Model:          "gemini-2.5-flash",
			APIKeyEnv:      "WORKLOG_API_KEY",
			BaseURL:        "https://api.openai.com/v1",
		},
		Notify: NotifyConfig{
			WebhookURLEnv: "WORKLOG_WEBHOOK_URL",
		},
		Archive: ArchiveConfig{
			Compress:      true,
			RetentionDays: 14,
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
// A .env file in the working directory is loaded first so that API keys
// and webhook URLs can live outside the TOML.
func Load() (Config, error) {
	_ = godotenv.Load() // missing .env is fine

	cfg := DefaultConfig()

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	// WORKLOG_ROOT overrides the data dir wholesale.
	if root := os.Getenv("WORKLOG_ROOT"); root != "" {
		cfg.DataDir = root
	}
	cfg.DataDir = expandHome(cfg.DataDir)

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "worklog", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "worklog", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// LogsDir returns the directory holding per-day event partitions.
func (c Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ReportsDir returns the directory holding rendered reports.
func (c Config) ReportsDir() string {
	return filepath.Join(c.DataDir, "reports")
}

// TmpDir returns the directory for transient screenshot files.
func (c Config) TmpDir() string {
	return filepath.Join(c.DataDir, "tmp")
}

// StateDir returns the state directory (report ledger database).
func (c Config) StateDir() string {
	return filepath.Join(c.DataDir, ".state")
}
