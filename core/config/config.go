// Package config loads the settings every bot built on core needs: the
// Telegram token and transport, logging, rate limiting and metrics.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Run modes accepted in telegram.run_mode.
const (
	RunModeLongpoll = "longpoll"
	RunModeWebhook  = "webhook"
)

// Update kinds accepted in rate_limit.exclude_updates.
const (
	UpdateCallback    = "callback"
	UpdateMessage     = "message"
	UpdateInlineQuery = "inline_query"
)

var updateKinds = []string{UpdateCallback, UpdateMessage, UpdateInlineQuery}

type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminID int64  `yaml:"admin_id" envconfig:"TELEGRAM_ADMIN_ID"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// Zero keeps the poller default.
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig is only read when RunMode is webhook.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig selects the log level and line format. Format is json, kv or
// auto; auto writes kv when stdout is a terminal. A dev or debug Profile
// implies kv when Format is empty.
type LoggingConfig struct {
	Level     string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format    string `yaml:"format" envconfig:"LOG_FORMAT"`
	KeysOrder string `yaml:"keys_order"`
	Profile   string `yaml:"profile"`
	Dir       string `yaml:"dir"`
	File      string `yaml:"file"`
}

// RateLimitConfig throttles each user to one update per IntervalMS.
// ExcludeUpdates lists update kinds that are never throttled.
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// MetricsConfig sets the /metrics listen address. Empty disables the endpoint.
type MetricsConfig struct {
	Listen string `yaml:"listen" envconfig:"METRICS_LISTEN"`
}

type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// Load decodes and normalizes the core settings at path.
func Load(path string) (*Config, error) {
	cfg := new(Config)
	if err := Decode(path, cfg); err != nil {
		return nil, err
	}
	if err := Normalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode reads the YAML file at path into out and then applies environment
// overrides. out may be any struct that embeds Config inline.
func Decode(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := envconfig.Process("", out); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

// Normalize validates cfg in place, filling the run mode default and
// lowercasing the rate limit exclusions.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}
	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		return errors.New("config: telegram.token (BOT_TOKEN) is required")
	}

	mode, err := normalizeRunMode(cfg.Telegram.RunMode)
	if err != nil {
		return err
	}
	cfg.Telegram.RunMode = mode
	switch mode {
	case RunModeWebhook:
		if err := cfg.Webhook.validate(); err != nil {
			return err
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return errors.New("config: telegram.longpoll_timeout_seconds must not be negative")
		}
	}

	for i, kind := range cfg.RateLimit.ExcludeUpdates {
		kind = strings.ToLower(strings.TrimSpace(kind))
		if kind != "" && !slices.Contains(updateKinds, kind) {
			return fmt.Errorf("config: rate_limit.exclude_updates: unknown update kind %q", cfg.RateLimit.ExcludeUpdates[i])
		}
		cfg.RateLimit.ExcludeUpdates[i] = kind
	}
	return nil
}

func normalizeRunMode(raw string) (string, error) {
	switch mode := strings.ToLower(strings.TrimSpace(raw)); mode {
	case "", "polling", RunModeLongpoll:
		return RunModeLongpoll, nil
	case RunModeWebhook:
		return RunModeWebhook, nil
	default:
		return "", fmt.Errorf("config: telegram.run_mode %q is not longpoll or webhook", raw)
	}
}

func (w WebhookConfig) validate() error {
	switch {
	case strings.TrimSpace(w.URL) == "":
		return errors.New("config: webhook.url is required in webhook mode")
	case strings.TrimSpace(w.Listen) == "":
		return errors.New("config: webhook.listen is required in webhook mode")
	case w.Port <= 0:
		return errors.New("config: webhook.port must be positive in webhook mode")
	}
	return nil
}
