// Package config loads the specialty bot configuration: the shared core
// sections plus content and audit settings.
package config

import (
	"fmt"
	"strings"

	coreconfig "github.com/m3rciful/specialtybot/core/config"
	coredatabase "github.com/m3rciful/specialtybot/core/database"
)

// DefaultContentPath is used when content.path is not configured.
const DefaultContentPath = "specialties.json"

// ContentConfig points at the program content file (JSON or YAML).
type ContentConfig struct {
	Path string `yaml:"path" envconfig:"CONTENT_PATH"`
}

// AuditConfig toggles the Postgres navigation audit.
type AuditConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"AUDIT_ENABLED"`
	// UsageLimit bounds the number of screens /usage reports.
	UsageLimit int `yaml:"usage_limit" envconfig:"AUDIT_USAGE_LIMIT"`
}

// Config is the full bot configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Content  ContentConfig       `yaml:"content"`
	Audit    AuditConfig         `yaml:"audit"`
	Database coredatabase.Config `yaml:"database"`
}

// CoreConfig exposes the embedded core section.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Config
}

// DatabaseConfig returns the database settings when the audit store needs them.
func (c *Config) DatabaseConfig() *coredatabase.Config {
	if c == nil || !c.Audit.Enabled {
		return nil
	}
	db := c.Database
	return &db
}

// Load reads YAML from path, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates the core section and fills application defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return err
	}

	cfg.Content.Path = strings.TrimSpace(cfg.Content.Path)
	if cfg.Content.Path == "" {
		cfg.Content.Path = DefaultContentPath
	}

	if cfg.Audit.UsageLimit <= 0 {
		cfg.Audit.UsageLimit = 10
	}
	if cfg.Audit.Enabled {
		if strings.TrimSpace(cfg.Database.Host) == "" || strings.TrimSpace(cfg.Database.Name) == "" {
			return fmt.Errorf("database.host and database.name are required when audit.enabled is true")
		}
		if strings.TrimSpace(cfg.Database.Port) == "" {
			cfg.Database.Port = "5432"
		}
	}
	return nil
}
