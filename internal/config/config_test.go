package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/specialtybot/core/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: \"123:abc\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultContentPath, cfg.Content.Path)
	assert.Equal(t, coreconfig.RunModeLongpoll, cfg.Telegram.RunMode)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, 10, cfg.Audit.UsageLimit)
	assert.Nil(t, cfg.DatabaseConfig())
	assert.Same(t, &cfg.Config, cfg.CoreConfig())
}

func TestLoadInlineCoreAndAppSections(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
  admin_id: 42
metrics:
  listen: ":9100"
content:
  path: data/program.yaml
audit:
  enabled: true
  usage_limit: 5
database:
  host: db
  name: specialty
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Telegram.AdminID)
	assert.Equal(t, ":9100", cfg.Metrics.Listen)
	assert.Equal(t, "data/program.yaml", cfg.Content.Path)
	assert.Equal(t, 5, cfg.Audit.UsageLimit)

	db := cfg.DatabaseConfig()
	require.NotNil(t, db)
	assert.Equal(t, "db", db.Host)
	assert.Equal(t, "5432", db.Port)
}

func TestLoadEnvOverridesContentPath(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: \"123:abc\"\ncontent:\n  path: a.json\n")
	t.Setenv("CONTENT_PATH", "b.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "b.yaml", cfg.Content.Path)
}

func TestAuditRequiresDatabase(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: \"123:abc\"\naudit:\n  enabled: true\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")
}

func TestLoadRejectsMissingToken(t *testing.T) {
	path := writeConfig(t, "content:\n  path: a.json\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
