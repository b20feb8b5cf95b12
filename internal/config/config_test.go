package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

// chdir moves into dir for the duration of the test. Load searches
// the working directory for config.yaml.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		viper.Reset()
		assert.NoError(t, os.Chdir(old))
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "Rinna", cfg.Project.Name)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "html", cfg.Reports.DefaultEngine)
	assert.Equal(t, "png", cfg.Diagrams.Format)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
project:
  name: Rinna-Test
server:
  address: ":9090"
logging:
  level: debug
  format: json
`
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "Rinna-Test", cfg.Project.Name)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	// Unset keys keep their defaults.
	assert.Equal(t, "sqlite", cfg.DB.Driver)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  address: ":9090"
`
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	chdir(t, dir)

	t.Setenv("RINNA_SERVER_ADDRESS", ":7070")
	t.Setenv("RINNA_REPORTS_DEFAULT_ENGINE", "markdown")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, "markdown", cfg.Reports.DefaultEngine)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RINNA_DATABASE_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownStorageType(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RINNA_STORAGE_TYPE", "ftp")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [broken"), 0o644))
	chdir(t, dir)

	_, err := Load()
	assert.Error(t, err)
}

func TestStringHidesDSN(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotContains(t, cfg.String(), cfg.DB.DSN)
	assert.Contains(t, cfg.String(), "[HIDDEN]")
}
