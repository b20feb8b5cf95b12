package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/heymumford/Rinna/internal/config"
)

func TestNewParsesLevel(t *testing.T) {
	logger := New(config.Logging{Level: "trace"})
	assert.Equal(t, logrus.TraceLevel, logger.GetLevel())
}

func TestNewInvalidLevelFallsBack(t *testing.T) {
	logger := New(config.Logging{Level: "verbose"})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestNewJSONFormat(t *testing.T) {
	logger := New(config.Logging{Level: "info", Format: "json"})
	_, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestNewTextFormatByDefault(t *testing.T) {
	logger := New(config.Logging{Level: "info"})
	_, ok := logger.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)
}

func TestNewCreatesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger := New(config.Logging{Level: "info", Dir: dir})
	logger.Info("probe")

	info, err := os.Stat(filepath.Join(dir, LogFileName))
	assert.NoError(t, err)
	assert.NotZero(t, info.Size())
}
