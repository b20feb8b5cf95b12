// Package logging configures the standardized logger shared by the
// Rinna Go tools. Level names, the timestamp layout and the
// key=value context fields follow the convention used by the Java and
// Python components, so logs from all three languages line up.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/heymumford/Rinna/internal/config"
)

// LogFileName is the shared log file appended to by the Go tools.
const LogFileName = "rinna-go.log"

// New builds a logrus logger from the logging configuration. Output
// goes to stdout and, when the log directory is usable, also to the
// shared log file.
func New(cfg config.Logging) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
		logger.WithError(err).Warn("Invalid logging level, using info")
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	if w, err := fileSink(cfg.Dir); err != nil {
		logger.WithError(err).Warn("Log file unavailable, logging to stdout only")
	} else {
		logger.SetOutput(io.MultiWriter(os.Stdout, w))
	}

	return logger
}

// fileSink opens the shared log file for appending, creating the log
// directory if needed. An empty dir disables the file sink.
func fileSink(dir string) (io.Writer, error) {
	if dir == "" {
		return nil, os.ErrNotExist
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
