package logbridge

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		level     logrus.Level
		component string
		message   string
		fields    logrus.Fields
	}{
		{
			name:    "level and message",
			line:    "[INFO] Application started",
			level:   logrus.InfoLevel,
			message: "Application started",
			fields:  logrus.Fields{},
		},
		{
			name:      "timestamp and component",
			line:      "2025-08-29T10:00:00+0000 [ERROR] [org.rinna.core] Database connection lost",
			level:     logrus.ErrorLevel,
			component: "org.rinna.core",
			message:   "Database connection lost",
			fields:    logrus.Fields{},
		},
		{
			name:    "trailing key=value fields",
			line:    "[INFO] Request received request_id=12345 client_ip=192.168.1.1",
			level:   logrus.InfoLevel,
			message: "Request received",
			fields:  logrus.Fields{"request_id": "12345", "client_ip": "192.168.1.1"},
		},
		{
			name:    "trace level",
			line:    "[TRACE] Entering handler",
			level:   logrus.TraceLevel,
			message: "Entering handler",
			fields:  logrus.Fields{},
		},
		{
			name:    "warning alias",
			line:    "[WARNING] Disk nearly full",
			level:   logrus.WarnLevel,
			message: "Disk nearly full",
			fields:  logrus.Fields{},
		},
		{
			name:    "no level forwards verbatim at info",
			line:    "plain text without a level",
			level:   logrus.InfoLevel,
			message: "plain text without a level",
			fields:  logrus.Fields{},
		},
		{
			name:    "unknown level forwards verbatim",
			line:    "[NOTICE] something",
			level:   logrus.InfoLevel,
			message: "[NOTICE] something",
			fields:  logrus.Fields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := ParseLine(tt.line)
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, tt.component, entry.Component)
			assert.Equal(t, tt.message, entry.Message)
			assert.Equal(t, tt.fields, entry.Fields)
		})
	}
}

func TestForward(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)
	bridge := NewBridge(logger, "java")

	input := strings.Join([]string{
		"[INFO] Core started",
		"",
		"[DEBUG] [org.rinna.workflow] Transition computed item_id=WI-42",
		"[ERROR] Render failed",
	}, "\n")

	count, err := bridge.Forward(context.Background(), strings.NewReader(input))
	assert.NoError(t, err)
	assert.Equal(t, 3, count)

	entries := hook.AllEntries()
	assert.Len(t, entries, 3)

	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, "Core started", entries[0].Message)
	assert.Equal(t, "java", entries[0].Data["source"])

	assert.Equal(t, logrus.DebugLevel, entries[1].Level)
	assert.Equal(t, "org.rinna.workflow", entries[1].Data["component"])
	assert.Equal(t, "WI-42", entries[1].Data["item_id"])

	assert.Equal(t, logrus.ErrorLevel, entries[2].Level)
}

func TestForwardCancelled(t *testing.T) {
	logger, _ := test.NewNullLogger()
	bridge := NewBridge(logger, "go")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bridge.Forward(ctx, strings.NewReader("[INFO] one\n[INFO] two\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForwardFileMissing(t *testing.T) {
	logger, _ := test.NewNullLogger()
	bridge := NewBridge(logger, "go")

	_, err := bridge.ForwardFile(context.Background(), "/nonexistent/rinna.log")
	assert.Error(t, err)
}
