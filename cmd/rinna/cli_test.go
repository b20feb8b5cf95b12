package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RINNA_LOGGING_DIR", t.TempDir())
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestConfigCommandPrintsKey(t *testing.T) {
	out, err := runCLI(t, "config", "reports.default_engine")
	assert.NoError(t, err)
	assert.Contains(t, out, "html")
}

func TestConfigCommandUnknownKey(t *testing.T) {
	_, err := runCLI(t, "config", "no.such.key")
	assert.Error(t, err)
}

func TestConfigCommandDumpsSettings(t *testing.T) {
	out, err := runCLI(t, "config")
	assert.NoError(t, err)
	assert.Contains(t, out, "reports:")
	assert.Contains(t, out, "default_engine: html")
}

func TestSwaggerSyncCommand(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "swagger.yaml")
	target := filepath.Join(dir, "swagger.json")
	assert.NoError(t, os.WriteFile(source, []byte("swagger: \"2.0\"\n"), 0o644))

	_, err := runCLI(t, "swagger", "sync", source, target)
	assert.NoError(t, err)

	raw, err := os.ReadFile(target)
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"swagger"`)
}

func TestSwaggerSyncCheckOutOfSync(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "swagger.yaml")
	target := filepath.Join(dir, "swagger.json")
	assert.NoError(t, os.WriteFile(source, []byte("swagger: \"2.0\"\n"), 0o644))
	assert.NoError(t, os.WriteFile(target, []byte(`{"swagger": "3.0"}`), 0o644))

	out, err := runCLI(t, "swagger", "sync", "--check", source, target)
	assert.Error(t, err)
	assert.Contains(t, out, "swagger")
}

func TestSwaggerSyncMalformedSourceExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "swagger.yaml")
	assert.NoError(t, os.WriteFile(source, []byte("swagger: [broken"), 0o644))

	_, err := runCLI(t, "swagger", "sync", source, filepath.Join(dir, "swagger.json"))
	assert.Error(t, err)
}

func TestDiagramsCommandWritesDOT(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, "diagrams", "--type", "context", "--output", "dot", "--dir", dir)
	assert.NoError(t, err)
	assert.Contains(t, out, "rinna_context_diagram.dot")

	_, statErr := os.Stat(filepath.Join(dir, "rinna_context_diagram.dot"))
	assert.NoError(t, statErr)
}

func TestLogsForwardCommand(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "java.log")
	assert.NoError(t, os.WriteFile(logFile, []byte("[INFO] Core started\n"), 0o644))

	_, err := runCLI(t, "logs", "forward", "--source", "java", logFile)
	assert.NoError(t, err)
}
