package swagger

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

const sampleYAML = `swagger: "2.0"
info:
  title: Rinna API
  version: 1.0.0
paths:
  /workitems:
    get:
      summary: List work items
      responses:
        "200":
          description: OK
tags:
  - name: workitems
  - name: releases
`

func testSyncer() *Syncer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewSyncer(logger)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSyncYAMLToJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "swagger.yaml")
	target := filepath.Join(dir, "swagger.json")
	back := filepath.Join(dir, "swagger_back.yaml")

	writeFile(t, source, sampleYAML)

	syncer := testSyncer()
	assert.NoError(t, syncer.Sync(source, target))
	assert.NoError(t, syncer.Sync(target, back))

	// Keys and values survive crossing formats in both directions.
	diffs, err := syncer.Check(source, back)
	assert.NoError(t, err)
	assert.Empty(t, diffs)

	doc, err := syncer.Load(target)
	assert.NoError(t, err)
	assert.Equal(t, "2.0", doc["swagger"])
	info := doc["info"].(map[string]interface{})
	assert.Equal(t, "Rinna API", info["title"])
}

func TestCheckReportsDifferences(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "swagger.yaml")
	target := filepath.Join(dir, "swagger.json")

	writeFile(t, source, sampleYAML)
	writeFile(t, target, `{"swagger": "2.0", "info": {"title": "Stale API", "version": "1.0.0"}}`)

	diffs, err := testSyncer().Check(source, target)
	assert.NoError(t, err)
	assert.Contains(t, diffs, "info.title")
	assert.Contains(t, diffs, "paths")
	assert.Contains(t, diffs, "tags")
}

func TestCheckMissingTarget(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "swagger.yaml")
	writeFile(t, source, sampleYAML)

	diffs, err := testSyncer().Check(source, filepath.Join(dir, "absent.json"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"<target missing>"}, diffs)
}

func TestCheckNumericEquivalence(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "a.yaml")
	target := filepath.Join(dir, "b.json")

	// YAML parses 8080 as int, JSON as float64; they must compare
	// equal.
	writeFile(t, source, "port: 8080\n")
	writeFile(t, target, `{"port": 8080}`)

	diffs, err := testSyncer().Check(source, target)
	assert.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	writeFile(t, path, "swagger: [unclosed")

	_, err := testSyncer().Load(path)
	assert.Error(t, err)
}

func TestLoadMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	writeFile(t, path, `{"swagger": `)

	_, err := testSyncer().Load(path)
	assert.Error(t, err)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swagger.toml")
	writeFile(t, path, "")

	_, err := testSyncer().Load(path)
	assert.Error(t, err)
}
