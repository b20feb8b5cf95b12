package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeCatalog(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, CatalogFileName), []byte(content), 0o644)
	assert.NoError(t, err)
}

func TestListAfterAdd(t *testing.T) {
	manager, err := NewTemplateManager(t.TempDir(), setupTestLogger())
	assert.NoError(t, err)

	manager.Add(Template{ID: "sprint_review", Title: "Sprint Review", Engine: EngineMarkdown})

	tmpl := manager.Get("sprint_review")
	assert.NotNil(t, tmpl)
	assert.Equal(t, "Sprint Review", tmpl.Title)

	var ids []string
	for _, item := range manager.List() {
		ids = append(ids, item.ID)
	}
	assert.Contains(t, ids, "sprint_review")
}

func TestMetricsTemplateSeeded(t *testing.T) {
	manager, err := NewTemplateManager(t.TempDir(), setupTestLogger())
	assert.NoError(t, err)

	tmpl := manager.Get(MetricsTemplateID)
	assert.NotNil(t, tmpl)
	assert.Equal(t, EngineHTML, tmpl.Engine)
	assert.True(t, tmpl.Exists())
}

func TestCatalogLoads(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, `
templates:
  - id: status_summary
    title: Status Summary
    engine: excel
  - id: release_notes
    title: Release Notes
    engine: markdown
`)

	manager, err := NewTemplateManager(dir, setupTestLogger())
	assert.NoError(t, err)

	assert.Equal(t, EngineExcel, manager.Get("status_summary").Engine)
	assert.Equal(t, EngineMarkdown, manager.Get("release_notes").Engine)

	// Catalog order is preserved, with the seeded metrics template
	// appended last.
	list := manager.List()
	assert.Len(t, list, 3)
	assert.Equal(t, "status_summary", list[0].ID)
	assert.Equal(t, "release_notes", list[1].ID)
	assert.Equal(t, MetricsTemplateID, list[2].ID)
}

func TestCatalogEntryWithoutIDSkipped(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, `
templates:
  - title: Nameless
    engine: html
  - id: status_summary
    title: Status Summary
`)

	manager, err := NewTemplateManager(dir, setupTestLogger())
	assert.NoError(t, err)

	assert.NotNil(t, manager.Get("status_summary"))
	assert.Len(t, manager.List(), 2)
}

func TestCatalogUnknownEngineDefaultsToHTML(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, `
templates:
  - id: status_summary
    engine: docx
`)

	manager, err := NewTemplateManager(dir, setupTestLogger())
	assert.NoError(t, err)
	assert.Equal(t, EngineHTML, manager.Get("status_summary").Engine)
}

func TestCatalogMalformedFails(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "templates: [unclosed")

	_, err := NewTemplateManager(dir, setupTestLogger())
	assert.Error(t, err)
}

func TestCatalogRelativePathsJoined(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, `
templates:
  - id: status_summary
    path: status.html.tmpl
`)
	err := os.WriteFile(filepath.Join(dir, "status.html.tmpl"), []byte("<html></html>"), 0o644)
	assert.NoError(t, err)

	manager, err := NewTemplateManager(dir, setupTestLogger())
	assert.NoError(t, err)

	tmpl := manager.Get("status_summary")
	assert.Equal(t, filepath.Join(dir, "status.html.tmpl"), tmpl.Path)
	assert.True(t, tmpl.Exists())
}
