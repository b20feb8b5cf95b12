package diagrams

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/heymumford/Rinna/internal/config"
)

func testGenerator(t *testing.T, format string) *Generator {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewGenerator(config.Diagrams{
		OutputDir: t.TempDir(),
		Format:    format,
	}, logger)
}

func TestDOTOutput(t *testing.T) {
	dot := contextDiagram().dot()

	assert.Contains(t, dot, "digraph G {")
	assert.Contains(t, dot, `label="Rinna System Context"`)
	assert.Contains(t, dot, `subgraph "cluster_rinna"`)
	assert.Contains(t, dot, `"users" [label="Development Teams"]`)
	assert.Contains(t, dot, `"users" -> "cli";`)
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}

func TestDOTNestedClusters(t *testing.T) {
	dot := containerDiagram().dot()

	assert.Contains(t, dot, `subgraph "cluster_system"`)
	assert.Contains(t, dot, `subgraph "cluster_frontend"`)
	assert.Contains(t, dot, `subgraph "cluster_backend"`)
}

func TestDOTDirectionAndSplines(t *testing.T) {
	assert.Contains(t, contextDiagram().dot(), "rankdir=LR;")
	assert.Contains(t, codeDiagram().dot(), "rankdir=TB;")
	assert.Contains(t, cleanArchitectureDiagram().dot(), "splines=ortho;")
}

func TestEveryKindHasBuilderAndFilename(t *testing.T) {
	for _, kind := range Kinds {
		assert.Contains(t, builders, kind)
		assert.Contains(t, filenames, kind)
	}
}

func TestGenerateDOTFile(t *testing.T) {
	generator := testGenerator(t, "dot")

	path, err := generator.Generate(context.Background(), KindContext)
	assert.NoError(t, err)
	assert.Equal(t, "rinna_context_diagram.dot", filepath.Base(path))

	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "digraph G {")
}

func TestGenerateUnknownKind(t *testing.T) {
	generator := testGenerator(t, "dot")

	_, err := generator.Generate(context.Background(), Kind("sequence"))
	assert.Error(t, err)
}

func TestGenerateAll(t *testing.T) {
	generator := testGenerator(t, "dot")

	paths := generator.GenerateAll(context.Background())
	assert.Len(t, paths, len(Kinds))

	for _, path := range paths {
		info, err := os.Stat(path)
		assert.NoError(t, err)
		assert.NotZero(t, info.Size())
	}
}

func TestUnsupportedFormatDefaultsToPNG(t *testing.T) {
	generator := testGenerator(t, "jpeg")
	assert.Equal(t, "png", generator.format)
}
