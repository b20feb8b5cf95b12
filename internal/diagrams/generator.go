package diagrams

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-graphviz"
	"github.com/sirupsen/logrus"

	"github.com/heymumford/Rinna/internal/config"
)

// Kind names one C4 diagram level.
type Kind string

// Diagram kinds, from the widest view down to class level.
const (
	KindContext   Kind = "context"
	KindContainer Kind = "container"
	KindComponent Kind = "component"
	KindCode      Kind = "code"
	KindClean     Kind = "clean"
)

// Kinds lists every diagram in generation order.
var Kinds = []Kind{KindContext, KindContainer, KindComponent, KindCode, KindClean}

var builders = map[Kind]func() *graph{
	KindContext:   contextDiagram,
	KindContainer: containerDiagram,
	KindComponent: componentDiagram,
	KindCode:      codeDiagram,
	KindClean:     cleanArchitectureDiagram,
}

// filenames keeps the historical output names.
var filenames = map[Kind]string{
	KindContext:   "rinna_context_diagram",
	KindContainer: "rinna_container_diagram",
	KindComponent: "rinna_component_diagram",
	KindCode:      "rinna_code_diagram",
	KindClean:     "rinna_clean_architecture_diagram",
}

// Generator renders the project's C4 diagrams into an output
// directory.
type Generator struct {
	outputDir string
	format    string
	logger    *logrus.Logger
}

// NewGenerator creates a diagram generator. An unsupported output
// format is replaced with png after a warning.
func NewGenerator(cfg config.Diagrams, logger *logrus.Logger) *Generator {
	format := cfg.Format
	switch format {
	case "png", "svg", "dot":
	default:
		logger.WithField("format", format).Warn("Unsupported diagram format, defaulting to png")
		format = "png"
	}

	return &Generator{
		outputDir: cfg.OutputDir,
		format:    format,
		logger:    logger,
	}
}

// Generate renders one diagram and returns the path of the written
// file.
func (g *Generator) Generate(ctx context.Context, kind Kind) (string, error) {
	build, ok := builders[kind]
	if !ok {
		return "", fmt.Errorf("unknown diagram kind: %s", kind)
	}

	content, err := g.render(ctx, build().dot())
	if err != nil {
		return "", fmt.Errorf("failed to render %s diagram: %w", kind, err)
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create diagram output dir: %w", err)
	}

	path := filepath.Join(g.outputDir, filenames[kind]+"."+g.format)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write diagram: %w", err)
	}

	g.logger.WithFields(logrus.Fields{
		"kind": kind,
		"path": path,
	}).Info("Generated diagram")
	return path, nil
}

// GenerateAll renders every diagram. A failing diagram is logged and
// skipped so one broken level does not block the rest.
func (g *Generator) GenerateAll(ctx context.Context) []string {
	paths := make([]string, 0, len(Kinds))
	for _, kind := range Kinds {
		path, err := g.Generate(ctx, kind)
		if err != nil {
			g.logger.WithError(err).WithField("kind", kind).Error("Failed to generate diagram")
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

// render lays out the DOT source with Graphviz. The dot format skips
// layout and returns the source verbatim.
func (g *Generator) render(ctx context.Context, dot string) ([]byte, error) {
	if g.format == "dot" {
		return []byte(dot), nil
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	format := graphviz.SVG
	if g.format == "png" {
		format = graphviz.PNG
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
