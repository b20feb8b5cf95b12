package report

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"

	"github.com/sirupsen/logrus"
)

//go:embed templates/default.html.tmpl
var defaultHTMLTemplate string

// HTMLRenderer renders templates through html/template. Templates
// with no file of their own use the built-in default layout, which
// understands the standard title/sections data shape.
type HTMLRenderer struct {
	logger *logrus.Logger
}

// NewHTMLRenderer creates an HTML renderer.
func NewHTMLRenderer(logger *logrus.Logger) *HTMLRenderer {
	return &HTMLRenderer{logger: logger}
}

// Render executes the template file (or the built-in layout) with
// the request data. The md format is served through the shared
// Markdown builder, so either text engine covers both text formats.
func (r *HTMLRenderer) Render(ctx context.Context, tmpl *Template, data map[string]interface{}, format Format) ([]byte, error) {
	switch format {
	case FormatHTML:
		return renderHTML(tmpl, data)
	case FormatMarkdown:
		return renderMarkdown(tmpl, data)
	default:
		return nil, fmt.Errorf("%w: html engine cannot produce %s", ErrUnsupportedFormat, format)
	}
}

// renderHTML is shared by the HTML and PDF engines.
func renderHTML(tmpl *Template, data map[string]interface{}) ([]byte, error) {
	source := defaultHTMLTemplate
	if tmpl.Path != "" {
		raw, err := os.ReadFile(tmpl.Path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read template %s: %w", tmpl.ID, err)
			}
			// Fall back to the built-in layout for catalog entries
			// whose file has not been provisioned yet.
		} else {
			source = string(raw)
		}
	}

	t, err := template.New(tmpl.ID).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", tmpl.ID, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", tmpl.ID, err)
	}
	return buf.Bytes(), nil
}
