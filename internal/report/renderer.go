package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Engine identifies a rendering backend.
type Engine string

// Available rendering engines. Each delegates the actual document
// work to a library or external tool; the engine tag is only used
// for dispatch.
const (
	EngineHTML     Engine = "html"
	EngineMarkdown Engine = "markdown"
	EngineExcel    Engine = "excel"
	EnginePDF      Engine = "pdf"
)

// Format identifies an output format.
type Format string

// Supported report formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
	FormatXLSX     Format = "xlsx"
	FormatPDF      Format = "pdf"
)

// ErrEngineUnavailable is returned when a rendering engine cannot be
// constructed, typically because its external tool is not installed.
var ErrEngineUnavailable = errors.New("rendering engine unavailable")

// ErrUnsupportedFormat is returned when an engine is asked for a
// format it cannot produce.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ErrTemplateNotFound is returned when a request names an unknown
// template.
var ErrTemplateNotFound = errors.New("template not found")

// ErrUnknownEngine is returned when a request names an engine that
// does not exist.
var ErrUnknownEngine = errors.New("unknown rendering engine")

// ParseEngine validates an engine tag.
func ParseEngine(s string) (Engine, error) {
	switch Engine(s) {
	case EngineHTML, EngineMarkdown, EngineExcel, EnginePDF:
		return Engine(s), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownEngine, s)
}

// ParseFormat validates a format tag.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatHTML, FormatMarkdown, FormatXLSX, FormatPDF:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
}

// DefaultFormat returns the format an engine produces when the
// request does not name one.
func (e Engine) DefaultFormat() Format {
	switch e {
	case EngineMarkdown:
		return FormatMarkdown
	case EngineExcel:
		return FormatXLSX
	case EnginePDF:
		return FormatPDF
	default:
		return FormatHTML
	}
}

// MIMEType returns the content type served for a format.
func (f Format) MIMEType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Renderer renders a template with data into output bytes. Renderers
// are interchangeable delegates around third-party document
// libraries.
type Renderer interface {
	Render(ctx context.Context, tmpl *Template, data map[string]interface{}, format Format) ([]byte, error)
}

// RendererFactory builds a renderer for an engine. The service uses
// it for lazy, cached construction; tests substitute stubs.
type RendererFactory func(engine Engine, logger *logrus.Logger) (Renderer, error)

// NewRenderer is the default renderer factory. Engines whose external
// tool is missing return ErrEngineUnavailable so the service can fall
// back to the default engine.
func NewRenderer(engine Engine, logger *logrus.Logger) (Renderer, error) {
	switch engine {
	case EngineHTML:
		return NewHTMLRenderer(logger), nil
	case EngineMarkdown:
		return NewMarkdownRenderer(logger), nil
	case EngineExcel:
		return NewExcelRenderer(logger), nil
	case EnginePDF:
		return NewPDFRenderer(logger)
	default:
		return nil, fmt.Errorf("%w: %s", ErrEngineUnavailable, engine)
	}
}
