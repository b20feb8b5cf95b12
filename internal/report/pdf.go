package report

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// pdfConverters are the external HTML-to-PDF tools probed in order.
// weasyprint matches what the rest of the Rinna toolchain installs;
// wkhtmltopdf is accepted as a substitute.
var pdfConverters = []pdfConverter{
	{name: "weasyprint", args: []string{"-", "-"}},
	{name: "wkhtmltopdf", args: []string{"--quiet", "-", "-"}},
}

type pdfConverter struct {
	name string
	args []string
}

// PDFRenderer renders the HTML layout and converts it to PDF with an
// external tool. Construction fails with ErrEngineUnavailable when no
// converter is installed, which lets the service fall back to the
// default engine.
type PDFRenderer struct {
	converter pdfConverter
	logger    *logrus.Logger
}

// NewPDFRenderer probes for an installed HTML-to-PDF converter.
func NewPDFRenderer(logger *logrus.Logger) (*PDFRenderer, error) {
	for _, conv := range pdfConverters {
		if _, err := exec.LookPath(conv.name); err == nil {
			return &PDFRenderer{converter: conv, logger: logger}, nil
		}
	}
	return nil, fmt.Errorf("%w: pdf engine requires weasyprint or wkhtmltopdf on PATH", ErrEngineUnavailable)
}

// Render produces PDF bytes, or the intermediate HTML when asked for
// the html format.
func (r *PDFRenderer) Render(ctx context.Context, tmpl *Template, data map[string]interface{}, format Format) ([]byte, error) {
	if format != FormatPDF && format != FormatHTML {
		return nil, fmt.Errorf("%w: pdf engine cannot produce %s", ErrUnsupportedFormat, format)
	}

	html, err := renderHTML(tmpl, data)
	if err != nil {
		return nil, err
	}
	if format == FormatHTML {
		return html, nil
	}

	return r.convert(ctx, html)
}

// convert pipes HTML through the external converter.
func (r *PDFRenderer) convert(ctx context.Context, html []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.converter.name, r.converter.args...)
	cmd.Stdin = bytes.NewReader(html)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", r.converter.name, err, errBuf.String())
	}
	return out.Bytes(), nil
}
