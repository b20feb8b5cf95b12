package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/nao1215/markdown"
	"github.com/sirupsen/logrus"
)

// MarkdownRenderer produces Markdown documents via nao1215/markdown.
type MarkdownRenderer struct {
	logger *logrus.Logger
}

// NewMarkdownRenderer creates a Markdown renderer.
func NewMarkdownRenderer(logger *logrus.Logger) *MarkdownRenderer {
	return &MarkdownRenderer{logger: logger}
}

// Render builds a Markdown document from the standard report data
// shape: title, optional metadata, arbitrary top-level values and
// metric sections. The html format is served through the shared HTML
// layout.
func (r *MarkdownRenderer) Render(ctx context.Context, tmpl *Template, data map[string]interface{}, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return renderMarkdown(tmpl, data)
	case FormatHTML:
		return renderHTML(tmpl, data)
	default:
		return nil, fmt.Errorf("%w: markdown engine cannot produce %s", ErrUnsupportedFormat, format)
	}
}

// renderMarkdown is shared by the Markdown and HTML engines.
func renderMarkdown(tmpl *Template, data map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	title := stringAt(data, keyTitle)
	if title == "" {
		title = tmpl.Title
	}
	md.H1(title)

	if subtitle := stringAt(data, keySubtitle); subtitle != "" {
		md.PlainText(subtitle)
		md.PlainText("")
	}
	if author := stringAt(data, keyAuthor); author != "" {
		md.PlainTextf("Author: %s", author)
	}
	if ts := stringAt(data, keyTimestamp); ts != "" {
		md.PlainTextf("Generated: %s", ts)
	}
	md.PlainText("")

	if rows := scalarFields(data); len(rows) > 0 {
		table := markdown.TableSet{Header: []string{"Key", "Value"}}
		for _, row := range rows {
			table.Rows = append(table.Rows, []string{row.Name, fmt.Sprintf("%v", row.Value)})
		}
		md.Table(table)
		md.PlainText("")
	}

	for _, section := range sectionsFromData(data) {
		md.H2(section.Title)
		if section.Description != "" {
			md.PlainText(section.Description)
			md.PlainText("")
		}

		table := markdown.TableSet{Header: []string{"Metric", "Value", "Description"}}
		for _, m := range section.Metrics {
			table.Rows = append(table.Rows, []string{
				m.Name,
				fmt.Sprintf("%v", m.Value),
				m.Description,
			})
		}
		md.Table(table)
		md.PlainText("")
	}

	if err := md.Build(); err != nil {
		return nil, fmt.Errorf("failed to build markdown report: %w", err)
	}
	return buf.Bytes(), nil
}
