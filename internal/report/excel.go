package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ExcelRenderer produces xlsx workbooks via excelize. Each metric
// section becomes a block of rows under a styled section header.
type ExcelRenderer struct {
	logger *logrus.Logger
}

// NewExcelRenderer creates an Excel renderer.
func NewExcelRenderer(logger *logrus.Logger) *ExcelRenderer {
	return &ExcelRenderer{logger: logger}
}

// Render builds the workbook from the standard report data shape.
func (r *ExcelRenderer) Render(ctx context.Context, tmpl *Template, data map[string]interface{}, format Format) ([]byte, error) {
	if format != FormatXLSX {
		return nil, fmt.Errorf("%w: excel engine cannot produce %s", ErrUnsupportedFormat, format)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 12,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		r.logger.WithError(err).Warn("Failed to create header style")
	}

	row := 1
	writeRow := func(styled bool, values ...interface{}) {
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
			if styled && headerStyle != 0 {
				f.SetCellStyle(sheet, cell, cell, headerStyle)
			}
		}
		row++
	}

	title := stringAt(data, keyTitle)
	if title == "" {
		title = tmpl.Title
	}
	writeRow(true, title, "")
	if subtitle := stringAt(data, keySubtitle); subtitle != "" {
		writeRow(false, subtitle, "")
	}
	if author := stringAt(data, keyAuthor); author != "" {
		writeRow(false, "Author", author)
	}
	if ts := stringAt(data, keyTimestamp); ts != "" {
		writeRow(false, "Generated", ts)
	}
	row++

	if rows := scalarFields(data); len(rows) > 0 {
		writeRow(true, "Key", "Value")
		for _, kv := range rows {
			writeRow(false, kv.Name, fmt.Sprintf("%v", kv.Value))
		}
		row++
	}

	for _, section := range sectionsFromData(data) {
		writeRow(true, section.Title, section.Description)
		writeRow(true, "Metric", "Value", "Description")
		for _, m := range section.Metrics {
			writeRow(false, m.Name, fmt.Sprintf("%v", m.Value), m.Description)
		}
		row++
	}

	f.SetColWidth(sheet, "A", "C", 30)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx report: %w", err)
	}
	return buf.Bytes(), nil
}
