package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/limaJavier/coursegrid/pkg/model"
)

const lineHeight = 3.5

// PDFExporter renders datasets and section grids into tabular PDFs.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	writeTitle(pdf, title)
	writeTable(pdf, data, 190.0)

	return output(pdf)
}

// RenderTimetable creates one landscape page per section grid. Cells wrap their multi-line text
func (e *PDFExporter) RenderTimetable(timetable model.Timetable, title string) ([]byte, error) {
	if len(timetable.Sections) == 0 {
		return nil, fmt.Errorf("pdf requires at least one section")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)

	for _, section := range timetable.Sections {
		pdf.AddPage()
		writeTitle(pdf, fmt.Sprintf("%v - %v", title, section.ID))
		writeTable(pdf, GridDataset(section), 277.0)
	}

	return output(pdf)
}

func writeTitle(pdf *gofpdf.Fpdf, title string) {
	if title == "" {
		return
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
	pdf.Ln(5)
}

func writeTable(pdf *gofpdf.Fpdf, data Dataset, width float64) {
	pdf.SetFont("Arial", "B", 10)
	colWidth := width / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	left, _, _, _ := pdf.GetMargins()
	for _, row := range data.Rows {
		// Row height follows the cell with the most wrapped lines
		lines := 1
		for _, header := range data.Headers {
			lines = max(lines, len(pdf.SplitLines([]byte(row[header]), colWidth-2)))
		}
		height := float64(lines)*lineHeight + 1

		_, y := pdf.GetXY()
		for i, header := range data.Headers {
			x := left + float64(i)*colWidth
			pdf.Rect(x, y, colWidth, height, "D")
			pdf.SetXY(x, y)
			pdf.MultiCell(colWidth, lineHeight, row[header], "", "L", false)
		}
		pdf.SetXY(left, y+height)
	}
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
