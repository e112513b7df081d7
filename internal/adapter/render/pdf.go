package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
	cellPad    = 3.0
)

// Fixed document timestamps keep identical input byte-identical.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// PDFRenderer lays out documents as A4 PDFs.
type PDFRenderer struct {
	company string
}

// NewPDFRenderer creates a renderer that prints company in the page header.
func NewPDFRenderer(company string) *PDFRenderer {
	return &PDFRenderer{company: company}
}

func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

func (r *PDFRenderer) Extension() string {
	return "pdf"
}

// Render returns the PDF bytes of doc. Equal documents render to equal bytes.
func (r *PDFRenderer) Render(doc *domain.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("render pdf: nil document")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(epoch)
	pdf.SetModificationDate(epoch)
	pdf.SetTitle(doc.Title, true)
	if r.company != "" {
		pdf.SetAuthor(r.company, true)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AliasNbPages("")
	pdf.AddPage()

	if r.company != "" {
		pdf.SetFont(fontFamily, "", 9)
		pdf.CellFormat(0, 5, tr(r.company), "", 1, "L", false, 0, "")
	}
	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")
	if doc.Subtitle != "" {
		pdf.SetFont(fontFamily, "", 11)
		pdf.CellFormat(0, 7, tr(doc.Subtitle), "", 1, "L", false, 0, "")
	}

	if len(doc.Meta) > 0 {
		pdf.Ln(2)
		for _, f := range doc.Meta {
			pdf.SetFont(fontFamily, "B", 9)
			pdf.CellFormat(40, 5, tr(f.Label), "", 0, "L", false, 0, "")
			pdf.SetFont(fontFamily, "", 9)
			pdf.CellFormat(0, 5, tr(f.Value), "", 1, "L", false, 0, "")
		}
	}

	for _, s := range doc.Sections {
		pdf.Ln(4)
		pdf.SetFont(fontFamily, "B", 12)
		pdf.CellFormat(0, 8, tr(s.Title), "", 1, "L", false, 0, "")
		table(pdf, tr, s)
		if len(s.Notes) > 0 {
			pdf.SetFont(fontFamily, "I", 9)
			for _, note := range s.Notes {
				pdf.MultiCell(0, 5, tr(note), "", "L", false)
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func table(pdf *fpdf.Fpdf, tr func(string) string, s domain.Section) {
	if len(s.Columns) == 0 && len(s.Rows) == 0 {
		return
	}

	pdf.SetFont(fontFamily, "", 9)
	widths := columnWidths(pdf, tr, s)

	if len(s.Columns) > 0 {
		pdf.SetFont(fontFamily, "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, col := range s.Columns {
			pdf.CellFormat(widths[i], lineHeight+1, fit(pdf, tr(col), widths[i]), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont(fontFamily, "", 9)
	for _, row := range s.Rows {
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = tr(row[i])
			}
			pdf.CellFormat(widths[i], lineHeight, fit(pdf, cell, widths[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// columnWidths sizes columns to their widest cell, scaled to the page.
func columnWidths(pdf *fpdf.Fpdf, tr func(string) string, s domain.Section) []float64 {
	n := len(s.Columns)
	for _, row := range s.Rows {
		if len(row) > n {
			n = len(row)
		}
	}

	widths := make([]float64, n)
	measure := func(i int, text string) {
		if w := pdf.GetStringWidth(tr(text)) + 2*cellPad; w > widths[i] {
			widths[i] = w
		}
	}
	for i, col := range s.Columns {
		measure(i, col)
	}
	for _, row := range s.Rows {
		for i, cell := range row {
			measure(i, cell)
		}
	}

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right

	var total float64
	for _, w := range widths {
		total += w
	}
	if total > usable {
		for i := range widths {
			widths[i] = widths[i] * usable / total
		}
	}
	return widths
}

// fit truncates text so it stays inside a cell of width w.
func fit(pdf *fpdf.Fpdf, text string, w float64) string {
	limit := w - 2*cellPad
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
