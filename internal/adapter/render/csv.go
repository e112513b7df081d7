package render

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

// CSVRenderer writes documents as CSV, one block per section.
type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (r *CSVRenderer) ContentType() string {
	return "text/csv"
}

func (r *CSVRenderer) Extension() string {
	return "csv"
}

// Render writes the header block followed by each section as its own table,
// separated by blank lines.
func (r *CSVRenderer) Render(doc *domain.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("render csv: nil document")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{doc.Title}}
	if doc.Subtitle != "" {
		records = append(records, []string{doc.Subtitle})
	}
	for _, f := range doc.Meta {
		records = append(records, []string{f.Label, f.Value})
	}

	for _, s := range doc.Sections {
		records = append(records, []string{}, []string{s.Title})
		if len(s.Columns) > 0 {
			records = append(records, s.Columns)
		}
		records = append(records, s.Rows...)
		for _, note := range s.Notes {
			records = append(records, []string{note})
		}
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	return buf.Bytes(), nil
}
