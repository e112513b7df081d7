package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

func sampleDocument() *domain.Document {
	return &domain.Document{
		Title:    "Payroll Run Summary",
		Subtitle: "2024-01-01 to 2024-02-28",
		Meta: []domain.Field{
			{Label: "Runs", Value: "2"},
			{Label: "Net pay", Value: "49500.00"},
		},
		Sections: []domain.Section{
			{
				Title:   "Runs",
				Columns: []string{"Pay Period", "Gross", "Net", "Status"},
				Rows: [][]string{
					{"2024-01-01 to 2024-01-15", "58000.00", "49500.00", "Paid"},
					{"2024-01-16 to 2024-01-31", "30000.00", "25500.00", "Pending, awaiting approval"},
				},
				Notes: []string{"Amounts in PHP."},
			},
		},
	}
}

func TestPDFRenderer_DeterministicOutput(t *testing.T) {
	r := NewPDFRenderer("Lapeco Group of Companies")

	first, err := r.Render(sampleDocument())
	require.NoError(t, err)
	second, err := r.Render(sampleDocument())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))
	assert.True(t, bytes.Equal(first, second), "identical documents must render identically")
}

func TestPDFRenderer_LongTableFitsPage(t *testing.T) {
	doc := &domain.Document{Title: "Wide"}
	row := make([]string, 12)
	for i := range row {
		row[i] = strings.Repeat("x", 40)
	}
	doc.Sections = []domain.Section{{Title: "Wide", Columns: row, Rows: [][]string{row, row}}}

	out, err := NewPDFRenderer("").Render(doc)

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestPDFRenderer_NilDocument(t *testing.T) {
	_, err := NewPDFRenderer("").Render(nil)
	assert.Error(t, err)
}

func TestCSVRenderer_Layout(t *testing.T) {
	out, err := NewCSVRenderer().Render(sampleDocument())
	require.NoError(t, err)

	want := strings.Join([]string{
		"Payroll Run Summary",
		"2024-01-01 to 2024-02-28",
		"Runs,2",
		"Net pay,49500.00",
		"",
		"Runs",
		"Pay Period,Gross,Net,Status",
		"2024-01-01 to 2024-01-15,58000.00,49500.00,Paid",
		`2024-01-16 to 2024-01-31,30000.00,25500.00,"Pending, awaiting approval"`,
		"Amounts in PHP.",
		"",
	}, "\n")
	assert.Equal(t, want, string(out))
}

func TestNew(t *testing.T) {
	pdf, err := New("pdf", "Lapeco")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType())

	csv, err := New("csv", "")
	require.NoError(t, err)
	assert.Equal(t, "csv", csv.Extension())

	_, err = New("docx", "")
	assert.Error(t, err)
}
