package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/mocks"
)

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"startDate=2024-02-01", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"startDate": "2024-02-01", "note": "a=b"}, params)

	params, err = parseParams(nil)
	require.NoError(t, err)
	assert.Nil(t, params)

	_, err = parseParams([]string{"startDate"})
	assert.Error(t, err)
	_, err = parseParams([]string{"=x"})
	assert.Error(t, err)
}

func TestRunGenerate_WritesFile(t *testing.T) {
	dir := t.TempDir()
	var got domain.GenerationRequest
	reports := &mocks.MockReportService{
		GenerateFunc: func(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
			got = req
			return &domain.GenerationResult{Filename: "payroll_history.pdf", Data: []byte("%PDF")}, nil
		},
	}

	var stdout bytes.Buffer
	out := filepath.Join(dir, "history.pdf")
	err := runGenerate(context.Background(), reports, domain.GenerationRequest{
		ReportID: "payroll_history", Requester: "E7",
	}, out, &stdout)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
	assert.Equal(t, "E7", got.Requester)
	assert.Contains(t, stdout.String(), "wrote")
}

func TestRunGenerate_Stdout(t *testing.T) {
	reports := &mocks.MockReportService{
		GenerateFunc: func(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
			return &domain.GenerationResult{Filename: "x.csv", Data: []byte("a,b\n")}, nil
		},
	}

	var stdout bytes.Buffer
	require.NoError(t, runGenerate(context.Background(), reports, domain.GenerationRequest{ReportID: "x"}, "-", &stdout))
	assert.Equal(t, "a,b\n", stdout.String())
}

func TestRunGenerate_PropagatesErrors(t *testing.T) {
	reports := &mocks.MockReportService{
		GenerateFunc: func(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
			return nil, domain.ErrUnknownReport
		},
	}

	err := runGenerate(context.Background(), reports, domain.GenerationRequest{ReportID: "nope"}, "-", &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrUnknownReport)
}

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printCatalog(&buf, []domain.ReportMeta{
		{ID: "payroll_summary", Category: domain.CategoryPayroll, Params: domain.ParamsDateRange, Title: "Payroll Run Summary"},
		{ID: "employee_masterlist", Category: domain.CategoryEmployeeData, Title: "Employee Masterlist"},
	}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[1]), "employee_masterlist")
	assert.Contains(t, string(lines[1]), " - ")
	assert.Contains(t, string(lines[2]), "date_range")
}

func TestReadPayrollImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
runs:
  - id: run-1
    period: 2024-01-01 to 2024-01-15
    pay_date: 2024-01-20
    records:
      - employee_id: E7
        gross_pay: 28000
        total_deductions: 4100.5
        net_pay: 23899.5
        status: Paid
`), 0o600))

	runs, err := readPayrollImport(path)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "2024-01-01 to 2024-01-15", runs[0].label)
	assert.Equal(t, 23899.5, runs[0].records[0].NetPay)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("runs:\n  - id: r\n    period: January\n    pay_date: 2024-01-20\n"), 0o600))
	_, err = readPayrollImport(bad)
	assert.Error(t, err)
}

func TestListCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("reports:\n  format: csv\n"), 0o600))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "list"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "attendance_summary")
	assert.Contains(t, out.String(), "leave_attachment")
}
