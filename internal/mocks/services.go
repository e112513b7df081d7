package mocks

import (
	"context"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

// MockReportService is a mock implementation of ReportService
type MockReportService struct {
	CatalogFunc            func() []domain.ReportMeta
	GenerateFunc           func(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)
	RetrieveAttachmentFunc func(ctx context.Context, leaveID string) (*domain.Blob, error)
}

func (m *MockReportService) Catalog() []domain.ReportMeta {
	if m.CatalogFunc != nil {
		return m.CatalogFunc()
	}
	return []domain.ReportMeta{}
}

func (m *MockReportService) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockReportService) RetrieveAttachment(ctx context.Context, leaveID string) (*domain.Blob, error) {
	if m.RetrieveAttachmentFunc != nil {
		return m.RetrieveAttachmentFunc(ctx, leaveID)
	}
	return nil, nil
}

// MockEvaluationService is a mock implementation of EvaluationService
type MockEvaluationService struct {
	GetFunc   func(ctx context.Context) (domain.ActivePeriod, error)
	SetFunc   func(ctx context.Context, period domain.EvaluationPeriod) error
	ClearFunc func(ctx context.Context) error
}

func (m *MockEvaluationService) Get(ctx context.Context) (domain.ActivePeriod, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return domain.ActivePeriod{}, nil
}

func (m *MockEvaluationService) Set(ctx context.Context, period domain.EvaluationPeriod) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, period)
	}
	return nil
}

func (m *MockEvaluationService) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}

// MockPerformanceService is a mock implementation of PerformanceService
type MockPerformanceService struct {
	KraSummaryFunc     func(ctx context.Context, kraID string) (*domain.KraWeightSummary, error)
	KraSummariesFunc   func(ctx context.Context) ([]domain.KraWeightSummary, error)
	PayrollHistoryFunc func(ctx context.Context, employeeID string) ([]domain.PayrollHistoryEntry, error)
}

func (m *MockPerformanceService) KraSummary(ctx context.Context, kraID string) (*domain.KraWeightSummary, error) {
	if m.KraSummaryFunc != nil {
		return m.KraSummaryFunc(ctx, kraID)
	}
	return nil, nil
}

func (m *MockPerformanceService) KraSummaries(ctx context.Context) ([]domain.KraWeightSummary, error) {
	if m.KraSummariesFunc != nil {
		return m.KraSummariesFunc(ctx)
	}
	return []domain.KraWeightSummary{}, nil
}

func (m *MockPerformanceService) PayrollHistory(ctx context.Context, employeeID string) ([]domain.PayrollHistoryEntry, error) {
	if m.PayrollHistoryFunc != nil {
		return m.PayrollHistoryFunc(ctx, employeeID)
	}
	return []domain.PayrollHistoryEntry{}, nil
}

// MockDocumentRenderer renders a document as its title followed by one
// line per row, unless RenderFunc is set.
type MockDocumentRenderer struct {
	RenderFunc func(doc *domain.Document) ([]byte, error)
	Rendered   []*domain.Document
}

func (m *MockDocumentRenderer) Render(doc *domain.Document) ([]byte, error) {
	m.Rendered = append(m.Rendered, doc)
	if m.RenderFunc != nil {
		return m.RenderFunc(doc)
	}
	out := []byte(doc.Title + "\n")
	for _, s := range doc.Sections {
		for _, row := range s.Rows {
			for i, cell := range row {
				if i > 0 {
					out = append(out, '|')
				}
				out = append(out, cell...)
			}
			out = append(out, '\n')
		}
	}
	return out, nil
}

func (m *MockDocumentRenderer) ContentType() string {
	return "text/plain"
}

func (m *MockDocumentRenderer) Extension() string {
	return "txt"
}

// MockAttachmentFetcher is a mock implementation of AttachmentFetcher
type MockAttachmentFetcher struct {
	FetchLeaveAttachmentFunc func(ctx context.Context, leaveID string) (*domain.FetchedPayload, error)
	Calls                    int
}

func (m *MockAttachmentFetcher) FetchLeaveAttachment(ctx context.Context, leaveID string) (*domain.FetchedPayload, error) {
	m.Calls++
	if m.FetchLeaveAttachmentFunc != nil {
		return m.FetchLeaveAttachmentFunc(ctx, leaveID)
	}
	return &domain.FetchedPayload{StatusCode: 404}, nil
}
