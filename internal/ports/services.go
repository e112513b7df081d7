package ports

import (
	"context"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

type ReportService interface {
	Catalog() []domain.ReportMeta
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)
	RetrieveAttachment(ctx context.Context, leaveID string) (*domain.Blob, error)
}

type EvaluationService interface {
	Get(ctx context.Context) (domain.ActivePeriod, error)
	Set(ctx context.Context, period domain.EvaluationPeriod) error
	Clear(ctx context.Context) error
}

type PerformanceService interface {
	KraSummary(ctx context.Context, kraID string) (*domain.KraWeightSummary, error)
	KraSummaries(ctx context.Context) ([]domain.KraWeightSummary, error)
	PayrollHistory(ctx context.Context, employeeID string) ([]domain.PayrollHistoryEntry, error)
}

// DocumentRenderer turns a structured document into printable bytes.
type DocumentRenderer interface {
	Render(doc *domain.Document) ([]byte, error)
	ContentType() string
	Extension() string
}

// AttachmentFetcher reaches the backend store for a leave attachment.
// Non-2xx statuses are returned in the payload, not as errors.
type AttachmentFetcher interface {
	FetchLeaveAttachment(ctx context.Context, leaveID string) (*domain.FetchedPayload, error)
}
