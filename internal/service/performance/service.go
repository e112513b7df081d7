package performance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/ports"
	"github.com/seu-repo/lapeco-hr/internal/service/aggregate"
)

// Service answers KRA and payroll history queries.
type Service struct {
	kras    ports.PerformanceRepository
	payroll ports.PayrollRepository
	log     *zap.Logger
}

// NewService creates a performance service.
func NewService(kras ports.PerformanceRepository, payroll ports.PayrollRepository, log *zap.Logger) ports.PerformanceService {
	return &Service{
		kras:    kras,
		payroll: payroll,
		log:     log,
	}
}

// KraSummary rolls up the KPI weights of one KRA.
func (s *Service) KraSummary(ctx context.Context, kraID string) (*domain.KraWeightSummary, error) {
	kra, err := s.kras.FindKRAByID(ctx, kraID)
	if err != nil {
		return nil, err
	}
	if kra == nil {
		return nil, fmt.Errorf("kra %s: %w", kraID, domain.ErrNotFound)
	}

	kpis, err := s.kras.FindKPIsByKRA(ctx, kraID)
	if err != nil {
		return nil, err
	}

	summary := aggregate.RollupKraWeights(*kra, kpis)
	if !summary.Balanced {
		s.log.Debug("KRA weights do not balance",
			zap.String("kra_id", kraID),
			zap.Float64("total_weight", summary.TotalWeight),
		)
	}
	return &summary, nil
}

// KraSummaries rolls up every KRA.
func (s *Service) KraSummaries(ctx context.Context) ([]domain.KraWeightSummary, error) {
	kras, err := s.kras.FindKRAs(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.KraWeightSummary, 0, len(kras))
	for _, kra := range kras {
		kpis, err := s.kras.FindKPIsByKRA(ctx, kra.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, aggregate.RollupKraWeights(kra, kpis))
	}
	return summaries, nil
}

// PayrollHistory returns the payslips of employeeID, most recent first.
func (s *Service) PayrollHistory(ctx context.Context, employeeID string) ([]domain.PayrollHistoryEntry, error) {
	if employeeID == "" {
		return nil, domain.NewMissingField("employeeId")
	}

	runs, err := s.payroll.FindRunsForEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return aggregate.MatchPayrollHistory(runs, employeeID), nil
}
