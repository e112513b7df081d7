package ports

import (
	"context"
	"time"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

type EmployeeRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	FindAll(ctx context.Context, filter map[string]interface{}) ([]domain.Employee, error)
}

type AttendanceRepository interface {
	FindBetween(ctx context.Context, start, end time.Time) ([]domain.AttendanceLog, error)
}

type LeaveRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Leave, error)
	FindBetween(ctx context.Context, start, end time.Time) ([]domain.Leave, error)
}

// PayrollRepository returns runs with their records preloaded.
type PayrollRepository interface {
	FindRunsBetween(ctx context.Context, start, end time.Time) ([]domain.PayrollRun, error)
	FindRunsForEmployee(ctx context.Context, employeeID string) ([]domain.PayrollRun, error)
}

type ApplicantRepository interface {
	FindAppliedBetween(ctx context.Context, start, end time.Time) ([]domain.Applicant, error)
}

type TrainingRepository interface {
	FindProgramByID(ctx context.Context, id string) (*domain.TrainingProgram, error)
	FindEnrollments(ctx context.Context, programID string) ([]domain.Enrollment, error)
}

type PerformanceRepository interface {
	FindKRAByID(ctx context.Context, id string) (*domain.KRA, error)
	FindKRAs(ctx context.Context) ([]domain.KRA, error)
	FindKPIsByKRA(ctx context.Context, kraID string) ([]domain.KPI, error)
}

// EvaluationPeriodRepository stores the single administrator-defined
// evaluation window. A nil period means evaluations are disabled.
type EvaluationPeriodRepository interface {
	GetActive(ctx context.Context) (*domain.EvaluationPeriod, error)
	SetActive(ctx context.Context, period *domain.EvaluationPeriod) error
}
