package mocks

import (
	"context"
	"time"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

// MockEmployeeRepository is a mock implementation of EmployeeRepository
type MockEmployeeRepository struct {
	FindByIDFunc func(ctx context.Context, id string) (*domain.Employee, error)
	FindAllFunc  func(ctx context.Context, filter map[string]interface{}) ([]domain.Employee, error)
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter map[string]interface{}) ([]domain.Employee, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, filter)
	}
	return []domain.Employee{}, nil
}

// MockAttendanceRepository is a mock implementation of AttendanceRepository
type MockAttendanceRepository struct {
	FindBetweenFunc func(ctx context.Context, start, end time.Time) ([]domain.AttendanceLog, error)
}

func (m *MockAttendanceRepository) FindBetween(ctx context.Context, start, end time.Time) ([]domain.AttendanceLog, error) {
	if m.FindBetweenFunc != nil {
		return m.FindBetweenFunc(ctx, start, end)
	}
	return []domain.AttendanceLog{}, nil
}

// MockLeaveRepository is a mock implementation of LeaveRepository
type MockLeaveRepository struct {
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Leave, error)
	FindBetweenFunc func(ctx context.Context, start, end time.Time) ([]domain.Leave, error)
}

func (m *MockLeaveRepository) FindByID(ctx context.Context, id string) (*domain.Leave, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockLeaveRepository) FindBetween(ctx context.Context, start, end time.Time) ([]domain.Leave, error) {
	if m.FindBetweenFunc != nil {
		return m.FindBetweenFunc(ctx, start, end)
	}
	return []domain.Leave{}, nil
}

// MockPayrollRepository is a mock implementation of PayrollRepository
type MockPayrollRepository struct {
	FindRunsBetweenFunc     func(ctx context.Context, start, end time.Time) ([]domain.PayrollRun, error)
	FindRunsForEmployeeFunc func(ctx context.Context, employeeID string) ([]domain.PayrollRun, error)
}

func (m *MockPayrollRepository) FindRunsBetween(ctx context.Context, start, end time.Time) ([]domain.PayrollRun, error) {
	if m.FindRunsBetweenFunc != nil {
		return m.FindRunsBetweenFunc(ctx, start, end)
	}
	return []domain.PayrollRun{}, nil
}

func (m *MockPayrollRepository) FindRunsForEmployee(ctx context.Context, employeeID string) ([]domain.PayrollRun, error) {
	if m.FindRunsForEmployeeFunc != nil {
		return m.FindRunsForEmployeeFunc(ctx, employeeID)
	}
	return []domain.PayrollRun{}, nil
}

// MockApplicantRepository is a mock implementation of ApplicantRepository
type MockApplicantRepository struct {
	FindAppliedBetweenFunc func(ctx context.Context, start, end time.Time) ([]domain.Applicant, error)
}

func (m *MockApplicantRepository) FindAppliedBetween(ctx context.Context, start, end time.Time) ([]domain.Applicant, error) {
	if m.FindAppliedBetweenFunc != nil {
		return m.FindAppliedBetweenFunc(ctx, start, end)
	}
	return []domain.Applicant{}, nil
}

// MockTrainingRepository is a mock implementation of TrainingRepository
type MockTrainingRepository struct {
	FindProgramByIDFunc func(ctx context.Context, id string) (*domain.TrainingProgram, error)
	FindEnrollmentsFunc func(ctx context.Context, programID string) ([]domain.Enrollment, error)
}

func (m *MockTrainingRepository) FindProgramByID(ctx context.Context, id string) (*domain.TrainingProgram, error) {
	if m.FindProgramByIDFunc != nil {
		return m.FindProgramByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTrainingRepository) FindEnrollments(ctx context.Context, programID string) ([]domain.Enrollment, error) {
	if m.FindEnrollmentsFunc != nil {
		return m.FindEnrollmentsFunc(ctx, programID)
	}
	return []domain.Enrollment{}, nil
}

// MockPerformanceRepository is a mock implementation of PerformanceRepository
type MockPerformanceRepository struct {
	FindKRAByIDFunc   func(ctx context.Context, id string) (*domain.KRA, error)
	FindKRAsFunc      func(ctx context.Context) ([]domain.KRA, error)
	FindKPIsByKRAFunc func(ctx context.Context, kraID string) ([]domain.KPI, error)
}

func (m *MockPerformanceRepository) FindKRAByID(ctx context.Context, id string) (*domain.KRA, error) {
	if m.FindKRAByIDFunc != nil {
		return m.FindKRAByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPerformanceRepository) FindKRAs(ctx context.Context) ([]domain.KRA, error) {
	if m.FindKRAsFunc != nil {
		return m.FindKRAsFunc(ctx)
	}
	return []domain.KRA{}, nil
}

func (m *MockPerformanceRepository) FindKPIsByKRA(ctx context.Context, kraID string) ([]domain.KPI, error) {
	if m.FindKPIsByKRAFunc != nil {
		return m.FindKPIsByKRAFunc(ctx, kraID)
	}
	return []domain.KPI{}, nil
}

// MockEvaluationPeriodRepository keeps the period in memory unless
// overridden.
type MockEvaluationPeriodRepository struct {
	Period        *domain.EvaluationPeriod
	GetActiveFunc func(ctx context.Context) (*domain.EvaluationPeriod, error)
	SetActiveFunc func(ctx context.Context, period *domain.EvaluationPeriod) error
	Reads         int
}

func (m *MockEvaluationPeriodRepository) GetActive(ctx context.Context) (*domain.EvaluationPeriod, error) {
	m.Reads++
	if m.GetActiveFunc != nil {
		return m.GetActiveFunc(ctx)
	}
	if m.Period == nil {
		return nil, nil
	}
	p := *m.Period
	return &p, nil
}

func (m *MockEvaluationPeriodRepository) SetActive(ctx context.Context, period *domain.EvaluationPeriod) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, period)
	}
	if period == nil {
		m.Period = nil
		return nil
	}
	p := *period
	m.Period = &p
	return nil
}
