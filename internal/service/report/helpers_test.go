package report

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func date(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func weight(w float64) *float64 {
	return &w
}

var testEmployees = []domain.Employee{
	{ID: "E7", Name: "Maria Santos", Position: "HR Officer", Department: "Human Resources", JoiningDate: date("2021-03-01"), Status: domain.EmployeeStatusActive},
	{ID: "E1", Name: "Juan Dela Cruz", Position: "Accountant", Department: "Finance", JoiningDate: date("2019-06-15"), Status: domain.EmployeeStatusActive},
	{ID: "E2", Name: "Ana Reyes", Position: "Recruiter", Department: "Human Resources", JoiningDate: date("2022-01-10"), Status: domain.EmployeeStatusInactive},
}

// testSources returns repositories seeded with a small, fixed data set.
func testSources() Sources {
	employees := &mocks.MockEmployeeRepository{
		FindAllFunc: func(ctx context.Context, filter map[string]interface{}) ([]domain.Employee, error) {
			return append([]domain.Employee(nil), testEmployees...), nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Employee, error) {
			for _, e := range testEmployees {
				if e.ID == id {
					e := e
					return &e, nil
				}
			}
			return nil, nil
		},
	}

	attendance := &mocks.MockAttendanceRepository{
		FindBetweenFunc: func(ctx context.Context, start, end time.Time) ([]domain.AttendanceLog, error) {
			return []domain.AttendanceLog{
				{ID: "a1", EmployeeID: "E1", Date: date("2024-02-01"), Status: domain.AttendancePresent},
				{ID: "a2", EmployeeID: "E1", Date: date("2024-02-02"), Status: domain.AttendanceLate},
				{ID: "a3", EmployeeID: "E7", Date: date("2024-02-01"), Status: domain.AttendanceAbsent},
			}, nil
		},
	}

	runs := []domain.PayrollRun{
		{
			ID: "run-1", Period: domain.PayPeriod{Start: date("2024-01-01"), End: date("2024-01-15")}, PayDate: date("2024-01-20"), IsPaid: true,
			Records: []domain.PayrollRecord{
				{ID: "r1", RunID: "run-1", EmployeeID: "E1", GrossPay: 30000, Deductions: 4500, NetPay: 25500, PaidStatus: "Paid"},
				{ID: "r2", RunID: "run-1", EmployeeID: "E7", GrossPay: 28000, Deductions: 4000, NetPay: 24000, PaidStatus: "Paid"},
			},
		},
		{
			ID: "run-2", Period: domain.PayPeriod{Start: date("2024-01-16"), End: date("2024-01-31")}, PayDate: date("2024-02-05"),
			Records: []domain.PayrollRecord{
				{ID: "r3", RunID: "run-2", EmployeeID: "E1", GrossPay: 30000, Deductions: 4500, NetPay: 25500, PaidStatus: "Pending"},
			},
		},
		{
			ID: "run-3", Period: domain.PayPeriod{Start: date("2024-02-01"), End: date("2024-02-15")}, PayDate: date("2024-02-20"),
			Records: []domain.PayrollRecord{
				{ID: "r4", RunID: "run-3", EmployeeID: "E7", GrossPay: 28000, Deductions: 4100.5, NetPay: 23899.5, PaidStatus: "Pending"},
			},
		},
	}
	payroll := &mocks.MockPayrollRepository{
		FindRunsBetweenFunc: func(ctx context.Context, start, end time.Time) ([]domain.PayrollRun, error) {
			return runs, nil
		},
		FindRunsForEmployeeFunc: func(ctx context.Context, employeeID string) ([]domain.PayrollRun, error) {
			return runs, nil
		},
	}

	applicants := &mocks.MockApplicantRepository{
		FindAppliedBetweenFunc: func(ctx context.Context, start, end time.Time) ([]domain.Applicant, error) {
			return []domain.Applicant{
				{ID: "ap2", Name: "Carlo Mendoza", JobOpening: "Payroll Specialist", Status: domain.ApplicantInterview, AppliedAt: date("2024-02-03")},
				{ID: "ap1", Name: "Liza Garcia", JobOpening: "HR Assistant", Status: domain.ApplicantHired, AppliedAt: date("2024-02-01")},
			}, nil
		},
	}

	training := &mocks.MockTrainingRepository{
		FindProgramByIDFunc: func(ctx context.Context, id string) (*domain.TrainingProgram, error) {
			if id != "prog-1" {
				return nil, nil
			}
			return &domain.TrainingProgram{
				ID: "prog-1", Title: "Labor Law Basics", Provider: "DOLE",
				StartDate: date("2024-03-01"), EndDate: date("2024-03-05"),
			}, nil
		},
		FindEnrollmentsFunc: func(ctx context.Context, programID string) ([]domain.Enrollment, error) {
			return []domain.Enrollment{
				{ID: "en1", ProgramID: programID, EmployeeID: "E7", Status: "In Progress", Progress: 40},
				{ID: "en2", ProgramID: programID, EmployeeID: "E1", Status: "Completed", Progress: 100},
			}, nil
		},
	}

	performance := &mocks.MockPerformanceRepository{
		FindKRAsFunc: func(ctx context.Context) ([]domain.KRA, error) {
			return []domain.KRA{
				{ID: "kra-2", Title: "Customer Service"},
				{ID: "kra-1", Title: "Accuracy"},
			}, nil
		},
		FindKPIsByKRAFunc: func(ctx context.Context, kraID string) ([]domain.KPI, error) {
			if kraID == "kra-1" {
				return []domain.KPI{
					{ID: "k1", KraID: kraID, Title: "Error rate", Weight: weight(40)},
					{ID: "k2", KraID: kraID, Title: "Audit findings", Weight: weight(35)},
					{ID: "k3", KraID: kraID, Title: "Reconciliation", Weight: weight(25)},
				}, nil
			}
			return []domain.KPI{
				{ID: "k4", KraID: kraID, Title: "CSAT", Weight: weight(40)},
				{ID: "k5", KraID: kraID, Title: "Response time", Weight: weight(35)},
			}, nil
		},
	}

	leaves := &mocks.MockLeaveRepository{
		FindBetweenFunc: func(ctx context.Context, start, end time.Time) ([]domain.Leave, error) {
			return []domain.Leave{
				{ID: "L2", EmployeeID: "E1", Type: "Vacation", DateFrom: date("2024-02-08"), DateTo: date("2024-02-09"), Status: "Approved"},
				{ID: "L1", EmployeeID: "E7", Type: "Sick Leave", DateFrom: date("2024-02-05"), DateTo: date("2024-02-05"), Status: "Approved", AttachmentPath: "leaves/L1.pdf"},
			}, nil
		},
	}

	return Sources{
		Employees:   employees,
		Attendance:  attendance,
		Leaves:      leaves,
		Payroll:     payroll,
		Applicants:  applicants,
		Training:    training,
		Performance: performance,
	}
}

// pdfAttachment answers every fetch with a small PDF body.
func pdfAttachment() *mocks.MockAttachmentFetcher {
	return &mocks.MockAttachmentFetcher{
		FetchLeaveAttachmentFunc: func(ctx context.Context, leaveID string) (*domain.FetchedPayload, error) {
			return &domain.FetchedPayload{
				StatusCode:  200,
				ContentType: "application/pdf",
				Filename:    "medical-certificate.pdf",
				Body:        []byte("%PDF-1.4 leave " + leaveID),
			}, nil
		},
	}
}

type fixture struct {
	service  *Service
	renderer *mocks.MockDocumentRenderer
	fetcher  *mocks.MockAttachmentFetcher
	queue    *mocks.MockMessageQueue
	registry *Registry
}

func newFixture(fetcher *mocks.MockAttachmentFetcher) fixture {
	log := newTestLogger()
	src := testSources()
	attachments := NewAttachmentRetriever(fetcher, log)
	registry, err := BuildRegistry(DefaultCatalog(), NewHandlerTable(src, attachments))
	if err != nil {
		panic(err)
	}
	renderer := &mocks.MockDocumentRenderer{}
	mq := mocks.NewMockMessageQueue()
	return fixture{
		service:  NewService(registry, NewValidator(src.Training), renderer, attachments, mq, log),
		renderer: renderer,
		fetcher:  fetcher,
		queue:    mq,
		registry: registry,
	}
}
