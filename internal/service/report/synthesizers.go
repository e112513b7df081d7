package report

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/ports"
	"github.com/seu-repo/lapeco-hr/internal/service/aggregate"
)

// Sources are the repositories the built-in synthesizers read from.
type Sources struct {
	Employees   ports.EmployeeRepository
	Attendance  ports.AttendanceRepository
	Leaves      ports.LeaveRepository // optional; adds a leave section to the attendance summary
	Payroll     ports.PayrollRepository
	Applicants  ports.ApplicantRepository
	Training    ports.TrainingRepository
	Performance ports.PerformanceRepository
}

// NewHandlerTable wires every built-in handler key to its implementation.
func NewHandlerTable(src Sources, attachments *AttachmentRetriever) HandlerTable {
	return HandlerTable{
		HandlerEmployeeMasterlist: NewSynthesizer(src.collectEmployees, buildEmployeeMasterlist),
		HandlerAttendanceSummary:  NewSynthesizer(src.collectAttendance, buildAttendanceSummary),
		HandlerPayrollSummary:     NewSynthesizer(src.collectPayrollRuns, buildPayrollSummary),
		HandlerPayrollHistory:     NewSynthesizer(src.collectPayrollHistory, buildPayrollHistory),
		HandlerRecruitment:        NewSynthesizer(src.collectApplicants, buildRecruitmentActivity),
		HandlerTrainingRoster:     NewSynthesizer(src.collectRoster, buildTrainingRoster),
		HandlerKraWeights:         NewSynthesizer(src.collectKraWeights, buildKraWeightSummary),
		HandlerLeaveAttachment:    attachments,
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func rangeLabel(r *domain.DateRange) string {
	if r == nil {
		return ""
	}
	return day(r.Start) + " to " + day(r.End)
}

// byID indexes employees for name lookups.
func byID(employees []domain.Employee) map[string]domain.Employee {
	idx := make(map[string]domain.Employee, len(employees))
	for _, e := range employees {
		idx[e.ID] = e
	}
	return idx
}

func sortEmployees(employees []domain.Employee) {
	sort.SliceStable(employees, func(i, j int) bool {
		if employees[i].Name != employees[j].Name {
			return employees[i].Name < employees[j].Name
		}
		return employees[i].ID < employees[j].ID
	})
}

func employeeName(idx map[string]domain.Employee, id string) string {
	if e, ok := idx[id]; ok && e.Name != "" {
		return e.Name
	}
	return id
}

// Employee masterlist

func (s Sources) collectEmployees(ctx context.Context, _ Input) ([]domain.Employee, error) {
	return s.Employees.FindAll(ctx, nil)
}

func buildEmployeeMasterlist(employees []domain.Employee, _ Input) (*domain.Document, error) {
	list := append([]domain.Employee(nil), employees...)
	sortEmployees(list)

	rows := make([][]string, 0, len(list))
	departments := make(map[string]int)
	for _, e := range list {
		rows = append(rows, []string{e.ID, e.Name, e.Position, e.Department, day(e.JoiningDate), string(e.Status)})
		departments[e.Department]++
	}

	return &domain.Document{
		Title: "Employee Masterlist",
		Meta:  []domain.Field{{Label: "Total employees", Value: strconv.Itoa(len(list))}},
		Sections: []domain.Section{
			{
				Title:   "Employees",
				Columns: []string{"ID", "Name", "Position", "Department", "Joining Date", "Status"},
				Rows:    rows,
			},
			countSection("Headcount by department", "Department", departments),
		},
	}, nil
}

// countSection renders a label/count table sorted by label.
func countSection(title, column string, counts map[string]int) domain.Section {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	rows := make([][]string, 0, len(labels))
	for _, label := range labels {
		name := label
		if name == "" {
			name = "Unassigned"
		}
		rows = append(rows, []string{name, strconv.Itoa(counts[label])})
	}
	return domain.Section{Title: title, Columns: []string{column, "Count"}, Rows: rows}
}

// Attendance summary

type attendanceData struct {
	employees []domain.Employee
	logs      []domain.AttendanceLog
	leaves    []domain.Leave
	hasLeaves bool
}

func (s Sources) collectAttendance(ctx context.Context, in Input) (attendanceData, error) {
	r := in.Params.Range
	if r == nil {
		return attendanceData{}, domain.NewMissingField(ParamStartDate)
	}
	logs, err := s.Attendance.FindBetween(ctx, r.Start, r.End)
	if err != nil {
		return attendanceData{}, err
	}
	employees, err := s.Employees.FindAll(ctx, nil)
	if err != nil {
		return attendanceData{}, err
	}
	data := attendanceData{employees: employees, logs: logs}
	if s.Leaves != nil {
		leaves, err := s.Leaves.FindBetween(ctx, r.Start, r.End)
		if err != nil {
			return attendanceData{}, err
		}
		data.leaves, data.hasLeaves = leaves, true
	}
	return data, nil
}

func buildAttendanceSummary(data attendanceData, in Input) (*domain.Document, error) {
	type tally struct{ present, late, absent int }
	counts := make(map[string]*tally)
	for _, log := range data.logs {
		t, ok := counts[log.EmployeeID]
		if !ok {
			t = &tally{}
			counts[log.EmployeeID] = t
		}
		switch log.Status {
		case domain.AttendancePresent:
			t.present++
		case domain.AttendanceLate:
			t.late++
		case domain.AttendanceAbsent:
			t.absent++
		}
	}

	employees := append([]domain.Employee(nil), data.employees...)
	sortEmployees(employees)

	var total tally
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		t := counts[e.ID]
		if t == nil {
			t = &tally{}
		}
		total.present += t.present
		total.late += t.late
		total.absent += t.absent
		rows = append(rows, []string{
			e.Name, e.Department,
			strconv.Itoa(t.present), strconv.Itoa(t.late), strconv.Itoa(t.absent),
		})
	}

	doc := &domain.Document{
		Title:    "Attendance Summary",
		Subtitle: rangeLabel(in.Params.Range),
		Meta: []domain.Field{
			{Label: "Present", Value: strconv.Itoa(total.present)},
			{Label: "Late", Value: strconv.Itoa(total.late)},
			{Label: "Absent", Value: strconv.Itoa(total.absent)},
		},
		Sections: []domain.Section{{
			Title:   "Per employee",
			Columns: []string{"Employee", "Department", "Present", "Late", "Absent"},
			Rows:    rows,
		}},
	}
	if data.hasLeaves {
		doc.Sections = append(doc.Sections, leaveSection(data.leaves, byID(data.employees)))
	}
	return doc, nil
}

func leaveSection(leaves []domain.Leave, names map[string]domain.Employee) domain.Section {
	list := append([]domain.Leave(nil), leaves...)
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].DateFrom.Equal(list[j].DateFrom) {
			return list[i].DateFrom.Before(list[j].DateFrom)
		}
		return list[i].ID < list[j].ID
	})

	rows := make([][]string, 0, len(list))
	for _, l := range list {
		attachment := "No"
		if l.AttachmentPath != "" {
			attachment = "Yes"
		}
		rows = append(rows, []string{
			employeeName(names, l.EmployeeID), l.Type, day(l.DateFrom), day(l.DateTo), l.Status, attachment,
		})
	}
	return domain.Section{
		Title:   "Leaves",
		Columns: []string{"Employee", "Type", "From", "To", "Status", "Attachment"},
		Rows:    rows,
	}
}

// Payroll run summary

func (s Sources) collectPayrollRuns(ctx context.Context, in Input) ([]domain.PayrollRun, error) {
	r := in.Params.Range
	if r == nil {
		return nil, domain.NewMissingField(ParamStartDate)
	}
	return s.Payroll.FindRunsBetween(ctx, r.Start, r.End)
}

func buildPayrollSummary(runs []domain.PayrollRun, in Input) (*domain.Document, error) {
	list := append([]domain.PayrollRun(nil), runs...)
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Period.Start.Equal(list[j].Period.Start) {
			return list[i].Period.Start.Before(list[j].Period.Start)
		}
		return list[i].ID < list[j].ID
	})

	var gross, deductions, net float64
	rows := make([][]string, 0, len(list))
	for _, run := range list {
		var g, d, n float64
		for _, rec := range run.Records {
			g += rec.GrossPay
			d += rec.Deductions
			n += rec.NetPay
		}
		gross += g
		deductions += d
		net += n

		status := "Pending"
		if run.IsPaid {
			status = "Paid"
		}
		rows = append(rows, []string{
			run.Period.Label(), day(run.PayDate), strconv.Itoa(len(run.Records)),
			money(g), money(d), money(n), status,
		})
	}

	return &domain.Document{
		Title:    "Payroll Run Summary",
		Subtitle: rangeLabel(in.Params.Range),
		Meta: []domain.Field{
			{Label: "Runs", Value: strconv.Itoa(len(list))},
			{Label: "Gross pay", Value: money(gross)},
			{Label: "Deductions", Value: money(deductions)},
			{Label: "Net pay", Value: money(net)},
		},
		Sections: []domain.Section{{
			Title:   "Runs",
			Columns: []string{"Pay Period", "Pay Date", "Employees", "Gross", "Deductions", "Net", "Status"},
			Rows:    rows,
		}},
	}, nil
}

// Payroll history of the requesting employee

type historyData struct {
	employee *domain.Employee
	entries  []domain.PayrollHistoryEntry
}

func (s Sources) collectPayrollHistory(ctx context.Context, in Input) (historyData, error) {
	if in.Requester == "" {
		return historyData{}, domain.NewMissingField("requester")
	}
	employee, err := s.Employees.FindByID(ctx, in.Requester)
	if err != nil {
		return historyData{}, err
	}
	if employee == nil {
		return historyData{}, fmt.Errorf("employee %s: %w", in.Requester, domain.ErrNotFound)
	}
	runs, err := s.Payroll.FindRunsForEmployee(ctx, in.Requester)
	if err != nil {
		return historyData{}, err
	}
	return historyData{employee: employee, entries: aggregate.MatchPayrollHistory(runs, in.Requester)}, nil
}

func buildPayrollHistory(data historyData, _ Input) (*domain.Document, error) {
	var net float64
	rows := make([][]string, 0, len(data.entries))
	for _, entry := range data.entries {
		rec := entry.Record
		net += rec.NetPay
		rows = append(rows, []string{
			entry.Period.Label(), day(entry.PayDate),
			money(rec.GrossPay), money(rec.Deductions), money(rec.NetPay), rec.PaidStatus,
		})
	}

	return &domain.Document{
		Title:    "Payroll History",
		Subtitle: data.employee.Name,
		Meta: []domain.Field{
			{Label: "Employee ID", Value: data.employee.ID},
			{Label: "Position", Value: data.employee.Position},
			{Label: "Payslips", Value: strconv.Itoa(len(data.entries))},
			{Label: "Total net pay", Value: money(net)},
		},
		Sections: []domain.Section{{
			Title:   "Payslips",
			Columns: []string{"Pay Period", "Pay Date", "Gross", "Deductions", "Net", "Status"},
			Rows:    rows,
		}},
	}, nil
}

// Recruitment activity

var pipelineOrder = []domain.ApplicantStatus{
	domain.ApplicantNew,
	domain.ApplicantScreening,
	domain.ApplicantInterview,
	domain.ApplicantOffer,
	domain.ApplicantHired,
	domain.ApplicantRejected,
}

func (s Sources) collectApplicants(ctx context.Context, in Input) ([]domain.Applicant, error) {
	r := in.Params.Range
	if r == nil {
		return nil, domain.NewMissingField(ParamStartDate)
	}
	return s.Applicants.FindAppliedBetween(ctx, r.Start, r.End)
}

func buildRecruitmentActivity(applicants []domain.Applicant, in Input) (*domain.Document, error) {
	list := append([]domain.Applicant(nil), applicants...)
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].AppliedAt.Equal(list[j].AppliedAt) {
			return list[i].AppliedAt.Before(list[j].AppliedAt)
		}
		return list[i].ID < list[j].ID
	})

	byStatus := make(map[domain.ApplicantStatus]int)
	rows := make([][]string, 0, len(list))
	for _, a := range list {
		byStatus[a.Status]++
		rows = append(rows, []string{day(a.AppliedAt), a.Name, a.JobOpening, string(a.Status)})
	}

	pipeline := make([][]string, 0, len(pipelineOrder))
	for _, status := range pipelineOrder {
		pipeline = append(pipeline, []string{string(status), strconv.Itoa(byStatus[status])})
	}

	return &domain.Document{
		Title:    "Recruitment Activity",
		Subtitle: rangeLabel(in.Params.Range),
		Meta: []domain.Field{
			{Label: "Applicants", Value: strconv.Itoa(len(list))},
			{Label: "Hired", Value: strconv.Itoa(byStatus[domain.ApplicantHired])},
		},
		Sections: []domain.Section{
			{Title: "Pipeline", Columns: []string{"Stage", "Applicants"}, Rows: pipeline},
			{Title: "Applications", Columns: []string{"Applied", "Name", "Job Opening", "Status"}, Rows: rows},
		},
	}, nil
}

// Training program roster

type rosterData struct {
	program     *domain.TrainingProgram
	enrollments []domain.Enrollment
	employees   map[string]domain.Employee
}

func (s Sources) collectRoster(ctx context.Context, in Input) (rosterData, error) {
	id := in.Params.ProgramID
	if id == "" {
		return rosterData{}, domain.NewMissingField(ParamProgramID)
	}
	program, err := s.Training.FindProgramByID(ctx, id)
	if err != nil {
		return rosterData{}, err
	}
	if program == nil {
		return rosterData{}, fmt.Errorf("training program %s: %w", id, domain.ErrNotFound)
	}
	enrollments, err := s.Training.FindEnrollments(ctx, id)
	if err != nil {
		return rosterData{}, err
	}
	employees, err := s.Employees.FindAll(ctx, nil)
	if err != nil {
		return rosterData{}, err
	}
	return rosterData{program: program, enrollments: enrollments, employees: byID(employees)}, nil
}

func buildTrainingRoster(data rosterData, _ Input) (*domain.Document, error) {
	type row struct {
		name string
		e    domain.Enrollment
	}
	list := make([]row, 0, len(data.enrollments))
	for _, e := range data.enrollments {
		list = append(list, row{name: employeeName(data.employees, e.EmployeeID), e: e})
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].name != list[j].name {
			return list[i].name < list[j].name
		}
		return list[i].e.ID < list[j].e.ID
	})

	completed := 0
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		if r.e.Status == "Completed" {
			completed++
		}
		rows = append(rows, []string{
			r.name,
			data.employees[r.e.EmployeeID].Position,
			r.e.Status,
			strconv.FormatFloat(r.e.Progress, 'f', 0, 64) + "%",
		})
	}

	p := data.program
	return &domain.Document{
		Title:    "Training Program Roster",
		Subtitle: p.Title,
		Meta: []domain.Field{
			{Label: "Provider", Value: p.Provider},
			{Label: "Schedule", Value: day(p.StartDate) + " to " + day(p.EndDate)},
			{Label: "Enrolled", Value: strconv.Itoa(len(list))},
			{Label: "Completed", Value: strconv.Itoa(completed)},
		},
		Sections: []domain.Section{{
			Title:   "Participants",
			Columns: []string{"Employee", "Position", "Status", "Progress"},
			Rows:    rows,
		}},
	}, nil
}

// KRA weight summary

func (s Sources) collectKraWeights(ctx context.Context, _ Input) ([]domain.KraWeightSummary, error) {
	kras, err := s.Performance.FindKRAs(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.KraWeightSummary, 0, len(kras))
	for _, kra := range kras {
		kpis, err := s.Performance.FindKPIsByKRA(ctx, kra.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, aggregate.RollupKraWeights(kra, kpis))
	}
	return summaries, nil
}

func buildKraWeightSummary(summaries []domain.KraWeightSummary, _ Input) (*domain.Document, error) {
	list := append([]domain.KraWeightSummary(nil), summaries...)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].KRA.Title != list[j].KRA.Title {
			return list[i].KRA.Title < list[j].KRA.Title
		}
		return list[i].KRA.ID < list[j].KRA.ID
	})

	unbalanced := 0
	sections := make([]domain.Section, 0, len(list))
	for _, summary := range list {
		kpis := append([]domain.KPI(nil), summary.KPIs...)
		sort.SliceStable(kpis, func(i, j int) bool { return kpis[i].ID < kpis[j].ID })

		rows := make([][]string, 0, len(kpis)+1)
		for _, kpi := range kpis {
			weight := "-"
			if kpi.Weight != nil {
				weight = money(*kpi.Weight)
			}
			rows = append(rows, []string{kpi.Title, weight})
		}
		rows = append(rows, []string{"Total", money(summary.TotalWeight)})

		section := domain.Section{
			Title:   summary.KRA.Title,
			Columns: []string{"KPI", "Weight (%)"},
			Rows:    rows,
		}
		if !summary.Balanced {
			unbalanced++
			section.Notes = []string{
				fmt.Sprintf("Weights total %s%%, expected %s%%.", money(summary.TotalWeight), money(aggregate.BalancedWeight)),
			}
		}
		sections = append(sections, section)
	}

	return &domain.Document{
		Title: "KRA Weight Summary",
		Meta: []domain.Field{
			{Label: "KRAs", Value: strconv.Itoa(len(list))},
			{Label: "Unbalanced", Value: strconv.Itoa(unbalanced)},
		},
		Sections: sections,
	}, nil
}
