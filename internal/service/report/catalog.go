package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

// Handler keys of the built-in handlers.
const (
	HandlerEmployeeMasterlist = "employee_masterlist"
	HandlerAttendanceSummary  = "attendance_summary"
	HandlerPayrollSummary     = "payroll_summary"
	HandlerPayrollHistory     = "payroll_history"
	HandlerRecruitment        = "recruitment_activity"
	HandlerTrainingRoster     = "training_program_roster"
	HandlerKraWeights         = "kra_weight_summary"
	HandlerLeaveAttachment    = "leave_attachment"
)

// DefaultCatalog returns the built-in report definitions.
func DefaultCatalog() []domain.ReportMeta {
	return []domain.ReportMeta{
		{
			ID:          "employee_masterlist",
			Title:       "Employee Masterlist",
			Description: "All employees with position, department and employment status.",
			Icon:        "bi-people-fill",
			Category:    domain.CategoryEmployeeData,
			HandlerKey:  HandlerEmployeeMasterlist,
		},
		{
			ID:             "attendance_summary",
			Title:          "Attendance Summary",
			Description:    "Present, late and absent counts per employee over a date range.",
			Icon:           "bi-calendar-check-fill",
			Category:       domain.CategoryAttendance,
			HandlerKey:     HandlerAttendanceSummary,
			RequiresParams: true,
			Params:         domain.ParamsDateRange,
		},
		{
			ID:             "payroll_summary",
			Title:          "Payroll Run Summary",
			Description:    "Gross, deductions and net totals for each pay run in a date range.",
			Icon:           "bi-cash-coin",
			Category:       domain.CategoryPayroll,
			HandlerKey:     HandlerPayrollSummary,
			RequiresParams: true,
			Params:         domain.ParamsDateRange,
		},
		{
			ID:          "payroll_history",
			Title:       "My Payroll History",
			Description: "Every payslip of the requesting employee, most recent first.",
			Icon:        "bi-receipt",
			Category:    domain.CategoryPayroll,
			HandlerKey:  HandlerPayrollHistory,
		},
		{
			ID:             "recruitment_activity",
			Title:          "Recruitment Activity",
			Description:    "Applicants received in a date range, grouped by pipeline status.",
			Icon:           "bi-person-plus-fill",
			Category:       domain.CategoryRecruitment,
			HandlerKey:     HandlerRecruitment,
			RequiresParams: true,
			Params:         domain.ParamsDateRange,
		},
		{
			ID:             "training_program_roster",
			Title:          "Training Program Roster",
			Description:    "Enrolled employees and their progress for one training program.",
			Icon:           "bi-mortarboard-fill",
			Category:       domain.CategoryTraining,
			HandlerKey:     HandlerTrainingRoster,
			RequiresParams: true,
			Params:         domain.ParamsProgramSelector,
		},
		{
			ID:          "kra_weight_summary",
			Title:       "KRA Weight Summary",
			Description: "KPI weights under each KRA, flagging KRAs that do not total 100%.",
			Icon:        "bi-bullseye",
			Category:    domain.CategoryPerformance,
			HandlerKey:  HandlerKraWeights,
		},
		{
			ID:             "leave_attachment",
			Title:          "Leave Attachment",
			Description:    "The supporting document uploaded with a leave request.",
			Icon:           "bi-paperclip",
			Category:       domain.CategoryAttendance,
			HandlerKey:     HandlerLeaveAttachment,
			RequiresParams: true,
			Params:         domain.ParamsLeaveSelector,
		},
	}
}

type catalogFile struct {
	Reports []domain.ReportMeta `yaml:"reports"`
}

// LoadCatalog reads catalog entries from a YAML file of the form
//
//	reports:
//	  - id: attendance_summary
//	    title: Attendance Summary
//	    handler: attendance_summary
//	    ...
func LoadCatalog(path string) ([]domain.ReportMeta, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report catalog: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse report catalog %s: %w", path, err)
	}
	return f.Reports, nil
}

// MergeCatalog overlays entries on base. Entries with a known ID replace
// the base entry in place; new IDs are appended.
func MergeCatalog(base, entries []domain.ReportMeta) []domain.ReportMeta {
	merged := append([]domain.ReportMeta(nil), base...)
	index := make(map[domain.ReportID]int, len(merged))
	for i, m := range merged {
		index[m.ID] = i
	}
	for _, e := range entries {
		if i, ok := index[e.ID]; ok {
			merged[i] = e
			continue
		}
		index[e.ID] = len(merged)
		merged = append(merged, e)
	}
	return merged
}

// BuildRegistry resolves each entry's handler key against handlers. A key
// with no implementation fails with domain.ErrUnknownHandler.
func BuildRegistry(entries []domain.ReportMeta, handlers HandlerTable) (*Registry, error) {
	defs := make([]Definition, 0, len(entries))
	for _, meta := range entries {
		h, ok := handlers[meta.HandlerKey]
		if !ok {
			return nil, fmt.Errorf("report %q: %w: %q", meta.ID, domain.ErrUnknownHandler, meta.HandlerKey)
		}
		defs = append(defs, Definition{Meta: meta, Handler: h})
	}
	return NewRegistry(defs...)
}
