package domain

import "time"

type ReportID string

type ReportCategory string

const (
	CategoryEmployeeData ReportCategory = "employee_data"
	CategoryAttendance   ReportCategory = "attendance"
	CategoryPayroll      ReportCategory = "payroll"
	CategoryRecruitment  ReportCategory = "recruitment"
	CategoryTraining     ReportCategory = "training"
	CategoryPerformance  ReportCategory = "performance"
)

// Valid reports whether c is a known category.
func (c ReportCategory) Valid() bool {
	switch c {
	case CategoryEmployeeData, CategoryAttendance, CategoryPayroll,
		CategoryRecruitment, CategoryTraining, CategoryPerformance:
		return true
	}
	return false
}

// ParamsKind names the parameter-collection shape a report expects.
// The empty kind means the report takes no parameters.
type ParamsKind string

const (
	ParamsNone            ParamsKind = ""
	ParamsDateRange       ParamsKind = "date_range"
	ParamsProgramSelector ParamsKind = "program_selector"
	ParamsLeaveSelector   ParamsKind = "leave_selector"
)

func (k ParamsKind) Valid() bool {
	switch k {
	case ParamsNone, ParamsDateRange, ParamsProgramSelector, ParamsLeaveSelector:
		return true
	}
	return false
}

// ReportMeta is the serializable part of a report definition. The handler
// itself is attached by the registry and never stored here.
type ReportMeta struct {
	ID             ReportID       `json:"id" yaml:"id"`
	Title          string         `json:"title" yaml:"title"`
	Description    string         `json:"description" yaml:"description"`
	Icon           string         `json:"icon" yaml:"icon"`
	Category       ReportCategory `json:"category" yaml:"category"`
	HandlerKey     string         `json:"handler_key" yaml:"handler"`
	RequiresParams bool           `json:"requires_params" yaml:"requires_params"`
	Params         ParamsKind     `json:"params_component,omitempty" yaml:"params_component,omitempty"`
}

// GenerationRequest is consumed by exactly one dispatch call.
type GenerationRequest struct {
	ReportID  ReportID
	Params    map[string]any
	Requester string // employee on whose behalf the report runs
}

type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// ValidatedParams is the normalized parameter set handed to a handler.
// Only the field matching Kind is populated.
type ValidatedParams struct {
	Kind      ParamsKind `json:"kind,omitempty"`
	Range     *DateRange `json:"range,omitempty"`
	ProgramID string     `json:"program_id,omitempty"`
	LeaveID   string     `json:"leave_id,omitempty"`
}

// Empty reports whether no parameters were collected.
func (p ValidatedParams) Empty() bool {
	return p.Kind == ParamsNone
}

type ResultKind string

const (
	ResultDocument ResultKind = "document"
	ResultBinary   ResultKind = "binary"
)

type GenerationResult struct {
	ReportID    ReportID   `json:"report_id"`
	Kind        ResultKind `json:"kind"`
	ContentType string     `json:"content_type"`
	Filename    string     `json:"filename"`
	Data        []byte     `json:"-"`
}
