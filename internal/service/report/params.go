package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/ports"
)

const dateLayout = "2006-01-02"

// Parameter names as callers send them. The snake_case spelling is
// accepted as an alias.
const (
	ParamStartDate = "startDate"
	ParamEndDate   = "endDate"
	ParamProgramID = "programId"
	ParamLeaveID   = "leaveId"
)

var paramAliases = map[string]string{
	ParamStartDate: "start_date",
	ParamEndDate:   "end_date",
	ParamProgramID: "program_id",
	ParamLeaveID:   "leave_id",
}

// Validator checks a raw parameter bag against a parameter schema.
type Validator struct {
	programs ports.TrainingRepository
}

// NewValidator creates a validator that resolves program references through programs.
func NewValidator(programs ports.TrainingRepository) *Validator {
	return &Validator{programs: programs}
}

// Validate checks raw against the schema named by kind and returns the normalized params.
func (v *Validator) Validate(ctx context.Context, kind domain.ParamsKind, raw map[string]any) (domain.ValidatedParams, error) {
	switch kind {
	case domain.ParamsNone:
		return domain.ValidatedParams{}, nil
	case domain.ParamsDateRange:
		return v.dateRange(raw)
	case domain.ParamsProgramSelector:
		return v.programSelector(ctx, raw)
	case domain.ParamsLeaveSelector:
		id, err := stringParam(raw, ParamLeaveID)
		if err != nil {
			return domain.ValidatedParams{}, err
		}
		if id == "" {
			return domain.ValidatedParams{}, domain.NewMissingField(ParamLeaveID)
		}
		return domain.ValidatedParams{Kind: kind, LeaveID: id}, nil
	default:
		return domain.ValidatedParams{}, fmt.Errorf("unsupported params component %q", kind)
	}
}

func (v *Validator) dateRange(raw map[string]any) (domain.ValidatedParams, error) {
	start, err := dateParam(raw, ParamStartDate)
	if err != nil {
		return domain.ValidatedParams{}, err
	}
	end, err := dateParam(raw, ParamEndDate)
	if err != nil {
		return domain.ValidatedParams{}, err
	}
	if end.Before(start) {
		return domain.ValidatedParams{}, domain.NewInvalidRange(ParamEndDate, "must not be before "+ParamStartDate)
	}
	return domain.ValidatedParams{
		Kind:  domain.ParamsDateRange,
		Range: &domain.DateRange{Start: start, End: end},
	}, nil
}

func (v *Validator) programSelector(ctx context.Context, raw map[string]any) (domain.ValidatedParams, error) {
	id, err := stringParam(raw, ParamProgramID)
	if err != nil {
		return domain.ValidatedParams{}, err
	}
	if id == "" {
		return domain.ValidatedParams{}, domain.NewMissingField(ParamProgramID)
	}

	program, err := v.programs.FindProgramByID(ctx, id)
	if err != nil {
		return domain.ValidatedParams{}, fmt.Errorf("look up training program %s: %w", id, err)
	}
	if program == nil {
		return domain.ValidatedParams{}, &domain.ValidationError{
			Kind:    domain.ValidationUnknownReference,
			Field:   ParamProgramID,
			Message: fmt.Sprintf("training program %q does not exist", id),
		}
	}
	return domain.ValidatedParams{Kind: domain.ParamsProgramSelector, ProgramID: id}, nil
}

func lookup(raw map[string]any, name string) (any, bool) {
	if v, ok := raw[name]; ok && v != nil {
		return v, true
	}
	if alias, ok := paramAliases[name]; ok {
		if v, ok := raw[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringParam(raw map[string]any, name string) (string, error) {
	v, ok := lookup(raw, name)
	if !ok {
		return "", nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", &domain.ValidationError{
			Kind:    domain.ValidationInvalidFormat,
			Field:   name,
			Message: fmt.Sprintf("cannot read %T as text", v),
		}
	}
	return strings.TrimSpace(s), nil
}

func dateParam(raw map[string]any, name string) (time.Time, error) {
	s, err := stringParam(raw, name)
	if err != nil {
		return time.Time{}, err
	}
	if s == "" {
		return time.Time{}, domain.NewMissingField(name)
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, &domain.ValidationError{
		Kind:    domain.ValidationInvalidFormat,
		Field:   name,
		Message: fmt.Sprintf("%q is not a date (expected YYYY-MM-DD)", s),
	}
}
