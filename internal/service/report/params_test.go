package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/mocks"
)

func TestValidate_DateRange(t *testing.T) {
	v := NewValidator(testSources().Training)
	ctx := context.Background()

	tests := []struct {
		name  string
		raw   map[string]any
		kind  domain.ValidationKind
		field string
	}{
		{name: "missing start", raw: map[string]any{"endDate": "2024-02-10"}, kind: domain.ValidationMissingField, field: ParamStartDate},
		{name: "missing end", raw: map[string]any{"startDate": "2024-02-01"}, kind: domain.ValidationMissingField, field: ParamEndDate},
		{name: "blank start", raw: map[string]any{"startDate": "  ", "endDate": "2024-02-10"}, kind: domain.ValidationMissingField, field: ParamStartDate},
		{name: "end before start", raw: map[string]any{"startDate": "2024-02-10", "endDate": "2024-02-01"}, kind: domain.ValidationInvalidRange, field: ParamEndDate},
		{name: "not a date", raw: map[string]any{"startDate": "last monday", "endDate": "2024-02-01"}, kind: domain.ValidationInvalidFormat, field: ParamStartDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(ctx, domain.ParamsDateRange, tt.raw)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.kind, ve.Kind)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidate_DateRangeAccepted(t *testing.T) {
	v := NewValidator(testSources().Training)

	tests := []struct {
		name string
		raw  map[string]any
	}{
		{name: "ordered", raw: map[string]any{"startDate": "2024-02-01", "endDate": "2024-02-10"}},
		{name: "same day", raw: map[string]any{"startDate": "2024-02-01", "endDate": "2024-02-01"}},
		{name: "snake case", raw: map[string]any{"start_date": "2024-02-01", "end_date": "2024-02-10"}},
		{name: "timestamps", raw: map[string]any{"startDate": "2024-02-01T08:00:00Z", "endDate": "2024-02-10T17:30:00+08:00"}},
		{name: "extra keys ignored", raw: map[string]any{"startDate": "2024-02-01", "endDate": "2024-02-10", "format": "xlsx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := v.Validate(context.Background(), domain.ParamsDateRange, tt.raw)
			require.NoError(t, err)
			require.NotNil(t, params.Range)
			assert.Equal(t, domain.ParamsDateRange, params.Kind)
			assert.Equal(t, "2024-02-01", params.Range.Start.Format(dateLayout))
			assert.False(t, params.Range.End.Before(params.Range.Start))
		})
	}
}

func TestValidate_ProgramSelector(t *testing.T) {
	v := NewValidator(testSources().Training)
	ctx := context.Background()

	params, err := v.Validate(ctx, domain.ParamsProgramSelector, map[string]any{"programId": "prog-1"})
	require.NoError(t, err)
	assert.Equal(t, "prog-1", params.ProgramID)

	_, err = v.Validate(ctx, domain.ParamsProgramSelector, map[string]any{})
	assert.True(t, domain.IsValidationKind(err, domain.ValidationMissingField))

	_, err = v.Validate(ctx, domain.ParamsProgramSelector, map[string]any{"programId": "prog-404"})
	assert.True(t, domain.IsValidationKind(err, domain.ValidationUnknownReference))
}

func TestValidate_ProgramSelectorNumericID(t *testing.T) {
	var looked string
	v := NewValidator(&mocks.MockTrainingRepository{
		FindProgramByIDFunc: func(ctx context.Context, id string) (*domain.TrainingProgram, error) {
			looked = id
			return &domain.TrainingProgram{ID: id}, nil
		},
	})

	params, err := v.Validate(context.Background(), domain.ParamsProgramSelector, map[string]any{"programId": 12})

	require.NoError(t, err)
	assert.Equal(t, "12", looked)
	assert.Equal(t, "12", params.ProgramID)
}

func TestValidate_ProgramLookupFailure(t *testing.T) {
	boom := errors.New("connection reset")
	v := NewValidator(&mocks.MockTrainingRepository{
		FindProgramByIDFunc: func(ctx context.Context, id string) (*domain.TrainingProgram, error) {
			return nil, boom
		},
	})

	_, err := v.Validate(context.Background(), domain.ParamsProgramSelector, map[string]any{"programId": "prog-1"})

	assert.ErrorIs(t, err, boom)
	var ve *domain.ValidationError
	assert.False(t, errors.As(err, &ve))
}

func TestValidate_LeaveSelectorAndNone(t *testing.T) {
	v := NewValidator(testSources().Training)
	ctx := context.Background()

	params, err := v.Validate(ctx, domain.ParamsLeaveSelector, map[string]any{"leave_id": "L-9"})
	require.NoError(t, err)
	assert.Equal(t, "L-9", params.LeaveID)

	_, err = v.Validate(ctx, domain.ParamsLeaveSelector, nil)
	assert.True(t, domain.IsValidationKind(err, domain.ValidationMissingField))

	params, err = v.Validate(ctx, domain.ParamsNone, map[string]any{"anything": 1})
	require.NoError(t, err)
	assert.True(t, params.Empty())
}
