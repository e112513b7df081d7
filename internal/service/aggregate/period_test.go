package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

func TestResolvePeriod(t *testing.T) {
	t.Run("absent period is inactive", func(t *testing.T) {
		got := ResolvePeriod(nil)
		assert.Nil(t, got.Period)
		assert.False(t, got.IsActive)
	})

	t.Run("both bounds present", func(t *testing.T) {
		p := &domain.EvaluationPeriod{Start: day("2024-03-01"), End: day("2024-03-31")}
		got := ResolvePeriod(p)
		require.NotNil(t, got.Period)
		assert.True(t, got.IsActive)
		assert.Equal(t, *p, *got.Period)
	})

	t.Run("missing bound is inactive", func(t *testing.T) {
		got := ResolvePeriod(&domain.EvaluationPeriod{Start: day("2024-03-01")})
		require.NotNil(t, got.Period)
		assert.False(t, got.IsActive)
	})
}

func TestValidatePeriod(t *testing.T) {
	err := ValidatePeriod(domain.EvaluationPeriod{Start: day("2024-03-10"), End: day("2024-03-01")})
	require.Error(t, err)
	assert.True(t, domain.IsValidationKind(err, domain.ValidationInvalidRange))
	assert.Contains(t, err.Error(), "periodEnd")

	assert.NoError(t, ValidatePeriod(domain.EvaluationPeriod{Start: day("2024-03-01"), End: day("2024-03-01")}))
	assert.True(t, domain.IsValidationKind(ValidatePeriod(domain.EvaluationPeriod{End: day("2024-03-01")}), domain.ValidationMissingField))
}
