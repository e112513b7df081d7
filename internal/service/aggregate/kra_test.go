package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

func weights(ws ...float64) []domain.KPI {
	kpis := make([]domain.KPI, 0, len(ws))
	for i := range ws {
		w := ws[i]
		kpis = append(kpis, domain.KPI{ID: string(rune('a' + i)), KraID: "kra-1", Weight: &w})
	}
	return kpis
}

func TestRollupKraWeights(t *testing.T) {
	kra := domain.KRA{ID: "kra-1", Title: "Customer Service"}

	tests := []struct {
		name     string
		kpis     []domain.KPI
		total    float64
		balanced bool
	}{
		{name: "balanced", kpis: weights(40, 35, 25), total: 100, balanced: true},
		{name: "under weight", kpis: weights(40, 35), total: 75, balanced: false},
		{name: "over weight", kpis: weights(60, 50), total: 110, balanced: false},
		{name: "no kpis", kpis: nil, total: 0, balanced: false},
		{
			name:     "missing weight counts as zero",
			kpis:     append(weights(50, 50), domain.KPI{ID: "z", KraID: "kra-1"}),
			total:    100,
			balanced: true,
		},
		{name: "fractional weights", kpis: weights(33.3, 33.3, 33.4), total: 100, balanced: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := RollupKraWeights(kra, tt.kpis)

			assert.InDelta(t, tt.total, summary.TotalWeight, 1e-6)
			assert.Equal(t, tt.balanced, summary.Balanced)
			assert.Equal(t, kra, summary.KRA)
			assert.Len(t, summary.KPIs, len(tt.kpis))
		})
	}
}
