package aggregate

import (
	"math"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

// BalancedWeight is the total KPI weight a KRA is expected to reach.
const BalancedWeight = 100.0

const weightTolerance = 1e-9

// RollupKraWeights sums the KPI weights of a KRA. A KPI without a weight
// counts as zero. The balance flag is advisory only.
func RollupKraWeights(kra domain.KRA, kpis []domain.KPI) domain.KraWeightSummary {
	var total float64
	for _, kpi := range kpis {
		if kpi.Weight != nil {
			total += *kpi.Weight
		}
	}

	if kpis == nil {
		kpis = []domain.KPI{}
	}

	return domain.KraWeightSummary{
		KRA:         kra,
		KPIs:        kpis,
		TotalWeight: total,
		Balanced:    math.Abs(total-BalancedWeight) < weightTolerance,
	}
}
