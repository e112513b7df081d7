package aggregate

import "github.com/seu-repo/lapeco-hr/internal/domain"

// ResolvePeriod exposes a stored period as-is with its derived active flag.
func ResolvePeriod(p *domain.EvaluationPeriod) domain.ActivePeriod {
	if p == nil {
		return domain.ActivePeriod{}
	}
	period := *p
	return domain.ActivePeriod{
		Period:   &period,
		IsActive: !period.Start.IsZero() && !period.End.IsZero(),
	}
}

// ValidatePeriod checks a period an administrator wants to activate.
func ValidatePeriod(p domain.EvaluationPeriod) error {
	if p.Start.IsZero() {
		return domain.NewMissingField("periodStart")
	}
	if p.End.IsZero() {
		return domain.NewMissingField("periodEnd")
	}
	if p.End.Before(p.Start) {
		return domain.NewInvalidRange("periodEnd", "must not be before periodStart")
	}
	return nil
}
