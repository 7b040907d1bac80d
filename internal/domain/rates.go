package domain

import (
	"github.com/shopspring/decimal"
)

// DailyRates holds one caregiver's net daily income at each benefit tier.
// All figures are after tax and rounded to whole öre; this is the single
// place monetary rounding happens in the pipeline, so downstream sums stay
// deterministic.
type DailyRates struct {
	Wage          decimal.Decimal `json:"wage"`          // net wage per calendar day when working
	Standard      decimal.Decimal `json:"standard"`      // sjukpenningnivå per benefit day
	Minimum       decimal.Decimal `json:"minimum"`       // lägstanivå per benefit day
	EmployerTopUp decimal.Decimal `json:"employerTopUp"` // föräldralön per benefit day, zero without agreement
}

// ForTier returns the benefit paid per day at the given tier. The employer
// top-up tier pays the standard rate plus the top-up supplement.
func (d DailyRates) ForTier(tier BenefitTier) decimal.Decimal {
	switch tier {
	case TierEmployerTopUp:
		return d.Standard.Add(d.EmployerTopUp)
	case TierStandard:
		return d.Standard
	case TierMinimum:
		return d.Minimum
	default:
		return decimal.Zero
	}
}
