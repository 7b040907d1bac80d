package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// CalculateDailyRates converts a caregiver's profile into the net daily
// rates the rest of the pipeline works with. Deterministic, no side
// effects. This is the only place monetary rounding to öre happens; every
// downstream figure is a sum of these rounded rates.
func CalculateDailyRates(profile domain.ParentProfile, rules domain.BenefitRules) domain.DailyRates {
	netFactor := decimal.NewFromInt(1).Sub(profile.TaxRate)

	return domain.DailyRates{
		Wage:          dailyWage(profile, rules).Mul(netFactor).Round(2),
		Standard:      standardDailyRate(profile, rules).Mul(netFactor).Round(2),
		Minimum:       rules.MinimumRate.Mul(netFactor).Round(2),
		EmployerTopUp: employerTopUpDailyRate(profile, rules).Mul(netFactor).Round(2),
	}
}

// dailyWage spreads the gross monthly wage across the calendar year.
func dailyWage(profile domain.ParentProfile, rules domain.BenefitRules) decimal.Decimal {
	return profile.AnnualIncome().Div(rules.DaysPerYear)
}

// standardDailyRate computes the sjukpenningnivå benefit per day: the
// replacement rate applied to the SGI-adjusted income base, capped at the
// statutory ceiling, with the grundnivå flat amount as the lower bound.
func standardDailyRate(profile domain.ParentProfile, rules domain.BenefitRules) decimal.Decimal {
	base := decimal.Min(profile.AnnualIncome(), rules.AnnualIncomeCeiling())
	sgi := base.Mul(rules.SGIFactor)
	rate := sgi.Mul(rules.ReplacementRate).Div(rules.DaysPerYear)

	if rate.LessThan(rules.StandardRateFloor) {
		return rules.StandardRateFloor
	}
	return decimal.Min(rate, rules.StandardRateCap)
}

// employerTopUpDailyRate computes the föräldralön supplement per day for a
// caregiver with a collective agreement: a flat percentage of the monthly
// wage below the threshold and a higher marginal percentage above it,
// annualized over the calendar year. Zero without the agreement.
func employerTopUpDailyRate(profile domain.ParentProfile, rules domain.BenefitRules) decimal.Decimal {
	if !profile.HasCollectiveAgreement {
		return decimal.Zero
	}

	threshold := rules.MonthlyTopUpThreshold()
	below := decimal.Min(profile.MonthlyIncome, threshold).Mul(rules.TopUpRateBelowCeiling)
	above := decimal.Max(profile.MonthlyIncome.Sub(threshold), decimal.Zero).Mul(rules.TopUpRateAboveCeiling)

	monthly := below.Add(above)
	return monthly.Mul(decimal.NewFromInt(12)).Div(rules.DaysPerYear)
}
