package domain

import (
	"github.com/shopspring/decimal"
)

// BenefitRules contains the statutory and collective-agreement constants the
// allocation pipeline runs against. These are configuration, not hard-coded
// law: every figure can be overridden from the plan file, and DefaultRules
// supplies the current Swedish values.
type BenefitRules struct {
	// Rate formula inputs.
	PriceBaseAmount    decimal.Decimal `yaml:"price_base_amount" json:"price_base_amount"`
	SGICeilingMultiple decimal.Decimal `yaml:"sgi_ceiling_multiple" json:"sgi_ceiling_multiple"` // annual ceiling = multiple x base amount
	SGIFactor          decimal.Decimal `yaml:"sgi_factor" json:"sgi_factor"`                     // fraction of income counted as SGI
	ReplacementRate    decimal.Decimal `yaml:"replacement_rate" json:"replacement_rate"`
	DaysPerYear        decimal.Decimal `yaml:"days_per_year" json:"days_per_year"`
	StandardRateCap    decimal.Decimal `yaml:"standard_rate_cap" json:"standard_rate_cap"`
	StandardRateFloor  decimal.Decimal `yaml:"standard_rate_floor" json:"standard_rate_floor"` // grundnivå
	MinimumRate        decimal.Decimal `yaml:"minimum_rate" json:"minimum_rate"`               // lägstanivå

	// Employer top-up (föräldralön) two-bracket formula.
	TopUpRateBelowCeiling decimal.Decimal `yaml:"top_up_rate_below_ceiling" json:"top_up_rate_below_ceiling"`
	TopUpRateAboveCeiling decimal.Decimal `yaml:"top_up_rate_above_ceiling" json:"top_up_rate_above_ceiling"`

	// Day quotas.
	StandardDays int `yaml:"standard_days" json:"standard_days"` // sjukpenningnivå pool, both caregivers combined
	MinimumDays  int `yaml:"minimum_days" json:"minimum_days"`   // lägstanivå pool, both caregivers combined
	ReservedDays int `yaml:"reserved_days" json:"reserved_days"` // non-transferable standard days per caregiver
	DoubleDays   int `yaml:"double_days" json:"double_days"`     // shared working days at plan start, charged to both pools

	// Chronological sequencing rule: standard-tier days a caregiver must
	// consume before their first minimum-tier day.
	StandardBeforeMinimum          int `yaml:"standard_before_minimum" json:"standard_before_minimum"`
	StandardBeforeMinimumWithTopUp int `yaml:"standard_before_minimum_with_top_up" json:"standard_before_minimum_with_top_up"`

	// Iteration guards and calendar conversion constants.
	MaxTopUpPasses  int             `yaml:"max_top_up_passes" json:"max_top_up_passes"`
	WeeksPerMonth   decimal.Decimal `yaml:"weeks_per_month" json:"weeks_per_month"`
	AvgDaysPerMonth decimal.Decimal `yaml:"avg_days_per_month" json:"avg_days_per_month"`
}

// DefaultRules returns the Swedish parental-benefit constants for 2025.
func DefaultRules() BenefitRules {
	return BenefitRules{
		PriceBaseAmount:    decimal.NewFromInt(58800),
		SGICeilingMultiple: decimal.NewFromInt(10),
		SGIFactor:          decimal.NewFromFloat(0.97),
		ReplacementRate:    decimal.NewFromFloat(0.80),
		DaysPerYear:        decimal.NewFromInt(365),
		StandardRateCap:    decimal.NewFromInt(1250),
		StandardRateFloor:  decimal.NewFromInt(250),
		MinimumRate:        decimal.NewFromInt(180),

		TopUpRateBelowCeiling: decimal.NewFromFloat(0.10),
		TopUpRateAboveCeiling: decimal.NewFromFloat(0.90),

		StandardDays: 390,
		MinimumDays:  90,
		ReservedDays: 90,
		DoubleDays:   10,

		StandardBeforeMinimum:          90,
		StandardBeforeMinimumWithTopUp: 180,

		MaxTopUpPasses:  6,
		WeeksPerMonth:   decimal.NewFromFloat(4.3),
		AvgDaysPerMonth: decimal.NewFromFloat(30.4375),
	}
}

// AnnualIncomeCeiling returns the yearly income cap for the standard-rate
// formula (the SGI ceiling).
func (r BenefitRules) AnnualIncomeCeiling() decimal.Decimal {
	return r.PriceBaseAmount.Mul(r.SGICeilingMultiple)
}

// MonthlyTopUpThreshold returns the monthly income above which the higher
// employer top-up bracket applies.
func (r BenefitRules) MonthlyTopUpThreshold() decimal.Decimal {
	return r.AnnualIncomeCeiling().Div(decimal.NewFromInt(12))
}

// StandardBeforeMinimumFor returns the chronological threshold for a
// caregiver given their agreement status.
func (r BenefitRules) StandardBeforeMinimumFor(hasAgreement bool) int {
	if hasAgreement {
		return r.StandardBeforeMinimumWithTopUp
	}
	return r.StandardBeforeMinimum
}
