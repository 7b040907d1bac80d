package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
// Future: could be derived from the effective BenefitRules instead of hardcoded.
var DefaultAssumptions = []string{
	"Statutory rates derived from the 2025 price base amount (58 800 kr)",
	"Benefit ceiling: 10 price base amounts of SGI-adjusted annual income",
	"Standard level pays 80% of the SGI-adjusted daily wage, capped at 1 250 kr/day",
	"Minimum level pays a flat 180 kr/day regardless of income",
	"Employer top-up assumed only for caregivers under a collective agreement",
	"Net incomes apply each caregiver's flat effective tax rate",
}
