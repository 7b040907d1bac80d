package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/pkg/dateutil"
)

// PlanFile is the on-disk shape of a plan: the household spec plus optional
// overrides of the statutory rule constants.
type PlanFile struct {
	Plan  domain.PlanSpec      `yaml:"plan" json:"plan"`
	Rules *domain.BenefitRules `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// EffectiveRules returns the rule set to run with: the file's overrides when
// present, the Swedish defaults otherwise.
func (f *PlanFile) EffectiveRules() domain.BenefitRules {
	if f.Rules == nil {
		return domain.DefaultRules()
	}
	return clampRules(*f.Rules)
}

// InputParser handles parsing of plan input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// CreateExamplePlan returns a realistic starter plan a household can edit.
func (ip *InputParser) CreateExamplePlan() *PlanFile {
	return &PlanFile{
		Plan: domain.PlanSpec{
			Parent1: domain.ParentProfile{
				Name:                   "Elin",
				MonthlyIncome:          decimal.NewFromInt(42000),
				HasCollectiveAgreement: true,
				TaxRate:                decimal.RequireFromString("0.3"),
			},
			Parent2: domain.ParentProfile{
				Name:                   "Johan",
				MonthlyIncome:          decimal.NewFromInt(36500),
				HasCollectiveAgreement: false,
				TaxRate:                decimal.RequireFromString("0.3"),
			},
			StartDate:        dateutil.NextMonth(time.Now()),
			TotalMonths:      decimal.NewFromInt(13),
			PreferredMonths1: decimal.NewFromInt(8),
			PreferredMonths2: decimal.NewFromInt(5),
			IncomeFloor:      decimal.NewFromInt(38000),
			DaysPerWeek:      5,
			Strategy:         domain.StrategyMinimizeDays,
		},
	}
}

// LoadFromFile loads a plan from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*PlanFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.LoadFromBytes(data)
}

// LoadFromBytes parses and validates a plan from raw YAML bytes.
func (ip *InputParser) LoadFromBytes(data []byte) (*PlanFile, error) {
	var file PlanFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateAndClamp(&file.Plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &file, nil
}

// ValidateAndClamp normalizes a plan spec in place. Degenerate numeric
// inputs are clamped to safe values rather than rejected so the engine can
// always produce a usable, if empty, result. Errors are reserved for specs
// the pipeline cannot interpret at all.
func (ip *InputParser) ValidateAndClamp(spec *domain.PlanSpec) error {
	if spec == nil {
		return fmt.Errorf("plan is required")
	}

	if spec.Strategy != "" && !spec.Strategy.Valid() {
		return fmt.Errorf("unknown strategy %q", spec.Strategy)
	}

	clampProfile(&spec.Parent1)
	clampProfile(&spec.Parent2)

	spec.TotalMonths = clampNonNegative(spec.TotalMonths)
	spec.PreferredMonths1 = clampNonNegative(spec.PreferredMonths1)
	spec.PreferredMonths2 = clampNonNegative(spec.PreferredMonths2)
	spec.SimultaneousMonths = clampNonNegative(spec.SimultaneousMonths)
	spec.IncomeFloor = clampNonNegative(spec.IncomeFloor)

	// The preferred split can never exceed the plan window.
	prefSum := spec.PreferredMonths1.Add(spec.PreferredMonths2)
	if prefSum.GreaterThan(spec.TotalMonths) && prefSum.IsPositive() {
		scale := spec.TotalMonths.Div(prefSum)
		spec.PreferredMonths1 = spec.PreferredMonths1.Mul(scale)
		spec.PreferredMonths2 = spec.PreferredMonths2.Mul(scale)
	}

	switch {
	case spec.DaysPerWeek == 0:
		spec.DaysPerWeek = 7
	case spec.DaysPerWeek < 1:
		spec.DaysPerWeek = 1
	case spec.DaysPerWeek > 7:
		spec.DaysPerWeek = 7
	}

	if spec.StartDate.IsZero() {
		spec.StartDate = dateutil.NextMonth(time.Now())
	}
	spec.StartDate = dateutil.Normalize(spec.StartDate)

	if spec.CutoffParent1 != nil {
		c := dateutil.Normalize(*spec.CutoffParent1)
		spec.CutoffParent1 = &c
	}
	if spec.CutoffParent2 != nil {
		c := dateutil.Normalize(*spec.CutoffParent2)
		spec.CutoffParent2 = &c
	}

	return nil
}

func clampProfile(p *domain.ParentProfile) {
	p.MonthlyIncome = clampNonNegative(p.MonthlyIncome)
	if p.TaxRate.IsNegative() {
		p.TaxRate = decimal.Zero
	}
	if p.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		p.TaxRate = decimal.NewFromInt(1)
	}
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// clampRules guards the iteration and conversion constants so a hostile
// rules override cannot stall or divide the pipeline by zero.
func clampRules(r domain.BenefitRules) domain.BenefitRules {
	def := domain.DefaultRules()

	if r.DaysPerYear.LessThanOrEqual(decimal.Zero) {
		r.DaysPerYear = def.DaysPerYear
	}
	if r.WeeksPerMonth.LessThanOrEqual(decimal.Zero) {
		r.WeeksPerMonth = def.WeeksPerMonth
	}
	if r.AvgDaysPerMonth.LessThanOrEqual(decimal.Zero) {
		r.AvgDaysPerMonth = def.AvgDaysPerMonth
	}
	if r.MaxTopUpPasses <= 0 {
		r.MaxTopUpPasses = def.MaxTopUpPasses
	}

	if r.StandardDays < 0 {
		r.StandardDays = 0
	}
	if r.MinimumDays < 0 {
		r.MinimumDays = 0
	}
	if r.DoubleDays < 0 {
		r.DoubleDays = 0
	}
	if r.ReservedDays < 0 {
		r.ReservedDays = 0
	}
	if r.ReservedDays*2 > r.StandardDays {
		r.ReservedDays = r.StandardDays / 2
	}
	if r.StandardBeforeMinimum < 0 {
		r.StandardBeforeMinimum = 0
	}
	if r.StandardBeforeMinimumWithTopUp < r.StandardBeforeMinimum {
		r.StandardBeforeMinimumWithTopUp = r.StandardBeforeMinimum
	}

	return r
}
