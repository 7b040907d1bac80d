package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ParentID identifies which caregiver a value belongs to. BothParents is
// used for shared leave periods where the two caregivers are off together.
type ParentID int

const (
	ParentNone ParentID = iota
	Parent1
	Parent2
	BothParents
)

// String returns the canonical wire name for the identity.
func (p ParentID) String() string {
	switch p {
	case Parent1:
		return "parent1"
	case Parent2:
		return "parent2"
	case BothParents:
		return "both"
	default:
		return "none"
	}
}

// Other returns the opposite single caregiver. BothParents and ParentNone
// map to ParentNone.
func (p ParentID) Other() ParentID {
	switch p {
	case Parent1:
		return Parent2
	case Parent2:
		return Parent1
	default:
		return ParentNone
	}
}

// Index maps a single caregiver to a stable array slot (Parent1 -> 0,
// Parent2 -> 1). Only valid for single caregivers.
func (p ParentID) Index() int {
	if p == Parent2 {
		return 1
	}
	return 0
}

// MarshalText implements encoding.TextMarshaler so the identity renders as
// a readable string in both YAML and JSON.
func (p ParentID) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ParentID) UnmarshalText(text []byte) error {
	switch string(text) {
	case "parent1", "1":
		*p = Parent1
	case "parent2", "2":
		*p = Parent2
	case "both":
		*p = BothParents
	case "none", "":
		*p = ParentNone
	default:
		return fmt.Errorf("unknown parent identity %q", text)
	}
	return nil
}

// ParentProfile describes one caregiver's income situation. Immutable input
// to the allocation pipeline.
type ParentProfile struct {
	Name                   string          `yaml:"name" json:"name"`
	MonthlyIncome          decimal.Decimal `yaml:"monthly_income" json:"monthly_income"` // gross
	HasCollectiveAgreement bool            `yaml:"has_collective_agreement" json:"has_collective_agreement"`
	TaxRate                decimal.Decimal `yaml:"tax_rate" json:"tax_rate"` // effective rate, 0..1
}

// NetMonthlyIncome returns the gross monthly income after the effective
// tax rate, rounded to whole öre.
func (p ParentProfile) NetMonthlyIncome() decimal.Decimal {
	return p.MonthlyIncome.Mul(decimal.NewFromInt(1).Sub(p.TaxRate)).Round(2)
}

// AnnualIncome returns the gross yearly income used as the benefit base.
func (p ParentProfile) AnnualIncome() decimal.Decimal {
	return p.MonthlyIncome.Mul(decimal.NewFromInt(12))
}

// PlanSpec is the complete input to one planning run: both caregivers, the
// plan window, preferred split, floor and weekly cadence. Degenerate values
// are clamped during validation rather than rejected, so a zero-value spec
// still produces an empty but well-formed plan.
type PlanSpec struct {
	Parent1 ParentProfile `yaml:"parent1" json:"parent1"`
	Parent2 ParentProfile `yaml:"parent2" json:"parent2"`

	StartDate          time.Time       `yaml:"start_date" json:"start_date"`
	TotalMonths        decimal.Decimal `yaml:"total_months" json:"total_months"`
	PreferredMonths1   decimal.Decimal `yaml:"preferred_months_parent1" json:"preferred_months_parent1"`
	PreferredMonths2   decimal.Decimal `yaml:"preferred_months_parent2" json:"preferred_months_parent2"`
	SimultaneousMonths decimal.Decimal `yaml:"simultaneous_months,omitempty" json:"simultaneous_months,omitempty"`
	IncomeFloor        decimal.Decimal `yaml:"income_floor" json:"income_floor"`
	DaysPerWeek        int             `yaml:"days_per_week" json:"days_per_week"`

	// Optional per-caregiver cutoffs: the first day on which leave is no
	// longer permitted for that caregiver.
	CutoffParent1 *time.Time `yaml:"cutoff_parent1,omitempty" json:"cutoff_parent1,omitempty"`
	CutoffParent2 *time.Time `yaml:"cutoff_parent2,omitempty" json:"cutoff_parent2,omitempty"`

	// Strategy restricts the run to a single strategy when set; empty means
	// evaluate all strategies.
	Strategy StrategyKind `yaml:"strategy,omitempty" json:"strategy,omitempty"`
}

// Profile returns the profile for a single caregiver.
func (s *PlanSpec) Profile(id ParentID) ParentProfile {
	if id == Parent2 {
		return s.Parent2
	}
	return s.Parent1
}

// PreferredMonths returns the preferred leave share for a single caregiver.
func (s *PlanSpec) PreferredMonths(id ParentID) decimal.Decimal {
	if id == Parent2 {
		return s.PreferredMonths2
	}
	return s.PreferredMonths1
}

// Cutoff returns the cutoff date for a single caregiver, or nil.
func (s *PlanSpec) Cutoff(id ParentID) *time.Time {
	if id == Parent2 {
		return s.CutoffParent2
	}
	return s.CutoffParent1
}

// HouseholdNetMonthly returns the combined net monthly wage income with
// both caregivers working.
func (s *PlanSpec) HouseholdNetMonthly() decimal.Decimal {
	return s.Parent1.NetMonthlyIncome().Add(s.Parent2.NetMonthlyIncome())
}
