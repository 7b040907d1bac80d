package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/pkg/dateutil"
)

// StrategyKind tags which optimization strategy produced a result.
type StrategyKind string

const (
	StrategyMinimizeDays   StrategyKind = "minimize_days"
	StrategyMaximizeIncome StrategyKind = "maximize_income"
)

// Valid reports whether the tag names a known strategy.
func (s StrategyKind) Valid() bool {
	return s == StrategyMinimizeDays || s == StrategyMaximizeIncome
}

// MonthBreakdown is one calendar month's aggregate view of the plan:
// prorated income by source and benefit days by tier.
type MonthBreakdown struct {
	Month       time.Time `json:"month"` // first day of the month
	CoveredDays int       `json:"coveredDays"`
	MonthDays   int       `json:"monthDays"`

	BenefitIncome decimal.Decimal `json:"benefitIncome"`
	TopUpIncome   decimal.Decimal `json:"topUpIncome"`
	SalaryIncome  decimal.Decimal `json:"salaryIncome"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`

	StandardDays int `json:"standardDays"` // includes employer-top-up days
	MinimumDays  int `json:"minimumDays"`
	TopUpDays    int `json:"topUpDays"`

	DaysParent1 int `json:"daysParent1"` // leave calendar days per caregiver
	DaysParent2 int `json:"daysParent2"`

	BelowFloor bool `json:"belowFloor"`
}

// Key returns the month's canonical "2006-01" key.
func (m MonthBreakdown) Key() string {
	return dateutil.MonthKey(m.Month)
}

// CoverageFraction returns the share of the month inside the plan window.
func (m MonthBreakdown) CoverageFraction() decimal.Decimal {
	if m.MonthDays == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(m.CoveredDays)).Div(decimal.NewFromInt(int64(m.MonthDays)))
}

// FullyCovered reports whether the plan spans the entire month.
func (m MonthBreakdown) FullyCovered() bool {
	return m.MonthDays > 0 && m.CoveredDays == m.MonthDays
}

// ParentUsage summarizes one caregiver's day consumption in a result.
type ParentUsage struct {
	StandardUsed      int `json:"standardUsed"`
	MinimumUsed       int `json:"minimumUsed"`
	StandardRemaining int `json:"standardRemaining"`
	MinimumRemaining  int `json:"minimumRemaining"`
}

// TotalUsed returns the caregiver's consumed days across both tiers.
func (u ParentUsage) TotalUsed() int {
	return u.StandardUsed + u.MinimumUsed
}

// PoolUsage summarizes both caregivers' day consumption.
type PoolUsage struct {
	Parent1 ParentUsage `json:"parent1"`
	Parent2 ParentUsage `json:"parent2"`
}

// For returns the usage for a single caregiver.
func (u PoolUsage) For(id ParentID) ParentUsage {
	if id == Parent2 {
		return u.Parent2
	}
	return u.Parent1
}

// TotalUsed returns the household's consumed days across tiers.
func (u PoolUsage) TotalUsed() int {
	return u.Parent1.TotalUsed() + u.Parent2.TotalUsed()
}

// PlanResult is one strategy's complete outcome: the sequenced period list,
// monthly breakdowns, summary totals and advisory warnings. Immutable once
// returned by the engine.
type PlanResult struct {
	Strategy    StrategyKind    `json:"strategy"`
	FloorTarget decimal.Decimal `json:"floorTarget"` // floor the candidate was solved against
	TopUpFirst  bool            `json:"topUpFirst"`  // employer top-up tier prioritized

	Periods []LeavePeriod    `json:"periods"`
	Months  []MonthBreakdown `json:"months"`

	TotalIncome          decimal.Decimal `json:"totalIncome"`
	AverageMonthlyIncome decimal.Decimal `json:"averageMonthlyIncome"`
	Usage                PoolUsage       `json:"usage"`

	Warnings []string `json:"warnings,omitempty"`
}

// TotalDaysUsed returns the benefit days the plan consumed in total.
func (r *PlanResult) TotalDaysUsed() int {
	return r.Usage.TotalUsed()
}

// MonthsBelowFloor counts fully covered months whose income missed the
// candidate floor.
func (r *PlanResult) MonthsBelowFloor() int {
	n := 0
	for _, m := range r.Months {
		if m.BelowFloor {
			n++
		}
	}
	return n
}

// Span returns the first and last calendar day of the sequenced plan, or
// zero times for an empty plan.
func (r *PlanResult) Span() (time.Time, time.Time) {
	if len(r.Periods) == 0 {
		return time.Time{}, time.Time{}
	}
	return r.Periods[0].Start, r.Periods[len(r.Periods)-1].End
}
