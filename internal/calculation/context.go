package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/pkg/dateutil"
)

// AllocationContext carries one strategy candidate's configuration and
// working state through the pipeline: rates and pools for both caregivers,
// the candidate's income floor, the plan window, and the chronological
// standard-tier counters backing the minimum-high-before-low rule. A fresh
// context is built per candidate; the day pools are the only mutable
// substructure shared across stages.
type AllocationContext struct {
	Spec  *domain.PlanSpec
	Rules domain.BenefitRules

	Rates      [2]domain.DailyRates
	NetMonthly [2]decimal.Decimal
	Pools      domain.PoolSet

	Floor      decimal.Decimal
	TopUpFirst bool

	PlanStart time.Time
	PlanEnd   time.Time

	DaysPerWeek int

	// standardTaken backs the chronological minimum-high-before-low rule
	// only; pool accounting lives in Pools.
	standardTaken [2]int

	monthOwner map[string]domain.ParentID
	warnings   []string
}

// newAllocationContext derives the per-candidate state from the plan spec.
// The floor and tier preference are candidate knobs; everything else comes
// from the spec and rules.
func newAllocationContext(spec *domain.PlanSpec, rules domain.BenefitRules, floor decimal.Decimal, topUpFirst bool) *AllocationContext {
	ac := &AllocationContext{
		Spec:        spec,
		Rules:       rules,
		Floor:       floor,
		TopUpFirst:  topUpFirst,
		DaysPerWeek: spec.DaysPerWeek,
		monthOwner:  make(map[string]domain.ParentID),
	}

	for _, id := range []domain.ParentID{domain.Parent1, domain.Parent2} {
		profile := spec.Profile(id)
		ac.Rates[id.Index()] = CalculateDailyRates(profile, rules)
		ac.NetMonthly[id.Index()] = profile.NetMonthlyIncome()
	}

	ac.Pools = AllocatePools(rules, spec.PreferredMonths1, spec.PreferredMonths2)

	ac.PlanStart = dateutil.Normalize(spec.StartDate)
	ac.PlanEnd = planEnd(ac.PlanStart, spec.TotalMonths, rules.AvgDaysPerMonth)

	return ac
}

// planEnd resolves the inclusive last plan day for a possibly fractional
// month count. A non-positive duration yields an end before the start,
// which the pipeline treats as an empty plan.
func planEnd(start time.Time, months decimal.Decimal, avgDaysPerMonth decimal.Decimal) time.Time {
	if !months.IsPositive() {
		return dateutil.AddDays(start, -1)
	}
	whole := months.IntPart()
	frac := months.Sub(decimal.NewFromInt(whole))
	fracDays := int(frac.Mul(avgDaysPerMonth).Round(0).IntPart())

	end := dateutil.Normalize(start).AddDate(0, int(whole), 0)
	end = dateutil.AddDays(end, fracDays)
	return dateutil.AddDays(end, -1)
}

// Empty reports whether the candidate has no plan window at all.
func (ac *AllocationContext) Empty() bool {
	return ac.PlanEnd.Before(ac.PlanStart)
}

// RatesFor returns the daily rates of a single caregiver.
func (ac *AllocationContext) RatesFor(id domain.ParentID) domain.DailyRates {
	return ac.Rates[id.Index()]
}

// NetMonthlyFor returns the net monthly wage of a single caregiver.
func (ac *AllocationContext) NetMonthlyFor(id domain.ParentID) decimal.Decimal {
	return ac.NetMonthly[id.Index()]
}

// PreferredBenefitDays converts a caregiver's preferred months into benefit
// days at the plan's weekly cadence.
func (ac *AllocationContext) PreferredBenefitDays(id domain.ParentID) int {
	months := ac.Spec.PreferredMonths(id)
	days := months.Mul(ac.Rules.WeeksPerMonth).Mul(decimal.NewFromInt(int64(ac.DaysPerWeek)))
	return nonNegative(int(days.Round(0).IntPart()))
}

// PreferredCalendarDays converts a caregiver's preferred months into the
// calendar-day cap their placed leave should stay under.
func (ac *AllocationContext) PreferredCalendarDays(id domain.ParentID) int {
	months := ac.Spec.PreferredMonths(id)
	days := months.Mul(ac.Rules.AvgDaysPerMonth)
	return nonNegative(int(days.Round(0).IntPart()))
}

// StandardTaken returns the chronological standard-tier day counter for the
// ordering rule.
func (ac *AllocationContext) StandardTaken(id domain.ParentID) int {
	return ac.standardTaken[id.Index()]
}

// noteStandardTaken advances the chronological counter after a
// standard-pool draw.
func (ac *AllocationContext) noteStandardTaken(id domain.ParentID, days int) {
	if days > 0 && (id == domain.Parent1 || id == domain.Parent2) {
		ac.standardTaken[id.Index()] += days
	}
}

// minimumAllowed reports whether the caregiver has satisfied the
// chronological minimum-high-before-low rule, or cannot possibly satisfy it
// because the standard pools are drained on both sides.
func (ac *AllocationContext) minimumAllowed(id domain.ParentID) bool {
	threshold := ac.Rules.StandardBeforeMinimumFor(ac.Spec.Profile(id).HasCollectiveAgreement)
	if ac.StandardTaken(id) >= threshold {
		return true
	}
	return ac.Pools.Available(id, domain.TierStandard) == 0
}

// cutoffFor returns the caregiver's cutoff date, or nil. BothParents
// periods honor the earlier of the two cutoffs.
func (ac *AllocationContext) cutoffFor(id domain.ParentID) *time.Time {
	switch id {
	case domain.Parent1, domain.Parent2:
		return ac.Spec.Cutoff(id)
	case domain.BothParents:
		c1, c2 := ac.Spec.CutoffParent1, ac.Spec.CutoffParent2
		if c1 == nil {
			return c2
		}
		if c2 == nil {
			return c1
		}
		earlier := dateutil.MinDate(*c1, *c2)
		return &earlier
	default:
		return nil
	}
}

// lastAllowedDay clamps an intended period end for a caregiver against
// their cutoff and the plan boundary.
func (ac *AllocationContext) lastAllowedDay(id domain.ParentID, intendedEnd time.Time) time.Time {
	end := dateutil.MinDate(intendedEnd, ac.PlanEnd)
	if cutoff := ac.cutoffFor(id); cutoff != nil {
		end = dateutil.MinDate(end, dateutil.AddDays(*cutoff, -1))
	}
	return end
}

// startBlocked reports whether a caregiver may not start leave on the
// given day at all.
func (ac *AllocationContext) startBlocked(id domain.ParentID, start time.Time) bool {
	cutoff := ac.cutoffFor(id)
	return cutoff != nil && !start.Before(*cutoff)
}

// warnf records an advisory on the candidate.
func (ac *AllocationContext) warnf(format string, args ...interface{}) {
	ac.warnings = append(ac.warnings, fmt.Sprintf(format, args...))
}

// Warnings returns the advisories accumulated so far.
func (ac *AllocationContext) Warnings() []string {
	return ac.warnings
}

// spanForBenefitDays returns the calendar days needed to spread n benefit
// days at the given weekly cadence.
func spanForBenefitDays(n, daysPerWeek int) int {
	if n <= 0 {
		return 0
	}
	if daysPerWeek < 1 {
		daysPerWeek = 1
	}
	if daysPerWeek > 7 {
		daysPerWeek = 7
	}
	return (n*7 + daysPerWeek - 1) / daysPerWeek
}

// benefitDaysInSpan returns how many benefit days fit into a calendar span
// at the given weekly cadence.
func benefitDaysInSpan(span, daysPerWeek int) int {
	if span <= 0 {
		return 0
	}
	if daysPerWeek < 1 {
		daysPerWeek = 1
	}
	if daysPerWeek > 7 {
		daysPerWeek = 7
	}
	return span * daysPerWeek / 7
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
