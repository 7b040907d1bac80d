package calculation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/pkg/dateutil"
)

// SynthesizeBasePlan turns the preferred split into the dated base plan:
// the shared initial window at the plan start, an optional simultaneous
// window, then each caregiver's preferred leave in caregiver order. All
// periods come out dated, non-overlapping and merged.
func SynthesizeBasePlan(ac *AllocationContext) []domain.LeavePeriod {
	if ac.Empty() {
		return nil
	}

	var periods []domain.LeavePeriod

	if shared := sharedInitialPeriod(ac); shared != nil {
		periods = append(periods, *shared)
	}
	if sim := simultaneousPeriod(ac, periods); sim != nil {
		periods = append(periods, *sim)
	}

	periods = append(periods, plannedPeriodsFor(ac, domain.Parent1, periods)...)
	periods = append(periods, plannedPeriodsFor(ac, domain.Parent2, periods)...)

	return MergePeriods(sortPeriods(periods))
}

// sharedInitialPeriod builds the fixed dual-leave window at the plan start:
// both caregivers off together for the configured number of working days,
// charged to both standard pools simultaneously.
func sharedInitialPeriod(ac *AllocationContext) *domain.LeavePeriod {
	const workingDaysPerWeek = 5

	want := ac.Rules.DoubleDays
	want = min(want, ac.Pools.Remaining(domain.Parent1).Standard)
	want = min(want, ac.Pools.Remaining(domain.Parent2).Standard)
	if want <= 0 {
		return nil
	}
	if ac.startBlocked(domain.BothParents, ac.PlanStart) {
		return nil
	}

	p := buildPeriod(ac, periodRequest{
		parent:      domain.BothParents,
		tier:        domain.TierStandard,
		benefitDays: want,
		daysPerWeek: workingDaysPerWeek,
		origin:      domain.OriginSharedInitial,
	}, ac.PlanStart)
	if p == nil {
		return nil
	}

	ac.Pools.TakeStandard(domain.Parent1, p.BenefitDays)
	ac.Pools.TakeStandard(domain.Parent2, p.BenefitDays)
	ac.noteStandardTaken(domain.Parent1, p.BenefitDays)
	ac.noteStandardTaken(domain.Parent2, p.BenefitDays)
	return p
}

// simultaneousPeriod extends the shared window when the spec asks for
// additional months with both caregivers off together.
func simultaneousPeriod(ac *AllocationContext, placed []domain.LeavePeriod) *domain.LeavePeriod {
	if !ac.Spec.SimultaneousMonths.IsPositive() {
		return nil
	}

	want := ac.Spec.SimultaneousMonths.
		Mul(ac.Rules.WeeksPerMonth).
		Mul(decimal.NewFromInt(int64(ac.DaysPerWeek)))
	n := nonNegative(int(want.Round(0).IntPart()))
	n = min(n, ac.Pools.Remaining(domain.Parent1).Standard)
	n = min(n, ac.Pools.Remaining(domain.Parent2).Standard)
	if n <= 0 {
		return nil
	}

	start := nextFreeDay(ac, placed)
	if ac.startBlocked(domain.BothParents, start) {
		return nil
	}

	p := buildPeriod(ac, periodRequest{
		parent:      domain.BothParents,
		tier:        domain.TierStandard,
		benefitDays: n,
		daysPerWeek: ac.DaysPerWeek,
		origin:      domain.OriginPlanned,
	}, start)
	if p == nil {
		return nil
	}

	ac.Pools.TakeStandard(domain.Parent1, p.BenefitDays)
	ac.Pools.TakeStandard(domain.Parent2, p.BenefitDays)
	ac.noteStandardTaken(domain.Parent1, p.BenefitDays)
	ac.noteStandardTaken(domain.Parent2, p.BenefitDays)
	return p
}

// plannedPeriodsFor converts one caregiver's preferred months into dated
// periods, standard tier first and minimum tier only once the
// chronological threshold is satisfied. Draws stop when the caregiver's
// own pool runs dry; transfers are a top-up device, not a planning one.
func plannedPeriodsFor(ac *AllocationContext, id domain.ParentID, placed []domain.LeavePeriod) []domain.LeavePeriod {
	want := ac.PreferredBenefitDays(id)
	if want <= 0 {
		return nil
	}

	start := nextFreeDay(ac, placed)
	var out []domain.LeavePeriod

	stdTier := domain.TierStandard
	if ac.TopUpFirst && ac.Spec.Profile(id).HasCollectiveAgreement {
		stdTier = domain.TierEmployerTopUp
	}

	nStd := min(want, ac.Pools.Remaining(id).Standard)
	if p := placeDraw(ac, id, stdTier, nStd, start); p != nil {
		out = append(out, *p)
		want -= p.BenefitDays
		start = dateutil.AddDays(p.End, 1)
	}

	if want > 0 && ac.minimumAllowed(id) {
		nMin := min(want, ac.Pools.Remaining(id).Minimum)
		if p := placeDraw(ac, id, domain.TierMinimum, nMin, start); p != nil {
			out = append(out, *p)
		}
	}

	return out
}

// placeDraw dates a single-tier draw request, clamps it against the
// caregiver's cutoff and the plan boundary, and charges the pool for
// exactly the days that fit.
func placeDraw(ac *AllocationContext, id domain.ParentID, tier domain.BenefitTier, benefitDays int, start time.Time) *domain.LeavePeriod {
	if benefitDays <= 0 {
		return nil
	}
	p := buildPeriod(ac, periodRequest{
		parent:      id,
		tier:        tier,
		benefitDays: benefitDays,
		daysPerWeek: ac.DaysPerWeek,
		origin:      domain.OriginPlanned,
	}, start)
	if p == nil {
		return nil
	}

	taken := ac.Pools.Take(id, tier, p.BenefitDays)
	if taken < p.BenefitDays {
		// Pool ran dry below the dated size; shrink the period to what was
		// actually funded.
		p.BenefitDays = taken
		if taken == 0 {
			return nil
		}
		p.End = dateutil.AddDays(p.Start, spanForBenefitDays(taken, p.DaysPerWeek)-1)
	}
	if tier.DrawsStandardPool() {
		ac.noteStandardTaken(id, p.BenefitDays)
	}
	return p
}

// periodRequest is the synthesizer's input: an undated demand for benefit
// days at one tier and cadence.
type periodRequest struct {
	parent          domain.ParentID
	tier            domain.BenefitTier
	benefitDays     int
	daysPerWeek     int
	origin          domain.PeriodOrigin
	transferredFrom domain.ParentID
}

// buildPeriod dates a request at the given start, trimming the span to the
// caregiver's cutoff and the plan end. Returns nil when nothing fits. The
// caller is responsible for charging the pools.
func buildPeriod(ac *AllocationContext, req periodRequest, start time.Time) *domain.LeavePeriod {
	if req.benefitDays <= 0 {
		return nil
	}
	start = dateutil.Normalize(start)
	if start.After(ac.PlanEnd) || ac.startBlocked(req.parent, start) {
		return nil
	}

	intendedEnd := dateutil.AddDays(start, spanForBenefitDays(req.benefitDays, req.daysPerWeek)-1)
	end := ac.lastAllowedDay(req.parent, intendedEnd)
	if end.Before(start) {
		return nil
	}

	days := min(req.benefitDays, benefitDaysInSpan(dateutil.DaysInclusive(start, end), req.daysPerWeek))
	if days <= 0 {
		return nil
	}
	end = dateutil.AddDays(start, spanForBenefitDays(days, req.daysPerWeek)-1)

	p := domain.LeavePeriod{
		Parent:          req.parent,
		Start:           start,
		End:             end,
		Tier:            req.tier,
		BenefitDays:     days,
		DaysPerWeek:     req.daysPerWeek,
		Origin:          req.origin,
		TransferredFrom: req.transferredFrom,
	}
	priceOut(ac, &p)
	return &p
}

// priceOut fills the period's daily money figures from the candidate's
// rates: per-benefit-day benefit and top-up, and the combined household
// income per calendar day over the span.
func priceOut(ac *AllocationContext, p *domain.LeavePeriod) {
	cadence := decimal.NewFromInt(int64(p.DaysPerWeek)).Div(decimal.NewFromInt(7))
	dayPerYear := ac.Rules.DaysPerYear

	switch p.Parent {
	case domain.BothParents:
		r1, r2 := ac.RatesFor(domain.Parent1), ac.RatesFor(domain.Parent2)
		p.DailyBenefit = r1.Standard.Add(r2.Standard)
		if ac.TopUpFirst {
			p.DailyTopUp = topUpIfAgreed(ac, domain.Parent1).Add(topUpIfAgreed(ac, domain.Parent2))
		}
		p.HouseholdDaily = p.DailyBenefit.Add(p.DailyTopUp).Mul(cadence).Round(2)

	case domain.Parent1, domain.Parent2:
		rates := ac.RatesFor(p.Parent)
		switch p.Tier {
		case domain.TierEmployerTopUp:
			p.DailyBenefit = rates.Standard
			p.DailyTopUp = rates.EmployerTopUp
		case domain.TierStandard:
			p.DailyBenefit = rates.Standard
		case domain.TierMinimum:
			p.DailyBenefit = rates.Minimum
		}
		otherWage := ac.NetMonthlyFor(p.Parent.Other()).Mul(decimal.NewFromInt(12)).Div(dayPerYear)
		p.HouseholdDaily = p.DailyBenefit.Add(p.DailyTopUp).Mul(cadence).Add(otherWage).Round(2)

	default:
		// Working filler: both wages, no benefit.
		wages := ac.NetMonthlyFor(domain.Parent1).Add(ac.NetMonthlyFor(domain.Parent2))
		p.HouseholdDaily = wages.Mul(decimal.NewFromInt(12)).Div(dayPerYear).Round(2)
	}
}

func topUpIfAgreed(ac *AllocationContext, id domain.ParentID) decimal.Decimal {
	if ac.Spec.Profile(id).HasCollectiveAgreement {
		return ac.RatesFor(id).EmployerTopUp
	}
	return decimal.Zero
}

// nextFreeDay finds the earliest start on the household timeline: no
// earlier than the plan start or the end of any leave already placed for
// either caregiver. Keeping the base plan sequential here is what makes
// the top-up engine's month projections honest before sequencing runs.
func nextFreeDay(ac *AllocationContext, placed []domain.LeavePeriod) time.Time {
	start := ac.PlanStart
	for _, p := range placed {
		if p.Tier == domain.TierNone {
			continue
		}
		next := dateutil.AddDays(p.End, 1)
		start = dateutil.MaxDate(start, next)
	}
	return start
}

// sortPeriods orders periods chronologically with a stable caregiver
// tie-break so identical inputs always produce identical output.
func sortPeriods(periods []domain.LeavePeriod) []domain.LeavePeriod {
	sort.SliceStable(periods, func(i, j int) bool {
		if !periods[i].Start.Equal(periods[j].Start) {
			return periods[i].Start.Before(periods[j].Start)
		}
		if periods[i].Parent != periods[j].Parent {
			return periods[i].Parent < periods[j].Parent
		}
		return periods[i].Tier > periods[j].Tier
	})
	return periods
}

// MergePeriods folds adjacent periods with identical caregiver, tier and
// cadence whose household income agrees within öre tolerance. Input must
// be sorted.
func MergePeriods(periods []domain.LeavePeriod) []domain.LeavePeriod {
	if len(periods) < 2 {
		return periods
	}
	out := periods[:1]
	for _, p := range periods[1:] {
		last := &out[len(out)-1]
		if last.Mergeable(p) && last.Origin == p.Origin && last.TransferredFrom == p.TransferredFrom {
			last.End = p.End
			last.BenefitDays += p.BenefitDays
			continue
		}
		out = append(out, p)
	}
	return out
}
