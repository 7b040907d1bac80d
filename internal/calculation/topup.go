package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/pkg/dateutil"
)

// topUpOutcome records how one month fared against the floor.
type topUpOutcome struct {
	month    time.Time
	deficit  decimal.Decimal
	passes   int
	resolved bool
}

// ApplyTopUps lifts every plan month whose combined household income lands
// under the candidate floor. Months are repaired in calendar order; each
// gets a bounded fixed point that inserts or widens benefit periods for
// the month's owning caregiver and then re-measures real income, so a
// grant that moves salary or rounding the wrong way is corrected on the
// next pass instead of trusted. The loop stops at MaxTopUpPasses or as
// soon as a pass stops improving the month.
func ApplyTopUps(ac *AllocationContext, periods []domain.LeavePeriod) []domain.LeavePeriod {
	if ac.Empty() || !ac.Floor.IsPositive() {
		return periods
	}

	var failed []topUpOutcome
	for cursor := dateutil.MonthStart(ac.PlanStart); !cursor.After(ac.PlanEnd); cursor = dateutil.NextMonth(cursor) {
		outcome := topUpMonth(ac, &periods, cursor)
		if !outcome.resolved {
			failed = append(failed, outcome)
		}
	}

	if len(failed) > 0 {
		worst := failed[0]
		for _, o := range failed[1:] {
			if o.deficit.GreaterThan(worst.deficit) {
				worst = o
			}
		}
		ac.warnf("%d month(s) remain under the income target; worst is %s at %s kr short",
			len(failed), dateutil.MonthKey(worst.month), worst.deficit.StringFixed(2))
	}
	return periods
}

// topUpMonth runs the per-month fixed point. Each pass re-measures the
// month and tries a strict grant first, then one with the calendar budget
// relaxed, then an escalation of existing top-up periods. A pass that
// grants nothing, or fails to shrink the deficit, ends the month early so
// the loop can never spin.
func topUpMonth(ac *AllocationContext, periods *[]domain.LeavePeriod, monthStart time.Time) topUpOutcome {
	out := topUpOutcome{month: monthStart}
	prev := decimal.Zero

	for pass := 1; pass <= ac.Rules.MaxTopUpPasses; pass++ {
		out.passes = pass
		deficit := monthDeficit(ac, aggregateMonth(ac, *periods, monthStart))
		out.deficit = deficit
		if !deficit.GreaterThan(incomeTolerance) {
			out.resolved = true
			return out
		}
		if pass > 1 && !deficit.LessThan(prev) {
			break
		}
		prev = deficit

		owner := ac.ownerFor(monthStart, *periods)
		if owner == domain.ParentNone {
			ac.warnf("month %s: both caregivers are past their leave cutoff, cannot top up a %s kr shortfall",
				dateutil.MonthKey(monthStart), deficit.StringFixed(2))
			return out
		}

		granted := grantTopUp(ac, periods, monthStart, owner, deficit, false)
		if granted == 0 {
			granted = grantTopUp(ac, periods, monthStart, owner, deficit, true)
		}
		if granted == 0 {
			granted = escalateTopUps(ac, *periods, monthStart, owner)
		}
		if granted == 0 {
			break
		}
	}

	out.deficit = monthDeficit(ac, aggregateMonth(ac, *periods, monthStart))
	if !out.deficit.GreaterThan(incomeTolerance) {
		out.resolved = true
		return out
	}
	ac.warnf("month %s stays %s kr under the income target after %d pass(es); switch the owning caregiver or lower the floor",
		dateutil.MonthKey(monthStart), out.deficit.StringFixed(2), out.passes)
	return out
}

// ownerFor picks which caregiver absorbs extra days in a month and caches
// the answer so repeated passes stay deterministic. The caregiver already
// on leave most of the month keeps it; ties go to whoever has more of
// their preferred days left, then to the first caregiver. A caregiver
// whose cutoff blocks the whole month forfeits it.
func (ac *AllocationContext) ownerFor(monthStart time.Time, periods []domain.LeavePeriod) domain.ParentID {
	key := dateutil.MonthKey(monthStart)
	if id, ok := ac.monthOwner[key]; ok {
		return id
	}
	monthEnd := dateutil.MonthEnd(monthStart)

	d1 := leaveDaysInWindow(periods, domain.Parent1, monthStart, monthEnd)
	d2 := leaveDaysInWindow(periods, domain.Parent2, monthStart, monthEnd)
	var id domain.ParentID
	switch {
	case d1 > d2:
		id = domain.Parent1
	case d2 > d1:
		id = domain.Parent2
	default:
		left1 := ac.PreferredBenefitDays(domain.Parent1) - ac.Pools.Used(domain.Parent1).Total()
		left2 := ac.PreferredBenefitDays(domain.Parent2) - ac.Pools.Used(domain.Parent2).Total()
		if left2 > left1 {
			id = domain.Parent2
		} else {
			id = domain.Parent1
		}
	}

	if ac.startBlocked(id, monthStart) {
		other := id.Other()
		if ac.startBlocked(other, monthStart) {
			id = domain.ParentNone
		} else {
			id = other
		}
	}
	ac.monthOwner[key] = id
	return id
}

// topUpTier resolves which pool a caregiver's next top-up day comes from.
// Standard days (with the employer supplement when the strategy front-loads
// it) go first; minimum days only once the chronological gate opens or the
// standard pool is out of reach.
func (ac *AllocationContext) topUpTier(id domain.ParentID) domain.BenefitTier {
	if ac.Pools.Available(id, domain.TierStandard) > 0 {
		if ac.TopUpFirst && ac.Spec.Profile(id).HasCollectiveAgreement {
			return domain.TierEmployerTopUp
		}
		return domain.TierStandard
	}
	if ac.minimumAllowed(id) && ac.Pools.Available(id, domain.TierMinimum) > 0 {
		return domain.TierMinimum
	}
	return domain.TierNone
}

// grantTopUp inserts floating top-up periods for the owner inside the
// month, sized to close the deficit at the tier's net daily rate but
// clamped by free weekday slots, reachable pool days and, unless relaxed,
// the owner's preferred calendar budget. The owner's own pool is drawn
// before days are transferred from the other caregiver. Returns the
// benefit days actually funded.
func grantTopUp(ac *AllocationContext, periods *[]domain.LeavePeriod, monthStart time.Time, owner domain.ParentID, deficit decimal.Decimal, relaxCalendar bool) int {
	tier := ac.topUpTier(owner)
	if tier == domain.TierNone {
		return 0
	}
	gain := ac.RatesFor(owner).ForTier(tier)
	if !gain.IsPositive() {
		return 0
	}

	monthEnd := dateutil.MonthEnd(monthStart)
	free := 7 - weeklyLoad(*periods, owner, monthStart, monthEnd)
	if free <= 0 {
		return 0
	}
	capacity := int(decimal.NewFromInt(int64(free)).Mul(ac.Rules.WeeksPerMonth).Round(0).IntPart())

	want := int(deficit.Div(gain).Ceil().IntPart())
	n := min(want, capacity, ac.Pools.Available(owner, tier))
	if !relaxCalendar {
		budget := nonNegative(ac.PreferredCalendarDays(owner) - leaveDaysInWindow(*periods, owner, ac.PlanStart, ac.PlanEnd))
		n = min(n, benefitDaysInSpan(budget, free))
	}
	if n <= 0 {
		return 0
	}

	granted := 0
	start := floatStart(ac, *periods, owner, monthStart, monthEnd)

	ownAvail := ac.Pools.Remaining(owner).Standard
	if tier == domain.TierMinimum {
		ownAvail = ac.Pools.Remaining(owner).Minimum
	}
	if ownWant := min(n, ownAvail); ownWant > 0 {
		if p := placeFloat(ac, owner, tier, ownWant, free, start, monthEnd, domain.ParentNone); p != nil {
			fundFloat(ac, p, domain.ParentNone)
			if p.BenefitDays > 0 {
				*periods = append(*periods, *p)
				granted += p.BenefitDays
				start = dateutil.AddDays(p.End, 1)
			}
		}
	}

	donor := owner.Other()
	if rest := min(n-granted, ac.Pools.Transferable(donor, tier)); rest > 0 {
		if p := placeFloat(ac, owner, tier, rest, free, start, monthEnd, donor); p != nil {
			fundFloat(ac, p, donor)
			if p.BenefitDays > 0 {
				*periods = append(*periods, *p)
				granted += p.BenefitDays
			}
		}
	}
	return granted
}

// floatStart picks where a new top-up float lands in the month: on top of
// the owner's earliest leave already placed there, where the extra days
// ride the same span in the free weekday slots, or at the first plan day
// of the month when the owner has no leave to overlay.
func floatStart(ac *AllocationContext, periods []domain.LeavePeriod, owner domain.ParentID, monthStart, monthEnd time.Time) time.Time {
	start := dateutil.MaxDate(monthStart, ac.PlanStart)
	best := time.Time{}
	for _, p := range periods {
		if p.Tier == domain.TierNone || !p.Covers(owner) {
			continue
		}
		if dateutil.OverlapDays(p.Start, p.End, monthStart, monthEnd) == 0 {
			continue
		}
		candidate := dateutil.MaxDate(p.Start, start)
		if best.IsZero() || candidate.Before(best) {
			best = candidate
		}
	}
	if best.IsZero() {
		return start
	}
	return best
}

// placeFloat dates a top-up request inside the month, marking it as still
// needing a final slot from the sequencer. Pools are not charged here.
func placeFloat(ac *AllocationContext, owner domain.ParentID, tier domain.BenefitTier, days, daysPerWeek int, start, monthEnd time.Time, transferredFrom domain.ParentID) *domain.LeavePeriod {
	limit := dateutil.MinDate(monthEnd, ac.PlanEnd)
	if start.After(limit) {
		return nil
	}
	days = min(days, benefitDaysInSpan(dateutil.DaysInclusive(start, limit), daysPerWeek))
	p := buildPeriod(ac, periodRequest{
		parent:          owner,
		tier:            tier,
		benefitDays:     days,
		daysPerWeek:     daysPerWeek,
		origin:          domain.OriginTopUp,
		transferredFrom: transferredFrom,
	}, start)
	if p == nil {
		return nil
	}
	p.NeedsPlacement = true
	return p
}

// fundFloat charges the pools for a dated float, shrinking it if the draw
// comes back short. A zero-funded float is left for the caller to drop.
func fundFloat(ac *AllocationContext, p *domain.LeavePeriod, donor domain.ParentID) {
	var taken int
	if donor == domain.ParentNone {
		taken = ac.Pools.Take(p.Parent, p.Tier, p.BenefitDays)
	} else {
		taken = ac.Pools.TakeTransferred(donor, p.Tier, p.BenefitDays)
	}
	if taken < p.BenefitDays {
		p.BenefitDays = taken
		if taken > 0 {
			p.End = dateutil.AddDays(p.Start, spanForBenefitDays(taken, p.DaysPerWeek)-1)
		}
	}
	if p.Tier.DrawsStandardPool() {
		ac.noteStandardTaken(p.Parent, p.BenefitDays)
	}
}

// escalateTopUps widens the owner's existing top-up periods in the month
// instead of adding new ones, raising their weekly cadence while weekday
// slots and pool days remain. Transferred periods refill from their donor
// so provenance stays honest.
func escalateTopUps(ac *AllocationContext, periods []domain.LeavePeriod, monthStart time.Time, owner domain.ParentID) int {
	monthEnd := dateutil.MonthEnd(monthStart)
	granted := 0

	for i := range periods {
		p := &periods[i]
		if p.Origin != domain.OriginTopUp || p.Parent != owner {
			continue
		}
		if dateutil.OverlapDays(p.Start, p.End, monthStart, monthEnd) == 0 {
			continue
		}
		headroom := 7 - weeklyLoad(periods, owner, p.Start, p.End)
		if headroom <= 0 {
			continue
		}
		span := p.CalendarDays()
		raised := min(7, p.DaysPerWeek+headroom)
		extra := benefitDaysInSpan(span, raised) - p.BenefitDays
		if extra <= 0 {
			continue
		}

		var taken int
		if p.TransferredFrom == domain.ParentNone {
			taken = ac.Pools.Take(owner, p.Tier, extra)
		} else {
			taken = ac.Pools.TakeTransferred(p.TransferredFrom, p.Tier, extra)
		}
		if taken == 0 {
			continue
		}
		if p.Tier.DrawsStandardPool() {
			ac.noteStandardTaken(owner, taken)
		}

		p.BenefitDays += taken
		p.DaysPerWeek = min(7, (p.BenefitDays*7+span-1)/span)
		priceOut(ac, p)
		granted += taken
	}
	return granted
}

// weeklyLoad reports the caregiver's highest combined weekly cadence on
// any single day of the window. Sequential periods never stack; only true
// overlays do, which keeps grant capacity and anchoring in agreement
// about how full a week is.
func weeklyLoad(periods []domain.LeavePeriod, id domain.ParentID, winStart, winEnd time.Time) int {
	load := 0
	for day := winStart; !day.After(winEnd); day = dateutil.AddDays(day, 1) {
		sum := 0
		for _, p := range periods {
			if p.Tier == domain.TierNone || !p.Covers(id) {
				continue
			}
			if p.Contains(day) {
				sum += p.DaysPerWeek
			}
		}
		load = max(load, sum)
	}
	return load
}
