package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/pkg/dateutil"
)

// SequenceTimeline assigns every period a final calendar slot. Top-up
// floats that fit the weekday slots of the spans they were provisionally
// dated into stay anchored there; the rest queue up and fill gaps in the
// household spine as a cursor walks from plan start to plan end. Periods
// pushed across a caregiver's cutoff or the plan boundary are trimmed or
// dropped with their unused days refunded to the pools. Whatever span
// remains after both lists are exhausted is covered by filler periods for
// whichever caregiver is furthest under their day-share target, then by a
// working filler, so the timeline comes back gapless and ordered.
func SequenceTimeline(ac *AllocationContext, periods []domain.LeavePeriod) []domain.LeavePeriod {
	if ac.Empty() {
		return nil
	}

	fixed, floats := splitForSequencing(periods)

	var out []domain.LeavePeriod
	cursor := ac.PlanStart
	for _, f := range fixed {
		if f.NeedsPlacement {
			// Anchored overlay: rides on top of the spine in its own weekday
			// slots and never advances the cursor or displaces base periods.
			if trimToAllowed(ac, &f) {
				out = append(out, f)
			}
			continue
		}
		if f.Start.After(cursor) {
			out, floats, cursor = fillGap(ac, out, floats, cursor, dateutil.AddDays(f.Start, -1))
		}
		if f.Start.Before(cursor) {
			// A spine period behind the cursor moves forward keeping its span.
			span := f.CalendarDays()
			f.Start = cursor
			f.End = dateutil.AddDays(cursor, span-1)
		}
		if !trimToAllowed(ac, &f) {
			continue
		}
		out = append(out, f)
		if f.End.After(dateutil.AddDays(cursor, -1)) {
			cursor = dateutil.AddDays(f.End, 1)
		}
	}

	if !cursor.After(ac.PlanEnd) {
		out, floats, cursor = drainFloats(ac, out, floats, cursor, ac.PlanEnd)
	}
	out, cursor = synthesizeTail(ac, out, cursor)
	if !cursor.After(ac.PlanEnd) {
		out = append(out, workingFiller(ac, cursor, ac.PlanEnd))
	}

	for _, f := range floats {
		refundPeriod(ac, f, f.BenefitDays)
		ac.warnf("could not place %d %s day(s) for %s anywhere in the plan; days returned to the pool",
			f.BenefitDays, f.Tier, ac.Spec.Profile(f.Parent).Name)
	}

	for i := range out {
		out[i].NeedsPlacement = false
	}
	return MergePeriods(sortPeriods(out))
}

// splitForSequencing separates dated periods from floats. A float whose
// provisional span only collides with same-caregiver periods, and whose
// combined weekly cadence stays within seven days, is anchored in place;
// it keeps its flag through the walk so the cursor logic knows not to
// shift it.
func splitForSequencing(periods []domain.LeavePeriod) (fixed, floats []domain.LeavePeriod) {
	for _, p := range periods {
		if !p.NeedsPlacement {
			fixed = append(fixed, p)
		}
	}
	pending := make([]domain.LeavePeriod, 0)
	for _, p := range periods {
		if !p.NeedsPlacement {
			continue
		}
		if overlayFits(fixed, p) {
			fixed = append(fixed, p)
		} else {
			pending = append(pending, p)
		}
	}
	fixed = sortPeriods(fixed)
	floats = sortPeriods(pending)
	for i := range floats {
		floats[i].NeedsPlacement = false
	}
	return fixed, floats
}

// overlayFits reports whether a float can stay at its provisional dates:
// it may only overlap leave that already covers its own caregiver, and
// the combined weekday cadence on its busiest day must stay within seven.
func overlayFits(placed []domain.LeavePeriod, f domain.LeavePeriod) bool {
	for _, q := range placed {
		if q.Tier == domain.TierNone || dateutil.OverlapDays(q.Start, q.End, f.Start, f.End) == 0 {
			continue
		}
		if q.Parent != f.Parent && q.Parent != domain.BothParents {
			return false
		}
	}
	all := append(append([]domain.LeavePeriod(nil), placed...), f)
	return weeklyLoad(all, f.Parent, f.Start, f.End) <= 7
}

// fillGap covers [gapStart, gapEnd] from the float queue and closes any
// remainder with a working filler so the spine stays gapless up to the
// next fixed period.
func fillGap(ac *AllocationContext, out, floats []domain.LeavePeriod, gapStart, gapEnd time.Time) ([]domain.LeavePeriod, []domain.LeavePeriod, time.Time) {
	out, floats, cursor := drainFloats(ac, out, floats, gapStart, gapEnd)
	if !cursor.After(gapEnd) {
		out = append(out, workingFiller(ac, cursor, gapEnd))
		cursor = dateutil.AddDays(gapEnd, 1)
	}
	return out, floats, cursor
}

// drainFloats places queued floats from gapStart forward, splitting any
// float that does not fit whole, until the gap closes or the queue runs
// out. Floats whose caregiver is past their cutoff are refunded on the
// spot. Returns the cursor where placement stopped.
func drainFloats(ac *AllocationContext, out, floats []domain.LeavePeriod, gapStart, gapEnd time.Time) ([]domain.LeavePeriod, []domain.LeavePeriod, time.Time) {
	cursor := gapStart
	for !cursor.After(gapEnd) && len(floats) > 0 {
		f := floats[0]

		if ac.startBlocked(f.Parent, cursor) {
			// The cutoff has passed for this caregiver; it will have passed
			// at every later cursor position too.
			refundPeriod(ac, f, f.BenefitDays)
			ac.warnf("dropped %d %s day(s) for %s: leave window closed on %s",
				f.BenefitDays, f.Tier, ac.Spec.Profile(f.Parent).Name, ac.cutoffFor(f.Parent).Format("2006-01-02"))
			floats = floats[1:]
			continue
		}

		days := min(f.BenefitDays, benefitDaysInSpan(dateutil.DaysInclusive(cursor, gapEnd), f.DaysPerWeek))
		if days > 0 {
			end := ac.lastAllowedDay(f.Parent, dateutil.AddDays(cursor, spanForBenefitDays(days, f.DaysPerWeek)-1))
			days = min(days, benefitDaysInSpan(dateutil.DaysInclusive(cursor, end), f.DaysPerWeek))
		}
		if days <= 0 {
			break
		}

		piece := f
		piece.Start = cursor
		piece.BenefitDays = days
		piece.End = dateutil.AddDays(cursor, spanForBenefitDays(days, f.DaysPerWeek)-1)
		out = append(out, piece)
		cursor = dateutil.AddDays(piece.End, 1)

		if leftover := f.BenefitDays - days; leftover > 0 {
			floats[0].BenefitDays = leftover
		} else {
			floats = floats[1:]
		}
	}
	return out, floats, cursor
}

// synthesizeTail extends the timeline toward the plan boundary with filler
// draws for whichever caregiver sits furthest under their proportional
// day-share target, one month-sized chunk at a time so the balance is
// revisited as the gaps close. Draws come from each caregiver's own pool,
// standard days before minimum days.
func synthesizeTail(ac *AllocationContext, out []domain.LeavePeriod, cursor time.Time) ([]domain.LeavePeriod, time.Time) {
	chunk := int(ac.Rules.WeeksPerMonth.Mul(decimal.NewFromInt(int64(ac.DaysPerWeek))).Round(0).IntPart())
	if chunk <= 0 {
		return out, cursor
	}
	targets := [2]int{
		dayShareTarget(ac, domain.Parent1),
		dayShareTarget(ac, domain.Parent2),
	}

	for !cursor.After(ac.PlanEnd) {
		gap1 := targets[0] - ac.Pools.Used(domain.Parent1).Total()
		gap2 := targets[1] - ac.Pools.Used(domain.Parent2).Total()
		if gap1 <= 0 && gap2 <= 0 {
			break
		}
		id := domain.Parent1
		if gap2 > gap1 {
			id = domain.Parent2
		}

		p := drawFiller(ac, id, min(max(gap1, gap2), chunk), cursor)
		if p == nil {
			// The favored caregiver cannot draw here; give the other one try
			// before conceding the tail.
			p = drawFiller(ac, id.Other(), chunk, cursor)
		}
		if p == nil {
			break
		}
		out = append(out, *p)
		cursor = dateutil.AddDays(p.End, 1)
	}
	return out, cursor
}

// dayShareTarget is the caregiver's share of the whole plan window's
// benefit-day capacity, split by the preferred-month ratio (evenly when no
// preference was given).
func dayShareTarget(ac *AllocationContext, id domain.ParentID) int {
	p1 := ac.Spec.PreferredMonths(domain.Parent1)
	p2 := ac.Spec.PreferredMonths(domain.Parent2)
	share := decimal.NewFromFloat(0.5)
	if sum := p1.Add(p2); sum.IsPositive() {
		share = ac.Spec.PreferredMonths(id).Div(sum)
	}
	capacity := ac.Spec.TotalMonths.Mul(ac.Rules.WeeksPerMonth).Mul(decimal.NewFromInt(int64(ac.DaysPerWeek)))
	return int(capacity.Mul(share).Round(0).IntPart())
}

// drawFiller synthesizes one tail draw at the spec cadence from the
// caregiver's own pool, standard tier while it lasts, minimum tier once
// the chronological gate allows it.
func drawFiller(ac *AllocationContext, id domain.ParentID, days int, start time.Time) *domain.LeavePeriod {
	if days <= 0 || ac.startBlocked(id, start) {
		return nil
	}
	tier := domain.TierNone
	switch {
	case ac.Pools.Remaining(id).Standard > 0:
		tier = domain.TierStandard
	case ac.minimumAllowed(id) && ac.Pools.Remaining(id).Minimum > 0:
		tier = domain.TierMinimum
	default:
		return nil
	}

	p := buildPeriod(ac, periodRequest{
		parent:      id,
		tier:        tier,
		benefitDays: days,
		daysPerWeek: ac.DaysPerWeek,
		origin:      domain.OriginFiller,
	}, start)
	if p == nil {
		return nil
	}
	taken := ac.Pools.Take(id, tier, p.BenefitDays)
	if taken < p.BenefitDays {
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

// trimToAllowed clamps a dated period to its caregiver's cutoff and the
// plan boundary, refunding every day that no longer fits. Reports false
// when nothing of the period survives.
func trimToAllowed(ac *AllocationContext, p *domain.LeavePeriod) bool {
	if p.Start.After(ac.PlanEnd) || ac.startBlocked(p.Parent, p.Start) {
		refundPeriod(ac, *p, p.BenefitDays)
		return false
	}
	end := ac.lastAllowedDay(p.Parent, p.End)
	if !end.Before(p.End) {
		return true
	}
	keep := benefitDaysInSpan(dateutil.DaysInclusive(p.Start, end), p.DaysPerWeek)
	keep = min(keep, p.BenefitDays)
	refundPeriod(ac, *p, p.BenefitDays-keep)
	if keep == 0 && p.Tier != domain.TierNone {
		return false
	}
	p.BenefitDays = keep
	p.End = end
	return true
}

// refundPeriod returns benefit days to the pool they were drawn from:
// the donor's pool for transferred days, both pools for a shared period,
// the caregiver's own pool otherwise.
func refundPeriod(ac *AllocationContext, p domain.LeavePeriod, days int) {
	if days <= 0 || p.Tier == domain.TierNone {
		return
	}
	switch {
	case p.Parent == domain.BothParents:
		ac.Pools.Return(domain.Parent1, p.Tier, days)
		ac.Pools.Return(domain.Parent2, p.Tier, days)
	case p.TransferredFrom != domain.ParentNone:
		ac.Pools.Return(p.TransferredFrom, p.Tier, days)
	default:
		ac.Pools.Return(p.Parent, p.Tier, days)
	}
}

// workingFiller covers a span where both caregivers are back at work.
func workingFiller(ac *AllocationContext, start, end time.Time) domain.LeavePeriod {
	p := domain.LeavePeriod{
		Parent: domain.ParentNone,
		Start:  start,
		End:    end,
		Tier:   domain.TierNone,
		Origin: domain.OriginFiller,
	}
	priceOut(ac, &p)
	return p
}
