package calculation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/pkg/dateutil"
)

// incomeTolerance is the öre slack used when comparing month income
// against the floor, absorbing the rounding of per-rate figures.
var incomeTolerance = decimal.NewFromFloat(0.01)

// AggregateMonths reduces a period list into one breakdown per calendar
// month the plan overlaps: benefit income, employer top-up and the working
// caregiver's wage, prorated by the fraction of the month each period
// covers, plus benefit-day counts by tier. The result feeds both reporting
// and the top-up engine's deficit detection.
func AggregateMonths(ac *AllocationContext, periods []domain.LeavePeriod) []domain.MonthBreakdown {
	if ac.Empty() {
		return nil
	}

	var months []domain.MonthBreakdown
	for cursor := dateutil.MonthStart(ac.PlanStart); !cursor.After(ac.PlanEnd); cursor = dateutil.NextMonth(cursor) {
		months = append(months, aggregateMonth(ac, periods, cursor))
	}
	return months
}

func aggregateMonth(ac *AllocationContext, periods []domain.LeavePeriod, monthStart time.Time) domain.MonthBreakdown {
	monthEnd := dateutil.MonthEnd(monthStart)
	m := domain.MonthBreakdown{
		Month:       monthStart,
		MonthDays:   dateutil.DaysInMonth(monthStart),
		CoveredDays: dateutil.OverlapDays(monthStart, monthEnd, ac.PlanStart, ac.PlanEnd),
	}

	benefit := decimal.Zero
	topUp := decimal.Zero
	stdDays := decimal.Zero
	minDays := decimal.Zero
	topUpDays := decimal.Zero

	for _, p := range periods {
		overlap := dateutil.OverlapDays(p.Start, p.End, monthStart, monthEnd)
		if overlap == 0 || p.Tier == domain.TierNone {
			continue
		}
		span := p.CalendarDays()
		if span == 0 || p.BenefitDays == 0 {
			continue
		}
		frac := decimal.NewFromInt(int64(overlap)).Div(decimal.NewFromInt(int64(span)))
		daysHere := decimal.NewFromInt(int64(p.BenefitDays)).Mul(frac)

		benefit = benefit.Add(p.DailyBenefit.Mul(daysHere))
		topUp = topUp.Add(p.DailyTopUp.Mul(daysHere))

		poolDays := daysHere
		if p.Parent == domain.BothParents {
			poolDays = poolDays.Mul(decimal.NewFromInt(2))
		}
		switch p.Tier {
		case domain.TierEmployerTopUp:
			stdDays = stdDays.Add(poolDays)
			topUpDays = topUpDays.Add(poolDays)
		case domain.TierStandard:
			stdDays = stdDays.Add(poolDays)
		case domain.TierMinimum:
			minDays = minDays.Add(poolDays)
		}
	}

	salary := decimal.Zero
	for _, id := range []domain.ParentID{domain.Parent1, domain.Parent2} {
		off := leaveDaysInWindow(periods, id, monthStart, monthEnd)
		if id == domain.Parent1 {
			m.DaysParent1 = off
		} else {
			m.DaysParent2 = off
		}
		workDays := m.CoveredDays - off
		if workDays <= 0 {
			continue
		}
		share := decimal.NewFromInt(int64(workDays)).Div(decimal.NewFromInt(int64(m.MonthDays)))
		salary = salary.Add(ac.NetMonthlyFor(id).Mul(share))
	}

	m.BenefitIncome = benefit.Round(2)
	m.TopUpIncome = topUp.Round(2)
	m.SalaryIncome = salary.Round(2)
	m.TotalIncome = m.BenefitIncome.Add(m.TopUpIncome).Add(m.SalaryIncome)

	m.StandardDays = int(stdDays.Round(0).IntPart())
	m.MinimumDays = int(minDays.Round(0).IntPart())
	m.TopUpDays = int(topUpDays.Round(0).IntPart())

	if ac.Floor.IsPositive() {
		m.BelowFloor = monthDeficit(ac, m).GreaterThan(incomeTolerance)
	}
	return m
}

// monthDeficit returns how far the month's income falls short of the
// candidate floor scaled by plan coverage. Non-positive means satisfied.
func monthDeficit(ac *AllocationContext, m domain.MonthBreakdown) decimal.Decimal {
	required := ac.Floor.Mul(m.CoverageFraction())
	return required.Sub(m.TotalIncome)
}

// leaveDaysInWindow counts the calendar days within [winStart, winEnd] on
// which the caregiver is on leave, as the union of their period spans so
// cadence overlays never double-count a day.
func leaveDaysInWindow(periods []domain.LeavePeriod, id domain.ParentID, winStart, winEnd time.Time) int {
	type interval struct{ start, end time.Time }
	var spans []interval
	for _, p := range periods {
		if p.Tier == domain.TierNone || !p.Covers(id) {
			continue
		}
		s := dateutil.MaxDate(p.Start, winStart)
		e := dateutil.MinDate(p.End, winEnd)
		if e.Before(s) {
			continue
		}
		spans = append(spans, interval{s, e})
	}
	if len(spans) == 0 {
		return 0
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start.Before(spans[j].start) })

	total := 0
	current := spans[0]
	for _, sp := range spans[1:] {
		if !sp.start.After(dateutil.AddDays(current.end, 1)) {
			current.end = dateutil.MaxDate(current.end, sp.end)
			continue
		}
		total += dateutil.DaysInclusive(current.start, current.end)
		current = sp
	}
	total += dateutil.DaysInclusive(current.start, current.end)
	return total
}
