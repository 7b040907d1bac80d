package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/pkg/dateutil"
)

func monthByKey(t *testing.T, months []domain.MonthBreakdown, key string) domain.MonthBreakdown {
	t.Helper()
	for _, m := range months {
		if m.Key() == key {
			return m
		}
	}
	t.Fatalf("no breakdown for %s", key)
	return domain.MonthBreakdown{}
}

func TestAggregateMonthsScenarioBasePlan(t *testing.T) {
	ac := scenarioContext(decimal.NewFromInt(45000), false)
	months := AggregateMonths(ac, SynthesizeBasePlan(ac))
	require.Len(t, months, 15, "January 2026 through March 2027")

	// February 2026: caregiver 1 on leave all month, 20 of their 215 benefit
	// days land here, caregiver 2 draws a full wage.
	feb := monthByKey(t, months, "2026-02")
	assert.Equal(t, 28, feb.CoveredDays)
	assert.True(t, feb.FullyCovered())
	assert.Equal(t, 20, feb.StandardDays)
	assert.Equal(t, 28, feb.DaysParent1)
	assert.Zero(t, feb.DaysParent2)
	assert.True(t, feb.BenefitIncome.Equal(decimal.NewFromFloat(10715.20)), "got %s", feb.BenefitIncome)
	assert.True(t, feb.SalaryIncome.Equal(decimal.NewFromInt(37400)), "got %s", feb.SalaryIncome)
	assert.True(t, feb.TotalIncome.Equal(decimal.NewFromFloat(48115.20)), "got %s", feb.TotalIncome)
	assert.False(t, feb.BelowFloor)

	// January carries the handover dip the top-up engine exists for.
	jan := monthByKey(t, months, "2026-01")
	assert.True(t, jan.BelowFloor)
	assert.True(t, jan.TotalIncome.Equal(decimal.NewFromFloat(40872.94)), "got %s", jan.TotalIncome)

	for _, m := range months {
		assert.Equal(t, m.MonthDays, m.CoveredDays, "a 15-month plan from the 1st covers %s fully", m.Key())
	}
}

func TestAggregateMonthsProratesPartialMonth(t *testing.T) {
	spec := scenarioSpec()
	spec.TotalMonths = decimal.NewFromFloat(1.5)
	ac := newAllocationContext(spec, domain.DefaultRules(), decimal.NewFromInt(45000), false)

	months := AggregateMonths(ac, nil)
	require.Len(t, months, 2)

	jan := months[0]
	assert.True(t, jan.FullyCovered())
	assert.True(t, jan.SalaryIncome.Equal(decimal.NewFromInt(58400)), "both caregivers at work, got %s", jan.SalaryIncome)
	assert.False(t, jan.BelowFloor)

	feb := months[1]
	assert.Equal(t, 15, feb.CoveredDays)
	assert.Equal(t, 28, feb.MonthDays)
	assert.False(t, feb.FullyCovered())
	// Half a month of wages against half a month of floor.
	assert.True(t, feb.SalaryIncome.Equal(decimal.NewFromFloat(31285.71)), "got %s", feb.SalaryIncome)
	assert.False(t, feb.BelowFloor)
}

func TestAggregateMonthsOverlayNeverDoubleCountsLeave(t *testing.T) {
	spec := scenarioSpec()
	spec.TotalMonths = decimal.NewFromInt(1)
	ac := newAllocationContext(spec, domain.DefaultRules(), decimal.Zero, false)
	rate := ac.RatesFor(domain.Parent1).Standard

	periods := []domain.LeavePeriod{
		{
			Parent: domain.Parent1, Tier: domain.TierStandard,
			Start: dateutil.Date(2026, time.January, 1), End: dateutil.Date(2026, time.January, 31),
			BenefitDays: 22, DaysPerWeek: 5, DailyBenefit: rate,
		},
		{
			Parent: domain.Parent1, Tier: domain.TierStandard, Origin: domain.OriginTopUp,
			Start: dateutil.Date(2026, time.January, 1), End: dateutil.Date(2026, time.January, 18),
			BenefitDays: 5, DaysPerWeek: 2, DailyBenefit: rate,
		},
	}

	months := AggregateMonths(ac, periods)
	require.Len(t, months, 1)
	jan := months[0]

	assert.Equal(t, 31, jan.DaysParent1, "the overlay adds no calendar days")
	assert.Equal(t, 27, jan.StandardDays, "but its benefit days all count")
	assert.True(t, jan.BenefitIncome.Equal(rate.Mul(decimal.NewFromInt(27))), "got %s", jan.BenefitIncome)
	assert.True(t, jan.SalaryIncome.Equal(decimal.NewFromInt(37400)), "caregiver 1 earns nothing on top of a full leave month")
}

func TestAggregateMonthsTierCounts(t *testing.T) {
	spec := scenarioSpec()
	spec.TotalMonths = decimal.NewFromInt(1)
	ac := newAllocationContext(spec, domain.DefaultRules(), decimal.Zero, false)

	periods := []domain.LeavePeriod{
		{
			Parent: domain.BothParents, Tier: domain.TierStandard,
			Start: dateutil.Date(2026, time.January, 1), End: dateutil.Date(2026, time.January, 14),
			BenefitDays: 10, DaysPerWeek: 5, DailyBenefit: decimal.NewFromInt(100),
		},
		{
			Parent: domain.Parent1, Tier: domain.TierEmployerTopUp,
			Start: dateutil.Date(2026, time.January, 15), End: dateutil.Date(2026, time.January, 21),
			BenefitDays: 5, DaysPerWeek: 5, DailyBenefit: decimal.NewFromInt(50), DailyTopUp: decimal.NewFromInt(10),
		},
		{
			Parent: domain.Parent2, Tier: domain.TierMinimum,
			Start: dateutil.Date(2026, time.January, 22), End: dateutil.Date(2026, time.January, 27),
			BenefitDays: 4, DaysPerWeek: 5, DailyBenefit: decimal.NewFromInt(30),
		},
	}

	jan := AggregateMonths(ac, periods)[0]
	assert.Equal(t, 25, jan.StandardDays, "shared days charge both pools")
	assert.Equal(t, 5, jan.TopUpDays)
	assert.Equal(t, 4, jan.MinimumDays)
	assert.Equal(t, 21, jan.DaysParent1)
	assert.Equal(t, 20, jan.DaysParent2)
	assert.True(t, jan.BenefitIncome.Equal(decimal.NewFromInt(1370)), "got %s", jan.BenefitIncome)
	assert.True(t, jan.TopUpIncome.Equal(decimal.NewFromInt(50)), "got %s", jan.TopUpIncome)
}

func TestLeaveDaysInWindowUnion(t *testing.T) {
	day := func(d int) time.Time { return dateutil.Date(2026, time.January, d) }
	mk := func(s, e int) domain.LeavePeriod {
		return domain.LeavePeriod{Parent: domain.Parent1, Tier: domain.TierStandard, Start: day(s), End: day(e)}
	}

	win1, win31 := day(1), day(31)
	assert.Equal(t, 10, leaveDaysInWindow([]domain.LeavePeriod{mk(1, 5), mk(6, 10)}, domain.Parent1, win1, win31),
		"contiguous spans chain")
	assert.Equal(t, 8, leaveDaysInWindow([]domain.LeavePeriod{mk(1, 5), mk(8, 10)}, domain.Parent1, win1, win31),
		"a real gap splits the union")
	assert.Equal(t, 20, leaveDaysInWindow([]domain.LeavePeriod{mk(1, 10), mk(5, 20)}, domain.Parent1, win1, win31),
		"overlap counts once")
	assert.Equal(t, 5, leaveDaysInWindow([]domain.LeavePeriod{mk(27, 31)}, domain.Parent1, day(1), day(31)))
	assert.Zero(t, leaveDaysInWindow([]domain.LeavePeriod{mk(1, 10)}, domain.Parent2, win1, win31))

	shared := domain.LeavePeriod{Parent: domain.BothParents, Tier: domain.TierStandard, Start: day(1), End: day(7)}
	assert.Equal(t, 7, leaveDaysInWindow([]domain.LeavePeriod{shared}, domain.Parent2, win1, win31),
		"dual periods cover either caregiver")
}
