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

// shortSpec is a three-month variant of the reference household with no
// preferred split, used to exercise the sequencer's machinery in isolation.
func shortSpec() *domain.PlanSpec {
	spec := scenarioSpec()
	spec.TotalMonths = decimal.NewFromInt(3)
	spec.PreferredMonths1 = decimal.Zero
	spec.PreferredMonths2 = decimal.Zero
	return spec
}

func drainAllPools(ac *AllocationContext) {
	ac.Pools.TakeStandard(domain.Parent1, 1000)
	ac.Pools.TakeStandard(domain.Parent2, 1000)
	ac.Pools.TakeMinimum(domain.Parent1, 1000)
	ac.Pools.TakeMinimum(domain.Parent2, 1000)
}

func assertGapless(t *testing.T, ac *AllocationContext, periods []domain.LeavePeriod) {
	t.Helper()
	for day := ac.PlanStart; !day.After(ac.PlanEnd); day = dateutil.AddDays(day, 1) {
		covered := false
		for _, p := range periods {
			if p.Contains(day) {
				covered = true
				break
			}
		}
		if !covered {
			t.Fatalf("no period covers %s", day.Format("2006-01-02"))
		}
	}
}

func TestSequenceTimelineScenarioEndToEnd(t *testing.T) {
	ac := scenarioContext(decimal.NewFromInt(45000), false)
	periods := SequenceTimeline(ac, ApplyTopUps(ac, SynthesizeBasePlan(ac)))
	require.NotEmpty(t, periods)

	assertGapless(t, ac, periods)
	assert.True(t, periods[0].Start.Equal(ac.PlanStart))
	assert.True(t, periods[len(periods)-1].End.Equal(ac.PlanEnd))

	for i, p := range periods {
		assert.False(t, p.NeedsPlacement, "period %d still floating", i)
		if i > 0 {
			assert.False(t, p.Start.Before(periods[i-1].Start), "periods out of order at %d", i)
		}
	}

	// Overlays never overbook a week for either caregiver.
	assert.LessOrEqual(t, weeklyLoad(periods, domain.Parent1, ac.PlanStart, ac.PlanEnd), 7)
	assert.LessOrEqual(t, weeklyLoad(periods, domain.Parent2, ac.PlanStart, ac.PlanEnd), 7)

	// Every top-up float found a slot in place; the January transfer keeps
	// its provenance through sequencing and merging.
	topUps := topUpPeriods(periods)
	days := 0
	transferred := false
	for _, p := range topUps {
		days += p.BenefitDays
		if p.TransferredFrom == domain.Parent2 {
			transferred = true
		}
	}
	assert.Len(t, topUps, 6, "adjacent February and March overlays fold together")
	assert.Equal(t, 40, days)
	assert.True(t, transferred)

	for _, w := range ac.Warnings() {
		assert.NotContains(t, w, "could not place")
	}
}

func TestSequenceTimelineQueuedFloatFillsGap(t *testing.T) {
	ac := newAllocationContext(shortSpec(), domain.DefaultRules(), decimal.Zero, false)
	drainAllPools(ac)

	block := domain.LeavePeriod{
		Parent: domain.Parent1, Tier: domain.TierStandard, Origin: domain.OriginPlanned,
		Start: dateutil.Date(2026, time.February, 1), End: dateutil.Date(2026, time.March, 31),
		BenefitDays: 42, DaysPerWeek: 5,
	}
	// Provisionally dated on top of the other caregiver's leave, so it
	// cannot anchor and must queue.
	float := domain.LeavePeriod{
		Parent: domain.Parent2, Tier: domain.TierStandard, Origin: domain.OriginTopUp,
		Start: dateutil.Date(2026, time.February, 10), End: dateutil.Date(2026, time.February, 16),
		BenefitDays: 5, DaysPerWeek: 5, NeedsPlacement: true,
	}

	out := SequenceTimeline(ac, []domain.LeavePeriod{block, float})
	require.Len(t, out, 3)
	assertGapless(t, ac, out)

	placed := out[0]
	assert.Equal(t, domain.Parent2, placed.Parent)
	assert.True(t, placed.Start.Equal(ac.PlanStart), "queued float lands at the front of the gap")
	assert.True(t, placed.End.Equal(dateutil.Date(2026, time.January, 7)))
	assert.Equal(t, 5, placed.BenefitDays)
	assert.False(t, placed.NeedsPlacement)

	filler := out[1]
	assert.Equal(t, domain.TierNone, filler.Tier, "remainder of the gap is working time")
	assert.True(t, filler.End.Equal(dateutil.Date(2026, time.January, 31)))

	assert.True(t, out[2].Start.Equal(block.Start), "the spine never moves for a float")
}

func TestSequenceTimelineCutoffTrimsAndRefunds(t *testing.T) {
	spec := shortSpec()
	cutoff := dateutil.Date(2026, time.March, 1)
	spec.CutoffParent2 = &cutoff
	ac := newAllocationContext(spec, domain.DefaultRules(), decimal.Zero, false)

	ac.Pools.TakeStandard(domain.Parent2, 64)
	ac.Pools.TakeStandard(domain.Parent1, 1000)
	ac.Pools.TakeMinimum(domain.Parent1, 1000)
	ac.Pools.TakeMinimum(domain.Parent2, 1000)

	block := domain.LeavePeriod{
		Parent: domain.Parent2, Tier: domain.TierStandard, Origin: domain.OriginPlanned,
		Start: dateutil.Date(2026, time.January, 1), End: dateutil.Date(2026, time.March, 31),
		BenefitDays: 64, DaysPerWeek: 5,
	}

	out := SequenceTimeline(ac, []domain.LeavePeriod{block})
	require.Len(t, out, 2)
	assertGapless(t, ac, out)

	trimmed := out[0]
	assert.True(t, trimmed.End.Equal(dateutil.Date(2026, time.February, 28)), "leave stops the day before the cutoff")
	assert.Equal(t, 42, trimmed.BenefitDays)
	assert.Equal(t, 153, ac.Pools.Remaining(domain.Parent2).Standard, "the 22 days past the cutoff went back")

	assert.Equal(t, domain.TierNone, out[1].Tier)
	assert.True(t, out[1].End.Equal(ac.PlanEnd))
}

func TestSequenceTimelineDropsFloatPastCutoff(t *testing.T) {
	spec := shortSpec()
	cutoff := dateutil.Date(2026, time.January, 1)
	spec.CutoffParent2 = &cutoff
	ac := newAllocationContext(spec, domain.DefaultRules(), decimal.Zero, false)
	ac.Pools.TakeStandard(domain.Parent2, 5)

	block := domain.LeavePeriod{
		Parent: domain.Parent1, Tier: domain.TierStandard, Origin: domain.OriginPlanned,
		Start: dateutil.Date(2026, time.February, 1), End: dateutil.Date(2026, time.March, 31),
		BenefitDays: 42, DaysPerWeek: 5,
	}
	float := domain.LeavePeriod{
		Parent: domain.Parent2, Tier: domain.TierStandard, Origin: domain.OriginTopUp,
		Start: dateutil.Date(2026, time.February, 10), End: dateutil.Date(2026, time.February, 16),
		BenefitDays: 5, DaysPerWeek: 5, NeedsPlacement: true,
	}

	out := SequenceTimeline(ac, []domain.LeavePeriod{block, float})

	for _, p := range out {
		assert.NotEqual(t, domain.Parent2, p.Parent, "nothing survives for the blocked caregiver")
	}
	assert.Equal(t, 195, ac.Pools.Remaining(domain.Parent2).Standard, "dropped days are refunded")
	require.NotEmpty(t, ac.Warnings())
	assert.Contains(t, ac.Warnings()[0], "leave window closed")
	assert.Contains(t, ac.Warnings()[0], "Kim")
}

func TestSequenceTimelineRefundsUnplaceableFloat(t *testing.T) {
	ac := newAllocationContext(shortSpec(), domain.DefaultRules(), decimal.Zero, false)
	ac.Pools.TakeStandard(domain.Parent2, 5)

	// The spine covers the whole plan, so a colliding float has nowhere to
	// go at all.
	block := domain.LeavePeriod{
		Parent: domain.Parent1, Tier: domain.TierStandard, Origin: domain.OriginPlanned,
		Start: dateutil.Date(2026, time.January, 1), End: dateutil.Date(2026, time.March, 31),
		BenefitDays: 64, DaysPerWeek: 5,
	}
	float := domain.LeavePeriod{
		Parent: domain.Parent2, Tier: domain.TierStandard, Origin: domain.OriginTopUp,
		Start: dateutil.Date(2026, time.February, 1), End: dateutil.Date(2026, time.February, 7),
		BenefitDays: 5, DaysPerWeek: 5, NeedsPlacement: true,
	}

	out := SequenceTimeline(ac, []domain.LeavePeriod{block, float})

	require.Len(t, out, 1)
	assert.Equal(t, domain.Parent1, out[0].Parent)
	assert.Equal(t, 195, ac.Pools.Remaining(domain.Parent2).Standard)
	require.NotEmpty(t, ac.Warnings())
	assert.Contains(t, ac.Warnings()[0], "anywhere in the plan")
}

func TestSequenceTimelineTailBalancesDayShares(t *testing.T) {
	spec := scenarioSpec()
	spec.TotalMonths = decimal.NewFromInt(12)
	spec.PreferredMonths1 = decimal.NewFromInt(2)
	spec.PreferredMonths2 = decimal.NewFromInt(1)
	ac := newAllocationContext(spec, domain.DefaultRules(), decimal.Zero, false)

	out := SequenceTimeline(ac, SynthesizeBasePlan(ac))
	require.NotEmpty(t, out)
	assertGapless(t, ac, out)

	// The preferred split covers three months; fillers extend the timeline
	// keeping the two-to-one day ratio until both targets are met.
	assert.Equal(t, 172, ac.Pools.Used(domain.Parent1).Total())
	assert.Equal(t, 86, ac.Pools.Used(domain.Parent2).Total())
	assert.Zero(t, ac.Pools.Used(domain.Parent1).Minimum, "standard days suffice for the whole tail")
	assert.Zero(t, ac.Pools.Used(domain.Parent2).Minimum)

	var fillers1, fillers2 int
	for _, p := range out {
		if p.Origin == domain.OriginFiller && p.Tier != domain.TierNone {
			switch p.Parent {
			case domain.Parent1:
				fillers1++
			case domain.Parent2:
				fillers2++
			}
		}
	}
	assert.Positive(t, fillers1)
	assert.Positive(t, fillers2)

	last := out[len(out)-1]
	assert.Equal(t, domain.TierNone, last.Tier, "the plan closes with both caregivers back at work")
	assert.True(t, last.End.Equal(ac.PlanEnd))
}

func TestOverlayAnchoring(t *testing.T) {
	base := []domain.LeavePeriod{{
		Parent: domain.Parent1, Tier: domain.TierStandard,
		Start: dateutil.Date(2026, time.January, 1), End: dateutil.Date(2026, time.January, 31),
		BenefitDays: 22, DaysPerWeek: 5,
	}}

	ride := domain.LeavePeriod{
		Parent: domain.Parent1, Tier: domain.TierStandard,
		Start: dateutil.Date(2026, time.January, 5), End: dateutil.Date(2026, time.January, 18),
		BenefitDays: 4, DaysPerWeek: 2,
	}
	assert.True(t, overlayFits(base, ride), "two free weekday slots take a two-day cadence")

	heavy := ride
	heavy.DaysPerWeek = 3
	assert.False(t, overlayFits(base, heavy), "eight days a week fit nobody")

	crossed := ride
	crossed.Parent = domain.Parent2
	assert.False(t, overlayFits(base, crossed), "no riding on the other caregiver's leave")

	shared := []domain.LeavePeriod{base[0]}
	shared[0].Parent = domain.BothParents
	assert.True(t, overlayFits(shared, ride), "dual leave hosts either caregiver's overlay")
}
