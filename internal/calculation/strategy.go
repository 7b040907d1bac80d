package calculation

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// floorMultipliers are the income-floor targets the maximize-income
// strategy probes, as multiples of the requested floor. Higher targets
// pull more top-up days into the plan; the tie-break keeps the richest
// outcome that still fits the pools.
var floorMultipliers = []float64{1.0, 1.1, 1.25, 1.5}

// candidate is one pipeline run's knob setting.
type candidate struct {
	floor      decimal.Decimal
	topUpFirst bool
}

func candidatesFor(strategy domain.StrategyKind, floor decimal.Decimal) []candidate {
	switch strategy {
	case domain.StrategyMinimizeDays:
		// One run at the requested floor; extra candidates would only add
		// days the strategy exists to avoid.
		return []candidate{{floor: floor}}
	case domain.StrategyMaximizeIncome:
		out := make([]candidate, 0, 2*len(floorMultipliers))
		for _, m := range floorMultipliers {
			target := floor.Mul(decimal.NewFromFloat(m))
			out = append(out,
				candidate{floor: target, topUpFirst: true},
				candidate{floor: target, topUpFirst: false},
			)
		}
		return out
	default:
		return nil
	}
}

// RunStrategy evaluates every candidate configuration for one strategy and
// returns the winner. Candidates are independent: each gets a fresh
// context and pools, so a failed or degraded run never contaminates the
// next one.
func RunStrategy(ctx context.Context, spec *domain.PlanSpec, rules domain.BenefitRules, strategy domain.StrategyKind) (domain.PlanResult, error) {
	var best domain.PlanResult
	have := false
	for _, cand := range candidatesFor(strategy, spec.IncomeFloor) {
		if err := ctx.Err(); err != nil {
			return domain.PlanResult{}, err
		}
		result := runCandidate(spec, rules, strategy, cand)
		if !have || betterResult(&result, &best) {
			best = result
			have = true
		}
	}
	return best, nil
}

// runCandidate executes the full pipeline once: synthesize the base plan,
// repair under-floor months, sequence the timeline, then aggregate.
func runCandidate(spec *domain.PlanSpec, rules domain.BenefitRules, strategy domain.StrategyKind, cand candidate) domain.PlanResult {
	ac := newAllocationContext(spec, rules, cand.floor, cand.topUpFirst)

	periods := SynthesizeBasePlan(ac)
	periods = ApplyTopUps(ac, periods)
	periods = SequenceTimeline(ac, periods)
	months := AggregateMonths(ac, periods)

	result := domain.PlanResult{
		Strategy:    strategy,
		FloorTarget: cand.floor,
		TopUpFirst:  cand.topUpFirst,
		Periods:     periods,
		Months:      months,
		Usage:       poolUsage(ac),
		Warnings:    ac.Warnings(),
	}

	total := decimal.Zero
	for _, m := range months {
		total = total.Add(m.TotalIncome)
	}
	result.TotalIncome = total
	if len(months) > 0 {
		result.AverageMonthlyIncome = total.Div(decimal.NewFromInt(int64(len(months)))).Round(2)
	}
	return result
}

func poolUsage(ac *AllocationContext) domain.PoolUsage {
	usageFor := func(id domain.ParentID) domain.ParentUsage {
		used := ac.Pools.Used(id)
		left := ac.Pools.Remaining(id)
		return domain.ParentUsage{
			StandardUsed:      used.Standard,
			MinimumUsed:       used.Minimum,
			StandardRemaining: left.Standard,
			MinimumRemaining:  left.Minimum,
		}
	}
	return domain.PoolUsage{
		Parent1: usageFor(domain.Parent1),
		Parent2: usageFor(domain.Parent2),
	}
}

// betterResult ranks two candidate outcomes: highest total income wins,
// then most benefit days used, then highest average month.
func betterResult(a, b *domain.PlanResult) bool {
	if !a.TotalIncome.Equal(b.TotalIncome) {
		return a.TotalIncome.GreaterThan(b.TotalIncome)
	}
	if a.TotalDaysUsed() != b.TotalDaysUsed() {
		return a.TotalDaysUsed() > b.TotalDaysUsed()
	}
	return a.AverageMonthlyIncome.GreaterThan(b.AverageMonthlyIncome)
}
