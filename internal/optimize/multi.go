package optimize

import (
	"context"
	"fmt"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// OptimizeMultiDimensional runs optimization across multiple targets and compares results
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	spec *domain.PlanSpec,
	rules domain.BenefitRules,
	constraints Constraints,
	goals []OptimizationGoal,
) (*MultiDimensionalResult, error) {

	// Validate constraints
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	// Define optimization targets to test
	targets := []OptimizationTarget{
		OptimizeSplit,
		OptimizeFloor,
		OptimizeDaysPerWeek,
	}

	var results []OptimizationResult

	// Run optimization for each target and goal combination
	for _, target := range targets {
		for _, goal := range goals {
			req := OptimizationRequest{
				Spec:          spec,
				Rules:         rules,
				Target:        target,
				Goal:          goal,
				Constraints:   constraints,
				MaxIterations: s.Options.MaxIterations,
				Tolerance:     s.Options.Tolerance,
			}

			result, err := s.Optimize(ctx, req)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				// Skip failed axes but keep going with the rest
				continue
			}

			if result != nil && result.Success {
				results = append(results, *result)
			}
		}
	}

	if len(results) == 0 {
		return nil, &OptimizeError{
			Operation: "optimize_multi_dimensional",
			Message:   "no successful optimizations found",
		}
	}

	// Find best results for each metric
	mdResult := &MultiDimensionalResult{
		Results: results,
	}

	// Find best by income
	for i := range results {
		if mdResult.BestByIncome == nil ||
			results[i].TotalIncome.GreaterThan(mdResult.BestByIncome.TotalIncome) {
			mdResult.BestByIncome = &results[i]
		}
	}

	// Find best by day spend
	for i := range results {
		if mdResult.BestByDays == nil ||
			results[i].DaysUsed < mdResult.BestByDays.DaysUsed {
			mdResult.BestByDays = &results[i]
		}
	}

	// Find best by floor coverage
	for i := range results {
		if mdResult.BestByCoverage == nil ||
			results[i].MonthsBelowFloor < mdResult.BestByCoverage.MonthsBelowFloor {
			mdResult.BestByCoverage = &results[i]
		}
	}

	// Generate recommendations
	mdResult.Recommendations = s.generateMultiDimensionalRecommendations(mdResult)

	return mdResult, nil
}

// generateMultiDimensionalRecommendations creates recommendations from multi-dimensional results
func (s *Solver) generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string

	// Income recommendation
	if result.BestByIncome != nil {
		rec := fmt.Sprintf("To maximize household income: adjust %s",
			result.BestByIncome.Request.Target)
		rec += describeOptimal(result.BestByIncome)
		recommendations = append(recommendations, rec)
	}

	// Day-spend recommendation
	if result.BestByDays != nil {
		rec := fmt.Sprintf("To spend the fewest benefit days (%d): adjust %s",
			result.BestByDays.DaysUsed,
			result.BestByDays.Request.Target)
		rec += describeOptimal(result.BestByDays)
		recommendations = append(recommendations, rec)
	}

	// Coverage recommendation
	if result.BestByCoverage != nil && result.BestByCoverage.MonthsBelowFloor == 0 {
		rec := fmt.Sprintf("To keep every month above the floor: adjust %s",
			result.BestByCoverage.Request.Target)
		rec += describeOptimal(result.BestByCoverage)
		recommendations = append(recommendations, rec)
	}

	// Check if same axis wins multiple categories
	if result.BestByIncome != nil && result.BestByDays != nil {
		if result.BestByIncome.Request.Target == result.BestByDays.Request.Target {
			recommendations = append(recommendations,
				fmt.Sprintf("⭐ Adjusting %s provides both high income AND low day spend",
					result.BestByIncome.Request.Target))
		}
	}

	return recommendations
}

// describeOptimal renders the winning parameter of a result as a short suffix
func describeOptimal(res *OptimizationResult) string {
	out := ""
	if res.OptimalMonthsParent1 != nil && res.OptimalMonthsParent2 != nil {
		out += fmt.Sprintf(" (%s/%s month split)",
			res.OptimalMonthsParent1.StringFixed(1),
			res.OptimalMonthsParent2.StringFixed(1))
	}
	if res.OptimalFloor != nil {
		out += fmt.Sprintf(" (floor %s kr)", res.OptimalFloor.StringFixed(0))
	}
	if res.OptimalDaysPerWeek != nil {
		out += fmt.Sprintf(" (%d days/week)", *res.OptimalDaysPerWeek)
	}
	return out
}

// OptimizeAllTargets is a convenience method to optimize all targets with a single goal
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	spec *domain.PlanSpec,
	rules domain.BenefitRules,
	constraints Constraints,
	goal OptimizationGoal,
) (*MultiDimensionalResult, error) {
	return s.OptimizeMultiDimensional(ctx, spec, rules, constraints, []OptimizationGoal{goal})
}
