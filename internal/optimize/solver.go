package optimize

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/calculation"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// Solver runs bounded what-if searches over a single plan input
type Solver struct {
	Engine  *calculation.Engine
	Options SolverOptions
}

// NewSolver creates a new what-if solver
func NewSolver(engine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Spec == nil {
		return nil, &OptimizeError{
			Operation: "optimize",
			Message:   "plan spec is required",
		}
	}

	// Validate constraints
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if req.Rules.DaysPerYear.IsZero() {
		req.Rules = domain.DefaultRules()
	}

	// Route to appropriate solver based on target
	switch req.Target {
	case OptimizeSplit:
		return s.optimizeSplit(ctx, req)
	case OptimizeFloor:
		return s.optimizeFloor(ctx, req)
	case OptimizeDaysPerWeek:
		return s.optimizeDaysPerWeek(ctx, req)
	default:
		return nil, &OptimizeError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// optimizeSplit sweeps parent1's share of the preferred leave split across a
// grid and keeps the best outcome for the goal.
func (s *Solver) optimizeSplit(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	total := req.Spec.TotalMonths
	if total.Sign() <= 0 {
		return nil, &OptimizeError{
			Operation: "optimize_split",
			Message:   "plan has no months to split",
		}
	}

	// Get share bounds from constraints
	minShare := decimal.Zero
	maxShare := total
	if req.Constraints.MinMonthsParent1 != nil {
		minShare = *req.Constraints.MinMonthsParent1
	}
	if req.Constraints.MaxMonthsParent1 != nil {
		maxShare = *req.Constraints.MaxMonthsParent1
	}
	if maxShare.GreaterThan(total) {
		maxShare = total
	}
	if minShare.GreaterThan(maxShare) {
		return nil, &OptimizeError{
			Operation: "optimize_split",
			Message:   "split bounds leave no candidates",
		}
	}

	steps := s.Options.GridResolution
	if steps < 1 {
		steps = 1
	}
	stepSize := maxShare.Sub(minShare).Div(decimal.NewFromInt(int64(steps)))
	if stepSize.IsZero() {
		steps = 0
	}

	var bestResult *OptimizationResult
	iterations := 0

	// Grid search over parent1's share
	for i := 0; i <= steps && iterations < req.MaxIterations; i++ {
		iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		share := minShare.Add(stepSize.Mul(decimal.NewFromInt(int64(i))))
		if share.GreaterThan(maxShare) {
			share = maxShare
		}

		spec := *req.Spec
		spec.PreferredMonths1 = share
		spec.PreferredMonths2 = total.Sub(share)

		plan, err := s.evaluate(ctx, spec, req.Rules, req.Goal)
		if err != nil {
			return nil, &OptimizeError{
				Operation: "optimize_split",
				Message:   "failed to evaluate split candidate",
				Cause:     err,
			}
		}

		result := s.evaluateResult(req, plan, iterations)
		share1 := share
		share2 := total.Sub(share)
		result.OptimalMonthsParent1 = &share1
		result.OptimalMonthsParent2 = &share2

		// Track best result
		if bestResult == nil || s.isBetter(result, bestResult, req.Goal) {
			bestResult = result
		}
	}

	if bestResult != nil {
		bestResult.Success = true
		bestResult.ConvergenceInfo = fmt.Sprintf("Evaluated %d split candidates", iterations)
		return bestResult, nil
	}

	return nil, &OptimizeError{
		Operation: "optimize_split",
		Message:   "no valid split candidates found",
	}
}

// optimizeFloor searches the income-floor axis. For match_income the search
// homes in on the floor whose average monthly income hits the target; for
// the other goals it finds the highest floor every covered month satisfies.
func (s *Solver) optimizeFloor(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Goal == GoalMatchIncome && req.Constraints.TargetIncome == nil {
		return nil, &OptimizeError{
			Operation: "optimize_floor",
			Message:   "match_income requires a target income",
		}
	}

	// Get floor bounds from constraints
	minFloor := decimal.Zero
	maxFloor := req.Spec.HouseholdNetMonthly()
	if req.Constraints.MinFloor != nil {
		minFloor = *req.Constraints.MinFloor
	}
	if req.Constraints.MaxFloor != nil {
		maxFloor = *req.Constraints.MaxFloor
	}
	if minFloor.GreaterThan(maxFloor) {
		return nil, &OptimizeError{
			Operation: "optimize_floor",
			Message:   "floor bounds leave no candidates",
		}
	}

	var bestResult *OptimizationResult
	iterations := 0

	// Binary search for the boundary floor
	for iterations < req.MaxIterations {
		iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		testFloor := minFloor.Add(maxFloor).Div(decimal.NewFromInt(2))

		spec := *req.Spec
		spec.IncomeFloor = testFloor

		plan, err := s.evaluate(ctx, spec, req.Rules, req.Goal)
		if err != nil {
			return nil, &OptimizeError{
				Operation: "optimize_floor",
				Message:   "failed to evaluate floor candidate",
				Cause:     err,
			}
		}

		result := s.evaluateResult(req, plan, iterations)
		floorCopy := testFloor
		result.OptimalFloor = &floorCopy

		if req.Goal == GoalMatchIncome {
			diff := plan.AverageMonthlyIncome.Sub(*req.Constraints.TargetIncome)
			if diff.Abs().LessThan(req.Tolerance) {
				result.Success = true
				result.ConvergenceInfo = fmt.Sprintf("Converged to target income within %s kr", req.Tolerance.StringFixed(0))
				return result, nil
			}

			// Adjust bounds
			if diff.LessThan(decimal.Zero) {
				// Need more income, raise the floor
				minFloor = testFloor
			} else {
				maxFloor = testFloor
			}

			if bestResult == nil || s.isBetter(result, bestResult, req.Goal) {
				bestResult = result
			}
		} else {
			if result.MonthsBelowFloor == 0 {
				// Feasible: remember it and push higher
				if bestResult == nil || floorCopy.GreaterThan(*bestResult.OptimalFloor) {
					bestResult = result
				}
				minFloor = testFloor
			} else {
				maxFloor = testFloor
			}
		}

		// Check convergence
		if maxFloor.Sub(minFloor).LessThan(req.Tolerance) {
			if bestResult != nil {
				bestResult.Success = true
				bestResult.ConvergenceInfo = "Binary search converged"
				return bestResult, nil
			}
			result.ConvergenceInfo = fmt.Sprintf("No floor above %s kr is satisfiable", minFloor.StringFixed(0))
			return result, nil
		}
	}

	if bestResult != nil {
		bestResult.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
		return bestResult, nil
	}

	return nil, &OptimizeError{
		Operation: "optimize_floor",
		Message:   fmt.Sprintf("optimization did not converge after %d iterations", req.MaxIterations),
	}
}

// optimizeDaysPerWeek sweeps the weekly benefit-day cadence
func (s *Solver) optimizeDaysPerWeek(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	// Get cadence bounds
	minDays := 1
	maxDays := 7
	if req.Constraints.MinDaysPerWeek != nil {
		minDays = *req.Constraints.MinDaysPerWeek
	}
	if req.Constraints.MaxDaysPerWeek != nil {
		maxDays = *req.Constraints.MaxDaysPerWeek
	}
	if minDays < 1 {
		minDays = 1
	}
	if maxDays > 7 {
		maxDays = 7
	}

	var bestResult *OptimizationResult
	iterations := 0

	// Grid search over cadences
	for days := minDays; days <= maxDays && iterations < req.MaxIterations; days++ {
		iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		spec := *req.Spec
		spec.DaysPerWeek = days

		plan, err := s.evaluate(ctx, spec, req.Rules, req.Goal)
		if err != nil {
			return nil, &OptimizeError{
				Operation: "optimize_days_per_week",
				Message:   "failed to evaluate cadence candidate",
				Cause:     err,
			}
		}

		result := s.evaluateResult(req, plan, iterations)
		daysCopy := days
		result.OptimalDaysPerWeek = &daysCopy

		// Track best result
		if bestResult == nil || s.isBetter(result, bestResult, req.Goal) {
			bestResult = result
		}
	}

	if bestResult != nil {
		bestResult.Success = true
		bestResult.ConvergenceInfo = fmt.Sprintf("Evaluated %d weekly cadences", iterations)
		return bestResult, nil
	}

	return nil, &OptimizeError{
		Operation: "optimize_days_per_week",
		Message:   "no valid cadences found",
	}
}

// evaluate runs the allocation pipeline once for a candidate spec, pinned to
// the strategy the goal cares about.
func (s *Solver) evaluate(ctx context.Context, spec domain.PlanSpec, rules domain.BenefitRules, goal OptimizationGoal) (*domain.PlanResult, error) {
	spec.Strategy = strategyForGoal(goal)
	results, err := s.Engine.BuildPlan(ctx, &spec, rules)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, &OptimizeError{
			Operation: "evaluate",
			Message:   "engine returned no results",
		}
	}
	return &results[0], nil
}

func strategyForGoal(goal OptimizationGoal) domain.StrategyKind {
	if goal == GoalMaximizeIncome {
		return domain.StrategyMaximizeIncome
	}
	return domain.StrategyMinimizeDays
}

// evaluateResult creates an optimization result from a plan outcome
func (s *Solver) evaluateResult(req OptimizationRequest, plan *domain.PlanResult, iterations int) *OptimizationResult {
	return &OptimizationResult{
		Request:              req,
		Iterations:           iterations,
		Plan:                 plan,
		TotalIncome:          plan.TotalIncome,
		AverageMonthlyIncome: plan.AverageMonthlyIncome,
		DaysUsed:             plan.TotalDaysUsed(),
		MonthsBelowFloor:     plan.MonthsBelowFloor(),
	}
}

// isBetter compares two results based on optimization goal
func (s *Solver) isBetter(a, b *OptimizationResult, goal OptimizationGoal) bool {
	switch goal {
	case GoalMaximizeIncome:
		return a.TotalIncome.GreaterThan(b.TotalIncome)
	case GoalMinimizeDays:
		// A cheap plan that leaves months under the floor is no plan at all
		if a.MonthsBelowFloor != b.MonthsBelowFloor {
			return a.MonthsBelowFloor < b.MonthsBelowFloor
		}
		return a.DaysUsed < b.DaysUsed
	case GoalMatchIncome:
		// For match income, closer to target is better
		if a.Request.Constraints.TargetIncome == nil {
			return false
		}
		aDiff := a.AverageMonthlyIncome.Sub(*a.Request.Constraints.TargetIncome).Abs()
		bDiff := b.AverageMonthlyIncome.Sub(*b.Request.Constraints.TargetIncome).Abs()
		return aDiff.LessThan(bDiff)
	default:
		return false
	}
}
