package optimize

import (
	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// OptimizationTarget defines which plan input to search over
type OptimizationTarget string

const (
	OptimizeSplit       OptimizationTarget = "split"
	OptimizeFloor       OptimizationTarget = "income_floor"
	OptimizeDaysPerWeek OptimizationTarget = "days_per_week"
	OptimizeAll         OptimizationTarget = "all"
)

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	GoalMatchIncome    OptimizationGoal = "match_income"    // Match a target average monthly income
	GoalMaximizeIncome OptimizationGoal = "maximize_income" // Maximize total household income
	GoalMinimizeDays   OptimizationGoal = "minimize_days"   // Spend the fewest benefit days
)

// Constraints define bounds for the searched plan input
type Constraints struct {
	// Preferred-split constraints: parent1's share of the leave, in months
	MinMonthsParent1 *decimal.Decimal `json:"min_months_parent1,omitempty"`
	MaxMonthsParent1 *decimal.Decimal `json:"max_months_parent1,omitempty"`

	// Income floor constraints, kr per month
	MinFloor *decimal.Decimal `json:"min_floor,omitempty"`
	MaxFloor *decimal.Decimal `json:"max_floor,omitempty"`

	// Weekly benefit-day cadence constraints
	MinDaysPerWeek *int `json:"min_days_per_week,omitempty"`
	MaxDaysPerWeek *int `json:"max_days_per_week,omitempty"`

	// Income target for match_income goal, kr per month
	TargetIncome *decimal.Decimal `json:"target_income,omitempty"`
}

// DefaultConstraints returns sensible default constraints
func DefaultConstraints() Constraints {
	minDays := 1
	maxDays := 7

	return Constraints{
		MinDaysPerWeek: &minDays,
		MaxDaysPerWeek: &maxDays,
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Spec          *domain.PlanSpec
	Rules         domain.BenefitRules
	Target        OptimizationTarget
	Goal          OptimizationGoal
	Constraints   Constraints
	MaxIterations int             // Maximum solver iterations
	Tolerance     decimal.Decimal // Convergence tolerance for binary search, kr
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	// Optimization metadata
	Request         OptimizationRequest
	Success         bool
	Iterations      int
	ConvergenceInfo string

	// Optimized parameters
	OptimalMonthsParent1 *decimal.Decimal `json:"optimal_months_parent1,omitempty"`
	OptimalMonthsParent2 *decimal.Decimal `json:"optimal_months_parent2,omitempty"`
	OptimalFloor         *decimal.Decimal `json:"optimal_floor,omitempty"`
	OptimalDaysPerWeek   *int             `json:"optimal_days_per_week,omitempty"`

	// Results at optimal parameters
	Plan                 *domain.PlanResult `json:"plan"`
	TotalIncome          decimal.Decimal    `json:"total_income"`
	AverageMonthlyIncome decimal.Decimal    `json:"average_monthly_income"`
	DaysUsed             int                `json:"days_used"`
	MonthsBelowFloor     int                `json:"months_below_floor"`
}

// MultiDimensionalResult contains results when optimizing multiple parameters
type MultiDimensionalResult struct {
	Results         []OptimizationResult
	BestByIncome    *OptimizationResult
	BestByDays      *OptimizationResult
	BestByCoverage  *OptimizationResult
	Recommendations []string
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Algorithm      string          // "grid_search", "binary_search"
	GridResolution int             // For grid search: points per dimension
	Tolerance      decimal.Decimal // Convergence tolerance, kr
	MaxIterations  int             // Maximum iterations
	Parallel       bool            // Use parallel evaluation (future)
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Algorithm:      "grid_search",
		GridResolution: 10,
		Tolerance:      decimal.NewFromInt(100), // 100 kr tolerance
		MaxIterations:  50,
		Parallel:       false,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	// Check preferred-split range
	if c.MinMonthsParent1 != nil && c.MinMonthsParent1.IsNegative() {
		return &OptimizeError{
			Operation: "validate_constraints",
			Message:   "min_months_parent1 cannot be negative",
		}
	}
	if c.MinMonthsParent1 != nil && c.MaxMonthsParent1 != nil {
		if c.MinMonthsParent1.GreaterThan(*c.MaxMonthsParent1) {
			return &OptimizeError{
				Operation: "validate_constraints",
				Message:   "min_months_parent1 cannot be greater than max_months_parent1",
			}
		}
	}

	// Check floor range
	if c.MinFloor != nil && c.MinFloor.IsNegative() {
		return &OptimizeError{
			Operation: "validate_constraints",
			Message:   "min_floor cannot be negative",
		}
	}
	if c.MinFloor != nil && c.MaxFloor != nil {
		if c.MinFloor.GreaterThan(*c.MaxFloor) {
			return &OptimizeError{
				Operation: "validate_constraints",
				Message:   "min_floor cannot be greater than max_floor",
			}
		}
	}

	// Check days-per-week range
	if c.MinDaysPerWeek != nil && c.MaxDaysPerWeek != nil {
		if *c.MinDaysPerWeek > *c.MaxDaysPerWeek {
			return &OptimizeError{
				Operation: "validate_constraints",
				Message:   "min_days_per_week cannot be greater than max_days_per_week",
			}
		}
		if *c.MinDaysPerWeek < 1 || *c.MaxDaysPerWeek > 7 {
			return &OptimizeError{
				Operation: "validate_constraints",
				Message:   "days_per_week must be between 1 and 7",
			}
		}
	}

	return nil
}

// OptimizeError represents errors from the what-if solver
type OptimizeError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *OptimizeError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *OptimizeError) Unwrap() error {
	return e.Cause
}
