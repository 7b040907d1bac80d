// Package tuimsg defines the messages scenes send up to the application
// model. Scenes import this package instead of the tui root so requests can
// flow upward without an import cycle.
package tuimsg

import (
	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/optimize"
)

// StrategySelectedMsg signals a strategy has been picked for a full run
type StrategySelectedMsg struct {
	Strategy domain.StrategyKind
}

// ErrorMsg carries a scene-level failure to the application model
type ErrorMsg struct {
	Err error
}

// ParameterChangedMsg signals a plan parameter value has changed
type ParameterChangedMsg struct {
	Parameter string
	Value     float64
}

// CalculationRequestedMsg asks the model to run the engine over an edited
// household spec. The spec is a value copy; the scene keeps editing its own.
type CalculationRequestedMsg struct {
	Spec domain.PlanSpec
}

// ComparisonRequestedMsg asks the model to line both strategies up
type ComparisonRequestedMsg struct{}

// OptimizationRequestedMsg asks the model to run the what-if solver
type OptimizationRequestedMsg struct {
	Target       optimize.OptimizationTarget
	Goal         optimize.OptimizationGoal
	TargetIncome *decimal.Decimal // set only for the match-income goal
}

// SavePlanMsg asks the model to write the edited plan back to disk
type SavePlanMsg struct {
	Spec     domain.PlanSpec
	Filename string
}

// SaveCompleteMsg signals a save operation has finished
type SaveCompleteMsg struct {
	Filename string
	Err      error
}
