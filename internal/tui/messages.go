package tui

import (
	"time"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/compare"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/config"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/optimize"
)

// Scene represents the different screens in the planner
type Scene int

const (
	SceneHome Scene = iota
	SceneStrategies
	SceneParameters
	SceneCompare
	SceneOptimize
	SceneResults
	SceneHelp
)

// String returns the scene name for display
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneStrategies:
		return "Strategies"
	case SceneParameters:
		return "Parameters"
	case SceneCompare:
		return "Compare"
	case SceneOptimize:
		return "Optimize"
	case SceneResults:
		return "Results"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// PlanLoadedMsg signals the plan file has been loaded and validated
type PlanLoadedMsg struct {
	File *config.PlanFile
}

// CalculationCompleteMsg signals an engine run has finished
type CalculationCompleteMsg struct {
	Strategy domain.StrategyKind
	Result   *domain.PlanResult
	Err      error
}

// ComparisonCompleteMsg signals a strategy comparison has finished
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// OptimizationCompleteMsg signals a what-if solver run has finished
type OptimizationCompleteMsg struct {
	Result *optimize.OptimizationResult
	Err    error
}

// TickMsg drives spinner animation while a computation is in flight
type TickMsg time.Time
