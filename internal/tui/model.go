// Package tui implements the interactive terminal planner. The application
// is a scene-based Bubble Tea model: one root Model owns the loaded plan,
// the engines and the computed results, and delegates input to per-scene
// models that communicate back through tuimsg.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/calculation"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/compare"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/config"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/optimize"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/output"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/scenes"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Plan data
	planPath string
	file     *config.PlanFile
	rules    domain.BenefitRules

	// Engines
	engine     *calculation.Engine
	compareEng *compare.CompareEngine
	solver     *optimize.Solver

	// Computed state
	selectedStrategy domain.StrategyKind
	results          map[domain.StrategyKind]*domain.PlanResult
	comparison       *compare.ComparisonSet
	optimization     *optimize.OptimizationResult

	// In-flight work
	calculating bool
	comparing   bool
	optimizing  bool

	// Scene models
	homeModel       *scenes.HomeModel
	strategiesModel *scenes.StrategiesModel
	parametersModel *scenes.ParametersModel
	compareModel    *scenes.CompareModel
	optimizeModel   *scenes.OptimizeModel
	resultsModel    *scenes.ResultsModel

	// Error state
	err error

	// Loading state
	loading       bool
	statusMessage string
}

// NewModel creates a new application model for a plan file
func NewModel(planPath string) Model {
	engine := calculation.NewEngine()

	return Model{
		currentScene: SceneHome,
		planPath:     planPath,
		engine:       engine,
		compareEng:   compare.NewCompareEngine(engine),
		solver:       optimize.NewDefaultSolver(engine),
		results:      make(map[domain.StrategyKind]*domain.PlanResult),
		loading:      true,

		homeModel:       scenes.NewHomeModel(),
		strategiesModel: scenes.NewStrategiesModel(),
		parametersModel: scenes.NewParametersModel(),
		compareModel:    scenes.NewCompareModel(),
		optimizeModel:   scenes.NewOptimizeModel(),
		resultsModel:    scenes.NewResultsModel(),

		width:  80,
		height: 24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadPlanCmd(m.planPath)
}

// busy reports whether any computation is in flight
func (m Model) busy() bool {
	return m.calculating || m.comparing || m.optimizing
}

// loadPlanCmd returns a command that loads and validates the plan file
func loadPlanCmd(path string) tea.Cmd {
	return func() tea.Msg {
		file, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return PlanLoadedMsg{File: file}
	}
}

// computePlanCmd returns a command that runs one strategy over a household
func computePlanCmd(spec domain.PlanSpec, rules domain.BenefitRules, strategy domain.StrategyKind) tea.Cmd {
	return func() tea.Msg {
		result, err := calculation.RunStrategy(context.Background(), &spec, rules, strategy)
		if err != nil {
			return CalculationCompleteMsg{Strategy: strategy, Err: err}
		}
		return CalculationCompleteMsg{Strategy: strategy, Result: &result}
	}
}

// comparisonCmd returns a command that lines both strategies up
func (m Model) comparisonCmd(spec domain.PlanSpec, rules domain.BenefitRules) tea.Cmd {
	return func() tea.Msg {
		set, err := m.compareEng.CompareStrategies(context.Background(), &spec, rules)
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// optimizationCmd returns a command that runs the what-if solver
func (m Model) optimizationCmd(req optimize.OptimizationRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := m.solver.Optimize(context.Background(), req)
		return OptimizationCompleteMsg{Result: result, Err: err}
	}
}

// savePlanCmd returns a command that writes the edited plan back to disk
func savePlanCmd(spec domain.PlanSpec, rules *domain.BenefitRules, filename string) tea.Cmd {
	return func() tea.Msg {
		file := &config.PlanFile{Plan: spec, Rules: rules}
		err := output.SaveConfiguration(file, filename)
		return tuimsg.SaveCompleteMsg{Filename: filename, Err: err}
	}
}

// tickCmd re-arms the animation timer
func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
