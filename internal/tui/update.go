package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/config"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/optimize"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.propagateSize()
		return m, nil

	case TickMsg:
		if !m.busy() {
			return m, nil
		}
		m.compareModel.Tick()
		m.optimizeModel.Tick()
		return m, tickCmd()

	// Application messages
	case NavigateMsg:
		return m.navigate(msg.Scene), nil

	case ErrorMsg:
		m.loading = false
		m.calculating = false
		m.comparing = false
		m.optimizing = false
		m.err = msg.Err
		return m, nil

	case PlanLoadedMsg:
		m.loading = false
		m.file = msg.File
		m.rules = msg.File.EffectiveRules()
		m.propagatePlan()
		return m, nil

	case CalculationCompleteMsg:
		m.calculating = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.selectedStrategy = msg.Strategy
		m.results[msg.Strategy] = msg.Result
		m.resultsModel.SetResult(msg.Strategy, msg.Result, m.file.Plan.IncomeFloor)
		return m.navigate(SceneResults), nil

	case ComparisonCompleteMsg:
		m.comparing = false
		m.compareModel.SetComparing(false)
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.comparison = msg.Set
		m.compareModel.SetComparison(msg.Set)
		return m, nil

	case OptimizationCompleteMsg:
		m.optimizing = false
		m.optimizeModel.SetOptimizing(false)
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.optimization = msg.Result
		m.optimizeModel.SetResult(msg.Result)
		return m, nil

	// Scene requests
	case tuimsg.StrategySelectedMsg:
		if m.file == nil || m.busy() {
			return m, nil
		}
		m.calculating = true
		return m, tea.Batch(computePlanCmd(m.file.Plan, m.rules, msg.Strategy), tickCmd())

	case tuimsg.CalculationRequestedMsg:
		return m.commitAndCalculate(msg.Spec)

	case tuimsg.ParameterChangedMsg:
		m.statusMessage = "Parameters modified (Enter recalculates)"
		return m, nil

	case tuimsg.ComparisonRequestedMsg:
		if m.file == nil || m.busy() {
			return m, nil
		}
		m.comparing = true
		m.compareModel.SetComparing(true)
		return m, tea.Batch(m.comparisonCmd(m.file.Plan, m.rules), tickCmd())

	case tuimsg.OptimizationRequestedMsg:
		if m.file == nil || m.busy() {
			return m, nil
		}
		spec := m.file.Plan
		constraints := optimize.DefaultConstraints()
		constraints.TargetIncome = msg.TargetIncome
		req := optimize.OptimizationRequest{
			Spec:        &spec,
			Rules:       m.rules,
			Target:      msg.Target,
			Goal:        msg.Goal,
			Constraints: constraints,
		}
		m.optimizing = true
		m.optimizeModel.SetOptimizing(true)
		return m, tea.Batch(m.optimizationCmd(req), tickCmd())

	case tuimsg.SavePlanMsg:
		if m.file == nil {
			return m, nil
		}
		return m, savePlanCmd(msg.Spec, m.file.Rules, msg.Filename)

	case tuimsg.SaveCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.statusMessage = "Saved " + msg.Filename
		}
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

// commitAndCalculate adopts an edited spec as the working plan, drops results
// computed for the previous inputs, and reruns the current strategy.
func (m Model) commitAndCalculate(spec domain.PlanSpec) (tea.Model, tea.Cmd) {
	if m.file == nil || m.busy() {
		return m, nil
	}

	if err := config.NewInputParser().ValidateAndClamp(&spec); err != nil {
		m.err = err
		return m, nil
	}

	m.file.Plan = spec
	m.results = make(map[domain.StrategyKind]*domain.PlanResult)
	m.comparison = nil
	m.optimization = nil
	m.compareModel.SetComparison(nil)
	m.propagatePlan()

	strategy := m.selectedStrategy
	if !strategy.Valid() {
		strategy = domain.StrategyMinimizeDays
	}

	m.calculating = true
	m.statusMessage = ""
	return m, tea.Batch(computePlanCmd(spec, m.rules, strategy), tickCmd())
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if k == "ctrl+c" {
		return m, tea.Quit
	}

	// While the optimize scene reads text every printable key belongs to it
	if m.currentScene == SceneOptimize && m.optimizeModel.CapturingInput() {
		return m.updateCurrentScene(msg)
	}

	m.statusMessage = ""

	// An error screen swallows the next key
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// Global keyboard shortcuts
	switch k {
	case "q":
		return m, tea.Quit

	case "?":
		if m.currentScene != SceneHelp {
			return m.navigate(SceneHelp), nil
		}
		return m, nil

	case "esc":
		if m.currentScene == SceneHome {
			return m, nil
		}
		if m.previousScene != m.currentScene {
			return m.navigate(m.previousScene), nil
		}
		return m.navigate(SceneHome), nil
	}

	// Single-letter navigation, unless the scene claims the key for itself
	if scene, ok := navTarget(k); ok && !m.sceneOwnsKey(k) {
		if scene != m.currentScene {
			return m.navigate(scene), nil
		}
		return m, nil
	}

	// Let the current scene handle other keys
	return m.updateCurrentScene(msg)
}

// navTarget maps a navigation key to its scene
func navTarget(k string) (Scene, bool) {
	switch k {
	case "h":
		return SceneHome, true
	case "s":
		return SceneStrategies, true
	case "p":
		return SceneParameters, true
	case "c":
		return SceneCompare, true
	case "o":
		return SceneOptimize, true
	case "r":
		return SceneResults, true
	}
	return SceneHome, false
}

// sceneOwnsKey reports whether the current scene uses a key that would
// otherwise navigate globally.
func (m Model) sceneOwnsKey(k string) bool {
	switch m.currentScene {
	case SceneParameters:
		// h/l adjust the focused slider, r resets the edits
		return k == "h" || k == "r"
	}
	return false
}

// navigate switches scenes, remembering where we came from
func (m Model) navigate(scene Scene) Model {
	if scene == m.currentScene {
		return m
	}
	m.previousScene = m.currentScene
	m.currentScene = scene
	return m
}

// propagatePlan pushes the working plan into every scene that renders it
func (m *Model) propagatePlan() {
	if m.file == nil {
		return
	}
	m.homeModel.SetPlan(&m.file.Plan, m.rules)
	m.strategiesModel.SetSpec(&m.file.Plan)
	m.parametersModel.SetSpec(m.file.Plan)
	m.optimizeModel.SetSpec(m.file.Plan)
}

// propagateSize pushes the content dimensions into every scene
func (m *Model) propagateSize() {
	w, h := m.width, m.height-4
	m.homeModel.SetSize(w, h)
	m.strategiesModel.SetSize(w, h)
	m.parametersModel.SetSize(w, h)
	m.compareModel.SetSize(w, h)
	m.optimizeModel.SetSize(w, h)
	m.resultsModel.SetSize(w, h)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneStrategies:
		m.strategiesModel, cmd = m.strategiesModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneOptimize:
		m.optimizeModel, cmd = m.optimizeModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	}

	return m, cmd
}
