package calculation

import (
	"context"
	"fmt"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// Logger receives diagnostic output from the engine. Callers plug in their
// own implementation; the default discards everything.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...interface{}) {}
func (NopLogger) Infof(format string, args ...interface{})  {}
func (NopLogger) Warnf(format string, args ...interface{})  {}
func (NopLogger) Errorf(format string, args ...interface{}) {}

// Engine runs the allocation pipeline for a household leave plan.
type Engine struct {
	Logger Logger
	Debug  bool
}

// NewEngine creates an engine with the default no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger replaces the engine's logger. Passing nil restores the no-op
// logger so calling code never has to nil-check before logging.
func (e *Engine) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	e.Logger = logger
}

// BuildPlan evaluates the requested strategies for a validated plan spec
// and returns one result per strategy, minimize-days first. A nil spec is
// the only caller error; an infeasible plan comes back as a result with
// warnings, never as a failure.
func (e *Engine) BuildPlan(ctx context.Context, spec *domain.PlanSpec, rules domain.BenefitRules) ([]domain.PlanResult, error) {
	if spec == nil {
		return nil, fmt.Errorf("build plan: spec is nil")
	}

	strategies := []domain.StrategyKind{domain.StrategyMinimizeDays, domain.StrategyMaximizeIncome}
	if spec.Strategy.Valid() {
		strategies = []domain.StrategyKind{spec.Strategy}
	}

	results := make([]domain.PlanResult, 0, len(strategies))
	for _, strategy := range strategies {
		e.Logger.Debugf("evaluating strategy %s for %s and %s", strategy, spec.Parent1.Name, spec.Parent2.Name)
		result, err := RunStrategy(ctx, spec, rules, strategy)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", strategy, err)
		}
		if e.Debug {
			e.Logger.Debugf("strategy %s: total income %s over %d month(s), %d benefit day(s) used, %d warning(s)",
				strategy, result.TotalIncome.StringFixed(2), len(result.Months), result.TotalDaysUsed(), len(result.Warnings))
		}
		results = append(results, result)
	}
	return results, nil
}
