package calculation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()

	// Test setting a custom logger
	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	// Test setting nil logger (should use no-op logger)
	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestEngine_BuildPlan_NilSpec(t *testing.T) {
	engine := NewEngine()

	results, err := engine.BuildPlan(context.Background(), nil, domain.DefaultRules())

	assert.Error(t, err, "Should error for nil spec")
	assert.Nil(t, results, "Should return nil results")
	assert.Contains(t, err.Error(), "spec is nil", "Should have specific error message")
}

func TestEngine_BuildPlan_DefaultStrategies(t *testing.T) {
	engine := NewEngine()

	results, err := engine.BuildPlan(context.Background(), scenarioSpec(), domain.DefaultRules())

	require.NoError(t, err)
	require.Len(t, results, 2, "Should evaluate both strategies")
	assert.Equal(t, domain.StrategyMinimizeDays, results[0].Strategy, "Minimize-days comes first")
	assert.Equal(t, domain.StrategyMaximizeIncome, results[1].Strategy)
	for _, r := range results {
		assert.NotEmpty(t, r.Periods)
		assert.Len(t, r.Months, 15)
	}
}

func TestEngine_BuildPlan_RequestedStrategyOnly(t *testing.T) {
	engine := NewEngine()
	spec := scenarioSpec()
	spec.Strategy = domain.StrategyMaximizeIncome

	results, err := engine.BuildPlan(context.Background(), spec, domain.DefaultRules())

	require.NoError(t, err)
	require.Len(t, results, 1, "Should only evaluate the requested strategy")
	assert.Equal(t, domain.StrategyMaximizeIncome, results[0].Strategy)
}

func TestEngine_BuildPlan_Deterministic(t *testing.T) {
	engine := NewEngine()
	rules := domain.DefaultRules()

	first, err := engine.BuildPlan(context.Background(), scenarioSpec(), rules)
	require.NoError(t, err)
	second, err := engine.BuildPlan(context.Background(), scenarioSpec(), rules)
	require.NoError(t, err)

	assert.Equal(t, first, second, "Same spec must produce the same plan")
}

func TestEngine_BuildPlan_CancelledContext(t *testing.T) {
	engine := NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := engine.BuildPlan(ctx, scenarioSpec(), domain.DefaultRules())

	assert.Error(t, err)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_BuildPlan_DebugLogging(t *testing.T) {
	engine := NewEngine()
	engine.Debug = true
	logger := &TestLogger{}
	engine.SetLogger(logger)

	_, err := engine.BuildPlan(context.Background(), scenarioSpec(), domain.DefaultRules())

	require.NoError(t, err)
	assert.NotEmpty(t, logger.messages, "Debug mode should emit diagnostics")
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
