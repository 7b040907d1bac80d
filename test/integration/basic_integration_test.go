package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/calculation"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/compare"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/config"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/optimize"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/output"
)

// TestBasicIntegration tests basic end-to-end functionality
func TestBasicIntegration(t *testing.T) {
	t.Run("plan_loading", func(t *testing.T) {
		parser := config.NewInputParser()
		file, err := parser.LoadFromFile("../testdata/family_plan.yaml")
		require.NoError(t, err, "Should load plan successfully")
		require.NotNil(t, file, "Plan file should not be nil")

		// Validate basic structure
		assert.Equal(t, "Elin", file.Plan.Parent1.Name)
		assert.Equal(t, "Johan", file.Plan.Parent2.Name)
		assert.Equal(t, "12", file.Plan.TotalMonths.String())
		assert.Nil(t, file.Rules, "Base fixture should run on the default rules")
	})

	t.Run("calculation_engine", func(t *testing.T) {
		parser := config.NewInputParser()
		file, err := parser.LoadFromFile("../testdata/family_plan.yaml")
		require.NoError(t, err)

		engine := calculation.NewEngine()
		require.NotNil(t, engine, "Calculation engine should not be nil")

		results, err := engine.BuildPlan(context.Background(), &file.Plan, file.EffectiveRules())
		require.NoError(t, err, "Should build plan successfully")
		require.Len(t, results, 2, "Should have one result per strategy")

		// Both strategies should be represented once
		seen := map[domain.StrategyKind]bool{}
		for _, result := range results {
			seen[result.Strategy] = true
			assert.True(t, result.TotalIncome.IsPositive(), "Should have positive total income")
			assert.NotEmpty(t, result.Months, "Should have monthly breakdowns")
		}
		assert.True(t, seen[domain.StrategyMinimizeDays], "Should include minimize_days")
		assert.True(t, seen[domain.StrategyMaximizeIncome], "Should include maximize_income")
	})

	t.Run("output_generation", func(t *testing.T) {
		parser := config.NewInputParser()
		file, err := parser.LoadFromFile("../testdata/family_plan.yaml")
		require.NoError(t, err)

		engine := calculation.NewEngine()
		results, err := engine.BuildPlan(context.Background(), &file.Plan, file.EffectiveRules())
		require.NoError(t, err)

		report := output.NewPlanReport(&file.Plan, file.EffectiveRules(), results)

		oldwd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { _ = os.Chdir(oldwd) })

		// Test console output
		err = output.GenerateReport(report, "console")
		assert.NoError(t, err, "Should generate console output")

		// Test JSON output
		err = output.GenerateReport(report, "json")
		assert.NoError(t, err, "Should generate JSON output")

		// Test CSV output
		err = output.GenerateReport(report, "csv")
		assert.NoError(t, err, "Should generate CSV output")

		// Test HTML output
		err = output.GenerateReport(report, "html")
		assert.NoError(t, err, "Should generate HTML output")
	})

	t.Run("recommendation_analysis", func(t *testing.T) {
		parser := config.NewInputParser()
		file, err := parser.LoadFromFile("../testdata/family_plan.yaml")
		require.NoError(t, err)

		engine := calculation.NewEngine()
		results, err := engine.BuildPlan(context.Background(), &file.Plan, file.EffectiveRules())
		require.NoError(t, err)

		report := output.NewPlanReport(&file.Plan, file.EffectiveRules(), results)
		rec := output.AnalyzeResults(report)

		assert.NotEmpty(t, rec.Strategy, "Should recommend a strategy")
		assert.True(t, rec.TotalIncome.IsPositive(), "Recommendation should carry its income")
		assert.False(t, rec.IncomeAdvantage.IsNegative(), "Advantage is measured against the weakest result")
	})
}

// TestErrorHandling tests error conditions
func TestErrorHandling(t *testing.T) {
	t.Run("missing_plan_file", func(t *testing.T) {
		parser := config.NewInputParser()
		_, err := parser.LoadFromFile("nonexistent.yaml")
		assert.Error(t, err, "Should fail for missing plan file")
	})

	t.Run("malformed_yaml", func(t *testing.T) {
		parser := config.NewInputParser()
		_, err := parser.LoadFromBytes([]byte("plan: [broken"))
		assert.Error(t, err, "Should fail for malformed YAML")
	})

	t.Run("unknown_strategy", func(t *testing.T) {
		parser := config.NewInputParser()
		_, err := parser.LoadFromBytes([]byte("plan:\n  strategy: banana\n"))
		assert.Error(t, err, "Should reject an unknown strategy tag")
	})

	t.Run("nil_spec", func(t *testing.T) {
		parser := config.NewInputParser()
		err := parser.ValidateAndClamp(nil)
		assert.Error(t, err, "Should reject a nil spec")
	})

	t.Run("unsupported_output_format", func(t *testing.T) {
		report := output.NewPlanReport(nil, domain.DefaultRules(), nil)
		err := output.GenerateReport(report, "pdf")
		assert.Error(t, err, "Should reject an unknown output format")
	})

	t.Run("cancelled_context", func(t *testing.T) {
		parser := config.NewInputParser()
		file, err := parser.LoadFromFile("../testdata/family_plan.yaml")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		engine := calculation.NewEngine()
		_, err = engine.BuildPlan(ctx, &file.Plan, file.EffectiveRules())
		assert.Error(t, err, "Should stop when the context is cancelled")
	})
}

// TestStrategyComparison tests the comparison pipeline end to end
func TestStrategyComparison(t *testing.T) {
	parser := config.NewInputParser()
	file, err := parser.LoadFromFile("../testdata/family_plan.yaml")
	require.NoError(t, err)

	engine := calculation.NewEngine()
	compareEngine := compare.NewCompareEngine(engine)

	set, err := compareEngine.CompareStrategies(context.Background(), &file.Plan, file.EffectiveRules())
	require.NoError(t, err, "Should compare both strategies")
	require.NotNil(t, set)
	require.NotNil(t, set.BaseResult, "Should have a base result")
	require.Len(t, set.AlternativeResults, 1, "Should have one alternative")

	alt := set.AlternativeResults[0]
	assert.NotEqual(t, set.BaseResult.Strategy, alt.Strategy, "Base and alternative should differ")
	assert.True(t, alt.TotalIncome.IsPositive(), "Alternative should carry real totals")

	// The delta columns are measured against the base
	wantDiff := alt.TotalIncome.Sub(set.BaseResult.TotalIncome)
	assert.True(t, alt.IncomeDiffFromBase.Equal(wantDiff),
		"Income diff should be alternative minus base: %s vs %s",
		alt.IncomeDiffFromBase.StringFixed(2), wantDiff.StringFixed(2))

	// All three formatters should render the set
	table := (&compare.TableFormatter{}).Format(set)
	assert.NotEmpty(t, table, "Table output should render")

	csvOut, err := (&compare.CSVFormatter{}).Format(set)
	require.NoError(t, err)
	assert.NotEmpty(t, csvOut, "CSV output should render")

	jsonOut, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
	require.NoError(t, err)
	assert.NotEmpty(t, jsonOut, "JSON output should render")
}

// TestWhatIfSearch tests the solver pipeline end to end
func TestWhatIfSearch(t *testing.T) {
	parser := config.NewInputParser()
	file, err := parser.LoadFromFile("../testdata/family_plan.yaml")
	require.NoError(t, err)

	engine := calculation.NewEngine()
	solver := optimize.NewDefaultSolver(engine)

	result, err := solver.Optimize(context.Background(), optimize.OptimizationRequest{
		Spec:        &file.Plan,
		Rules:       file.EffectiveRules(),
		Target:      optimize.OptimizeDaysPerWeek,
		Goal:        optimize.GoalMaximizeIncome,
		Constraints: optimize.DefaultConstraints(),
	})
	require.NoError(t, err, "Should search the cadence axis")
	require.NotNil(t, result)

	assert.True(t, result.Success, "A sane plan should always yield a best cadence")
	assert.Greater(t, result.Iterations, 0, "Should evaluate candidate plans")
	require.NotNil(t, result.OptimalDaysPerWeek, "Should report the winning cadence")
	assert.GreaterOrEqual(t, *result.OptimalDaysPerWeek, 1)
	assert.LessOrEqual(t, *result.OptimalDaysPerWeek, 7)
	assert.True(t, result.TotalIncome.IsPositive(), "Winning plan should carry totals")
}

// TestPerformance tests basic performance requirements
func TestPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance tests in short mode")
	}

	t.Run("calculation_performance", func(t *testing.T) {
		parser := config.NewInputParser()
		file, err := parser.LoadFromFile("../testdata/family_plan.yaml")
		require.NoError(t, err)

		engine := calculation.NewEngine()

		start := time.Now()
		results, err := engine.BuildPlan(context.Background(), &file.Plan, file.EffectiveRules())
		duration := time.Since(start)

		require.NoError(t, err, "Should complete calculation")
		assert.Less(t, duration, 30*time.Second, "Calculation should complete within 30 seconds")

		t.Logf("Calculation completed in %v", duration)
		t.Logf("Produced %d strategy results", len(results))
	})
}

// TestDataConsistency tests that the calculation entry points agree
func TestDataConsistency(t *testing.T) {
	t.Run("pinned_strategy_matches_full_run", func(t *testing.T) {
		parser := config.NewInputParser()
		file, err := parser.LoadFromFile("../testdata/family_plan.yaml")
		require.NoError(t, err)

		engine := calculation.NewEngine()
		rules := file.EffectiveRules()

		// Full run evaluates every strategy
		all, err := engine.BuildPlan(context.Background(), &file.Plan, rules)
		require.NoError(t, err)
		require.Len(t, all, 2)

		// Pinning the strategy restricts the run to one result
		pinned := file.Plan
		pinned.Strategy = domain.StrategyMaximizeIncome

		restricted, err := engine.BuildPlan(context.Background(), &pinned, rules)
		require.NoError(t, err)
		require.Len(t, restricted, 1, "Pinned run should produce a single result")
		assert.Equal(t, domain.StrategyMaximizeIncome, restricted[0].Strategy)

		var fromFull *domain.PlanResult
		for i := range all {
			if all[i].Strategy == domain.StrategyMaximizeIncome {
				fromFull = &all[i]
			}
		}
		require.NotNil(t, fromFull, "Full run should include the pinned strategy")

		assert.True(t, restricted[0].TotalIncome.Equal(fromFull.TotalIncome),
			"Pinned and full runs should agree: %s vs %s",
			restricted[0].TotalIncome.StringFixed(2), fromFull.TotalIncome.StringFixed(2))
		assert.Equal(t, restricted[0].TotalDaysUsed(), fromFull.TotalDaysUsed(),
			"Pinned and full runs should spend the same days")
	})

	t.Run("strategy_entry_point_matches_engine", func(t *testing.T) {
		parser := config.NewInputParser()
		file, err := parser.LoadFromFile("../testdata/family_plan.yaml")
		require.NoError(t, err)

		rules := file.EffectiveRules()

		direct, err := calculation.RunStrategy(context.Background(), &file.Plan, rules, domain.StrategyMinimizeDays)
		require.NoError(t, err)

		engine := calculation.NewEngine()
		all, err := engine.BuildPlan(context.Background(), &file.Plan, rules)
		require.NoError(t, err)

		var fromEngine *domain.PlanResult
		for i := range all {
			if all[i].Strategy == domain.StrategyMinimizeDays {
				fromEngine = &all[i]
			}
		}
		require.NotNil(t, fromEngine)

		assert.True(t, direct.TotalIncome.Equal(fromEngine.TotalIncome),
			"Direct and engine runs should agree: %s vs %s",
			direct.TotalIncome.StringFixed(2), fromEngine.TotalIncome.StringFixed(2))
		assert.Equal(t, direct.TotalDaysUsed(), fromEngine.TotalDaysUsed())
		assert.Equal(t, len(direct.Periods), len(fromEngine.Periods))
	})
}
