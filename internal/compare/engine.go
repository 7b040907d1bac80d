package compare

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/calculation"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/config"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// CompareEngine orchestrates plan comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	Parser            *config.InputParser
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		Parser:            config.NewInputParser(),
	}
}

// CompareStrategies runs both allocation strategies over one household and
// lines them up: fewest-days is the base, highest-income the alternative.
func (ce *CompareEngine) CompareStrategies(
	ctx context.Context,
	spec *domain.PlanSpec,
	rules domain.BenefitRules,
) (*ComparisonSet, error) {

	if spec == nil {
		return nil, fmt.Errorf("compare strategies: spec is nil")
	}

	basePlan, err := calculation.RunStrategy(ctx, spec, rules, domain.StrategyMinimizeDays)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base strategy: %w", err)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(string(domain.StrategyMinimizeDays), &basePlan)
	baseResult.Description = strategyDescription(domain.StrategyMinimizeDays)

	altPlan, err := calculation.RunStrategy(ctx, spec, rules, domain.StrategyMaximizeIncome)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate %s strategy: %w", domain.StrategyMaximizeIncome, err)
	}

	altResult := ce.MetricsCalculator.CalculateMetrics(string(domain.StrategyMaximizeIncome), &altPlan)
	altResult.Description = strategyDescription(domain.StrategyMaximizeIncome)
	altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

	compSet := &ComparisonSet{
		BaseScenarioName:   string(domain.StrategyMinimizeDays),
		BaseResult:         &baseResult,
		AlternativeResults: []ComparisonResult{altResult},
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareFiles loads plan files from disk and compares the alternatives
// against the first. Each file runs under its own rule overrides and its own
// pinned strategy, fewest-days when the file names none, so two households
// or two drafts of the same household can sit in one table.
func (ce *CompareEngine) CompareFiles(
	ctx context.Context,
	basePath string,
	alternativePaths []string,
) (*ComparisonSet, error) {

	baseResult, err := ce.runFile(ctx, basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base plan: %w", err)
	}

	alternatives := []ComparisonResult{}

	for _, path := range alternativePaths {
		altResult, err := ce.runFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate plan %s: %w", path, err)
		}

		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseResult.ScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         basePath,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// runFile loads one plan file and runs it through the pipeline.
func (ce *CompareEngine) runFile(ctx context.Context, path string) (ComparisonResult, error) {
	file, err := ce.Parser.LoadFromFile(path)
	if err != nil {
		return ComparisonResult{}, err
	}

	strategy := domain.StrategyMinimizeDays
	if file.Plan.Strategy.Valid() {
		strategy = file.Plan.Strategy
	}

	plan, err := calculation.RunStrategy(ctx, &file.Plan, file.EffectiveRules(), strategy)
	if err != nil {
		return ComparisonResult{}, err
	}

	result := ce.MetricsCalculator.CalculateMetrics(scenarioNameFromPath(path), &plan)
	result.Description = strategyDescription(strategy)
	return result, nil
}

// scenarioNameFromPath derives a display name from a plan file path.
func scenarioNameFromPath(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func strategyDescription(strategy domain.StrategyKind) string {
	switch strategy {
	case domain.StrategyMaximizeIncome:
		return "Raises the monthly target to bank as much paid leave income as possible"
	case domain.StrategyMinimizeDays:
		return "Spends the fewest benefit days that keep every month at the income floor"
	}
	return ""
}
