package compare

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// ComparisonResult represents a single plan scenario with calculated metrics
type ComparisonResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description"`
	Plan         *domain.PlanResult

	// Key Metrics
	TotalIncome          decimal.Decimal `json:"totalIncome"`
	AverageMonthlyIncome decimal.Decimal `json:"averageMonthlyIncome"`
	LowestMonthIncome    decimal.Decimal `json:"lowestMonthIncome"`
	DaysUsed             int             `json:"daysUsed"`
	MinimumDaysUsed      int             `json:"minimumDaysUsed"`
	MonthsBelowFloor     int             `json:"monthsBelowFloor"`
	WarningCount         int             `json:"warningCount"`

	// Comparison to Base
	IncomeDiffFromBase decimal.Decimal `json:"incomeDiffFromBase"`
	IncomePctFromBase  decimal.Decimal `json:"incomePctFromBase"`
	DaysDiffFromBase   int             `json:"daysDiffFromBase"`
	BelowFloorDiff     int             `json:"belowFloorDiff"`

	// Scenario Specifics (extracted from the plan for display)
	Strategy  string `json:"strategy,omitempty"`
	PlanStart string `json:"planStart,omitempty"`
	PlanEnd   string `json:"planEnd,omitempty"`
}

// ComparisonSet represents a collection of plan comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from plan results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for one plan result
func (mc *MetricsCalculator) CalculateMetrics(name string, plan *domain.PlanResult) ComparisonResult {
	result := ComparisonResult{
		ScenarioName: name,
		Plan:         plan,
	}
	if plan == nil {
		return result
	}

	result.TotalIncome = plan.TotalIncome
	result.AverageMonthlyIncome = plan.AverageMonthlyIncome
	result.LowestMonthIncome = mc.lowestCoveredMonth(plan)
	result.DaysUsed = plan.TotalDaysUsed()
	result.MinimumDaysUsed = plan.Usage.Parent1.MinimumUsed + plan.Usage.Parent2.MinimumUsed
	result.MonthsBelowFloor = plan.MonthsBelowFloor()
	result.WarningCount = len(plan.Warnings)
	result.Strategy = string(plan.Strategy)

	start, end := plan.Span()
	if !start.IsZero() {
		result.PlanStart = start.Format("2006-01-02")
		result.PlanEnd = end.Format("2006-01-02")
	}

	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.IncomeDiffFromBase = scenario.TotalIncome.Sub(base.TotalIncome)

	if !base.TotalIncome.IsZero() {
		scenario.IncomePctFromBase = scenario.IncomeDiffFromBase.
			Div(base.TotalIncome).
			Mul(decimal.NewFromInt(100))
	}

	scenario.DaysDiffFromBase = scenario.DaysUsed - base.DaysUsed
	scenario.BelowFloorDiff = scenario.MonthsBelowFloor - base.MonthsBelowFloor

	return scenario
}

// lowestCoveredMonth finds the leanest fully covered month. Partial edge
// months carry prorated totals that would dominate the minimum without
// telling the household anything.
func (mc *MetricsCalculator) lowestCoveredMonth(plan *domain.PlanResult) decimal.Decimal {
	lowest := decimal.Zero
	found := false
	for _, m := range plan.Months {
		if !m.FullyCovered() {
			continue
		}
		if !found || m.TotalIncome.LessThan(lowest) {
			lowest = m.TotalIncome
			found = true
		}
	}
	return lowest
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Find best scenario by total household income
	bestIncome := compSet.BaseResult
	for _, alt := range compSet.AlternativeResults {
		if alt.TotalIncome.GreaterThan(bestIncome.TotalIncome) {
			bestIncome = &alt
		}
	}

	if bestIncome != compSet.BaseResult {
		incomeDiff := bestIncome.TotalIncome.Sub(compSet.BaseResult.TotalIncome)
		recommendations = append(recommendations,
			"Best Income: "+bestIncome.ScenarioName+" provides "+incomeDiff.StringFixed(0)+
				" kr more household income than the base plan")
	}

	// Find the cheapest scenario in benefit days
	fewestDays := compSet.BaseResult
	for _, alt := range compSet.AlternativeResults {
		if alt.DaysUsed < fewestDays.DaysUsed {
			fewestDays = &alt
		}
	}

	if fewestDays != compSet.BaseResult {
		daysDiff := compSet.BaseResult.DaysUsed - fewestDays.DaysUsed
		recommendations = append(recommendations,
			"Fewest Days: "+fewestDays.ScenarioName+" banks "+
				fmt.Sprintf("%d benefit days", daysDiff)+" for later")
	}

	// Find best floor coverage
	bestCoverage := compSet.BaseResult
	for _, alt := range compSet.AlternativeResults {
		if alt.MonthsBelowFloor < bestCoverage.MonthsBelowFloor {
			bestCoverage = &alt
		}
	}

	if bestCoverage != compSet.BaseResult {
		monthsDiff := compSet.BaseResult.MonthsBelowFloor - bestCoverage.MonthsBelowFloor
		recommendations = append(recommendations,
			"Best Coverage: "+bestCoverage.ScenarioName+" keeps "+
				fmt.Sprintf("%d more months", monthsDiff)+" above the income floor")
	}

	return recommendations
}
