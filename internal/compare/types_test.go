package compare

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	plan := &domain.PlanResult{
		Strategy:             domain.StrategyMinimizeDays,
		TotalIncome:          decimal.NewFromInt(540000),
		AverageMonthlyIncome: decimal.NewFromInt(45000),
		Periods: []domain.LeavePeriod{
			{
				Parent: domain.Parent1,
				Start:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				End:    time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			},
		},
		Months: []domain.MonthBreakdown{
			{
				Month:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				CoveredDays: 31,
				MonthDays:   31,
				TotalIncome: decimal.NewFromInt(46000),
			},
			{
				Month:       time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				CoveredDays: 28,
				MonthDays:   28,
				TotalIncome: decimal.NewFromInt(43200),
				BelowFloor:  true,
			},
			{
				// Partial edge month; its prorated total must not become
				// the reported minimum.
				Month:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				CoveredDays: 15,
				MonthDays:   31,
				TotalIncome: decimal.NewFromInt(21000),
			},
		},
		Usage: domain.PoolUsage{
			Parent1: domain.ParentUsage{StandardUsed: 120, MinimumUsed: 10},
			Parent2: domain.ParentUsage{StandardUsed: 60, MinimumUsed: 5},
		},
		Warnings: []string{"standard pool exhausted for Alex"},
	}

	result := calc.CalculateMetrics("Test Plan", plan)

	if result.ScenarioName != "Test Plan" {
		t.Errorf("Expected scenario name 'Test Plan', got %s", result.ScenarioName)
	}

	if !result.TotalIncome.Equal(decimal.NewFromInt(540000)) {
		t.Errorf("Expected total income 540000, got %s", result.TotalIncome.String())
	}

	if !result.AverageMonthlyIncome.Equal(decimal.NewFromInt(45000)) {
		t.Errorf("Expected average month 45000, got %s", result.AverageMonthlyIncome.String())
	}

	if !result.LowestMonthIncome.Equal(decimal.NewFromInt(43200)) {
		t.Errorf("Expected lowest covered month 43200, got %s", result.LowestMonthIncome.String())
	}

	if result.DaysUsed != 195 {
		t.Errorf("Expected 195 benefit days used, got %d", result.DaysUsed)
	}

	if result.MinimumDaysUsed != 15 {
		t.Errorf("Expected 15 minimum-level days, got %d", result.MinimumDaysUsed)
	}

	if result.MonthsBelowFloor != 1 {
		t.Errorf("Expected 1 month below floor, got %d", result.MonthsBelowFloor)
	}

	if result.WarningCount != 1 {
		t.Errorf("Expected 1 warning, got %d", result.WarningCount)
	}

	if result.Strategy != "minimize_days" {
		t.Errorf("Expected strategy minimize_days, got %s", result.Strategy)
	}

	if result.PlanStart != "2026-01-01" {
		t.Errorf("Expected plan start 2026-01-01, got %s", result.PlanStart)
	}

	if result.PlanEnd != "2026-06-30" {
		t.Errorf("Expected plan end 2026-06-30, got %s", result.PlanEnd)
	}
}

func TestMetricsCalculator_CalculateMetrics_NilPlan(t *testing.T) {
	calc := NewMetricsCalculator()

	result := calc.CalculateMetrics("Empty", nil)

	if result.ScenarioName != "Empty" {
		t.Errorf("Expected scenario name 'Empty', got %s", result.ScenarioName)
	}

	if !result.TotalIncome.IsZero() {
		t.Errorf("Expected zero total income for nil plan, got %s", result.TotalIncome.String())
	}

	if result.DaysUsed != 0 {
		t.Errorf("Expected zero days used for nil plan, got %d", result.DaysUsed)
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{
		ScenarioName:     "Base",
		TotalIncome:      decimal.NewFromInt(600000),
		DaysUsed:         300,
		MonthsBelowFloor: 2,
	}

	scenario := ComparisonResult{
		ScenarioName:     "Alternative",
		TotalIncome:      decimal.NewFromInt(640000),
		DaysUsed:         280,
		MonthsBelowFloor: 0,
	}

	result := calc.CalculateComparison(scenario, base)

	// Check income difference: 640000 - 600000 = 40000
	expectedIncomeDiff := decimal.NewFromInt(40000)
	if !result.IncomeDiffFromBase.Equal(expectedIncomeDiff) {
		t.Errorf("Expected income diff %s, got %s", expectedIncomeDiff.String(), result.IncomeDiffFromBase.String())
	}

	// Check percentage: 40000 / 600000 * 100 = 6.67%
	expectedPct := decimal.NewFromFloat(6.666666666666667)
	if result.IncomePctFromBase.Sub(expectedPct).Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
		t.Errorf("Expected income pct ~6.67, got %s", result.IncomePctFromBase.String())
	}

	// Check benefit day difference: 280 - 300 = -20
	if result.DaysDiffFromBase != -20 {
		t.Errorf("Expected days diff -20, got %d", result.DaysDiffFromBase)
	}

	// Check floor coverage difference: 0 - 2 = -2
	if result.BelowFloorDiff != -2 {
		t.Errorf("Expected below-floor diff -2, got %d", result.BelowFloorDiff)
	}
}

func TestMetricsCalculator_CalculateComparison_ZeroBase(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{ScenarioName: "Base"}
	scenario := ComparisonResult{
		ScenarioName: "Alternative",
		TotalIncome:  decimal.NewFromInt(100000),
	}

	result := calc.CalculateComparison(scenario, base)

	if !result.IncomeDiffFromBase.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("Expected income diff 100000, got %s", result.IncomeDiffFromBase.String())
	}

	// A zero-income base has no meaningful percentage
	if !result.IncomePctFromBase.IsZero() {
		t.Errorf("Expected zero pct against zero base, got %s", result.IncomePctFromBase.String())
	}
}

func TestGenerateRecommendations(t *testing.T) {
	baseResult := &ComparisonResult{
		ScenarioName:     "Base",
		TotalIncome:      decimal.NewFromInt(600000),
		DaysUsed:         300,
		MonthsBelowFloor: 1,
	}

	alt1 := ComparisonResult{
		ScenarioName:       "Alternative 1",
		TotalIncome:        decimal.NewFromInt(660000),
		IncomeDiffFromBase: decimal.NewFromInt(60000),
		DaysUsed:           330,
		DaysDiffFromBase:   30,
		MonthsBelowFloor:   1,
	}

	alt2 := ComparisonResult{
		ScenarioName:       "Alternative 2",
		TotalIncome:        decimal.NewFromInt(610000),
		IncomeDiffFromBase: decimal.NewFromInt(10000),
		DaysUsed:           250,
		DaysDiffFromBase:   -50,
		MonthsBelowFloor:   0,
		BelowFloorDiff:     -1,
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   "Base",
		BaseResult:         baseResult,
		AlternativeResults: []ComparisonResult{alt1, alt2},
	}

	recommendations := GenerateRecommendations(compSet)

	if len(recommendations) == 0 {
		t.Fatal("Expected recommendations, got none")
	}

	// Should recommend alt1 for best income
	foundIncomeRec := false
	for _, rec := range recommendations {
		if contains(rec, "Alternative 1") && contains(rec, "Best Income") {
			foundIncomeRec = true
		}
	}

	if !foundIncomeRec {
		t.Error("Expected recommendation for best income (Alternative 1)")
	}

	// Should recommend alt2 for fewest benefit days
	foundDaysRec := false
	for _, rec := range recommendations {
		if contains(rec, "Alternative 2") && contains(rec, "Fewest Days") {
			foundDaysRec = true
		}
	}

	if !foundDaysRec {
		t.Error("Expected recommendation for fewest days (Alternative 2)")
	}

	// Should recommend alt2 for best floor coverage
	foundCoverageRec := false
	for _, rec := range recommendations {
		if contains(rec, "Alternative 2") && contains(rec, "Best Coverage") {
			foundCoverageRec = true
		}
	}

	if !foundCoverageRec {
		t.Error("Expected recommendation for best coverage (Alternative 2)")
	}
}

func TestGenerateRecommendations_EmptyAlternatives(t *testing.T) {
	baseResult := &ComparisonResult{
		ScenarioName: "Base",
		TotalIncome:  decimal.NewFromInt(600000),
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   "Base",
		BaseResult:         baseResult,
		AlternativeResults: []ComparisonResult{},
	}

	recommendations := GenerateRecommendations(compSet)

	if len(recommendations) != 0 {
		t.Errorf("Expected no recommendations, got %d", len(recommendations))
	}
}

func TestGenerateRecommendations_NoBetterThanBase(t *testing.T) {
	baseResult := &ComparisonResult{
		ScenarioName:     "Base",
		TotalIncome:      decimal.NewFromInt(600000),
		DaysUsed:         250,
		MonthsBelowFloor: 0,
	}

	alt1 := ComparisonResult{
		ScenarioName:       "Alternative 1",
		TotalIncome:        decimal.NewFromInt(580000),
		IncomeDiffFromBase: decimal.NewFromInt(-20000),
		DaysUsed:           300,
		DaysDiffFromBase:   50,
		MonthsBelowFloor:   2,
		BelowFloorDiff:     2,
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   "Base",
		BaseResult:         baseResult,
		AlternativeResults: []ComparisonResult{alt1},
	}

	recommendations := GenerateRecommendations(compSet)

	// Should not recommend alternatives that are worse than base
	if len(recommendations) > 0 {
		t.Logf("Recommendations: %v", recommendations)
		t.Error("Expected no recommendations when alternatives are worse than base")
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(s) > len(substr) && (s[:len(substr)] == substr || s[len(s)-len(substr):] == substr || containsInMiddle(s, substr)))
}

func containsInMiddle(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
