package compare

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/calculation"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

func compareSpec() *domain.PlanSpec {
	return &domain.PlanSpec{
		Parent1: domain.ParentProfile{
			Name:          "Alex",
			MonthlyIncome: decimal.NewFromInt(30000),
			TaxRate:       decimal.NewFromFloat(0.30),
		},
		Parent2: domain.ParentProfile{
			Name:                   "Kim",
			MonthlyIncome:          decimal.NewFromInt(55000),
			HasCollectiveAgreement: true,
			TaxRate:                decimal.NewFromFloat(0.32),
		},
		StartDate:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalMonths:      decimal.NewFromInt(6),
		PreferredMonths1: decimal.NewFromInt(4),
		PreferredMonths2: decimal.NewFromInt(2),
		IncomeFloor:      decimal.NewFromInt(30000),
		DaysPerWeek:      5,
	}
}

func TestNewCompareEngine(t *testing.T) {
	calcEngine := calculation.NewEngine()
	ce := NewCompareEngine(calcEngine)

	if ce.CalcEngine != calcEngine {
		t.Error("Expected calculation engine to be wired through")
	}

	if ce.MetricsCalculator == nil {
		t.Error("Expected metrics calculator to be initialized")
	}

	if ce.Parser == nil {
		t.Error("Expected input parser to be initialized")
	}
}

func TestCompareEngine_CompareStrategies(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	compSet, err := ce.CompareStrategies(context.Background(), compareSpec(), domain.DefaultRules())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if compSet.BaseScenarioName != "minimize_days" {
		t.Errorf("Expected base scenario minimize_days, got %s", compSet.BaseScenarioName)
	}

	if compSet.BaseResult == nil {
		t.Fatal("Expected base result")
	}

	if compSet.BaseResult.Plan == nil {
		t.Error("Expected base result to carry the full plan")
	}

	if compSet.BaseResult.DaysUsed <= 0 {
		t.Errorf("Expected base plan to use benefit days, got %d", compSet.BaseResult.DaysUsed)
	}

	if compSet.BaseResult.PlanStart != "2026-01-01" {
		t.Errorf("Expected plan start 2026-01-01, got %s", compSet.BaseResult.PlanStart)
	}

	if len(compSet.AlternativeResults) != 1 {
		t.Fatalf("Expected 1 alternative, got %d", len(compSet.AlternativeResults))
	}

	alt := compSet.AlternativeResults[0]
	if alt.ScenarioName != "maximize_income" {
		t.Errorf("Expected alternative maximize_income, got %s", alt.ScenarioName)
	}

	// The income-maximizing candidate set contains the fewest-days
	// configuration, so it can never come out behind.
	if alt.IncomeDiffFromBase.IsNegative() {
		t.Errorf("Expected maximize_income to match or beat the base income, diff %s",
			alt.IncomeDiffFromBase.String())
	}

	if compSet.BaseResult.Description == "" || alt.Description == "" {
		t.Error("Expected strategy descriptions on both results")
	}
}

func TestCompareEngine_CompareStrategies_NilSpec(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	_, err := ce.CompareStrategies(context.Background(), nil, domain.DefaultRules())
	if err == nil {
		t.Fatal("Expected error for nil spec")
	}
}

const comparePlanYAML = `
plan:
  parent1:
    name: Alex
    monthly_income: 30000
    has_collective_agreement: false
    tax_rate: 0.30
  parent2:
    name: Kim
    monthly_income: 55000
    has_collective_agreement: true
    tax_rate: 0.32
  start_date: 2026-01-01T00:00:00Z
  total_months: 6
  preferred_months_parent1: 4
  preferred_months_parent2: 2
  income_floor: 30000
  days_per_week: 5
`

func TestCompareEngine_CompareFiles(t *testing.T) {
	dir := t.TempDir()

	basePath := filepath.Join(dir, "base.yaml")
	if err := os.WriteFile(basePath, []byte(comparePlanYAML), 0o644); err != nil {
		t.Fatalf("Failed to write base plan: %v", err)
	}

	richPath := filepath.Join(dir, "rich.yaml")
	richYAML := comparePlanYAML + "  strategy: maximize_income\n"
	if err := os.WriteFile(richPath, []byte(richYAML), 0o644); err != nil {
		t.Fatalf("Failed to write alternative plan: %v", err)
	}

	ce := NewCompareEngine(calculation.NewEngine())

	compSet, err := ce.CompareFiles(context.Background(), basePath, []string{richPath})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if compSet.BaseScenarioName != "base" {
		t.Errorf("Expected base scenario named after the file, got %s", compSet.BaseScenarioName)
	}

	if compSet.ConfigPath != basePath {
		t.Errorf("Expected config path %s, got %s", basePath, compSet.ConfigPath)
	}

	if len(compSet.AlternativeResults) != 1 {
		t.Fatalf("Expected 1 alternative, got %d", len(compSet.AlternativeResults))
	}

	alt := compSet.AlternativeResults[0]
	if alt.ScenarioName != "rich" {
		t.Errorf("Expected alternative named after the file, got %s", alt.ScenarioName)
	}

	if alt.Strategy != "maximize_income" {
		t.Errorf("Expected alternative to run its pinned strategy, got %s", alt.Strategy)
	}

	if compSet.BaseResult.Strategy != "minimize_days" {
		t.Errorf("Expected base to default to minimize_days, got %s", compSet.BaseResult.Strategy)
	}

	// Same household, richer strategy: income can only match or grow.
	if alt.IncomeDiffFromBase.IsNegative() {
		t.Errorf("Expected non-negative income diff, got %s", alt.IncomeDiffFromBase.String())
	}

	expectedDiff := alt.TotalIncome.Sub(compSet.BaseResult.TotalIncome)
	if !alt.IncomeDiffFromBase.Equal(expectedDiff) {
		t.Errorf("Expected income diff %s, got %s", expectedDiff.String(), alt.IncomeDiffFromBase.String())
	}
}

func TestCompareEngine_CompareFiles_MissingFile(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	_, err := ce.CompareFiles(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"), nil)
	if err == nil {
		t.Fatal("Expected error for missing base plan file")
	}
}

func TestScenarioNameFromPath(t *testing.T) {
	cases := map[string]string{
		"plans/base.yaml":    "base",
		"maximize.yml":       "maximize",
		"/abs/path/two.json": "two",
		"bare":               "bare",
	}

	for path, want := range cases {
		if got := scenarioNameFromPath(path); got != want {
			t.Errorf("scenarioNameFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
