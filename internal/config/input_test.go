package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
	"github.com/Fiskerik/foraldra-boost-sub000/pkg/dateutil"
)

const validPlanYAML = `
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
  total_months: 15
  preferred_months_parent1: 10
  preferred_months_parent2: 5
  income_floor: 45000
  days_per_week: 5
`

func TestLoadFromBytes(t *testing.T) {
	parser := NewInputParser()
	file, err := parser.LoadFromBytes([]byte(validPlanYAML))
	require.NoError(t, err)

	assert.Equal(t, "Alex", file.Plan.Parent1.Name)
	assert.True(t, file.Plan.Parent2.HasCollectiveAgreement)
	assert.True(t, file.Plan.TotalMonths.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 5, file.Plan.DaysPerWeek)
	assert.Equal(t, dateutil.Date(2026, 1, 1), file.Plan.StartDate)
}

func TestLoadFromBytesBadYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromBytes([]byte("plan: [not: a: mapping"))
	assert.Error(t, err)
}

func TestEffectiveRulesDefaults(t *testing.T) {
	file := &PlanFile{}
	rules := file.EffectiveRules()
	assert.Equal(t, domain.DefaultRules().StandardDays, rules.StandardDays)

	override := domain.DefaultRules()
	override.StandardDays = 200
	file.Rules = &override
	assert.Equal(t, 200, file.EffectiveRules().StandardDays)
}

func TestEffectiveRulesClampsHostileOverrides(t *testing.T) {
	bad := domain.BenefitRules{
		StandardDays:          100,
		ReservedDays:          90, // impossible: 2x90 > 100
		MinimumDays:           -5,
		MaxTopUpPasses:        -1,
		DaysPerYear:           decimal.Zero,
		WeeksPerMonth:         decimal.NewFromInt(-4),
		StandardBeforeMinimum: 60,
	}
	file := &PlanFile{Rules: &bad}
	rules := file.EffectiveRules()

	assert.Equal(t, 50, rules.ReservedDays)
	assert.Equal(t, 0, rules.MinimumDays)
	assert.Equal(t, domain.DefaultRules().MaxTopUpPasses, rules.MaxTopUpPasses)
	assert.True(t, rules.DaysPerYear.Equal(decimal.NewFromInt(365)))
	assert.True(t, rules.WeeksPerMonth.Equal(decimal.NewFromFloat(4.3)))
	assert.Equal(t, 60, rules.StandardBeforeMinimumWithTopUp,
		"agreement threshold can never undercut the base threshold")
}

func TestValidateAndClampDegenerateInputs(t *testing.T) {
	spec := &domain.PlanSpec{
		Parent1: domain.ParentProfile{
			MonthlyIncome: decimal.NewFromInt(-30000),
			TaxRate:       decimal.NewFromFloat(1.4),
		},
		Parent2: domain.ParentProfile{
			MonthlyIncome: decimal.NewFromInt(40000),
			TaxRate:       decimal.NewFromFloat(-0.2),
		},
		TotalMonths:      decimal.NewFromInt(-3),
		PreferredMonths1: decimal.NewFromInt(-1),
		IncomeFloor:      decimal.NewFromInt(-100),
		DaysPerWeek:      12,
		StartDate:        dateutil.Date(2026, 3, 1),
	}

	require.NoError(t, NewInputParser().ValidateAndClamp(spec))

	assert.True(t, spec.Parent1.MonthlyIncome.IsZero())
	assert.True(t, spec.Parent1.TaxRate.Equal(decimal.NewFromInt(1)))
	assert.True(t, spec.Parent2.TaxRate.IsZero())
	assert.True(t, spec.TotalMonths.IsZero())
	assert.True(t, spec.PreferredMonths1.IsZero())
	assert.True(t, spec.IncomeFloor.IsZero())
	assert.Equal(t, 7, spec.DaysPerWeek)
}

func TestValidateAndClampScalesOversizedSplit(t *testing.T) {
	spec := &domain.PlanSpec{
		TotalMonths:      decimal.NewFromInt(12),
		PreferredMonths1: decimal.NewFromInt(16),
		PreferredMonths2: decimal.NewFromInt(8),
		StartDate:        dateutil.Date(2026, 1, 1),
	}
	require.NoError(t, NewInputParser().ValidateAndClamp(spec))

	assert.True(t, spec.PreferredMonths1.Equal(decimal.NewFromInt(8)), "got %s", spec.PreferredMonths1)
	assert.True(t, spec.PreferredMonths2.Equal(decimal.NewFromInt(4)), "got %s", spec.PreferredMonths2)
}

func TestValidateAndClampDefaultsStartDate(t *testing.T) {
	spec := &domain.PlanSpec{}
	require.NoError(t, NewInputParser().ValidateAndClamp(spec))
	assert.False(t, spec.StartDate.IsZero())
	assert.Equal(t, 1, spec.StartDate.Day(), "defaults to a month boundary")
	assert.Equal(t, 7, spec.DaysPerWeek)
}

func TestValidateAndClampNormalizesCutoffs(t *testing.T) {
	cutoff := time.Date(2026, 8, 15, 13, 45, 0, 0, time.Local)
	spec := &domain.PlanSpec{
		StartDate:     dateutil.Date(2026, 1, 1),
		CutoffParent2: &cutoff,
	}
	require.NoError(t, NewInputParser().ValidateAndClamp(spec))
	require.NotNil(t, spec.CutoffParent2)
	assert.Equal(t, dateutil.Date(2026, 8, 15), *spec.CutoffParent2)
}

func TestValidateAndClampRejectsUnknownStrategy(t *testing.T) {
	spec := &domain.PlanSpec{Strategy: domain.StrategyKind("wish_for_more_days")}
	assert.Error(t, NewInputParser().ValidateAndClamp(spec))

	spec.Strategy = domain.StrategyMaximizeIncome
	assert.NoError(t, NewInputParser().ValidateAndClamp(spec))
}

func TestValidateAndClampNilSpec(t *testing.T) {
	assert.Error(t, NewInputParser().ValidateAndClamp(nil))
}
