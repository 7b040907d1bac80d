package optimize

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func sampleResult() *OptimizationResult {
	floor := decimal.NewFromInt(42500)
	target := decimal.NewFromInt(46000)

	return &OptimizationResult{
		Request: OptimizationRequest{
			Target: OptimizeFloor,
			Goal:   GoalMatchIncome,
			Constraints: Constraints{
				TargetIncome: &target,
			},
		},
		Success:              true,
		Iterations:           7,
		ConvergenceInfo:      "Binary search converged",
		OptimalFloor:         &floor,
		TotalIncome:          decimal.NewFromInt(690000),
		AverageMonthlyIncome: decimal.NewFromInt(46000),
		DaysUsed:             355,
		MonthsBelowFloor:     0,
	}
}

func TestTableFormatter_Format(t *testing.T) {
	tf := &TableFormatter{}

	output := tf.Format(sampleResult())

	for _, want := range []string{
		"WHAT-IF OPTIMIZATION RESULTS",
		"OPTIMAL PARAMETERS",
		"Income Floor:        42500 kr",
		"PROJECTED RESULTS",
		"Benefit Days Used:      355",
		"TARGET INCOME MATCH",
		"✓ Converged",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestTableFormatter_FormatHandlesMissingPlan(t *testing.T) {
	tf := &TableFormatter{}

	res := sampleResult()
	res.Plan = nil
	res.Success = false

	output := tf.Format(res)

	if !strings.Contains(output, "⚠ Did not converge") {
		t.Error("Expected non-converged status marker")
	}
	if strings.Contains(output, "Plan Window") {
		t.Error("Expected plan window to be omitted without a plan")
	}
}

func TestTableFormatter_FormatMultiDimensional(t *testing.T) {
	tf := &TableFormatter{}

	res := *sampleResult()
	md := &MultiDimensionalResult{
		Results:         []OptimizationResult{res},
		BestByIncome:    &res,
		BestByDays:      &res,
		BestByCoverage:  &res,
		Recommendations: []string{"Raise the floor"},
	}

	output := tf.FormatMultiDimensional(md)

	for _, want := range []string{
		"MULTI-DIMENSIONAL OPTIMIZATION RESULTS",
		"SUMMARY OF ALL OPTIMIZATIONS",
		"BEST SCENARIOS",
		"RECOMMENDATIONS",
		"• Raise the floor",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	jf := &JSONFormatter{Pretty: true}

	output, err := jf.Format(sampleResult())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}

	if _, ok := decoded["optimal_floor"]; !ok {
		t.Error("Expected optimal_floor in JSON output")
	}
}
