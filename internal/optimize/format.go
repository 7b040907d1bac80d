package optimize

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("WHAT-IF OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Optimization metadata
	sb.WriteString(fmt.Sprintf("Optimization Target: %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Optimization Goal:   %s\n", result.Request.Goal))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	// Optimal parameters found
	sb.WriteString("OPTIMAL PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if result.OptimalMonthsParent1 != nil && result.OptimalMonthsParent2 != nil {
		sb.WriteString(fmt.Sprintf("Leave Split:         %s / %s months (%s)\n",
			result.OptimalMonthsParent1.StringFixed(1),
			result.OptimalMonthsParent2.StringFixed(1),
			tf.splitNames(result)))
	}
	if result.OptimalFloor != nil {
		sb.WriteString(fmt.Sprintf("Income Floor:        %s kr\n", result.OptimalFloor.StringFixed(0)))
	}
	if result.OptimalDaysPerWeek != nil {
		sb.WriteString(fmt.Sprintf("Days Per Week:       %d\n", *result.OptimalDaysPerWeek))
	}
	sb.WriteString("\n")

	// Results at optimal parameters
	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Total Household Income: %s kr\n", tf.formatCurrency(result.TotalIncome)))
	sb.WriteString(fmt.Sprintf("Average Month:          %s kr\n", tf.formatCurrency(result.AverageMonthlyIncome)))
	sb.WriteString(fmt.Sprintf("Benefit Days Used:      %d\n", result.DaysUsed))
	sb.WriteString(fmt.Sprintf("Months Below Floor:     %d\n", result.MonthsBelowFloor))
	if result.Plan != nil {
		start, end := result.Plan.Span()
		if !start.IsZero() {
			sb.WriteString(fmt.Sprintf("Plan Window:            %s - %s\n",
				start.Format("January 2, 2006"), end.Format("January 2, 2006")))
		}
		sb.WriteString(fmt.Sprintf("Warnings:               %d\n", len(result.Plan.Warnings)))
	}
	sb.WriteString("\n")

	// Goal-specific information
	if result.Request.Goal == GoalMatchIncome && result.Request.Constraints.TargetIncome != nil {
		sb.WriteString("TARGET INCOME MATCH\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Target Income:    %s kr\n", tf.formatCurrency(*result.Request.Constraints.TargetIncome)))
		sb.WriteString(fmt.Sprintf("Achieved Income:  %s kr\n", tf.formatCurrency(result.AverageMonthlyIncome)))
		diff := result.AverageMonthlyIncome.Sub(*result.Request.Constraints.TargetIncome)
		sb.WriteString(fmt.Sprintf("Difference:       %s%s kr\n", tf.deltaSymbol(diff), tf.formatCurrency(diff.Abs())))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiDimensional formats results from multiple optimizations
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("MULTI-DIMENSIONAL OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	// Summary table of all results
	sb.WriteString("SUMMARY OF ALL OPTIMIZATIONS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %16s %12s %14s %16s\n",
		"Optimization", "Total Income", "Days Used", "Below Floor", "Average Month"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		targetStr := string(res.Request.Target)
		sb.WriteString(fmt.Sprintf("%-16s %16s %12d %14d %16s\n",
			tf.truncate(targetStr, 16),
			tf.formatShort(res.TotalIncome)+" kr",
			res.DaysUsed,
			res.MonthsBelowFloor,
			tf.formatShort(res.AverageMonthlyIncome)+" kr"))
	}
	sb.WriteString("\n")

	// Best scenarios
	sb.WriteString("BEST SCENARIOS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if result.BestByIncome != nil {
		sb.WriteString(fmt.Sprintf("Best Income:     %s (%s kr total)\n",
			result.BestByIncome.Request.Target,
			tf.formatCurrency(result.BestByIncome.TotalIncome)))
	}
	if result.BestByDays != nil {
		sb.WriteString(fmt.Sprintf("Fewest Days:     %s (%d benefit days)\n",
			result.BestByDays.Request.Target,
			result.BestByDays.DaysUsed))
	}
	if result.BestByCoverage != nil {
		sb.WriteString(fmt.Sprintf("Best Coverage:   %s (%d month(s) below floor)\n",
			result.BestByCoverage.Request.Target,
			result.BestByCoverage.MonthsBelowFloor))
	}
	sb.WriteString("\n")

	// Recommendations
	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) splitNames(result *OptimizationResult) string {
	if result.Request.Spec == nil {
		return "parent1 / parent2"
	}
	return result.Request.Spec.Parent1.Name + " / " + result.Request.Spec.Parent2.Name
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
