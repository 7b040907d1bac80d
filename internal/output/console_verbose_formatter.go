package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

// ConsoleVerboseFormatter renders the full detailed console report via the
// pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *PlanReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("format report: report is nil")
	}

	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "DETAILED PARENTAL LEAVE ALLOCATION ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if report.Spec != nil {
		writeHouseholdBreakdown(&buf, report.Spec)
		writeBaselineComparison(&buf, report)
	}

	for i := range report.Results {
		res := &report.Results[i]
		fmt.Fprintf(&buf, "STRATEGY %d: %s\n", i+1, res.Strategy)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeStrategyTotals(&buf, res)
		writeTimeline(&buf, report.Spec, res)
		writeMonthlyBreakdown(&buf, res)
		writePoolUsage(&buf, report.Spec, res)
		if len(res.Warnings) > 0 {
			fmt.Fprintln(&buf, "WARNINGS:")
			for _, w := range res.Warnings {
				fmt.Fprintf(&buf, "⚠ %s\n", w)
			}
			fmt.Fprintln(&buf)
		}
		fmt.Fprintln(&buf)
	}

	// Recommendation section using the shared AnalyzeResults logic.
	if len(report.Results) > 1 {
		rec := AnalyzeResults(report)
		if rec.Strategy != "" {
			fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
			fmt.Fprintln(&buf, "=========================")
			fmt.Fprintf(&buf, "Best strategy: %s\n", rec.Strategy)
			fmt.Fprintf(&buf, "Total Plan Income:  %s\n", FormatCurrency(rec.TotalIncome))
			fmt.Fprintf(&buf, "Income Advantage:   %s over the weakest strategy\n", FormatCurrency(rec.IncomeAdvantage))
			fmt.Fprintf(&buf, "Benefit Days Used:  %d\n", rec.DaysUsed)
		}
	}

	return buf.Bytes(), nil
}

func writeHouseholdBreakdown(buf *bytes.Buffer, spec *domain.PlanSpec) {
	fmt.Fprintln(buf, "HOUSEHOLD NET INCOME BREAKDOWN (Both Working)")
	fmt.Fprintln(buf, "=============================================")
	for _, p := range []domain.ParentProfile{spec.Parent1, spec.Parent2} {
		agreement := "no collective agreement"
		if p.HasCollectiveAgreement {
			agreement = "collective agreement"
		}
		fmt.Fprintf(buf, "%s: %s gross, %s net/month (%s)\n",
			p.Name, FormatCurrency(p.MonthlyIncome), FormatCurrency(p.NetMonthlyIncome()), agreement)
	}
	fmt.Fprintf(buf, "Combined Net Income:  %s/month\n", FormatCurrency(spec.HouseholdNetMonthly()))
	fmt.Fprintf(buf, "Income Floor:         %s/month\n", FormatCurrency(spec.IncomeFloor))
	fmt.Fprintf(buf, "Plan Window:          %s months from %s, %d benefit days/week\n",
		spec.TotalMonths.String(), spec.StartDate.Format("2006-01-02"), spec.DaysPerWeek)
	fmt.Fprintln(buf)
}

// writeBaselineComparison validates each strategy's average month against the
// both-working baseline, component by component.
func writeBaselineComparison(buf *bytes.Buffer, report *PlanReport) {
	fmt.Fprintln(buf, "=================================================================================")
	fmt.Fprintln(buf, "MONTHLY INCOME VALIDATION: BOTH WORKING vs LEAVE PLAN")
	fmt.Fprintln(buf, "=================================================================================")

	baseline := report.Spec.HouseholdNetMonthly()

	for i := range report.Results {
		res := &report.Results[i]

		avgBenefit, avgTopUp, avgSalary := monthlyAverages(res)

		title := fmt.Sprintf("STRATEGY %d: %s", i+1, res.Strategy)
		fmt.Fprintf(buf, "\n%s\n", title)
		fmt.Fprintln(buf, strings.Repeat("=", len(title)))
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "%-35s %15s %15s %15s\n", "COMPONENT", "BOTH WORKING", "PLAN MONTH", "DIFFERENCE")
		fmt.Fprintln(buf, strings.Repeat("-", 80))
		cmpLine(buf, "  Salary Income", baseline, avgSalary)
		cmpLine(buf, "  Statutory Benefit", decimal.Zero, avgBenefit)
		cmpLine(buf, "  Employer Top-Up", decimal.Zero, avgTopUp)
		fmt.Fprintln(buf, strings.Repeat("-", 80))
		cmpLine(buf, "AVERAGE MONTH NET", baseline, res.AverageMonthlyIncome)

		diff := res.AverageMonthlyIncome.Sub(baseline)
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "KEY INSIGHTS:")
		fmt.Fprintf(buf, "• Leave months replace %s of monthly salary with statutory benefit\n",
			FormatCurrency(baseline.Sub(avgSalary)))
		if avgTopUp.GreaterThan(decimal.Zero) {
			fmt.Fprintf(buf, "• Employer top-up adds %s per average month\n", FormatCurrency(avgTopUp))
		}
		if !baseline.IsZero() {
			pct := diff.Div(baseline).Mul(decimal.NewFromInt(100))
			fmt.Fprintf(buf, "\nNet Effect: %s per month (%s)\n", FormatCurrency(diff), FormatPercentage(pct))
		}
		fmt.Fprintln(buf)
	}
}

// monthlyAverages returns per-component averages over the fully covered
// months. Partial edge months would skew a monthly average.
func monthlyAverages(res *domain.PlanResult) (benefit, topUp, salary decimal.Decimal) {
	n := 0
	for _, m := range res.Months {
		if !m.FullyCovered() {
			continue
		}
		benefit = benefit.Add(m.BenefitIncome)
		topUp = topUp.Add(m.TopUpIncome)
		salary = salary.Add(m.SalaryIncome)
		n++
	}
	if n == 0 {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}
	div := decimal.NewFromInt(int64(n))
	return benefit.Div(div).Round(2), topUp.Div(div).Round(2), salary.Div(div).Round(2)
}

func writeStrategyTotals(buf *bytes.Buffer, res *domain.PlanResult) {
	start, end := res.Span()
	if !start.IsZero() {
		fmt.Fprintf(buf, "Plan Span:             %s to %s\n",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	fmt.Fprintf(buf, "Floor Target:          %s/month\n", FormatCurrency(res.FloorTarget))
	fmt.Fprintf(buf, "Total Plan Income:     %s\n", FormatCurrency(res.TotalIncome))
	fmt.Fprintf(buf, "Average Month:         %s\n", FormatCurrency(res.AverageMonthlyIncome))
	fmt.Fprintf(buf, "Benefit Days Used:     %d (%d standard, %d minimum)\n",
		res.TotalDaysUsed(),
		res.Usage.Parent1.StandardUsed+res.Usage.Parent2.StandardUsed,
		res.Usage.Parent1.MinimumUsed+res.Usage.Parent2.MinimumUsed)
	if res.TopUpFirst {
		fmt.Fprintln(buf, "Top-Up Priority:       employer top-up days scheduled first")
	}
	below := res.MonthsBelowFloor()
	if below > 0 {
		fmt.Fprintf(buf, "Months Below Floor:    %d of %d ⚠\n", below, len(res.Months))
	} else {
		fmt.Fprintf(buf, "Months Below Floor:    none (%d months checked) ✓\n", len(res.Months))
	}
	fmt.Fprintln(buf)
}

func writeTimeline(buf *bytes.Buffer, spec *domain.PlanSpec, res *domain.PlanResult) {
	if len(res.Periods) == 0 {
		return
	}
	fmt.Fprintln(buf, "LEAVE TIMELINE:")
	fmt.Fprintln(buf, "----------------------------------------")
	for _, p := range res.Periods {
		dates := fmt.Sprintf("%s - %s", p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
		if p.Tier == domain.TierNone {
			fmt.Fprintf(buf, "  %s  both working\n", dates)
			continue
		}
		line := fmt.Sprintf("  %s  %-10s %-15s %3d days @ %s/day",
			dates, parentName(spec, p.Parent), p.Tier.String(), p.BenefitDays, FormatCurrency(p.DailyBenefit))
		if p.DailyTopUp.GreaterThan(decimal.Zero) {
			line += fmt.Sprintf(" + %s top-up", FormatCurrency(p.DailyTopUp))
		}
		if p.DaysPerWeek > 0 && p.DaysPerWeek < 7 {
			line += fmt.Sprintf(" (%d/week)", p.DaysPerWeek)
		}
		if p.TransferredFrom != domain.ParentNone {
			line += fmt.Sprintf(" [transferred from %s]", parentName(spec, p.TransferredFrom))
		}
		fmt.Fprintln(buf, line)
	}
	fmt.Fprintln(buf)
}

func writeMonthlyBreakdown(buf *bytes.Buffer, res *domain.PlanResult) {
	if len(res.Months) == 0 {
		return
	}
	fmt.Fprintln(buf, "MONTHLY BREAKDOWN:")
	fmt.Fprintln(buf, "----------------------------------------")
	fmt.Fprintf(buf, "%-9s %8s %14s %14s %14s %14s\n",
		"Month", "Days", "Benefit", "Top-Up", "Salary", "Total")
	for _, m := range res.Months {
		flag := ""
		if m.BelowFloor {
			flag = " ⚠ below floor"
		}
		fmt.Fprintf(buf, "%-9s %4d/%-3d %14s %14s %14s %14s%s\n",
			m.Key(), m.CoveredDays, m.MonthDays,
			m.BenefitIncome.StringFixed(2), m.TopUpIncome.StringFixed(2),
			m.SalaryIncome.StringFixed(2), m.TotalIncome.StringFixed(2), flag)
	}
	fmt.Fprintln(buf)
}

func writePoolUsage(buf *bytes.Buffer, spec *domain.PlanSpec, res *domain.PlanResult) {
	fmt.Fprintln(buf, "DAY POOL USAGE:")
	fmt.Fprintln(buf, "---------------")
	for _, id := range []domain.ParentID{domain.Parent1, domain.Parent2} {
		u := res.Usage.For(id)
		fmt.Fprintf(buf, "  %-10s %3d standard used (%d remaining), %3d minimum used (%d remaining)\n",
			parentName(spec, id), u.StandardUsed, u.StandardRemaining, u.MinimumUsed, u.MinimumRemaining)
	}
	fmt.Fprintln(buf)
}

func cmpLine(buf *bytes.Buffer, label string, working, plan decimal.Decimal) {
	diff := plan.Sub(working)
	fmt.Fprintf(buf, "%-35s %15s %15s %15s\n", label, FormatCurrency(working), FormatCurrency(plan), FormatCurrency(diff))
}

// parentName resolves a caregiver identity to their configured name, falling
// back to the wire name when no spec is attached.
func parentName(spec *domain.PlanSpec, id domain.ParentID) string {
	if spec == nil {
		return id.String()
	}
	switch id {
	case domain.Parent1:
		return spec.Parent1.Name
	case domain.Parent2:
		return spec.Parent2.Name
	case domain.BothParents:
		return "Both"
	}
	return id.String()
}
