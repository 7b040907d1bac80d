package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/calculation"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/domain"
)

func main() {
	rules := domain.DefaultRules()

	fmt.Println("Statutory rate table (net, 30% flat tax):")
	fmt.Printf("Annual ceiling: %s kr, monthly top-up threshold: %s kr\n\n",
		rules.AnnualIncomeCeiling().StringFixed(0), rules.MonthlyTopUpThreshold().StringFixed(0))

	fmt.Printf("%10s  %10s  %10s  %10s  %10s\n", "gross/mo", "wage/day", "standard", "minimum", "top-up")
	for _, gross := range []int64{20000, 30000, 40000, 50000, 60000, 70000} {
		rates := calculation.CalculateDailyRates(profileAt(gross, true), rules)
		fmt.Printf("%10d  %10s  %10s  %10s  %10s\n",
			gross,
			rates.Wage.StringFixed(2),
			rates.Standard.StringFixed(2),
			rates.Minimum.StringFixed(2),
			rates.EmployerTopUp.StringFixed(2))
	}

	fmt.Println("\nWithout collective agreement (45000 kr gross):")
	bare := calculation.CalculateDailyRates(profileAt(45000, false), rules)
	fmt.Printf("standard: %s  top-up: %s\n", bare.Standard.StringFixed(2), bare.EmployerTopUp.StringFixed(2))
}

func profileAt(grossMonthly int64, agreement bool) domain.ParentProfile {
	return domain.ParentProfile{
		Name:                   "sweep",
		MonthlyIncome:          decimal.NewFromInt(grossMonthly),
		HasCollectiveAgreement: agreement,
		TaxRate:                decimal.RequireFromString("0.30"),
	}
}
