package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/calculation"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/config"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/optimize"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/output"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [plan-file]",
	Short: "Search for the best split, floor, or cadence for a plan",
	Long: `Run a bounded what-if search over one plan parameter and report the
configuration that best serves the chosen goal.

Examples:
  foraldraboost optimize plan.yaml --target split
  foraldraboost optimize plan.yaml --target income_floor --goal match_income --target-income 43000
  foraldraboost optimize plan.yaml --target all --goal minimize_days
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		targetStr, _ := cmd.Flags().GetString("target")
		target := optimize.OptimizationTarget(targetStr)
		switch target {
		case optimize.OptimizeSplit, optimize.OptimizeFloor, optimize.OptimizeDaysPerWeek, optimize.OptimizeAll:
		default:
			log.Fatalf("unknown target %q (valid: split, income_floor, days_per_week, all)", targetStr)
		}

		goalStr, _ := cmd.Flags().GetString("goal")
		goal := optimize.OptimizationGoal(goalStr)
		switch goal {
		case optimize.GoalMatchIncome, optimize.GoalMaximizeIncome, optimize.GoalMinimizeDays:
		default:
			log.Fatalf("unknown goal %q (valid: match_income, maximize_income, minimize_days)", goalStr)
		}

		constraints := optimize.DefaultConstraints()
		targetIncome, _ := cmd.Flags().GetFloat64("target-income")
		if targetIncome > 0 {
			value := decimal.NewFromFloat(targetIncome)
			constraints.TargetIncome = &value
		}
		if goal == optimize.GoalMatchIncome && constraints.TargetIncome == nil {
			log.Fatal("--target-income is required for the match_income goal")
		}

		parser := config.NewInputParser()
		file, err := parser.LoadFromFile(inputFile)
		if err != nil {
			log.Fatal(err)
		}
		rules := file.EffectiveRules()

		engine := calculation.NewEngine()
		debugMode, _ := cmd.Flags().GetBool("debug")
		if debugMode {
			engine.SetLogger(simpleCLILogger{})
		}
		solver := optimize.NewDefaultSolver(engine)

		ctx := context.Background()

		if target == optimize.OptimizeAll {
			mdResult, err := solver.OptimizeAllTargets(ctx, &file.Plan, rules, constraints, goal)
			if err != nil {
				log.Fatalf("Search failed: %v", err)
			}
			printMultiDimensionalResult(mdResult)
			return
		}

		maxIterations, _ := cmd.Flags().GetInt("max-iterations")
		req := optimize.OptimizationRequest{
			Spec:          &file.Plan,
			Rules:         rules,
			Target:        target,
			Goal:          goal,
			Constraints:   constraints,
			MaxIterations: maxIterations,
		}

		result, err := solver.Optimize(ctx, req)
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		printOptimizationResult(result)
	},
}

func printOptimizationResult(result *optimize.OptimizationResult) {
	fmt.Println("WHAT-IF SEARCH RESULTS")
	fmt.Println("======================")
	fmt.Printf("Axis: %s • Goal: %s\n", result.Request.Target, result.Request.Goal)
	if result.Success {
		fmt.Printf("Outcome: %s\n", result.ConvergenceInfo)
	} else {
		fmt.Printf("Outcome: no improvement (%s)\n", result.ConvergenceInfo)
	}
	fmt.Printf("Candidate plans evaluated: %d\n\n", result.Iterations)

	fmt.Println("BEST CONFIGURATION")
	fmt.Println(strings.Repeat("-", 50))
	printOptimalParameters(result)
	fmt.Printf("Total income: %s\n", output.FormatCurrency(result.TotalIncome))
	fmt.Printf("Average month: %s\n", output.FormatCurrency(result.AverageMonthlyIncome))
	if result.Request.Constraints.TargetIncome != nil {
		diff := result.AverageMonthlyIncome.Sub(*result.Request.Constraints.TargetIncome)
		fmt.Printf("Distance from target: %s\n", output.FormatCurrency(diff))
	}
	fmt.Printf("Benefit days used: %d\n", result.DaysUsed)
	fmt.Printf("Months below floor: %d\n", result.MonthsBelowFloor)
}

func printOptimalParameters(result *optimize.OptimizationResult) {
	if result.OptimalMonthsParent1 != nil && result.OptimalMonthsParent2 != nil {
		fmt.Printf("Leave split: %s / %s months\n",
			result.OptimalMonthsParent1.StringFixed(1),
			result.OptimalMonthsParent2.StringFixed(1))
	}
	if result.OptimalFloor != nil {
		fmt.Printf("Income floor: %s\n", output.FormatCurrency(*result.OptimalFloor))
	}
	if result.OptimalDaysPerWeek != nil {
		fmt.Printf("Leave cadence: %d days/week\n", *result.OptimalDaysPerWeek)
	}
}

func printMultiDimensionalResult(mdResult *optimize.MultiDimensionalResult) {
	fmt.Println("WHAT-IF SEARCH RESULTS (ALL AXES)")
	fmt.Println("=================================")
	fmt.Printf("Successful searches: %d\n\n", len(mdResult.Results))

	for _, result := range mdResult.Results {
		fmt.Printf("AXIS: %s\n", result.Request.Target)
		fmt.Println(strings.Repeat("-", 50))
		printOptimalParameters(&result)
		fmt.Printf("Total income: %s • Days used: %d • Below floor: %d\n\n",
			output.FormatCurrency(result.TotalIncome), result.DaysUsed, result.MonthsBelowFloor)
	}

	if len(mdResult.Recommendations) > 0 {
		fmt.Println("RECOMMENDATIONS:")
		for _, rec := range mdResult.Recommendations {
			fmt.Printf("• %s\n", rec)
		}
	}
}

func init() {
	optimizeCmd.Flags().String("target", "split", "Search axis (split, income_floor, days_per_week, all)")
	optimizeCmd.Flags().String("goal", "maximize_income", "Search goal (match_income, maximize_income, minimize_days)")
	optimizeCmd.Flags().Float64("target-income", 0, "Monthly net income to match (required for match_income)")
	optimizeCmd.Flags().Int("max-iterations", 0, "Cap on candidate plans per axis (0 uses the solver default)")
	optimizeCmd.Flags().Bool("debug", false, "Enable debug output for the allocation passes")
}
