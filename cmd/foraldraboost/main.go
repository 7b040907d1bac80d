package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/calculation"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/config"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/output"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "foraldraboost %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "foraldraboost",
	Short: "Parental leave day-allocation planner",
	Long:  "Plans how two caregivers spend their Swedish parental benefit days without the household dropping below its income floor",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [plan-file]",
	Short: "Build the leave plan for a household",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

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

		results, err := engine.BuildPlan(context.Background(), &file.Plan, rules)
		if err != nil {
			log.Fatal(err)
		}

		report := output.NewPlanReport(&file.Plan, rules, results)

		outputFormat, _ := cmd.Flags().GetString("format")
		if f := output.GetFormatterByName(outputFormat); f != nil {
			data, err := f.Format(report)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(string(data))
		} else {
			if err := output.GenerateReport(report, outputFormat); err != nil {
				log.Fatal(err)
			}
		}

		if savePath, _ := cmd.Flags().GetString("save-config"); savePath != "" {
			if err := output.SaveConfiguration(file, savePath); err != nil {
				log.Fatal(err)
			}
			fmt.Printf("\nNormalized plan written to %s\n", savePath)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [plan-file]",
	Short: "Validate a plan file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		parser := config.NewInputParser()
		file, err := parser.LoadFromFile(inputFile)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Plan file %s is valid\n", inputFile)
		fmt.Printf("  Household: %s + %s\n", file.Plan.Parent1.Name, file.Plan.Parent2.Name)
		fmt.Printf("  Window: %s months from %s\n",
			file.Plan.TotalMonths.String(), file.Plan.StartDate.Format("2006-01-02"))
		fmt.Printf("  Floor: %s/month\n", output.FormatCurrency(file.Plan.IncomeFloor))
		if file.Rules != nil {
			fmt.Println("  Rules: file overrides in effect")
		}
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [output-file]",
	Short: "Write a starter plan file to edit",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputFile := args[0]

		parser := config.NewInputParser()
		file := parser.CreateExamplePlan()

		if err := output.SaveConfiguration(file, outputFile); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Example plan written to %s\n", outputFile)
		fmt.Println("Edit the incomes, the split, and the floor, then run:")
		fmt.Printf("  foraldraboost calculate %s\n", outputFile)
	},
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, csv, detailed-csv, json, html)")
	calculateCmd.Flags().Bool("debug", false, "Enable debug output for the allocation passes")
	calculateCmd.Flags().String("save-config", "", "Write the validated, normalized plan back to this path")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(compareStrategiesCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
