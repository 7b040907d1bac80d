package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/calculation"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/compare"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/config"
)

var compareStrategiesCmd = &cobra.Command{
	Use:   "compare [plan-file]",
	Short: "Compare allocation strategies or alternative plan files",
	Long: `Compare the outcome of both allocation strategies for one plan, or
compare a base plan file against alternative drafts.

Examples:
  foraldraboost compare plan.yaml
  foraldraboost compare plan.yaml --with longer_leave.yaml,higher_floor.yaml
  foraldraboost compare plan.yaml --format csv
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		engine := calculation.NewEngine()
		debugMode, _ := cmd.Flags().GetBool("debug")
		if debugMode {
			engine.SetLogger(simpleCLILogger{})
		}
		compareEngine := compare.NewCompareEngine(engine)

		ctx := context.Background()

		var comparisonSet *compare.ComparisonSet
		var err error

		withStr, _ := cmd.Flags().GetString("with")
		if withStr != "" {
			var alternatives []string
			for _, path := range strings.Split(withStr, ",") {
				if trimmed := strings.TrimSpace(path); trimmed != "" {
					alternatives = append(alternatives, trimmed)
				}
			}
			if len(alternatives) == 0 {
				log.Fatal("no valid plan files specified in --with flag")
			}

			comparisonSet, err = compareEngine.CompareFiles(ctx, inputFile, alternatives)
			if err != nil {
				log.Fatalf("Comparison failed: %v", err)
			}
		} else {
			parser := config.NewInputParser()
			file, loadErr := parser.LoadFromFile(inputFile)
			if loadErr != nil {
				log.Fatal(loadErr)
			}

			comparisonSet, err = compareEngine.CompareStrategies(ctx, &file.Plan, file.EffectiveRules())
			if err != nil {
				log.Fatalf("Comparison failed: %v", err)
			}
			comparisonSet.ConfigPath = inputFile
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "csv":
			formatter := &compare.CSVFormatter{}
			out, err := formatter.Format(comparisonSet)
			if err != nil {
				log.Fatalf("Failed to format CSV: %v", err)
			}
			fmt.Print(out)

		case "json":
			formatter := &compare.JSONFormatter{Pretty: true}
			out, err := formatter.Format(comparisonSet)
			if err != nil {
				log.Fatalf("Failed to format JSON: %v", err)
			}
			fmt.Print(out)

		case "table", "console", "":
			formatter := &compare.TableFormatter{}
			fmt.Print(formatter.Format(comparisonSet))

		default:
			log.Fatalf("Unknown output format: %s (valid: table, csv, json)", outputFormat)
		}
	},
}

func init() {
	compareStrategiesCmd.Flags().String("with", "", "Comma-separated list of alternative plan files to compare against the base")
	compareStrategiesCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	compareStrategiesCmd.Flags().Bool("debug", false, "Enable debug output for the allocation passes")
}
