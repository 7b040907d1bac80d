package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [plan-file]",
	Short: "Open the interactive planner",
	Long: `Open the full-screen interactive planner: run strategies, tune
parameters with live sliders, compare outcomes, and search for the best
configuration without leaving the terminal.

Example:
  foraldraboost tui family_plan.yaml
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		planPath := args[0]

		if _, err := os.Stat(planPath); os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: plan file not found: %s\n", planPath)
			os.Exit(1)
		}

		model := tui.NewModel(planPath)
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running planner: %v\n", err)
			os.Exit(1)
		}
	},
}
