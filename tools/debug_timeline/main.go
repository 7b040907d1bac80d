package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/Fiskerik/foraldra-boost-sub000/internal/calculation"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/config"
)

// Dumps the sequenced period list of every strategy so gaps, overlaps and
// filler placement can be eyeballed when the sequencer misbehaves.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_timeline <plan-file>")
		return
	}
	f := os.Args[1]
	p := config.NewInputParser()
	file, err := p.LoadFromFile(f)
	if err != nil {
		panic(err)
	}
	engine := calc.NewEngine()
	results, err := engine.BuildPlan(context.Background(), &file.Plan, file.EffectiveRules())
	if err != nil {
		panic(err)
	}
	for _, res := range results {
		fmt.Printf("\n=== %s (floor %s, %d periods) ===\n",
			res.Strategy, res.FloorTarget.StringFixed(0), len(res.Periods))
		for i, period := range res.Periods {
			fmt.Printf("%3d  %s..%s  %-7s %-15s %-14s %3dd @ %s\n",
				i,
				period.Start.Format("2006-01-02"),
				period.End.Format("2006-01-02"),
				period.Parent,
				period.Tier,
				period.Origin,
				period.BenefitDays,
				period.DailyBenefit.StringFixed(0))
		}
		for _, w := range res.Warnings {
			fmt.Printf("  warn: %s\n", w)
		}
	}
}
