package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Luminc/iris/internal/cost"
	"github.com/Luminc/iris/internal/images"
)

func main() {
	var (
		monthlyLots int
		outFile     string
	)
	flag.IntVar(&monthlyLots, "lots", 100, "monthly lot volume to project")
	flag.StringVar(&outFile, "out", "", "write the full report to this file instead of stdout")
	flag.Parse()

	// Quick comparison of key approaches across a few volumes.
	for _, lots := range []int{50, 100, 250, 500} {
		fmt.Printf("Budget analysis for %d lots/month:\n", lots)
		for _, combo := range []struct {
			model string
			level images.Level
		}{
			{cost.ModelLite, images.LevelComprehensive},
			{cost.ModelFlash, images.LevelStandard},
			{cost.ModelFlash, images.LevelComprehensive},
		} {
			tokens := cost.TokensFor(combo.level)
			perLot := cost.Estimate(combo.model, tokens.Input, tokens.Output)
			fmt.Printf("  %-22s + %-13s $%8.2f\n", cost.PricingFor(combo.model).Name, combo.level, perLot*float64(lots))
		}
		fmt.Println()
	}

	report := cost.BudgetReport(monthlyLots)
	if outFile == "" {
		fmt.Print(report)
		return
	}
	if err := os.WriteFile(outFile, []byte(report), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Full budget analysis saved to %s\n", outFile)
}
