package cost

import (
	"fmt"
	"strings"

	"github.com/Luminc/iris/internal/images"
	"github.com/lithammer/dedent"
)

// TokenEstimate holds design-time token constants per research level. These
// are planning aids for cost projection, not measured runtime usage.
type TokenEstimate struct {
	Input  int64
	Output int64
}

var levelTokenEstimates = map[images.Level]TokenEstimate{
	images.LevelBasic:         {Input: 1000, Output: 800},
	images.LevelStandard:      {Input: 2500, Output: 1200},
	images.LevelComprehensive: {Input: 4000, Output: 1200},
	images.LevelPremium:       {Input: 8000, Output: 1500},
}

// TokensFor returns the static token estimate for a level.
func TokensFor(level images.Level) TokenEstimate {
	return levelTokenEstimates[level]
}

// Projection is the projected cost of one (model, level) combination.
type Projection struct {
	Model    string
	Level    images.Level
	Tokens   TokenEstimate
	PerLot   float64
	PerBatch float64
}

// EstimateAllCombinations projects per-lot and per-batch cost for every
// (model, research level) pair using the static token estimates.
func EstimateAllCombinations(lotCount int) []Projection {
	var out []Projection
	for _, model := range Models {
		for _, level := range images.Levels {
			tokens := levelTokenEstimates[level]
			perLot := Estimate(model, tokens.Input, tokens.Output)
			out = append(out, Projection{
				Model:    model,
				Level:    level,
				Tokens:   tokens,
				PerLot:   perLot,
				PerBatch: perLot * float64(lotCount),
			})
		}
	}
	return out
}

// BudgetReport renders a markdown cost analysis for a monthly lot volume,
// with a comparison table and strategy recommendations.
func BudgetReport(monthlyLots int) string {
	var b strings.Builder

	b.WriteString("# Iris cost analysis\n\n")
	fmt.Fprintf(&b, "Analysis for %d lots per month.\n\n", monthlyLots)

	b.WriteString("## Cost comparison\n\n")
	fmt.Fprintf(&b, "| Model | Research level | Per lot | Per 100 lots | Monthly (%d) |\n", monthlyLots)
	b.WriteString("|-------|---------------|---------|--------------|---------------|\n")

	for _, p := range EstimateAllCombinations(monthlyLots) {
		fmt.Fprintf(&b, "| %s | %s | $%.4f | $%.2f | **$%.2f** |\n",
			PricingFor(p.Model).Name, titleCase(p.Level.String()), p.PerLot, p.PerLot*100, p.PerBatch)
	}

	liteComprehensive := projectedCost(ModelLite, images.LevelComprehensive)
	flashStandard := projectedCost(ModelFlash, images.LevelStandard)
	flashComprehensive := projectedCost(ModelFlash, images.LevelComprehensive)

	b.WriteString("\n## Recommendations\n\n")
	fmt.Fprintf(&b, "- Budget-conscious: %s + comprehensive ($%.2f/month)\n",
		PricingFor(ModelLite).Name, liteComprehensive*float64(monthlyLots))
	fmt.Fprintf(&b, "- Quality-balanced: %s + standard ($%.2f/month)\n",
		PricingFor(ModelFlash).Name, flashStandard*float64(monthlyLots))
	fmt.Fprintf(&b, "- Premium quality: %s + comprehensive ($%.2f/month)\n",
		PricingFor(ModelFlash).Name, flashComprehensive*float64(monthlyLots))

	b.WriteString(dedent.Dedent(`
		## Research level details

		- basic: text-only analysis, fastest and cheapest
		- standard: single main image plus text
		- comprehensive: multi-image grid analysis in one call (recommended)
		- premium: up to four images fetched, one billed analysis call plus a
		  lightweight supplementary summary
	`))

	return b.String()
}

func projectedCost(model string, level images.Level) float64 {
	tokens := levelTokenEstimates[level]
	return Estimate(model, tokens.Input, tokens.Output)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
