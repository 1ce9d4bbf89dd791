package cost

import (
	"testing"
	"time"

	"github.com/Luminc/iris/internal/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateZeroTokens(t *testing.T) {
	assert.Equal(t, 0.0, Estimate(ModelFlash, 0, 0))
}

func TestEstimateLinearity(t *testing.T) {
	// Linear in each argument independently.
	base := Estimate(ModelFlash, 1000, 500)
	doubleIn := Estimate(ModelFlash, 2000, 500)
	doubleOut := Estimate(ModelFlash, 1000, 1000)

	inOnly := Estimate(ModelFlash, 1000, 0)
	outOnly := Estimate(ModelFlash, 0, 500)

	assert.InDelta(t, base+inOnly, doubleIn, 1e-12)
	assert.InDelta(t, base+outOnly, doubleOut, 1e-12)
	assert.InDelta(t, inOnly+outOnly, base, 1e-12)
}

func TestEstimateKnownModel(t *testing.T) {
	// 1M input at $0.50/M plus 1M output at $3.00/M.
	assert.InDelta(t, 3.50, Estimate(ModelFlash, 1_000_000, 1_000_000), 1e-12)
}

func TestEstimateUnknownModelFallsBackToDefault(t *testing.T) {
	rate := pricingTable[DefaultModel].InputPerMillion
	assert.InDelta(t, rate, Estimate("unknown-model-x", 1_000_000, 0), 1e-12)
}

func TestTrackerSessionTotal(t *testing.T) {
	tracker := NewTracker()
	tracker.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	var sum float64
	calls := []struct {
		model   string
		in, out int64
		phase   string
	}{
		{ModelFlash, 2500, 1200, "research"},
		{ModelLite, 800, 200, "supplementary"},
		{ModelFlash, 1800, 900, "compose"},
		{"unknown-model-x", 100, 100, "research"},
	}
	for _, c := range calls {
		rec := tracker.Record(c.model, c.in, c.out, c.phase)
		assert.Equal(t, c.phase, rec.Phase)
		assert.Equal(t, Estimate(c.model, c.in, c.out), rec.CostUSD)
		assert.False(t, rec.Timestamp.IsZero())
		sum += rec.CostUSD
	}

	assert.InDelta(t, sum, tracker.SessionTotal(), 1e-12)
	assert.Len(t, tracker.Records(), 4)
}

func TestEstimateAllCombinations(t *testing.T) {
	projections := EstimateAllCombinations(100)
	require.Len(t, projections, len(Models)*len(images.Levels))

	for _, p := range projections {
		tokens := TokensFor(p.Level)
		assert.Equal(t, tokens, p.Tokens)
		assert.InDelta(t, Estimate(p.Model, tokens.Input, tokens.Output), p.PerLot, 1e-12)
		assert.InDelta(t, p.PerLot*100, p.PerBatch, 1e-9)
	}

	// Premium projects more than basic for any given model.
	perLot := make(map[string]map[images.Level]float64)
	for _, p := range projections {
		if perLot[p.Model] == nil {
			perLot[p.Model] = make(map[images.Level]float64)
		}
		perLot[p.Model][p.Level] = p.PerLot
	}
	for _, model := range Models {
		assert.Greater(t, perLot[model][images.LevelPremium], perLot[model][images.LevelBasic])
	}
}

func TestBudgetReport(t *testing.T) {
	report := BudgetReport(100)
	assert.Contains(t, report, "| Model | Research level |")
	assert.Contains(t, report, "Gemini 3 Flash")
	assert.Contains(t, report, "Comprehensive")
	assert.Contains(t, report, "## Recommendations")
}
