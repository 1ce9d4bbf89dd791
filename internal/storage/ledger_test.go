package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Luminc/iris/internal/cost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	ledger, err := OpenLedger(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })
	return ledger
}

func TestLedgerAppendAndTotal(t *testing.T) {
	ledger := openTestLedger(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	recs := []cost.UsageRecord{
		{Timestamp: base, Model: cost.ModelFlash, Phase: "research", InputTokens: 2500, OutputTokens: 1200, CostUSD: 0.00485},
		{Timestamp: base.Add(time.Minute), Model: cost.ModelFlash, Phase: "compose", InputTokens: 1800, OutputTokens: 900, CostUSD: 0.0036},
	}
	require.NoError(t, ledger.AppendAll(recs))

	total, err := ledger.TotalSince(base)
	require.NoError(t, err)
	assert.InDelta(t, 0.00845, total, 1e-9)

	// Records before the window are excluded.
	total, err = ledger.TotalSince(base.Add(30 * time.Second))
	require.NoError(t, err)
	assert.InDelta(t, 0.0036, total, 1e-9)
}

func TestLedgerTotalSubSecondBoundary(t *testing.T) {
	ledger := openTestLedger(t)

	cutoff := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, ledger.Append(cost.UsageRecord{
		Timestamp: cutoff.Add(500 * time.Millisecond),
		Model:     cost.ModelFlash,
		Phase:     "research",
		CostUSD:   0.004,
	}))

	// Half a second after a whole-second cutoff is inside the window.
	total, err := ledger.TotalSince(cutoff)
	require.NoError(t, err)
	assert.InDelta(t, 0.004, total, 1e-9)

	// One millisecond past the record is outside it.
	total, err = ledger.TotalSince(cutoff.Add(501 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestLedgerRecent(t *testing.T) {
	ledger := openTestLedger(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, ledger.Append(cost.UsageRecord{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Model:     cost.ModelLite,
			Phase:     "research",
			CostUSD:   float64(i),
		}))
	}

	recent, err := ledger.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// Newest first.
	assert.Equal(t, 2.0, recent[0].CostUSD)
	assert.Equal(t, 1.0, recent[1].CostUSD)
	assert.Equal(t, base.Add(2*time.Minute), recent[0].Timestamp)
}

func TestLedgerEmptyTotal(t *testing.T) {
	ledger := openTestLedger(t)
	total, err := ledger.TotalSince(time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}
