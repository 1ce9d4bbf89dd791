package cost

import (
	"time"

	"github.com/rs/zerolog/log"
)

// UsageRecord is one billed-call accounting entry. Records are appended,
// never mutated.
type UsageRecord struct {
	Timestamp    time.Time
	Model        string
	Phase        string
	InputTokens  int64
	OutputTokens int64
	CostUSD      float64
}

// Tracker owns the session's usage log. One Tracker is constructed per run
// and threaded explicitly through the calls that bill usage; there are no
// concurrent writers.
type Tracker struct {
	records []UsageRecord
	now     func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// Record computes the cost of a billed call and appends it to the session
// log. The returned record is a copy.
func (t *Tracker) Record(model string, inputTokens, outputTokens int64, phase string) UsageRecord {
	rec := UsageRecord{
		Timestamp:    t.now(),
		Model:        model,
		Phase:        phase,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		CostUSD:      Estimate(model, inputTokens, outputTokens),
	}
	t.records = append(t.records, rec)

	log.Info().
		Str("model", model).
		Str("phase", phase).
		Int64("inputTokens", inputTokens).
		Int64("outputTokens", outputTokens).
		Float64("costUSD", rec.CostUSD).
		Msg("usage recorded")

	return rec
}

// SessionTotal sums all recorded costs to date.
func (t *Tracker) SessionTotal() float64 {
	var total float64
	for _, r := range t.records {
		total += r.CostUSD
	}
	return total
}

// Records returns the session log in append order.
func (t *Tracker) Records() []UsageRecord {
	return t.records
}
