package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Luminc/iris/internal/cost"
	_ "modernc.org/sqlite"
)

// Ledger persists usage records across runs so spending can be reviewed
// later. The table is append-only; rows are never updated or deleted.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens (or creates) the SQLite usage ledger at dbPath.
func OpenLedger(dbPath string) (*Ledger, error) {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ledger := &Ledger{db: db}
	if err := ledger.init(); err != nil {
		db.Close()
		return nil, err
	}
	return ledger, nil
}

func (l *Ledger) init() error {
	// recorded_at holds Unix nanoseconds so range queries compare
	// numerically instead of lexicographically.
	query := `
	CREATE TABLE IF NOT EXISTS usage_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		recorded_at INTEGER NOT NULL,
		model TEXT NOT NULL,
		phase TEXT NOT NULL,
		input_tokens INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		cost_usd REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_usage_recorded_at ON usage_records(recorded_at);
	`
	if _, err := l.db.Exec(query); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Append stores one usage record.
func (l *Ledger) Append(rec cost.UsageRecord) error {
	_, err := l.db.Exec(
		`INSERT INTO usage_records (recorded_at, model, phase, input_tokens, output_tokens, cost_usd)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.UnixNano(),
		rec.Model,
		rec.Phase,
		rec.InputTokens,
		rec.OutputTokens,
		rec.CostUSD,
	)
	if err != nil {
		return fmt.Errorf("failed to append usage record: %w", err)
	}
	return nil
}

// AppendAll stores a session's records, stopping at the first failure.
func (l *Ledger) AppendAll(recs []cost.UsageRecord) error {
	for _, rec := range recs {
		if err := l.Append(rec); err != nil {
			return err
		}
	}
	return nil
}

// TotalSince sums persisted costs recorded at or after the given time.
func (l *Ledger) TotalSince(since time.Time) (float64, error) {
	row := l.db.QueryRow(
		`SELECT COALESCE(SUM(cost_usd), 0) FROM usage_records WHERE recorded_at >= ?`,
		since.UnixNano(),
	)
	var total float64
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum usage records: %w", err)
	}
	return total, nil
}

// Recent returns up to limit records, newest first.
func (l *Ledger) Recent(limit int) ([]cost.UsageRecord, error) {
	rows, err := l.db.Query(
		`SELECT recorded_at, model, phase, input_tokens, output_tokens, cost_usd
		 FROM usage_records ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage records: %w", err)
	}
	defer rows.Close()

	var out []cost.UsageRecord
	for rows.Next() {
		var rec cost.UsageRecord
		var recordedAt int64
		if err := rows.Scan(&recordedAt, &rec.Model, &rec.Phase, &rec.InputTokens, &rec.OutputTokens, &rec.CostUSD); err != nil {
			return nil, fmt.Errorf("failed to scan usage record: %w", err)
		}
		rec.Timestamp = time.Unix(0, recordedAt).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (l *Ledger) Close() error {
	return l.db.Close()
}
