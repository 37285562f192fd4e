package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkgw-corpus/dkgw/internal/estimate"
	"github.com/dkgw-corpus/dkgw/internal/report"
)

// Kind identifies what produced a run.
type Kind string

const (
	KindValidate Kind = "validate"
	KindEstimate Kind = "estimate"
)

// Run is one recorded validation or estimation.
type Run struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Subject   string    `json:"subject"`
	StartedAt time.Time `json:"started_at"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	Words     int64     `json:"words"`
	Goal      int64     `json:"goal"`
}

// SectionCount is the word count of one section within an estimation run.
type SectionCount struct {
	Section string `json:"section"`
	Words   int64  `json:"words"`
}

// RecordValidation stores the tally of validating section.
func (db *DB) RecordValidation(section string, t report.Tally, at time.Time) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Kind:      KindValidate,
		Subject:   section,
		StartedAt: at,
		Passed:    t.Passed,
		Failed:    t.Failed,
	}
	err := db.Transaction(func(tx *sql.Tx) error {
		return insertRun(tx, run)
	})
	if err != nil {
		return nil, fmt.Errorf("record validation: %w", err)
	}
	return run, nil
}

// RecordEstimate stores an estimation snapshot of the corpus at root,
// including every section count in visiting order.
func (db *DB) RecordEstimate(root string, stats *estimate.Stats, at time.Time) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Kind:      KindEstimate,
		Subject:   root,
		StartedAt: at,
		Words:     stats.Total,
		Goal:      stats.Goal,
	}
	err := db.Transaction(func(tx *sql.Tx) error {
		if err := insertRun(tx, run); err != nil {
			return err
		}
		for i, section := range stats.Sections() {
			words, _ := stats.SectionCount(section)
			if _, err := tx.Exec(`
				INSERT INTO section_counts (run_id, position, section, words)
				VALUES (?, ?, ?, ?)
			`, run.ID, i, section, words); err != nil {
				return fmt.Errorf("insert section count %s: %w", section, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record estimate: %w", err)
	}
	return run, nil
}

func insertRun(tx *sql.Tx, r *Run) error {
	_, err := tx.Exec(`
		INSERT INTO runs (id, kind, subject, started_at, passed, failed, words, goal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, string(r.Kind), r.Subject, formatTime(r.StartedAt), r.Passed, r.Failed, r.Words, r.Goal)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(`
		SELECT id, kind, subject, started_at, passed, failed, words, goal
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		if err := rows.Scan(&r.ID, &r.Kind, &r.Subject, &startedAt, &r.Passed, &r.Failed, &r.Words, &r.Goal); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, _ = parseTime(startedAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// SectionCounts returns the per-section counts of an estimation run in
// the order they were recorded.
func (db *DB) SectionCounts(runID string) ([]SectionCount, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT section, words FROM section_counts
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list section counts: %w", err)
	}
	defer rows.Close()

	var counts []SectionCount
	for rows.Next() {
		var c SectionCount
		if err := rows.Scan(&c.Section, &c.Words); err != nil {
			return nil, fmt.Errorf("scan section count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
