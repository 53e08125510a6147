package archive

import (
	"fmt"
	"time"

	"knowviz/internal/triple"
)

// Run represents a row in the runs table
type Run struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	TripleCount int    `json:"triple_count"`
	CreatedAt   int64  `json:"created_at"` // Unix millis
}

// SaveRun inserts a run and its triples in one transaction and returns
// the new run ID. Position preserves the recovered order.
func (d *DB) SaveRun(source string, triples []triple.Triple) (int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (source, triple_count, created_at) VALUES (?, ?, ?)`,
		source, len(triples), time.Now().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for i, t := range triples {
		if _, err := tx.Exec(
			`INSERT INTO triples (run_id, position, subject, predicate, object) VALUES (?, ?, ?, ?, ?)`,
			runID, i, t.Subject, t.Predicate, t.Object,
		); err != nil {
			return 0, fmt.Errorf("inserting triple %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs returns all archived runs, newest first.
func (d *DB) Runs() ([]Run, error) {
	rows, err := d.conn.Query(`
		SELECT id, source, triple_count, created_at
		FROM runs ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.TripleCount, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// TriplesForRun returns the triples of one run in archived order.
func (d *DB) TriplesForRun(runID int64) ([]triple.Triple, error) {
	rows, err := d.conn.Query(`
		SELECT subject, predicate, object
		FROM triples WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var triples []triple.Triple
	for rows.Next() {
		var t triple.Triple
		if err := rows.Scan(&t.Subject, &t.Predicate, &t.Object); err != nil {
			return nil, err
		}
		triples = append(triples, t)
	}
	return triples, rows.Err()
}
