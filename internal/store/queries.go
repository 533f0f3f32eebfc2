package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blackwell-systems/rulemine/internal/mining"
)

// Run operations

// InsertRun records a new mining run and returns its ID.
func (s *Store) InsertRun(run *Run) (int64, error) {
	query := `
		INSERT INTO runs (dataset, dataset_path, min_support, min_confidence, transaction_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		run.Dataset,
		run.DatasetPath,
		run.MinSupport,
		run.MinConfidence,
		run.TransactionCount,
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run for %s: %w", run.Dataset, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	run.ID = id
	return id, nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id int64) (*Run, error) {
	query := `
		SELECT id, dataset, dataset_path, min_support, min_confidence, transaction_count, created_at
		FROM runs
		WHERE id = ?
	`

	var run Run
	var createdAt string
	err := s.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.Dataset,
		&run.DatasetPath,
		&run.MinSupport,
		&run.MinConfidence,
		&run.TransactionCount,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", id, notInitialized(err))
	}

	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for run %d: %w", id, err)
	}

	return &run, nil
}

// ListRuns returns all runs, most recent first.
func (s *Store) ListRuns() ([]*Run, error) {
	query := `
		SELECT id, dataset, dataset_path, min_support, min_confidence, transaction_count, created_at
		FROM runs
		ORDER BY id DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", notInitialized(err))
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(
			&run.ID,
			&run.Dataset,
			&run.DatasetPath,
			&run.MinSupport,
			&run.MinConfidence,
			&run.TransactionCount,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}

		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for run %d: %w", run.ID, err)
		}
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run and, via cascade, its results.
func (s *Store) DeleteRun(id int64) error {
	result, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("run %d not found", id)
	}
	return nil
}

// Result operations

// RecordResult stores one algorithm's itemsets, rules, and timing for a
// run. Everything goes in a single transaction so a crashed run never
// leaves a half-written algorithm behind.
func (s *Store) RecordResult(runID int64, res *mining.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	itemsetStmt, err := tx.Prepare(`
		INSERT INTO itemsets (run_id, algorithm, position, items, size, support)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare itemset insert: %w", err)
	}
	defer itemsetStmt.Close()

	for pos, rec := range res.Frequents {
		itemsJSON, err := json.Marshal(rec.Items)
		if err != nil {
			return fmt.Errorf("failed to marshal itemset %v: %w", rec.Items, err)
		}
		if _, err := itemsetStmt.Exec(runID, res.Algorithm, pos, string(itemsJSON), len(rec.Items), rec.Support); err != nil {
			return fmt.Errorf("failed to insert itemset %v: %w", rec.Items, err)
		}
	}

	ruleStmt, err := tx.Prepare(`
		INSERT INTO rules (run_id, algorithm, position, antecedent, consequent, support, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare rule insert: %w", err)
	}
	defer ruleStmt.Close()

	for pos, rule := range res.Rules {
		antJSON, err := json.Marshal(rule.Antecedent)
		if err != nil {
			return fmt.Errorf("failed to marshal antecedent %v: %w", rule.Antecedent, err)
		}
		conJSON, err := json.Marshal(rule.Consequent)
		if err != nil {
			return fmt.Errorf("failed to marshal consequent %v: %w", rule.Consequent, err)
		}
		if _, err := ruleStmt.Exec(runID, res.Algorithm, pos, string(antJSON), string(conJSON), rule.Support, rule.Confidence); err != nil {
			return fmt.Errorf("failed to insert rule %v -> %v: %w", rule.Antecedent, rule.Consequent, err)
		}
	}

	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO timings (run_id, algorithm, seconds)
		VALUES (?, ?, ?)
	`, runID, res.Algorithm, res.Elapsed.Seconds()); err != nil {
		return fmt.Errorf("failed to insert timing for %s: %w", res.Algorithm, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit result for %s: %w", res.Algorithm, err)
	}
	return nil
}

// GetItemsets returns a run's frequent itemsets for one algorithm, in
// recorded position order.
func (s *Store) GetItemsets(runID int64, algorithm string) ([]mining.FrequentItemset, error) {
	query := `
		SELECT items, support
		FROM itemsets
		WHERE run_id = ? AND algorithm = ?
		ORDER BY position
	`

	rows, err := s.db.Query(query, runID, algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to get itemsets for run %d: %w", runID, err)
	}
	defer rows.Close()

	var records []mining.FrequentItemset
	for rows.Next() {
		var itemsJSON string
		var rec mining.FrequentItemset
		if err := rows.Scan(&itemsJSON, &rec.Support); err != nil {
			return nil, fmt.Errorf("failed to scan itemset row: %w", err)
		}
		if err := json.Unmarshal([]byte(itemsJSON), &rec.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal itemset for run %d: %w", runID, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating itemsets: %w", err)
	}

	return records, nil
}

// GetRules returns a run's rules for one algorithm, in recorded
// position order.
func (s *Store) GetRules(runID int64, algorithm string) ([]mining.Rule, error) {
	query := `
		SELECT antecedent, consequent, support, confidence
		FROM rules
		WHERE run_id = ? AND algorithm = ?
		ORDER BY position
	`

	rows, err := s.db.Query(query, runID, algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to get rules for run %d: %w", runID, err)
	}
	defer rows.Close()

	var rules []mining.Rule
	for rows.Next() {
		var antJSON, conJSON string
		var rule mining.Rule
		if err := rows.Scan(&antJSON, &conJSON, &rule.Support, &rule.Confidence); err != nil {
			return nil, fmt.Errorf("failed to scan rule row: %w", err)
		}
		if err := json.Unmarshal([]byte(antJSON), &rule.Antecedent); err != nil {
			return nil, fmt.Errorf("failed to unmarshal antecedent for run %d: %w", runID, err)
		}
		if err := json.Unmarshal([]byte(conJSON), &rule.Consequent); err != nil {
			return nil, fmt.Errorf("failed to unmarshal consequent for run %d: %w", runID, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}

	return rules, nil
}

// GetTimings returns a run's per-algorithm timings in registered
// algorithm order, so timing tables render the same way every time.
func (s *Store) GetTimings(runID int64) ([]Timing, error) {
	query := `
		SELECT algorithm, seconds
		FROM timings
		WHERE run_id = ?
	`

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get timings for run %d: %w", runID, err)
	}
	defer rows.Close()

	bySeconds := make(map[string]float64)
	for rows.Next() {
		var t Timing
		if err := rows.Scan(&t.Algorithm, &t.Seconds); err != nil {
			return nil, fmt.Errorf("failed to scan timing row: %w", err)
		}
		bySeconds[t.Algorithm] = t.Seconds
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timings: %w", err)
	}

	var timings []Timing
	for _, algorithm := range mining.Algorithms {
		if seconds, ok := bySeconds[algorithm]; ok {
			timings = append(timings, Timing{Algorithm: algorithm, Seconds: seconds})
		}
	}
	return timings, nil
}

// RunAlgorithms returns the algorithms recorded for a run, in
// registered order.
func (s *Store) RunAlgorithms(runID int64) ([]string, error) {
	timings, err := s.GetTimings(runID)
	if err != nil {
		return nil, err
	}
	algorithms := make([]string, len(timings))
	for i, t := range timings {
		algorithms[i] = t.Algorithm
	}
	return algorithms, nil
}
