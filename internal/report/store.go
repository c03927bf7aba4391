package report

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"retake/internal/pipeline"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current history schema. Bump on schema changes;
// users clear the database after a mismatch.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store persists run history in SQLite so reports can be reproduced after
// the process exits.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one recorded reconciliation run.
type Run struct {
	ID              string
	SourceRoot      string
	DestinationRoot string
	StartedAt       time.Time
	FinishedAt      time.Time
	Counts          map[pipeline.Status]int
}

// Total returns the number of files the run classified.
func (r Run) Total() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// BeginRun records the start of a run.
func (s *Store) BeginRun(ctx context.Context, id, sourceRoot, destinationRoot string, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source_root, destination_root, started_at) VALUES (?, ?, ?, ?)`,
		id, sourceRoot, destinationRoot, startedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun persists the summary's outcomes and stamps the finish time, in
// one transaction so a run never appears half-recorded.
func (s *Store) FinishRun(ctx context.Context, id string, finishedAt time.Time, summary *pipeline.Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin finish tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, o := range summary.Outcomes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO outcomes (run_id, source, destination, status, detail) VALUES (?, ?, ?, ?, ?)`,
			id, o.Source, nullableString(o.Destination), string(o.Status), nullableString(o.Detail),
		); err != nil {
			return fmt.Errorf("insert outcome: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE runs SET finished_at = ? WHERE id = ?`,
		finishedAt.UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: unknown run %q", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit finish tx: %w", err)
	}
	return nil
}

// Runs returns recorded runs, most recent first, with per-status counts.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_root, destination_root, started_at, COALESCE(finished_at, '')
         FROM runs ORDER BY started_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	index := make(map[string]int)
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &run.SourceRoot, &run.DestinationRoot, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTimestamp(started)
		run.FinishedAt = parseTimestamp(finished)
		run.Counts = make(map[pipeline.Status]int)
		index[run.ID] = len(runs)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	countRows, err := s.db.QueryContext(ctx,
		`SELECT run_id, status, COUNT(1) FROM outcomes GROUP BY run_id, status`,
	)
	if err != nil {
		return nil, fmt.Errorf("query outcome counts: %w", err)
	}
	defer countRows.Close()

	for countRows.Next() {
		var runID, status string
		var count int
		if err := countRows.Scan(&runID, &status, &count); err != nil {
			return nil, fmt.Errorf("scan outcome count: %w", err)
		}
		if i, ok := index[runID]; ok {
			runs[i].Counts[pipeline.Status(status)] = count
		}
	}
	if err := countRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcome counts: %w", err)
	}

	return runs, nil
}

// LatestRunID returns the most recently started run, if any.
func (s *Store) LatestRunID(ctx context.Context) (string, bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT 1`,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query latest run: %w", err)
	}
	return id, true, nil
}

// Outcomes returns a run's per-file outcomes in insertion order, which is
// the pipeline's deterministic walk order.
func (s *Store) Outcomes(ctx context.Context, runID string) ([]pipeline.Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, COALESCE(destination, ''), status, COALESCE(detail, '')
         FROM outcomes WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []pipeline.Outcome
	for rows.Next() {
		var o pipeline.Outcome
		var status string
		if err := rows.Scan(&o.Source, &o.Destination, &status, &o.Detail); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.Status = pipeline.Status(status)
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return outcomes, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
