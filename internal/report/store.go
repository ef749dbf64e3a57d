// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/ionscan/pkg/types"
)

const dbFile = "ionscan.db"

// Store persists scan runs to a SQLite database so past results stay
// queryable and re-exportable without re-scanning.
type Store struct {
	db *sql.DB
}

// Run is one recorded scan run.
type Run struct {
	ID         int64
	Started    time.Time
	Ion        string
	Radius     float64
	Candidates int
	Reported   int
}

// NewStore opens or creates the run database at cfg.DBDir/ionscan.db,
// creating the schema if it does not exist.
func NewStore(cfg types.ReportConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DBDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DBDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started TEXT NOT NULL,
			ion TEXT NOT NULL,
			radius REAL NOT NULL,
			candidates INTEGER NOT NULL,
			reported INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS hits (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			entry TEXT NOT NULL,
			ligands TEXT NOT NULL,
			min_distance REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_hits_run_id ON hits(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one run and its rows in a single transaction and returns
// the run id.
func (s *Store) Record(ctx context.Context, run Run, rows []Row) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started, ion, radius, candidates, reported) VALUES (?, ?, ?, ?, ?)`,
		run.Started.UTC().Format(time.RFC3339), run.Ion, run.Radius, run.Candidates, len(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO hits (run_id, entry, ligands, min_distance) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, runID, r.Entry, r.Ligands, r.MinDistance); err != nil {
			return 0, fmt.Errorf("inserting hit %s: %w", r.Entry, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs lists recorded runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started, ion, radius, candidates, reported FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Ion, &r.Radius, &r.Candidates, &r.Reported); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, started); parseErr == nil {
			r.Started = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// HitRows returns the stored rows of one run, ascending by minimum distance.
func (s *Store) HitRows(ctx context.Context, runID int64) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT entry, ligands, min_distance FROM hits WHERE run_id = ? ORDER BY min_distance, entry`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying hits: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Entry, &r.Ligands, &r.MinDistance); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
