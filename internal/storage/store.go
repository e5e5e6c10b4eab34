// Package storage persists completed council runs to SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/stockcouncil/StockCouncilGo/internal/council"
	"github.com/stockcouncil/StockCouncilGo/pkg/sqlite"
)

type Store struct {
	db *sql.DB
}

// RunSummary is one row of the run history.
type RunSummary struct {
	ID        int64     `json:"id"`
	Symbol    string    `json:"symbol"`
	Query     string    `json:"query"`
	Action    string    `json:"action"`
	Turns     int       `json:"turns"`
	CreatedAt time.Time `json:"created_at"`
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS council_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol TEXT NOT NULL,
			query TEXT NOT NULL,
			action TEXT NOT NULL,
			rationale TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS council_turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES council_runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			speaker TEXT NOT NULL,
			content TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_council_runs_symbol ON council_runs(symbol);`,
	}
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// SaveRun stores a completed council run with its full transcript.
func (s *Store) SaveRun(result *council.Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin save run: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO council_runs (symbol, query, action, rationale) VALUES (?, ?, ?, ?)`,
		result.Symbol, result.Query, result.Recommendation.Action, result.Recommendation.Rationale,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	for i, turn := range result.Transcript {
		if _, err := tx.Exec(
			`INSERT INTO council_turns (run_id, position, speaker, content) VALUES (?, ?, ?, ?)`,
			runID, i, turn.Speaker, turn.Content,
		); err != nil {
			return 0, fmt.Errorf("insert turn %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first. When symbol is
// non-empty only runs for that symbol are returned.
func (s *Store) ListRuns(symbol string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT r.id, r.symbol, r.query, r.action, r.created_at,
		(SELECT COUNT(*) FROM council_turns t WHERE t.run_id = r.id)
		FROM council_runs r`
	args := []any{}
	if symbol != "" {
		query += ` WHERE r.symbol = ?`
		args = append(args, symbol)
	}
	query += ` ORDER BY r.id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		if err := rows.Scan(&run.ID, &run.Symbol, &run.Query, &run.Action, &run.CreatedAt, &run.Turns); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LoadTranscript returns the stored transcript for a run in speaking order.
func (s *Store) LoadTranscript(runID int64) ([]council.Turn, error) {
	rows, err := s.db.Query(
		`SELECT speaker, content FROM council_turns WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	defer rows.Close()

	var transcript []council.Turn
	for rows.Next() {
		var turn council.Turn
		if err := rows.Scan(&turn.Speaker, &turn.Content); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		transcript = append(transcript, turn)
	}
	return transcript, rows.Err()
}
