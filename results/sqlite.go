// Package results keeps a log of finished sessions so runs of the three
// movement modes can be compared.
package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrClosed = errors.New("results: store closed")

// Result is one finished session.
type Result struct {
	ID         int64
	Mode       string
	Score      int
	Duration   float64
	Seed       int64
	RecordedAt time.Time
}

type Store struct {
	db *sql.DB
}

func OpenSQLite(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("results: empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("results: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("results: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("results: pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("results: schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			duration REAL NOT NULL,
			seed INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_mode ON sessions(mode, recorded_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Record stores r and returns its row id. A zero RecordedAt is stamped with
// the current time.
func (s *Store) Record(ctx context.Context, r Result) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrClosed
	}
	at := r.RecordedAt
	if at.IsZero() {
		at = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions(mode, score, duration, seed, recorded_at) VALUES(?,?,?,?,?)`,
		r.Mode, r.Score, r.Duration, r.Seed, at.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("results: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("results: insert id: %w", err)
	}
	return id, nil
}

// List returns the most recent results first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Result, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, score, duration, seed, recorded_at FROM sessions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("results: query: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r  Result
			at string
		)
		if err := rows.Scan(&r.ID, &r.Mode, &r.Score, &r.Duration, &r.Seed, &at); err != nil {
			return nil, fmt.Errorf("results: scan: %w", err)
		}
		if r.RecordedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("results: parse time %q: %w", at, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("results: rows: %w", err)
	}
	return out, nil
}

// Best returns the highest score recorded per mode.
func (s *Store) Best(ctx context.Context) (map[string]int, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx, `SELECT mode, MAX(score) FROM sessions GROUP BY mode`)
	if err != nil {
		return nil, fmt.Errorf("results: query best: %w", err)
	}
	defer rows.Close()

	best := make(map[string]int)
	for rows.Next() {
		var (
			mode  string
			score int
		)
		if err := rows.Scan(&mode, &score); err != nil {
			return nil, fmt.Errorf("results: scan best: %w", err)
		}
		best[mode] = score
	}
	return best, rows.Err()
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
