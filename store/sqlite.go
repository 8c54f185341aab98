package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"terrawatch/models"

	_ "modernc.org/sqlite"
)

// SQLite persists runs in a local database file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and ensures schema exists.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: ensure dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// Keep operations serialized.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{`
CREATE TABLE IF NOT EXISTS analysis_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    zone TEXT NOT NULL,
    period_start TEXT NOT NULL,
    period_end TEXT NOT NULL,
    renderer TEXT,
    generator TEXT,
    created_at INTEGER NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_runs_created ON analysis_runs (created_at DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("sqlite: init schema: %w", err)
		}
	}
	return nil
}

func (s *SQLite) Record(ctx context.Context, run models.Run) (models.Run, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO analysis_runs (zone, period_start, period_end, renderer, generator, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		run.Zone,
		run.Start.Format(models.DateLayout),
		run.End.Format(models.DateLayout),
		run.Renderer,
		run.Generator,
		run.CreatedAt.UTC().UnixNano(),
	)
	if err != nil {
		return run, fmt.Errorf("sqlite: insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return run, fmt.Errorf("sqlite: last insert id: %w", err)
	}
	run.ID = strconv.FormatInt(id, 10)
	return run, nil
}

func (s *SQLite) Recent(ctx context.Context, limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, zone, period_start, period_end, renderer, generator, created_at
FROM analysis_runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query runs: %w", err)
	}
	defer rows.Close()

	var out []models.Run
	for rows.Next() {
		var (
			id             int64
			start, end     string
			renderer, gen  sql.NullString
			createdAtNanos int64
			run            models.Run
		)
		if err := rows.Scan(&id, &run.Zone, &start, &end, &renderer, &gen, &createdAtNanos); err != nil {
			return nil, fmt.Errorf("sqlite: scan run: %w", err)
		}
		run.ID = strconv.FormatInt(id, 10)
		run.Renderer = renderer.String
		run.Generator = gen.String
		run.CreatedAt = time.Unix(0, createdAtNanos).UTC()
		if run.Start, err = time.Parse(models.DateLayout, start); err != nil {
			return nil, fmt.Errorf("sqlite: parse start: %w", err)
		}
		if run.End, err = time.Parse(models.DateLayout, end); err != nil {
			return nil, fmt.Errorf("sqlite: parse end: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *SQLite) Close(context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
