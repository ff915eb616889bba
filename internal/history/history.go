/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package history keeps a log of final scores in SQLite.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	id          TEXT PRIMARY KEY,
	game_id     TEXT NOT NULL,
	left_name   TEXT NOT NULL,
	left_score  INTEGER NOT NULL,
	right_name  TEXT NOT NULL,
	right_score INTEGER NOT NULL,
	finished_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS results_finished_at ON results (finished_at);
`

// Result is the scoreboard of one finished game.
type Result struct {
	ID         string    `json:"id"`
	GameID     string    `json:"game_id"`
	LeftName   string    `json:"left_name"`
	LeftScore  int       `json:"left_score"`
	RightName  string    `json:"right_name"`
	RightScore int       `json:"right_score"`
	FinishedAt time.Time `json:"finished_at"`
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history database path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL;", "PRAGMA busy_timeout=5000;"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()

			return nil, fmt.Errorf("configure history db: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores r, filling in its ID and FinishedAt when unset.
func (s *Store) Record(ctx context.Context, r Result) (Result, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	r.FinishedAt = r.FinishedAt.UTC().Truncate(time.Millisecond)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (id, game_id, left_name, left_score, right_name, right_score, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.LeftName, r.LeftScore, r.RightName, r.RightScore, r.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return Result{}, fmt.Errorf("record result: %w", err)
	}

	return r, nil
}

// Recent returns up to limit results, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, game_id, left_name, left_score, right_name, right_score, finished_at
		 FROM results ORDER BY finished_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	results := make([]Result, 0, limit)
	for rows.Next() {
		var (
			r        Result
			finished int64
		)
		if err := rows.Scan(&r.ID, &r.GameID, &r.LeftName, &r.LeftScore, &r.RightName, &r.RightScore, &finished); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.FinishedAt = time.UnixMilli(finished).UTC()
		results = append(results, r)
	}

	return results, rows.Err()
}
