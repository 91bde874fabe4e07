// Package storage persists replays in SQLite.
// A replay is the seed plus the ordered per-frame action log of one game, enough
// to re-simulate it exactly. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrReplayNotFound is returned when a replay ID does not exist.
var ErrReplayNotFound = errors.New("storage: replay not found")

// End reasons recorded with a replay.
const (
	EndGameOver = "game_over"
	EndQuit     = "quit"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Input is one recorded action. Frame is the zero-based frame it was applied in.
type Input struct {
	Frame  uint64
	Action string
}

// Replay is a stored game. Inputs is only populated by Replay(id); listings
// report InputCount instead.
type Replay struct {
	ID                int64
	GameID            string
	Seed              int64
	TickRate          int
	CelebrationFrames int
	Frames            uint64 // Frames stepped before the game ended
	Score             int
	Level             int
	Lines             int
	EndReason         string
	InputCount        int
	Inputs            []Input
	CreatedAt         time.Time
}

// Open creates or opens a SQLite database at the given path.
// It expands a leading ~, creates the parent directories and runs migrations.
func Open(dbPath string) (*Store, error) {
	path, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			celebration_frames INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS replay_inputs (
			replay_id INTEGER NOT NULL REFERENCES replays(id),
			seq INTEGER NOT NULL,
			frame INTEGER NOT NULL,
			action TEXT NOT NULL,
			PRIMARY KEY (replay_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a replay and its inputs in one transaction.
// Returns the ID of the inserted replay.
func (s *Store) SaveReplay(r Replay) (int64, error) {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	res, err := tx.ExecContext(ctx,
		`INSERT INTO replays
		 (game_id, seed, tick_rate, celebration_frames, frames, score, level, lines, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Seed, r.TickRate, r.CelebrationFrames, int64(r.Frames),
		r.Score, r.Level, r.Lines, r.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO replay_inputs (replay_id, seq, frame, action) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for i, in := range r.Inputs {
		if _, err := stmt.ExecContext(ctx, id, i, int64(in.Frame), in.Action); err != nil {
			return 0, fmt.Errorf("storage: cannot save replay input %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

const replayColumns = `r.id, r.game_id, r.seed, r.tick_rate, r.celebration_frames, r.frames,
	r.score, r.level, r.lines, r.end_reason, r.created_at,
	(SELECT COUNT(*) FROM replay_inputs i WHERE i.replay_id = r.id)`

type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(row scanner) (Replay, error) {
	var r Replay
	var frames int64
	var createdAt any
	err := row.Scan(&r.ID, &r.GameID, &r.Seed, &r.TickRate, &r.CelebrationFrames, &frames,
		&r.Score, &r.Level, &r.Lines, &r.EndReason, &createdAt, &r.InputCount)
	if err != nil {
		return Replay{}, err
	}
	r.Frames = uint64(frames)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both driver-decoded times and the raw SQLite text format.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Replay loads a replay with its inputs in recorded order.
func (s *Store) Replay(id int64) (*Replay, error) {
	r, err := scanReplay(s.db.QueryRow(
		"SELECT "+replayColumns+" FROM replays r WHERE r.id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrReplayNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT frame, action FROM replay_inputs WHERE replay_id = ? ORDER BY seq", id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay inputs: %w", err)
	}
	defer rows.Close()

	r.Inputs = make([]Input, 0, r.InputCount)
	for rows.Next() {
		var in Input
		var frame int64
		if err := rows.Scan(&frame, &in.Action); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input row: %w", err)
		}
		in.Frame = uint64(frame)
		r.Inputs = append(r.Inputs, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &r, nil
}

// RecentReplays lists the newest replays first, without their inputs.
func (s *Store) RecentReplays(limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+replayColumns+" FROM replays r ORDER BY r.id DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		replays = append(replays, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return replays, nil
}

// DeleteReplay removes a replay and its inputs.
func (s *Store) DeleteReplay(id int64) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM replay_inputs WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay inputs: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrReplayNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}
