// Package sqlite provides a SQLite-backed game archive.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hupe1980/wolfarena/archive"
	"github.com/hupe1980/wolfarena/core"
	_ "modernc.org/sqlite"
)

// Store persists finished games in a single SQLite file. It is safe for
// concurrent use; the underlying *sql.DB serializes writers.
type Store struct {
	sqlDB *sql.DB
}

var _ archive.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite archive at the provided path and creates the schema
// when missing.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) runMigrations() error {
	_, err := s.sqlDB.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id           TEXT PRIMARY KEY,
			played_at    INTEGER NOT NULL,
			winner       TEXT NOT NULL,
			rounds       INTEGER NOT NULL,
			reveals_json TEXT NOT NULL,
			events_json  TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_games_played_at ON games (played_at);
	`)
	return err
}

// Save stores (or overwrites) the record under its id. Reveals and events
// are serialized as JSON columns; a zero PlayedAt is replaced with the
// current time so List ordering stays meaningful.
func (s *Store) Save(ctx context.Context, rec archive.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return fmt.Errorf("record id is required")
	}
	playedAt := rec.PlayedAt.UTC()
	if playedAt.IsZero() {
		playedAt = time.Now().UTC()
	}

	revealsJSON, err := json.Marshal(rec.Reveals)
	if err != nil {
		return fmt.Errorf("marshal reveals: %w", err)
	}
	eventsJSON, err := json.Marshal(rec.Events)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO games (
		   id,
		   played_at,
		   winner,
		   rounds,
		   reveals_json,
		   events_json
		 ) VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		toMillis(playedAt),
		string(rec.Winner),
		rec.Rounds,
		string(revealsJSON),
		string(eventsJSON),
	)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// Get returns one archived game by id.
func (s *Store) Get(ctx context.Context, id string) (archive.Record, error) {
	if err := ctx.Err(); err != nil {
		return archive.Record{}, err
	}
	if s == nil || s.sqlDB == nil {
		return archive.Record{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return archive.Record{}, fmt.Errorf("record id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, played_at, winner, rounds, reveals_json, events_json
		   FROM games
		  WHERE id = ?`,
		id,
	)

	var rec archive.Record
	var playedAt int64
	var winner string
	var revealsJSON string
	var eventsJSON string
	err := row.Scan(&rec.ID, &playedAt, &winner, &rec.Rounds, &revealsJSON, &eventsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return archive.Record{}, archive.ErrNotFound
		}
		return archive.Record{}, fmt.Errorf("get game: %w", err)
	}

	rec.PlayedAt = fromMillis(playedAt)
	rec.Winner = core.Side(winner)
	if err := json.Unmarshal([]byte(revealsJSON), &rec.Reveals); err != nil {
		return archive.Record{}, fmt.Errorf("unmarshal reveals: %w", err)
	}
	if err := json.Unmarshal([]byte(eventsJSON), &rec.Events); err != nil {
		return archive.Record{}, fmt.Errorf("unmarshal events: %w", err)
	}
	return rec, nil
}

// List returns the archived game ids, newest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id
		   FROM games
		  ORDER BY played_at DESC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return ids, nil
}
