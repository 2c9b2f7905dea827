package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"texasholdem-server/internal/replay"
)

const defaultSQLiteTimeout = 3 * time.Second

// SQLiteSink persists replay events and finalized games to a local SQLite
// file via modernc.org/sqlite (pure Go, no cgo toolchain required). It
// implements replay.Sink.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the database at path and ensures
// the replay tables exist. path may be ":memory:" for tests.
func OpenSQLite(path string) (*SQLiteSink, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty sqlite path")
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000`,
		`PRAGMA journal_mode = WAL`,
		`PRAGMA foreign_keys = ON`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteSink{db: db}, nil
}

func ensureSQLiteSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS replay_events (
			game_id TEXT NOT NULL,
			sequence_id INTEGER NOT NULL,
			event_type TEXT NOT NULL,
			payload TEXT NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (game_id, sequence_id)
		)`,
		`CREATE TABLE IF NOT EXISTS replay_games (
			game_id TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_replay_events_game ON replay_events(game_id)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Append implements replay.Sink. SQLite's upsert syntax is identical to
// Postgres's ($n placeholders and ON CONFLICT are both supported by
// modernc.org/sqlite), so it reuses the same appendEventRow helper.
func (s *SQLiteSink) Append(gameID string, event replay.ReplayEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultSQLiteTimeout)
	defer cancel()
	logAppendErr(ctx, s.db, gameID, event)
}

// Finalize implements replay.Sink.
func (s *SQLiteSink) Finalize(gameID string, data replay.ReplayData) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultSQLiteTimeout)
	defer cancel()
	logFinalizeErr(ctx, s.db, gameID, data)
}

// Load fetches a previously finalized replay by gameId.
func (s *SQLiteSink) Load(ctx context.Context, gameID string) (replay.ReplayData, error) {
	return loadGameRow(ctx, s.db, gameID)
}

// Close releases the underlying connection.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
