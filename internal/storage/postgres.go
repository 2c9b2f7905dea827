package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"texasholdem-server/internal/replay"
)

const defaultPostgresTimeout = 3 * time.Second

// PostgresSink persists replay events and finalized games to Postgres via
// lib/pq. It implements replay.Sink.
type PostgresSink struct {
	db *sql.DB
}

// OpenPostgres dials dsn, verifies connectivity, and ensures the replay
// tables exist.
func OpenPostgres(dsn string) (*PostgresSink, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("empty postgres dsn")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensurePostgresSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresSink{db: db}, nil
}

func ensurePostgresSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS replay_events (
			game_id TEXT NOT NULL,
			sequence_id BIGINT NOT NULL,
			event_type TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (game_id, sequence_id)
		)`,
		`CREATE TABLE IF NOT EXISTS replay_games (
			game_id TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
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

// Append implements replay.Sink.
func (s *PostgresSink) Append(gameID string, event replay.ReplayEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultPostgresTimeout)
	defer cancel()
	logAppendErr(ctx, s.db, gameID, event)
}

// Finalize implements replay.Sink.
func (s *PostgresSink) Finalize(gameID string, data replay.ReplayData) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultPostgresTimeout)
	defer cancel()
	logFinalizeErr(ctx, s.db, gameID, data)
}

// Load fetches a previously finalized replay by gameId, for
// GET /api/replays/:id after a process restart.
func (s *PostgresSink) Load(ctx context.Context, gameID string) (replay.ReplayData, error) {
	return loadGameRow(ctx, s.db, gameID)
}

// Close releases the underlying connection pool.
func (s *PostgresSink) Close() error {
	return s.db.Close()
}
