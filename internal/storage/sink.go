// Package storage implements the durable, best-effort replay.Sink described
// in SPEC_FULL.md §4.7: each event and each finalized replay is persisted as
// a self-describing JSON blob, matching spec.md §6's "wire format is the
// in-memory structure verbatim" — no row-level schema tries to model
// ReplayEvent's shape beyond (gameId, sequenceId, json blob).
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"texasholdem-server/internal/replay"
)

// queryer is the sql.DB subset both backends need; it lets appendEventRow /
// finalizeGameRow / loadGameRow stay driver-agnostic.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func appendEventRow(ctx context.Context, db queryer, gameID string, event replay.ReplayEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
INSERT INTO replay_events (game_id, sequence_id, event_type, payload, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (game_id, sequence_id) DO NOTHING
`, gameID, event.SequenceID, string(event.Type), payload, time.Now().UTC())
	return err
}

func finalizeGameRow(ctx context.Context, db queryer, gameID string, data replay.ReplayData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
INSERT INTO replay_games (game_id, data, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (game_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
`, gameID, payload, time.Now().UTC())
	return err
}

func loadGameRow(ctx context.Context, db queryer, gameID string) (replay.ReplayData, error) {
	var payload []byte
	err := db.QueryRowContext(ctx, `SELECT data FROM replay_games WHERE game_id = $1`, gameID).Scan(&payload)
	if err != nil {
		return replay.ReplayData{}, err
	}
	var data replay.ReplayData
	if err := json.Unmarshal(payload, &data); err != nil {
		return replay.ReplayData{}, err
	}
	return data, nil
}

// logAppendErr logs the Append path's error instead of returning it: Sink
// methods are invoked on a throwaway goroutine by internal/replay.Recorder
// and must never be allowed to affect hand processing.
func logAppendErr(ctx context.Context, db queryer, gameID string, event replay.ReplayEvent) {
	if err := appendEventRow(ctx, db, gameID, event); err != nil {
		log.Printf("[storage] append event failed: game=%s seq=%d err=%v", gameID, event.SequenceID, err)
	}
}

func logFinalizeErr(ctx context.Context, db queryer, gameID string, data replay.ReplayData) {
	if err := finalizeGameRow(ctx, db, gameID, data); err != nil {
		log.Printf("[storage] finalize replay failed: game=%s err=%v", gameID, err)
	}
}

// ErrUnsupportedDriver describes a driver name neither backend recognizes.
// No function in this package returns it: OpenFromEnv treats any
// unrecognized REPLAY_SINK value as "none".
var ErrUnsupportedDriver = fmt.Errorf("storage: unsupported driver (want \"postgres\" or \"sqlite\")")
