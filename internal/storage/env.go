package storage

import (
	"os"
	"strings"

	"texasholdem-server/internal/replay"
)

const defaultSQLitePath = "pokerserver_replays.db"

// OpenFromEnv constructs the configured replay.Sink from environment
// variables (SPEC_FULL.md §6.4): REPLAY_SINK selects "postgres", "sqlite",
// or "none" (default); REPLAY_DATABASE_URL / REPLAY_SQLITE_PATH supply the
// connection target. A nil Sink with a nil error means no durable sink was
// configured — the in-memory log remains fully authoritative.
func OpenFromEnv() (replay.Sink, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("REPLAY_SINK"))) {
	case "postgres":
		dsn := os.Getenv("REPLAY_DATABASE_URL")
		sink, err := OpenPostgres(dsn)
		if err != nil {
			return nil, nil, err
		}
		return sink, sink.Close, nil
	case "sqlite":
		path := strings.TrimSpace(os.Getenv("REPLAY_SQLITE_PATH"))
		if path == "" {
			path = defaultSQLitePath
		}
		sink, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return sink, sink.Close, nil
	default:
		return nil, func() error { return nil }, nil
	}
}
