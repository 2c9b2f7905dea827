package controller

import (
	"sort"
	"sync"
	"time"

	"texasholdem-server/internal/clock"
	"texasholdem-server/internal/engine"
	"texasholdem-server/internal/eventbus"
	"texasholdem-server/internal/metrics"
	"texasholdem-server/internal/replay"
)

// Registry is the match directory keyed by GameId: the only cross-match
// shared mutable state (spec.md §5). Insert/lookup/remove are atomic under
// a single RWMutex; everything else about a match lives inside its own
// Match actor.
type Registry struct {
	clk clock.Clock
	bus *eventbus.Bus
	rec *replay.Recorder

	mu      sync.RWMutex
	matches map[string]*Match
}

// NewRegistry constructs an empty Registry. bus and rec are shared across
// every match it creates.
func NewRegistry(clk clock.Clock, bus *eventbus.Bus, rec *replay.Recorder) *Registry {
	return &Registry{
		clk:     clk,
		bus:     bus,
		rec:     rec,
		matches: make(map[string]*Match),
	}
}

// CreateGame constructs a new match in WaitingForPlayers. Fails with
// ErrDuplicateGameID if gameID is already registered.
func (r *Registry) CreateGame(gameID string, cfg engine.GameConfig) (*Match, error) {
	r.mu.Lock()
	if _, exists := r.matches[gameID]; exists {
		r.mu.Unlock()
		return nil, ErrDuplicateGameID
	}
	// Reserve the slot before releasing the lock so a concurrent CreateGame
	// for the same gameID can't race past the existence check.
	r.matches[gameID] = nil
	r.mu.Unlock()

	m, err := newMatch(gameID, cfg, r.clk, r.bus, r.rec, r.removeMatch)
	if err != nil {
		r.mu.Lock()
		delete(r.matches, gameID)
		r.mu.Unlock()
		return nil, err
	}

	r.mu.Lock()
	r.matches[gameID] = m
	metrics.ActiveGames.Set(float64(len(r.matches)))
	r.mu.Unlock()

	if cfg.StartSettings.Condition == "scheduled" && cfg.StartSettings.ScheduledStartUnix > 0 {
		delay := time.Unix(cfg.StartSettings.ScheduledStartUnix, 0).Sub(r.clk.Now())
		if delay < 0 {
			delay = 0
		}
		m.ArmScheduledStart(delay)
	}

	return m, nil
}

// Bus returns the shared event bus every match publishes on, so transports
// (internal/transport/ws) can subscribe to a gameId without reaching into a
// Match's internals.
func (r *Registry) Bus() *eventbus.Bus { return r.bus }

// GetMatch looks up a match by gameID.
func (r *Registry) GetMatch(gameID string) (*Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[gameID]
	if !ok || m == nil {
		return nil, ErrUnknownGame
	}
	return m, nil
}

// ListMatches returns every registered match, ordered by gameID for
// deterministic listing (GET /api/games).
func (r *Registry) ListMatches() []*Match {
	r.mu.RLock()
	out := make([]*Match, 0, len(r.matches))
	for _, m := range r.matches {
		if m != nil {
			out = append(out, m)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RemoveMatch is the admin-initiated DELETE /api/games/:id path: it closes
// the match (emitting game_ended) and removes it from the registry.
func (r *Registry) RemoveMatch(gameID string) error {
	m, err := r.GetMatch(gameID)
	if err != nil {
		return err
	}
	m.Close()
	return nil
}

// removeMatch is the Match actor's own onClosed callback — it fires after a
// match has already emitted game_ended (whether from an idle cleanup timer
// or an explicit RemoveMatch), so this path only ever deletes the map entry.
func (r *Registry) removeMatch(gameID string) {
	r.mu.Lock()
	delete(r.matches, gameID)
	metrics.ActiveGames.Set(float64(len(r.matches)))
	r.mu.Unlock()
}
