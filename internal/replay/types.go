// Package replay implements the append-only event log and analyzer
// described in spec.md §4.7: a per-match ReplayData record that grows one
// ReplayEvent at a time, periodic inline checkpoints so the analyzer can
// jump without replaying from zero, and read-only analysis views over a
// finished or in-progress record.
package replay

import (
	"time"

	"texasholdem-server/internal/engine"
	"texasholdem-server/internal/eventbus"
)

// ReplayEvent is one entry in a match's append-only log. Payload mirrors the
// eventbus.Event that produced it; Snapshot is non-nil only on checkpoint
// entries.
type ReplayEvent struct {
	SequenceID uint64             `json:"sequenceId"`
	Type       eventbus.EventType `json:"type"`
	Timestamp  time.Time          `json:"timestamp"`
	HandNumber uint64             `json:"handNumber,omitempty"`
	Phase      *engine.Phase      `json:"phase,omitempty"`
	ActorID    engine.PlayerID    `json:"actorId,omitempty"`
	Payload    interface{}        `json:"payload,omitempty"`
	Snapshot   *engine.GameState  `json:"gameStateSnapshot,omitempty"`
}

// Metadata is the descriptive header finalized at endGame.
type Metadata struct {
	PlayerNames  map[engine.PlayerID]string `json:"playerNames"`
	SmallBlind   int64                      `json:"smallBlind"`
	BigBlind     int64                      `json:"bigBlind"`
	StartTime    time.Time                  `json:"startTime"`
	EndTime      time.Time                  `json:"endTime,omitempty"`
	TotalEvents  int                        `json:"totalEvents"`
	TotalActions int                        `json:"totalActions"`
	HandCount    uint64                     `json:"handCount"`
}

// ReplayData is the full, self-describing record for one match: metadata,
// the gap-free event sequence, and an index from hand number to the position
// in Events of that hand's hand_started event, so the analyzer can locate a
// hand in O(1) instead of scanning. CheckpointIndex likewise maps a
// checkpoint's sequenceId to its position in Events.
type ReplayData struct {
	GameID          string            `json:"gameId"`
	Metadata        Metadata          `json:"metadata"`
	Events          []ReplayEvent     `json:"events"`
	HandIndex       map[uint64]int    `json:"handIndex"`
	CheckpointIndex map[uint64]int    `json:"checkpointIndex"`
	Ended           bool              `json:"ended"`
}
