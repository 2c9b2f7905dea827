package replay

import (
	"sync"
	"time"

	"texasholdem-server/internal/engine"
	"texasholdem-server/internal/eventbus"
)

// Sink durably persists replay data out of process. Append/Finalize are
// called from a background goroutine and must never be on the hand
// processing path — see spec.md §5 suspension point (d). A Recorder with no
// Sink attached is still fully functional; the in-memory log is always
// authoritative.
type Sink interface {
	Append(gameID string, event ReplayEvent)
	Finalize(gameID string, data ReplayData)
}

type gameLog struct {
	mu   sync.Mutex
	data ReplayData
}

// Recorder holds one append-only ReplayData per match. Operations on
// different gameIds never contend; operations on the same gameId serialize
// through that game's own lock.
type Recorder struct {
	checkpointInterval int
	sink               Sink

	reg   sync.RWMutex
	games map[string]*gameLog
}

// NewRecorder constructs a Recorder that snapshots full GameState every
// checkpointInterval events (minimum 1). sink may be nil.
func NewRecorder(checkpointInterval int, sink Sink) *Recorder {
	if checkpointInterval < 1 {
		checkpointInterval = 1
	}
	return &Recorder{
		checkpointInterval: checkpointInterval,
		sink:               sink,
		games:              make(map[string]*gameLog),
	}
}

// StartGame opens a new, empty ReplayData for gameID. Re-calling it for an
// already-open game replaces the in-memory log, matching a fresh match
// instance reusing a previously ended gameId.
func (r *Recorder) StartGame(gameID string, meta Metadata) {
	if meta.PlayerNames == nil {
		meta.PlayerNames = make(map[engine.PlayerID]string)
	}
	if meta.StartTime.IsZero() {
		meta.StartTime = time.Now()
	}
	r.reg.Lock()
	defer r.reg.Unlock()
	r.games[gameID] = &gameLog{data: ReplayData{
		GameID:          gameID,
		Metadata:        meta,
		HandIndex:       make(map[uint64]int),
		CheckpointIndex: make(map[uint64]int),
	}}
}

// SetPlayerName records a seat's display name in a game's metadata, so the
// finalized record shows every name without the caller having known the
// full roster up front at StartGame.
func (r *Recorder) SetPlayerName(gameID string, id engine.PlayerID, name string) {
	g, ok := r.get(gameID)
	if !ok {
		return
	}
	g.mu.Lock()
	g.data.Metadata.PlayerNames[id] = name
	g.mu.Unlock()
}

func (r *Recorder) get(gameID string) (*gameLog, bool) {
	r.reg.RLock()
	defer r.reg.RUnlock()
	g, ok := r.games[gameID]
	return g, ok
}

// LogEvent appends one event, assigning it the next sequenceId. snapshot, if
// non-nil, is the current full GameState as of this event; it is retained
// inline only on checkpoint boundaries (every checkpointInterval events) to
// keep the log from growing O(events * stateSize).
func (r *Recorder) LogEvent(gameID string, ev eventbus.Event, handNumber uint64, phase *engine.Phase, actorID engine.PlayerID, snapshot *engine.GameState) (uint64, error) {
	g, ok := r.get(gameID)
	if !ok {
		return 0, ErrInvalidReplay(gameID, "logEvent on unknown game")
	}

	g.mu.Lock()
	seq := uint64(len(g.data.Events)) + 1
	entry := ReplayEvent{
		SequenceID: seq,
		Type:       ev.Type,
		Timestamp:  ev.Timestamp,
		HandNumber: handNumber,
		Phase:      phase,
		ActorID:    actorID,
		Payload:    ev.Payload,
	}
	if seq == 1 || seq%uint64(r.checkpointInterval) == 0 {
		entry.Snapshot = snapshot
		g.data.CheckpointIndex[seq] = len(g.data.Events)
	}
	if ev.Type == eventbus.HandStarted {
		if _, seen := g.data.HandIndex[handNumber]; !seen {
			g.data.HandIndex[handNumber] = len(g.data.Events)
		}
	}
	if ev.Type == eventbus.ActionTaken {
		g.data.Metadata.TotalActions++
	}
	g.data.Events = append(g.data.Events, entry)
	g.data.Metadata.TotalEvents = len(g.data.Events)
	g.data.Metadata.HandCount = handNumber
	g.mu.Unlock()

	if r.sink != nil {
		go r.sink.Append(gameID, entry)
	}
	return seq, nil
}

// EndGame finalizes a game's metadata (endTime) and marks it ended. It does
// not remove the in-memory record — callers decide retention.
func (r *Recorder) EndGame(gameID string) error {
	g, ok := r.get(gameID)
	if !ok {
		return ErrInvalidReplay(gameID, "endGame on unknown game")
	}

	g.mu.Lock()
	g.data.Metadata.EndTime = time.Now()
	g.data.Ended = true
	snapshot := g.data
	g.mu.Unlock()

	if r.sink != nil {
		go r.sink.Finalize(gameID, snapshot)
	}
	return nil
}

// Save persists gameID's current replay to the configured sink synchronously
// — the explicit "persist to durable storage" request (POST
// /api/replays/:id/save), distinct from EndGame's best-effort async
// Finalize fired automatically on every match completion.
func (r *Recorder) Save(gameID string) error {
	if r.sink == nil {
		return ErrInvalidReplay(gameID, "no replay sink configured")
	}
	g, ok := r.get(gameID)
	if !ok {
		return ErrInvalidReplay(gameID, "unknown game")
	}
	g.mu.Lock()
	data := cloneReplayData(g.data)
	g.mu.Unlock()
	r.sink.Finalize(gameID, data)
	return nil
}

// Load returns a copy of the current ReplayData for gameID, valid whether or
// not the game has ended.
func (r *Recorder) Load(gameID string) (ReplayData, error) {
	g, ok := r.get(gameID)
	if !ok {
		return ReplayData{}, ErrInvalidReplay(gameID, "unknown game")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return cloneReplayData(g.data), nil
}

func cloneReplayData(d ReplayData) ReplayData {
	out := d
	out.Events = append([]ReplayEvent(nil), d.Events...)
	out.HandIndex = make(map[uint64]int, len(d.HandIndex))
	for k, v := range d.HandIndex {
		out.HandIndex[k] = v
	}
	out.CheckpointIndex = make(map[uint64]int, len(d.CheckpointIndex))
	for k, v := range d.CheckpointIndex {
		out.CheckpointIndex[k] = v
	}
	out.Metadata.PlayerNames = make(map[engine.PlayerID]string, len(d.Metadata.PlayerNames))
	for k, v := range d.Metadata.PlayerNames {
		out.Metadata.PlayerNames[k] = v
	}
	return out
}
