package controller

import (
	"errors"
	"log"
	"time"

	"texasholdem-server/internal/clock"
	"texasholdem-server/internal/engine"
	"texasholdem-server/internal/eventbus"
	"texasholdem-server/internal/metrics"
	"texasholdem-server/internal/replay"
	"texasholdem-server/internal/view"
)

const cleanupTimeout = 5 * time.Second

// offlineSeatTTL is the grace period an abruptly-disconnected seat gets
// before it is automatically stood up, per SPEC_FULL.md's supplemented
// "offline-seat auto-standup" feature. internal/transport/ws marks a seat
// offline when its socket drops and cancels the timer on a matching
// reconnect.
const offlineSeatTTL = 30 * time.Second

// Match is one table's single-goroutine actor: it owns the Hand Engine, its
// timers, and publishes every state change to the Event Bus and Replay
// Recorder. All access to its state — including reads — goes through its
// command channel, so the Engine itself needs no locking of its own.
type Match struct {
	ID  string
	cfg engine.GameConfig

	eng *engine.Engine
	clk clock.Clock
	bus *eventbus.Bus
	rec *replay.Recorder

	onClosed func(gameID string)

	cmds chan command
	done chan struct{}

	closed  bool
	started bool

	turnTimer      clock.CancelHandle
	handStartTimer clock.CancelHandle
	cleanupTimer   clock.CancelHandle
	scheduledTimer clock.CancelHandle
	offlineTimers  map[engine.PlayerID]clock.CancelHandle

	emptySince      time.Time
	handStartedAt   time.Time
	handStartStacks map[engine.PlayerID]int64
	lastActionSeen  map[engine.PlayerID]int64
}

// command is a closure run on the actor goroutine. done is closed once fn
// returns, for callers that need to wait on the result; it is left nil for
// fire-and-forget enqueues from timer callbacks.
type command struct {
	fn   func(m *Match)
	done chan struct{}
}

func newMatch(gameID string, cfg engine.GameConfig, clk clock.Clock, bus *eventbus.Bus, rec *replay.Recorder, onClosed func(string)) (*Match, error) {
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	m := &Match{
		ID:              gameID,
		cfg:             cfg,
		eng:             eng,
		clk:             clk,
		bus:             bus,
		rec:             rec,
		onClosed:        onClosed,
		cmds:            make(chan command, 64),
		done:            make(chan struct{}),
		handStartStacks: make(map[engine.PlayerID]int64),
		lastActionSeen:  make(map[engine.PlayerID]int64),
		offlineTimers:   make(map[engine.PlayerID]clock.CancelHandle),
	}

	rec.StartGame(gameID, replay.Metadata{
		SmallBlind: cfg.SmallBlindAmount,
		BigBlind:   cfg.BigBlindAmount,
		StartTime:  clk.Now(),
	})

	go m.run()

	m.submit(func(mm *Match) {
		snap := mm.eng.Snapshot()
		mm.emit(eventbus.GameStarted, snap.HandNumber, phasePtr(snap.Phase), "", eventbus.GameStartedPayload{Config: cfg}, &snap)
	})

	log.Printf("[Match %s] created (max=%d, blinds=%d/%d)", gameID, cfg.MaxPlayers, cfg.SmallBlindAmount, cfg.BigBlindAmount)
	return m, nil
}

func (m *Match) run() {
	for {
		select {
		case cmd := <-m.cmds:
			cmd.fn(m)
			if cmd.done != nil {
				close(cmd.done)
			}
		case <-m.done:
			log.Printf("[Match %s] actor stopped", m.ID)
			return
		}
	}
}

// submit runs fn on the actor goroutine and blocks until it has completed.
// If the match has already stopped (or stops while cmd is queued), submit
// returns without running fn rather than blocking forever on a done channel
// nobody will ever close.
func (m *Match) submit(fn func(m *Match)) {
	cmd := command{fn: fn, done: make(chan struct{})}
	select {
	case m.cmds <- cmd:
		select {
		case <-cmd.done:
		case <-m.done:
		}
	case <-m.done:
	}
}

// enqueue runs fn on the actor goroutine without waiting for it to run —
// used by clock.Clock callbacks, which fire on their own goroutine and must
// never block on the match they're scheduling against.
func (m *Match) enqueue(fn func(m *Match)) {
	select {
	case m.cmds <- command{fn: fn}:
	case <-m.done:
	}
}

// --- public API: every method is a thin submit() wrapper -----------------

func (m *Match) AddPlayer(id engine.PlayerID, name string, stack int64) (engine.GameState, error) {
	var state engine.GameState
	var err error
	m.submit(func(mm *Match) { state, err = mm.handleAddPlayer(id, name, stack) })
	return state, err
}

func (m *Match) RemovePlayer(id engine.PlayerID) (engine.GameState, error) {
	var state engine.GameState
	var err error
	m.submit(func(mm *Match) { state, err = mm.handleRemovePlayer(id) })
	return state, err
}

func (m *Match) StartGame(requesterID engine.PlayerID) (engine.GameState, error) {
	var state engine.GameState
	var err error
	m.submit(func(mm *Match) { state, err = mm.handleStartGame(requesterID) })
	return state, err
}

func (m *Match) ProcessAction(actorID engine.PlayerID, action engine.Action) (engine.GameState, error) {
	var state engine.GameState
	var err error
	m.submit(func(mm *Match) { state, err = mm.applyAction(actorID, action, false) })
	return state, err
}

func (m *Match) Snapshot() (engine.GameState, error) {
	var state engine.GameState
	var err error
	m.submit(func(mm *Match) {
		if mm.closed {
			err = ErrMatchClosed
			return
		}
		state = mm.eng.Snapshot()
	})
	return state, err
}

func (m *Match) View(viewer view.Viewer) (view.GameStateView, error) {
	var out view.GameStateView
	var err error
	m.submit(func(mm *Match) { out, err = mm.handleView(viewer) })
	return out, err
}

// Config returns the match's immutable GameConfig. Safe to read without
// going through the actor: cfg is set once at construction and never
// mutated afterward.
func (m *Match) Config() engine.GameConfig { return m.cfg }

// MarkSeatOffline arms id's offlineSeatTTL stand-up timer. Called by
// internal/transport/ws when a seat's socket drops without an explicit
// leave. A no-op if a timer for id is already pending.
func (m *Match) MarkSeatOffline(id engine.PlayerID) {
	m.submit(func(mm *Match) { mm.handleMarkSeatOffline(id) })
}

// CancelOfflineSeat disarms id's pending stand-up timer, if any. Called by
// internal/transport/ws on a successful reconnect before the TTL fires.
func (m *Match) CancelOfflineSeat(id engine.PlayerID) {
	m.submit(func(mm *Match) { mm.handleCancelOfflineSeat(id) })
}

// ArmScheduledStart arms the one-shot "scheduled" startSettings timer. Called
// once by Registry.CreateGame right after construction.
func (m *Match) ArmScheduledStart(delay time.Duration) {
	m.submit(func(mm *Match) {
		mm.scheduledTimer = mm.clk.AfterFunc(delay, func() {
			mm.enqueue(func(mm2 *Match) { mm2.handleScheduledStart() })
		})
	})
}

// Close cancels every timer, emits game_ended and finalizes the replay. Safe
// to call more than once.
func (m *Match) Close() {
	m.submit(func(mm *Match) {
		if mm.closed {
			return
		}
		mm.destroyLocked("closed")
	})
}

// --- handlers: all run on the actor goroutine -----------------------------

func (m *Match) handleAddPlayer(id engine.PlayerID, name string, stack int64) (engine.GameState, error) {
	if m.closed {
		return engine.GameState{}, ErrMatchClosed
	}
	seat, err := m.eng.AddSeat(id, name, stack)
	if err != nil {
		return engine.GameState{}, err
	}
	m.rec.SetPlayerName(m.ID, id, name)
	m.cancelCleanup()

	snap := m.eng.Snapshot()
	m.emit(eventbus.PlayerJoined, snap.HandNumber, phasePtr(snap.Phase), id,
		eventbus.PlayerJoinedPayload{SeatIndex: seat.Index, PlayerID: id, Name: name, Stack: stack}, &snap)

	m.maybeAutoStart()
	return m.eng.Snapshot(), nil
}

func (m *Match) handleRemovePlayer(id engine.PlayerID) (engine.GameState, error) {
	if m.closed {
		return engine.GameState{}, ErrMatchClosed
	}
	m.handleCancelOfflineSeat(id)

	snapBefore := m.eng.Snapshot()
	idx := seatIndexFor(id, snapBefore)

	m.eng.RemoveSeat(id)

	snap := m.eng.Snapshot()
	m.emit(eventbus.PlayerLeft, snap.HandNumber, phasePtr(snap.Phase), id,
		eventbus.PlayerLeftPayload{SeatIndex: idx, PlayerID: id}, &snap)

	if m.eng.SeatCount() == 0 {
		m.armCleanup()
	}
	return snap, nil
}

func (m *Match) handleStartGame(requesterID engine.PlayerID) (engine.GameState, error) {
	if m.closed {
		return engine.GameState{}, ErrMatchClosed
	}
	if m.started {
		return engine.GameState{}, ErrAlreadyRunning
	}
	if m.eng.SolventSeatCount() < 2 {
		return engine.GameState{}, engine.ErrInsufficientPlayers
	}
	if m.cfg.StartSettings.CreatorID != "" && requesterID != m.cfg.StartSettings.CreatorID {
		return engine.GameState{}, ErrPermissionDenied
	}
	m.started = true
	m.armHandStart()
	return m.eng.Snapshot(), nil
}

func (m *Match) handleScheduledStart() {
	m.scheduledTimer = nil
	if m.closed || m.started {
		return
	}
	if m.eng.SolventSeatCount() < 2 {
		// Nobody showed up by the scheduled time. Not an error: the normal
		// auto-trigger / manual startGame paths remain available afterward.
		return
	}
	m.started = true
	m.armHandStart()
}

// maybeAutoStart checks startSettings.condition after a seat is added.
func (m *Match) maybeAutoStart() {
	if m.started {
		return
	}
	switch m.cfg.StartSettings.Condition {
	case "minPlayers":
		min := m.cfg.StartSettings.MinPlayers
		if min < 2 {
			min = 2
		}
		if m.eng.SolventSeatCount() < min {
			return
		}
	case "manual", "scheduled":
		return
	default: // legacy default: no explicit condition
		if m.eng.SolventSeatCount() < 2 {
			return
		}
	}
	m.started = true
	m.armHandStart()
}

func (m *Match) armHandStart() {
	m.cancelHandStart()
	delay := time.Duration(m.cfg.HandStartDelayMs) * time.Millisecond
	m.handStartTimer = m.clk.AfterFunc(delay, func() {
		m.enqueue(func(mm *Match) { mm.handleHandStartTimer() })
	})
}

func (m *Match) handleHandStartTimer() {
	m.handStartTimer = nil
	if m.closed {
		return
	}
	m.eng.RemoveBustedSeats()
	if err := m.eng.StartHand(); err != nil {
		// Not enough solvent seats after all (e.g. everyone but one left
		// between arming the timer and it firing). Fall back to waiting;
		// maybeAutoStart / a manual startGame can retrigger later.
		m.started = false
		return
	}

	m.handStartedAt = m.clk.Now()
	snap := m.eng.Snapshot()
	m.handStartStacks = make(map[engine.PlayerID]int64, len(snap.Seats))
	for _, s := range snap.Seats {
		m.handStartStacks[s.ID] = s.Stack
	}

	m.emit(eventbus.HandStarted, snap.HandNumber, phasePtr(snap.Phase), "",
		eventbus.HandStartedPayload{HandNumber: snap.HandNumber, DealerIndex: snap.DealerIndex}, &snap)

	for _, s := range snap.Seats {
		if len(s.HoleCards) == 0 {
			continue
		}
		// Hole cards are always dealt preflop, even when the hand's final
		// phase (by the time this snapshot was taken) has already advanced
		// past it — e.g. blinds alone left only one seat able to act.
		m.emit(eventbus.CardsDealt, snap.HandNumber, phasePtr(engine.PreFlop), s.ID,
			eventbus.CardsDealtPayload{HandNumber: snap.HandNumber, SeatIndex: s.Index, HoleCards: s.HoleCards, Phase: engine.PreFlop}, nil)
	}

	m.armTurnTimer(snap)

	// Blinds-only short-circuit: StartHand may already have run the hand out
	// to Showdown/HandComplete before returning.
	if snap.Phase == engine.HandComplete {
		m.handleHandComplete(m.eng.LastSettlement(), m.eng.Snapshot())
	}
}

func (m *Match) armTurnTimer(snap engine.GameState) {
	m.cancelTurnTimer()
	if !snap.HasCurrentPlayer {
		return
	}
	delay := time.Duration(m.cfg.TurnTimeLimitSeconds) * time.Second
	if delay <= 0 {
		return
	}
	actingID := seatIDAt(snap, snap.CurrentPlayerIndex)
	m.turnTimer = m.clk.AfterFunc(delay, func() {
		m.enqueue(func(mm *Match) { mm.handleTurnTimeout(actingID) })
	})
}

// handleTurnTimeout synthesizes an implicit Fold (or Check, if free) for a
// seat that let its clock expire. A stale timer — one that fired after the
// seat already acted, or after the match moved on — is discarded silently,
// per spec.md §5's cancellation-race rule.
func (m *Match) handleTurnTimeout(actorID engine.PlayerID) {
	m.turnTimer = nil
	if m.closed {
		return
	}
	snap := m.eng.Snapshot()
	if !snap.HasCurrentPlayer || seatIDAt(snap, snap.CurrentPlayerIndex) != actorID {
		return
	}
	legal, err := m.eng.LegalActions(actorID)
	if err != nil {
		return
	}
	synth := engine.Action{Type: engine.Fold, Actor: actorID, Timestamp: m.clk.Now().UnixNano()}
	for _, la := range legal {
		if la.Type == engine.Check {
			synth.Type = engine.Check
			break
		}
	}
	metrics.TurnTimeoutsTotal.Inc()
	_, _ = m.applyAction(actorID, synth, true)
}

func (m *Match) handleView(viewer view.Viewer) (view.GameStateView, error) {
	if m.closed {
		return view.GameStateView{}, ErrMatchClosed
	}
	snap := m.eng.Snapshot()
	var legal []engine.PossibleAction
	if snap.HasCurrentPlayer && viewer.Type == view.Player {
		actingID := seatIDAt(snap, snap.CurrentPlayerIndex)
		if actingID == viewer.ID {
			legal, _ = m.eng.LegalActions(actingID)
		}
	}
	return view.Project(snap, viewer, legal), nil
}

// applyAction is the shared path for both caller-submitted actions and
// synthesized turn-timeout ones.
func (m *Match) applyAction(actorID engine.PlayerID, action engine.Action, synthesized bool) (engine.GameState, error) {
	if m.closed {
		return engine.GameState{}, ErrMatchClosed
	}
	if action.Timestamp != 0 {
		if last, seen := m.lastActionSeen[actorID]; seen && last == action.Timestamp {
			return engine.GameState{}, engine.ErrIllegalAction
		}
	}

	legalBefore, _ := m.eng.LegalActions(actorID)
	prevPhase := m.eng.Snapshot().Phase

	settlement, err := m.eng.Act(actorID, action)
	if err != nil {
		metrics.ActionValidationErrors.WithLabelValues(reasonFor(err)).Inc()
		return engine.GameState{}, err
	}
	m.lastActionSeen[actorID] = action.Timestamp
	m.cancelTurnTimer()
	metrics.ActionsProcessedTotal.WithLabelValues(action.Type.String()).Inc()

	snap := m.eng.Snapshot()
	seatIdx := seatIndexFor(actorID, snap)

	if synthesized {
		m.emit(eventbus.TurnTimeout, snap.HandNumber, phasePtr(prevPhase), actorID,
			eventbus.TurnTimeoutPayload{HandNumber: snap.HandNumber, SeatIndex: seatIdx, Synthesized: action.Type}, nil)
	}
	m.emit(eventbus.ActionTaken, snap.HandNumber, phasePtr(prevPhase), actorID,
		eventbus.ActionTakenPayload{HandNumber: snap.HandNumber, SeatIndex: seatIdx, Action: action, Legal: legalBefore}, &snap)

	if settlement != nil {
		m.handleHandComplete(settlement, snap)
		return snap, nil
	}

	if snap.Phase != prevPhase {
		m.emit(eventbus.BetCollected, snap.HandNumber, phasePtr(snap.Phase), "",
			eventbus.BetCollectedPayload{HandNumber: snap.HandNumber, Pots: snap.Pots}, nil)
		m.emit(eventbus.PhaseChanged, snap.HandNumber, phasePtr(snap.Phase), "",
			eventbus.PhaseChangedPayload{HandNumber: snap.HandNumber, From: prevPhase, To: snap.Phase}, nil)
		if snap.Phase == engine.Flop || snap.Phase == engine.Turn || snap.Phase == engine.River {
			m.emit(eventbus.CardsDealt, snap.HandNumber, phasePtr(snap.Phase), "",
				eventbus.CardsDealtPayload{HandNumber: snap.HandNumber, SeatIndex: -1, CommunityOnly: snap.CommunityCards, Phase: snap.Phase}, &snap)
		}
	}

	m.armTurnTimer(snap)
	return snap, nil
}

func (m *Match) handleHandComplete(settlement *engine.SettlementResult, snap engine.GameState) {
	// snap.Pots is already empty here — settle() clears e.pots once its
	// chips are paid out (see DESIGN.md) — so the final pot amounts for
	// this event come from the settlement itself rather than the snapshot.
	m.emit(eventbus.BetCollected, snap.HandNumber, phasePtr(engine.HandComplete), "",
		eventbus.BetCollectedPayload{HandNumber: snap.HandNumber, Pots: potSnapshotsFromResults(settlement.PotResults)}, nil)
	if !settlement.NoShowdown {
		m.emit(eventbus.Showdown, snap.HandNumber, phasePtr(engine.Showdown), "",
			eventbus.ShowdownPayload{HandNumber: snap.HandNumber, Seats: settlement.SeatResults, Pots: settlement.PotResults}, nil)
	}

	netDeltas := make(map[int]int64, len(snap.Seats))
	var eliminated []int
	for _, s := range snap.Seats {
		netDeltas[s.Index] = s.Stack - m.handStartStacks[s.ID]
		if s.Stack <= 0 {
			eliminated = append(eliminated, s.Index)
		}
	}

	m.emit(eventbus.HandComplete, snap.HandNumber, phasePtr(engine.HandComplete), "",
		eventbus.HandCompletePayload{HandNumber: snap.HandNumber, NetDeltas: netDeltas, Eliminated: eliminated}, &snap)

	metrics.HandsCompletedTotal.Inc()
	if !m.handStartedAt.IsZero() {
		metrics.HandDuration.Observe(m.clk.Now().Sub(m.handStartedAt).Seconds())
	}

	for _, idx := range eliminated {
		id := seatIDAt(snap, idx)
		m.emit(eventbus.PlayerEliminated, snap.HandNumber, phasePtr(engine.HandComplete), id,
			eventbus.PlayerEliminatedPayload{SeatIndex: idx, PlayerID: id}, nil)
	}

	if m.eng.SolventSeatCount() >= 2 {
		m.armHandStart()
	} else {
		m.started = false
	}
}

func (m *Match) cancelTurnTimer() {
	if m.turnTimer != nil {
		m.turnTimer.Cancel()
		m.turnTimer = nil
	}
}

func (m *Match) cancelHandStart() {
	if m.handStartTimer != nil {
		m.handStartTimer.Cancel()
		m.handStartTimer = nil
	}
}

func (m *Match) armCleanup() {
	m.cancelCleanup()
	m.emptySince = m.clk.Now()
	stamp := m.emptySince
	m.cleanupTimer = m.clk.AfterFunc(cleanupTimeout, func() {
		m.enqueue(func(mm *Match) { mm.handleCleanupTimer(stamp) })
	})
}

func (m *Match) cancelCleanup() {
	if m.cleanupTimer != nil {
		m.cleanupTimer.Cancel()
		m.cleanupTimer = nil
	}
	m.emptySince = time.Time{}
}

func (m *Match) handleMarkSeatOffline(id engine.PlayerID) {
	if m.closed {
		return
	}
	if _, pending := m.offlineTimers[id]; pending {
		return
	}
	m.offlineTimers[id] = m.clk.AfterFunc(offlineSeatTTL, func() {
		m.enqueue(func(mm *Match) { mm.handleOfflineSeatTimeout(id) })
	})
}

func (m *Match) handleCancelOfflineSeat(id engine.PlayerID) {
	if t, pending := m.offlineTimers[id]; pending {
		t.Cancel()
		delete(m.offlineTimers, id)
	}
}

// handleOfflineSeatTimeout stands a seat up once it has been offline for
// offlineSeatTTL without a matching reconnect — a reconnect before this
// fires cancels the timer via CancelOfflineSeat, per spec.md §7's "a
// reconnect by the same playerId resumes that seat."
func (m *Match) handleOfflineSeatTimeout(id engine.PlayerID) {
	delete(m.offlineTimers, id)
	if m.closed {
		return
	}
	if _, err := m.handleRemovePlayer(id); err != nil {
		return
	}
	log.Printf("[Match %s] seat %s stood up after %s offline", m.ID, id, offlineSeatTTL)
}

// handleCleanupTimer destroys an idle match, unless it stopped being empty
// (or went empty again more recently) since this particular timer was armed
// — last-empty-time wins, per spec.md §5.
func (m *Match) handleCleanupTimer(stamp time.Time) {
	m.cleanupTimer = nil
	if m.closed {
		return
	}
	if m.eng.SeatCount() != 0 || !m.emptySince.Equal(stamp) {
		return
	}
	m.destroyLocked("idle")
}

func (m *Match) destroyLocked(reason string) {
	m.cancelTurnTimer()
	m.cancelHandStart()
	m.cancelCleanup()
	if m.scheduledTimer != nil {
		m.scheduledTimer.Cancel()
		m.scheduledTimer = nil
	}
	for id, t := range m.offlineTimers {
		t.Cancel()
		delete(m.offlineTimers, id)
	}
	m.closed = true

	snap := m.eng.Snapshot()
	m.emit(eventbus.GameEnded, snap.HandNumber, phasePtr(snap.Phase), "", eventbus.GameEndedPayload{Reason: reason}, &snap)
	if err := m.rec.EndGame(m.ID); err != nil {
		log.Printf("[Match %s] endGame failed: %v", m.ID, err)
	}
	metrics.TotalGamesPlayed.Inc()

	if m.onClosed != nil {
		m.onClosed(m.ID)
	}
	close(m.done)
}

// emit publishes ev on the bus and appends it to the replay log — the two
// always happen together, per spec.md §4.5's "every state change ...
// produces a GameEvent published on the Event Bus ... and also appended to
// the Replay Recorder."
func (m *Match) emit(evType eventbus.EventType, handNumber uint64, phase *engine.Phase, actorID engine.PlayerID, payload interface{}, snapshot *engine.GameState) {
	ev := eventbus.Event{GameID: m.ID, Type: evType, Timestamp: m.clk.Now(), Payload: payload}
	m.bus.Publish(ev)
	if _, err := m.rec.LogEvent(m.ID, ev, handNumber, phase, actorID, snapshot); err != nil {
		log.Printf("[Match %s] replay log failed for %s: %v", m.ID, evType, err)
	}
}

func phasePtr(p engine.Phase) *engine.Phase { return &p }

// potSnapshotsFromResults renders a settlement's pot distribution in the
// same shape a pre-distribution GameState.Pots would have carried, for
// events emitted after settle() has already cleared the live pots. A
// PotResult carries no eligible set, so EligibleSeats here holds the pot's
// winners.
func potSnapshotsFromResults(results []engine.PotResult) []engine.PotSnapshot {
	out := make([]engine.PotSnapshot, 0, len(results))
	for _, pr := range results {
		out = append(out, engine.PotSnapshot{
			Amount:        pr.Amount,
			IsMain:        pr.IsMain,
			EligibleSeats: append([]int{}, pr.Winners...),
		})
	}
	return out
}

func seatIndexFor(id engine.PlayerID, snap engine.GameState) int {
	for _, s := range snap.Seats {
		if s.ID == id {
			return s.Index
		}
	}
	return -1
}

func seatIDAt(snap engine.GameState, idx int) engine.PlayerID {
	for _, s := range snap.Seats {
		if s.Index == idx {
			return s.ID
		}
	}
	return ""
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, engine.ErrGameNotRunning):
		return "game_not_running"
	case errors.Is(err, engine.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, engine.ErrIllegalAction):
		return "illegal_action"
	case errors.Is(err, engine.ErrAmountOutOfRange):
		return "amount_out_of_range"
	case errors.Is(err, engine.ErrInsufficientPlayers):
		return "insufficient_players"
	default:
		return "other"
	}
}
