package engine

import (
	"sort"

	"texasholdem-server/internal/card"
)

// SeatSnapshot is an immutable copy of one seat's public state.
type SeatSnapshot struct {
	ID         PlayerID
	Name       string
	Index      int
	Stack      int64
	RoundWager int64
	HandWager  int64
	Active     bool
	Folded     bool
	AllIn      bool
	HasActed   bool
	LastAction ActionType
	HoleCards  []card.Card // full, unmasked — the View Projector hides these per viewer
}

// PotSnapshot is an immutable copy of one pot.
type PotSnapshot struct {
	Amount          int64
	IsMain          bool
	EligibleSeats   []int
}

// GameState is the match's full state: the Hand Engine's public, immutable
// projection per spec.md §3. Construct via Engine.Snapshot — never mutate
// in place.
type GameState struct {
	HandNumber uint64
	Phase      Phase

	DealerIndex        int
	SmallBlindIndex    int
	BigBlindIndex      int
	CurrentPlayerIndex int
	HasCurrentPlayer   bool

	CurBet   int64
	MinRaise int64

	CommunityCards []card.Card
	Pots           []PotSnapshot
	Seats          []SeatSnapshot

	// NoShowdown is true once the current hand is HandComplete and ended by
	// a fold rather than a showdown — no hole cards were ever revealed, so
	// the View Projector must not reveal them either. Meaningless outside
	// HandComplete.
	NoShowdown bool
}

// Snapshot takes an immutable copy of the engine's current state.
func (e *Engine) Snapshot() GameState {
	gs := GameState{
		HandNumber:      e.handNumber,
		Phase:           e.phase,
		DealerIndex:     e.dealerIdx,
		SmallBlindIndex: e.sbIdx,
		BigBlindIndex:   e.bbIdx,
		CurBet:          e.curBet,
		MinRaise:        e.minRaise,
		CommunityCards:  append([]card.Card{}, e.community...),
	}
	if e.phase != WaitingForPlayers && e.phase != HandComplete && e.phase != Showdown {
		gs.CurrentPlayerIndex = e.actIdx
		gs.HasCurrentPlayer = true
	}
	if e.phase == HandComplete && e.lastSettlement != nil {
		gs.NoShowdown = e.lastSettlement.NoShowdown
	}

	indices := make([]int, 0, len(e.seats))
	for idx := range e.seats {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	for _, idx := range indices {
		s := e.seats[idx]
		gs.Seats = append(gs.Seats, SeatSnapshot{
			ID:         s.ID,
			Name:       s.Name,
			Index:      s.Index,
			Stack:      s.stack,
			RoundWager: s.roundWager,
			HandWager:  s.totalHandWager,
			Active:     s.active,
			Folded:     s.folded,
			AllIn:      s.allIn,
			HasActed:   s.hasActed,
			LastAction: s.lastAction,
			HoleCards:  append([]card.Card{}, s.holeCards...),
		})
	}

	for _, p := range e.pots.pots {
		ps := PotSnapshot{Amount: p.Amount, IsMain: p.IsMain}
		for seatIdx := range p.Eligible {
			ps.EligibleSeats = append(ps.EligibleSeats, seatIdx)
		}
		sort.Ints(ps.EligibleSeats)
		gs.Pots = append(gs.Pots, ps)
	}

	return gs
}

// LastSettlement returns the most recent hand's settlement, or nil if the
// current hand (if any) hasn't completed yet.
func (e *Engine) LastSettlement() *SettlementResult { return e.lastSettlement }
