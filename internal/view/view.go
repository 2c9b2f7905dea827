// Package view implements the View Projector: the pure function that masks
// hidden information out of a GameState for a particular viewer.
package view

import (
	"texasholdem-server/internal/card"
	"texasholdem-server/internal/engine"
)

// ViewerType distinguishes who is asking for a projection.
type ViewerType byte

const (
	Spectator ViewerType = iota
	Player
	Replay
)

// Viewer identifies who the projection is being rendered for.
type Viewer struct {
	Type ViewerType
	ID   engine.PlayerID // only meaningful when Type == Player
}

// SeatView is one seat as a particular viewer is allowed to see it.
type SeatView struct {
	ID         engine.PlayerID
	Name       string
	Index      int
	Stack      int64
	RoundWager int64
	HandWager  int64
	Active     bool
	Folded     bool
	AllIn      bool
	HasActed   bool
	LastAction engine.ActionType

	// HoleCards is nil unless Visible is true.
	HoleCards []card.Card
	Visible   bool
}

// PotView mirrors engine.PotSnapshot — pots carry no hidden information.
type PotView struct {
	Amount        int64
	IsMain        bool
	EligibleSeats []int
}

// GameStateView is the projected, viewer-specific rendering of a GameState.
type GameStateView struct {
	HandNumber uint64
	Phase      engine.Phase

	DealerIndex        int
	SmallBlindIndex    int
	BigBlindIndex      int
	CurrentPlayerIndex int
	HasCurrentPlayer   bool

	CurBet   int64
	MinRaise int64

	CommunityCards []card.Card
	Pots           []PotView
	Seats          []SeatView

	// PossibleActions is non-empty only for the seat currently to act, and
	// only when that seat is the viewer themselves.
	PossibleActions []engine.PossibleAction
}

// Project renders state for viewer, applying the hole-card visibility rule
// from spec.md §4.6: a seat's hole cards are visible iff the viewer IS that
// seat, or a showdown actually occurred and the seat did not fold. A hand
// that ends by fold reaches HandComplete without ever passing through
// Showdown (engine.GameState.NoShowdown), so HandComplete alone must never
// reveal cards — otherwise a spectator polling during the post-hand delay
// sees the winner's hole cards on a fold win. All other per-seat fields are
// visible to everyone. Possible actions are attached only for the seat
// currently to act, and only to that seat's own view.
func Project(state engine.GameState, viewer Viewer, legalForActingSeat []engine.PossibleAction) GameStateView {
	out := GameStateView{
		HandNumber:         state.HandNumber,
		Phase:               state.Phase,
		DealerIndex:        state.DealerIndex,
		SmallBlindIndex:    state.SmallBlindIndex,
		BigBlindIndex:      state.BigBlindIndex,
		CurrentPlayerIndex: state.CurrentPlayerIndex,
		HasCurrentPlayer:   state.HasCurrentPlayer,
		CurBet:             state.CurBet,
		MinRaise:           state.MinRaise,
		CommunityCards:     append([]card.Card{}, state.CommunityCards...),
	}

	for _, p := range state.Pots {
		out.Pots = append(out.Pots, PotView{
			Amount:        p.Amount,
			IsMain:        p.IsMain,
			EligibleSeats: append([]int{}, p.EligibleSeats...),
		})
	}

	revealAll := state.Phase == engine.Showdown || (state.Phase == engine.HandComplete && !state.NoShowdown)
	for _, s := range state.Seats {
		sv := SeatView{
			ID:         s.ID,
			Name:       s.Name,
			Index:      s.Index,
			Stack:      s.Stack,
			RoundWager: s.RoundWager,
			HandWager:  s.HandWager,
			Active:     s.Active,
			Folded:     s.Folded,
			AllIn:      s.AllIn,
			HasActed:   s.HasActed,
			LastAction: s.LastAction,
		}

		isSelf := viewer.Type == Player && viewer.ID == s.ID
		revealed := isSelf || (revealAll && !s.Folded)
		if revealed {
			sv.HoleCards = append([]card.Card{}, s.HoleCards...)
			sv.Visible = true
		}

		if state.HasCurrentPlayer && state.CurrentPlayerIndex == s.Index && isSelf {
			out.PossibleActions = legalForActingSeat
		}

		out.Seats = append(out.Seats, sv)
	}

	return out
}
