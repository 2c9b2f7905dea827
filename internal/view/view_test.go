package view

import (
	"testing"

	"texasholdem-server/internal/card"
	"texasholdem-server/internal/engine"
)

func sampleState() engine.GameState {
	return engine.GameState{
		Phase:              engine.Flop,
		HasCurrentPlayer:   true,
		CurrentPlayerIndex: 0,
		Seats: []engine.SeatSnapshot{
			{ID: "p1", Index: 0, HoleCards: []card.Card{card.MustParse("Ah"), card.MustParse("Kh")}},
			{ID: "p2", Index: 1, HoleCards: []card.Card{card.MustParse("2c"), card.MustParse("3d")}},
		},
	}
}

func TestProjectHidesOthersHoleCardsPreShowdown(t *testing.T) {
	state := sampleState()
	gv := Project(state, Viewer{Type: Player, ID: "p1"}, nil)

	if !gv.Seats[0].Visible || len(gv.Seats[0].HoleCards) != 2 {
		t.Fatal("viewer should see their own hole cards")
	}
	if gv.Seats[1].Visible || gv.Seats[1].HoleCards != nil {
		t.Fatal("viewer should not see an opponent's hole cards before showdown")
	}
}

func TestProjectRevealsAllNonFoldedHandsAtShowdown(t *testing.T) {
	state := sampleState()
	state.Phase = engine.HandComplete
	state.Seats[1].Folded = false

	gv := Project(state, Viewer{Type: Spectator}, nil)
	if !gv.Seats[0].Visible || !gv.Seats[1].Visible {
		t.Fatal("all non-folded hands should be visible at hand complete")
	}
}

func TestProjectHidesFoldedHandAtShowdown(t *testing.T) {
	state := sampleState()
	state.Phase = engine.HandComplete
	state.Seats[1].Folded = true

	gv := Project(state, Viewer{Type: Spectator}, nil)
	if gv.Seats[1].Visible {
		t.Fatal("a folded hand must never be revealed, even at showdown")
	}
}

// S6 — a fold win reaches HandComplete without ever passing through
// Showdown; the winner's hole cards must stay hidden from spectators during
// the post-hand delay.
func TestProjectHidesHoleCardsOnFoldWin(t *testing.T) {
	state := sampleState()
	state.Phase = engine.HandComplete
	state.NoShowdown = true
	state.Seats[1].Folded = true

	gv := Project(state, Viewer{Type: Spectator}, nil)
	if gv.Seats[0].Visible || gv.Seats[0].HoleCards != nil {
		t.Fatal("a fold win must not reveal the winner's hole cards to spectators")
	}

	self := Project(state, Viewer{Type: Player, ID: "p1"}, nil)
	if !self.Seats[0].Visible {
		t.Fatal("the winner should still see their own hole cards")
	}
}

func TestProjectAttachesPossibleActionsOnlyToActingSelf(t *testing.T) {
	state := sampleState()
	legal := []engine.PossibleAction{{Type: engine.Check}}

	self := Project(state, Viewer{Type: Player, ID: "p1"}, legal)
	if len(self.PossibleActions) != 1 {
		t.Fatal("the acting seat's own view should carry its possible actions")
	}

	other := Project(state, Viewer{Type: Player, ID: "p2"}, legal)
	if len(other.PossibleActions) != 0 {
		t.Fatal("a non-acting viewer must not see possible actions")
	}

	spectator := Project(state, Viewer{Type: Spectator}, legal)
	if len(spectator.PossibleActions) != 0 {
		t.Fatal("a spectator must not see possible actions")
	}
}
