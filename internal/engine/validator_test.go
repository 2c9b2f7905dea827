package engine

import "testing"

func TestPossibleActionsNoOutstandingBetOffersCheckAndBet(t *testing.T) {
	seat := &Seat{Index: 0, stack: 500}
	ctx := bettingContext{curBet: 0, minRaise: 20, bigBlind: 20, raiserIndex: -1, canReopen: true}
	actions := possibleActions(seat, ctx)

	assertHasType(t, actions, Check)
	assertHasType(t, actions, Bet)
	assertHasType(t, actions, AllIn)
	assertNoType(t, actions, Fold)
	assertNoType(t, actions, Call)
}

func TestPossibleActionsFacingBetOffersFoldCallRaise(t *testing.T) {
	seat := &Seat{Index: 1, stack: 500}
	ctx := bettingContext{curBet: 100, minRaise: 100, bigBlind: 20, raiserIndex: 0, canReopen: true}
	actions := possibleActions(seat, ctx)

	assertHasType(t, actions, Fold)
	assertHasType(t, actions, Call)
	assertHasType(t, actions, Raise)
	assertNoType(t, actions, Check)
	assertNoType(t, actions, Bet)
}

func TestPossibleActionsNoRaiseWhenCannotReopen(t *testing.T) {
	seat := &Seat{Index: 1, stack: 500}
	ctx := bettingContext{curBet: 100, minRaise: 100, bigBlind: 20, raiserIndex: 0, canReopen: false}
	actions := possibleActions(seat, ctx)
	assertNoType(t, actions, Raise)
}

func TestValidateActionRejectsOutOfRangeAmount(t *testing.T) {
	allowed := []PossibleAction{{Type: Raise, MinAmount: 200, MaxAmount: 500}}
	if err := validateAction(allowed, Action{Type: Raise, Amount: 150}); err != ErrAmountOutOfRange {
		t.Fatalf("expected ErrAmountOutOfRange, got %v", err)
	}
}

func TestValidateActionRejectsIllegalType(t *testing.T) {
	allowed := []PossibleAction{{Type: Check}}
	if err := validateAction(allowed, Action{Type: Bet, Amount: 20}); err != ErrIllegalAction {
		t.Fatalf("expected ErrIllegalAction, got %v", err)
	}
}

func assertHasType(t *testing.T, actions []PossibleAction, want ActionType) {
	t.Helper()
	for _, a := range actions {
		if a.Type == want {
			return
		}
	}
	t.Fatalf("expected %s among %v", want, actions)
}

func assertNoType(t *testing.T, actions []PossibleAction, unwanted ActionType) {
	t.Helper()
	for _, a := range actions {
		if a.Type == unwanted {
			t.Fatalf("did not expect %s among %v", unwanted, actions)
		}
	}
}
