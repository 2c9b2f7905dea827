package engine

import "testing"

// S7 — side pot: A all-in 200, B and C call 200 (main pot 600, all eligible);
// B bets 300 more, C calls; side pot of 600 eligible to {B, C} only.
func TestSidePotConstruction(t *testing.T) {
	a := &Seat{Index: 0, active: true}
	b := &Seat{Index: 1, active: true}
	c := &Seat{Index: 2, active: true}

	a.roundWager, b.roundWager, c.roundWager = 200, 200, 200
	var pm potManager
	pm.calcPotsFromRoundWagers([]*Seat{a, b, c})
	for _, s := range []*Seat{a, b, c} {
		s.collectRoundWager()
	}

	if len(pm.pots) != 1 {
		t.Fatalf("expected 1 pot after the all-in round, got %d", len(pm.pots))
	}
	if pm.pots[0].Amount != 600 {
		t.Fatalf("expected main pot of 600, got %d", pm.pots[0].Amount)
	}
	for _, idx := range []int{0, 1, 2} {
		if !pm.pots[0].Eligible[idx] {
			t.Fatalf("seat %d should be eligible for the main pot", idx)
		}
	}

	// A is now all-in and out of the action; B and C battle on with a second
	// street of betting.
	b.roundWager, c.roundWager = 300, 300
	pm.calcPotsFromRoundWagers([]*Seat{a, b, c})
	for _, s := range []*Seat{a, b, c} {
		s.collectRoundWager()
	}

	if len(pm.pots) != 2 {
		t.Fatalf("expected a second, side pot, got %d pots", len(pm.pots))
	}
	side := pm.pots[1]
	if side.Amount != 600 {
		t.Fatalf("expected side pot of 600, got %d", side.Amount)
	}
	if side.Eligible[0] {
		t.Fatal("seat A must not be eligible for the side pot")
	}
	if !side.Eligible[1] || !side.Eligible[2] {
		t.Fatal("seats B and C must both be eligible for the side pot")
	}
}

func TestExcessChipRefundOnUncalledOverbet(t *testing.T) {
	a := &Seat{Index: 0, active: true, stack: 0}
	b := &Seat{Index: 1, active: true, stack: 50}
	a.roundWager = 500
	b.roundWager = 100

	var pm potManager
	pm.calcPotsFromRoundWagers([]*Seat{a, b})

	if !pm.hasExcess {
		t.Fatal("expected an excess refund to the larger bettor")
	}
	if pm.excessSeat != 0 || pm.excessAmount != 400 {
		t.Fatalf("expected seat 0 refunded 400, got seat %d amount %d", pm.excessSeat, pm.excessAmount)
	}
	if a.roundWager != 100 {
		t.Fatalf("expected seat A's wager reduced to 100 after refund, got %d", a.roundWager)
	}
}
