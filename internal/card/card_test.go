package card

import "testing"

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{"Ah", "Td", "2s", "Kc", "9d"} {
		c, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if !c.IsValid() {
			t.Fatalf("Parse(%q) produced invalid card %+v", s, c)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "A", "Ax", "1h", "AAh"} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("Parse(%q) should have failed", s)
		}
	}
}

func TestDeckDealIsWithoutReplacement(t *testing.T) {
	d := New()
	if d.Remaining() != 52 {
		t.Fatalf("expected 52 cards, got %d", d.Remaining())
	}
	seen := make(map[Card]bool, 52)
	for d.Remaining() > 0 {
		cards, ok := d.Deal(1)
		if !ok {
			t.Fatal("unexpected deal failure")
		}
		if seen[cards[0]] {
			t.Fatalf("card %v dealt twice", cards[0])
		}
		seen[cards[0]] = true
	}
	if len(seen) != 52 {
		t.Fatalf("expected 52 unique cards, got %d", len(seen))
	}
}

func TestDeckDealInsufficientCards(t *testing.T) {
	d := New()
	d.Deal(50)
	if _, ok := d.Deal(3); ok {
		t.Fatal("expected deal of 3 from a 2-card deck to fail")
	}
}
