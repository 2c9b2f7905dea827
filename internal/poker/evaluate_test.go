package poker

import (
	"testing"

	"texasholdem-server/internal/card"
)

func cards(ss ...string) []card.Card {
	out := make([]card.Card, len(ss))
	for i, s := range ss {
		out[i] = card.MustParse(s)
	}
	return out
}

func TestBestRejectsFewerThanFiveCards(t *testing.T) {
	_, err := Best(cards("Ah", "Kh"), cards("Qh"))
	if err != ErrInsufficientCards {
		t.Fatalf("expected ErrInsufficientCards, got %v", err)
	}
}

func TestBestRecognizesRoyalFlush(t *testing.T) {
	hole := cards("Ah", "Kh")
	board := cards("Qh", "Jh", "Th", "2c", "3d")
	rank, err := Best(hole, board)
	if err != nil {
		t.Fatalf("Best: %v", err)
	}
	if rank.Category != StraightFlush {
		t.Fatalf("expected straight flush, got %v", rank.Category)
	}
}

func TestBestPicksBestOfSeven(t *testing.T) {
	hole := cards("Ah", "Ad")
	board := cards("As", "Ac", "2c", "3d", "4h")
	rank, err := Best(hole, board)
	if err != nil {
		t.Fatalf("Best: %v", err)
	}
	if rank.Category != FourOfAKind {
		t.Fatalf("expected four of a kind, got %v", rank.Category)
	}
}

func TestCompareOrdersHands(t *testing.T) {
	board := cards("2c", "7d", "9h", "Jc", "Ks")
	better := cards("Ah", "Ad") // pair of aces
	worse := cards("3h", "4d")  // king high

	cmp, err := Compare(better, worse, board)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp <= 0 {
		t.Fatalf("expected pair of aces to beat king high, got cmp=%d", cmp)
	}
}

func TestCompareDetectsTie(t *testing.T) {
	board := cards("2c", "7d", "9h", "Jc", "Ks")
	a := cards("3h", "4d")
	b := cards("3c", "4c")

	cmp, err := Compare(a, b, board)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp != 0 {
		t.Fatalf("expected a tie on the board-high hand, got cmp=%d", cmp)
	}
}
