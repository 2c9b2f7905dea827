package poker

import (
	"errors"
	"fmt"

	chehsunliu "github.com/chehsunliu/poker"

	"texasholdem-server/internal/card"
)

// ErrInsufficientCards is returned when fewer than 5 cards are supplied —
// there is no legal hand before the flop completes.
var ErrInsufficientCards = errors.New("poker: need at least 5 cards to evaluate a hand")

// chehsunliu's evaluator returns 1 (best, royal flush) .. 7462 (worst, 7-5-4-3-2).
// We invert it into a "bigger is better" Score so HandRank sorts naturally
// and so a future change of evaluator library doesn't leak its convention
// through our API.
const worstRank = 7463

// Best scans all 5-card combinations of hole ∪ community (chehsunliu does
// this internally for 5, 6 or 7 cards) and returns the best hand's rank.
func Best(hole, community []card.Card) (HandRank, error) {
	all := make([]card.Card, 0, len(hole)+len(community))
	all = append(all, hole...)
	all = append(all, community...)
	if len(all) < 5 {
		return HandRank{}, ErrInsufficientCards
	}

	foreign := make([]chehsunliu.Card, 0, len(all))
	for _, c := range all {
		foreign = append(foreign, toForeign(c))
	}

	rank := chehsunliu.Evaluate(foreign)
	class := chehsunliu.RankClass(rank)

	return HandRank{
		Category: fromRankClass(class),
		Score:    int32(worstRank) - rank,
	}, nil
}

func toForeign(c card.Card) chehsunliu.Card {
	return chehsunliu.NewCard(c.String())
}

// fromRankClass maps chehsunliu's 9 rank classes (1=straight flush best .. 9=high card)
// onto our own Category enum, which shares the same ordinal meaning.
func fromRankClass(class int32) Category {
	switch class {
	case 1:
		return StraightFlush
	case 2:
		return FourOfAKind
	case 3:
		return FullHouse
	case 4:
		return Flush
	case 5:
		return Straight
	case 6:
		return ThreeOfAKind
	case 7:
		return TwoPair
	case 8:
		return OnePair
	case 9:
		return HighCard
	default:
		panic(fmt.Sprintf("poker: unknown rank class %d", class))
	}
}

// Compare evaluates both hands and reports which wins: <0 a worse, 0 tie, >0 a better.
func Compare(aHole, bHole, community []card.Card) (int, error) {
	a, err := Best(aHole, community)
	if err != nil {
		return 0, err
	}
	b, err := Best(bHole, community)
	if err != nil {
		return 0, err
	}
	return a.Compare(b), nil
}
