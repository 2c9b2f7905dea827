package engine

import (
	"sort"

	"texasholdem-server/internal/card"
	"texasholdem-server/internal/poker"
)

// SeatResult is one seat's showdown outcome.
type SeatResult struct {
	SeatIndex int
	HoleCards []card.Card
	HandRank  poker.HandRank
	Revealed  bool // true once the seat's cards are shown (showdown, not folded)
	IsWinner  bool
	WinAmount int64
}

// PotResult is one pot's distribution.
type PotResult struct {
	Amount     int64
	IsMain     bool
	Winners    []int
	WinAmounts []int64
}

// SettlementResult is the full showdown (or no-showdown) outcome of a hand.
type SettlementResult struct {
	SeatResults  []SeatResult
	PotResults   []PotResult
	ExcessSeat   int
	ExcessAmount int64
	NoShowdown   bool // true when the hand ended by every-but-one seat folding
}

func (e *Engine) settle() (*SettlementResult, error) {
	var result *SettlementResult
	var err error
	if e.contendersRemaining() <= 1 {
		result, err = e.settleNoShowdown()
	} else {
		result, err = e.settleShowdown()
	}
	if err != nil {
		return nil, err
	}
	// Every chip in e.pots has now moved into a seat's stack via win(); clear
	// the pots so GameState.Pots reflects settled state, not stale amounts
	// already paid out. Callers wanting the distribution detail use the
	// returned SettlementResult.PotResults (or Engine.LastSettlement), not
	// e.pots.
	e.pots.reset()
	return result, nil
}

func (e *Engine) settleShowdown() (*SettlementResult, error) {
	ranks := make(map[int]poker.HandRank, len(e.seats))
	for idx, s := range e.seats {
		if s.folded || len(s.holeCards) != 2 {
			continue
		}
		rank, err := poker.Best(s.holeCards, e.community)
		if err != nil {
			return nil, err
		}
		ranks[idx] = rank
	}

	out := &SettlementResult{
		ExcessSeat:   e.pots.excessSeat,
		ExcessAmount: e.pots.excessAmount,
	}
	if !e.pots.hasExcess {
		out.ExcessSeat, out.ExcessAmount = 0, 0
	}

	for _, pot := range e.pots.pots {
		winners := bestRankedSeats(pot.Eligible, ranks)
		pr := PotResult{Amount: pot.Amount, IsMain: pot.IsMain}
		if len(winners) == 0 || pot.Amount <= 0 {
			out.PotResults = append(out.PotResults, pr)
			continue
		}
		sort.Ints(winners)
		share := pot.Amount / int64(len(winners))
		remainder := pot.Amount % int64(len(winners))
		pr.Winners = append(pr.Winners, winners...)
		oddIdx, oddDist := 0, e.maxIndex
		for i, w := range winners {
			if d := (w - e.dealerIdx - 1 + e.maxIndex) % e.maxIndex; d < oddDist {
				oddIdx, oddDist = i, d
			}
		}
		for i, w := range winners {
			amt := share
			if i == oddIdx {
				amt += remainder // odd chip goes to the seat closest clockwise from the dealer
			}
			pr.WinAmounts = append(pr.WinAmounts, amt)
			if seat := e.seats[w]; seat != nil {
				seat.win(amt)
			}
		}
		out.PotResults = append(out.PotResults, pr)
	}

	for idx, s := range e.seats {
		if len(s.holeCards) != 2 {
			continue
		}
		rank, participated := ranks[idx]
		sr := SeatResult{SeatIndex: idx, Revealed: !s.folded, HoleCards: append([]card.Card{}, s.holeCards...)}
		if participated {
			sr.HandRank = rank
		}
		for _, pr := range out.PotResults {
			for i, w := range pr.Winners {
				if w == idx {
					sr.IsWinner = true
					sr.WinAmount += pr.WinAmounts[i]
				}
			}
		}
		out.SeatResults = append(out.SeatResults, sr)
	}
	sort.Slice(out.SeatResults, func(i, j int) bool { return out.SeatResults[i].SeatIndex < out.SeatResults[j].SeatIndex })
	return out, nil
}

// bestRankedSeats returns the (possibly several, on a tie) winning seat
// indices among the eligible, non-folded seats present in ranks.
func bestRankedSeats(eligible map[int]bool, ranks map[int]poker.HandRank) []int {
	var winners []int
	var best poker.HandRank
	first := true
	for idx := range eligible {
		rank, ok := ranks[idx]
		if !ok {
			continue
		}
		switch {
		case first || rank.Compare(best) > 0:
			best = rank
			winners = []int{idx}
			first = false
		case rank.Compare(best) == 0:
			winners = append(winners, idx)
		}
	}
	return winners
}

// settleNoShowdown awards the whole pot to the single remaining contender
// without revealing any hole cards.
func (e *Engine) settleNoShowdown() (*SettlementResult, error) {
	var winner *Seat
	for _, s := range e.seats {
		if s.active && !s.folded {
			winner = s
			break
		}
	}
	if winner == nil {
		return nil, InvariantError("no contender left to award the pot to")
	}

	total := int64(0)
	for _, pot := range e.pots.pots {
		total += pot.Amount
	}
	winner.win(total)

	return &SettlementResult{
		NoShowdown: true,
		SeatResults: []SeatResult{{
			SeatIndex: winner.Index,
			IsWinner:  true,
			WinAmount: total,
		}},
		PotResults: []PotResult{{
			Amount:     total,
			IsMain:     true,
			Winners:    []int{winner.Index},
			WinAmounts: []int64{total},
		}},
	}, nil
}
