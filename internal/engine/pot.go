package engine

import "sort"

// Pot is one pot (main or side): an amount plus the set of seat indices
// still eligible to win it.
type Pot struct {
	Amount    int64
	Eligible  map[int]bool
	IsMain    bool
}

// potManager incrementally builds main/side pots as betting rounds complete.
// calcPotsFromRoundWagers is called once per completed betting round, each
// time seeing only that round's wagers (already zeroed from the previous
// round) — side pots that span multiple streets are built up by merging
// consecutive calls whose eligible sets coincide, exactly as the teacher's
// potManager does in pot.go.
type potManager struct {
	pots []Pot

	// excessSeat/excessAmount record a chip refund to the largest bettor
	// when no other seat's contribution matches it (an uncalled overbet).
	excessSeat   int
	excessAmount int64
	hasExcess    bool
}

func (pm *potManager) reset() {
	pm.pots = nil
	pm.excessSeat = 0
	pm.excessAmount = 0
	pm.hasExcess = false
}

// calcPotsFromRoundWagers folds this round's wagers into pm.pots, merging a
// new layer into the previous pot when the eligible seat sets are identical,
// and refunding any uncalled excess above the second-largest wager.
func (pm *potManager) calcPotsFromRoundWagers(seats []*Seat) {
	contributing := make([]*Seat, 0, len(seats))
	for _, s := range seats {
		if s.RoundWager() > 0 {
			contributing = append(contributing, s)
		}
	}
	sort.Slice(contributing, func(i, j int) bool { return contributing[i].RoundWager() < contributing[j].RoundWager() })

	var totalLevel int64
	for i, s := range contributing {
		contribution := s.RoundWager() - totalLevel
		if contribution <= 0 {
			continue
		}

		layer := Pot{Eligible: make(map[int]bool)}
		for j := i; j < len(contributing); j++ {
			other := contributing[j]
			take := contribution
			if room := other.RoundWager() - totalLevel; take > room {
				take = room
			}
			layer.Amount += take
			if !other.Folded() {
				layer.Eligible[other.Index] = true
			}
		}

		// The layer built from the single remaining top contributor, when
		// someone else is in the hand at all, is by construction the
		// uncalled excess above the next-highest wager — refundExcess below
		// returns it to that seat's stack directly, so it must never be
		// folded into pm.pots (merged or otherwise), or chips get created.
		isExcessLayer := i == len(contributing)-1 && len(contributing) > 1

		merged := false
		if !isExcessLayer {
			if n := len(pm.pots); n > 0 {
				last := &pm.pots[n-1]
				if sameEligibleSet(last.Eligible, layer.Eligible) {
					last.Amount += layer.Amount
					merged = true
				}
			}
			if !merged && len(layer.Eligible) > 1 {
				if len(pm.pots) == 0 {
					layer.IsMain = true
				}
				pm.pots = append(pm.pots, layer)
			} else if !merged && len(pm.pots) == 0 {
				// single eligible seat still needs a pot to refund/award from.
				layer.IsMain = true
				pm.pots = append(pm.pots, layer)
			}
		}

		totalLevel += contribution
	}

	pm.refundExcess(contributing)
}

func (pm *potManager) refundExcess(contributing []*Seat) {
	pm.excessSeat, pm.excessAmount, pm.hasExcess = 0, 0, false
	if len(contributing) == 0 {
		return
	}
	top := contributing[len(contributing)-1]
	var second int64
	if len(contributing) > 1 {
		second = contributing[len(contributing)-2].RoundWager()
	}
	excess := top.RoundWager() - second
	if excess <= 0 {
		return
	}
	top.stack += excess
	top.roundWager -= excess
	top.totalHandWager -= excess
	pm.excessSeat = top.Index
	pm.excessAmount = excess
	pm.hasExcess = true
}

func sameEligibleSet(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
