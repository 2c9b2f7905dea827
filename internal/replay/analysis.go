package replay

import (
	"sort"
	"time"

	"texasholdem-server/internal/card"
	"texasholdem-server/internal/engine"
	"texasholdem-server/internal/eventbus"
)

// HandAnalysis summarizes one hand of a loaded ReplayData.
type HandAnalysis struct {
	HandNumber  uint64
	Players     []engine.PlayerID
	Community   map[engine.Phase][]card.Card
	FinalPot    int64
	Winners     []engine.PlayerID
	Duration    time.Duration
}

// PlayerStats is one player's aggregate across every hand in the replay.
type PlayerStats struct {
	PlayerID            engine.PlayerID
	HandsPlayed         int
	HandsWon            int
	VoluntarilyPutMoney float64 // fraction of hands the player put chips in beyond the blinds
	PreflopRaise        float64 // fraction of hands the player raised preflop
	AvgDecisionTime     time.Duration
	AggressionFactor    float64 // (bets+raises+all-ins)/calls, 0 if no calls
}

// InterestingMoment flags one notable hand and why it was flagged.
type InterestingMoment struct {
	HandNumber uint64
	Reason     string
}

// FlowSummary is the replay-wide action distribution and pacing.
type FlowSummary struct {
	AverageHandDuration time.Duration
	ActionCounts        map[engine.ActionType]int
}

// AnalyzeHands returns one HandAnalysis per hand present in data, in hand
// order.
func AnalyzeHands(data ReplayData) []HandAnalysis {
	byHand := groupByHand(data.Events)
	hands := sortedHandNumbers(byHand)

	out := make([]HandAnalysis, 0, len(hands))
	for _, hn := range hands {
		out = append(out, analyzeOneHand(hn, byHand[hn]))
	}
	return out
}

func analyzeOneHand(handNumber uint64, events []ReplayEvent) HandAnalysis {
	ha := HandAnalysis{
		HandNumber: handNumber,
		Community:  make(map[engine.Phase][]card.Card),
	}
	players := make(map[engine.PlayerID]bool)

	var start, end time.Time
	for i, ev := range events {
		if i == 0 {
			start = ev.Timestamp
		}
		end = ev.Timestamp

		switch ev.Type {
		case eventbus.CardsDealt:
			if p, ok := ev.Payload.(eventbus.CardsDealtPayload); ok && len(p.CommunityOnly) > 0 {
				ha.Community[p.Phase] = append(ha.Community[p.Phase], p.CommunityOnly...)
			}
		case eventbus.ActionTaken:
			if p, ok := ev.Payload.(eventbus.ActionTakenPayload); ok {
				players[p.Action.Actor] = true
			}
		case eventbus.BetCollected:
			if p, ok := ev.Payload.(eventbus.BetCollectedPayload); ok {
				var total int64
				for _, pot := range p.Pots {
					total += pot.Amount
				}
				ha.FinalPot = total
			}
		case eventbus.HandComplete:
			if p, ok := ev.Payload.(eventbus.HandCompletePayload); ok {
				for seatIdx, delta := range p.NetDeltas {
					if delta > 0 {
						ha.Winners = append(ha.Winners, seatIDForIndex(events, seatIdx))
					}
				}
			}
		}
	}

	for id := range players {
		ha.Players = append(ha.Players, id)
	}
	sort.Slice(ha.Players, func(i, j int) bool { return ha.Players[i] < ha.Players[j] })
	sort.Slice(ha.Winners, func(i, j int) bool { return ha.Winners[i] < ha.Winners[j] })
	ha.Duration = end.Sub(start)
	return ha
}

// seatIDForIndex recovers a PlayerID from any action_taken payload in events
// carrying the same seat index, since hand_complete's net-delta map is keyed
// by seat index only.
func seatIDForIndex(events []ReplayEvent, seatIdx int) engine.PlayerID {
	for _, ev := range events {
		if ev.Type != eventbus.ActionTaken {
			continue
		}
		if p, ok := ev.Payload.(eventbus.ActionTakenPayload); ok && p.SeatIndex == seatIdx {
			return p.Action.Actor
		}
	}
	return ""
}

// EventsForHand returns the events belonging to one hand of data, in
// recorded order — the slice GET /api/replays/:id/hands/:n serves.
func EventsForHand(data ReplayData, handNumber uint64) []ReplayEvent {
	return groupByHand(data.Events)[handNumber]
}

func groupByHand(events []ReplayEvent) map[uint64][]ReplayEvent {
	out := make(map[uint64][]ReplayEvent)
	for _, ev := range events {
		out[ev.HandNumber] = append(out[ev.HandNumber], ev)
	}
	return out
}

func sortedHandNumbers(byHand map[uint64][]ReplayEvent) []uint64 {
	hands := make([]uint64, 0, len(byHand))
	for hn := range byHand {
		hands = append(hands, hn)
	}
	sort.Slice(hands, func(i, j int) bool { return hands[i] < hands[j] })
	return hands
}

// PlayerStatistics aggregates PlayerStats across every hand in data.
func PlayerStatistics(data ReplayData) []PlayerStats {
	byHand := groupByHand(data.Events)
	statsByPlayer := make(map[engine.PlayerID]*PlayerStats)

	actionCounts := make(map[engine.PlayerID]int)

	get := func(id engine.PlayerID) *PlayerStats {
		s, ok := statsByPlayer[id]
		if !ok {
			s = &PlayerStats{PlayerID: id}
			statsByPlayer[id] = s
		}
		return s
	}

	for _, events := range byHand {
		seenThisHand := make(map[engine.PlayerID]bool)
		vpipThisHand := make(map[engine.PlayerID]bool)
		preflopRaiseThisHand := make(map[engine.PlayerID]bool)
		var decisionStart time.Time

		for _, ev := range events {
			if ev.Type != eventbus.ActionTaken {
				continue
			}
			p, ok := ev.Payload.(eventbus.ActionTakenPayload)
			if !ok {
				continue
			}
			id := p.Action.Actor
			seenThisHand[id] = true
			s := get(id)

			switch p.Action.Type {
			case engine.Bet, engine.Raise, engine.AllIn:
				s.AggressionFactor++ // numerator accumulator, normalized by call count below
				vpipThisHand[id] = true
				if ev.Phase != nil && *ev.Phase == engine.PreFlop {
					preflopRaiseThisHand[id] = true
				}
			case engine.Call:
				vpipThisHand[id] = true
			}

			if !decisionStart.IsZero() {
				s.AvgDecisionTime += ev.Timestamp.Sub(decisionStart)
				actionCounts[id]++
			}
			decisionStart = ev.Timestamp
		}

		for id := range seenThisHand {
			s := get(id)
			s.HandsPlayed++
			if vpipThisHand[id] {
				s.VoluntarilyPutMoney++
			}
			if preflopRaiseThisHand[id] {
				s.PreflopRaise++
			}
		}

		for _, ev := range events {
			if ev.Type != eventbus.HandComplete {
				continue
			}
			if p, ok := ev.Payload.(eventbus.HandCompletePayload); ok {
				for seatIdx, delta := range p.NetDeltas {
					if delta > 0 {
						id := seatIDForIndex(events, seatIdx)
						if id != "" {
							get(id).HandsWon++
						}
					}
				}
			}
		}
	}

	calls := countCallsByPlayer(data.Events)
	out := make([]PlayerStats, 0, len(statsByPlayer))
	for id, s := range statsByPlayer {
		if s.HandsPlayed > 0 {
			s.VoluntarilyPutMoney /= float64(s.HandsPlayed)
			s.PreflopRaise /= float64(s.HandsPlayed)
		}
		if c := calls[id]; c > 0 {
			s.AggressionFactor /= float64(c)
		} else {
			s.AggressionFactor = 0
		}
		if n := actionCounts[id]; n > 0 {
			s.AvgDecisionTime /= time.Duration(n)
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

func countCallsByPlayer(events []ReplayEvent) map[engine.PlayerID]int {
	out := make(map[engine.PlayerID]int)
	for _, ev := range events {
		if ev.Type != eventbus.ActionTaken {
			continue
		}
		if p, ok := ev.Payload.(eventbus.ActionTakenPayload); ok && p.Action.Type == engine.Call {
			out[p.Action.Actor]++
		}
	}
	return out
}

// InterestingMoments flags hands whose pot exceeds 3x the replay's average
// pot, hands that reached a multi-way all-in, and hands where the loser at
// showdown held a hand ranked below the field's median (a "bluff caught" —
// someone built a large pot and still lost with a weak hand).
func InterestingMoments(data ReplayData) []InterestingMoment {
	hands := AnalyzeHands(data)
	if len(hands) == 0 {
		return nil
	}

	var totalPot int64
	for _, h := range hands {
		totalPot += h.FinalPot
	}
	avgPot := float64(totalPot) / float64(len(hands))

	byHand := groupByHand(data.Events)
	var moments []InterestingMoment
	for _, h := range hands {
		if avgPot > 0 && float64(h.FinalPot) > 3*avgPot {
			moments = append(moments, InterestingMoment{HandNumber: h.HandNumber, Reason: "pot exceeded 3x the average pot"})
		}
		if multiWayAllIn(byHand[h.HandNumber]) {
			moments = append(moments, InterestingMoment{HandNumber: h.HandNumber, Reason: "multi-way all-in"})
		}
		if bluffCaught(byHand[h.HandNumber]) {
			moments = append(moments, InterestingMoment{HandNumber: h.HandNumber, Reason: "bluff caught at showdown"})
		}
	}
	return moments
}

func multiWayAllIn(events []ReplayEvent) bool {
	allIn := make(map[int]bool)
	for _, ev := range events {
		if ev.Type != eventbus.ActionTaken {
			continue
		}
		if p, ok := ev.Payload.(eventbus.ActionTakenPayload); ok && p.Action.Type == engine.AllIn {
			allIn[p.SeatIndex] = true
		}
	}
	return len(allIn) >= 2
}

func bluffCaught(events []ReplayEvent) bool {
	for _, ev := range events {
		if ev.Type != eventbus.Showdown {
			continue
		}
		p, ok := ev.Payload.(eventbus.ShowdownPayload)
		if !ok || len(p.Seats) < 2 {
			continue
		}
		scores := make([]int32, 0, len(p.Seats))
		for _, s := range p.Seats {
			if s.Revealed {
				scores = append(scores, s.HandRank.Score)
			}
		}
		if len(scores) < 2 {
			continue
		}
		sort.Slice(scores, func(i, j int) bool { return scores[i] < scores[j] })
		median := scores[len(scores)/2]
		for _, s := range p.Seats {
			if s.Revealed && !s.IsWinner && s.HandRank.Score < median {
				return true
			}
		}
	}
	return false
}

// GameFlowSummary reports replay-wide pacing and action mix.
func GameFlowSummary(data ReplayData) FlowSummary {
	hands := AnalyzeHands(data)
	summary := FlowSummary{ActionCounts: make(map[engine.ActionType]int)}

	var total time.Duration
	for _, h := range hands {
		total += h.Duration
	}
	if len(hands) > 0 {
		summary.AverageHandDuration = total / time.Duration(len(hands))
	}

	for _, ev := range data.Events {
		if ev.Type != eventbus.ActionTaken {
			continue
		}
		if p, ok := ev.Payload.(eventbus.ActionTakenPayload); ok {
			summary.ActionCounts[p.Action.Type]++
		}
	}
	return summary
}
