package replay

import (
	"testing"
	"time"

	"texasholdem-server/internal/card"
	"texasholdem-server/internal/engine"
	"texasholdem-server/internal/eventbus"
)

func phaseOf(p engine.Phase) *engine.Phase { return &p }

func syntheticHand(handNumber uint64, base time.Time) []ReplayEvent {
	preflop := engine.PreFlop
	return []ReplayEvent{
		{SequenceID: 1, Type: eventbus.ActionTaken, Timestamp: base, HandNumber: handNumber, Phase: &preflop,
			Payload: eventbus.ActionTakenPayload{HandNumber: handNumber, SeatIndex: 0, Action: engine.Action{Type: engine.Raise, Amount: 20, Actor: "p1"}}},
		{SequenceID: 2, Type: eventbus.ActionTaken, Timestamp: base.Add(2 * time.Second), HandNumber: handNumber, Phase: &preflop,
			Payload: eventbus.ActionTakenPayload{HandNumber: handNumber, SeatIndex: 1, Action: engine.Action{Type: engine.Call, Amount: 20, Actor: "p2"}}},
		{SequenceID: 3, Type: eventbus.CardsDealt, Timestamp: base.Add(3 * time.Second), HandNumber: handNumber,
			Payload: eventbus.CardsDealtPayload{HandNumber: handNumber, Phase: engine.Flop, CommunityOnly: []card.Card{card.MustParse("2h"), card.MustParse("7d"), card.MustParse("9c")}}},
		{SequenceID: 4, Type: eventbus.BetCollected, Timestamp: base.Add(4 * time.Second), HandNumber: handNumber,
			Payload: eventbus.BetCollectedPayload{HandNumber: handNumber, Pots: []engine.PotSnapshot{{Amount: 40, IsMain: true, EligibleSeats: []int{0, 1}}}}},
		{SequenceID: 5, Type: eventbus.HandComplete, Timestamp: base.Add(5 * time.Second), HandNumber: handNumber,
			Payload: eventbus.HandCompletePayload{HandNumber: handNumber, NetDeltas: map[int]int64{0: 20, 1: -20}}},
	}
}

func syntheticReplay() ReplayData {
	var events []ReplayEvent
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for hn := uint64(1); hn <= 3; hn++ {
		hand := syntheticHand(hn, base.Add(time.Duration(hn)*time.Minute))
		for i := range hand {
			hand[i].SequenceID = uint64(len(events)) + uint64(i) + 1
		}
		events = append(events, hand...)
	}
	return ReplayData{
		GameID:   "g1",
		Metadata: Metadata{TotalEvents: len(events), TotalActions: 6, HandCount: 3},
		Events:   events,
	}
}

func TestAnalyzeHandsExtractsCommunityPotAndWinners(t *testing.T) {
	data := syntheticReplay()
	hands := AnalyzeHands(data)
	if len(hands) != 3 {
		t.Fatalf("expected 3 hands, got %d", len(hands))
	}

	h := hands[0]
	if h.FinalPot != 40 {
		t.Fatalf("expected final pot 40, got %d", h.FinalPot)
	}
	if len(h.Community[engine.Flop]) != 3 {
		t.Fatalf("expected 3 flop cards, got %d", len(h.Community[engine.Flop]))
	}
	if len(h.Winners) != 1 || h.Winners[0] != "p1" {
		t.Fatalf("expected p1 as sole winner, got %v", h.Winners)
	}
	if h.Duration <= 0 {
		t.Fatal("expected a positive hand duration")
	}
}

func TestPlayerStatisticsComputesAggressionAndVPIP(t *testing.T) {
	data := syntheticReplay()
	stats := PlayerStatistics(data)
	if len(stats) != 2 {
		t.Fatalf("expected 2 players, got %d", len(stats))
	}

	var p1, p2 PlayerStats
	for _, s := range stats {
		switch s.PlayerID {
		case "p1":
			p1 = s
		case "p2":
			p2 = s
		}
	}

	if p1.HandsPlayed != 3 || p1.HandsWon != 3 {
		t.Fatalf("expected p1 to play and win all 3 hands, got played=%d won=%d", p1.HandsPlayed, p1.HandsWon)
	}
	if p1.PreflopRaise != 1 {
		t.Fatalf("expected p1's preflop-raise rate to be 1.0, got %f", p1.PreflopRaise)
	}
	if p1.AggressionFactor != 0 {
		t.Fatalf("p1 never called, expected aggression factor 0, got %f", p1.AggressionFactor)
	}
	if p2.AggressionFactor != 0 {
		t.Fatalf("p2 never bet or raised, expected aggression factor 0, got %f", p2.AggressionFactor)
	}
	if p2.VoluntarilyPutMoney != 1 {
		t.Fatalf("expected p2's VPIP to be 1.0 (called every hand), got %f", p2.VoluntarilyPutMoney)
	}
}

func TestGameFlowSummaryCountsActionsAndAveragesDuration(t *testing.T) {
	data := syntheticReplay()
	flow := GameFlowSummary(data)
	if flow.ActionCounts[engine.Raise] != 3 || flow.ActionCounts[engine.Call] != 3 {
		t.Fatalf("unexpected action distribution: %+v", flow.ActionCounts)
	}
	if flow.AverageHandDuration <= 0 {
		t.Fatal("expected a positive average hand duration")
	}
}

func TestInterestingMomentsFlagsOversizedPot(t *testing.T) {
	var events []ReplayEvent
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for hn := uint64(1); hn <= 5; hn++ {
		hand := syntheticHand(hn, base.Add(time.Duration(hn)*time.Minute))
		for i := range hand {
			hand[i].SequenceID = uint64(len(events)) + uint64(i) + 1
		}
		events = append(events, hand...)
	}
	// Hand 1's BetCollected is the 4th event in its 5-event block.
	events[3].Payload = eventbus.BetCollectedPayload{
		HandNumber: 1,
		Pots:       []engine.PotSnapshot{{Amount: 1000, IsMain: true, EligibleSeats: []int{0, 1}}},
	}
	data := ReplayData{GameID: "g1", Metadata: Metadata{TotalEvents: len(events)}, Events: events}

	moments := InterestingMoments(data)
	found := false
	for _, m := range moments {
		if m.HandNumber == 1 && m.Reason == "pot exceeded 3x the average pot" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected hand 1 to be flagged for an oversized pot, got %+v", moments)
	}
}
