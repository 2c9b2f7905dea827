package eventbus

import (
	"texasholdem-server/internal/card"
	"texasholdem-server/internal/engine"
)

// The payload types below are the concrete shapes carried in Event.Payload
// for each EventType, matching the emission semantics in spec.md §4.4/§4.5.
// They are defined here, rather than left as untyped maps, so the replay
// analyzer and transport layer can type-assert instead of re-parsing JSON.

type GameStartedPayload struct {
	Config engine.GameConfig `json:"config"`
}

type HandStartedPayload struct {
	HandNumber  uint64 `json:"handNumber"`
	DealerIndex int    `json:"dealerIndex"`
}

type CardsDealtPayload struct {
	HandNumber    uint64          `json:"handNumber"`
	SeatIndex     int             `json:"seatIndex,omitempty"`
	HoleCards     []card.Card     `json:"holeCards,omitempty"`
	CommunityOnly []card.Card     `json:"communityCards,omitempty"`
	Phase         engine.Phase    `json:"phase"`
}

type PhaseChangedPayload struct {
	HandNumber uint64       `json:"handNumber"`
	From        engine.Phase `json:"from"`
	To          engine.Phase `json:"to"`
}

type ActionTakenPayload struct {
	HandNumber uint64            `json:"handNumber"`
	SeatIndex  int               `json:"seatIndex"`
	Action     engine.Action     `json:"action"`
	Legal      []engine.PossibleAction `json:"legalActions,omitempty"`
}

type BetCollectedPayload struct {
	HandNumber uint64            `json:"handNumber"`
	Pots       []engine.PotSnapshot `json:"pots"`
}

type ShowdownPayload struct {
	HandNumber uint64                  `json:"handNumber"`
	Seats      []engine.SeatResult     `json:"seats"`
	Pots       []engine.PotResult      `json:"pots"`
}

type HandCompletePayload struct {
	HandNumber uint64          `json:"handNumber"`
	NetDeltas  map[int]int64   `json:"netDeltas"`
	Eliminated []int           `json:"eliminatedSeats,omitempty"`
}

type PlayerJoinedPayload struct {
	SeatIndex int             `json:"seatIndex"`
	PlayerID  engine.PlayerID `json:"playerId"`
	Name      string          `json:"name"`
	Stack     int64           `json:"stack"`
}

type PlayerLeftPayload struct {
	SeatIndex int             `json:"seatIndex"`
	PlayerID  engine.PlayerID `json:"playerId"`
}

type PlayerEliminatedPayload struct {
	SeatIndex int             `json:"seatIndex"`
	PlayerID  engine.PlayerID `json:"playerId"`
}

type GameEndedPayload struct {
	Reason string `json:"reason"`
}

type TurnTimeoutPayload struct {
	HandNumber uint64          `json:"handNumber"`
	SeatIndex  int             `json:"seatIndex"`
	Synthesized engine.ActionType `json:"synthesizedAction"`
}
