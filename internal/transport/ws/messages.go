package ws

import (
	"encoding/json"
	"fmt"

	"texasholdem-server/internal/controller"
	"texasholdem-server/internal/engine"
)

// inboundEnvelope is the outer shape of every message a client sends: a
// type tag plus a type-specific body, decoded in a second pass once the
// type is known (spec.md §6's "Inbound messages").
type inboundEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type identifyMsg struct {
	BotName   string `json:"botName"`
	GameID    string `json:"gameId"`
	ChipStack int64  `json:"chipStack"`
}

type actionMsg struct {
	Action    string `json:"action"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

type reconnectMsg struct {
	GameID   string          `json:"gameId"`
	PlayerID engine.PlayerID `json:"playerId"`
}

// outboundEnvelope is the outer shape of every message the gateway sends.
type outboundEnvelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type identificationSuccessMsg struct {
	PlayerID engine.PlayerID `json:"playerId"`
}

type gameStateMsg struct {
	GameState interface{} `json:"gameState"`
}

type turnStartMsg struct {
	TimeLimit int `json:"timeLimit"`
}

type actionSuccessMsg struct {
	Action engine.Action `json:"action"`
}

type gameEventMsg struct {
	Event interface{} `json:"event"`
}

type disconnectMsg struct {
	Reason string `json:"reason"`
}

type errorMsg struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// actionTypeFromWire maps the wire string form back to engine.ActionType.
// Action is a tagged Go value internally (engine.ActionType); only the
// transport boundary ever talks strings, per SPEC_FULL.md §9.
func actionTypeFromWire(s string) (engine.ActionType, error) {
	switch s {
	case "Fold":
		return engine.Fold, nil
	case "Check":
		return engine.Check, nil
	case "Call":
		return engine.Call, nil
	case "Bet":
		return engine.Bet, nil
	case "Raise":
		return engine.Raise, nil
	case "AllIn":
		return engine.AllIn, nil
	default:
		return 0, fmt.Errorf("ws: unknown action type %q", s)
	}
}

// errorCode classifies an error from the controller/engine layer into one of
// spec.md §7's closed taxonomy of wire error codes.
func errorCode(err error) string { return controller.ErrorCode(err) }
