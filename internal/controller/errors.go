package controller

import (
	"errors"

	"texasholdem-server/internal/engine"
	"texasholdem-server/internal/replay"
)

// Validation-class errors (spec.md §7): surfaced to the caller as
// {success: false, error, message}, never fatal. engine's own sentinels
// (ErrGameNotRunning, ErrInsufficientPlayers, ErrNotYourTurn,
// ErrIllegalAction, ErrAmountOutOfRange) flow through Match's methods
// unwrapped rather than being redefined here.
var (
	ErrDuplicateGameID  = errors.New("duplicate gameId")
	ErrUnknownGame      = errors.New("unknown gameId")
	ErrAlreadyRunning   = errors.New("game already running")
	ErrPermissionDenied = errors.New("permission denied")
	ErrMatchClosed      = errors.New("match is closed")
)

// ErrorCode classifies any error a Match/Registry method can return into one
// of spec.md §7's closed wire-error-code taxonomy, shared by every transport
// (internal/transport/ws, internal/httpapi) so the mapping lives in one
// place instead of being re-derived per transport.
func ErrorCode(err error) string {
	var replayErr *replay.InvalidReplayError
	switch {
	case errors.Is(err, ErrDuplicateGameID):
		return "DuplicateGameId"
	case errors.Is(err, ErrUnknownGame), errors.Is(err, ErrMatchClosed), errors.As(err, &replayErr):
		return "UnknownGame"
	case errors.Is(err, ErrAlreadyRunning):
		return "AlreadyRunning"
	case errors.Is(err, ErrPermissionDenied):
		return "PermissionDenied"
	case errors.Is(err, engine.ErrIllegalAction):
		return "IllegalAction"
	case errors.Is(err, engine.ErrAmountOutOfRange):
		return "AmountOutOfRange"
	case errors.Is(err, engine.ErrNotYourTurn):
		return "NotYourTurn"
	case errors.Is(err, engine.ErrInsufficientPlayers):
		return "InsufficientPlayers"
	case errors.Is(err, engine.ErrGameNotRunning):
		return "NotYourTurn"
	default:
		return "IllegalAction"
	}
}
