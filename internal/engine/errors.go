package engine

import "errors"

// Sentinel errors an Action or StartHand can fail with — callers match these
// with errors.Is rather than string comparison.
var (
	ErrGameNotRunning      = errors.New("engine: game not running")
	ErrInsufficientPlayers = errors.New("engine: insufficient players")
	ErrNotYourTurn         = errors.New("engine: not your turn")
	ErrIllegalAction       = errors.New("engine: action not in the allowed set")
	ErrAmountOutOfRange    = errors.New("engine: amount outside [min, max]")
	ErrHandInProgress      = errors.New("engine: hand already in progress")
)

// InvalidConfigError reports a malformed GameConfig.
type InvalidConfigError string

func (e InvalidConfigError) Error() string { return "engine: invalid config: " + string(e) }

// ErrInvalidConfig constructs an InvalidConfigError.
func ErrInvalidConfig(msg string) error { return InvalidConfigError(msg) }

// InvariantError marks a violated engine invariant (e.g. no contender left
// to award the pot to). The engine returns it from Act like any other
// error; controller.Match does not treat it specially — it does not abort
// the hand, mark the replay corrupt or refuse further actions on the match.
type InvariantError string

func (e InvariantError) Error() string { return "engine: invariant violated: " + string(e) }
