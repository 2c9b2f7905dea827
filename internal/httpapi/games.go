package httpapi

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"texasholdem-server/internal/controller"
	"texasholdem-server/internal/engine"
	"texasholdem-server/internal/view"
)

// createGameRequest is the POST /api/games body. Fields mirror
// engine.GameConfig directly rather than inventing a separate DTO shape —
// this package adds no translation the caller couldn't do itself.
type createGameRequest struct {
	GameID               string                     `json:"gameId" binding:"required"`
	MaxPlayers           int                        `json:"maxPlayers"`
	SmallBlindAmount     int64                      `json:"smallBlindAmount"`
	BigBlindAmount       int64                      `json:"bigBlindAmount"`
	TurnTimeLimitSeconds int                        `json:"turnTimeLimitSeconds"`
	HandStartDelayMs     int                        `json:"handStartDelayMs"`
	StartSettings        engine.StartSettings       `json:"startSettings"`
	IsTournament         bool                       `json:"isTournament"`
	TournamentSettings   *engine.TournamentSettings `json:"tournamentSettings"`
}

func (a *API) createGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, engine.ErrIllegalAction)
		return
	}

	cfg := engine.GameConfig{
		MaxPlayers:           req.MaxPlayers,
		SmallBlindAmount:     req.SmallBlindAmount,
		BigBlindAmount:       req.BigBlindAmount,
		TurnTimeLimitSeconds: req.TurnTimeLimitSeconds,
		HandStartDelayMs:     req.HandStartDelayMs,
		StartSettings:        req.StartSettings,
		IsTournament:         req.IsTournament,
		TournamentSettings:   req.TournamentSettings,
	}

	m, err := a.reg.CreateGame(req.GameID, cfg)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, gameSummary(m))
}

func (a *API) listGames(c *gin.Context) {
	matches := a.reg.ListMatches()
	out := make([]gin.H, 0, len(matches))
	for _, m := range matches {
		out = append(out, gameSummary(m))
	}
	ok(c, out)
}

// listAvailableGames restricts the listing to matches still in
// WaitingForPlayers — the set a bot looking for an open seat should poll.
func (a *API) listAvailableGames(c *gin.Context) {
	matches := a.reg.ListMatches()
	out := make([]gin.H, 0, len(matches))
	for _, m := range matches {
		snap, err := m.Snapshot()
		if err != nil || snap.Phase != engine.WaitingForPlayers {
			continue
		}
		out = append(out, gameSummary(m))
	}
	ok(c, out)
}

func (a *API) getGame(c *gin.Context) {
	m, err := a.reg.GetMatch(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gameSummary(m))
}

func (a *API) getGameState(c *gin.Context) {
	m, err := a.reg.GetMatch(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	viewer := view.Viewer{Type: view.Spectator}
	if id := c.Query("viewerId"); id != "" {
		viewer = view.Viewer{Type: view.Player, ID: engine.PlayerID(id)}
	}

	gv, err := m.View(viewer)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gv)
}

type startGameRequest struct {
	RequesterID engine.PlayerID `json:"requesterId"`
}

func (a *API) startGame(c *gin.Context) {
	m, err := a.reg.GetMatch(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	var req startGameRequest
	_ = c.ShouldBindJSON(&req) // an empty body is valid when the match has no creatorId restriction

	state, err := m.StartGame(req.RequesterID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, state)
}

func (a *API) removeGame(c *gin.Context) {
	if err := a.reg.RemoveMatch(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"removed": c.Param("id")})
}

func gameSummary(m *controller.Match) gin.H {
	snap, _ := m.Snapshot()
	return gin.H{
		"gameId":     m.ID,
		"handNumber": snap.HandNumber,
		"phase":      snap.Phase.String(),
		"seatCount":  len(snap.Seats),
		"config":     m.Config(),
	}
}

// handNumberParam parses the :n path segment of GET /api/replays/:id/hands/:n.
func handNumberParam(c *gin.Context) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param("n"), 10, 64)
	return n, err == nil
}
