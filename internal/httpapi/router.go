// Package httpapi implements the thin REST surface described in spec.md §6:
// no business logic of its own, every handler is a direct call into
// controller.Registry or internal/replay, shaped the way the pack's own
// gin-based game server wraps its table manager
// (pronitdas-poker-platform-b2b/cmd/game-server/main.go).
package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"texasholdem-server/internal/controller"
	"texasholdem-server/internal/metrics"
	"texasholdem-server/internal/replay"
)

// API wires the Registry/Recorder/Analyzer this router's handlers read from.
type API struct {
	reg      *controller.Registry
	rec      *replay.Recorder
	analyzer *replay.Analyzer
}

// NewRouter builds the gin.Engine serving every route in spec.md §6's HTTP
// table, plus /health, /stats and Prometheus's own /metrics.
func NewRouter(reg *controller.Registry, rec *replay.Recorder, analyzer *replay.Analyzer) *gin.Engine {
	a := &API{reg: reg, rec: rec, analyzer: analyzer}

	r := gin.Default()

	r.GET("/health", a.health)
	r.GET("/stats", a.stats)
	r.GET("/metrics", gin.WrapH(metricsHandler()))

	games := r.Group("/api/games")
	{
		games.GET("", a.listGames)
		games.POST("", a.createGame)
		games.GET("/available", a.listAvailableGames)
		games.GET("/:id", a.getGame)
		games.GET("/:id/state", a.getGameState)
		games.POST("/:id/start", a.startGame)
		games.DELETE("/:id", a.removeGame)
	}

	replays := r.Group("/api/replays")
	{
		replays.GET("/:id", a.getReplay)
		replays.GET("/:id/analysis", a.getReplayAnalysis)
		replays.GET("/:id/hands/:n", a.getReplayHand)
		replays.POST("/:id/save", a.saveReplay)
	}

	return r
}

func (a *API) health(c *gin.Context) {
	ok(c, gin.H{"status": "ok"})
}

func (a *API) stats(c *gin.Context) {
	ok(c, gin.H{
		"activeGames":      len(a.reg.ListMatches()),
		"connectedClients": 0, // populated by internal/transport/ws's gauge via /metrics; not tracked here
		"totalGamesPlayed": 0, // see /metrics for the authoritative Prometheus counter
		"serverUptime":     metrics.ServerUptimeSeconds(time.Now()),
	})
}
