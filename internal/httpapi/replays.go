package httpapi

import (
	"github.com/gin-gonic/gin"

	"texasholdem-server/internal/replay"
)

func (a *API) getReplay(c *gin.Context) {
	data, err := a.rec.Load(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, data)
}

func (a *API) getReplayAnalysis(c *gin.Context) {
	analysis, err := a.analyzer.Load(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{
		"hands":   analysis.Hands,
		"stats":   analysis.Stats,
		"moments": analysis.Moments,
		"flow":    analysis.Flow,
	})
}

func (a *API) getReplayHand(c *gin.Context) {
	handNumber, valid := handNumberParam(c)
	if !valid {
		fail(c, replay.ErrInvalidReplay(c.Param("id"), "hand number must be a non-negative integer"))
		return
	}

	data, err := a.rec.Load(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, replay.EventsForHand(data, handNumber))
}

func (a *API) saveReplay(c *gin.Context) {
	if err := a.rec.Save(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"saved": c.Param("id")})
}
