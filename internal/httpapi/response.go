package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"texasholdem-server/internal/controller"
)

// envelope is every response body's shape, per spec.md §6: success always
// carries data, failure always carries error/message, never both.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// fail maps err to a wire error code via controller.ErrorCode (the same
// mapping internal/transport/ws uses) and an HTTP status appropriate to that
// code's class.
func fail(c *gin.Context, err error) {
	code := controller.ErrorCode(err)
	c.JSON(statusFor(code), envelope{Success: false, Error: code, Message: err.Error()})
}

func statusFor(code string) int {
	switch code {
	case "UnknownGame":
		return http.StatusNotFound
	case "DuplicateGameId", "AlreadyRunning":
		return http.StatusConflict
	case "PermissionDenied":
		return http.StatusForbidden
	case "NotYourTurn", "IllegalAction", "AmountOutOfRange", "InsufficientPlayers":
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

func metricsHandler() http.Handler {
	return promhttp.Handler()
}
