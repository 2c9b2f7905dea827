// Package metrics exposes the match server's Prometheus collectors backing
// spec.md §6's /stats counters (activeGames, connectedClients,
// totalGamesPlayed, serverUptime) plus a few per-hand observability gauges
// the pack's fraud/analytics pipeline uses for the same kind of server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var startTime = time.Time{}

// RecordServerStart marks the instant /stats's serverUptime is measured
// from. Call once at process start.
func RecordServerStart(now time.Time) {
	startTime = now
}

// ServerUptimeSeconds returns seconds since RecordServerStart, or zero if it
// was never called.
func ServerUptimeSeconds(now time.Time) float64 {
	if startTime.IsZero() {
		return 0
	}
	return now.Sub(startTime).Seconds()
}

var (
	ActiveGames = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pokerserver_active_games",
		Help: "Number of matches currently in the registry.",
	})

	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pokerserver_connected_clients",
		Help: "Number of currently connected transport clients.",
	})

	TotalGamesPlayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokerserver_games_played_total",
		Help: "Total number of matches that have reached game_ended.",
	})

	HandsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokerserver_hands_completed_total",
		Help: "Total number of hands that reached HandComplete across all matches.",
	})

	ActionsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokerserver_actions_processed_total",
		Help: "Total number of player actions validated and applied, by action type.",
	}, []string{"action_type"})

	HandDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pokerserver_hand_duration_seconds",
		Help:    "Wall-clock duration of a single hand from deal to HandComplete.",
		Buckets: prometheus.DefBuckets,
	})

	ActionValidationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokerserver_action_validation_errors_total",
		Help: "Total number of rejected actions, by failure reason.",
	}, []string{"reason"})

	ReplaySinkAppendErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokerserver_replay_sink_append_errors_total",
		Help: "Total number of durable replay-sink append failures (best-effort, never blocks hand processing).",
	})

	TurnTimeoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokerserver_turn_timeouts_total",
		Help: "Total number of turn timer expirations that synthesized an implicit action.",
	})
)
