// Command pokerserver runs the match server: the WebSocket gateway bots
// play through, and the REST surface used to create/list/inspect matches and
// their replays.
package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"texasholdem-server/internal/clock"
	"texasholdem-server/internal/controller"
	"texasholdem-server/internal/eventbus"
	"texasholdem-server/internal/httpapi"
	"texasholdem-server/internal/metrics"
	"texasholdem-server/internal/replay"
	"texasholdem-server/internal/storage"
	"texasholdem-server/internal/transport/ws"
)

const defaultCheckpointInterval = 50
const defaultAnalyzerCacheSize = 64

func main() {
	metrics.RecordServerStart(time.Now())

	sink, closeSink, err := storage.OpenFromEnv()
	if err != nil {
		log.Fatalf("[Server] failed to open replay sink: %v", err)
	}
	defer closeSink()

	mirror, err := kafkaMirrorFromEnv()
	if err != nil {
		log.Fatalf("[Server] failed to start kafka mirror: %v", err)
	}

	clk := clock.NewReal()
	bus := eventbus.New(mirror)
	rec := replay.NewRecorder(defaultCheckpointInterval, sink)
	analyzer := replay.NewAnalyzer(rec, defaultAnalyzerCacheSize, clk)
	reg := controller.NewRegistry(clk, bus, rec)

	gw := ws.New(reg)
	router := httpapi.NewRouter(reg, rec, analyzer)
	router.GET("/ws", gin.WrapF(gw.HandleWebSocket))

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3000"
	}
	addr := ":" + port

	log.Printf("[Server] replay sink: %s", sinkModeFor(sink))
	log.Printf("[Server] kafka mirror: %v", mirror != nil)
	log.Printf("[Server] listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("[Server] failed to start: %v", err)
	}
}

func sinkModeFor(sink replay.Sink) string {
	if sink == nil {
		return "none"
	}
	return strings.ToLower(strings.TrimSpace(os.Getenv("REPLAY_SINK")))
}

// kafkaMirrorFromEnv installs the optional async Kafka fan-out (SPEC_FULL.md
// §6.4). KAFKA_BROKERS unset means no mirror is installed; the bus then
// delivers only to in-process subscribers.
func kafkaMirrorFromEnv() (eventbus.Mirror, error) {
	brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))
	if brokers == "" {
		return nil, nil
	}
	topic := strings.TrimSpace(os.Getenv("KAFKA_EVENTS_TOPIC"))
	if topic == "" {
		topic = "poker.match.events"
	}
	return eventbus.NewKafkaMirror(eventbus.KafkaMirrorConfig{
		Brokers: strings.Split(brokers, ","),
		Topic:   topic,
	})
}
