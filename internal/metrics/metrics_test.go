package metrics

import (
	"testing"
	"time"
)

func TestServerUptimeSecondsBeforeStartIsZero(t *testing.T) {
	startTime = time.Time{}
	if got := ServerUptimeSeconds(time.Now()); got != 0 {
		t.Fatalf("expected 0 uptime before RecordServerStart, got %f", got)
	}
}

func TestServerUptimeSecondsMeasuresElapsed(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	RecordServerStart(base)

	got := ServerUptimeSeconds(base.Add(90 * time.Second))
	if got != 90 {
		t.Fatalf("expected 90s uptime, got %f", got)
	}
}
