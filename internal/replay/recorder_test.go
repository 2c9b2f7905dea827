package replay

import (
	"sync"
	"testing"
	"time"

	"texasholdem-server/internal/engine"
	"texasholdem-server/internal/eventbus"
)

func TestLogEventAssignsGapFreeSequenceIDs(t *testing.T) {
	r := NewRecorder(3, nil)
	r.StartGame("g1", Metadata{SmallBlind: 5, BigBlind: 10})

	for i := 0; i < 5; i++ {
		seq, err := r.LogEvent("g1", eventbus.Event{GameID: "g1", Type: eventbus.ActionTaken, Timestamp: time.Now()}, 1, nil, "p1", nil)
		if err != nil {
			t.Fatalf("LogEvent: %v", err)
		}
		if seq != uint64(i+1) {
			t.Fatalf("expected sequenceId %d, got %d", i+1, seq)
		}
	}

	data, err := r.Load("g1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if data.Metadata.TotalEvents != 5 {
		t.Fatalf("expected 5 total events, got %d", data.Metadata.TotalEvents)
	}
	if data.Metadata.TotalActions != 5 {
		t.Fatalf("expected 5 total actions, got %d", data.Metadata.TotalActions)
	}
}

func TestLogEventCheckspointsEveryNthEvent(t *testing.T) {
	r := NewRecorder(2, nil)
	r.StartGame("g1", Metadata{})

	for i := 0; i < 4; i++ {
		snapshot := &engine.GameState{HandNumber: 1}
		if _, err := r.LogEvent("g1", eventbus.Event{GameID: "g1", Type: eventbus.PhaseChanged}, 1, nil, "", snapshot); err != nil {
			t.Fatalf("LogEvent: %v", err)
		}
	}

	data, _ := r.Load("g1")
	if data.Events[0].Snapshot == nil {
		t.Fatal("expected the first event to carry a checkpoint snapshot")
	}
	if data.Events[2].Snapshot != nil {
		t.Fatal("expected the third event to carry no snapshot (interval 2)")
	}
	if data.Events[3].Snapshot == nil {
		t.Fatal("expected the fourth event to carry a checkpoint snapshot")
	}
	// Checkpoints land on sequenceIds 1, 2 and 4.
	if len(data.CheckpointIndex) != 3 {
		t.Fatalf("expected 3 checkpoint index entries, got %d", len(data.CheckpointIndex))
	}
}

func TestLogEventOnUnknownGameFails(t *testing.T) {
	r := NewRecorder(1, nil)
	if _, err := r.LogEvent("missing", eventbus.Event{}, 0, nil, "", nil); err == nil {
		t.Fatal("expected an error logging to an unknown game")
	}
}

func TestEndGameFinalizesMetadata(t *testing.T) {
	r := NewRecorder(10, nil)
	r.StartGame("g1", Metadata{})
	if err := r.EndGame("g1"); err != nil {
		t.Fatalf("EndGame: %v", err)
	}

	data, _ := r.Load("g1")
	if !data.Ended {
		t.Fatal("expected Ended to be true after EndGame")
	}
	if data.Metadata.EndTime.IsZero() {
		t.Fatal("expected EndTime to be set after EndGame")
	}
}

type recordingSink struct {
	mu       sync.Mutex
	appended int
	finalized int
}

func (s *recordingSink) Append(gameID string, event ReplayEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appended++
}

func (s *recordingSink) Finalize(gameID string, data ReplayData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalized++
}

func TestSinkReceivesAppendsAndFinalize(t *testing.T) {
	sink := &recordingSink{}
	r := NewRecorder(10, sink)
	r.StartGame("g1", Metadata{})
	r.LogEvent("g1", eventbus.Event{GameID: "g1", Type: eventbus.GameStarted}, 0, nil, "", nil)
	r.EndGame("g1")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		sink.mu.Lock()
		done := sink.appended == 1 && sink.finalized == 1
		sink.mu.Unlock()
		if done {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("sink did not observe both the append and the finalize")
}
