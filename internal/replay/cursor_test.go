package replay

import (
	"testing"
	"time"

	"texasholdem-server/internal/clock"
)

func sampleEvents() []ReplayEvent {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []ReplayEvent{
		{SequenceID: 1, Timestamp: base},
		{SequenceID: 2, Timestamp: base.Add(time.Second)},
		{SequenceID: 3, Timestamp: base.Add(3 * time.Second)},
	}
}

func TestCursorStepForwardAndBackward(t *testing.T) {
	c := NewCursor(sampleEvents(), clock.NewMock(t), nil)

	if c.CanStepBackward() {
		t.Fatal("a fresh cursor must not be able to step backward")
	}

	ev, ok := c.StepForward()
	if !ok || ev.SequenceID != 1 {
		t.Fatalf("expected to step to event 1, got %+v ok=%v", ev, ok)
	}
	if !c.CanStepBackward() {
		t.Fatal("expected CanStepBackward to be true after stepping forward")
	}

	c.StepForward()
	c.StepForward()
	if _, ok := c.StepForward(); ok {
		t.Fatal("expected StepForward to report false once the log is exhausted")
	}

	ev, ok = c.StepBackward()
	if !ok || ev.SequenceID != 3 {
		t.Fatalf("expected to step back to event 3, got %+v ok=%v", ev, ok)
	}
}

func TestCursorSeekToEventClamps(t *testing.T) {
	c := NewCursor(sampleEvents(), clock.NewMock(t), nil)
	c.SeekToEvent(100)
	if c.Index() != 3 {
		t.Fatalf("expected SeekToEvent to clamp to len(events), got %d", c.Index())
	}
	c.SeekToEvent(-5)
	if c.Index() != 0 {
		t.Fatalf("expected SeekToEvent to clamp negative values to 0, got %d", c.Index())
	}
}

func TestCursorPlayAdvancesOnMockClock(t *testing.T) {
	mock := clock.NewMock(t)
	var seen []uint64
	c := NewCursor(sampleEvents(), mock, func(ev ReplayEvent) {
		seen = append(seen, ev.SequenceID)
	})

	c.Play()
	mock.Advance(50 * time.Millisecond)
	if len(seen) != 1 || seen[0] != 1 {
		t.Fatalf("expected the first event to fire immediately, got %v", seen)
	}

	mock.Advance(time.Second)
	if len(seen) != 2 {
		t.Fatalf("expected a second event after the 1s gap elapses, got %v", seen)
	}

	mock.Advance(3 * time.Second)
	if len(seen) != 3 {
		t.Fatalf("expected all 3 events to have fired, got %v", seen)
	}
}

func TestCursorPauseStopsAutoAdvance(t *testing.T) {
	mock := clock.NewMock(t)
	var seen []uint64
	c := NewCursor(sampleEvents(), mock, func(ev ReplayEvent) {
		seen = append(seen, ev.SequenceID)
	})

	c.Play()
	mock.Advance(50 * time.Millisecond)
	c.Pause()
	mock.Advance(5 * time.Second)

	if len(seen) != 1 {
		t.Fatalf("expected Pause to stop further auto-advance, got %v", seen)
	}
}
