package replay

import (
	"sync"
	"time"

	"texasholdem-server/internal/clock"
)

// Cursor is the analyzer's playback head over a fixed event sequence: an
// index into events plus play/pause/stop/step controls. Play advances the
// cursor automatically, spacing steps by the real gap between consecutive
// event timestamps (scaled by Speed) so a fast-paced hand scrubs quickly and
// a slow one doesn't blur past the viewer.
type Cursor struct {
	mu     sync.Mutex
	events []ReplayEvent
	index  int
	clk    clock.Clock
	onStep func(ReplayEvent)
	Speed  float64

	playing bool
	pending clock.CancelHandle
}

// NewCursor builds a Cursor over events. onStep, if non-nil, is invoked with
// the event that just became current, both for StepForward and for each
// step taken during Play.
func NewCursor(events []ReplayEvent, clk clock.Clock, onStep func(ReplayEvent)) *Cursor {
	return &Cursor{events: events, clk: clk, onStep: onStep, Speed: 1}
}

// Index returns the number of events already shown.
func (c *Cursor) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// CanStepBackward reports whether StepBackward would move the cursor.
func (c *Cursor) CanStepBackward() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index > 0
}

// StepForward advances the cursor by one event and fires onStep. The second
// return value is false once the log is exhausted.
func (c *Cursor) StepForward() (ReplayEvent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepForwardLocked()
}

func (c *Cursor) stepForwardLocked() (ReplayEvent, bool) {
	if c.index >= len(c.events) {
		return ReplayEvent{}, false
	}
	ev := c.events[c.index]
	c.index++
	if c.onStep != nil {
		c.onStep(ev)
	}
	return ev, true
}

// StepBackward retreats the cursor by one event, re-exposing it as current.
func (c *Cursor) StepBackward() (ReplayEvent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index == 0 {
		return ReplayEvent{}, false
	}
	c.index--
	return c.events[c.index], true
}

// SeekToEvent jumps the cursor to sequence position i (0 = before the first
// event). Out-of-range values are clamped.
func (c *Cursor) SeekToEvent(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	if i < 0 {
		i = 0
	}
	if i > len(c.events) {
		i = len(c.events)
	}
	c.index = i
}

// Play begins auto-advancing the cursor until Pause, Stop, or exhaustion.
func (c *Cursor) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		return
	}
	c.playing = true
	c.scheduleNextLocked()
}

// Pause halts auto-advance, retaining the current index.
func (c *Cursor) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
	c.cancelLocked()
}

// Stop halts auto-advance and rewinds to the beginning.
func (c *Cursor) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
	c.cancelLocked()
	c.index = 0
}

func (c *Cursor) cancelLocked() {
	if c.pending != nil {
		c.pending.Cancel()
		c.pending = nil
	}
}

func (c *Cursor) scheduleNextLocked() {
	if !c.playing || c.index >= len(c.events) {
		c.playing = false
		return
	}
	delay := c.stepDelayLocked()
	c.pending = c.clk.AfterFunc(delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.playing {
			return
		}
		c.stepForwardLocked()
		c.scheduleNextLocked()
	})
}

func (c *Cursor) stepDelayLocked() time.Duration {
	const minDelay = 50 * time.Millisecond
	speed := c.Speed
	if speed <= 0 {
		speed = 1
	}
	if c.index == 0 || c.index >= len(c.events) {
		return minDelay
	}
	gap := c.events[c.index].Timestamp.Sub(c.events[c.index-1].Timestamp)
	if gap <= 0 {
		return minDelay
	}
	scaled := time.Duration(float64(gap) / speed)
	if scaled < minDelay {
		return minDelay
	}
	return scaled
}
