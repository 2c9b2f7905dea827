// Package clock abstracts time behind the Clock interface so every timed
// behavior in the controller — turn timeout, cleanup timer, hand-start
// delay, scheduled start, offline-seat stand-up — can be driven
// deterministically in tests via a mock clock, matching the pattern the
// example pool uses to inject a fake clock into a server under test. Replay
// sink writes are not timer-driven and do not go through this package.
package clock

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
)

// CancelHandle cancels a scheduled callback. Cancel is idempotent: calling
// it twice, or after the callback has already fired, is a no-op.
type CancelHandle interface {
	Cancel()
}

// Clock schedules one-shot callbacks after a delay.
type Clock interface {
	Now() time.Time
	// AfterFunc runs fn once, after d has elapsed, on its own goroutine.
	AfterFunc(d time.Duration, fn func()) CancelHandle
}

// Real wraps quartz's real-time clock for production use.
type Real struct {
	q quartz.Clock
}

// NewReal constructs a Clock backed by the actual wall clock.
func NewReal() *Real {
	return &Real{q: quartz.NewReal()}
}

func (r *Real) Now() time.Time { return r.q.Now() }

func (r *Real) AfterFunc(d time.Duration, fn func()) CancelHandle {
	timer := r.q.AfterFunc(d, fn)
	return cancelFunc(func() { timer.Stop() })
}

type cancelFunc func()

func (c cancelFunc) Cancel() { c() }

// Mock wraps quartz's fake clock for deterministic tests — callers advance
// it explicitly with Advance.
type Mock struct {
	q *quartz.Mock
}

// NewMock constructs a Clock a test can advance by hand. tb is wired into
// quartz's own cleanup/assertion hooks.
func NewMock(tb testing.TB) *Mock {
	return &Mock{q: quartz.NewMock(tb)}
}

func (m *Mock) Now() time.Time { return m.q.Now() }

func (m *Mock) AfterFunc(d time.Duration, fn func()) CancelHandle {
	timer := m.q.AfterFunc(d, fn)
	return cancelFunc(func() { timer.Stop() })
}

// Advance moves the mock clock forward by d and blocks until every callback
// whose deadline has elapsed has run.
func (m *Mock) Advance(d time.Duration) {
	ctx := context.Background()
	// quartz only advances up to the next pending event per call, so step
	// event by event until d is used up.
	for d > 0 {
		next, ok := m.q.Peek()
		if !ok || next > d {
			break
		}
		m.q.Advance(next).MustWait(ctx)
		d -= next
	}
	if d > 0 {
		m.q.Advance(d).MustWait(ctx)
	}
}
