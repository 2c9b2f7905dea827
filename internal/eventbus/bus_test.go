package eventbus

import (
	"testing"
	"time"
)

func TestPublishDeliversInRegistrationOrder(t *testing.T) {
	b := New(nil)
	var order []int
	b.Subscribe("g1", func(Event) { order = append(order, 1) })
	b.Subscribe("g1", func(Event) { order = append(order, 2) })
	b.Subscribe("g1", func(Event) { order = append(order, 3) })

	b.Publish(Event{GameID: "g1", Type: HandStarted, Timestamp: time.Now()})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected delivery in registration order, got %v", order)
	}
}

func TestPublishOnlyReachesSubscribersOfThatGame(t *testing.T) {
	b := New(nil)
	var gotA, gotB int
	b.Subscribe("a", func(Event) { gotA++ })
	b.Subscribe("b", func(Event) { gotB++ })

	b.Publish(Event{GameID: "a", Type: HandStarted})

	if gotA != 1 || gotB != 0 {
		t.Fatalf("expected only game a's subscriber to fire, got a=%d b=%d", gotA, gotB)
	}
}

func TestSubscriberPanicIsIsolated(t *testing.T) {
	b := New(nil)
	delivered := false
	b.Subscribe("g1", func(Event) { panic("boom") })
	b.Subscribe("g1", func(Event) { delivered = true })

	b.Publish(Event{GameID: "g1", Type: ActionTaken})

	if !delivered {
		t.Fatal("a panicking subscriber must not prevent delivery to the next subscriber")
	}
}

func TestUnsubscribeFromWithinCallback(t *testing.T) {
	b := New(nil)
	var sub *Subscription
	calls := 0
	sub = b.Subscribe("g1", func(Event) {
		calls++
		sub.Unsubscribe()
	})

	b.Publish(Event{GameID: "g1", Type: HandComplete})
	b.Publish(Event{GameID: "g1", Type: HandComplete})

	if calls != 1 {
		t.Fatalf("expected the self-unsubscribing callback to fire exactly once, got %d", calls)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	b := New(nil)
	sub := b.Subscribe("g1", func(Event) {})
	sub.Unsubscribe()
	sub.Unsubscribe()
}

type recordingMirror struct {
	events []Event
}

func (m *recordingMirror) Mirror(e Event) {
	m.events = append(m.events, e)
}

func TestPublishFansOutToMirror(t *testing.T) {
	m := &recordingMirror{}
	b := New(m)
	b.Subscribe("g1", func(Event) {})

	b.Publish(Event{GameID: "g1", Type: GameStarted})

	if len(m.events) != 1 || m.events[0].Type != GameStarted {
		t.Fatalf("expected the mirror to receive a copy of the published event, got %v", m.events)
	}
}
