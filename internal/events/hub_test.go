package events

import (
	"testing"
	"time"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	h := NewHub(4)
	a := h.Subscribe()
	b := h.Subscribe()
	defer a.Close()
	defer b.Close()

	h.Publish(Event{Type: TypeJoined, PlayerID: "p1"})

	for _, s := range []*Subscription{a, b} {
		select {
		case e := <-s.Events():
			if e.Type != TypeJoined || e.PlayerID != "p1" {
				t.Fatalf("unexpected event %+v", e)
			}
			if e.Timestamp.IsZero() {
				t.Fatalf("expected publish to stamp the event")
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber did not receive the event")
		}
	}
}

func TestHub_FullBufferDrops(t *testing.T) {
	h := NewHub(1)
	s := h.Subscribe()
	defer s.Close()

	h.Publish(Event{Type: TypeMoved})
	h.Publish(Event{Type: TypeMoved})
	h.Publish(Event{Type: TypeMoved})

	if s.Dropped() != 2 {
		t.Fatalf("expected 2 dropped events, got %d", s.Dropped())
	}
}

func TestHub_CloseSubscription(t *testing.T) {
	h := NewHub(1)
	s := h.Subscribe()
	if h.Len() != 1 {
		t.Fatalf("expected 1 subscriber")
	}
	s.Close()
	s.Close()
	if h.Len() != 0 {
		t.Fatalf("expected subscriber to be removed")
	}
	if _, ok := <-s.Events(); ok {
		t.Fatalf("expected closed channel")
	}
	h.Publish(Event{Type: TypeLeft})
}

func TestHub_Close(t *testing.T) {
	h := NewHub(1)
	s := h.Subscribe()
	h.Close()
	if _, ok := <-s.Events(); ok {
		t.Fatalf("expected channel closed by hub shutdown")
	}
	late := h.Subscribe()
	if _, ok := <-late.Events(); ok {
		t.Fatalf("expected subscriptions on a closed hub to be closed")
	}
	s.Close()
	late.Close()
}
