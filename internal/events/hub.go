// Package events fans arena events out to live subscribers such as the
// websocket stream. Publishing never blocks the arena: a subscriber whose
// buffer is full misses the event.
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/RichStephens/killzone/internal/engine"
	"github.com/RichStephens/killzone/internal/game"
)

type Type string

const (
	TypeJoined Type = "joined"
	TypeMoved  Type = "moved"
	TypeCombat Type = "combat"
	TypeLeft   Type = "left"
	TypeReset  Type = "reset"
	TypeSweep  Type = "sweep"
)

// Event is one arena change. Seq is the world's change sequence number;
// events from one change share it.
type Event struct {
	Type      Type                 `json:"type"`
	Seq       uint64               `json:"seq"`
	PlayerID  string               `json:"playerId,omitempty"`
	Player    *game.PlayerSnapshot `json:"player,omitempty"`
	Position  *game.Position       `json:"position,omitempty"`
	Combat    *engine.Outcome      `json:"combat,omitempty"`
	Outcomes  []engine.Outcome     `json:"outcomes,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

const defaultBuffer = 64

// Hub tracks subscribers.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]*Subscription
	nextID uint64
	buffer int
	closed bool
}

// NewHub creates a hub whose subscribers buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{subs: make(map[uint64]*Subscription), buffer: buffer}
}

// Subscription receives events until Close is called or the hub shuts down.
type Subscription struct {
	id      uint64
	hub     *Hub
	ch      chan Event
	once    sync.Once
	dropped atomic.Uint64
}

// Events returns the receive channel. It is closed when the subscription ends.
func (s *Subscription) Events() <-chan Event { return s.ch }

// Dropped reports how many events were skipped because the buffer was full.
func (s *Subscription) Dropped() uint64 { return s.dropped.Load() }

// Close detaches the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.remove(s)
}

// Subscribe registers a new subscriber. On a closed hub the returned
// subscription's channel is already closed.
func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	s := &Subscription{id: h.nextID, hub: h, ch: make(chan Event, h.buffer)}
	if h.closed {
		s.once.Do(func() { close(s.ch) })
		return s
	}
	h.subs[s.id] = s
	return s
}

// Publish delivers e to every subscriber without blocking.
func (h *Hub) Publish(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, s := range h.subs {
		select {
		case s.ch <- e:
		default:
			s.dropped.Add(1)
		}
	}
}

// Len returns the number of active subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close ends every subscription and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, s := range h.subs {
		delete(h.subs, id)
		s.once.Do(func() { close(s.ch) })
	}
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs, s.id)
	s.once.Do(func() { close(s.ch) })
}
