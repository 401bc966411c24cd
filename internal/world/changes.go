package world

import (
	"time"

	"github.com/RichStephens/killzone/internal/engine"
	"github.com/RichStephens/killzone/internal/game"
)

// ChangeKind names a committed world mutation.
type ChangeKind string

const (
	ChangeJoined ChangeKind = "joined"
	ChangeMoved  ChangeKind = "moved"
	ChangeLeft   ChangeKind = "left"
	ChangeReset  ChangeKind = "reset"
	ChangeSweep  ChangeKind = "sweep"
)

// Change describes one committed mutation. Seq increases by one per change
// in the order the world applied them.
type Change struct {
	Kind     ChangeKind
	Seq      uint64
	PlayerID string
	Player   *game.PlayerSnapshot
	Position *game.Position
	Combat   *engine.Outcome
	Outcomes []engine.Outcome
	At       time.Time
}

// Observe registers fn to receive every change; nil stops notifications.
// fn runs while the world lock is held, so it must not call back into the
// world and should return quickly.
func (w *World) Observe(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observer = fn
}

// Seq returns the sequence number of the last committed change.
func (w *World) Seq() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq
}

// commitLocked stamps c and hands it to the observer. Callers hold w.mu.
func (w *World) commitLocked(c Change) {
	w.seq++
	c.Seq = w.seq
	if c.At.IsZero() {
		c.At = w.now()
	}
	if w.observer != nil {
		w.observer(c)
	}
}
