package world

import (
	"github.com/RichStephens/killzone/internal/engine"
	"github.com/RichStephens/killzone/internal/game"
)

// CollisionPair is a pair of players currently sharing a cell.
type CollisionPair struct {
	A game.PlayerSnapshot `json:"player1"`
	B game.PlayerSnapshot `json:"player2"`
}

// Collisions lists every pair of players sharing a cell. It does not
// resolve anything and does not tick.
func (w *World) Collisions() []CollisionPair {
	w.mu.Lock()
	defer w.mu.Unlock()

	pairs := engine.FindCollisions(w.orderedLocked())
	out := make([]CollisionPair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, CollisionPair{A: p.A.Snapshot(), B: p.B.Snapshot()})
	}
	return out
}

// ResolveCollisions finds every stacked pair and resolves them in one
// locked step. Pairs are resolved independently, so a player stacked with
// two others fights both.
func (w *World) ResolveCollisions() []engine.Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()

	pairs := engine.FindCollisions(w.orderedLocked())
	if len(pairs) == 0 {
		return nil
	}
	out := make([]engine.Outcome, 0, len(pairs))
	for _, o := range w.resolver.ResolveMany(pairs) {
		if o != nil {
			out = append(out, *o)
		}
	}
	w.commitLocked(Change{Kind: ChangeSweep, Outcomes: out})
	return out
}
