package world

import (
	"fmt"

	"github.com/RichStephens/killzone/internal/engine"
	"github.com/RichStephens/killzone/internal/game"
)

// MoveResult is what a move produced. Combat is nil when the destination
// was empty.
type MoveResult struct {
	Player   game.PlayerSnapshot
	Position game.Position
	Combat   *engine.Outcome
	// Seq is the world change sequence number assigned to this move.
	Seq uint64
}

// Move steps a player one cell in dir, clamping at the edges instead of
// rejecting. If another player already stands on the destination, the two
// fight before the position is committed; the mover lands on the cell
// whatever the result. With several occupants the first in insertion order
// is the opponent.
func (w *World) Move(id string, dir game.Direction) (MoveResult, error) {
	if _, err := game.ParseDirection(string(dir)); err != nil {
		return MoveResult{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	mover, ok := w.players[id]
	if !ok {
		return MoveResult{}, fmt.Errorf("%w: player %q", game.ErrNotFound, id)
	}

	dx, dy := dir.Delta()
	x := clamp(mover.X()+dx, 0, w.width-1)
	y := clamp(mover.Y()+dy, 0, w.height-1)

	var outcome *engine.Outcome
	if occupant := engine.OccupantAt(x, y, w.orderedLocked(), id); occupant != nil {
		outcome = w.resolver.Resolve(mover, occupant)
	}
	mover.SetPosition(x, y)

	res := MoveResult{
		Player:   mover.Snapshot(),
		Position: game.Position{X: x, Y: y},
		Combat:   outcome,
	}
	w.commitLocked(Change{Kind: ChangeMoved, PlayerID: id, Player: &res.Player, Position: &res.Position, Combat: outcome})
	res.Seq = w.seq
	return res, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
