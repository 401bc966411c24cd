// Package world owns the arena state. Every exported method runs under one
// mutex so a join, move or leave is applied as a single step: a move reads
// the other players, resolves any fight and commits the new position before
// another caller can observe the world.
package world

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/RichStephens/killzone/internal/engine"
	"github.com/RichStephens/killzone/internal/game"

	"github.com/google/uuid"
)

const (
	DefaultWidth  = 40
	DefaultHeight = 20
)

// Config fixes the grid dimensions. Valid cells are [0,Width) x [0,Height).
type Config struct {
	Width  int
	Height int
}

// DefaultConfig returns the 40x20 arena.
func DefaultConfig() Config {
	return Config{Width: DefaultWidth, Height: DefaultHeight}
}

// Option customises a World at construction.
type Option func(*World)

// WithRand sets the source used for spawn positions and combat coin flips.
func WithRand(rng *rand.Rand) Option {
	return func(w *World) {
		if rng != nil {
			w.rng = rng
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(w *World) {
		if now != nil {
			w.now = now
		}
	}
}

// WithIDGenerator overrides the player id generator (uuid by default).
func WithIDGenerator(gen func() string) Option {
	return func(w *World) {
		if gen != nil {
			w.newID = gen
		}
	}
}

// World is the authoritative arena store.
type World struct {
	mu sync.Mutex

	width  int
	height int

	players map[string]*game.Player
	// order keeps insertion order so snapshots and first-match lookups are
	// deterministic.
	order []string

	ticks        uint64
	lastModified time.Time

	seq      uint64
	observer func(Change)

	rng      *rand.Rand
	resolver *engine.Resolver
	now      func() time.Time
	newID    func() string
}

// New creates an empty world.
func New(cfg Config, opts ...Option) (*World, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: world dimensions must be positive, got %dx%d", game.ErrInvalidArgument, cfg.Width, cfg.Height)
	}
	w := &World{
		width:   cfg.Width,
		height:  cfg.Height,
		players: make(map[string]*game.Player),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(w)
	}
	// The resolver shares w.rng, which is only touched under w.mu.
	w.resolver = engine.NewResolver(w.rng, w.now)
	w.lastModified = w.now()
	return w, nil
}

// Width returns the grid width.
func (w *World) Width() int { return w.width }

// Height returns the grid height.
func (w *World) Height() int { return w.height }

// InBounds reports whether (x, y) is a valid cell.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height
}

// AddPlayer spawns a new player on a uniformly random cell. The cell may
// already be occupied; stacked players fight when one of them moves.
func (w *World) AddPlayer(name string) (game.PlayerSnapshot, error) {
	if !game.ValidName(name) {
		return game.PlayerSnapshot{}, fmt.Errorf("%w: player name is required", game.ErrInvalidArgument)
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	x := w.rng.Intn(w.width)
	y := w.rng.Intn(w.height)
	return w.insertLocked(w.newID(), name, x, y)
}

// PlacePlayer inserts a player at a chosen cell. It exists for tests and
// operational tooling that need forced positions.
func (w *World) PlacePlayer(id, name string, x, y int) (game.PlayerSnapshot, error) {
	if !w.InBounds(x, y) {
		return game.PlayerSnapshot{}, fmt.Errorf("%w: position (%d,%d) outside %dx%d world", game.ErrInvalidArgument, x, y, w.width, w.height)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.insertLocked(id, name, x, y)
}

func (w *World) insertLocked(id, name string, x, y int) (game.PlayerSnapshot, error) {
	if _, exists := w.players[id]; exists {
		return game.PlayerSnapshot{}, fmt.Errorf("%w: player %q already exists", game.ErrInvalidArgument, id)
	}
	p, err := game.NewPlayer(id, name, x, y, w.now())
	if err != nil {
		return game.PlayerSnapshot{}, err
	}
	w.players[id] = p
	w.order = append(w.order, id)
	w.lastModified = w.now()
	snap := p.Snapshot()
	w.commitLocked(Change{Kind: ChangeJoined, PlayerID: id, Player: &snap, At: w.lastModified})
	return snap, nil
}

// RemovePlayer deletes the player and reports whether it existed. Removing
// an unknown id changes nothing.
func (w *World) RemovePlayer(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.players[id]; !ok {
		return false
	}
	delete(w.players, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.lastModified = w.now()
	w.commitLocked(Change{Kind: ChangeLeft, PlayerID: id, At: w.lastModified})
	return true
}

// Player returns a snapshot of the player with the given id.
func (w *World) Player(id string) (game.PlayerSnapshot, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.players[id]
	if !ok {
		return game.PlayerSnapshot{}, false
	}
	return p.Snapshot(), true
}

// PlayerAt returns the first player at (x, y) in insertion order, skipping
// excludeID when it is non-empty.
func (w *World) PlayerAt(x, y int, excludeID string) (game.PlayerSnapshot, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p := engine.OccupantAt(x, y, w.orderedLocked(), excludeID)
	if p == nil {
		return game.PlayerSnapshot{}, false
	}
	return p.Snapshot(), true
}

// Count returns the number of players in the arena.
func (w *World) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.players)
}

// LastModified returns the time of the last join, leave or reset.
func (w *World) LastModified() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastModified
}

// Snapshot returns the current state and bumps the tick counter. Ticks grow
// on every call, including back-to-back reads with no change in between;
// they count requests and are not a change token.
func (w *World) Snapshot() game.WorldSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.ticks++
	players := make([]game.PlayerSnapshot, 0, len(w.order))
	for _, p := range w.orderedLocked() {
		players = append(players, p.Snapshot())
	}
	return game.WorldSnapshot{
		Width:     w.width,
		Height:    w.height,
		Players:   players,
		Ticks:     w.ticks,
		Seq:       w.seq,
		Timestamp: w.lastModified,
	}
}

// Reset removes every player. The tick counter keeps counting.
func (w *World) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.players = make(map[string]*game.Player)
	w.order = nil
	w.lastModified = w.now()
	w.commitLocked(Change{Kind: ChangeReset, At: w.lastModified})
}

// orderedLocked returns the players in insertion order. Callers hold w.mu.
func (w *World) orderedLocked() []*game.Player {
	out := make([]*game.Player, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.players[id])
	}
	return out
}
