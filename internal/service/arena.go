package service

import (
	"context"
	"time"

	"github.com/RichStephens/killzone/internal/dedupe"
	"github.com/RichStephens/killzone/internal/events"
	"github.com/RichStephens/killzone/internal/game"
	"github.com/RichStephens/killzone/internal/world"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer trace.Tracer = otel.Tracer("github.com/RichStephens/killzone/internal/service")

// CombatRepo is the subset of storage.Repository the arena needs.
type CombatRepo interface {
	RecordCombat(rec *game.CombatRecord) error
	RecentCombats(limit int) ([]game.CombatRecord, error)
	GetTopFighters(limit int) ([]game.FighterStats, error)
	GetStatsByName(name string) (*game.FighterStats, error)
}

// Publisher receives arena events; *events.Hub implements it.
type Publisher interface {
	Publish(e events.Event)
}

// Arena ties the world store to its collaborators: combat history,
// live event subscribers and tracing. The world enforces atomicity; the
// arena only reacts to what each world call returned.
type Arena struct {
	world   *world.World
	repo    CombatRepo
	events  Publisher
	started time.Time

	// leaderboard is per arena so two arenas never share query results.
	leaderboard dedupe.Group[[]game.FighterStats]
}

// NewArena wires an arena. repo and pub may be nil, in which case combats
// are not recorded and no events are published. With a publisher, events are
// emitted from inside each world step so subscribers see them in the order
// the world applied them.
func NewArena(w *world.World, repo CombatRepo, pub Publisher) *Arena {
	a := &Arena{world: w, repo: repo, events: pub, started: time.Now()}
	if pub != nil {
		w.Observe(a.publishChange)
	}
	return a
}

// Dimensions returns the grid size.
func (a *Arena) Dimensions() (width, height int) {
	return a.world.Width(), a.world.Height()
}

// Health summarises liveness for the health endpoint.
type Health struct {
	Status      string    `json:"status"`
	Uptime      float64   `json:"uptime"`
	PlayerCount int       `json:"playerCount"`
	Timestamp   time.Time `json:"timestamp"`
}

// Health reports uptime in seconds and the current population. It does not
// take a world snapshot, so it does not tick.
func (a *Arena) Health() Health {
	now := time.Now()
	return Health{
		Status:      "healthy",
		Uptime:      now.Sub(a.started).Seconds(),
		PlayerCount: a.world.Count(),
		Timestamp:   now,
	}
}

// State returns a world snapshot (and so advances the tick counter).
func (a *Arena) State(ctx context.Context) game.WorldSnapshot {
	_, span := tracer.Start(ctx, "arena.State")
	defer span.End()
	return a.world.Snapshot()
}

// Collisions lists currently stacked pairs without resolving them.
func (a *Arena) Collisions(ctx context.Context) []world.CollisionPair {
	_, span := tracer.Start(ctx, "arena.Collisions")
	defer span.End()
	return a.world.Collisions()
}

// Reset clears the arena.
func (a *Arena) Reset(ctx context.Context) {
	_, span := tracer.Start(ctx, "arena.Reset")
	defer span.End()
	a.world.Reset()
}

// publishChange runs under the world lock; it must not call the world.
func (a *Arena) publishChange(c world.Change) {
	e := events.Event{Seq: c.Seq, PlayerID: c.PlayerID, Timestamp: c.At}
	if c.Player != nil {
		p := *c.Player
		e.Player = &p
	}
	if c.Position != nil {
		pos := *c.Position
		e.Position = &pos
	}
	switch c.Kind {
	case world.ChangeJoined:
		e.Type = events.TypeJoined
	case world.ChangeLeft:
		e.Type = events.TypeLeft
	case world.ChangeReset:
		e.Type = events.TypeReset
	case world.ChangeSweep:
		e.Type = events.TypeSweep
		e.Outcomes = c.Outcomes
	case world.ChangeMoved:
		e.Type = events.TypeMoved
		a.events.Publish(e)
		if c.Combat != nil {
			combat := *c.Combat
			a.events.Publish(events.Event{
				Type:      events.TypeCombat,
				Seq:       c.Seq,
				PlayerID:  c.PlayerID,
				Combat:    &combat,
				Timestamp: c.At,
			})
		}
		return
	default:
		return
	}
	a.events.Publish(e)
}
