package engine

import (
	"math/rand"
	"time"

	"github.com/RichStephens/killzone/internal/game"
)

// OutcomeCombat is the only outcome type produced today.
const OutcomeCombat = "combat"

// Outcome describes a resolved fight. Winner and Loser carry display names.
type Outcome struct {
	Type       string    `json:"type"`
	WinnerID   string    `json:"winnerId"`
	LoserID    string    `json:"loserId"`
	WinnerName string    `json:"winner"`
	LoserName  string    `json:"loser"`
	Timestamp  time.Time `json:"timestamp"`
}

// Coin is the randomness source used to pick a winner. *rand.Rand
// satisfies it; tests substitute a fixed sequence.
type Coin interface {
	Intn(n int) int
}

// globalCoin uses the goroutine-safe top-level math/rand functions.
type globalCoin struct{}

func (globalCoin) Intn(n int) int { return rand.Intn(n) }

// Resolver turns collisions into outcomes. It holds no state besides its
// randomness source and clock. A *rand.Rand coin is not safe for concurrent
// use, so a Resolver built with one must be confined to a single goroutine
// or guarded by its owner's lock.
type Resolver struct {
	coin Coin
	now  func() time.Time
}

// NewResolver builds a Resolver. A nil coin falls back to the global
// math/rand source and a nil clock to time.Now.
func NewResolver(coin Coin, now func() time.Time) *Resolver {
	if coin == nil {
		coin = globalCoin{}
	}
	if now == nil {
		now = time.Now
	}
	return &Resolver{coin: coin, now: now}
}

// Resolve picks a winner between a and b with even odds, regardless of
// health or any other attribute. The loser's health drops to zero, which
// marks it dead; the winner is left untouched. Resolving a pair twice flips
// the coin again, so an already-dead player can "lose" a second time. It
// returns nil when either player is missing.
func (r *Resolver) Resolve(a, b *game.Player) *Outcome {
	if a == nil || b == nil {
		return nil
	}
	winner, loser := a, b
	if r.coin.Intn(2) != 0 {
		winner, loser = b, a
	}
	loser.SetStatus(game.StatusDead)
	loser.SetHealth(0)
	return &Outcome{
		Type:       OutcomeCombat,
		WinnerID:   winner.ID(),
		LoserID:    loser.ID(),
		WinnerName: winner.Name(),
		LoserName:  loser.Name(),
		Timestamp:  r.now(),
	}
}

// ResolveMany resolves each pair independently, in order.
func (r *Resolver) ResolveMany(pairs []Pair) []*Outcome {
	out := make([]*Outcome, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, r.Resolve(p.A, p.B))
	}
	return out
}
