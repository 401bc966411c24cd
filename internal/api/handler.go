package api

import (
	"context"

	"github.com/RichStephens/killzone/internal/game"
	"github.com/RichStephens/killzone/internal/service"
	"github.com/RichStephens/killzone/internal/world"
)

// Arena is the subset of *service.Arena the handlers call.
type Arena interface {
	Dimensions() (width, height int)
	Health() service.Health
	State(ctx context.Context) game.WorldSnapshot
	Collisions(ctx context.Context) []world.CollisionPair
	Reset(ctx context.Context)
	Join(ctx context.Context, name string) (game.PlayerSnapshot, error)
	Status(ctx context.Context, id string) (game.PlayerSnapshot, error)
	Leave(ctx context.Context, id string) error
	Move(ctx context.Context, id, direction string) (world.MoveResult, error)
	RecentCombats(ctx context.Context, limit int) ([]game.CombatRecord, error)
	Leaderboard(ctx context.Context, limit int) ([]game.FighterStats, error)
	FighterStats(ctx context.Context, name string) (game.FighterStats, error)
}

// ArenaHandler groups all arena-related HTTP handlers.
type ArenaHandler struct {
	arena           Arena
	leaderboardSize int
}

// NewArenaHandler creates a handler. leaderboardSize is the default number
// of rows for list endpoints when the request gives no limit.
func NewArenaHandler(arena Arena, leaderboardSize int) *ArenaHandler {
	if leaderboardSize <= 0 {
		leaderboardSize = defaultListLimit
	}
	return &ArenaHandler{arena: arena, leaderboardSize: leaderboardSize}
}
