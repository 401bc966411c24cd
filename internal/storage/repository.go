package storage

import (
	"github.com/RichStephens/killzone/internal/game"
)

// Repository stores what the arena wants to remember about fights. World
// state itself is never persisted.
type Repository interface {
	// RecordCombat stores the outcome and updates both fighters' stats in
	// one transaction.
	RecordCombat(rec *game.CombatRecord) error
	// RecentCombats returns the latest outcomes, newest first.
	RecentCombats(limit int) ([]game.CombatRecord, error)
	// GetTopFighters returns fighters ordered by wins desc, then losses asc.
	GetTopFighters(limit int) ([]game.FighterStats, error)
	// GetStatsByName returns the stats row for a display name
	// (case-insensitive); game.ErrNotFound when the name never fought.
	GetStatsByName(name string) (*game.FighterStats, error)
}
