package game

import (
	"time"

	"gorm.io/gorm"
)

// PlayerSnapshot is an immutable view of a player. JSON keys follow the
// wire format the arena clients already parse.
type PlayerSnapshot struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	X        int       `json:"x"`
	Y        int       `json:"y"`
	Health   int       `json:"health"`
	Status   Status    `json:"status"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Position is a grid cell.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WorldSnapshot is a point-in-time view of the arena. Ticks counts snapshot
// requests, not simulation steps, and must not be used to detect changes.
// Seq is the sequence number of the last committed change, matching the seq
// on stream events. Timestamp is the time of the last join, leave or reset.
type WorldSnapshot struct {
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	Players   []PlayerSnapshot `json:"players"`
	Ticks     uint64           `json:"ticks"`
	Seq       uint64           `json:"seq"`
	Timestamp time.Time        `json:"timestamp"`
}

// CombatRecord is a persisted combat outcome. The arena itself never reads
// these back; they feed the history and leaderboard endpoints.
type CombatRecord struct {
	gorm.Model
	WinnerID   string    `json:"winnerId" gorm:"index"`
	LoserID    string    `json:"loserId" gorm:"index"`
	WinnerName string    `json:"winner"`
	LoserName  string    `json:"loser"`
	OccurredAt time.Time `json:"occurredAt" gorm:"index"`
	// Source is "move" for movement-triggered fights and "sweep" for fights
	// started by the background collision sweeper.
	Source string `json:"source" gorm:"size:16"`
}

func (CombatRecord) TableName() string { return "combat_history" }

// FighterStats aggregates wins and losses per display name. Player ids only
// live for one session, so names are the stable key.
type FighterStats struct {
	gorm.Model
	NameKey     string    `json:"-" gorm:"uniqueIndex"`
	DisplayName string    `json:"name"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	LastFightAt time.Time `json:"lastFightAt"`
}

func (FighterStats) TableName() string { return "fighter_stats" }
