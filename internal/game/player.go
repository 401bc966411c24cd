package game

import (
	"fmt"
	"strings"
	"time"
)

const (
	MaxHealth = 100
	MinHealth = 0
)

// Status is the life state of a player in the arena.
type Status string

const (
	StatusAlive   Status = "alive"
	StatusDead    Status = "dead"
	StatusWaiting Status = "waiting"
)

// ValidStatus reports whether s is one of the accepted player states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAlive, StatusDead, StatusWaiting:
		return true
	}
	return false
}

// ValidName reports whether name can be used to create a player. Empty and
// whitespace-only names are rejected.
func ValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// Player is a participant in the arena. Identity fields are fixed at
// creation; position, health and status change only through the setters,
// which the world store calls while holding its lock.
type Player struct {
	id       string
	name     string
	x, y     int
	health   int
	status   Status
	joinedAt time.Time
}

// NewPlayer creates a player at (x, y) with full health.
func NewPlayer(id, name string, x, y int, joinedAt time.Time) (*Player, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidArgument)
	}
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidArgument)
	}
	return &Player{
		id:       id,
		name:     name,
		x:        x,
		y:        y,
		health:   MaxHealth,
		status:   StatusAlive,
		joinedAt: joinedAt,
	}, nil
}

func (p *Player) ID() string          { return p.id }
func (p *Player) Name() string        { return p.name }
func (p *Player) X() int              { return p.x }
func (p *Player) Y() int              { return p.y }
func (p *Player) Health() int         { return p.health }
func (p *Player) Status() Status      { return p.status }
func (p *Player) JoinedAt() time.Time { return p.joinedAt }

// SetPosition overwrites the coordinates. Bounds are the world's concern.
func (p *Player) SetPosition(x, y int) {
	p.x = x
	p.y = y
}

// SetHealth clamps v to [MinHealth, MaxHealth]. Reaching zero marks the
// player dead; a non-zero value leaves the status alone, so a dead player is
// never revived here.
func (p *Player) SetHealth(v int) {
	if v < MinHealth {
		v = MinHealth
	}
	if v > MaxHealth {
		v = MaxHealth
	}
	p.health = v
	if v == MinHealth {
		p.status = StatusDead
	}
}

// SetStatus applies s when it is a known status and reports whether it did.
// Unknown values are ignored rather than rejected; existing callers rely on
// the no-op.
func (p *Player) SetStatus(s Status) bool {
	if !ValidStatus(s) {
		return false
	}
	p.status = s
	return true
}

// Snapshot returns a copy of the player's current state.
func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID:       p.id,
		Name:     p.name,
		X:        p.x,
		Y:        p.y,
		Health:   p.health,
		Status:   p.status,
		JoinedAt: p.joinedAt,
	}
}
