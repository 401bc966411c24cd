package engine

import "github.com/RichStephens/killzone/internal/game"

// Pair is an unordered pair of distinct players sharing a cell.
type Pair struct {
	A *game.Player
	B *game.Player
}

// Collides reports whether a and b occupy the same cell. A nil player never
// collides.
func Collides(a, b *game.Player) bool {
	if a == nil || b == nil {
		return false
	}
	return a.X() == b.X() && a.Y() == b.Y()
}

// FindCollisions returns every pair of distinct players that share a cell.
// It is a plain all-pairs scan; arenas hold tens of players, not thousands.
// Each pair is reported once, in input order, and a player listed twice is
// never paired with itself.
func FindCollisions(players []*game.Player) []Pair {
	var pairs []Pair
	seen := make(map[[2]string]struct{})
	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			a, b := players[i], players[j]
			if a == nil || b == nil || a.ID() == b.ID() {
				continue
			}
			key := pairKey(a.ID(), b.ID())
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if Collides(a, b) {
				pairs = append(pairs, Pair{A: a, B: b})
			}
		}
	}
	return pairs
}

// OccupantAt returns the first player at (x, y) other than excludeID, or nil.
// An empty excludeID excludes nobody.
func OccupantAt(x, y int, players []*game.Player, excludeID string) *game.Player {
	for _, p := range players {
		if p == nil {
			continue
		}
		if excludeID != "" && p.ID() == excludeID {
			continue
		}
		if p.X() == x && p.Y() == y {
			return p
		}
	}
	return nil
}
