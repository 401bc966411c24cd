package keys

import (
	"strings"
)

// FighterKey produces the canonical stats key for a display name.
// Behavior: trims, lower-cases and collapses inner whitespace runs into a
// single underscore, so "Dark  Knight" and "dark knight" share a row.
func FighterKey(name string) string {
	parts := strings.Fields(strings.ToLower(name))
	return strings.Join(parts, "_")
}
