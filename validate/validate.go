// Package validate normalizes and checks client-supplied identifiers before
// they reach the game core. It covers:
//   - Room codes: trimmed, uppercased, stripped of non-alphanumerics
//   - Team names: "red" or "blue", case-insensitive
package validate

import (
	"strings"

	"tug-of-war-server/game/engine"
)

// NormalizeRoomCode canonicalizes a client-supplied room code: surrounding
// whitespace is trimmed, letters are uppercased, and anything that is not an
// ASCII letter or digit is dropped. The result matches the registry's stored
// form, so lookups are case-insensitive.
func NormalizeRoomCode(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range strings.ToUpper(strings.TrimSpace(raw)) {
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ParseTeam maps a client-supplied team name to an engine.Team.
func ParseTeam(raw string) (engine.Team, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(engine.TeamRed):
		return engine.TeamRed, true
	case string(engine.TeamBlue):
		return engine.TeamBlue, true
	default:
		return "", false
	}
}
