package keys

import (
	"strings"
	"unicode"
)

// SlotKey produces a canonical key for a save slot name.
// Behavior: trims, lower-cases, turns spaces into underscores and replaces
// anything outside [a-z0-9_-] with '_'. The result is safe as a file name and
// as a DB key. An empty or blank name yields "".
func SlotKey(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(r)
		case r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
