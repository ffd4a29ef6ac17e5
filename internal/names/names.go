// Package names holds the normalization and fuzzy-matching rules used to
// resolve player identity across sources. Every cross-source join in the
// service goes through this package so the matching strategy can be swapped
// in one place.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and removes combining marks, so accented
// names collapse to their ASCII skeleton ("Jokić" -> "Jokic").
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a player name for identity matching: lowercase,
// diacritics stripped, everything that is not a letter or space removed,
// surrounding whitespace trimmed. It is total and idempotent.
func Normalize(raw string) string {
	lowered := strings.ToLower(raw)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsLetter(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Match reports whether two free-text player names refer to the same player.
// The test is bidirectional substring containment on lowercased, trimmed
// strings, which tolerates partial names and truncation from manual entry
// ("LeBron" matches "LeBron James"). It is deliberately permissive and can
// both over- and under-match; callers accept that tradeoff.
func Match(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
