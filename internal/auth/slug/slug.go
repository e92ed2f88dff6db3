// Package slug derives URL-safe tenant slugs from display names.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases the name, keeps letters and digits, and collapses every
// other run of characters into a single hyphen. Leading and trailing hyphens
// are trimmed.
func Make(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
