package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics removes combining marks via NFD decomposition, used only
// by the aggressive Unicode-normalization mode (pattern matching) — never
// for user-visible canonical names, since it also strips the marks from
// Cyrillic letters such as й and ї.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, _ := transform.String(t, s)
	return out
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// lowerASCII lowercases and strips diacritics, reserved for aggressive mode.
func lowerASCII(s string) string {
	return strings.ToLower(StripDiacritics(s))
}
