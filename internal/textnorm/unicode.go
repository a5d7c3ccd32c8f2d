// Package textnorm implements the Unicode normalizer (C3): canonical
// decomposition followed by canonical composition (NFC; compatibility
// characters such as ligatures or full-width forms are not folded), zero-width/control
// character stripping, typographic look-alike mapping, and whitespace
// collapsing. It must never transliterate Cyrillic to Latin in its
// non-aggressive mode — that is the variant generator's job (C8), not the
// normalizer's.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Result is the normalizer's output, per spec §4.3.
type Result struct {
	Normalized string
	Changes    int
	Confidence float64
	Issues     []string
}

// zero-width and control characters to strip outright: ZWSP, ZWNJ, ZWJ,
// LRM, RLM (U+200B..U+200F) and BOM (U+FEFF).
var zeroWidth = []rune{
	'\u200b', '\u200c', '\u200d', '\u200e', '\u200f', '\ufeff',
}

// typographic look-alikes mapped to their ASCII equivalents.
var typographicMap = map[rune]rune{
	'\u2018': '\'',  // left single quote
	'\u2019': '\'',  // right single quote
	'\u201c': '"',   // left double quote
	'\u201d': '"',   // right double quote
	'\u2013': '-',   // en dash
	'\u2014': '-',   // em dash
	'\u00a0': ' ',   // non-breaking space
}

func isZeroWidth(r rune) bool {
	for _, z := range zeroWidth {
		if r == z {
			return true
		}
	}
	return false
}

// Normalize canonicalizes text: NFD decomposition then NFC composition
// (compatibility forms are kept, not folded as NFKC would fold them),
// zero-width/control stripping, typographic mapping, whitespace collapse.
// When aggressive is true it additionally lowercases and strips diacritics
// — reserved for pattern matching, never for user-visible canonical names.
func Normalize(text string, aggressive bool) Result {
	length := len([]rune(text))
	if length == 0 {
		return Result{Normalized: "", Changes: 0, Confidence: 1.0}
	}

	decomposed := norm.NFD.String(text)

	var b strings.Builder
	changes := 0
	var issues []string

	for _, r := range decomposed {
		switch {
		case isZeroWidth(r):
			changes++
			continue
		case unicode.IsControl(r) && r != '\n' && r != '\t':
			changes++
			continue
		}
		if mapped, ok := typographicMap[r]; ok {
			b.WriteRune(mapped)
			changes++
			continue
		}
		b.WriteRune(r)
	}

	composed := norm.NFC.String(b.String())
	collapsed, wsChanges := collapseWhitespace(composed)
	changes += wsChanges

	if aggressive {
		collapsed = lowerASCII(collapsed)
	}

	confidence := 1.0 - minFloat(1.0, float64(changes)/float64(length))

	if strings.TrimSpace(collapsed) == "" && strings.TrimSpace(text) != "" {
		issues = append(issues, "normalized to empty string")
	}

	return Result{
		Normalized: collapsed,
		Changes:    changes,
		Confidence: confidence,
		Issues:     issues,
	}
}

func collapseWhitespace(s string) (string, int) {
	var b strings.Builder
	changes := 0
	prevSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !prevSpace {
				b.WriteRune(' ')
			} else {
				changes++
			}
			prevSpace = true
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String()), changes
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
