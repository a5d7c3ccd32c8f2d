// Package morphology implements the morphological normalizer (C5):
// lemmatizing name tokens to nominative case while preserving names that
// are already known to the dictionary. It never mixes analyzers across
// declared languages and never raises on a missing analyzer — it passes
// the token through unchanged and records an error string instead.
package morphology

import (
	"strings"

	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
)

// TokenLemma is the optional per-token detail returned alongside Normalized.
type TokenLemma struct {
	Token          string
	Lemma          string
	DictionaryHit  bool // token was resolved via C1 and was not re-lemmatized
}

// Result is the C5 output.
type Result struct {
	Normalized string
	Tokens     []TokenLemma
	Errors     []string
}

// ruSuffixes and ukSuffixes are ordered longest-suffix-first so a token is
// stripped back to its stem by the most specific rule that matches. These
// are heuristic nominative-case endings, not a full declension table; the
// dictionary's Declensions entries take priority and never reach this path.
// ruSuffixes now only fires when nativeLemmatize's gomorphy analyzer misses
// (out-of-dictionary or unparseable token); ukSuffixes is the sole backend
// for Ukrainian, which gomorphy's Russian-only dictionary cannot cover.
var ruSuffixes = []string{"ями", "ами", "ого", "его", "ому", "ему", "ыми", "ими",
	"ой", "ей", "ом", "ем", "ую", "юю", "ах", "ях", "ы", "и", "а", "я", "у", "ю", "е", "ь"}

var ukSuffixes = []string{"ього", "ьому", "ями", "ами", "ого", "ому", "ими", "овi",
	"ою", "ею", "ем", "єм", "ах", "ях", "и", "і", "а", "я", "у", "ю", "е", "є", "ь"}

// Normalize lemmatizes every whitespace-delimited token of text to its
// nominative stem, honoring the declared language exclusively. A given
// name found in the dictionary store (in any listed variant, diminutive,
// transliteration or declined form) resolves to its canonical spelling,
// and a known surname is kept as written; neither is passed through the
// lemmatizer or the suffix-stripping fallback.
func Normalize(store *dictionary.Store, lang models.Language, text string) Result {
	if lang == "" || lang == models.LangOther {
		return Result{Normalized: text, Errors: []string{"morphology: no analyzer for language \"" + string(lang) + "\""}}
	}

	words := strings.Fields(text)
	tokens := make([]TokenLemma, 0, len(words))
	out := make([]string, 0, len(words))
	var errs []string

	// Neither gomorphy (Russian-only) nor the suffix tables (ru/uk-only)
	// cover any other declared language; nativeAvailable reports whether
	// gomorphy itself loaded, which is orthogonal to this per-language check.
	if lang != models.LangRU && lang != models.LangUK {
		errs = append(errs, "morphology: analyzer unavailable for language \""+string(lang)+"\"")
	}

	for _, w := range words {
		if canon, ok := store.LookupCanonical(lang, w); ok {
			tokens = append(tokens, TokenLemma{Token: w, Lemma: canon, DictionaryHit: true})
			out = append(out, canon)
			continue
		}
		if gender, ok := store.IsKnownSurname(lang, w); ok {
			_ = gender
			tokens = append(tokens, TokenLemma{Token: w, Lemma: w, DictionaryHit: true})
			out = append(out, w)
			continue
		}

		if lemma, ok := nativeLemmatize(string(lang), w); ok {
			tokens = append(tokens, TokenLemma{Token: w, Lemma: lemma})
			out = append(out, lemma)
			continue
		}

		lemma := stripSuffix(lang, w)
		tokens = append(tokens, TokenLemma{Token: w, Lemma: lemma})
		out = append(out, lemma)
	}

	return Result{
		Normalized: strings.Join(out, " "),
		Tokens:     tokens,
		Errors:     errs,
	}
}

// stripSuffix applies the language-specific suffix table to a single token,
// never touching tokens shorter than 4 runes (avoids mangling short
// initials or particles) and never crossing ru/uk tables for a given call.
func stripSuffix(lang models.Language, token string) string {
	runes := []rune(token)
	if len(runes) < 4 {
		return token
	}

	var suffixes []string
	switch lang {
	case models.LangRU:
		suffixes = ruSuffixes
	case models.LangUK:
		suffixes = ukSuffixes
	default:
		return token
	}

	lower := strings.ToLower(token)
	for _, suf := range suffixes {
		if strings.HasSuffix(lower, suf) && len(runes)-len([]rune(suf)) >= 3 {
			return string(runes[:len(runes)-len([]rune(suf))])
		}
	}
	return token
}
