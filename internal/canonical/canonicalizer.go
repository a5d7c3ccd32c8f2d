// Package canonical implements the canonicalizer (C7): turning a raw name
// span into "First Last" nominative form. The tokenize-then-score idiom is
// adapted from the teacher's internal/parser.AddressMatcher, whose
// scorePath/sim fused Jaro-Winkler and Levenshtein distance to rank
// candidates; here the same fusion ranks fuzzy dictionary fallbacks instead
// of admin-path candidates.
package canonical

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"

	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
	"github.com/dariapavlova02/sanctions-screen/internal/morphology"
)

var tokenRe = regexp.MustCompile(`[\p{L}'\-]+`)

// Result is the canonicalizer's output.
type Result struct {
	Canonical string
	Language  models.Language
}

// Canonicalize runs the 8-step algorithm against nameText under the
// detected language lang.
func Canonicalize(store *dictionary.Store, nameText string, lang models.Language) Result {
	tokens := tokenRe.FindAllString(nameText, -1)
	if len(tokens) == 0 {
		return Result{Canonical: "", Language: lang}
	}

	first, last := splitFirstLast(store, lang, tokens)
	lang = reDetectLanguage(store, lang, first, last)

	if letter, ok := asInitial(first); ok {
		if expansions := store.InitialExpansions(lang, letter); len(expansions) > 0 {
			first = expansions[0]
		}
	} else {
		first = canonicalizeFirst(store, lang, first)
	}

	last = lemmatizeLast(store, lang, last)
	last = applyGenderSuffix(store, lang, first, last)

	first = titleCase(first)
	last = titleCase(last)

	if last == "" {
		return Result{Canonical: first, Language: lang}
	}
	return Result{Canonical: first + " " + last, Language: lang}
}

// splitFirstLast decides (first, last) token order: if there are fewer than
// two tokens, the sole token is first; otherwise if the last token is a
// known given name in C1 but the first isn't, the pair is swapped — this
// handles "Surname Firstname" input order.
func splitFirstLast(store *dictionary.Store, lang models.Language, tokens []string) (first, last string) {
	if len(tokens) == 1 {
		return tokens[0], ""
	}
	first, last = tokens[0], tokens[len(tokens)-1]
	_, firstIsGiven := store.LookupCanonical(lang, first)
	_, lastIsGiven := store.LookupCanonical(lang, last)
	if lastIsGiven && !firstIsGiven {
		first, last = last, first
	}
	return first, last
}

// reDetectLanguage forces uk when either token carries a UK-specific
// surname suffix, matching step 3's language re-decision. RU-specific
// letters are already resolved by the upstream language detector (C2); this
// step only needs to handle the surname-suffix override C2 cannot see.
func reDetectLanguage(store *dictionary.Store, lang models.Language, first, last string) models.Language {
	if store.HasUKSurnameSuffix(last) || store.HasUKSurnameSuffix(first) {
		return models.LangUK
	}
	return lang
}

func asInitial(token string) (string, bool) {
	trimmed := strings.TrimSuffix(token, ".")
	runes := []rune(trimmed)
	if len(runes) == 1 {
		return trimmed, true
	}
	return "", false
}

// fuzzyMatchThreshold is the minimum fused Jaro-Winkler/Levenshtein score
// (see fuzzyScore) a candidate must clear to be accepted as a near-spelling
// match; below this a misspelling-sized token is more likely an unrelated
// word than a typo'd given name.
const fuzzyMatchThreshold = 0.84

// canonicalizeFirst dictionary-maps the first token; on a miss it
// lemmatizes to nominative and retries the dictionary lookup once, catching
// genitive-of-diminutive forms (e.g. "Сашки" -> lemma "Сашка" -> canonical
// "Олександр" only if "Сашка" itself is a listed diminutive). If that also
// misses, it falls back to a fuzzy match against every known given name,
// catching single-letter typos ("Олександр" <- "Олександ") that would otherwise
// pass through unresolved.
func canonicalizeFirst(store *dictionary.Store, lang models.Language, token string) string {
	if canon, ok := store.LookupCanonical(lang, token); ok {
		return canon
	}
	lemmaResult := morphology.Normalize(store, lang, token)
	lemma := lemmaResult.Normalized
	if canon, ok := store.LookupCanonical(lang, lemma); ok {
		return canon
	}
	if canon, ok := fuzzyLookup(store, lang, lemma); ok {
		return canon
	}
	if lemma != "" {
		return lemma
	}
	return token
}

// fuzzyLookup ranks token against every known given name for lang and
// returns the best candidate clearing fuzzyMatchThreshold.
func fuzzyLookup(store *dictionary.Store, lang models.Language, token string) (string, bool) {
	if token == "" {
		return "", false
	}
	var best string
	bestScore := 0.0
	for _, candidate := range store.GivenNameCanonicals(lang) {
		if score := fuzzyScore(token, candidate); score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	if bestScore >= fuzzyMatchThreshold {
		return best, true
	}
	return "", false
}

// lemmatizeLast lemmatizes the surname to nominative. A dictionary-known
// surname is already in its canonical spelling and skips lemmatization,
// matching C5's "dictionary-mapped tokens are not re-lemmatized" contract.
func lemmatizeLast(store *dictionary.Store, lang models.Language, token string) string {
	if token == "" {
		return ""
	}
	if _, ok := store.IsKnownSurname(lang, token); ok {
		return token
	}
	return morphology.Normalize(store, lang, token).Normalized
}

// applyGenderSuffix rewrites a masculine surname ending to feminine when the
// canonical first name's known gender is feminine, preserving the case of
// the replaced suffix.
func applyGenderSuffix(store *dictionary.Store, lang models.Language, first, last string) string {
	if last == "" {
		return last
	}
	gender := store.GenderOf(lang, first)
	if gender != models.GenderFemn {
		return last
	}
	lower := strings.ToLower(last)
	for _, rule := range store.GenderSuffixRules(lang) {
		if strings.HasSuffix(lower, strings.ToLower(rule.Masc)) {
			cut := len(last) - len(rule.Masc)
			femn := rule.Femn
			if suffix := last[cut:]; suffix != strings.ToLower(suffix) && suffix == strings.ToUpper(suffix) {
				femn = strings.ToUpper(femn)
			}
			return last[:cut] + femn
		}
	}
	return last
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = toUpperRune(runes[0])
	for i := 1; i < len(runes); i++ {
		if runes[i-1] == '-' || runes[i-1] == '\'' {
			runes[i] = toUpperRune(runes[i])
		}
	}
	return string(runes)
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	if r >= 'а' && r <= 'я' {
		return r - ('а' - 'А')
	}
	if r == 'ё' {
		return 'Ё'
	}
	if r == 'і' || r == 'ї' || r == 'є' || r == 'ґ' {
		return []rune(strings.ToUpper(string(r)))[0]
	}
	return r
}

// fuzzyScore fuses Jaro-Winkler and Levenshtein similarity, identical to
// the teacher's sim() helper. fuzzyLookup uses it to rank a dictionary-miss
// token against every known given name rather than giving up outright.
func fuzzyScore(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	al, bl := strings.ToLower(a), strings.ToLower(b)
	jw := smetrics.JaroWinkler(al, bl, 0.7, 4)
	ld := levenshtein.ComputeDistance(al, bl)
	maxLen := len(al)
	if len(bl) > maxLen {
		maxLen = len(bl)
	}
	lev := 1.0 - float64(ld)/float64(maxLen)
	return 0.7*jw + 0.3*lev
}
