// Package pattern implements the pattern extractor (C6): a regex+dictionary
// engine over (text, language) that emits typed NamePattern spans with a
// fixed, per-kind base confidence. Adapted from the teacher's
// internal/normalizer.PatternExtractor priority-tier regex map, generalized
// from address components to name/company/payment spans.
package pattern

import (
	"regexp"
	"strings"

	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
)

var looksLikeNameCyrillic = regexp.MustCompile(`^[А-ЯІЇЄҐ][а-яіїєґ]+$`)
var looksLikeNameLatin = regexp.MustCompile(`^[A-Z][a-z]+$`)

// surnameInitialsRe matches "Surname I.I." or "Surname I."; initialsSurnameRe
// matches "I.I. Surname" or "I. Surname", both Cyrillic, requiring uppercase
// single-letter initials and a capitalized surname token.
var fullNameRe = regexp.MustCompile(`\b([А-ЯІЇЄҐ][а-яіїєґ]+)\s+([А-ЯІЇЄҐ][а-яіїєґ]+)\b`)
var initialsSurnameRe = regexp.MustCompile(`\b([А-ЯІЇЄҐ])\.\s*([А-ЯІЇЄҐ])?\.?\s*([А-ЯІЇЄҐ][а-яіїєґ]+)\b`)
var surnameInitialsRe = regexp.MustCompile(`\b([А-ЯІЇЄҐ][а-яіїєґ]+)\s+([А-ЯІЇЄҐ])\.\s*([А-ЯІЇЄҐ])?\.?`)

// Extractor holds the precompiled per-language trigger expressions built
// from the dictionary store's payment/company trigger tables.
type Extractor struct {
	store *dictionary.Store
}

// New builds an Extractor bound to store.
func New(store *dictionary.Store) *Extractor {
	return &Extractor{store: store}
}

// Extract returns the deduplicated set of NamePattern spans found in text
// for the declared language, in descending-priority order. Deduplication
// key is (lower(span), kind, language), last occurrence wins its position
// but confidence never changes within a kind.
func (e *Extractor) Extract(text string, lang models.Language) []models.NamePattern {
	seen := map[string]int{} // key -> index in out
	var out []models.NamePattern

	emit := func(p models.NamePattern) {
		key := strings.ToLower(p.Span) + "\x00" + string(p.Kind) + "\x00" + string(p.Language)
		if idx, ok := seen[key]; ok {
			out[idx] = p
			return
		}
		seen[key] = len(out)
		out = append(out, p)
	}

	for _, p := range e.paymentContext(text, lang) {
		emit(p)
	}
	for _, p := range e.companyContext(text, lang) {
		emit(p)
	}
	for _, p := range e.dictionaryNames(text, lang) {
		emit(p)
	}
	for _, p := range e.regexNames(text, lang) {
		emit(p)
	}
	for _, p := range e.positionBased(text, lang) {
		emit(p)
	}

	return out
}

// paymentContext matches "<trigger> <prep>? <Name>" spans — e.g. "оплата
// от Петров" — at confidence 0.90, trimming stop-words and long legal
// phrases from both ends of the captured name span.
func (e *Extractor) paymentContext(text string, lang models.Language) []models.NamePattern {
	triggers := e.store.PaymentTriggers(lang)
	if len(triggers) == 0 {
		return nil
	}
	var out []models.NamePattern
	for _, trig := range triggers {
		re, err := regexp.Compile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(trig) + `\s+(?:[а-яіїєa-z]{2,4}\.?\s+)?([А-ЯІЇЄҐA-Z][\p{L}\-]+(?:\s+[А-ЯІЇЄҐA-Z][\p{L}\-]+){0,2})`)
		if err != nil {
			continue
		}
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			span := trimBoundaryNoise(e.store, lang, m[1])
			if span == "" {
				continue
			}
			out = append(out, models.NamePattern{
				Span:       span,
				Kind:       models.KindPaymentContext,
				Language:   lang,
				Confidence: 0.90,
				Source:     "payment_context:" + trig,
			})
		}
	}
	return out
}

// companyContext matches "<trigger> <prep>? <legal-entity> <Name>" spans at
// confidence 0.85, rejecting spans whose only content is a bare legal-entity
// marker.
func (e *Extractor) companyContext(text string, lang models.Language) []models.NamePattern {
	entities := e.store.LegalEntities(lang)
	if len(entities) == 0 {
		return nil
	}
	var out []models.NamePattern
	for _, ent := range entities {
		re, err := regexp.Compile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(ent) + `\s+["«]?([\p{L}0-9][\p{L}0-9\-\s]{1,60}?)["»]?(?:[.,;]|$)`)
		if err != nil {
			continue
		}
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			span := strings.TrimSpace(m[1])
			if span == "" || isBareLegalMarker(entities, span) {
				continue
			}
			out = append(out, models.NamePattern{
				Span:       ent + " " + span,
				Kind:       models.KindCompanyContext,
				Language:   lang,
				Confidence: 0.85,
				Source:     "company_context:" + ent,
			})
		}
	}
	return out
}

func isBareLegalMarker(entities []string, span string) bool {
	lower := strings.ToLower(strings.TrimSpace(span))
	for _, e := range entities {
		if lower == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// dictionaryNames emits one pattern per token that is a known given name
// or surname in C1, at confidence 0.95.
func (e *Extractor) dictionaryNames(text string, lang models.Language) []models.NamePattern {
	var out []models.NamePattern
	for _, tok := range strings.Fields(text) {
		clean := strings.Trim(tok, ".,;:!?\"'«»()")
		if clean == "" {
			continue
		}
		if canon, ok := e.store.LookupCanonical(lang, clean); ok {
			out = append(out, models.NamePattern{
				Span: canon, Kind: models.KindDictionaryName, Language: lang,
				Confidence: 0.95, Source: "dictionary_name",
			})
		}
		if _, ok := e.store.IsKnownSurname(lang, clean); ok {
			out = append(out, models.NamePattern{
				Span: clean, Kind: models.KindDictionarySurname, Language: lang,
				Confidence: 0.95, Source: "dictionary_surname",
			})
		}
	}
	return out
}

// regexNames matches full_name ("Петро Порошенко"), initials_surname
// ("П.О. Порошенко") and surname_initials ("Порошенко П.О.") spans, all at
// confidence 0.80. Cyrillic-only for now; Latin full names are covered by
// positionBased via looksLikeNameLatin.
func (e *Extractor) regexNames(text string, lang models.Language) []models.NamePattern {
	if lang != models.LangRU && lang != models.LangUK {
		return nil
	}
	var out []models.NamePattern
	for _, m := range fullNameRe.FindAllString(text, -1) {
		out = append(out, models.NamePattern{
			Span: m, Kind: models.KindFullName, Language: lang,
			Confidence: 0.80, Source: "regex:full_name",
		})
	}
	for _, m := range initialsSurnameRe.FindAllString(text, -1) {
		out = append(out, models.NamePattern{
			Span: m, Kind: models.KindInitialsSurname, Language: lang,
			Confidence: 0.80, Source: "regex:initials_surname",
		})
	}
	for _, m := range surnameInitialsRe.FindAllString(text, -1) {
		out = append(out, models.NamePattern{
			Span: strings.TrimSpace(m), Kind: models.KindSurnameInitials, Language: lang,
			Confidence: 0.80, Source: "regex:surname_initials",
		})
	}
	return out
}

// positionBased inspects the 3rd and 4th whitespace-delimited tokens; if
// either "looks like a name" for the script implied by lang, it is emitted
// at confidence 0.60.
func (e *Extractor) positionBased(text string, lang models.Language) []models.NamePattern {
	tokens := strings.Fields(text)
	var out []models.NamePattern
	looksLikeName := looksLikeNameLatin
	if lang == models.LangRU || lang == models.LangUK {
		looksLikeName = looksLikeNameCyrillic
	}
	for _, idx := range []int{2, 3} {
		if idx >= len(tokens) {
			continue
		}
		tok := strings.Trim(tokens[idx], ".,;:!?\"'«»()")
		if looksLikeName.MatchString(tok) {
			out = append(out, models.NamePattern{
				Span: tok, Kind: models.KindPositionBased, Language: lang,
				Confidence: 0.60, Source: "position_based",
			})
		}
	}
	return out
}

// trimBoundaryNoise strips stop-words and long legal phrases from both ends
// of a payment_context span.
func trimBoundaryNoise(store *dictionary.Store, lang models.Language, span string) string {
	tokens := strings.Fields(span)
	start, end := 0, len(tokens)
	for start < end && store.IsStop(lang, tokens[start]) {
		start++
	}
	for end > start && store.IsStop(lang, tokens[end-1]) {
		end--
	}
	if start >= end {
		return ""
	}
	trimmed := strings.Join(tokens[start:end], " ")
	for _, phrase := range store.LongPhrases(lang) {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, phrase))
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, phrase))
	}
	return trimmed
}
