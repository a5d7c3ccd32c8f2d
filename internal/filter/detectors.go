// Package filter implements the smart filter / decision logic (C9): four
// independent signal detectors (names, companies, documents, high-risk
// terms) composed by a weighted decision rule. The four-detector split
// mirrors the source's name_detector.py/company_detector.py/
// document_detector.py/terrorism_detector.py module boundary as four small
// types instead of one monolithic function. The name, company and document
// detectors implement signalDetector; the terrorism detector returns its
// own signalHits, which Decide folds into the high_risk group.
package filter

import (
	"regexp"

	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
)

// signalDetector is the shape the name, company and document detectors implement, returning a
// SignalGroup {confidence, signals, count}.
type signalDetector interface {
	Detect(text string) models.SignalGroup
}

// weighted boosts a base per-match confidence by match count, capped at 1.0.
func weighted(base float64, matches []string) models.SignalGroup {
	conf := base
	if n := len(matches); n > 1 {
		conf += float64(n-1) * 0.05
	}
	if conf > 1.0 {
		conf = 1.0
	}
	return models.SignalGroup{Confidence: conf, Signals: matches, Count: len(matches)}
}

func findAll(res []*regexp.Regexp, text string) []string {
	var out []string
	for _, re := range res {
		out = append(out, re.FindAllString(text, -1)...)
	}
	return out
}

// NameDetector flags person-name signals: dictionary-known given names or
// surnames, and Cyrillic/Latin "looks like a name" tokens.
type NameDetector struct {
	store *dictionary.Store
}

func NewNameDetector(store *dictionary.Store) *NameDetector { return &NameDetector{store: store} }

var nameTokenRe = regexp.MustCompile(`[\p{L}][\p{L}'\-]+`)

func (d *NameDetector) Detect(text string) models.SignalGroup {
	var hits []string
	for _, tok := range nameTokenRe.FindAllString(text, -1) {
		for _, lang := range []models.Language{models.LangRU, models.LangUK} {
			if _, ok := d.store.LookupCanonical(lang, tok); ok {
				hits = append(hits, tok)
				break
			}
			if _, ok := d.store.IsKnownSurname(lang, tok); ok {
				hits = append(hits, tok)
				break
			}
		}
	}
	if len(hits) == 0 {
		return models.SignalGroup{Confidence: 0, Signals: nil, Count: 0}
	}
	return weighted(0.6, hits)
}

// CompanyDetector flags legal-entity markers and long legal phrases.
type CompanyDetector struct {
	store *dictionary.Store
}

func NewCompanyDetector(store *dictionary.Store) *CompanyDetector { return &CompanyDetector{store: store} }

func (d *CompanyDetector) Detect(text string) models.SignalGroup {
	var hits []string
	lower := nameTokenRe.FindAllString(text, -1)
	for _, lang := range []models.Language{models.LangRU, models.LangUK, models.LangEN} {
		entities := d.store.LegalEntities(lang)
		for _, tok := range lower {
			for _, ent := range entities {
				if equalFold(tok, ent) {
					hits = append(hits, tok)
				}
			}
		}
		for _, phrase := range d.store.LongPhrases(lang) {
			if containsFold(text, phrase) {
				hits = append(hits, phrase)
			}
		}
	}
	if len(hits) == 0 {
		return models.SignalGroup{Confidence: 0}
	}
	return weighted(0.65, hits)
}

// DocumentDetector flags TIN/INN, BIC, IBAN, phone, email, and date spans,
// each its own regex with its own confidence weight (per SPEC_FULL.md's
// supplemented per-kind expansion of the source's document_detector.py).
type DocumentDetector struct {
	innRes   []*regexp.Regexp
	ibanRes  []*regexp.Regexp
	bicRes   []*regexp.Regexp
	phoneRes []*regexp.Regexp
	emailRes []*regexp.Regexp
	dateRes  []*regexp.Regexp
}

func NewDocumentDetector() *DocumentDetector {
	return &DocumentDetector{
		innRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:инн|інн|inn)[:\s]*(\d{8,12})\b`),
			regexp.MustCompile(`\b\d{3}\s?\d{3}\s?\d{3}\s?\d{3}\b`),
		},
		ibanRes: []*regexp.Regexp{
			regexp.MustCompile(`\bUA\d{2}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\b`),
			regexp.MustCompile(`(?i)\b(?:iban|рахунок|счет|account)[:\s]*([A-Z]{2}\d{2}[A-Z0-9\s]{10,30})\b`),
		},
		bicRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:мфо|bic|swift)[:\s]*([A-ZА-ЯІЇЄҐ0-9]{6,11})\b`),
		},
		phoneRes: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:\+?38)?0\d{9}\b`),
			regexp.MustCompile(`\b\+?7\d{10}\b`),
		},
		emailRes: []*regexp.Regexp{
			regexp.MustCompile(`\b[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}\b`),
		},
		dateRes: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{1,2}[./\-]\d{1,2}[./\-]\d{2,4}\b`),
		},
	}
}

func (d *DocumentDetector) Detect(text string) models.SignalGroup {
	type kind struct {
		res    []*regexp.Regexp
		weight float64
	}
	kinds := []kind{
		{d.innRes, 0.80}, {d.ibanRes, 0.85}, {d.bicRes, 0.75},
		{d.phoneRes, 0.55}, {d.emailRes, 0.55}, {d.dateRes, 0.40},
	}

	var hits []string
	maxConf := 0.0
	for _, k := range kinds {
		matches := findAll(k.res, text)
		if len(matches) == 0 {
			continue
		}
		hits = append(hits, matches...)
		g := weighted(k.weight, matches)
		if g.Confidence > maxConf {
			maxConf = g.Confidence
		}
	}
	return models.SignalGroup{Confidence: maxConf, Signals: hits, Count: len(hits)}
}

func equalFold(a, b string) bool {
	return toLowerASCIICyr(a) == toLowerASCIICyr(b)
}

func containsFold(haystack, needle string) bool {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(needle)).MatchString(haystack)
}

func toLowerASCIICyr(s string) string {
	r := []rune(s)
	for i, c := range r {
		if c >= 'A' && c <= 'Z' {
			r[i] = c + 32
		} else if c >= 'А' && c <= 'Я' {
			r[i] = c + 32
		}
	}
	return string(r)
}
