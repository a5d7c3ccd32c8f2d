// Package dictionary is the in-memory static dictionary store (C1). It
// loads a fixed set of tables once at process start — canonical name
// tables per language, stop-words, legal-entity triggers, initials
// preferences, and regional membership packs — and exposes read-only
// lookups. Per the design notes, dictionaries are built once and are
// immutable after init; there is no locking because there are no writers
// after Load returns.
package dictionary

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dariapavlova02/sanctions-screen/app/models"
)

type nameEntryYAML struct {
	Canonical        string   `yaml:"canonical"`
	Gender           string   `yaml:"gender"`
	Variants         []string `yaml:"variants"`
	Diminutives      []string `yaml:"diminutives"`
	Transliterations []string `yaml:"transliterations"`
	Declensions      []string `yaml:"declensions"`
}

type namesFile struct {
	Names []nameEntryYAML `yaml:"names"`
}

type surnameEntry struct {
	Canonical string   `yaml:"canonical"`
	Gender    string   `yaml:"gender"`
	Variants  []string `yaml:"variants"`
}

type genderSuffixRule struct {
	Masc string `yaml:"masc"`
	Femn string `yaml:"femn"`
}

type surnamesFile struct {
	RU               []surnameEntry              `yaml:"ru"`
	UK               []surnameEntry              `yaml:"uk"`
	GenderSuffixRules map[string][]genderSuffixRule `yaml:"gender_suffix_rules"`
	UKSurnameSuffixes []string                    `yaml:"uk_surname_suffixes"`
}

type legalEntityBlock struct {
	Entities    []string `yaml:"entities"`
	LongPhrases []string `yaml:"long_phrases"`
}

type legalEntitiesFile struct {
	RU                         legalEntityBlock     `yaml:"ru"`
	UK                         legalEntityBlock     `yaml:"uk"`
	EN                         legalEntityBlock     `yaml:"en"`
	PaymentTriggers            map[string][]string  `yaml:"payment_triggers"`
	CompanyContextPrepositions map[string][]string  `yaml:"company_context_prepositions"`
}

// canonicalMap maps a lowercased alt form (variant/diminutive/declension)
// to its canonical spelling, per spec §3's CanonicalMap.
type canonicalMap map[string]string

// Store is the dictionary store. All fields are populated once by Load and
// never mutated afterward.
type Store struct {
	names       map[models.Language][]nameEntryYAML // insertion order preserved for last-wins semantics
	canonical   map[models.Language]canonicalMap
	genders     map[models.Language]map[string]models.Gender // canonical (lower) -> gender
	surnames    map[models.Language]map[string]models.Gender // surname membership + known gender
	genderSuffixRules map[models.Language][]genderSuffixRule
	ukSurnameSuffixes []string
	stopwords   map[models.Language]map[string]struct{}
	initials    map[models.Language]map[string][]string
	legal       map[models.Language]legalEntityBlock
	paymentTriggers map[models.Language][]string
	companyPreps    map[models.Language][]string
	regional    map[string]map[string]struct{}
}

// Load builds the Store from the embedded YAML tables. Duplicate canonical
// keys within a table are last-definition-wins, matching the source's
// asian_names.py/ukrainian_names.py behavior (preserved per SPEC_FULL.md
// §4 open question 1).
func Load() (*Store, error) {
	s := &Store{
		names:             map[models.Language][]nameEntryYAML{},
		canonical:         map[models.Language]canonicalMap{},
		genders:           map[models.Language]map[string]models.Gender{},
		surnames:          map[models.Language]map[string]models.Gender{},
		genderSuffixRules: map[models.Language][]genderSuffixRule{},
		stopwords:         map[models.Language]map[string]struct{}{},
		initials:          map[models.Language]map[string][]string{},
		legal:             map[models.Language]legalEntityBlock{},
		paymentTriggers:   map[models.Language][]string{},
		companyPreps:      map[models.Language][]string{},
		regional:          map[string]map[string]struct{}{},
	}

	if err := s.loadNames(models.LangUK, "data/names_uk.yaml"); err != nil {
		return nil, err
	}
	if err := s.loadNames(models.LangRU, "data/names_ru.yaml"); err != nil {
		return nil, err
	}
	if err := s.loadSurnames(); err != nil {
		return nil, err
	}
	if err := s.loadStopwords(); err != nil {
		return nil, err
	}
	if err := s.loadLegalEntities(); err != nil {
		return nil, err
	}
	if err := s.loadInitials(); err != nil {
		return nil, err
	}
	if err := s.loadRegional(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) loadNames(lang models.Language, path string) error {
	raw, err := dictFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("dictionary: read %s: %w", path, err)
	}
	var f namesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("dictionary: parse %s: %w", path, err)
	}

	cm := canonicalMap{}
	genders := map[string]models.Gender{}

	for _, n := range f.Names {
		canonLower := strings.ToLower(n.Canonical)
		gender := models.Gender(n.Gender)
		if gender == "" {
			gender = models.GenderUnknown
		}

		// Last-definition-wins: later entries overwrite earlier ones for
		// the same canonical, including their contribution to the
		// canonical map and gender table.
		genders[canonLower] = gender
		cm[canonLower] = n.Canonical
		for _, alt := range allAltForms(n) {
			cm[strings.ToLower(alt)] = n.Canonical
		}
	}

	s.names[lang] = f.Names
	s.canonical[lang] = cm
	s.genders[lang] = genders
	return nil
}

func allAltForms(n nameEntryYAML) []string {
	out := make([]string, 0, len(n.Variants)+len(n.Diminutives)+len(n.Transliterations)+len(n.Declensions))
	out = append(out, n.Variants...)
	out = append(out, n.Diminutives...)
	out = append(out, n.Transliterations...)
	out = append(out, n.Declensions...)
	return out
}

func (s *Store) loadSurnames() error {
	raw, err := dictFS.ReadFile("data/surnames.yaml")
	if err != nil {
		return fmt.Errorf("dictionary: read surnames.yaml: %w", err)
	}
	var f surnamesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("dictionary: parse surnames.yaml: %w", err)
	}

	build := func(entries []surnameEntry) map[string]models.Gender {
		m := map[string]models.Gender{}
		for _, e := range entries {
			g := models.Gender(e.Gender)
			if g == "" {
				g = models.GenderUnknown
			}
			m[strings.ToLower(e.Canonical)] = g
			for _, v := range e.Variants {
				m[strings.ToLower(v)] = g
			}
		}
		return m
	}

	s.surnames[models.LangRU] = build(f.RU)
	s.surnames[models.LangUK] = build(f.UK)

	for lang, rules := range f.GenderSuffixRules {
		s.genderSuffixRules[models.Language(lang)] = rules
	}
	s.ukSurnameSuffixes = f.UKSurnameSuffixes
	return nil
}

func (s *Store) loadStopwords() error {
	raw, err := dictFS.ReadFile("data/stopwords.yaml")
	if err != nil {
		return fmt.Errorf("dictionary: read stopwords.yaml: %w", err)
	}
	var f map[string][]string
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("dictionary: parse stopwords.yaml: %w", err)
	}
	for lang, words := range f {
		set := map[string]struct{}{}
		for _, w := range words {
			set[strings.ToLower(w)] = struct{}{}
		}
		s.stopwords[models.Language(lang)] = set
	}
	return nil
}

func (s *Store) loadLegalEntities() error {
	raw, err := dictFS.ReadFile("data/legal_entities.yaml")
	if err != nil {
		return fmt.Errorf("dictionary: read legal_entities.yaml: %w", err)
	}
	var f legalEntitiesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("dictionary: parse legal_entities.yaml: %w", err)
	}
	s.legal[models.LangRU] = f.RU
	s.legal[models.LangUK] = f.UK
	s.legal[models.LangEN] = f.EN
	for lang, triggers := range f.PaymentTriggers {
		s.paymentTriggers[models.Language(lang)] = triggers
	}
	for lang, preps := range f.CompanyContextPrepositions {
		s.companyPreps[models.Language(lang)] = preps
	}
	return nil
}

func (s *Store) loadInitials() error {
	raw, err := dictFS.ReadFile("data/initials.yaml")
	if err != nil {
		return fmt.Errorf("dictionary: read initials.yaml: %w", err)
	}
	var f map[string]map[string][]string
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("dictionary: parse initials.yaml: %w", err)
	}
	for lang, m := range f {
		s.initials[models.Language(lang)] = m
	}
	return nil
}

func (s *Store) loadRegional() error {
	raw, err := dictFS.ReadFile("data/regional.yaml")
	if err != nil {
		return fmt.Errorf("dictionary: read regional.yaml: %w", err)
	}
	var f map[string][]string
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("dictionary: parse regional.yaml: %w", err)
	}
	for pack, names := range f {
		set := map[string]struct{}{}
		for _, n := range names {
			set[strings.ToLower(n)] = struct{}{}
		}
		s.regional[pack] = set
	}
	return nil
}

// LookupCanonical resolves a token to its canonical spelling in lang,
// case-insensitively. On a miss it falls back to the other Slavic
// language's table, matching the fallback the spec allows for mixed
// Russian/Ukrainian input.
func (s *Store) LookupCanonical(lang models.Language, token string) (string, bool) {
	key := strings.ToLower(token)
	if cm, ok := s.canonical[lang]; ok {
		if canon, ok := cm[key]; ok {
			return canon, true
		}
	}
	for _, fallback := range s.slavicFallbacks(lang) {
		if cm, ok := s.canonical[fallback]; ok {
			if canon, ok := cm[key]; ok {
				return canon, true
			}
		}
	}
	return "", false
}

func (s *Store) slavicFallbacks(lang models.Language) []models.Language {
	switch lang {
	case models.LangRU:
		return []models.Language{models.LangUK}
	case models.LangUK:
		return []models.Language{models.LangRU}
	default:
		return nil
	}
}

// GenderOf returns the known gender of a canonical given name.
func (s *Store) GenderOf(lang models.Language, canonical string) models.Gender {
	if g, ok := s.genders[lang]; ok {
		if gender, ok := g[strings.ToLower(canonical)]; ok {
			return gender
		}
	}
	return models.GenderUnknown
}

// IsKnownSurname reports whether token is a recognized surname, and its
// known gender if any (unk if the surname carries no fixed gender, e.g.
// Ukrainian -енко surnames).
func (s *Store) IsKnownSurname(lang models.Language, token string) (models.Gender, bool) {
	key := strings.ToLower(token)
	if m, ok := s.surnames[lang]; ok {
		if g, ok := m[key]; ok {
			return g, true
		}
	}
	return models.GenderUnknown, false
}

// GenderSuffixRules returns the ordered masculine->feminine surname suffix
// corrections for lang (C7 step 7).
func (s *Store) GenderSuffixRules(lang models.Language) []genderSuffixRule {
	return s.genderSuffixRules[lang]
}

// HasUKSurnameSuffix reports whether token ends in a suffix that forces
// Ukrainian language re-detection during canonicalization (C7 step 3).
func (s *Store) HasUKSurnameSuffix(token string) bool {
	lower := strings.ToLower(token)
	for _, suf := range s.ukSurnameSuffixes {
		if strings.HasSuffix(lower, suf) {
			return true
		}
	}
	return false
}

// InitialExpansions returns the ordered list of preferred canonical given
// names for an uppercase letter. Falls back to the other Slavic language's
// map when lang has no entry for letter.
func (s *Store) InitialExpansions(lang models.Language, letter string) []string {
	letter = strings.ToUpper(letter)
	if m, ok := s.initials[lang]; ok {
		if names, ok := m[letter]; ok && len(names) > 0 {
			return names
		}
	}
	for _, fallback := range s.slavicFallbacks(lang) {
		if m, ok := s.initials[fallback]; ok {
			if names, ok := m[letter]; ok && len(names) > 0 {
				return names
			}
		}
	}
	return nil
}

// IsStop reports whether token is a stop-word for lang. For Slavic
// languages this unions ru ∪ uk stop-words to handle mixed text, per C1.
func (s *Store) IsStop(lang models.Language, token string) bool {
	key := strings.ToLower(token)
	if lang == models.LangRU || lang == models.LangUK {
		for _, l := range []models.Language{models.LangRU, models.LangUK} {
			if set, ok := s.stopwords[l]; ok {
				if _, found := set[key]; found {
					return true
				}
			}
		}
		return false
	}
	if set, ok := s.stopwords[lang]; ok {
		_, found := set[key]
		return found
	}
	return false
}

// LegalEntities returns the set of legal-entity abbreviation tokens for lang.
func (s *Store) LegalEntities(lang models.Language) []string {
	return s.legal[lang].Entities
}

// LongPhrases returns the long legal phrases (e.g. "Общество с ограниченной
// ответственностью") for lang.
func (s *Store) LongPhrases(lang models.Language) []string {
	return s.legal[lang].LongPhrases
}

// PaymentTriggers returns the payment-context trigger tokens for lang.
func (s *Store) PaymentTriggers(lang models.Language) []string {
	return s.paymentTriggers[lang]
}

// CompanyContextPrepositions returns the company-context preposition
// tokens for lang.
func (s *Store) CompanyContextPrepositions(lang models.Language) []string {
	return s.companyPreps[lang]
}

// DeclensionsOf returns the known declined forms of a canonical given name.
func (s *Store) DeclensionsOf(lang models.Language, canonical string) []string {
	return s.altFieldOf(lang, canonical, func(n nameEntryYAML) []string { return n.Declensions })
}

// VariantsOf returns the known spelling variants of a canonical given name.
func (s *Store) VariantsOf(lang models.Language, canonical string) []string {
	return s.altFieldOf(lang, canonical, func(n nameEntryYAML) []string { return n.Variants })
}

// DiminutivesOf returns the known diminutives of a canonical given name.
func (s *Store) DiminutivesOf(lang models.Language, canonical string) []string {
	return s.altFieldOf(lang, canonical, func(n nameEntryYAML) []string { return n.Diminutives })
}

// TransliterationsOf returns the known transliteration pairs of a canonical
// given name (e.g. Serhii|Serhiy|Sergiy for Ukrainian Сергій).
func (s *Store) TransliterationsOf(lang models.Language, canonical string) []string {
	return s.altFieldOf(lang, canonical, func(n nameEntryYAML) []string { return n.Transliterations })
}

// GivenNameCanonicals returns every canonical given-name spelling known for
// lang, plus its Slavic fallback language, deduplicated. Used by C7's
// fuzzy-match fallback to rank near-spellings once an exact dictionary
// lookup has already missed.
func (s *Store) GivenNameCanonicals(lang models.Language) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(l models.Language) {
		for _, entry := range s.names[l] {
			if _, dup := seen[entry.Canonical]; dup {
				continue
			}
			seen[entry.Canonical] = struct{}{}
			out = append(out, entry.Canonical)
		}
	}
	add(lang)
	for _, fallback := range s.slavicFallbacks(lang) {
		add(fallback)
	}
	return out
}

func (s *Store) altFieldOf(lang models.Language, canonical string, pick func(nameEntryYAML) []string) []string {
	lower := strings.ToLower(canonical)
	entries, ok := s.names[lang]
	if !ok {
		for _, fallback := range s.slavicFallbacks(lang) {
			if e, ok := s.names[fallback]; ok {
				entries = e
				break
			}
		}
	}
	// Last-definition-wins: scan in order, keep the most recent match.
	var result []string
	for _, n := range entries {
		if strings.ToLower(n.Canonical) == lower {
			result = pick(n)
		}
	}
	return result
}

// IsRegionalName reports whether token is a member of the named regional
// pack (asian, arabic, indian, european, scandinavian), used only for
// membership tests during pattern extraction.
func (s *Store) IsRegionalName(pack, token string) bool {
	set, ok := s.regional[pack]
	if !ok {
		return false
	}
	_, found := set[strings.ToLower(token)]
	return found
}
