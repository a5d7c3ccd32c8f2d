// Package variant implements the variant generator (C8): producing up to
// max_variants cross-script/morphological alternative spellings of a
// canonical name, deterministically ordered. Cyrillic/Arabic -> Latin
// transliteration reuses the teacher's go-unidecode dependency
// (internal/normalizer/text_normalizer_v2.go's asciiFold).
package variant

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"

	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
)

const DefaultMaxVariants = 50

// Record pairs a generated text with the weight it should carry when
// indexed, per VariantRecord's weight convention.
type Record struct {
	Text   string
	Weight float64
}

// Generate produces the variant set for a canonical "First Last" (or bare
// "First") name in lang, capped at maxVariants after insertion-ordered
// dedup. maxVariants <= 0 uses DefaultMaxVariants.
func Generate(store *dictionary.Store, canonical string, lang models.Language, maxVariants int) []Record {
	if maxVariants <= 0 {
		maxVariants = DefaultMaxVariants
	}

	seen := map[string]struct{}{}
	var out []Record

	add := func(text string, weight float64) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		key := strings.ToLower(text)
		if _, ok := seen[key]; ok {
			return
		}
		if len(out) >= maxVariants {
			return
		}
		seen[key] = struct{}{}
		out = append(out, Record{Text: text, Weight: weight})
	}

	add(canonical, models.WeightPrimary)

	tokens := strings.Fields(canonical)
	first := tokens[0]
	var last string
	if len(tokens) > 1 {
		last = tokens[len(tokens)-1]
	}

	for _, tok := range []string{first, last} {
		if tok == "" {
			continue
		}
		for _, decl := range declensionsOf(store, lang, tok) {
			if last == "" {
				add(decl, models.WeightGeneratedVariant)
			} else if tok == first {
				add(decl+" "+last, models.WeightGeneratedVariant)
			} else {
				add(first+" "+decl, models.WeightGeneratedVariant)
			}
		}
	}

	for _, alt := range altFormsOf(store, lang, first) {
		if last == "" {
			add(alt, models.WeightGeneratedVariant)
		} else {
			add(alt+" "+last, models.WeightGeneratedVariant)
		}
	}

	for _, translit := range transliterationPairsOf(store, lang, first) {
		if last == "" {
			add(translit, models.WeightGeneratedVariant)
		} else {
			add(translit+" "+last, models.WeightGeneratedVariant)
		}
	}

	add(cyrillicToLatin(canonical), models.WeightCyrillicToLatin)

	if hasArabic(canonical) {
		add(arabicToLatin(canonical), models.WeightArabicToLatin)
	}

	if strings.ContainsAny(canonical, "'-") {
		add(stripPunctuation(canonical), models.WeightGeneratedVariant)
	}

	return out
}

func declensionsOf(store *dictionary.Store, lang models.Language, token string) []string {
	canon, ok := store.LookupCanonical(lang, token)
	if !ok {
		return nil
	}
	return store.DeclensionsOf(lang, canon)
}

func altFormsOf(store *dictionary.Store, lang models.Language, token string) []string {
	canon, ok := store.LookupCanonical(lang, token)
	if !ok {
		return nil
	}
	var out []string
	out = append(out, store.VariantsOf(lang, canon)...)
	out = append(out, store.DiminutivesOf(lang, canon)...)
	return out
}

func transliterationPairsOf(store *dictionary.Store, lang models.Language, token string) []string {
	canon, ok := store.LookupCanonical(lang, token)
	if !ok {
		return nil
	}
	return store.TransliterationsOf(lang, canon)
}

// cyrillicToLatin folds the whole canonical through go-unidecode,
// preserving word spacing.
func cyrillicToLatin(s string) string {
	return unidecode.Unidecode(s)
}

// arabicToLatin is the same fold, named separately per the source table to
// keep the weight attribution (0.7) distinct from the Cyrillic path (0.6)
// even though both currently route through the same transliterator.
func arabicToLatin(s string) string {
	return unidecode.Unidecode(s)
}

func hasArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}

func stripPunctuation(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\'' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
