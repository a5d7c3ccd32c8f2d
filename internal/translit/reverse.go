// Package translit implements the reverse transliterator (C4): detecting
// romanized Slavic payment text and mapping it back to Cyrillic before
// normalization. This is a heuristic tuned for pipeline canonicalization
// outcomes, not phonetic accuracy.
package translit

import (
	"strings"
	"unicode"

	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
)

var indicatorTokens = []string{
	"oplata", "platezh", "perevod", "perekaz", "vid", "ot", "dlya", "na imya", "na imia",
}

// digraph substitutions applied in order, longest-first, before the
// single-letter map. uk-only and ru-only entries are applied conditionally.
type digraph struct {
	from string
	to   string
	lang models.Language // "" means common to both
}

var digraphs = []digraph{
	{"shch", "щ", ""},
	{"sch", "щ", ""},
	{"dzh", "дж", ""},
	{"dz", "дз", ""},
	{"cz", "ц", ""},
	{"sz", "ш", ""},
	{"rz", "ж", ""},
	{"yo", "ё", models.LangRU},
	{"jo", "ё", models.LangRU},
	{"zh", "ж", ""},
	{"kh", "х", ""},
	{"ch", "ч", ""},
	{"sh", "ш", ""},
	{"yu", "ю", ""},
	{"ju", "ю", ""},
	{"ya", "я", ""},
	{"ja", "я", ""},
	{"ts", "ц", ""},
	{"ye", "є", models.LangUK},
	{"ye", "е", models.LangRU},
	{"yi", "ї", models.LangUK},
	{"ii", "ій", models.LangUK},
}

var singleLetterMap = map[byte]string{
	'a': "а", 'b': "б", 'c': "к", 'd': "д", 'e': "е", 'f': "ф", 'g': "г",
	'h': "г", 'i': "і", 'j': "й", 'k': "к", 'l': "л", 'm': "м", 'n': "н",
	'o': "о", 'p': "п", 'q': "к", 'r': "р", 's': "с", 't': "т", 'u': "у",
	'v': "в", 'w': "в", 'x': "кс", 'y': "и", 'z': "з",
}

// Transliterate scans text for romanized-payment indicators. If none are
// present, text is returned unchanged. Otherwise it picks a target Slavic
// language and maps each ASCII-only token digraph-by-digraph and
// letter-by-letter. Payment-context phrases get no separate whole-word
// replacement, and store is not consulted.
func Transliterate(store *dictionary.Store, text string) (string, bool) {
	lower := strings.ToLower(text)
	found := false
	for _, ind := range indicatorTokens {
		if strings.Contains(lower, ind) {
			found = true
			break
		}
	}
	if !found {
		return text, false
	}

	target := models.LangRU
	if strings.Contains(lower, "vid") || strings.Contains(lower, "perekaz") || strings.Contains(lower, "platizh") {
		target = models.LangUK
	}

	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, transliterateToken(w, target))
	}
	return strings.Join(out, " "), true
}

// transliterateToken applies the digraph then single-letter maps to a
// single ASCII-only token, preserving the case of the leading letter.
func transliterateToken(token string, target models.Language) string {
	if !isASCIIOnly(token) {
		return token
	}

	leadingUpper := len(token) > 0 && token[0] >= 'A' && token[0] <= 'Z'
	lower := strings.ToLower(token)

	var b strings.Builder
	i := 0
	for i < len(lower) {
		matched := false
		for _, dg := range digraphs {
			if dg.lang != "" && dg.lang != target {
				continue
			}
			if strings.HasPrefix(lower[i:], dg.from) {
				b.WriteString(dg.to)
				i += len(dg.from)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		c := lower[i]
		if repl, ok := singleLetterMap[c]; ok {
			b.WriteString(repl)
		} else {
			b.WriteByte(c)
		}
		i++
	}

	result := b.String()
	if leadingUpper && len(result) > 0 {
		runes := []rune(result)
		runes[0] = toUpperRune(runes[0])
		result = string(runes)
	}
	return result
}

func isASCIIOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	// Cyrillic lowercase -> uppercase (а-я block is contiguous with и/й).
	if r >= 'а' && r <= 'я' {
		return r - ('а' - 'А')
	}
	return unicode.ToUpper(r)
}
