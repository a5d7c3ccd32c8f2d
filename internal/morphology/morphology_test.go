package morphology

import (
	"testing"

	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
)

func testStore(t *testing.T) *dictionary.Store {
	t.Helper()
	s, err := dictionary.Load()
	if err != nil {
		t.Fatalf("dictionary.Load() error: %v", err)
	}
	return s
}

func TestNormalize_UnsupportedLanguageRecordsError(t *testing.T) {
	store := testStore(t)
	res := Normalize(store, models.LangEN, "Ivan Petrenko")
	if res.Normalized != "Ivan Petrenko" {
		t.Errorf("Normalized = %q, want the input passed through unchanged", res.Normalized)
	}
	if len(res.Errors) == 0 {
		t.Error("expected an error noting no analyzer is available for English")
	}
}

func TestNormalize_BlankOrOtherLanguagePassesThroughWithError(t *testing.T) {
	store := testStore(t)
	res := Normalize(store, models.LangOther, "12345")
	if res.Normalized != "12345" {
		t.Errorf("Normalized = %q, want unchanged", res.Normalized)
	}
	if len(res.Errors) == 0 {
		t.Error("expected an error for models.LangOther")
	}
}

func TestNormalize_DictionaryHitSkipsLemmatization(t *testing.T) {
	store := testStore(t)
	res := Normalize(store, models.LangUK, "Сергій Коваленко")
	if res.Normalized != "Сергій Коваленко" {
		t.Errorf("Normalized = %q, want the dictionary-known tokens untouched", res.Normalized)
	}
	for _, tok := range res.Tokens {
		if !tok.DictionaryHit {
			t.Errorf("token %+v expected DictionaryHit=true", tok)
		}
	}
}

func TestNormalize_UkrainianFallsBackToSuffixStripping(t *testing.T) {
	store := testStore(t)
	// "Бондаренка" is not in any dictionary table (given name or surname),
	// so it must fall through Ukrainian's suffix table (ukSuffixes has no
	// native backend to try first - gomorphy's dictionary is Russian-only).
	res := Normalize(store, models.LangUK, "Бондаренка")
	if res.Normalized != "Бондаренк" {
		t.Errorf("Normalized = %q, want %q (final \"а\" stripped)", res.Normalized, "Бондаренк")
	}
}

func TestStripSuffix_LeavesShortTokensUntouched(t *testing.T) {
	// "Ира" is only 3 runes, below stripSuffix's 4-rune floor, so it must
	// return unchanged regardless of any matching suffix entry.
	if got := stripSuffix(models.LangRU, "Ира"); got != "Ира" {
		t.Errorf("stripSuffix(%q) = %q, want unchanged", "Ира", got)
	}
}

func TestNativeLemmatize_NonRussianAlwaysMisses(t *testing.T) {
	if _, ok := nativeLemmatize(string(models.LangUK), "Коваленко"); ok {
		t.Error("expected nativeLemmatize to always miss for a non-Russian language")
	}
	if _, ok := nativeLemmatize(string(models.LangEN), "smith"); ok {
		t.Error("expected nativeLemmatize to always miss for English")
	}
}
