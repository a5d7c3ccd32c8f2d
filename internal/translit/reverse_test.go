package translit

import (
	"strings"
	"testing"

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

func TestTransliterate_NoIndicatorLeavesTextUnchanged(t *testing.T) {
	store := testStore(t)
	text := "Ivan Petrenko work agreement"
	got, changed := Transliterate(store, text)
	if changed {
		t.Error("expected changed=false without a payment-context indicator")
	}
	if got != text {
		t.Errorf("Transliterate() = %q, want unchanged %q", got, text)
	}
}

func TestTransliterate_PlatezhIndicatorMapsToCyrillic(t *testing.T) {
	store := testStore(t)
	got, changed := Transliterate(store, "platezh vanya petrenko")
	if !changed {
		t.Fatal("expected changed=true for a text containing 'platezh'")
	}
	want := "платеж ваня петренко"
	if got != want {
		t.Errorf("Transliterate() = %q, want %q", got, want)
	}
}

func TestTransliterate_NonASCIITokenPassesThrough(t *testing.T) {
	store := testStore(t)
	got, changed := Transliterate(store, "platezh Сергій")
	if !changed {
		t.Fatal("expected changed=true")
	}
	if !strings.Contains(got, "Сергій") {
		t.Errorf("Transliterate() = %q, want the non-ASCII token left untouched", got)
	}
}

func TestTransliterate_TargetLanguageAffectsDigraphMapping(t *testing.T) {
	store := testStore(t)

	ukGot, changed := Transliterate(store, "vid nye")
	if !changed {
		t.Fatal("expected changed=true for 'vid'")
	}
	if !strings.Contains(ukGot, "нє") {
		t.Errorf("Transliterate(vid ...) = %q, want it to contain the Ukrainian 'нє' mapping", ukGot)
	}

	ruGot, changed := Transliterate(store, "platezh nye")
	if !changed {
		t.Fatal("expected changed=true for 'platezh'")
	}
	if !strings.Contains(ruGot, "не") {
		t.Errorf("Transliterate(platezh ...) = %q, want it to contain the Russian 'не' mapping", ruGot)
	}
}
