package canonical

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

func TestCanonicalize_DictionaryNameAndSurname(t *testing.T) {
	store := testStore(t)
	res := Canonicalize(store, "Іван Коваленко", models.LangUK)
	if res.Canonical != "Іван Коваленко" {
		t.Errorf("Canonicalize() = %q, want %q", res.Canonical, "Іван Коваленко")
	}
}

func TestCanonicalize_SwapsSurnameFirstOrder(t *testing.T) {
	store := testStore(t)
	res := Canonicalize(store, "Коваленко Сергій", models.LangUK)
	if res.Canonical != "Сергій Коваленко" {
		t.Errorf("Canonicalize() = %q, want %q", res.Canonical, "Сергій Коваленко")
	}
}

func TestCanonicalize_ExpandsInitial(t *testing.T) {
	store := testStore(t)
	res := Canonicalize(store, "С. Коваленко", models.LangUK)
	if res.Canonical == "С Коваленко" || res.Canonical == "" {
		t.Errorf("Canonicalize() = %q, expected the initial to be expanded", res.Canonical)
	}
}

func TestCanonicalize_AppliesFeminineSurnameSuffix(t *testing.T) {
	store := testStore(t)
	res := Canonicalize(store, "Дарья Покровский", models.LangRU)
	if res.Canonical != "Дарья Покровская" {
		t.Errorf("Canonicalize() = %q, want %q", res.Canonical, "Дарья Покровская")
	}
}

func TestCanonicalize_SingleTokenHasNoSurname(t *testing.T) {
	store := testStore(t)
	res := Canonicalize(store, "Іван", models.LangUK)
	if res.Canonical != "Іван" {
		t.Errorf("Canonicalize() = %q, want %q", res.Canonical, "Іван")
	}
}

func TestCanonicalize_EmptyInput(t *testing.T) {
	store := testStore(t)
	res := Canonicalize(store, "", models.LangUK)
	if res.Canonical != "" {
		t.Errorf("Canonicalize(\"\") = %q, want empty", res.Canonical)
	}
}

func TestFuzzyScore_IdenticalStringsScoreHighest(t *testing.T) {
	if got := fuzzyScore("Коваленко", "Коваленко"); got < 0.99 {
		t.Errorf("fuzzyScore(identical) = %v, want close to 1.0", got)
	}
	if got := fuzzyScore("Коваленко", ""); got != 0 {
		t.Errorf("fuzzyScore with an empty operand = %v, want 0", got)
	}
}

func TestFuzzyLookup_FindsCandidateForOneLetterTypo(t *testing.T) {
	store := testStore(t)
	// "Олександ" is "Олександр" with its final letter dropped - a single
	// edit away, and no dictionary entry on its own.
	got, ok := fuzzyLookup(store, models.LangUK, "Олександ")
	if !ok {
		t.Fatal("expected fuzzyLookup to accept a one-letter-short typo")
	}
	if got != "Олександр" {
		t.Errorf("fuzzyLookup() = %q, want %q", got, "Олександр")
	}
}

func TestFuzzyLookup_RejectsUnrelatedToken(t *testing.T) {
	store := testStore(t)
	if _, ok := fuzzyLookup(store, models.LangUK, "комп'ютер"); ok {
		t.Error("expected fuzzyLookup to reject a token unrelated to any known given name")
	}
}

func TestFuzzyLookup_EmptyTokenMisses(t *testing.T) {
	store := testStore(t)
	if _, ok := fuzzyLookup(store, models.LangUK, ""); ok {
		t.Error("expected fuzzyLookup(\"\") to miss")
	}
}

func TestCanonicalize_RecoversFromGivenNameTypo(t *testing.T) {
	store := testStore(t)
	res := Canonicalize(store, "Олександ Коваленко", models.LangUK)
	if res.Canonical != "Олександр Коваленко" {
		t.Errorf("Canonicalize() = %q, want the typo corrected to %q", res.Canonical, "Олександр Коваленко")
	}
}
