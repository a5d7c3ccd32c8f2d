package variant

import (
	"strings"
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

func TestGenerate_FirstRecordIsPrimary(t *testing.T) {
	store := testStore(t)
	records := Generate(store, "Сергій Коваленко", models.LangUK, 0)
	if len(records) == 0 {
		t.Fatal("expected at least one variant")
	}
	if records[0].Text != "Сергій Коваленко" || records[0].Weight != models.WeightPrimary {
		t.Errorf("first record = %+v, want the canonical form at primary weight", records[0])
	}
}

func TestGenerate_IncludesTransliteration(t *testing.T) {
	store := testStore(t)
	records := Generate(store, "Сергій Коваленко", models.LangUK, 0)

	found := false
	for _, r := range records {
		if r.Text == "Serhii Коваленко" {
			found = true
			if r.Weight != models.WeightGeneratedVariant {
				t.Errorf("transliteration record weight = %v, want %v", r.Weight, models.WeightGeneratedVariant)
			}
		}
	}
	if !found {
		t.Error(`expected a "Serhii Коваленко" transliteration variant`)
	}
}

func TestGenerate_IncludesCyrillicToLatinFold(t *testing.T) {
	store := testStore(t)
	// Шевченко has no names-table entry (only a surname membership
	// record), so it carries no declension/variant/transliteration
	// candidates and the Cyrillic->Latin fold cannot collide with one.
	records := Generate(store, "Шевченко", models.LangUK, 0)

	found := false
	for _, r := range records {
		if r.Weight == models.WeightCyrillicToLatin {
			found = true
		}
	}
	if !found {
		t.Error("expected one record carrying the Cyrillic->Latin weight")
	}
}

func TestGenerate_DedupsCaseInsensitively(t *testing.T) {
	store := testStore(t)
	records := Generate(store, "Іван", models.LangUK, 0)
	seen := map[string]int{}
	for _, r := range records {
		seen[strings.ToLower(r.Text)]++
	}
	for text, count := range seen {
		if count > 1 {
			t.Errorf("duplicate variant %q appeared %d times", text, count)
		}
	}
}

func TestGenerate_RespectsMaxVariants(t *testing.T) {
	store := testStore(t)
	records := Generate(store, "Сергій Коваленко", models.LangUK, 2)
	if len(records) > 2 {
		t.Errorf("Generate() returned %d records, want <= 2", len(records))
	}
}
