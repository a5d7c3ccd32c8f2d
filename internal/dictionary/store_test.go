package dictionary

import (
	"testing"

	"github.com/dariapavlova02/sanctions-screen/app/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return s
}

func TestLookupCanonical(t *testing.T) {
	s := testStore(t)

	cases := []struct {
		lang models.Language
		tok  string
		want string
	}{
		{models.LangUK, "Сергій", "Сергій"},
		{models.LangUK, "Сержик", "Сергій"},  // diminutive
		{models.LangUK, "Serhii", "Сергій"},  // transliteration
		{models.LangRU, "Сірко", "Сергій"},   // uk-only diminutive, resolved via slavic fallback
		{models.LangUK, "ваня", "Іван"},      // case-insensitive diminutive
	}

	for _, c := range cases {
		got, ok := s.LookupCanonical(c.lang, c.tok)
		if !ok {
			t.Errorf("LookupCanonical(%v, %q): not found", c.lang, c.tok)
			continue
		}
		if got != c.want {
			t.Errorf("LookupCanonical(%v, %q) = %q, want %q", c.lang, c.tok, got, c.want)
		}
	}
}

func TestLookupCanonical_Miss(t *testing.T) {
	s := testStore(t)
	if _, ok := s.LookupCanonical(models.LangUK, "Zzzznotaname"); ok {
		t.Error("expected a miss for an unknown token")
	}
}

func TestIsKnownSurname(t *testing.T) {
	s := testStore(t)
	if _, ok := s.IsKnownSurname(models.LangUK, "Коваленко"); !ok {
		t.Error("expected Коваленко to be a known Ukrainian surname")
	}
	if _, ok := s.IsKnownSurname(models.LangRU, "Коваленко"); ok {
		t.Error("Коваленко is only seeded under uk, not ru")
	}
}

func TestIsStop_UnionsRussianAndUkrainian(t *testing.T) {
	s := testStore(t)
	if !s.IsStop(models.LangRU, "переказ") {
		t.Error("IsStop(ru, переказ) should union in the uk stop-word table")
	}
	if !s.IsStop(models.LangUK, "платеж") {
		t.Error("IsStop(uk, платеж) should union in the ru stop-word table")
	}
	if s.IsStop(models.LangEN, "оплата") {
		t.Error("IsStop(en, ...) must not fall back to Slavic tables")
	}
}

func TestLegalEntitiesAndLongPhrases(t *testing.T) {
	s := testStore(t)
	entities := s.LegalEntities(models.LangUK)
	found := false
	for _, e := range entities {
		if e == "ФОП" {
			found = true
		}
	}
	if !found {
		t.Error(`expected "ФОП" in uk legal entities`)
	}

	phrases := s.LongPhrases(models.LangRU)
	if len(phrases) == 0 {
		t.Error("expected nonempty long phrases for ru")
	}
}

func TestHasUKSurnameSuffix(t *testing.T) {
	s := testStore(t)
	if !s.HasUKSurnameSuffix("Коваленко") {
		t.Error(`expected "Коваленко" to carry a uk surname suffix`)
	}
	if s.HasUKSurnameSuffix("Smith") {
		t.Error(`"Smith" should not carry a uk surname suffix`)
	}
}

func TestGenderSuffixRules(t *testing.T) {
	s := testStore(t)
	rules := s.GenderSuffixRules(models.LangRU)
	if len(rules) == 0 {
		t.Fatal("expected nonempty ru gender suffix rules")
	}
	if rules[0].Masc != "ский" || rules[0].Femn != "ская" {
		t.Errorf("unexpected first rule: %+v", rules[0])
	}
}

func TestDiminutivesAndTransliterationsOf(t *testing.T) {
	s := testStore(t)
	dims := s.DiminutivesOf(models.LangUK, "Іван")
	if len(dims) == 0 {
		t.Fatal("expected nonempty diminutives for Іван")
	}
	translits := s.TransliterationsOf(models.LangUK, "Іван")
	found := false
	for _, tr := range translits {
		if tr == "Ivan" {
			found = true
		}
	}
	if !found {
		t.Error(`expected "Ivan" among Іван's transliterations`)
	}
}

func TestPaymentTriggersAndCompanyPrepositions(t *testing.T) {
	s := testStore(t)
	if len(s.PaymentTriggers(models.LangUK)) == 0 {
		t.Error("expected nonempty uk payment triggers")
	}
	if len(s.CompanyContextPrepositions(models.LangRU)) == 0 {
		t.Error("expected nonempty ru company context prepositions")
	}
}
