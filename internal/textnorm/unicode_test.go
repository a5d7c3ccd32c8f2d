package textnorm

import "testing"

func TestNormalize_CollapsesWhitespaceAndTypographicMarks(t *testing.T) {
	res := Normalize("Петренко  Іван   ‘Олегович’", false)
	want := "Петренко Іван 'Олегович'"
	if res.Normalized != want {
		t.Errorf("Normalize() = %q, want %q", res.Normalized, want)
	}
	if res.Changes == 0 {
		t.Error("expected a nonzero change count")
	}
}

func TestNormalize_NeverTransliteratesCyrillicInNonAggressiveMode(t *testing.T) {
	res := Normalize("Коваленко", false)
	if res.Normalized != "Коваленко" {
		t.Errorf("non-aggressive normalize must preserve Cyrillic, got %q", res.Normalized)
	}
}

func TestNormalize_AggressiveLowercasesAndStripsDiacritics(t *testing.T) {
	res := Normalize("Ángel López", true)
	if res.Normalized != "angel lopez" {
		t.Errorf("Normalize(aggressive) = %q, want %q", res.Normalized, "angel lopez")
	}
}

func TestNormalize_StripsZeroWidthCharacters(t *testing.T) {
	res := Normalize("Іван​Петренко", false)
	if res.Normalized != "ІванПетренко" {
		t.Errorf("Normalize() = %q, want zero-width stripped", res.Normalized)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	res := Normalize("", false)
	if res.Normalized != "" || res.Changes != 0 || res.Confidence != 1.0 {
		t.Errorf("Normalize(\"\") = %+v, want zero value with confidence 1.0", res)
	}
}

func TestStripDiacritics(t *testing.T) {
	if got := StripDiacritics("Ángel"); got != "Angel" {
		t.Errorf("StripDiacritics(%q) = %q, want %q", "Ángel", got, "Angel")
	}
	if got := StripDiacritics("Петренко"); got != "Петренко" {
		t.Errorf("StripDiacritics must leave Петренко (no combining marks) untouched, got %q", got)
	}
}
