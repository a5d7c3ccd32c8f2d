package langdetect

import (
	"testing"

	"github.com/dariapavlova02/sanctions-screen/app/models"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		text string
		want models.Language
	}{
		{"ukrainian specific letters", "Оплата за договором Івану Олеговичу", models.LangUK},
		{"generic cyrillic defaults to russian", "Оплата Сергею Ивановичу", models.LangRU},
		{"plain latin", "payment for services rendered", models.LangEN},
		{"empty input", "", models.LangOther},
		{"digits only", "12345", models.LangOther},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Detect(c.text)
			if got.Language != c.want {
				t.Errorf("Detect(%q).Language = %v, want %v", c.text, got.Language, c.want)
			}
		})
	}
}

func TestDetect_EmptyIsNeverConfident(t *testing.T) {
	got := Detect("   ")
	if got.Confidence != 0.0 {
		t.Errorf("expected zero confidence for blank input, got %v", got.Confidence)
	}
	if got.Method != MethodFallback {
		t.Errorf("expected fallback method for blank input, got %v", got.Method)
	}
}

func TestDetect_ConfidenceBounded(t *testing.T) {
	got := Detect("Коваленко Сергій Миколайович")
	if got.Confidence < 0.2 || got.Confidence > 1.0 {
		t.Errorf("confidence %v out of [0.2, 1.0] bounds", got.Confidence)
	}
}
