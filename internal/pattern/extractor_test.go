package pattern

import (
	"testing"

	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
)

func testExtractor(t *testing.T) *Extractor {
	t.Helper()
	store, err := dictionary.Load()
	if err != nil {
		t.Fatalf("dictionary.Load() error: %v", err)
	}
	return New(store)
}

func TestExtract_PaymentContext(t *testing.T) {
	e := testExtractor(t)
	patterns := e.Extract("Оплата від Петренко Сергій Миколайович", models.LangUK)

	found := false
	for _, p := range patterns {
		if p.Kind == models.KindPaymentContext {
			found = true
			if p.Confidence != 0.90 {
				t.Errorf("payment_context confidence = %v, want 0.90", p.Confidence)
			}
		}
	}
	if !found {
		t.Error("expected a payment_context pattern")
	}
}

func TestExtract_CompanyContext(t *testing.T) {
	e := testExtractor(t)
	patterns := e.Extract(`Оплата для ТОВ Будівельник.`, models.LangUK)

	found := false
	for _, p := range patterns {
		if p.Kind == models.KindCompanyContext {
			found = true
			if p.Confidence != 0.85 {
				t.Errorf("company_context confidence = %v, want 0.85", p.Confidence)
			}
		}
	}
	if !found {
		t.Error("expected a company_context pattern")
	}
}

func TestExtract_DictionaryNameAndSurname(t *testing.T) {
	e := testExtractor(t)
	patterns := e.Extract("Іван Коваленко", models.LangUK)

	var sawName, sawSurname bool
	for _, p := range patterns {
		switch p.Kind {
		case models.KindDictionaryName:
			sawName = true
		case models.KindDictionarySurname:
			sawSurname = true
		}
	}
	if !sawName {
		t.Error("expected a dictionary_name pattern for Іван")
	}
	if !sawSurname {
		t.Error("expected a dictionary_surname pattern for Коваленко")
	}
}

func TestExtract_DeduplicatesBySpanKindLanguage(t *testing.T) {
	e := testExtractor(t)
	patterns := e.Extract("Іван Іван Іван", models.LangUK)

	count := 0
	for _, p := range patterns {
		if p.Kind == models.KindDictionaryName {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one deduplicated dictionary_name pattern, got %d", count)
	}
}

func TestExtract_EmptyTextProducesNoPatterns(t *testing.T) {
	e := testExtractor(t)
	if patterns := e.Extract("", models.LangUK); len(patterns) != 0 {
		t.Errorf("expected no patterns for empty text, got %d", len(patterns))
	}
}
