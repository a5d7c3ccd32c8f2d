package morphology

import (
	"strings"

	morph "github.com/jus1d/gomorphy"

	"github.com/dariapavlova02/sanctions-screen/app/models"
)

// NativeAvailable reports whether the embedded Russian analyzer loaded.
// gomorphy ships its OpenCorpora/pymorphy3 dictionary as compile-time
// go:embed data, so this only fails on a corrupt build, never on a missing
// runtime dependency. Exported so callers can log it once at startup.
func NativeAvailable() bool {
	_, err := morph.Default()
	return err == nil
}

// nativeLemmatize resolves token to its nominative singular form via
// gomorphy, replacing the suffix-stripping fallback whenever lang is
// Russian. gomorphy's embedded dictionary is Russian-only (OpenCorpora),
// so Ukrainian still falls through to stripSuffix's ukSuffixes table below.
func nativeLemmatize(lang, token string) (string, bool) {
	if lang != string(models.LangRU) {
		return "", false
	}
	a, err := morph.Default()
	if err != nil {
		return "", false
	}

	forms := a.WordForms(token)
	if len(forms) == 0 {
		return "", false
	}
	for _, form := range forms {
		tag := a.Tag(form)
		if strings.Contains(tag, "nomn") && strings.Contains(tag, "sing") {
			return form, true
		}
	}
	return "", false
}
