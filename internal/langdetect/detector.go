// Package langdetect implements the language detector (C2): a cheap,
// script-statistics classifier among {ru, uk, en, other}. It never
// suspends and never raises — empty input degrades to {other, 0.0}.
package langdetect

import (
	"strings"

	"github.com/dariapavlova02/sanctions-screen/app/models"
)

// Method tags how a Result was produced.
type Method string

const (
	MethodScriptStats Method = "script-stats"
	MethodFallback    Method = "fallback"
)

// Result is the detector's output.
type Result struct {
	Language   models.Language
	Confidence float64
	Method     Method
}

const (
	ukSpecific = "іїєґІЇЄҐ"
	ruSpecific = "ёъыэЁЪЫЭ"
)

// Detect classifies text among {ru, uk, en, other} by counting characters
// in disjoint classes, per spec §4.2.
func Detect(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Language: models.LangOther, Confidence: 0.0, Method: MethodFallback}
	}

	var ukCount, ruCount, cyrillicCount, latinCount, total int

	for _, r := range text {
		switch {
		case strings.ContainsRune(ukSpecific, r):
			ukCount++
			cyrillicCount++
			total++
		case strings.ContainsRune(ruSpecific, r):
			ruCount++
			cyrillicCount++
			total++
		case isCyrillic(r):
			cyrillicCount++
			total++
		case isLatin(r):
			latinCount++
			total++
		}
	}

	if total == 0 {
		return Result{Language: models.LangOther, Confidence: 0.0, Method: MethodFallback}
	}

	var lang models.Language
	var maxClass int

	switch {
	case ukCount > 0:
		lang = models.LangUK
		maxClass = cyrillicCount
	case ruCount > 0:
		lang = models.LangRU
		maxClass = cyrillicCount
	case cyrillicCount > latinCount:
		lang = models.LangRU
		maxClass = cyrillicCount
	case latinCount > 0:
		lang = models.LangEN
		maxClass = latinCount
	default:
		lang = models.LangOther
		maxClass = 0
	}

	confidence := float64(maxClass) / float64(total)
	if confidence < 0.2 {
		confidence = 0.2
	}
	if confidence > 1.0 {
		confidence = 1.0
	}

	return Result{Language: lang, Confidence: confidence, Method: MethodScriptStats}
}

func isCyrillic(r rune) bool {
	return (r >= 'А' && r <= 'я') || r == 'Ё' || r == 'ё'
}

func isLatin(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}
