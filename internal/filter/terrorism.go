package filter

import "regexp"

// TerrorismDetector flags a short list of high-risk financing/weapons
// indicator terms, adapted from terrorism_detector.py's financing/weapons
// pattern groups. Per SPEC_FULL.md's open-question resolution this detector
// is advisory-only: its confidence feeds the high-risk signal group and has
// no standalone BLOCK authority beyond the existing high_risk >= 0.8 rule.
type TerrorismDetector struct {
	financingRes []*regexp.Regexp
	weaponsRes   []*regexp.Regexp
}

func NewTerrorismDetector() *TerrorismDetector {
	return &TerrorismDetector{
		financingRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:джихад|jihad|муджахид|mujahid|шахид|shahid)\b`),
			regexp.MustCompile(`(?i)\b(?:халифат|caliphate|emirate|эмират|имарат)\b`),
			regexp.MustCompile(`(?i)\b(?:закят|zakat)\s*(?:помощи|помощь|support|aid|relief)\b`),
		},
		weaponsRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:explosive|взрывчат|bomb|бомба|ied)\b`),
			regexp.MustCompile(`(?i)\b(?:ammunition|боеприпас|weapons|оружие)\b`),
		},
	}
}

func (d *TerrorismDetector) Detect(text string) signalHits {
	var hits []string
	hits = append(hits, findAll(d.financingRes, text)...)
	hits = append(hits, findAll(d.weaponsRes, text)...)
	if len(hits) == 0 {
		return signalHits{confidence: 0}
	}
	conf := 0.55 + float64(len(hits)-1)*0.1
	if conf > 0.95 {
		conf = 0.95
	}
	return signalHits{confidence: conf, matches: hits}
}

type signalHits struct {
	confidence float64
	matches    []string
}
