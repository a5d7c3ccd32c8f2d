package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dariapavlova02/sanctions-screen/app/config"
	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
)

// excludedPatterns short-circuit straight to ALLOW: only digits, only
// punctuation, or a bare payment-generic word.
var excludedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`^[^\p{L}\d\s]+$`),
	regexp.MustCompile(`(?i)^(?:оплата|платеж|платіж|перевод|переказ)$`),
}

// Filter is the smart filter / decision logic (C9): it collects the four
// signal groups in parallel intent (sequential here — each detector is
// cheap and independent) and applies the weighted decision rule from
// SPEC_FULL.md/spec.md §4.9.
type Filter struct {
	cfg       config.ScoringConfig
	names     *NameDetector
	companies *CompanyDetector
	documents *DocumentDetector
	terrorism *TerrorismDetector
}

func New(store *dictionary.Store, cfg config.ScoringConfig) *Filter {
	return &Filter{
		cfg:       cfg,
		names:     NewNameDetector(store),
		companies: NewCompanyDetector(store),
		documents: NewDocumentDetector(),
		terrorism: NewTerrorismDetector(),
	}
}

// Decide applies the decision rule. preferCompanyWhenBoth is the policy
// flag from §4.9's person-vs-company routing; it is threaded through as
// PreferCompany on the result so the orchestrator can apply the routing.
func (f *Filter) Decide(text string, preferCompanyWhenBoth bool) models.DecisionResult {
	if isExcluded(text) {
		return models.DecisionResult{
			Decision: models.DecisionAllow, Confidence: 0, RiskLevel: models.RiskVeryLow,
			Reasoning: "excluded-text pattern matched",
		}
	}

	nameSig := f.names.Detect(text)
	companySig := f.companies.Detect(text)
	docSig := f.documents.Detect(text)
	terror := f.terrorism.Detect(text)

	highRisk := terror.confidence

	signals := map[string]models.SignalGroup{
		"names":     nameSig,
		"companies": companySig,
		"documents": docSig,
		"high_risk": {Confidence: highRisk, Signals: terror.matches, Count: len(terror.matches)},
	}

	if highRisk >= f.cfg.Thresholds.HighRiskBlock {
		return models.DecisionResult{
			Decision: models.DecisionBlock, Confidence: highRisk, RiskLevel: models.RiskCritical,
			Reasoning: fmt.Sprintf("high-risk term matched (%.2f >= %.2f)", highRisk, f.cfg.Thresholds.HighRiskBlock),
			Signals:   signals,
		}
	}
	if highRisk >= f.cfg.Thresholds.HighRiskReview {
		return models.DecisionResult{
			Decision: models.DecisionReview, Confidence: highRisk, RiskLevel: models.RiskHigh,
			Reasoning: fmt.Sprintf("high-risk term matched (%.2f >= %.2f)", highRisk, f.cfg.Thresholds.HighRiskReview),
			Signals:   signals,
		}
	}

	w := f.cfg.SignalWeights
	weightSum := w.Names + w.Companies + w.Documents
	W := 0.0
	if weightSum > 0 {
		W = (w.Names*nameSig.Confidence + w.Companies*companySig.Confidence + w.Documents*docSig.Confidence) / weightSum
	}

	th := f.cfg.Thresholds
	preferCompany := preferCompanyWhenBoth && nameSig.Count > 0 && companySig.Count > 0

	switch {
	case W >= th.FullSearchHigh:
		return decide(models.DecisionFullSearch, W, models.RiskMedium,
			fmt.Sprintf("weighted signal score %.2f >= %.2f (full search, high confidence)", W, th.FullSearchHigh),
			signals, preferCompany)
	case W >= th.FullSearchMedium:
		return decide(models.DecisionFullSearch, W, models.RiskMedium,
			fmt.Sprintf("weighted signal score %.2f >= %.2f (full search, medium confidence)", W, th.FullSearchMedium),
			signals, preferCompany)
	case W >= th.ReviewLow:
		return decide(models.DecisionReview, W, models.RiskLow,
			fmt.Sprintf("weighted signal score %.2f >= %.2f", W, th.ReviewLow),
			signals, preferCompany)
	default:
		return decide(models.DecisionAllow, W, models.RiskVeryLow,
			fmt.Sprintf("weighted signal score %.2f below review threshold", W),
			signals, preferCompany)
	}
}

func decide(decision models.DecisionType, conf float64, risk models.RiskLevel, reasoning string, signals map[string]models.SignalGroup, preferCompany bool) models.DecisionResult {
	return models.DecisionResult{
		Decision: decision, Confidence: conf, RiskLevel: risk,
		Reasoning: reasoning, Signals: signals, PreferCompany: preferCompany,
	}
}

func isExcluded(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	for _, re := range excludedPatterns {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}
