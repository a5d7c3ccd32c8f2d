package models

// DecisionType is the smart filter's routing verdict for a text.
type DecisionType string

const (
	DecisionAllow      DecisionType = "ALLOW"
	DecisionFullSearch DecisionType = "FULL_SEARCH"
	DecisionReview     DecisionType = "REVIEW"
	DecisionBlock      DecisionType = "BLOCK"
)

// RiskLevel supplements DecisionType with a finer-grained advisory signal,
// mirroring the source's decision_logic risk tiers. It does not replace the
// four-valued DecisionType the spec's decision rule produces.
type RiskLevel string

const (
	RiskVeryLow  RiskLevel = "very_low"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// SignalGroup is the output of one of the four parallel signal detectors
// (names, companies, documents, high-risk terms) the smart filter collects.
type SignalGroup struct {
	Confidence float64  `json:"confidence"`
	Signals    []string `json:"signals"`
	Count      int      `json:"count"`
}

// DecisionResult is the smart filter's full verdict for one input text.
type DecisionResult struct {
	Decision      DecisionType       `json:"decision"`
	Confidence    float64            `json:"confidence"`
	RiskLevel     RiskLevel          `json:"risk_level"`
	Reasoning     string             `json:"reasoning"`
	Signals       map[string]SignalGroup `json:"signals"`
	PreferCompany bool               `json:"prefer_company,omitempty"`
}
