package config

// ScoringWeights are the fusion constants inherited verbatim from the
// reference implementation. They are contracts for reproducibility, not
// claimed optima — never recompute or "improve" them in code that consumes
// this struct.
type ScoringWeights struct {
	// C12 hybrid retrieval score fusion: final = VectorWeight*vector + TextWeight*text.
	VectorWeight float64 `yaml:"vector_weight" json:"vector_weight"`
	TextWeight   float64 `yaml:"text_weight" json:"text_weight"`

	// C7 fuzzy-match fusion between Jaro-Winkler and Levenshtein similarity.
	// internal/canonical's fuzzyScore writes the same 0.7/0.3 as literals and
	// does not read these two fields.
	JaroWinklerWeight float64 `yaml:"jaro_winkler_weight" json:"jaro_winkler_weight"`
	LevenshteinWeight float64 `yaml:"levenshtein_weight" json:"levenshtein_weight"`

	// C8 variant weights by source.
	VariantPrimary         float64 `yaml:"variant_primary" json:"variant_primary"`
	VariantGenerated       float64 `yaml:"variant_generated" json:"variant_generated"`
	VariantArabicToLatin   float64 `yaml:"variant_arabic_to_latin" json:"variant_arabic_to_latin"`
	VariantCyrillicToLatin float64 `yaml:"variant_cyrillic_to_latin" json:"variant_cyrillic_to_latin"`
}

// DecisionThresholds are the smart filter's action cut points (spec 4.9).
type DecisionThresholds struct {
	HighRiskBlock       float64 `yaml:"high_risk_block" json:"high_risk_block"`
	HighRiskReview      float64 `yaml:"high_risk_review" json:"high_risk_review"`
	FullSearchHigh      float64 `yaml:"full_search_high" json:"full_search_high"`
	FullSearchMedium    float64 `yaml:"full_search_medium" json:"full_search_medium"`
	ReviewLow           float64 `yaml:"review_low" json:"review_low"`
}

// SignalWeights weight the {names, companies, documents} groups of the
// smart filter's weighted score W (spec 4.9).
type SignalWeights struct {
	Names     float64 `yaml:"names" json:"names"`
	Companies float64 `yaml:"companies" json:"companies"`
	Documents float64 `yaml:"documents" json:"documents"`
}

// PatternConfidence are the fixed base confidences per NamePattern kind
// (spec 4.6), listed in descending priority in the spec's table.
type PatternConfidence struct {
	PaymentContext    float64 `yaml:"payment_context" json:"payment_context"`
	CompanyContext    float64 `yaml:"company_context" json:"company_context"`
	DictionaryName    float64 `yaml:"dictionary_name" json:"dictionary_name"`
	DictionarySurname float64 `yaml:"dictionary_surname" json:"dictionary_surname"`
	FullName          float64 `yaml:"full_name" json:"full_name"`
	PositionBased     float64 `yaml:"position_based" json:"position_based"`
}

// ScoringConfig bundles the reproducibility contracts of §9. It is passed
// explicitly into constructors (the orchestrator, the filter, the
// retrieval coordinator) rather than read from a package-level global, per
// the design notes' instruction that module-level singletons become
// explicit process-wide state owned by the orchestrator constructor.
type ScoringConfig struct {
	Weights        ScoringWeights     `yaml:"weights" json:"weights"`
	Thresholds     DecisionThresholds `yaml:"thresholds" json:"thresholds"`
	SignalWeights  SignalWeights      `yaml:"signal_weights" json:"signal_weights"`
	PatternConf    PatternConfidence  `yaml:"pattern_confidence" json:"pattern_confidence"`
	MaxVariants    int                `yaml:"max_variants" json:"max_variants"`
	EmbeddingDim   int                `yaml:"embedding_dim" json:"embedding_dim"`
	CacheTTLSec    int                `yaml:"cache_ttl_sec" json:"cache_ttl_sec"`
	MaxConcurrent  int                `yaml:"max_concurrent" json:"max_concurrent"`
}

// DefaultScoringConfig returns the constants named verbatim by spec §4 and
// §9. Callers that load from YAML should unmarshal over a copy of this
// value so unset fields keep their spec-mandated defaults.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: ScoringWeights{
			VectorWeight:           0.7,
			TextWeight:             0.3,
			JaroWinklerWeight:      0.7,
			LevenshteinWeight:      0.3,
			VariantPrimary:         1.0,
			VariantGenerated:       0.8,
			VariantArabicToLatin:   0.7,
			VariantCyrillicToLatin: 0.6,
		},
		Thresholds: DecisionThresholds{
			HighRiskBlock:    0.8,
			HighRiskReview:   0.5,
			FullSearchHigh:   0.7,
			FullSearchMedium: 0.5,
			ReviewLow:        0.3,
		},
		SignalWeights: SignalWeights{
			Names:     0.7,
			Companies: 0.6,
			Documents: 0.8,
		},
		PatternConf: PatternConfidence{
			PaymentContext:    0.90,
			CompanyContext:    0.85,
			DictionaryName:    0.95,
			DictionarySurname: 0.95,
			FullName:          0.80,
			PositionBased:     0.60,
		},
		MaxVariants:   50,
		EmbeddingDim:  384,
		CacheTTLSec:   3600,
		MaxConcurrent: 10,
	}
}
