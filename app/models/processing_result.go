// Package models holds the tagged records that flow through the screening
// pipeline, in place of the dynamic, duck-typed result dicts of the source
// this module was distilled from.
package models

// Gender of a personal name, as carried by a dictionary entry.
type Gender string

const (
	GenderMasc    Gender = "masc"
	GenderFemn    Gender = "femn"
	GenderNeutral Gender = "neut"
	GenderUnknown Gender = "unk"
)

// Language is one of the four buckets the detector can report.
type Language string

const (
	LangRU    Language = "ru"
	LangUK    Language = "uk"
	LangEN    Language = "en"
	LangOther Language = "other"
)

// NameEntry is one canonical name per language, with its known alternate
// forms. canonical is always the nominative singular form; Variants,
// Diminutives, Transliterations and Declensions may include canonical
// itself. All arrays are case-preserving, but lookups against them are
// case-insensitive.
type NameEntry struct {
	Canonical       string   `yaml:"canonical" json:"canonical"`
	Gender          Gender   `yaml:"gender" json:"gender"`
	Variants        []string `yaml:"variants" json:"variants"`
	Diminutives     []string `yaml:"diminutives" json:"diminutives"`
	Transliterations []string `yaml:"transliterations" json:"transliterations"`
	Declensions     []string `yaml:"declensions" json:"declensions"`
}

// PatternKind tags the NamePattern spans emitted by the pattern extractor.
type PatternKind string

const (
	KindFullName        PatternKind = "full_name"
	KindInitialsSurname  PatternKind = "initials_surname"
	KindSurnameInitials  PatternKind = "surname_initials"
	KindDictionaryName   PatternKind = "dictionary_name"
	KindDictionarySurname PatternKind = "dictionary_surname"
	KindPaymentContext   PatternKind = "payment_context"
	KindCompanyContext   PatternKind = "company_context"
	KindPositionBased    PatternKind = "position_based"
)

// NamePattern is a single typed span found by the pattern extractor.
// Confidence is a monotone score within a Kind, not comparable across kinds
// without calibration.
type NamePattern struct {
	Span       string      `json:"span"`
	Kind       PatternKind `json:"kind"`
	Language   Language    `json:"language"`
	Confidence float64     `json:"confidence"`
	Source     string      `json:"source"`
	CreatedAt  int64       `json:"created_at"` // unix seconds, stamped by the caller
}

// ProcessingResult is the per-request outcome of the full pipeline.
// Invariant: if Success then Normalized is non-empty and equals the
// canonical or company-normalized form; if not Success then Variants is
// empty.
type ProcessingResult struct {
	RequestID          string   `json:"request_id"`
	Original           string   `json:"original"`
	Normalized         string   `json:"normalized"`
	Language           Language `json:"language"`
	LanguageConfidence float64  `json:"language_confidence"`
	EntityType         string   `json:"entity_type,omitempty"` // "person" | "company" | ""
	Variants           []string `json:"variants"`
	Embeddings         [][]float32 `json:"embeddings,omitempty"`
	ProcessingTimeSec  float64  `json:"processing_time_sec"`
	Success            bool     `json:"success"`
	Errors             []string `json:"errors,omitempty"`
	Decision           *DecisionResult `json:"decision,omitempty"`
}

// VariantRecord is one indexed alternative spelling of an entity.
// Weight convention: 1.0 primary normalized form, 0.8 generated variant,
// 0.7 Arabic->Latin, 0.6 Cyrillic->Latin transliteration.
type VariantRecord struct {
	ParentID string    `json:"parent_id"`
	Text     string    `json:"text"`
	Lang     Language  `json:"lang"`
	Weight   float64   `json:"weight"`
	Vector   []float32 `json:"vector,omitempty"`
}

const (
	WeightPrimary             = 1.0
	WeightGeneratedVariant    = 0.8
	WeightArabicToLatin       = 0.7
	WeightCyrillicToLatin     = 0.6
)

// CacheEntry is one entry of the orchestrator's per-request result cache.
// Fingerprint is a hash over (text, generate_variants, generate_embeddings).
type CacheEntry struct {
	Key        string           `json:"key" bson:"key"`
	Value      ProcessingResult `json:"value" bson:"value"`
	InsertedAt int64            `json:"inserted_at" bson:"inserted_at"` // unix seconds
	TTLSec     int              `json:"ttl_sec" bson:"ttl_sec"`
}

// Expired reports whether the entry's TTL has elapsed as of nowUnix.
func (c CacheEntry) Expired(nowUnix int64) bool {
	return nowUnix-c.InsertedAt > int64(c.TTLSec)
}

// EntityType values for EntityDocument.
const (
	EntityPerson    = "person"
	EntityCompany   = "company"
	EntityTerrorism = "terrorism"
)

// EntityDocument is a sanctioned entity record as persisted by the (out of
// scope) bulk loader and consumed by the hybrid retrieval coordinator.
// Invariant: Vector equals the first Variant's vector, and len(Vector)
// equals the configured embedding dimension (384 in the reference corpus).
type EntityDocument struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	NameEN     string          `json:"name_en,omitempty"`
	NameRU     string          `json:"name_ru,omitempty"`
	EntityType string          `json:"entity_type"`
	Source     string          `json:"source,omitempty"`
	Status     string          `json:"status,omitempty"`
	Vector     []float32       `json:"vector,omitempty"`
	Variants   []VariantRecord `json:"variants"`

	Birthdate string `json:"birthdate,omitempty"`
	ITN       string `json:"itn,omitempty"`
	TaxNumber string `json:"tax_number,omitempty"`
	RegNumber string `json:"reg_number,omitempty"`
	Address   string `json:"address,omitempty"`
}
