package dictionary

import "embed"

// dictFS embeds the static name/surname/stop-word/legal-entity/initials
// tables at compile time, the same way the teacher's
// internal/normalizer/rules_embed.go embeds its regex.yaml/unigram_map.yaml
// so the binary is self-contained with no runtime file dependency.
//
//go:embed data/names_uk.yaml data/names_ru.yaml data/surnames.yaml data/stopwords.yaml data/legal_entities.yaml data/initials.yaml data/regional.yaml
var dictFS embed.FS
