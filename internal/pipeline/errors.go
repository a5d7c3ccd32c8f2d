// Package pipeline defines the shared error taxonomy for the screening
// pipeline: named sentinel errors instead of ad-hoc strings, so callers
// can `errors.Is` a stage failure the way the teacher's MatchStrategy and
// QualityFlag enums give named, comparable values instead of bare strings.
package pipeline

import "errors"

var (
	ErrInput              = errors.New("pipeline: invalid input")
	ErrLanguageDetection   = errors.New("pipeline: language detection failed")
	ErrNormalization       = errors.New("pipeline: normalization failed")
	ErrVariantGeneration   = errors.New("pipeline: variant generation failed")
	ErrEmbedding           = errors.New("pipeline: embedding unavailable")
	ErrCache               = errors.New("pipeline: cache operation failed")
	ErrRetrieval           = errors.New("pipeline: retrieval call failed")
)
