// Package orchestrator implements the pipeline sequencer (C11): it wires
// the language detector, reverse transliterator, Unicode normalizer,
// morphological normalizer, pattern extractor, canonicalizer, variant
// generator, embedding client, and smart filter into the single ordered
// pipeline described in spec §4.11, and owns the per-request cache and
// stats counters. Adapted from the teacher's AddressService, which played
// the same "sequence the sub-services, own the job/stats state" role for
// address parsing.
package orchestrator

import (
	"context"
	"crypto/sha256"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/dariapavlova02/sanctions-screen/app/config"
	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/dariapavlova02/sanctions-screen/app/services"
	"github.com/dariapavlova02/sanctions-screen/helpers/utils"
	"github.com/dariapavlova02/sanctions-screen/internal/canonical"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
	"github.com/dariapavlova02/sanctions-screen/internal/filter"
	"github.com/dariapavlova02/sanctions-screen/internal/langdetect"
	"github.com/dariapavlova02/sanctions-screen/internal/morphology"
	"github.com/dariapavlova02/sanctions-screen/internal/pattern"
	"github.com/dariapavlova02/sanctions-screen/internal/pipeline"
	"github.com/dariapavlova02/sanctions-screen/internal/textnorm"
	"github.com/dariapavlova02/sanctions-screen/internal/translit"
	"github.com/dariapavlova02/sanctions-screen/internal/variant"
)

// Embedder is the C10 dependency the orchestrator calls at step 11. The
// concrete implementation is internal/embedding.Client; this narrow
// interface lets tests substitute a fake without importing the SDK.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, bool, error)
}

// Options are the per-request flags named in spec §4.11.
type Options struct {
	GenerateVariants       bool
	GenerateEmbeddings     bool
	ForceReprocess         bool
	KeepLegalEntityPrefix  bool
	PreferCompanyWhenBoth  bool
}

// Stats are the atomically-updated counters spec §5 requires: "stats
// counters updated atomically; readers see a consistent snapshot via
// copy".
type Stats struct {
	TotalRequests int64 `json:"total_requests"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	Errors        int64 `json:"errors"`
}

var fopRe = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(?:фоп|ип|fop|ip)(?:[^\p{L}\p{N}_]|$)`)

var quoteChars = []string{"\"", "'", "«", "»", "“", "”", "‘", "’"}

// docTailRe strips trailing "по договору №..." / "№ 123" tails from a
// company span, per spec §4.11 step 8.
var docTailRe = regexp.MustCompile(`(?i)\s*(по\s+договор\w*.*|№\s*\S+.*)$`)

// Orchestrator sequences C2-C10 per request. It is reentrant: one instance
// is shared across concurrent request goroutines, with all mutable state
// (stats, cache) guarded per spec §5. The dictionary store is read-only
// after Load and needs no lock.
type Orchestrator struct {
	store     *dictionary.Store
	cfg       config.ScoringConfig
	cache     services.ICacheService
	embedder  Embedder
	patterns  *pattern.Extractor
	filterSvc *filter.Filter
	logger    *zap.Logger

	mu    sync.Mutex // serializes cache writes per spec's single-writer note
	stats Stats
}

func New(store *dictionary.Store, cfg config.ScoringConfig, cache services.ICacheService, embedder Embedder, logger *zap.Logger) *Orchestrator {
	logger.Info("morphology backend", zap.Bool("native_ru_analyzer", morphology.NativeAvailable()))
	return &Orchestrator{
		store:     store,
		cfg:       cfg,
		cache:     cache,
		embedder:  embedder,
		patterns:  pattern.New(store),
		filterSvc: filter.New(store, cfg),
		logger:    logger,
	}
}

// Process runs the full pipeline for one text per spec §4.11. ctx governs
// cancellation: the orchestrator checks it before each suspension point
// (cache I/O, embedding calls) and returns without writing to cache if it
// has already been cancelled.
func (o *Orchestrator) Process(ctx context.Context, text string, opts Options) (*models.ProcessingResult, error) {
	atomic.AddInt64(&o.stats.TotalRequests, 1)
	start := time.Now()
	requestID := utils.GenerateUUID()

	if strings.TrimSpace(text) == "" {
		atomic.AddInt64(&o.stats.Errors, 1)
		return nil, pipeline.ErrInput
	}

	// Step 1: cache lookup by fingerprint.
	cacheKey := fingerprintRequest(text, opts.GenerateVariants, opts.GenerateEmbeddings)
	if !opts.ForceReprocess && o.cache != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if cached, found, err := o.cache.Get(ctx, cacheKey); err == nil && found {
			atomic.AddInt64(&o.stats.CacheHits, 1)
			return cached, nil
		}
	}
	atomic.AddInt64(&o.stats.CacheMisses, 1)

	result := &models.ProcessingResult{RequestID: requestID, Original: text}

	// Step 2: detect language.
	langResult := langdetect.Detect(text)
	result.Language = langResult.Language
	result.LanguageConfidence = langResult.Confidence

	working := text

	// Step 3: reverse-transliterate if romanized indicators present.
	if transliterated, changed := translit.Transliterate(o.store, working); changed {
		working = transliterated
	}

	// Step 4: Unicode normalize, non-aggressive.
	normResult := textnorm.Normalize(working, false)
	working = normResult.Normalized

	// Step 5: morphological normalization with the detected language.
	morphResult := morphology.Normalize(o.store, result.Language, working)
	working = morphResult.Normalized
	result.Errors = append(result.Errors, morphResult.Errors...)

	// Step 6: extract patterns; canonicalize a person span if one exists.
	patterns := o.patterns.Extract(working, result.Language)
	personSpan, _, hasPerson := bestPersonSpan(patterns)
	companySpan, hasCompany := bestCompanySpan(patterns)

	var personCanonical string
	if hasPerson {
		personCanonical = o.canonicalizePerson(personSpan, result.Language)
	}

	// Step 7: FOP/IP special case overrides the person span.
	if loc := fopRe.FindStringIndex(working); loc != nil {
		tail := strings.TrimSpace(working[loc[1]:])
		if tail != "" {
			personCanonical = o.canonicalizePerson(tail, result.Language)
			hasPerson = true
			result.EntityType = models.EntityPerson
		}
	}

	var companyNormalized string
	if hasCompany && result.EntityType == "" {
		// Step 8: company extraction/normalization.
		companyNormalized = normalizeCompanyName(o.store, companySpan, result.Language, opts.KeepLegalEntityPrefix)
	}

	if result.EntityType == "" {
		switch {
		case hasPerson && hasCompany:
			result.EntityType = models.EntityPerson
		case hasPerson:
			result.EntityType = models.EntityPerson
		case hasCompany:
			result.EntityType = models.EntityCompany
		}
	}

	// Step 9: smart-filter routing. The filter always scores the text; its
	// PreferCompany flag only has an effect when both spans are present.
	decision := o.filterSvc.Decide(working, opts.PreferCompanyWhenBoth)
	result.Decision = &decision
	preferCompany := hasPerson && hasCompany && decision.PreferCompany

	// Success requires an actually-produced canonical/company name per the
	// ProcessingResult invariant (success=true => normalized is that form,
	// never a bare suffix-stripped passthrough of the input). Text with no
	// detected person or company span - e.g. "сьогодні" - is not an error,
	// just nothing to screen: it reports success=false with no variants.
	switch {
	case preferCompany && companyNormalized != "":
		result.Normalized = companyNormalized
		result.EntityType = models.EntityCompany
		result.Success = true
	case personCanonical != "":
		result.Normalized = personCanonical
		result.Success = true
	case companyNormalized != "":
		result.Normalized = companyNormalized
		result.Success = true
	default:
		result.Normalized = working
		result.Success = false
	}

	if result.Success && result.Normalized == "" {
		result.Success = false
		result.Errors = append(result.Errors, "pipeline produced an empty normalized form")
	}

	// Step 10: generate variants, capped at the configured MaxVariants (50 when unset).
	if opts.GenerateVariants && result.Success {
		maxVariants := o.cfg.MaxVariants
		if maxVariants <= 0 {
			maxVariants = variant.DefaultMaxVariants
		}
		records := variant.Generate(o.store, result.Normalized, result.Language, maxVariants)
		result.Variants = make([]string, len(records))
		for i, r := range records {
			result.Variants[i] = r.Text
		}
	}

	// Step 11: embeddings, log-and-continue on failure.
	if opts.GenerateEmbeddings && result.Success && o.embedder != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		texts := append([]string{result.Normalized}, result.Variants...)
		vectors, ok, err := o.embedder.Embed(ctx, texts)
		if err != nil || !ok {
			o.logger.Warn("embedding call failed, continuing without embeddings",
				zap.String("request_id", requestID), zap.Error(pipeline.ErrEmbedding))
			result.Errors = append(result.Errors, pipeline.ErrEmbedding.Error()+": "+errString(err))
		} else {
			result.Embeddings = vectors
		}
	}

	result.ProcessingTimeSec = time.Since(start).Seconds()

	// Step 12: cache and return. Skip the write if the context was
	// cancelled mid-pipeline per §5's cancellation contract.
	if o.cache != nil && ctx.Err() == nil {
		o.mu.Lock()
		ttl := time.Duration(o.cfg.CacheTTLSec) * time.Second
		if err := o.cache.Set(ctx, cacheKey, result, ttl); err != nil {
			o.logger.Warn("cache write failed",
				zap.String("request_id", requestID), zap.Error(fmt.Errorf("%w: %v", pipeline.ErrCache, err)))
		}
		o.mu.Unlock()
	}

	return result, nil
}

// GetStats returns a consistent snapshot of the request counters.
func (o *Orchestrator) GetStats() Stats {
	return Stats{
		TotalRequests: atomic.LoadInt64(&o.stats.TotalRequests),
		CacheHits:     atomic.LoadInt64(&o.stats.CacheHits),
		CacheMisses:   atomic.LoadInt64(&o.stats.CacheMisses),
		Errors:        atomic.LoadInt64(&o.stats.Errors),
	}
}

func (o *Orchestrator) canonicalizePerson(span string, lang models.Language) string {
	res := canonical.Canonicalize(o.store, span, lang)
	if res.Canonical != "" {
		return res.Canonical
	}

	// Retry once with dictionary stop-words stripped from the span.
	stripped := stripStopTokens(o.store, lang, span)
	if stripped == span || stripped == "" {
		return res.Canonical
	}
	retry := canonical.Canonicalize(o.store, stripped, lang)
	return retry.Canonical
}

func stripStopTokens(store *dictionary.Store, lang models.Language, text string) string {
	tokens := strings.Fields(text)
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if store.IsStop(lang, t) {
			continue
		}
		kept = append(kept, t)
	}
	return strings.Join(kept, " ")
}

// bestPersonSpan picks the highest-confidence "person span" for §4.11 step
// 6: every kind the pattern extractor emits except company_context.
func bestPersonSpan(patterns []models.NamePattern) (string, *models.NamePattern, bool) {
	var best *models.NamePattern
	for i := range patterns {
		p := &patterns[i]
		if p.Kind == models.KindCompanyContext {
			continue
		}
		if best == nil || p.Confidence > best.Confidence {
			best = p
		}
	}
	if best == nil {
		return "", nil, false
	}
	return best.Span, best, true
}

func bestCompanySpan(patterns []models.NamePattern) (string, bool) {
	var best *models.NamePattern
	for i := range patterns {
		p := &patterns[i]
		if p.Kind != models.KindCompanyContext {
			continue
		}
		if best == nil || p.Confidence > best.Confidence {
			best = p
		}
	}
	if best == nil {
		return "", false
	}
	return best.Span, true
}

// normalizeCompanyName applies spec §4.11 step 8: strip a trailing
// document reference, strip enclosing quotes, and drop the legal-entity
// prefix unless the caller asked to keep it.
func normalizeCompanyName(store *dictionary.Store, span string, lang models.Language, keepLegalEntityPrefix bool) string {
	name := docTailRe.ReplaceAllString(span, "")
	name = strings.TrimSpace(name)

	for _, q := range quoteChars {
		name = strings.Trim(name, q)
	}
	name = strings.TrimSpace(name)

	if !keepLegalEntityPrefix {
		tokens := strings.Fields(name)
		if len(tokens) > 0 {
			for _, entity := range store.LegalEntities(lang) {
				if strings.EqualFold(tokens[0], entity) {
					name = strings.TrimSpace(strings.Join(tokens[1:], " "))
					break
				}
			}
		}
	}

	for _, q := range quoteChars {
		name = strings.Trim(name, q)
	}
	return strings.TrimSpace(name)
}

// fingerprintRequest hashes (text, generate_variants, generate_embeddings)
// into the cache key named by spec §4.11 step 1.
func fingerprintRequest(text string, generateVariants, generateEmbeddings bool) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatBool(generateVariants)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatBool(generateEmbeddings)))
	return fmt.Sprintf("req:%x", h.Sum(nil))
}

func errString(err error) string {
	if err == nil {
		return "unknown"
	}
	return err.Error()
}
