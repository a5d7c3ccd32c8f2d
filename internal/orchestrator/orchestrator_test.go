package orchestrator

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dariapavlova02/sanctions-screen/app/config"
	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/dariapavlova02/sanctions-screen/app/services"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
)

// fakeCache is an in-memory stand-in for services.ICacheService.
type fakeCache struct {
	mu    sync.Mutex
	items map[string]*models.ProcessingResult
}

func newFakeCache() *fakeCache { return &fakeCache{items: map[string]*models.ProcessingResult{}} }

func (c *fakeCache) Get(ctx context.Context, key string) (*models.ProcessingResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, result *models.ProcessingResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = result
	return nil
}
func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}
func (c *fakeCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = map[string]*models.ProcessingResult{}
	return nil
}
func (c *fakeCache) GetStats(ctx context.Context) (*services.CacheStats, error) {
	return &services.CacheStats{}, nil
}
func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok, nil
}
func (c *fakeCache) GetTTL(ctx context.Context, key string) (time.Duration, error) { return 0, nil }
func (c *fakeCache) Close() error                                                  { return nil }

// fakeEmbedder always succeeds, returning a fixed-width zero vector per text.
type fakeEmbedder struct{ calls int }

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, bool, error) {
	f.calls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, true, nil
}

// failingEmbedder always errors, exercising the orchestrator's
// log-and-continue embedding failure path.
type failingEmbedder struct{}

func (failingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, bool, error) {
	return nil, false, context.DeadlineExceeded
}

func testOrchestrator(t *testing.T, cache services.ICacheService, embedder Embedder) *Orchestrator {
	t.Helper()
	store, err := dictionary.Load()
	if err != nil {
		t.Fatalf("dictionary.Load() error: %v", err)
	}
	logger := zap.NewNop()
	return New(store, config.DefaultScoringConfig(), cache, embedder, logger)
}

func TestProcess_EmptyInputIsRejected(t *testing.T) {
	orch := testOrchestrator(t, newFakeCache(), nil)
	_, err := orch.Process(context.Background(), "   ", Options{})
	if err == nil {
		t.Fatal("expected an error for blank input")
	}
}

func TestProcess_PersonNameEndToEnd(t *testing.T) {
	orch := testOrchestrator(t, newFakeCache(), nil)
	res, err := orch.Process(context.Background(), "Оплата для Коваленко Сергій", Options{GenerateVariants: true})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected Success=true, errors: %v", res.Errors)
	}
	if res.Normalized == "" {
		t.Error("expected a nonempty normalized name")
	}
	if res.RequestID == "" {
		t.Error("expected a nonempty request id")
	}
	if len(res.Variants) == 0 {
		t.Error("expected at least one generated variant")
	}
}

func TestProcess_FOPOverridesToPerson(t *testing.T) {
	orch := testOrchestrator(t, newFakeCache(), nil)
	res, err := orch.Process(context.Background(), "переказ коштів ФОП Коваленко Сергій Миколайович", Options{})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if res.EntityType != models.EntityPerson {
		t.Errorf("EntityType = %v, want person for a FOP/IP payment", res.EntityType)
	}
}

func TestProcess_PlainTextWithNoEntitySpanIsNotSuccess(t *testing.T) {
	orch := testOrchestrator(t, newFakeCache(), nil)
	res, err := orch.Process(context.Background(), "сьогодні", Options{GenerateVariants: true})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if res.Success {
		t.Errorf("Success = true, want false for text with no detected person or company span")
	}
	if res.Decision == nil || res.Decision.Decision != models.DecisionAllow {
		t.Errorf("Decision = %+v, want ALLOW", res.Decision)
	}
	if len(res.Variants) != 0 {
		t.Errorf("Variants = %v, want none generated when Success=false", res.Variants)
	}
}

func TestProcess_CachesSecondCallAsHit(t *testing.T) {
	cache := newFakeCache()
	orch := testOrchestrator(t, cache, nil)
	ctx := context.Background()

	if _, err := orch.Process(ctx, "Іван Петренко", Options{}); err != nil {
		t.Fatalf("first Process() error: %v", err)
	}
	statsAfterFirst := orch.GetStats()
	if statsAfterFirst.CacheMisses != 1 {
		t.Fatalf("expected 1 cache miss after the first call, got %d", statsAfterFirst.CacheMisses)
	}

	if _, err := orch.Process(ctx, "Іван Петренко", Options{}); err != nil {
		t.Fatalf("second Process() error: %v", err)
	}
	stats := orch.GetStats()
	if stats.CacheHits != 1 {
		t.Errorf("expected 1 cache hit after a repeated call, got %d", stats.CacheHits)
	}
	if stats.TotalRequests != 2 {
		t.Errorf("expected 2 total requests, got %d", stats.TotalRequests)
	}
}

func TestProcess_ForceReprocessSkipsCache(t *testing.T) {
	cache := newFakeCache()
	orch := testOrchestrator(t, cache, nil)
	ctx := context.Background()

	if _, err := orch.Process(ctx, "Іван Петренко", Options{}); err != nil {
		t.Fatalf("first Process() error: %v", err)
	}
	if _, err := orch.Process(ctx, "Іван Петренко", Options{ForceReprocess: true}); err != nil {
		t.Fatalf("second Process() error: %v", err)
	}
	stats := orch.GetStats()
	if stats.CacheHits != 0 {
		t.Errorf("expected no cache hits when ForceReprocess is set, got %d", stats.CacheHits)
	}
}

func TestProcess_EmbeddingsPopulatedWhenRequested(t *testing.T) {
	embedder := &fakeEmbedder{}
	orch := testOrchestrator(t, newFakeCache(), embedder)
	res, err := orch.Process(context.Background(), "Іван Петренко", Options{GenerateEmbeddings: true})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if len(res.Embeddings) == 0 {
		t.Error("expected nonempty embeddings")
	}
	if embedder.calls != 1 {
		t.Errorf("expected exactly one embed call, got %d", embedder.calls)
	}
}

func TestProcess_EmbeddingFailureDoesNotFailRequest(t *testing.T) {
	orch := testOrchestrator(t, newFakeCache(), failingEmbedder{})
	res, err := orch.Process(context.Background(), "Іван Петренко", Options{GenerateEmbeddings: true})
	if err != nil {
		t.Fatalf("Process() should not fail when embedding fails, got error: %v", err)
	}
	if len(res.Embeddings) != 0 {
		t.Error("expected no embeddings when the embedder fails")
	}
	if len(res.Errors) == 0 {
		t.Error("expected a recorded error noting the embedding failure")
	}
}

func TestProcess_CancelledContextSkipsCacheWrite(t *testing.T) {
	cache := newFakeCache()
	orch := testOrchestrator(t, cache, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orch.Process(ctx, "Іван Петренко", Options{})
	if err == nil {
		t.Fatal("expected the cancelled context to surface an error from the cache lookup")
	}
	if len(cache.items) != 0 {
		t.Error("expected no cache write for a pre-cancelled request")
	}
}
