package retrieval

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dariapavlova02/sanctions-screen/app/config"
	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/dariapavlova02/sanctions-screen/app/services"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
	"github.com/dariapavlova02/sanctions-screen/internal/orchestrator"
)

// noopCache never caches, so every query hits the fake embedder fresh.
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string) (*models.ProcessingResult, bool, error) {
	return nil, false, nil
}
func (noopCache) Set(ctx context.Context, key string, result *models.ProcessingResult, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, key string) error { return nil }
func (noopCache) Clear(ctx context.Context) error              { return nil }
func (noopCache) GetStats(ctx context.Context) (*services.CacheStats, error) {
	return &services.CacheStats{}, nil
}
func (noopCache) Exists(ctx context.Context, key string) (bool, error)      { return false, nil }
func (noopCache) GetTTL(ctx context.Context, key string) (time.Duration, error) { return 0, nil }
func (noopCache) Close() error                                              { return nil }

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, bool, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, true, nil
}

// fakeSearchClient lets each of the four lookups be scripted independently,
// including returning an error to exercise the "log and continue" path.
type fakeSearchClient struct {
	entityHits, variantHits, parentChildHits, lexHits []Hit
	entityErr                                         error
}

func (f *fakeSearchClient) EntityKNN(ctx context.Context, vector []float32, k int, minScore float64) ([]Hit, error) {
	if f.entityErr != nil {
		return nil, f.entityErr
	}
	return f.entityHits, nil
}
func (f *fakeSearchClient) VariantKNN(ctx context.Context, vector []float32, k int, minScore float64) ([]Hit, error) {
	return f.variantHits, nil
}
func (f *fakeSearchClient) ParentChildKNN(ctx context.Context, vector []float32, k int, minScore float64) ([]Hit, error) {
	return f.parentChildHits, nil
}
func (f *fakeSearchClient) LexicalMultiMatch(ctx context.Context, query string, k int, minScore float64) ([]Hit, error) {
	return f.lexHits, nil
}

func testCoordinator(t *testing.T, client SearchClient) *Coordinator {
	t.Helper()
	store, err := dictionary.Load()
	if err != nil {
		t.Fatalf("dictionary.Load() error: %v", err)
	}
	cfg := config.DefaultScoringConfig()
	logger := zap.NewNop()
	orch := orchestrator.New(store, cfg, noopCache{}, fakeEmbedder{}, logger)
	return NewCoordinator(orch, client, cfg, logger)
}

func TestSearch_FusesVectorAndLexicalScoresForSameEntity(t *testing.T) {
	client := &fakeSearchClient{
		entityHits: []Hit{{EntityID: "e1", Score: 0.9}},
		lexHits:    []Hit{{EntityID: "e1", Score: 0.6}},
	}
	coord := testCoordinator(t, client)

	results, err := coord.Search(context.Background(), "Іван Петренко", 10, 0.0, IndexBoth)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 fused result, got %d", len(results))
	}
	r := results[0]
	want := config.DefaultScoringConfig().Weights.VectorWeight*0.9 + config.DefaultScoringConfig().Weights.TextWeight*0.6
	if r.Score < want-1e-9 || r.Score > want+1e-9 {
		t.Errorf("fused Score = %v, want %v", r.Score, want)
	}
}

func TestSearch_VectorOnlyHitUsesRawVectorScore(t *testing.T) {
	client := &fakeSearchClient{
		entityHits: []Hit{{EntityID: "e2", Score: 0.8}},
	}
	coord := testCoordinator(t, client)

	results, err := coord.Search(context.Background(), "Іван Петренко", 10, 0.0, IndexEntities)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 1 || results[0].Score != 0.8 {
		t.Fatalf("expected a single vector-only hit at score 0.8, got %+v", results)
	}
}

func TestSearch_EntityKNNFailureStillReturnsLexicalResults(t *testing.T) {
	client := &fakeSearchClient{
		entityErr: context.DeadlineExceeded,
		lexHits:   []Hit{{EntityID: "e3", Score: 0.4}},
	}
	coord := testCoordinator(t, client)

	results, err := coord.Search(context.Background(), "Іван Петренко", 10, 0.0, IndexBoth)
	if err != nil {
		t.Fatalf("Search() must not fail when one retrieval call errors, got: %v", err)
	}
	if len(results) != 1 || results[0].EntityID != "e3" {
		t.Fatalf("expected the lexical hit to survive the entity kNN failure, got %+v", results)
	}
}

func TestSearch_ResultsAreSortedDescendingAndCappedAtK(t *testing.T) {
	client := &fakeSearchClient{
		entityHits: []Hit{
			{EntityID: "low", Score: 0.2},
			{EntityID: "high", Score: 0.9},
			{EntityID: "mid", Score: 0.5},
		},
	}
	coord := testCoordinator(t, client)

	results, err := coord.Search(context.Background(), "Іван Петренко", 2, 0.0, IndexEntities)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected results capped at k=2, got %d", len(results))
	}
	if results[0].EntityID != "high" || results[1].EntityID != "mid" {
		t.Errorf("expected results sorted by descending score, got %+v", results)
	}
}
