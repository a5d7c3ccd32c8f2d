// Package retrieval implements the hybrid retrieval coordinator (C12): kNN
// search over entity and variant vector indexes plus a lexical multi-match
// fallback, fused per spec §4.12. The Meilisearch-backed client is adapted
// from the teacher's internal/search.ClientWrapper, which wrapped the same
// meilisearch-go ServiceManager for administrative-unit lookups.
package retrieval

import (
	"context"
	"fmt"

	ms "github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// Hit is one scored match from a single retrieval call, keyed by the
// parent entity id (child/variant hits are already resolved to their
// parent before being returned).
type Hit struct {
	EntityID string
	Score    float64
}

// SearchClient is C12's retrieval dependency: four independent lookups,
// each allowed to fail independently per the "log and continue, partial
// results" failure policy in spec §4.12.
type SearchClient interface {
	EntityKNN(ctx context.Context, vector []float32, k int, minScore float64) ([]Hit, error)
	VariantKNN(ctx context.Context, vector []float32, k int, minScore float64) ([]Hit, error)
	ParentChildKNN(ctx context.Context, vector []float32, k int, minScore float64) ([]Hit, error)
	LexicalMultiMatch(ctx context.Context, query string, k int, minScore float64) ([]Hit, error)
}

// MeiliConfig names the indexes the coordinator searches.
type MeiliConfig struct {
	Host            string
	APIKey          string
	EntityIndex     string
	VariantIndex    string
	ParentChildIndex string
	Embedder        string // configured embedder name for Meilisearch hybrid search
}

// MeiliSearchClient is the meilisearch-go backed SearchClient.
type MeiliSearchClient struct {
	cli    ms.ServiceManager
	cfg    MeiliConfig
	logger *zap.Logger
}

func NewMeiliSearchClient(cfg MeiliConfig, logger *zap.Logger) *MeiliSearchClient {
	client := ms.New(cfg.Host, ms.WithAPIKey(cfg.APIKey))
	return &MeiliSearchClient{cli: client, cfg: cfg, logger: logger}
}

// EntityKNN issues a hybrid (vector) search against the entity index,
// field=vector, num_candidates=max(10k, 50) per spec §4.12 step 2.
func (c *MeiliSearchClient) EntityKNN(ctx context.Context, vector []float32, k int, minScore float64) ([]Hit, error) {
	return c.vectorSearch(ctx, c.cfg.EntityIndex, vector, k, minScore)
}

// VariantKNN searches the per-variant index; hits are already tagged with
// their parent entity id in the `parent_id` field, resolved below.
func (c *MeiliSearchClient) VariantKNN(ctx context.Context, vector []float32, k int, minScore float64) ([]Hit, error) {
	return c.vectorSearch(ctx, c.cfg.VariantIndex, vector, k, minScore)
}

// ParentChildKNN searches the parent-child index restricted to child
// documents (filter applied via the index's own routing scheme), each hit
// resolved to its parent.
func (c *MeiliSearchClient) ParentChildKNN(ctx context.Context, vector []float32, k int, minScore float64) ([]Hit, error) {
	return c.vectorSearch(ctx, c.cfg.ParentChildIndex, vector, k, minScore)
}

func (c *MeiliSearchClient) vectorSearch(ctx context.Context, index string, vector []float32, k int, minScore float64) ([]Hit, error) {
	if index == "" || len(vector) == 0 {
		return nil, nil
	}

	numCandidates := k * 10
	if numCandidates < 50 {
		numCandidates = 50
	}

	vec64 := make([]float64, len(vector))
	for i, f := range vector {
		vec64[i] = float64(f)
	}

	idx := c.cli.Index(index)
	req := &ms.SearchRequest{
		Limit:  int64(numCandidates),
		Vector: vec64,
		Hybrid: &ms.SearchRequestHybrid{
			SemanticRatio: 1.0,
			Embedder:      c.cfg.Embedder,
		},
		ShowRankingScore: true,
	}

	resp, err := idx.Search("", req)
	if err != nil {
		return nil, fmt.Errorf("retrieval: vector search on %s: %w", index, err)
	}

	return parseHits(resp, minScore, k)
}

// LexicalMultiMatch issues the always-on lexical fallback: multi-match
// over name/name_en/name_ru/entity_type/source plus nested variants.text,
// with Meilisearch's built-in typo tolerance standing in for
// fuzziness=AUTO and its phrase/exactness ranking rule for phrase boosts.
func (c *MeiliSearchClient) LexicalMultiMatch(ctx context.Context, query string, k int, minScore float64) ([]Hit, error) {
	if c.cfg.EntityIndex == "" || query == "" {
		return nil, nil
	}

	idx := c.cli.Index(c.cfg.EntityIndex)
	req := &ms.SearchRequest{
		Limit:                int64(k),
		AttributesToSearchOn: []string{"name", "name_en", "name_ru", "entity_type", "source", "variants.text"},
		ShowRankingScore:     true,
	}

	resp, err := idx.Search(query, req)
	if err != nil {
		return nil, fmt.Errorf("retrieval: lexical search: %w", err)
	}

	return parseHits(resp, minScore, k)
}

func parseHits(resp *ms.SearchResponse, minScore float64, k int) ([]Hit, error) {
	hits := make([]Hit, 0, len(resp.Hits))
	for _, raw := range resp.Hits {
		m, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		id, _ := m["id"].(string)
		if id == "" {
			if pid, ok := m["parent_id"].(string); ok {
				id = pid
			}
		}
		if id == "" {
			continue
		}

		score := 0.0
		if s, ok := m["_rankingScore"].(float64); ok {
			score = s
		}

		if score < minScore {
			continue
		}

		hits = append(hits, Hit{EntityID: id, Score: score})
		if len(hits) >= k {
			break
		}
	}
	return hits, nil
}
