package retrieval

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dariapavlova02/sanctions-screen/app/config"
	"github.com/dariapavlova02/sanctions-screen/internal/orchestrator"
	"github.com/dariapavlova02/sanctions-screen/internal/pipeline"
)

// IndexType selects which vector indexes a Coordinator.Search call
// consults, per spec §4.12's input contract.
type IndexType string

const (
	IndexEntities IndexType = "entities"
	IndexVariants IndexType = "variants"
	IndexBoth     IndexType = "both"
)

// Result is one fused, ranked match.
type Result struct {
	EntityID    string  `json:"entity_id"`
	Score       float64 `json:"score"`
	VectorScore float64 `json:"vector_score,omitempty"`
	TextScore   float64 `json:"text_score,omitempty"`
}

// Coordinator is the hybrid retrieval coordinator (C12): it runs the
// orchestrator to normalize and embed the query, fans out to the
// configured vector/lexical indexes, and fuses scores per parent entity
// id. Any single retrieval call may fail without failing the whole
// request — results are partial, never all-or-nothing.
type Coordinator struct {
	orch   *orchestrator.Orchestrator
	client SearchClient
	cfg    config.ScoringConfig
	logger *zap.Logger
}

func NewCoordinator(orch *orchestrator.Orchestrator, client SearchClient, cfg config.ScoringConfig, logger *zap.Logger) *Coordinator {
	return &Coordinator{orch: orch, client: client, cfg: cfg, logger: logger}
}

// Search runs the full C12 pipeline for one query.
func (c *Coordinator) Search(ctx context.Context, query string, k int, threshold float64, indexType IndexType) ([]Result, error) {
	// Step 1: normalize and embed the query via the orchestrator.
	procResult, err := c.orch.Process(ctx, query, orchestrator.Options{
		GenerateEmbeddings: true,
	})
	if err != nil {
		return nil, err
	}

	var queryVector []float32
	if len(procResult.Embeddings) > 0 {
		queryVector = procResult.Embeddings[0]
	}

	// Steps 2-5 fan out concurrently per spec §5's "parallel threads with
	// cooperative async I/O for... search calls"; each call writes to its
	// own result slot so the merge below needs no locking.
	var entityHits, variantHits, parentChildHits, lexHits []Hit
	g, gctx := errgroup.WithContext(ctx)

	if queryVector != nil && (indexType == IndexEntities || indexType == IndexBoth) {
		g.Go(func() error {
			hits, err := c.client.EntityKNN(gctx, queryVector, k, threshold)
			if err != nil {
				c.logger.Warn("entity kNN failed, continuing", zap.Error(pipeline.ErrRetrieval), zap.Error(err))
				return nil
			}
			entityHits = hits
			return nil
		})
	}

	if queryVector != nil && (indexType == IndexVariants || indexType == IndexBoth) {
		g.Go(func() error {
			hits, err := c.client.VariantKNN(gctx, queryVector, k, threshold)
			if err != nil {
				c.logger.Warn("variant kNN failed, continuing", zap.Error(pipeline.ErrRetrieval), zap.Error(err))
				return nil
			}
			variantHits = hits
			return nil
		})

		g.Go(func() error {
			hits, err := c.client.ParentChildKNN(gctx, queryVector, k, threshold)
			if err != nil {
				c.logger.Warn("parent-child kNN failed, continuing", zap.Error(pipeline.ErrRetrieval), zap.Error(err))
				return nil
			}
			parentChildHits = hits
			return nil
		})
	}

	// Step 5 dynamic min_score by query length.
	lexicalMinScore := 0.0
	switch {
	case len(procResult.Normalized) <= 8:
		lexicalMinScore = 1.0
	case len(procResult.Normalized) <= 12:
		lexicalMinScore = 0.5
	}
	g.Go(func() error {
		hits, err := c.client.LexicalMultiMatch(gctx, procResult.Normalized, k, lexicalMinScore)
		if err != nil {
			c.logger.Warn("lexical search failed, continuing", zap.Error(pipeline.ErrRetrieval), zap.Error(err))
			return nil
		}
		lexHits = hits
		return nil
	})

	// Every goroutine above swallows its own error, so Wait cannot fail;
	// it only blocks until all four calls have returned.
	_ = g.Wait()

	fused := map[string]*Result{}
	merge := func(hits []Hit, isVector bool) {
		for _, h := range hits {
			r, ok := fused[h.EntityID]
			if !ok {
				r = &Result{EntityID: h.EntityID}
				fused[h.EntityID] = r
			}
			if isVector {
				if h.Score > r.VectorScore {
					r.VectorScore = h.Score
				}
			} else {
				if h.Score > r.TextScore {
					r.TextScore = h.Score
				}
			}
		}
	}

	merge(entityHits, true)
	merge(variantHits, true)
	merge(parentChildHits, true)
	merge(lexHits, false)

	// Step 6: fuse per entity id. final = VectorWeight*vector + TextWeight*text
	// when both present, else the max of whichever is present.
	out := make([]Result, 0, len(fused))
	for _, r := range fused {
		hasVector := r.VectorScore > 0
		hasText := r.TextScore > 0
		switch {
		case hasVector && hasText:
			r.Score = c.cfg.Weights.VectorWeight*r.VectorScore + c.cfg.Weights.TextWeight*r.TextScore
		case hasVector:
			r.Score = r.VectorScore
		case hasText:
			r.Score = r.TextScore
		}
		out = append(out, *r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}
