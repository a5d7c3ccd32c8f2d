// Package embedding implements the embedding client (C10): a stateless
// wrapper over an external embedding model exposing
// embed([]string) -> ([]unit-vector, success, error). Adapted from the
// QuangThai-md-spec-tool backend's internal/ai.Client, which wraps the same
// openai-go/v3 SDK for structured chat completions; here the SDK's
// Embeddings.New endpoint is the target instead of Chat.Completions.New.
package embedding

import (
	"context"
	"fmt"
	"math"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client is a stateless wrapper; it carries no per-request state beyond the
// configured model and transport.
type Client struct {
	client openai.Client
	model  string
	dim    int
}

// Config configures the embedding client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Dim     int
}

func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding: API key is required")
	}
	var opts []option.RequestOption
	opts = append(opts, option.WithAPIKey(cfg.APIKey))
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	dim := cfg.Dim
	if dim <= 0 {
		dim = 384
	}
	return &Client{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		dim:    dim,
	}, nil
}

// Embed embeds a batch of texts, returning one unit-norm vector per input
// in the same order. On any transport/API failure it returns a nil slice,
// success=false and the error — callers (the orchestrator) are expected to
// log and continue without embeddings rather than fail the whole request.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, bool, error) {
	if len(texts) == 0 {
		return nil, true, nil
	}

	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("embedding: request failed: %w", err)
	}

	vectors := flatten(resp.Data)
	for i, v := range vectors {
		vectors[i] = normalize(v)
	}
	return vectors, true, nil
}

// flatten converts the response's per-input embeddings into [][]float32,
// one entry per response.Data element. A single-input batch comes back as
// a one-element outer slice; it is not unwrapped to a bare vector.
func flatten(data []openai.Embedding) [][]float32 {
	out := make([][]float32, len(data))
	for i, d := range data {
		v := make([]float32, len(d.Embedding))
		for j, f := range d.Embedding {
			v[j] = float32(f)
		}
		out[i] = v
	}
	return out
}

// normalize rescales v to unit L2 norm. A zero vector is returned unchanged
// rather than dividing by zero.
func normalize(v []float32) []float32 {
	var sumSq float64
	for _, f := range v {
		sumSq += float64(f) * float64(f)
	}
	if sumSq == 0 {
		return v
	}
	norm := float32(math.Sqrt(sumSq))
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = f / norm
	}
	return out
}
