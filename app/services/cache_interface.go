package services

import (
	"context"
	"time"

	"github.com/dariapavlova02/sanctions-screen/app/models"
)

// CacheStats summarizes hit/miss counters across a cache tier.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService is the orchestrator's C11 cache dependency. Keys are
// fingerprints of (text, generate_variants, generate_embeddings); entries
// carry their own TTL per models.CacheEntry.
type ICacheService interface {
	Get(ctx context.Context, key string) (*models.ProcessingResult, bool, error)
	Set(ctx context.Context, key string, result *models.ProcessingResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	GetStats(ctx context.Context) (*CacheStats, error)
	Exists(ctx context.Context, key string) (bool, error)
	GetTTL(ctx context.Context, key string) (time.Duration, error)
	Close() error
}
