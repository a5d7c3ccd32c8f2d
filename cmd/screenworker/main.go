// Command screenworker is the long-running resident process: it builds
// the same orchestrator as screenctl plus the hybrid retrieval
// coordinator, keeping the Mongo/Redis/Meilisearch/embedding connections
// open for whatever out-of-scope transport a deployment fronts it with.
// Grounded in the teacher's cmd/worker/main.go signal-handling skeleton.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dariapavlova02/sanctions-screen/app/config"
	"github.com/dariapavlova02/sanctions-screen/app/services"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
	"github.com/dariapavlova02/sanctions-screen/internal/embedding"
	"github.com/dariapavlova02/sanctions-screen/internal/orchestrator"
	"github.com/dariapavlova02/sanctions-screen/internal/retrieval"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	logger.Info("starting sanctions-screen worker")

	appCfg := config.Load()
	scoringCfg := config.DefaultScoringConfig()

	store, err := dictionary.Load()
	if err != nil {
		logger.Fatal("failed to load dictionary store", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURL))
	cancel()
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())

	mongoCache, err := services.NewMongoCacheService(mongoClient.Database("sanctions_screen"), appCfg.L1CacheSize, logger)
	if err != nil {
		logger.Fatal("failed to build Mongo cache tier", zap.Error(err))
	}

	var cache services.ICacheService = mongoCache
	if redisCache, err := services.NewRedisCacheService(appCfg.RedisURL, logger); err != nil {
		logger.Warn("Redis unavailable, falling back to MongoDB-only cache", zap.Error(err))
	} else {
		cache = services.NewHybridCacheService(redisCache, mongoCache, logger)
	}

	var embedder orchestrator.Embedder
	if client, err := embedding.New(embedding.Config{
		APIKey:  os.Getenv("EMBEDDING_API_KEY"),
		BaseURL: appCfg.EmbeddingBaseURL,
		Model:   appCfg.EmbeddingModel,
		Dim:     scoringCfg.EmbeddingDim,
	}); err != nil {
		logger.Warn("embedding client unavailable, continuing without embeddings", zap.Error(err))
	} else {
		embedder = client
	}

	orch := orchestrator.New(store, scoringCfg, cache, embedder, logger)

	searchClient := retrieval.NewMeiliSearchClient(retrieval.MeiliConfig{
		Host:             appCfg.MeilisearchURL,
		APIKey:           appCfg.MeilisearchKey,
		EntityIndex:      "entities",
		VariantIndex:     "variants",
		ParentChildIndex: "entity_children",
		Embedder:         "default",
	}, logger)

	_ = retrieval.NewCoordinator(orch, searchClient, scoringCfg, logger)

	logger.Info("worker ready", zap.String("env", appCfg.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker")

	stats := orch.GetStats()
	logger.Info("final stats",
		zap.Int64("total_requests", stats.TotalRequests),
		zap.Int64("cache_hits", stats.CacheHits),
		zap.Int64("cache_misses", stats.CacheMisses),
		zap.Int64("errors", stats.Errors))

	time.Sleep(2 * time.Second)
	logger.Info("worker exited")
}

func newLogger() *zap.Logger {
	if os.Getenv("APP_ENV") == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
