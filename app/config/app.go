package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// AppConfig is the ambient process configuration: connection strings,
// timeouts, and index/model names. It is distinct from ScoringConfig,
// which holds the domain's reproducibility contracts — separating the two
// keeps "how long do we wait for Mongo" from drifting alongside "what is
// the vector/text fusion weight".
type AppConfig struct {
	Env              string
	MongoURL         string
	RedisURL         string
	MeilisearchURL   string
	MeilisearchKey   string
	EmbeddingModel   string
	EmbeddingBaseURL string
	L1CacheSize      int
	EmbeddingTimeout time.Duration
	RetrievalTimeout time.Duration
	RequestBudget    time.Duration
}

// Load reads config/app.yaml (if present) and environment overrides via
// viper, the same layering the teacher's main.go uses: SetDefault for
// every tunable, then AutomaticEnv, then ReadInConfig so a missing file is
// a warning, not a fatal error.
func Load() AppConfig {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("app.env", "development")
	viper.SetDefault("mongo.url", "mongodb://localhost:27017/sanctions_screen")
	viper.SetDefault("redis.url", "redis://localhost:6379")
	viper.SetDefault("meilisearch.url", "http://localhost:7700")
	viper.SetDefault("meilisearch.master_key", "")
	viper.SetDefault("embedding.model", "text-embedding-3-small")
	viper.SetDefault("embedding.base_url", "")
	viper.SetDefault("cache.l1_size", 10000)
	viper.SetDefault("timeouts.embedding_sec", 5)
	viper.SetDefault("timeouts.retrieval_sec", 5)
	viper.SetDefault("timeouts.request_budget_sec", 30)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("warning: cannot read config file: %v", err)
	}

	return AppConfig{
		Env:              getEnv("APP_ENV", viper.GetString("app.env")),
		MongoURL:         getEnv("MONGO_URL", viper.GetString("mongo.url")),
		RedisURL:         getEnv("REDIS_URL", viper.GetString("redis.url")),
		MeilisearchURL:   getEnv("MEILISEARCH_URL", viper.GetString("meilisearch.url")),
		MeilisearchKey:   getEnv("MEILISEARCH_KEY", viper.GetString("meilisearch.master_key")),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", viper.GetString("embedding.model")),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", viper.GetString("embedding.base_url")),
		L1CacheSize:      getEnvInt("L1_CACHE_SIZE", viper.GetInt("cache.l1_size")),
		EmbeddingTimeout: time.Duration(viper.GetInt("timeouts.embedding_sec")) * time.Second,
		RetrievalTimeout: time.Duration(viper.GetInt("timeouts.retrieval_sec")) * time.Second,
		RequestBudget:    time.Duration(viper.GetInt("timeouts.request_budget_sec")) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
