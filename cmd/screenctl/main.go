// Command screenctl is the CLI entrypoint for the screening pipeline: the
// in-process equivalent of the teacher's address_controller request/
// response cycle, without the gin transport. It loads configuration,
// builds the dictionary store and orchestrator, and processes either a
// single -text argument or a newline-delimited batch from stdin, printing
// each ProcessingResult as JSON.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/dariapavlova02/sanctions-screen/app/config"
	"github.com/dariapavlova02/sanctions-screen/app/models"
	"github.com/dariapavlova02/sanctions-screen/app/services"
	"github.com/dariapavlova02/sanctions-screen/internal/dictionary"
	"github.com/dariapavlova02/sanctions-screen/internal/embedding"
	"github.com/dariapavlova02/sanctions-screen/internal/orchestrator"
)

func main() {
	text := flag.String("text", "", "single text to screen; if empty, reads newline-delimited texts from stdin")
	generateVariants := flag.Bool("variants", true, "generate spelling variants")
	generateEmbeddings := flag.Bool("embeddings", false, "call the embedding model")
	preferCompany := flag.Bool("prefer-company", false, "when both a person and a company span are found, prefer the company")
	demo := flag.Bool("demo", false, "run a small built-in set of sample texts instead of -text/stdin")
	flag.Parse()

	logger := newLogger()
	defer logger.Sync()

	appCfg := config.Load()
	scoringCfg := config.DefaultScoringConfig()

	store, err := dictionary.Load()
	if err != nil {
		logger.Fatal("failed to load dictionary store", zap.Error(err))
	}

	var embedder orchestrator.Embedder
	if *generateEmbeddings {
		client, err := embedding.New(embedding.Config{
			APIKey:  os.Getenv("EMBEDDING_API_KEY"),
			BaseURL: appCfg.EmbeddingBaseURL,
			Model:   appCfg.EmbeddingModel,
			Dim:     scoringCfg.EmbeddingDim,
		})
		if err != nil {
			logger.Warn("embedding client unavailable, continuing without embeddings", zap.Error(err))
		} else {
			embedder = client
		}
	}

	orch := orchestrator.New(store, scoringCfg, noopCache{}, embedder, logger)

	opts := orchestrator.Options{
		GenerateVariants:      *generateVariants,
		GenerateEmbeddings:    *generateEmbeddings,
		PreferCompanyWhenBoth: *preferCompany,
	}

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)

	switch {
	case *demo:
		for _, sample := range demoTexts {
			runOne(ctx, orch, sample, opts, enc, logger)
		}
	case *text != "":
		runOne(ctx, orch, *text, opts, enc, logger)
	default:
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			runOne(ctx, orch, line, opts, enc, logger)
		}
		if err := scanner.Err(); err != nil {
			logger.Fatal("error reading stdin", zap.Error(err))
		}
	}
}

func runOne(ctx context.Context, orch *orchestrator.Orchestrator, text string, opts orchestrator.Options, enc *json.Encoder, logger *zap.Logger) {
	result, err := orch.Process(ctx, text, opts)
	if err != nil {
		logger.Error("processing failed", zap.String("text", text), zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if err := enc.Encode(result); err != nil {
		logger.Error("failed to encode result", zap.Error(err))
	}
}

var demoTexts = []string{
	"Оплата за договором Петренку Івану Олеговичу",
	"переказ коштів ФОП Коваленко Сергій Миколайович",
	"TOV Budivelnyk Ltd payment for services",
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

// noopCache is the default cache for the CLI: each invocation is a fresh
// process, so a result cache bought nothing without a standing Mongo/Redis
// connection the CLI isn't asked to hold open.
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string) (*models.ProcessingResult, bool, error) {
	return nil, false, nil
}
func (noopCache) Set(ctx context.Context, key string, result *models.ProcessingResult, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, key string) error { return nil }
func (noopCache) Clear(ctx context.Context) error               { return nil }
func (noopCache) GetStats(ctx context.Context) (*services.CacheStats, error) {
	return &services.CacheStats{}, nil
}
func (noopCache) Exists(ctx context.Context, key string) (bool, error) { return false, nil }
func (noopCache) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}
func (noopCache) Close() error { return nil }
