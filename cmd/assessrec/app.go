package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/assessrec/internal/config"
	"github.com/kailas-cloud/assessrec/internal/db"
	dbRedis "github.com/kailas-cloud/assessrec/internal/db/redis"
	"github.com/kailas-cloud/assessrec/internal/domain"
	"github.com/kailas-cloud/assessrec/internal/metrics"
	catalogrepo "github.com/kailas-cloud/assessrec/internal/repository/catalog"
	"github.com/kailas-cloud/assessrec/internal/repository/embcache"
	geminiGen "github.com/kailas-cloud/assessrec/internal/transport/gemini"
	"github.com/kailas-cloud/assessrec/internal/transport/httpfetch"
	openaiTransport "github.com/kailas-cloud/assessrec/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/assessrec/internal/usecase/embedding"
	"github.com/kailas-cloud/assessrec/internal/usecase/extract"
	healthuc "github.com/kailas-cloud/assessrec/internal/usecase/health"
	"github.com/kailas-cloud/assessrec/internal/usecase/normalize"
	recommenduc "github.com/kailas-cloud/assessrec/internal/usecase/recommend"
)

// application is everything both shells need, built once at startup.
type application struct {
	recommend *recommenduc.Service
	health    *healthuc.Service
	store     db.Store // nil when the cache is disabled
}

func (a *application) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

// buildApplication is the composition root. Failures here are fatal for the caller.
func buildApplication(ctx context.Context, cfg config.Config, logger *zap.Logger) (*application, error) {
	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterPipelineMetrics()

	catalog, err := catalogrepo.Load(cfg.Catalog.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var store db.Store
	if cfg.Cache.Enabled {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("create cache store: %w", err)
		}
		if err := s.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			s.Close()
			return nil, fmt.Errorf("cache not ready: %w", err)
		}
		store = s
		logger.Info("Connected to cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	docEmbedder := buildEmbedder(cfg, cfg.Embedding.DocumentInstruction, store, logger)
	queryEmbedder := buildEmbedder(cfg, cfg.Embedding.QueryInstruction, store, logger)
	logger.Info("Embedders created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	gen, err := buildGenerator(ctx, cfg.LLM)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("create generator: %w", err)
	}
	logger.Info("Generator created",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
	)

	fetcher := httpfetch.New(httpfetch.Config{
		Timeout:      time.Duration(cfg.Normalizer.FetchTimeoutSec) * time.Second,
		MaxBodyBytes: cfg.Normalizer.MaxBodyBytes,
		UserAgent:    cfg.Normalizer.UserAgent,
	})

	svc := recommenduc.New(
		catalog,
		normalize.New(fetcher, logger),
		extract.New(gen, extract.Config{
			Timeout: time.Duration(cfg.LLM.TimeoutSec) * time.Second,
			Logger:  logger,
		}),
		recommenduc.NewRanker(queryEmbedder, docEmbedder),
		logger,
	)

	// Pass nil interface (not typed nil pointer!) when the cache is disabled.
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(catalog, cachePinger, newEmbeddingHealthChecker(docEmbedder))

	return &application{recommend: svc, health: healthSvc, store: store}, nil
}

// generator is what both LLM backends provide.
type generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

func buildGenerator(ctx context.Context, cfg config.LLMConfig) (generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return geminiGen.NewGenerator(ctx, geminiGen.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			JSONOutput:  true,
		})
	case config.ProviderOpenAI:
		return openaiTransport.NewGenerator(openaiTransport.GeneratorConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented -> Instruction
func buildEmbedder(cfg config.Config, instruction string, store db.Store, logger *zap.Logger) domain.Embedder {
	// Base provider (with transport metrics built-in)
	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	var embedder domain.Embedder = base
	if store != nil {
		embedder = embcache.New(base, store, embcache.Config{
			Model:      cfg.Embedding.Model,
			TTL:        time.Duration(cfg.Cache.TTLHours) * time.Hour,
			CacheTotal: metrics.EmbeddingCacheTotal,
			Logger:     logger,
		})
	}

	embedder = embeddinguc.NewInstrumentedEmbedder(
		embedder, cfg.Embedding.Provider, cfg.Embedding.Model, cfg.Embedding.MaxBatchSize, logger,
	)

	// Instruction prefix (outermost, so the cache key includes it)
	if instruction != "" {
		return domain.NewInstructionEmbedder(embedder, instruction)
	}

	return embedder
}
