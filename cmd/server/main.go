package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/salesai/backend/config"
	"github.com/salesai/backend/internal/catalog"
	httpDelivery "github.com/salesai/backend/internal/delivery/http"
	"github.com/salesai/backend/internal/infrastructure/cache"
	"github.com/salesai/backend/internal/infrastructure/llm"
	"github.com/salesai/backend/internal/logger"
	"github.com/salesai/backend/internal/usecase"
	"github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "salesai-backend: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.WithFields(logrus.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
	}).Info("Starting SalesAI Backend v1.0.0")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load(cfg.Catalog.CompaniesFile, cfg.Catalog.SolutionsFile)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	log.WithFields(logrus.Fields{
		"companies":  len(cat.Companies),
		"industries": len(cat.Industries),
		"solutions":  len(cat.Solutions),
	}).Info("Catalog loaded")

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache(time.Minute)
	defer memoryCache.Close()

	completer, backendName, err := llm.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize model backend: %w", err)
	}
	if cfg.HasCredential() {
		log.WithFields(logrus.Fields{
			"provider": backendName,
			"model":    cfg.LLM.Model,
		}).Info("Model backend configured")
	} else {
		log.WithField("provider", cfg.LLM.Provider).
			Warn("Model API key NOT CONFIGURED - analysis and recommendation requests will fail")
	}

	// Initialize usecase layer
	analysisService := usecase.NewAnalysisService(
		completer,
		memoryCache,
		usecase.AnalysisServiceConfig{
			CacheEnabled: cfg.Cache.Enabled,
			CacheTTL:     cfg.Cache.TTL,
		},
		log,
	)

	matcher := usecase.NewSolutionMatcher(usecase.MatchConfig{
		MinScore:     cfg.Recommendation.MinScore,
		MaxResults:   cfg.Recommendation.MaxSolutions,
		DebugLogging: cfg.Server.Environment == "development",
	}, log)

	recommendationService := usecase.NewRecommendationService(
		completer,
		cat.Solutions,
		matcher,
		usecase.RecommendationServiceConfig{
			Mode:         cfg.Recommendation.Mode,
			MaxSolutions: cfg.Recommendation.MaxSolutions,
		},
		log,
	)

	log.WithFields(logrus.Fields{
		"mode":      cfg.Recommendation.Mode,
		"min_score": cfg.Recommendation.MinScore,
		"cache":     cfg.Cache.Enabled,
		"cache_ttl": cfg.Cache.TTL,
	}).Info("Services ready")

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(analysisService, recommendationService, cat, log)
	router := httpDelivery.SetupRouter(cfg, handler, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
