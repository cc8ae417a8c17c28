// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

/*
Package main is the entry point for the PlayNext server application.

PlayNext is a self-hosted board game recommendation service. It resolves
free-text game names against a catalog, looks up precomputed similarity
scores, collapses franchise clones, applies attribute filters, and serves
ranked recommendations over a REST API.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("playnext")
	├── APISupervisor ("api-layer")
	│   └── HTTP Server (Chi router)
	└── JobSupervisor ("job-layer")
	    └── Uptime reporter

Component initialization order:

 1. Configuration: Koanf v2 with config file and environment layers
 2. Logging: zerolog with JSON/console output modes
 3. Catalog: CSV or JSON game catalog loaded into memory
 4. Similarity: dense matrix bundle or sparse edge table
 5. Recommendation engine: resolver, provider, clone reducer, filters
 6. HTTP Server: Chi router with CORS, rate limiting, and metrics

# Configuration

All settings can be supplied via PLAYNEXT_* environment variables or a
YAML config file, for example:

	PLAYNEXT_SERVER_PORT=8093
	PLAYNEXT_CATALOG_PATH=/data/games_detailed_info.csv
	PLAYNEXT_SIMILARITY_SOURCE=table
	PLAYNEXT_SIMILARITY_EDGES_PATH=/data/edges.csv
	PLAYNEXT_LOG_LEVEL=debug

# Shutdown

SIGINT and SIGTERM cancel the root context. The supervisor drains its
services, the HTTP server gets a bounded graceful shutdown window, and
any service that fails to stop within the timeout is reported before
exit.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tabletop-labs/playnext/internal/api"
	"github.com/tabletop-labs/playnext/internal/catalog"
	"github.com/tabletop-labs/playnext/internal/config"
	"github.com/tabletop-labs/playnext/internal/dataset"
	"github.com/tabletop-labs/playnext/internal/logging"
	"github.com/tabletop-labs/playnext/internal/metrics"
	"github.com/tabletop-labs/playnext/internal/recommend"
	"github.com/tabletop-labs/playnext/internal/search"
	"github.com/tabletop-labs/playnext/internal/similarity"
	"github.com/tabletop-labs/playnext/internal/supervisor"
	"github.com/tabletop-labs/playnext/internal/supervisor/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting PlayNext with supervisor tree")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("catalog_path", cfg.Catalog.Path).
		Str("similarity_source", cfg.Similarity.Source).
		Str("default_recipe", string(cfg.Recommend.DefaultRecipe)).
		Msg("Configuration loaded")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Fetch the catalog from upstream when it is not already on disk
	catalogPath := bootstrapCatalog(ctx, cfg)

	store := loadCatalog(catalogPath, cfg.Catalog.Format)
	provider := loadSimilarity(store, &cfg.Similarity)

	resolver := search.NewResolver(store, search.NewWeightedMatcher())
	engine, err := recommend.NewEngine(&cfg.Recommend, store, provider, resolver, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	handler := api.NewHandler(engine, store, version)
	middleware := api.NewMiddleware(&api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
	})
	router := api.NewRouter(handler, middleware)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	tree.AddJobService(services.NewUptimeService(0))

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// bootstrapCatalog downloads the catalog when a dataset URL is
// configured and the catalog file is not already on disk. Returns the
// path the catalog should be loaded from.
func bootstrapCatalog(ctx context.Context, cfg *config.Config) string {
	if cfg.Dataset.URL == "" {
		return cfg.Catalog.Path
	}
	if _, err := os.Stat(cfg.Catalog.Path); err == nil {
		return cfg.Catalog.Path
	}

	logging.Info().
		Str("url", cfg.Dataset.URL).
		Str("dir", cfg.Dataset.Dir).
		Msg("Catalog not found on disk, downloading dataset")

	dl := dataset.NewDownloader(dataset.Config{
		Dir:        cfg.Dataset.Dir,
		Timeout:    cfg.Dataset.Timeout,
		RatePerSec: cfg.Dataset.RatePerSec,
	})
	path, err := dl.Download(ctx, cfg.Dataset.URL)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to download dataset")
	}
	logging.Info().Str("path", path).Msg("Dataset downloaded")
	return path
}

// loadCatalog reads the game catalog into memory. A catalog that fails
// to parse aborts startup: every request path depends on it.
func loadCatalog(path, format string) *catalog.Store {
	start := time.Now()

	var store *catalog.Store
	var err error
	switch format {
	case "json":
		store, err = catalog.LoadJSONFile(path)
	default:
		store, err = catalog.LoadCSVFile(path)
	}
	if err != nil {
		logging.Fatal().Err(err).Str("path", path).Msg("Failed to load catalog")
	}

	metrics.RecordCatalogLoad(store.Len(), time.Since(start))
	logging.Info().
		Int("games", store.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Catalog loaded")
	return store
}

// loadSimilarity builds the similarity provider from the configured
// artifact form.
func loadSimilarity(store *catalog.Store, cfg *config.SimilarityConfig) similarity.Provider {
	switch cfg.Source {
	case "matrix":
		matrices, err := similarity.LoadMatricesFile(cfg.MatrixPath)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.MatrixPath).Msg("Failed to load similarity matrices")
		}
		provider, err := similarity.NewMatrixProvider(store, matrices, cfg.TopK)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to build matrix provider")
		}
		logging.Info().Int("recipes", len(matrices)).Msg("Similarity matrices loaded")
		return provider
	default:
		edges, err := similarity.LoadEdgesFile(cfg.EdgesPath)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.EdgesPath).Msg("Failed to load similarity edges")
		}
		provider, err := similarity.NewTableProvider(store, edges, cfg.TopK)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to build table provider")
		}
		logging.Info().Int("edges", len(edges)).Msg("Similarity edge table loaded")
		return provider
	}
}
