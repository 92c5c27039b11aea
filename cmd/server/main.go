// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

// Package main is the entry point for the Reelharbor server.
//
// Reelharbor turns a free-text prompt or a handful of seed titles into
// ranked movie and TV recommendations by orchestrating three upstreams:
// the TMDB catalog, the TasteDive similarity API, and a Gemini
// generative model. Each request kind walks a fixed fallback chain of
// providers, with validated responses cached and upstream quotas
// enforced in a shared store.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings from environment variables and
//     config file (Koanf v2)
//  2. Store: BadgerDB for response caching, rate-limit windows, and
//     provider cooldown markers (in-memory when STORE_PATH is unset)
//  3. Clients: TMDB, TasteDive, and Gemini HTTP clients, each behind a
//     circuit breaker
//  4. Engine: provider adapters, fallback chains, orchestrator, and
//     the enrichment pipeline
//  5. HTTP server: Chi router with the REST API, health probes, and
//     Prometheus metrics
//  6. Supervisor: suture tree running the HTTP server and store GC
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults. Required secrets:
//
//   - TMDB_API_KEY: bearer token for the TMDB v3 API
//   - TASTEDIVE_API_KEY: TasteDive API key
//   - GEMINI_API_KEY: Google AI Studio API key
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: stops
// accepting new connections, waits for in-flight requests to complete,
// then closes the store.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/reelharbor/internal/api"
	"github.com/tomtom215/reelharbor/internal/clients/gemini"
	"github.com/tomtom215/reelharbor/internal/clients/tastedive"
	"github.com/tomtom215/reelharbor/internal/clients/tmdb"
	"github.com/tomtom215/reelharbor/internal/config"
	"github.com/tomtom215/reelharbor/internal/logging"
	"github.com/tomtom215/reelharbor/internal/recommend"
	"github.com/tomtom215/reelharbor/internal/store"
	"github.com/tomtom215/reelharbor/internal/supervisor"
	"github.com/tomtom215/reelharbor/internal/supervisor/services"
)

// version is set at build time via -ldflags "-X main.version=...".
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
	})

	logging.Info().Str("version", version).Msg("Starting Reelharbor with supervisor tree")
	logging.Info().
		Str("store_path", cfg.Store.Path).
		Str("tmdb_region", cfg.TMDB.Region).
		Str("gemini_model", cfg.Gemini.Model).
		Msg("Configuration loaded")

	// Initialize the shared store. An empty path runs Badger in memory,
	// which loses cache and rate-limit state on restart.
	st, err := store.NewBadgerStore(cfg.Store.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	// Upstream clients, each with its own circuit breaker
	catalogClient := tmdb.New(cfg.TMDB)
	similarityClient := tastedive.New(cfg.TasteDive)
	generativeClient := gemini.New(cfg.Gemini)

	opts := recommend.OptionsFromConfig(cfg)
	if err := opts.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("Invalid recommendation options")
	}

	// Provider adapters and the per-kind fallback chains
	similarity := recommend.NewSimilarityAdapter(similarityClient, st, opts)
	generative := recommend.NewGenerativeAdapter(generativeClient, st, opts)
	catalog := recommend.NewCatalogAdapter(catalogClient)
	chains := recommend.NewChains(similarity, generative, catalog)

	orch := recommend.NewOrchestrator(chains, st, opts)
	enricher := recommend.NewEnricher(catalogClient, opts)
	svc := recommend.NewService(orch, enricher, catalogClient, chains, opts)

	// HTTP surface
	handler := api.NewHandler(svc)
	health := api.NewHealthHandler(version, func(ctx context.Context) error {
		_, _, err := st.Get(ctx, "health/probe")
		return err
	})
	router := api.NewRouter(handler, health, cfg.API).Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddStorageService(services.NewStoreGCService(st, cfg.Store.GCInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Handle shutdown signals
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
