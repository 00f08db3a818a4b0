// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

// Command server runs the ShuttleHub recommendation API.
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

	"github.com/nguyenhoangkha03/shuttlehub/internal/api"
	"github.com/nguyenhoangkha03/shuttlehub/internal/config"
	"github.com/nguyenhoangkha03/shuttlehub/internal/database"
	"github.com/nguyenhoangkha03/shuttlehub/internal/logging"
	"github.com/nguyenhoangkha03/shuttlehub/internal/recommend"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Msg("Starting ShuttleHub recommendation service")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Err(err).Msg("Failed to close database")
		}
	}()

	if cfg.Database.SeedMockData {
		if err := db.SeedMockData(); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed mock data")
		}
	}

	engineCfg := recommend.DefaultConfig()
	engineCfg.DefaultLimit = cfg.API.DefaultLimit
	engineCfg.MaxLimit = cfg.API.MaxLimit
	engineCfg.Cache = recommend.CacheConfig{
		Enabled:    cfg.Recommend.CacheEnabled,
		TTL:        cfg.Recommend.CacheTTL,
		MaxEntries: cfg.Recommend.CacheMaxItems,
	}

	engine, err := recommend.NewEngine(engineCfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	engine.SetProvider(database.NewStore(db))

	handler := api.NewHandler(engine, db, cfg)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler, cfg),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Err(err).Msg("Graceful shutdown failed, forcing close")
		_ = server.Close()
	}

	logging.Info().Msg("Server stopped gracefully")
}
