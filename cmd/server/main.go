// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

// Package main is the entry point for the Tutorium server.
//
// Startup order: configuration (koanf layered sources), logging
// (zerolog), persistence (in-memory or BadgerDB), the personalization
// engine, and finally the HTTP API. Shutdown is graceful on SIGINT
// and SIGTERM: the listener stops accepting connections, in-flight
// requests get the configured drain window, then the store is closed.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/awiesler/tutorium/internal/api"
	"github.com/awiesler/tutorium/internal/config"
	"github.com/awiesler/tutorium/internal/engine"
	"github.com/awiesler/tutorium/internal/logging"
	"github.com/awiesler/tutorium/internal/store"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging)
	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("store_backend", cfg.Store.Backend).
		Msg("Starting Tutorium")

	st, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}

	eng, err := engine.New(&cfg.Engine, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create engine")
	}

	handler := api.NewHandler(st, eng, logging.Logger(), version)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, cfg.Server),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
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
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("HTTP server failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	if err := st.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing store")
	}
	logging.Info().Msg("Shutdown complete")
}
