// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

// Package logging provides centralized zerolog-based structured
// logging for Tutorium.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("student_id", id).Msg("profile refreshed")
//	logging.Error().Err(err).Msg("request failed")
//
//	// Context-aware logging inside handlers
//	logging.Ctx(ctx).Info().Msg("processing request")
//
// Always terminate log chains with .Msg() or .Send(); a chain without
// a terminator is never emitted.
//
// # Component Loggers
//
//	engineLogger := logging.WithComponent("engine")
//	engineLogger.Debug().Msg("recommendations built")
//
// All exported functions are safe for concurrent use.
package logging
