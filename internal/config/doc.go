// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

// Package config loads and validates the application configuration
// from layered sources: built-in defaults, an optional YAML file,
// and TUTORIUM_-prefixed environment variables, in increasing
// priority.
package config
