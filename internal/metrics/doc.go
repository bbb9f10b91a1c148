// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

// Package metrics provides Prometheus metrics collection and export.
//
// Metrics cover the HTTP API (request counts, latency, rate limit
// rejections), engine operations (recommendations by type, path
// builds, progress events, style updates, predictions) and the
// persistence layer (operation latency and errors per entity).
//
// Metrics are exposed at the /metrics endpoint in Prometheus text
// format:
//
//	curl http://localhost:8080/metrics
//
// All metrics register through promauto at package load; recording
// helpers are safe for concurrent use.
package metrics
