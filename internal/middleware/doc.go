// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

// Package middleware provides the HTTP middleware used by the API
// router: request IDs, structured request logging, Prometheus
// instrumentation, and gzip compression. CORS and rate limiting come
// from go-chi/cors and go-chi/httprate and are wired directly in the
// router.
package middleware
