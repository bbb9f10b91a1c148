// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/awiesler/tutorium/internal/config"
	"github.com/awiesler/tutorium/internal/middleware"
)

// NewRouter assembles the full HTTP surface: API routes, health, and
// the Prometheus metrics endpoint.
func NewRouter(handler *Handler, cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitRequests > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
		}
		r.Use(middleware.Metrics)
		r.Use(middleware.Compression)

		r.Get("/health", handler.Health)

		r.Route("/materials", func(r chi.Router) {
			r.Post("/", handler.PutMaterial)
			r.Get("/", handler.ListMaterials)
			r.Get("/{materialID}", handler.GetMaterial)
			r.Delete("/{materialID}", handler.DeleteMaterial)
		})

		r.Route("/students", func(r chi.Router) {
			r.Post("/", handler.CreateStudent)

			r.Route("/{studentID}", func(r chi.Router) {
				r.Get("/", handler.GetStudent)
				r.Delete("/", handler.DeleteStudent)

				r.Post("/style/assessment", handler.SubmitAssessment)
				r.Post("/style/refresh", handler.RefreshStyle)
				r.Get("/difficulty", handler.TargetDifficulty)

				r.Get("/recommendations", handler.Recommendations)
				r.Post("/path", handler.BuildPath)
				r.Get("/predictions/{materialID}", handler.PredictPerformance)
				r.Get("/analytics", handler.Analytics)

				r.Post("/progress", handler.RecordProgress)
				r.Get("/progress", handler.ListProgress)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
