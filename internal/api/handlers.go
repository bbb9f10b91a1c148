// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/awiesler/tutorium/internal/cache"
	"github.com/awiesler/tutorium/internal/engine"
	"github.com/awiesler/tutorium/internal/store"
)

// recommendationTTL bounds staleness of cached recommendation reads.
// Any write touching a student invalidates their entries immediately;
// the TTL only covers catalog changes made out of band.
const recommendationTTL = time.Minute

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	store   store.Store
	engine  *engine.Engine
	cache   *cache.Cache
	logger  zerolog.Logger
	started time.Time
	version string
}

// NewHandler creates a Handler.
func NewHandler(st store.Store, eng *engine.Engine, logger zerolog.Logger, version string) *Handler {
	return &Handler{
		store:   st,
		engine:  eng,
		cache:   cache.New(recommendationTTL),
		logger:  logger.With().Str("component", "api").Logger(),
		started: time.Now(),
		version: version,
	}
}

// invalidateStudent drops cached reads for one student.
func (h *Handler) invalidateStudent(studentID string) {
	h.cache.DeletePrefix("recs:" + studentID + ":")
}

// healthResponse is the health endpoint payload.
type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Health reports liveness, version, and uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	})
}
