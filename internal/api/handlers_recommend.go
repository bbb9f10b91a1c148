// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/awiesler/tutorium/internal/engine"
	"github.com/awiesler/tutorium/internal/metrics"
	"github.com/awiesler/tutorium/internal/store"
	"github.com/awiesler/tutorium/internal/validation"
)

// Recommendations returns ranked suggestions for a student. Query
// parameters: limit, type (next_topic|review|challenge|remedial), and
// subject to narrow the candidate pool.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil || limit < 0 {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "limit must be a non-negative integer", nil)
		return
	}

	var typeFilter *engine.RecommendationType
	if raw := r.URL.Query().Get("type"); raw != "" {
		parsed, ok := engine.ParseRecommendationType(raw)
		if !ok {
			respondError(w, r, http.StatusBadRequest, CodeBadRequest, "unknown recommendation type", nil)
			return
		}
		typeFilter = &parsed
	}

	subject := r.URL.Query().Get("subject")
	cacheKey := fmt.Sprintf("recs:%s:%s:%d:%s", profile.ID, subject, limit, r.URL.Query().Get("type"))
	if cached, ok := h.cache.Get(cacheKey); ok {
		respondJSON(w, r, http.StatusOK, cached)
		return
	}

	candidates, err := h.store.ListMaterials(r.Context(), subject)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load catalog", err)
		return
	}
	history, err := h.store.ListProgress(r.Context(), profile.ID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load history", err)
		return
	}

	start := time.Now()
	recs := h.engine.Recommend(profile, candidates, history, limit, typeFilter, time.Now().UTC())
	for _, rec := range recs {
		metrics.RecordRecommendation(rec.Type.String())
	}
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())

	h.cache.Set(cacheKey, recs)
	respondJSON(w, r, http.StatusOK, recs)
}

// pathRequest is the payload for learning path generation.
type pathRequest struct {
	Subject      string   `json:"subject" validate:"required"`
	TargetTopics []string `json:"target_topics" validate:"required,min=1,dive,required"`
}

// BuildPath generates an ordered learning path through the target
// topics, pulling in unmastered prerequisites.
func (h *Handler) BuildPath(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	var req pathRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "malformed request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	pool, err := h.store.ListMaterials(r.Context(), req.Subject)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load catalog", err)
		return
	}
	history, err := h.store.ListProgress(r.Context(), profile.ID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load history", err)
		return
	}

	path, err := h.engine.BuildPath(profile, req.Subject, req.TargetTopics, pool, history, time.Now().UTC())
	metrics.RecordPathBuild(err)
	if err != nil {
		if errors.Is(err, engine.ErrUnsatisfiableTargets) {
			respondError(w, r, http.StatusUnprocessableEntity, CodeUnprocessable, err.Error(), nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to build path", err)
		return
	}

	respondJSON(w, r, http.StatusOK, path)
}

// PredictPerformance forecasts the student's performance on one
// material.
func (h *Handler) PredictPerformance(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	material, err := h.store.GetMaterial(r.Context(), chi.URLParam(r, "materialID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, CodeNotFound, "material not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load material", err)
		return
	}
	history, err := h.store.ListProgress(r.Context(), profile.ID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load history", err)
		return
	}

	prediction := h.engine.Predict(profile, material, history)
	metrics.PredictionsServed.Inc()
	respondJSON(w, r, http.StatusOK, prediction)
}
