// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/awiesler/tutorium/internal/engine"
	"github.com/awiesler/tutorium/internal/learning"
	"github.com/awiesler/tutorium/internal/metrics"
	"github.com/awiesler/tutorium/internal/validation"
)

// SubmitAssessment updates the student's style weights from an
// explicit VARK self-assessment.
func (h *Handler) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	var assessment engine.Assessment
	if err := decodeJSON(r, &assessment); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "malformed request body", err)
		return
	}
	if verr := validation.ValidateStruct(&assessment); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	update, err := h.engine.UpdateStyleFromAssessment(assessment)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidAssessment) {
			respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to process assessment", err)
		return
	}

	if ok := h.saveStyleUpdate(w, r, profile, update); !ok {
		return
	}
	metrics.RecordStyleUpdate("assessment")
	respondJSON(w, r, http.StatusOK, update)
}

// RefreshStyle re-derives the style weights from behavioral history.
func (h *Handler) RefreshStyle(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	history, err := h.store.ListProgress(r.Context(), profile.ID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load history", err)
		return
	}
	catalog, err := h.loadCatalog(r)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load catalog", err)
		return
	}

	update := h.engine.UpdateStyleFromHistory(profile.StyleWeights, history, catalog)
	if ok := h.saveStyleUpdate(w, r, profile, update); !ok {
		return
	}
	metrics.RecordStyleUpdate("history")
	respondJSON(w, r, http.StatusOK, update)
}

// TargetDifficulty reports the engine's current difficulty target for
// the student.
func (h *Handler) TargetDifficulty(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	history, err := h.store.ListProgress(r.Context(), profile.ID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load history", err)
		return
	}

	target := h.engine.TargetDifficulty(profile, history)
	respondJSON(w, r, http.StatusOK, map[string]any{
		"student_id":        profile.ID,
		"target_difficulty": target,
		"preference":        profile.DifficultyPreference,
	})
}

// saveStyleUpdate persists new style weights onto the profile.
func (h *Handler) saveStyleUpdate(w http.ResponseWriter, r *http.Request, profile learning.StudentProfile, update engine.StyleUpdate) bool {
	profile.StyleWeights = update.Weights
	profile.DominantStyle = update.DominantStyle
	profile.UpdatedAt = time.Now().UTC()

	if err := h.store.PutProfile(r.Context(), profile); err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to store profile", err)
		return false
	}
	h.invalidateStudent(profile.ID)
	return true
}

// loadCatalog returns the full catalog keyed by material ID.
func (h *Handler) loadCatalog(r *http.Request) (map[string]learning.LearningMaterial, error) {
	materials, err := h.store.ListMaterials(r.Context(), "")
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]learning.LearningMaterial, len(materials))
	for _, m := range materials {
		catalog[m.ID] = m
	}
	return catalog, nil
}
