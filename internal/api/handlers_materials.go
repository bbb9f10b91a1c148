// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/awiesler/tutorium/internal/learning"
	"github.com/awiesler/tutorium/internal/store"
	"github.com/awiesler/tutorium/internal/validation"
)

// materialRequest is the payload for catalog upserts. Difficulty and
// styles arrive as wire names and are converted after validation.
type materialRequest struct {
	ID                string   `json:"id" validate:"required,min=1,max=128"`
	Title             string   `json:"title" validate:"required"`
	Subject           string   `json:"subject" validate:"required"`
	Topic             string   `json:"topic" validate:"required"`
	Difficulty        string   `json:"difficulty_level" validate:"required,difficulty"`
	ContentType       string   `json:"content_type"`
	Styles            []string `json:"learning_styles" validate:"dive,learningstyle"`
	Prerequisites     []string `json:"prerequisites" validate:"dive,required"`
	EstimatedDuration int      `json:"estimated_duration" validate:"gte=0"`
	AverageRating     float64  `json:"average_rating" validate:"gte=0,lte=5"`
	ComplexityScore   float64  `json:"complexity_score" validate:"gte=0,lte=1"`
}

// PutMaterial creates or replaces a catalog entry.
func (h *Handler) PutMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "malformed request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	difficulty, err := learning.ParseDifficulty(req.Difficulty)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
		return
	}
	styles := make([]learning.Style, len(req.Styles))
	for i, s := range req.Styles {
		styles[i] = learning.Style(s)
	}

	material := learning.LearningMaterial{
		ID:                req.ID,
		Title:             req.Title,
		Subject:           req.Subject,
		Topic:             req.Topic,
		Difficulty:        difficulty,
		ContentType:       req.ContentType,
		Styles:            styles,
		Prerequisites:     req.Prerequisites,
		EstimatedDuration: req.EstimatedDuration,
		AverageRating:     req.AverageRating,
		ComplexityScore:   req.ComplexityScore,
	}

	if err := h.store.PutMaterial(r.Context(), material); err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to store material", err)
		return
	}
	// Catalog changes affect every student's candidate pool.
	h.cache.Clear()
	respondJSON(w, r, http.StatusCreated, material)
}

// GetMaterial returns one catalog entry.
func (h *Handler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	material, err := h.store.GetMaterial(r.Context(), chi.URLParam(r, "materialID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, CodeNotFound, "material not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load material", err)
		return
	}
	respondJSON(w, r, http.StatusOK, material)
}

// ListMaterials returns catalog entries, optionally filtered by the
// subject query parameter.
func (h *Handler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.store.ListMaterials(r.Context(), r.URL.Query().Get("subject"))
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load catalog", err)
		return
	}
	respondJSON(w, r, http.StatusOK, materials)
}

// DeleteMaterial removes a catalog entry.
func (h *Handler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "materialID")
	if err := h.store.DeleteMaterial(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, CodeNotFound, "material not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to delete material", err)
		return
	}
	h.cache.Clear()
	respondJSON(w, r, http.StatusOK, map[string]string{"deleted": id})
}
