// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/awiesler/tutorium/internal/engine"
	"github.com/awiesler/tutorium/internal/learning"
	"github.com/awiesler/tutorium/internal/metrics"
	"github.com/awiesler/tutorium/internal/store"
	"github.com/awiesler/tutorium/internal/validation"
)

// enrollRequest is the payload for student enrollment.
type enrollRequest struct {
	ID string `json:"id" validate:"required,min=1,max=128"`

	// DifficultyPreference overrides the intermediate default.
	DifficultyPreference string `json:"difficulty_preference,omitempty" validate:"omitempty,difficulty"`
}

// CreateStudent enrolls a student with a fresh profile: uniform style
// weights and the stated (or default) difficulty preference.
func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "malformed request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	if _, err := h.store.GetProfile(r.Context(), req.ID); err == nil {
		respondError(w, r, http.StatusConflict, CodeConflict, "student already enrolled", nil)
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to check enrollment", err)
		return
	}

	profile := learning.NewStudentProfile(req.ID, time.Now().UTC())
	if req.DifficultyPreference != "" {
		pref, err := learning.ParseDifficulty(req.DifficultyPreference)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
			return
		}
		profile.DifficultyPreference = pref
	}

	if err := h.store.PutProfile(r.Context(), profile); err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to store profile", err)
		return
	}

	h.logger.Info().Str("student_id", profile.ID).Msg("student enrolled")
	respondJSON(w, r, http.StatusCreated, profile)
}

// GetStudent returns a student profile.
func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}
	respondJSON(w, r, http.StatusOK, profile)
}

// DeleteStudent removes a student and all associated progress.
func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if err := h.store.DeleteProfile(r.Context(), studentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, CodeNotFound, "student not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to delete profile", err)
		return
	}
	h.invalidateStudent(studentID)
	respondJSON(w, r, http.StatusOK, map[string]string{"deleted": studentID})
}

// RecordProgress folds one progress event into the student's record
// for the material, then refreshes the derived profile fields.
func (h *Handler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	var ev engine.ProgressEvent
	if err := decodeJSON(r, &ev); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "malformed request body", err)
		return
	}
	ev.StudentID = profile.ID
	if verr := validation.ValidateStruct(&ev); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	material, err := h.store.GetMaterial(r.Context(), ev.MaterialID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, CodeNotFound, "material not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load material", err)
		return
	}

	prev, err := h.store.GetProgress(r.Context(), profile.ID, ev.MaterialID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load progress", err)
		return
	}

	now := time.Now().UTC()
	rec, err := h.engine.ApplyProgress(prev, material, ev, now)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidTransition) {
			respondError(w, r, http.StatusConflict, CodeConflict, err.Error(), nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to apply progress", err)
		return
	}

	if err := h.store.PutProgress(r.Context(), rec); err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to store progress", err)
		return
	}
	metrics.RecordProgressEvent(string(rec.Status))

	history, err := h.store.ListProgress(r.Context(), profile.ID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load history", err)
		return
	}
	refreshed := h.engine.RefreshProfile(profile, history, now)
	if err := h.store.PutProfile(r.Context(), refreshed); err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to store profile", err)
		return
	}
	h.invalidateStudent(profile.ID)

	respondJSON(w, r, http.StatusOK, rec)
}

// ListProgress returns the student's full progress history.
func (h *Handler) ListProgress(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}
	history, err := h.store.ListProgress(r.Context(), profile.ID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load history", err)
		return
	}
	respondJSON(w, r, http.StatusOK, history)
}

// loadProfile resolves the studentID URL parameter, writing the error
// response itself when the student is unknown.
func (h *Handler) loadProfile(w http.ResponseWriter, r *http.Request) (learning.StudentProfile, bool) {
	studentID := chi.URLParam(r, "studentID")
	profile, err := h.store.GetProfile(r.Context(), studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, CodeNotFound, "student not found", nil)
		} else {
			respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load profile", err)
		}
		return learning.StudentProfile{}, false
	}
	return profile, true
}
