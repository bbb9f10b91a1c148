// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package api

import (
	"net/http"
	"time"
)

// Analytics returns the windowed progress summary for a student. The
// window_days query parameter overrides the configured default.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	windowDays, err := queryInt(r, "window_days", 0)
	if err != nil || windowDays < 0 {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "window_days must be a non-negative integer", nil)
		return
	}

	history, err := h.store.ListProgress(r.Context(), profile.ID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "failed to load history", err)
		return
	}

	summary := h.engine.Summarize(history, windowDays, time.Now().UTC())
	respondJSON(w, r, http.StatusOK, summary)
}
