// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import (
	"github.com/awiesler/tutorium/internal/learning"
)

// TargetDifficulty computes the student's current target band using a
// zone-of-proximal-development heuristic over the rolling average
// score of the most recent completed records. Stepping is clamped to
// one ordinal level per evaluation so a single outlier cannot swing
// the target across the whole range; fewer than two scored records
// returns the student's stated preference unchanged.
func (e *Engine) TargetDifficulty(profile learning.StudentProfile, history []learning.ProgressRecord) learning.DifficultyLevel {
	cfg := e.config.Difficulty
	windowed := e.windowHistory(history)

	// Most recent completed records carrying a score, newest last.
	var scores []float64
	for _, rec := range windowed {
		if rec.Completed() && rec.Score != nil {
			scores = append(scores, *rec.Score)
		}
	}
	if len(scores) > cfg.WindowSize {
		scores = scores[len(scores)-cfg.WindowSize:]
	}
	if len(scores) < 2 {
		return profile.DifficultyPreference
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	avg := sum / float64(len(scores))

	current := profile.DifficultyPreference
	switch {
	case avg >= cfg.HighThreshold && completionRate(windowed) >= cfg.MinCompletionRate:
		return current.StepUp()
	case avg <= cfg.LowThreshold:
		return current.StepDown()
	default:
		return current
	}
}

// completionRate is completed / (completed + abandoned + in_progress)
// over the given records. Records still in not_started are excluded
// from the denominator.
func completionRate(records []learning.ProgressRecord) float64 {
	var completed, attempted int
	for _, rec := range records {
		switch rec.Status {
		case learning.StatusCompleted:
			completed++
			attempted++
		case learning.StatusAbandoned, learning.StatusInProgress:
			attempted++
		case learning.StatusNotStarted:
		}
	}
	if attempted == 0 {
		return 0
	}
	return float64(completed) / float64(attempted)
}
