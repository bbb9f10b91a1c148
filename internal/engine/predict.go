// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import (
	"math"

	"github.com/awiesler/tutorium/internal/learning"
)

// Predict estimates how a student would perform on a material before
// they attempt it. The prediction combines style alignment, difficulty
// alignment against the student's preference, and recent performance,
// discounted by the material's complexity. Confidence grows linearly
// with the amount of finished history and saturates at
// FullConfidenceObservations records.
func (e *Engine) Predict(profile learning.StudentProfile, material learning.LearningMaterial, history []learning.ProgressRecord) Prediction {
	cfg := e.config.Prediction
	windowed := e.windowHistory(history)

	styleFit := styleFit(profile.StyleWeights, material)

	dist := material.Difficulty.Distance(profile.DifficultyPreference)
	difficultyFit := clamp01(1 - float64(dist)/2)

	performance := clamp01(profile.PerformanceScore / 100)

	composite := cfg.StyleWeight*styleFit +
		cfg.DifficultyWeight*difficultyFit +
		cfg.PerformanceWeight*performance
	composite = clamp01(composite - cfg.ComplexityPenalty*clamp01(material.ComplexityScore))

	observations := 0
	for _, rec := range windowed {
		if rec.Status.Terminal() {
			observations++
		}
	}
	confidence := math.Min(1, float64(observations)/float64(cfg.FullConfidenceObservations))

	return Prediction{
		PredictedScore:          math.Round(composite*1000) / 10,
		CompletionProbability:   completionProbability(composite, windowed),
		EstimatedCompletionTime: scaledDuration(material.EstimatedDuration, windowed),
		Confidence:              confidence,
	}
}

// completionProbability blends the per-material composite with the
// student's observed completion rate. With no finished history the
// composite stands alone.
func completionProbability(composite float64, history []learning.ProgressRecord) float64 {
	completed, finished := 0, 0
	for _, rec := range history {
		if rec.Status.Terminal() {
			finished++
			if rec.Status == learning.StatusCompleted {
				completed++
			}
		}
	}
	if finished == 0 {
		return clamp01(composite)
	}
	rate := float64(completed) / float64(finished)
	return clamp01(0.6*composite + 0.4*rate)
}

// scaledDuration adjusts the catalog estimate, in minutes, by the
// student's observed pace. A student who historically takes 1.5x the
// estimated time gets a 1.5x prediction.
func scaledDuration(estimated int, history []learning.ProgressRecord) int {
	ratio := paceRatio(history)
	if ratio <= 0 {
		return estimated
	}
	return int(math.Round(float64(estimated) * ratio))
}

// paceRatio is the ratio of actual to estimated study minutes across
// completed records, clamped to [0.25, 4] to keep a few outliers from
// dominating. Returns 0 when no record carries both durations.
func paceRatio(history []learning.ProgressRecord) float64 {
	actual, estimated := 0, 0
	for _, rec := range history {
		if rec.Status != learning.StatusCompleted {
			continue
		}
		if rec.TimeSpent <= 0 || rec.EstimatedDuration <= 0 {
			continue
		}
		actual += rec.TimeSpent
		estimated += rec.EstimatedDuration
	}
	if estimated == 0 {
		return 0
	}
	ratio := float64(actual) / float64(estimated)
	return math.Min(4, math.Max(0.25, ratio))
}
