// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import (
	"fmt"

	"github.com/awiesler/tutorium/internal/learning"
)

// UpdateStyleFromAssessment folds an explicit VARK self-assessment
// into a style weight vector. The four raw ratings are normalized by
// their sum; ratings that sum to zero or fall outside [0, 10] fail
// with ErrInvalidAssessment and leave the caller's weights unchanged.
func (e *Engine) UpdateStyleFromAssessment(a Assessment) (StyleUpdate, error) {
	for _, r := range []float64{a.Visual, a.Auditory, a.ReadingWriting, a.Kinesthetic} {
		if r < 0 || r > 10 {
			return StyleUpdate{}, fmt.Errorf("%w: rating %f outside [0, 10]", ErrInvalidAssessment, r)
		}
	}

	sum := a.Visual + a.Auditory + a.ReadingWriting + a.Kinesthetic
	if sum == 0 {
		return StyleUpdate{}, fmt.Errorf("%w: ratings sum to zero", ErrInvalidAssessment)
	}

	weights := learning.StyleWeights{
		Visual:         a.Visual / sum,
		Auditory:       a.Auditory / sum,
		ReadingWriting: a.ReadingWriting / sum,
		Kinesthetic:    a.Kinesthetic / sum,
	}

	return e.styleUpdate(weights), nil
}

// UpdateStyleFromHistory blends implicit behavioral signals from
// completed progress records into the current style weights using
// exponential smoothing: new = alpha*signal + (1-alpha)*old per style
// tag, renormalized afterwards. Records are applied oldest first so
// recent behavior dominates without discarding history. With no
// applicable history the current weights are returned unchanged
// (uniform weights with zero confidence for a brand-new profile).
func (e *Engine) UpdateStyleFromHistory(current learning.StyleWeights, history []learning.ProgressRecord, catalog map[string]learning.LearningMaterial) StyleUpdate {
	if current.Sum() == 0 {
		current = learning.UniformWeights()
	}

	weights := current
	alpha := e.config.Profiler.SmoothingAlpha
	updated := false

	for _, rec := range e.windowHistory(history) {
		if rec.Status != learning.StatusCompleted && rec.Status != learning.StatusAbandoned {
			continue
		}
		material, ok := catalog[rec.MaterialID]
		if !ok || len(material.Styles) == 0 {
			continue
		}

		signal := e.signalStrength(rec, material)
		for _, s := range material.Styles {
			old := weights.Get(s)
			weights = weights.Set(s, alpha*signal+(1-alpha)*old)
		}
		weights = weights.Normalize()
		updated = true
	}

	if !updated {
		weights = current.Normalize()
	}

	return e.styleUpdate(weights)
}

// signalStrength derives a 0-1 engagement signal from one finished
// record: how much was completed, how well it was scored, and how
// efficiently relative to the material's estimated duration.
func (e *Engine) signalStrength(rec learning.ProgressRecord, material learning.LearningMaterial) float64 {
	completion := clamp01(rec.CompletionPercentage / 100.0)

	// Score component falls back to the derived mastery when the
	// material carried no assessment.
	performance := rec.MasteryLevel
	if rec.Score != nil {
		performance = clamp01(*rec.Score / 100.0)
	}

	// Neutral efficiency when either duration is unknown.
	efficiency := 0.5
	if material.EstimatedDuration > 0 && rec.TimeSpent > 0 {
		efficiency = clamp01(float64(material.EstimatedDuration) / float64(rec.TimeSpent))
	}

	p := e.config.Profiler
	total := p.CompletionWeight + p.ScoreWeight + p.EfficiencyWeight
	return clamp01((p.CompletionWeight*completion + p.ScoreWeight*performance + p.EfficiencyWeight*efficiency) / total)
}

// styleUpdate packages weights with their derived dominant style and
// confidence margin.
func (e *Engine) styleUpdate(weights learning.StyleWeights) StyleUpdate {
	dominant, confidence := weights.Dominant()
	return StyleUpdate{
		Weights:       weights,
		DominantStyle: dominant,
		Confidence:    confidence,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
