// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import (
	"math"
	"time"

	"github.com/awiesler/tutorium/internal/learning"
)

// Score computes the composite suitability of a material for a
// student as a weighted sum of style fit, difficulty fit, novelty and
// prerequisite readiness, each normalized to [0, 1]. The breakdown is
// returned alongside the composite so callers can explain the result.
//
// Under strict prerequisite gating a material with any unmet
// prerequisite is marked Gated with zero readiness; ranking callers
// exclude gated materials entirely rather than scoring them low.
func (e *Engine) Score(profile learning.StudentProfile, material learning.LearningMaterial, target learning.DifficultyLevel, history []learning.ProgressRecord, now time.Time) Suitability {
	windowed := e.windowHistory(history)

	s := Suitability{
		StyleFit:      styleFit(profile.StyleWeights, material),
		DifficultyFit: difficultyFit(material.Difficulty, target),
		Novelty:       e.novelty(material.ID, windowed, now),
	}
	s.PrereqReadiness, s.Gated = e.prereqReadiness(material, windowed)

	wStyle, wDifficulty, wNovelty, wPrereq := e.config.normalizedScoringWeights()
	s.Score = clamp01(wStyle*s.StyleFit +
		wDifficulty*s.DifficultyFit +
		wNovelty*s.Novelty +
		wPrereq*s.PrereqReadiness)

	return s
}

// styleFit is the cosine similarity between the student's weight
// vector and the material's style indicator vector. Materials with no
// style tags score a neutral 0.5.
func styleFit(weights learning.StyleWeights, material learning.LearningMaterial) float64 {
	vec := material.StyleVector()
	if vec.Sum() == 0 {
		return 0.5
	}

	var dot, normW, normV float64
	for _, s := range learning.Styles() {
		w, v := weights.Get(s), vec.Get(s)
		dot += w * v
		normW += w * w
		normV += v * v
	}
	if normW == 0 || normV == 0 {
		return 0
	}
	return clamp01(dot / (math.Sqrt(normW) * math.Sqrt(normV)))
}

// difficultyFit maps the ordinal distance between the material's
// difficulty and the controller's target onto [0, 1]: exact match 1.0,
// one level off 0.5, two levels off 0.0.
func difficultyFit(material, target learning.DifficultyLevel) float64 {
	return 1.0 - float64(material.Distance(target))/2.0
}

// novelty is 1.0 for a material the student never touched, decays
// multiplicatively with each completion, and recovers toward 1.0 as
// time passes (half the lost novelty returns per configured
// half-life). Attempted-but-unfinished material keeps most of its
// novelty.
func (e *Engine) novelty(materialID string, history []learning.ProgressRecord, now time.Time) float64 {
	rec, ok := latestByMaterial(history)[materialID]
	if !ok {
		return 1.0
	}

	cfg := e.config.Scoring
	base := 0.8 // attempted but never completed
	if rec.Completed() {
		completions := 1 + rec.ReviewCount
		base = math.Pow(cfg.NoveltyCompletionDecay, float64(completions))
	}

	elapsed := now.Sub(rec.UpdatedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	recovered := 1.0 - math.Pow(0.5, elapsed.Hours()/cfg.NoveltyHalfLife.Hours())
	return clamp01(base + (1.0-base)*recovered)
}

// prereqReadiness is the share of the material's prerequisite topics
// the student has mastered above the configured threshold. With strict
// gating any unmet prerequisite zeroes the readiness and marks the
// material gated.
func (e *Engine) prereqReadiness(material learning.LearningMaterial, history []learning.ProgressRecord) (float64, bool) {
	if len(material.Prerequisites) == 0 {
		return 1.0, false
	}

	mastery := topicMastery(history)
	satisfied := 0
	for _, topic := range material.Prerequisites {
		if mastery[topic] >= e.config.Scoring.MasteryThreshold {
			satisfied++
		}
	}

	if satisfied == len(material.Prerequisites) {
		return 1.0, false
	}
	if e.config.Scoring.StrictPrerequisites {
		return 0, true
	}
	return float64(satisfied) / float64(len(material.Prerequisites)), false
}
