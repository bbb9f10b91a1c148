// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/awiesler/tutorium/internal/learning"
)

// Recommend scores every eligible candidate, classifies each into
// exactly one recommendation type by precedence (remedial > review >
// challenge > next_topic, first match wins), and returns the top
// suggestions ordered by priority. Priority is the suitability score
// adjusted by a type-specific urgency boost; ties resolve by material
// ID ascending so output is deterministic. A zero limit uses the
// configured default; typeFilter, when non-nil, keeps only one type.
func (e *Engine) Recommend(profile learning.StudentProfile, candidates []learning.LearningMaterial, history []learning.ProgressRecord, limit int, typeFilter *RecommendationType, now time.Time) []Recommendation {
	if limit <= 0 {
		limit = e.config.Limits.DefaultLimit
	}
	if limit > e.config.Limits.MaxLimit {
		limit = e.config.Limits.MaxLimit
	}

	windowed := e.windowHistory(history)
	target := e.TargetDifficulty(profile, history)
	latest := latestByMaterial(windowed)
	weak := e.weakTopics(windowed)

	recs := make([]Recommendation, 0, len(candidates))
	for _, material := range candidates {
		suit := e.Score(profile, material, target, history, now)
		if suit.Gated {
			// Hard filter: unmet prerequisites under strict gating.
			continue
		}

		prior, attempted := latest[material.ID]
		reviewDue := attempted && prior.Completed() && e.reviewDue(prior, now)
		if attempted && prior.Completed() && !reviewDue {
			// Already finished and not yet due again.
			continue
		}

		recType := e.classify(material, suit, target, weak, reviewDue)
		if typeFilter != nil && recType != *typeFilter {
			continue
		}

		prediction := e.Predict(profile, material, history)
		recs = append(recs, Recommendation{
			Material:        material,
			Type:            recType,
			Reasoning:       e.reasoning(profile, material, suit, recType),
			ConfidenceScore: suit.Score,
			PriorityScore:   suit.Score * e.boost(recType),
			Suitability:     suit,
			Predicted:       &prediction,
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].PriorityScore != recs[j].PriorityScore {
			return recs[i].PriorityScore > recs[j].PriorityScore
		}
		return recs[i].Material.ID < recs[j].Material.ID
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}

	e.logger.Debug().
		Str("student_id", profile.ID).
		Int("candidates", len(candidates)).
		Int("returned", len(recs)).
		Str("target_difficulty", target.String()).
		Msg("recommendations built")

	return recs
}

// classify assigns exactly one recommendation type. Precedence rules
// evaluate in order; the first match wins.
func (e *Engine) classify(material learning.LearningMaterial, suit Suitability, target learning.DifficultyLevel, weak map[string]map[string]bool, reviewDue bool) RecommendationType {
	// 1. Remedial: the material's topic, or one of its prerequisites,
	// is a finished-but-weak topic in the same subject.
	if topics := weak[material.Subject]; len(topics) > 0 {
		if topics[material.Topic] {
			return TypeRemedial
		}
		for _, prereq := range material.Prerequisites {
			if topics[prereq] {
				return TypeRemedial
			}
		}
	}

	// 2. Review: previously completed and past its spaced-repetition
	// interval.
	if reviewDue {
		return TypeReview
	}

	// 3. Challenge: one level above the current target with a strong
	// style fit.
	if material.Difficulty == target.StepUp() && material.Difficulty != target &&
		suit.StyleFit >= e.config.Recommend.ChallengeStyleFitMin {
		return TypeChallenge
	}

	// 4. Default: unattempted material with satisfied prerequisites.
	return TypeNextTopic
}

// reviewDue reports whether a completed record has outlived its
// forgetting-curve interval: base_interval * 2^review_count, measured
// from the completion time.
func (e *Engine) reviewDue(rec learning.ProgressRecord, now time.Time) bool {
	completedAt := rec.UpdatedAt
	if rec.CompletedAt != nil {
		completedAt = *rec.CompletedAt
	}

	interval := time.Duration(float64(e.config.Recommend.ReviewBaseInterval) *
		math.Pow(2, float64(rec.ReviewCount)))
	return now.Sub(completedAt) > interval
}

// weakTopics returns, per subject, the topics whose best finished
// (completed or abandoned) mastery sits below the remediation
// threshold.
func (e *Engine) weakTopics(history []learning.ProgressRecord) map[string]map[string]bool {
	best := make(map[string]map[string]float64)
	for _, rec := range history {
		if rec.Status != learning.StatusCompleted && rec.Status != learning.StatusAbandoned {
			continue
		}
		if best[rec.Subject] == nil {
			best[rec.Subject] = make(map[string]float64)
		}
		if rec.MasteryLevel > best[rec.Subject][rec.Topic] || !hasTopic(best[rec.Subject], rec.Topic) {
			best[rec.Subject][rec.Topic] = rec.MasteryLevel
		}
	}

	weak := make(map[string]map[string]bool, len(best))
	for subject, topics := range best {
		for topic, mastery := range topics {
			if mastery < e.config.Recommend.RemediationThreshold {
				if weak[subject] == nil {
					weak[subject] = make(map[string]bool)
				}
				weak[subject][topic] = true
			}
		}
	}
	return weak
}

func hasTopic(m map[string]float64, topic string) bool {
	_, ok := m[topic]
	return ok
}

// boost returns the priority multiplier for a recommendation type.
func (e *Engine) boost(t RecommendationType) float64 {
	b := e.config.Recommend.Boosts
	switch t {
	case TypeRemedial:
		return b.Remedial
	case TypeReview:
		return b.Review
	case TypeNextTopic:
		return b.NextTopic
	case TypeChallenge:
		return b.Challenge
	default:
		return 1.0
	}
}

// reasoning renders a human-readable justification. Remedial and
// review carry type-specific explanations; otherwise the dominant
// contributing sub-score speaks.
func (e *Engine) reasoning(profile learning.StudentProfile, material learning.LearningMaterial, suit Suitability, t RecommendationType) string {
	switch t {
	case TypeRemedial:
		return fmt.Sprintf("reinforces %s, where your mastery is still low", material.Topic)
	case TypeReview:
		return fmt.Sprintf("due for review to keep %s fresh", material.Topic)
	case TypeChallenge:
		return fmt.Sprintf("a %s-level challenge in %s that suits how you learn",
			material.Difficulty, material.Subject)
	}

	dominant, _ := profile.StyleWeights.Dominant()
	switch maxSubScore(suit) {
	case "style":
		return fmt.Sprintf("matches your %s learning style", styleLabel(dominant))
	case "difficulty":
		return fmt.Sprintf("matches your current %s difficulty level", material.Difficulty)
	case "novelty":
		return "new material you haven't tried yet"
	default:
		return "you've completed all of its prerequisites"
	}
}

// maxSubScore names the largest sub-score, with a fixed tie-break
// order for determinism.
func maxSubScore(s Suitability) string {
	best, name := s.StyleFit, "style"
	if s.DifficultyFit > best {
		best, name = s.DifficultyFit, "difficulty"
	}
	if s.Novelty > best {
		best, name = s.Novelty, "novelty"
	}
	if s.PrereqReadiness > best {
		name = "prerequisite"
	}
	return name
}

// styleLabel renders a style tag for display.
func styleLabel(s learning.Style) string {
	if s == learning.StyleReadingWriting {
		return "reading/writing"
	}
	return string(s)
}
