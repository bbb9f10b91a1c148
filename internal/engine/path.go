// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/awiesler/tutorium/internal/learning"
)

// BuildPath produces an ordered learning path through the target
// topics of one subject. Topics are expanded with their unmastered
// prerequisite topics, ordered topologically over prerequisite edges,
// and each topic's materials are laid out difficulty-first with
// suitability breaking ties, so the difficulty progression stays
// non-decreasing except at remedial insertions.
//
// A prerequisite cycle, or a needed prerequisite topic with no
// material in the pool, fails with ErrUnsatisfiableTargets; no partial
// path is ever returned.
func (e *Engine) BuildPath(profile learning.StudentProfile, subject string, targetTopics []string, pool []learning.LearningMaterial, history []learning.ProgressRecord, now time.Time) (LearningPath, error) {
	if len(targetTopics) == 0 {
		return LearningPath{}, fmt.Errorf("%w: no target topics", ErrUnsatisfiableTargets)
	}

	windowed := e.windowHistory(history)
	mastery := topicMastery(windowed)
	target := e.TargetDifficulty(profile, history)
	weak := e.weakTopics(windowed)[subject]

	// Topic -> materials for this subject.
	byTopic := make(map[string][]learning.LearningMaterial)
	for _, m := range pool {
		if m.Subject == subject {
			byTopic[m.Topic] = append(byTopic[m.Topic], m)
		}
	}

	// Expand targets with unmastered prerequisite topics, depth-first.
	// Mastered prerequisites are satisfied history, not path steps.
	needed := make(map[string]bool)
	queue := append([]string(nil), targetTopics...)
	for len(queue) > 0 {
		topic := queue[0]
		queue = queue[1:]
		if needed[topic] {
			continue
		}
		needed[topic] = true

		materials, ok := byTopic[topic]
		if !ok {
			return LearningPath{}, fmt.Errorf("%w: no material for topic %q", ErrUnsatisfiableTargets, topic)
		}
		for _, m := range materials {
			for _, prereq := range m.Prerequisites {
				if mastery[prereq] >= e.config.Scoring.MasteryThreshold {
					continue
				}
				if !needed[prereq] {
					queue = append(queue, prereq)
				}
			}
		}
	}

	tiers, err := topoTiers(needed, byTopic)
	if err != nil {
		return LearningPath{}, err
	}

	path := LearningPath{Subject: subject}
	for _, tier := range tiers {
		steps := e.tierSteps(profile, tier, byTopic, target, history, weak, now)
		path.Steps = append(path.Steps, steps...)
	}

	for i := range path.Steps {
		path.Steps[i].Order = i + 1
		path.TotalDuration += path.Steps[i].Material.EstimatedDuration
		path.DifficultyProgression = append(path.DifficultyProgression, path.Steps[i].Material.Difficulty)
	}

	e.logger.Debug().
		Str("student_id", profile.ID).
		Str("subject", subject).
		Int("topics", len(needed)).
		Int("steps", len(path.Steps)).
		Msg("learning path built")

	return path, nil
}

// topoTiers orders the needed topics by Kahn's algorithm over
// prerequisite edges, returning topics grouped into dependency tiers.
// Edges to topics outside the needed set are already satisfied and are
// dropped; a remaining cycle surfaces as ErrUnsatisfiableTargets.
func topoTiers(needed map[string]bool, byTopic map[string][]learning.LearningMaterial) ([][]string, error) {
	indegree := make(map[string]int, len(needed))
	dependents := make(map[string][]string, len(needed))

	for topic := range needed {
		indegree[topic] += 0
		seen := make(map[string]bool)
		for _, m := range byTopic[topic] {
			for _, prereq := range m.Prerequisites {
				if prereq == topic || seen[prereq] {
					continue
				}
				seen[prereq] = true
				if !needed[prereq] {
					// Mastered already, satisfied outside the path.
					continue
				}
				indegree[topic]++
				dependents[prereq] = append(dependents[prereq], topic)
			}
		}
	}

	var tiers [][]string
	current := make([]string, 0, len(needed))
	for topic, deg := range indegree {
		if deg == 0 {
			current = append(current, topic)
		}
	}
	sort.Strings(current)

	placed := 0
	for len(current) > 0 {
		tiers = append(tiers, current)
		placed += len(current)

		var next []string
		for _, topic := range current {
			for _, dep := range dependents[topic] {
				indegree[dep]--
				if indegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		sort.Strings(next)
		current = next
	}

	if placed != len(needed) {
		return nil, fmt.Errorf("%w: prerequisite cycle detected", ErrUnsatisfiableTargets)
	}
	return tiers, nil
}

// tierSteps scores the materials of one dependency tier and lays them
// out difficulty-ascending with suitability descending as tiebreak.
// Weak-topic steps are marked remedial, exempting them from the
// non-decreasing difficulty invariant.
func (e *Engine) tierSteps(profile learning.StudentProfile, tier []string, byTopic map[string][]learning.LearningMaterial, target learning.DifficultyLevel, history []learning.ProgressRecord, weak map[string]bool, now time.Time) []PathStep {
	var steps []PathStep
	for _, topic := range tier {
		for _, m := range byTopic[topic] {
			steps = append(steps, PathStep{
				Material:    m,
				Suitability: e.Score(profile, m, target, history, now),
				Remedial:    weak[topic],
			})
		}
	}

	sort.Slice(steps, func(i, j int) bool {
		a, b := steps[i], steps[j]
		if a.Remedial != b.Remedial {
			// Remedial repairs come first within a tier.
			return a.Remedial
		}
		if a.Material.Difficulty != b.Material.Difficulty {
			return a.Material.Difficulty < b.Material.Difficulty
		}
		if a.Suitability.Score != b.Suitability.Score {
			return a.Suitability.Score > b.Suitability.Score
		}
		return a.Material.ID < b.Material.ID
	})

	return steps
}
