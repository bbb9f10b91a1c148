// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/awiesler/tutorium/internal/learning"
)

// Engine is the personalization and recommendation engine. Every
// operation is a pure, bounded-time function of the snapshots passed
// in: the engine holds configuration and a logger, never student
// state. Operations for different students are therefore safe to run
// concurrently; within one student's timeline the caller serializes
// updates, persisting each returned value before computing the next.
type Engine struct {
	config *Config
	logger zerolog.Logger
}

// New creates an engine from the given configuration. A nil config
// uses DefaultConfig.
func New(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "engine").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// ApplyProgress folds one progress event into the student's existing
// record for the material (zero value for a first attempt) and returns
// the new record. Mastery is recomputed on every event; completion
// status only moves forward, with abandoned terminal from any state.
func (e *Engine) ApplyProgress(prev learning.ProgressRecord, material learning.LearningMaterial, ev ProgressEvent, now time.Time) (learning.ProgressRecord, error) {
	rec := prev
	if rec.MaterialID == "" {
		// First event for this (student, material) pair.
		rec = learning.ProgressRecord{
			StudentID:         ev.StudentID,
			MaterialID:        material.ID,
			Subject:           material.Subject,
			Topic:             material.Topic,
			EstimatedDuration: material.EstimatedDuration,
			Status:            learning.StatusNotStarted,
			CreatedAt:         now,
		}
	}

	next := rec.Status
	switch {
	case ev.Abandoned:
		next = learning.StatusAbandoned
	case ev.CompletionPercentage >= 100:
		next = learning.StatusCompleted
	case ev.CompletionPercentage > 0:
		next = learning.StatusInProgress
	}

	if !rec.Status.CanTransition(next) {
		return prev, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rec.Status, next)
	}

	wasCompleted := rec.Status == learning.StatusCompleted
	if rec.Status != next && next != learning.StatusNotStarted && rec.StartedAt == nil {
		started := now
		rec.StartedAt = &started
	}

	if ev.CompletionPercentage > rec.CompletionPercentage {
		rec.CompletionPercentage = ev.CompletionPercentage
	}
	rec.TimeSpent += ev.TimeSpentDelta
	rec.Status = next
	rec.Attempts++

	if next == learning.StatusCompleted {
		if ev.Score != nil {
			s := *ev.Score
			rec.Score = &s
		}
		if !wasCompleted {
			completed := now
			rec.CompletedAt = &completed
		} else {
			// Completing again is a spaced-repetition review.
			rec.ReviewCount++
		}
	}

	rec.MasteryLevel = learning.ComputeMastery(rec.Status, rec.CompletionPercentage, rec.Score)
	rec.UpdatedAt = now

	e.logger.Debug().
		Str("student_id", rec.StudentID).
		Str("material_id", rec.MaterialID).
		Str("status", string(rec.Status)).
		Float64("mastery", rec.MasteryLevel).
		Msg("progress applied")

	return rec, nil
}

// RefreshProfile recomputes the profile fields owned by the analytics
// engine (performance score, streak, study time) from history and
// returns the updated profile value. The style weights are untouched;
// those belong to the profiler.
func (e *Engine) RefreshProfile(profile learning.StudentProfile, history []learning.ProgressRecord, now time.Time) learning.StudentProfile {
	summary := e.Summarize(history, e.config.Analytics.WindowDays, now)

	profile.PerformanceScore = summary.AverageScore
	profile.LearningStreak = summary.LearningStreak
	profile.TotalStudyTime = summary.TotalStudyTime
	profile.UpdatedAt = now
	return profile
}

// windowHistory returns history ordered oldest-first and capped at the
// configured maximum, keeping the most recent records.
func (e *Engine) windowHistory(history []learning.ProgressRecord) []learning.ProgressRecord {
	sorted := make([]learning.ProgressRecord, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.Before(sorted[j].UpdatedAt)
	})

	if max := e.config.Limits.MaxHistory; len(sorted) > max {
		sorted = sorted[len(sorted)-max:]
	}
	return sorted
}

// latestByMaterial reduces history to the most recent record per
// material.
func latestByMaterial(history []learning.ProgressRecord) map[string]learning.ProgressRecord {
	latest := make(map[string]learning.ProgressRecord, len(history))
	for _, rec := range history {
		prev, ok := latest[rec.MaterialID]
		if !ok || rec.UpdatedAt.After(prev.UpdatedAt) {
			latest[rec.MaterialID] = rec
		}
	}
	return latest
}

// topicMastery returns the best mastery level reached per topic among
// completed records.
func topicMastery(history []learning.ProgressRecord) map[string]float64 {
	mastery := make(map[string]float64)
	for _, rec := range history {
		if !rec.Completed() {
			continue
		}
		if rec.MasteryLevel > mastery[rec.Topic] {
			mastery[rec.Topic] = rec.MasteryLevel
		}
	}
	return mastery
}
