// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/awiesler/tutorium/internal/learning"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return e
}

func floatPtr(v float64) *float64 { return &v }

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

// completedRecord builds a completed progress record n days before
// testNow with the given score.
func completedRecord(materialID, subject, topic string, score float64, daysAgo int) learning.ProgressRecord {
	at := testNow.AddDate(0, 0, -daysAgo)
	s := score
	return learning.ProgressRecord{
		ID:                   materialID + "-rec",
		StudentID:            "student-1",
		MaterialID:           materialID,
		Subject:              subject,
		Topic:                topic,
		Status:               learning.StatusCompleted,
		CompletionPercentage: 100,
		TimeSpent:            30,
		EstimatedDuration:    30,
		Score:                &s,
		MasteryLevel:         learning.ComputeMastery(learning.StatusCompleted, 100, &s),
		Attempts:             1,
		StartedAt:            &at,
		CompletedAt:          &at,
		CreatedAt:            at,
		UpdatedAt:            at,
	}
}

func TestNew(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		e, err := New(nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if e.Config().Profiler.SmoothingAlpha != 0.2 {
			t.Errorf("Expected default smoothing alpha 0.2, got %f", e.Config().Profiler.SmoothingAlpha)
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Profiler.SmoothingAlpha = 1.5
		if _, err := New(cfg, zerolog.Nop()); err == nil {
			t.Error("Expected error for invalid config, got nil")
		}
	})

	t.Run("config is cloned", func(t *testing.T) {
		cfg := DefaultConfig()
		e, err := New(cfg, zerolog.Nop())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		cfg.Difficulty.HighThreshold = 99
		if e.Config().Difficulty.HighThreshold == 99 {
			t.Error("Expected engine config to be isolated from caller mutation")
		}
	})
}

func TestApplyProgressLifecycle(t *testing.T) {
	e := newTestEngine(t)
	material := learning.LearningMaterial{
		ID:                "mat-1",
		Subject:           "math",
		Topic:             "algebra",
		EstimatedDuration: 45,
	}

	rec, err := e.ApplyProgress(learning.ProgressRecord{}, material, ProgressEvent{
		StudentID:            "student-1",
		MaterialID:           "mat-1",
		CompletionPercentage: 40,
		TimeSpentDelta:       20,
	}, testNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Status != learning.StatusInProgress {
		t.Errorf("Expected in_progress, got %s", rec.Status)
	}
	if rec.Subject != "math" || rec.Topic != "algebra" {
		t.Errorf("Expected denormalized subject/topic, got %s/%s", rec.Subject, rec.Topic)
	}
	if rec.EstimatedDuration != 45 {
		t.Errorf("Expected denormalized estimate 45, got %d", rec.EstimatedDuration)
	}
	if rec.StartedAt == nil {
		t.Error("Expected StartedAt to be set")
	}
	if math.Abs(rec.MasteryLevel-0.2) > 1e-9 {
		t.Errorf("Expected partial mastery 0.2, got %f", rec.MasteryLevel)
	}

	later := testNow.Add(1 * time.Hour)
	rec, err = e.ApplyProgress(rec, material, ProgressEvent{
		StudentID:            "student-1",
		MaterialID:           "mat-1",
		CompletionPercentage: 100,
		TimeSpentDelta:       25,
		Score:                floatPtr(90),
	}, later)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Status != learning.StatusCompleted {
		t.Errorf("Expected completed, got %s", rec.Status)
	}
	if rec.CompletedAt == nil || !rec.CompletedAt.Equal(later) {
		t.Error("Expected CompletedAt set to completion time")
	}
	if rec.TimeSpent != 45 {
		t.Errorf("Expected accumulated time 45, got %d", rec.TimeSpent)
	}
	if math.Abs(rec.MasteryLevel-0.9) > 1e-9 {
		t.Errorf("Expected mastery 0.9, got %f", rec.MasteryLevel)
	}
	if rec.ReviewCount != 0 {
		t.Errorf("Expected no reviews yet, got %d", rec.ReviewCount)
	}

	// Completing again counts as a spaced-repetition review.
	rec, err = e.ApplyProgress(rec, material, ProgressEvent{
		StudentID:            "student-1",
		MaterialID:           "mat-1",
		CompletionPercentage: 100,
		Score:                floatPtr(95),
	}, later.AddDate(0, 0, 20))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.ReviewCount != 1 {
		t.Errorf("Expected review count 1, got %d", rec.ReviewCount)
	}
	if math.Abs(rec.MasteryLevel-0.95) > 1e-9 {
		t.Errorf("Expected mastery 0.95 after review, got %f", rec.MasteryLevel)
	}
}

func TestApplyProgressInvalidTransition(t *testing.T) {
	e := newTestEngine(t)
	material := learning.LearningMaterial{ID: "mat-1", Subject: "math", Topic: "algebra"}

	completed := completedRecord("mat-1", "math", "algebra", 80, 5)
	_, err := e.ApplyProgress(completed, material, ProgressEvent{
		StudentID:            "student-1",
		MaterialID:           "mat-1",
		CompletionPercentage: 50,
	}, testNow)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition, got %v", err)
	}

	abandoned := completed
	abandoned.Status = learning.StatusAbandoned
	_, err = e.ApplyProgress(abandoned, material, ProgressEvent{
		StudentID:            "student-1",
		MaterialID:           "mat-1",
		CompletionPercentage: 100,
	}, testNow)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition from abandoned, got %v", err)
	}
}

func TestApplyProgressMasteryMonotonicWithScore(t *testing.T) {
	e := newTestEngine(t)
	material := learning.LearningMaterial{ID: "mat-1", Subject: "math", Topic: "algebra"}

	prevMastery := -1.0
	for _, score := range []float64{10, 40, 70, 100} {
		rec, err := e.ApplyProgress(learning.ProgressRecord{}, material, ProgressEvent{
			StudentID:            "student-1",
			MaterialID:           "mat-1",
			CompletionPercentage: 100,
			Score:                floatPtr(score),
		}, testNow)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.MasteryLevel <= prevMastery {
			t.Errorf("Expected mastery to increase with score %f, got %f after %f", score, rec.MasteryLevel, prevMastery)
		}
		prevMastery = rec.MasteryLevel
	}
}

func TestWindowHistoryCap(t *testing.T) {
	e := newTestEngine(t)

	history := make([]learning.ProgressRecord, 0, 150)
	for i := 0; i < 150; i++ {
		rec := completedRecord("mat", "math", "algebra", 80, 150-i)
		rec.ID = rec.ID + string(rune('a'+i%26))
		history = append(history, rec)
	}

	windowed := e.windowHistory(history)
	if len(windowed) != e.Config().Limits.MaxHistory {
		t.Errorf("Expected window capped at %d, got %d", e.Config().Limits.MaxHistory, len(windowed))
	}
	// Oldest-first ordering, most recent records kept.
	for i := 1; i < len(windowed); i++ {
		if windowed[i].UpdatedAt.Before(windowed[i-1].UpdatedAt) {
			t.Fatal("Expected windowed history ordered oldest first")
		}
	}
	if !windowed[len(windowed)-1].UpdatedAt.Equal(history[len(history)-1].UpdatedAt) {
		t.Error("Expected most recent record to survive the window")
	}
}

func TestRefreshProfile(t *testing.T) {
	e := newTestEngine(t)
	profile := learning.NewStudentProfile("student-1", testNow.AddDate(0, -1, 0))

	history := []learning.ProgressRecord{
		completedRecord("mat-1", "math", "algebra", 80, 2),
		completedRecord("mat-2", "math", "geometry", 90, 1),
	}

	updated := e.RefreshProfile(profile, history, testNow)
	if updated.PerformanceScore != 85 {
		t.Errorf("Expected performance score 85, got %f", updated.PerformanceScore)
	}
	if updated.TotalStudyTime != 60 {
		t.Errorf("Expected total study time 60, got %d", updated.TotalStudyTime)
	}
	if updated.StyleWeights != profile.StyleWeights {
		t.Error("Expected style weights untouched by refresh")
	}
	if !updated.UpdatedAt.Equal(testNow) {
		t.Error("Expected UpdatedAt bumped")
	}
}
