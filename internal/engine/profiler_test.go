// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/awiesler/tutorium/internal/learning"
)

func TestUpdateStyleFromAssessment(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name       string
		assessment Assessment
		expected   learning.StyleWeights
		wantErr    error
	}{
		{
			name:       "even ratings normalize to uniform",
			assessment: Assessment{Visual: 5, Auditory: 5, ReadingWriting: 5, Kinesthetic: 5},
			expected:   learning.UniformWeights(),
		},
		{
			name:       "skewed ratings",
			assessment: Assessment{Visual: 8, Auditory: 2, ReadingWriting: 6, Kinesthetic: 4},
			expected:   learning.StyleWeights{Visual: 0.4, Auditory: 0.1, ReadingWriting: 0.3, Kinesthetic: 0.2},
		},
		{
			name:       "zero ratings rejected",
			assessment: Assessment{},
			wantErr:    ErrInvalidAssessment,
		},
		{
			name:       "rating above scale rejected",
			assessment: Assessment{Visual: 11, Auditory: 5, ReadingWriting: 5, Kinesthetic: 5},
			wantErr:    ErrInvalidAssessment,
		},
		{
			name:       "negative rating rejected",
			assessment: Assessment{Visual: -1, Auditory: 5, ReadingWriting: 5, Kinesthetic: 5},
			wantErr:    ErrInvalidAssessment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update, err := e.UpdateStyleFromAssessment(tt.assessment)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			for _, s := range learning.Styles() {
				if math.Abs(update.Weights.Get(s)-tt.expected.Get(s)) > learning.WeightEpsilon {
					t.Errorf("Expected %s weight %f, got %f", s, tt.expected.Get(s), update.Weights.Get(s))
				}
			}
			if err := update.Weights.Validate(); err != nil {
				t.Errorf("Expected valid weights, got %v", err)
			}
		})
	}
}

func TestUpdateStyleFromHistory(t *testing.T) {
	e := newTestEngine(t)

	catalog := map[string]learning.LearningMaterial{
		"vis-1": {ID: "vis-1", Subject: "math", Topic: "algebra", Styles: []learning.Style{learning.StyleVisual}, EstimatedDuration: 30},
		"vis-2": {ID: "vis-2", Subject: "math", Topic: "geometry", Styles: []learning.Style{learning.StyleVisual}, EstimatedDuration: 30},
		"kin-1": {ID: "kin-1", Subject: "math", Topic: "fractions", Styles: []learning.Style{learning.StyleKinesthetic}, EstimatedDuration: 30},
	}

	t.Run("strong visual signals shift weights toward visual", func(t *testing.T) {
		history := []learning.ProgressRecord{
			completedRecord("vis-1", "math", "algebra", 95, 3),
			completedRecord("vis-2", "math", "geometry", 92, 2),
		}

		update := e.UpdateStyleFromHistory(learning.UniformWeights(), history, catalog)
		if update.Weights.Visual <= 0.25 {
			t.Errorf("Expected visual weight to grow past 0.25, got %f", update.Weights.Visual)
		}
		if update.DominantStyle != learning.StyleVisual {
			t.Errorf("Expected visual dominant, got %s", update.DominantStyle)
		}
		if err := update.Weights.Validate(); err != nil {
			t.Errorf("Expected weights to stay normalized, got %v", err)
		}
	})

	t.Run("no applicable history leaves weights unchanged", func(t *testing.T) {
		inProgress := completedRecord("vis-1", "math", "algebra", 90, 1)
		inProgress.Status = learning.StatusInProgress
		inProgress.CompletedAt = nil

		current := learning.StyleWeights{Visual: 0.4, Auditory: 0.3, ReadingWriting: 0.2, Kinesthetic: 0.1}
		update := e.UpdateStyleFromHistory(current, []learning.ProgressRecord{inProgress}, catalog)
		for _, s := range learning.Styles() {
			if math.Abs(update.Weights.Get(s)-current.Get(s)) > learning.WeightEpsilon {
				t.Errorf("Expected unchanged %s weight %f, got %f", s, current.Get(s), update.Weights.Get(s))
			}
		}
	})

	t.Run("unknown material skipped", func(t *testing.T) {
		history := []learning.ProgressRecord{
			completedRecord("missing", "math", "algebra", 95, 1),
		}
		update := e.UpdateStyleFromHistory(learning.UniformWeights(), history, catalog)
		if update.Weights != learning.UniformWeights() {
			t.Errorf("Expected uniform weights, got %+v", update.Weights)
		}
	})

	t.Run("zero current weights start from uniform", func(t *testing.T) {
		update := e.UpdateStyleFromHistory(learning.StyleWeights{}, nil, catalog)
		if update.Weights != learning.UniformWeights() {
			t.Errorf("Expected uniform cold start, got %+v", update.Weights)
		}
		if update.Confidence != 0 {
			t.Errorf("Expected zero confidence for uniform weights, got %f", update.Confidence)
		}
	})
}

func TestSignalStrength(t *testing.T) {
	e := newTestEngine(t)
	material := learning.LearningMaterial{ID: "mat-1", EstimatedDuration: 30}

	strong := completedRecord("mat-1", "math", "algebra", 100, 1)
	weak := completedRecord("mat-1", "math", "algebra", 20, 1)
	weak.CompletionPercentage = 40
	weak.TimeSpent = 120

	sStrong := e.signalStrength(strong, material)
	sWeak := e.signalStrength(weak, material)
	if sStrong <= sWeak {
		t.Errorf("Expected strong record signal %f to exceed weak %f", sStrong, sWeak)
	}
	if sStrong < 0 || sStrong > 1 || sWeak < 0 || sWeak > 1 {
		t.Errorf("Expected signals in [0, 1], got %f and %f", sStrong, sWeak)
	}
}
