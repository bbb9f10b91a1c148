// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package learning

import (
	"math"
	"testing"
	"time"
)

func TestStyleWeightsNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    StyleWeights
		expected StyleWeights
	}{
		{
			name:     "already normalized",
			input:    StyleWeights{Visual: 0.4, Auditory: 0.3, ReadingWriting: 0.2, Kinesthetic: 0.1},
			expected: StyleWeights{Visual: 0.4, Auditory: 0.3, ReadingWriting: 0.2, Kinesthetic: 0.1},
		},
		{
			name:     "unnormalized scales down",
			input:    StyleWeights{Visual: 2, Auditory: 1, ReadingWriting: 1, Kinesthetic: 0},
			expected: StyleWeights{Visual: 0.5, Auditory: 0.25, ReadingWriting: 0.25, Kinesthetic: 0},
		},
		{
			name:     "zero vector becomes uniform",
			input:    StyleWeights{},
			expected: UniformWeights(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.Normalize()
			for _, s := range Styles() {
				if math.Abs(got.Get(s)-tt.expected.Get(s)) > WeightEpsilon {
					t.Errorf("Expected %s weight %f, got %f", s, tt.expected.Get(s), got.Get(s))
				}
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Expected normalized weights to validate, got %v", err)
			}
		})
	}
}

func TestStyleWeightsDominant(t *testing.T) {
	tests := []struct {
		name           string
		weights        StyleWeights
		expectedStyle  Style
		expectedMargin float64
	}{
		{
			name:           "clear winner",
			weights:        StyleWeights{Visual: 0.6, Auditory: 0.2, ReadingWriting: 0.1, Kinesthetic: 0.1},
			expectedStyle:  StyleVisual,
			expectedMargin: 0.4,
		},
		{
			name:           "tie resolves in canonical order",
			weights:        UniformWeights(),
			expectedStyle:  StyleVisual,
			expectedMargin: 0,
		},
		{
			name:           "kinesthetic winner",
			weights:        StyleWeights{Visual: 0.1, Auditory: 0.2, ReadingWriting: 0.3, Kinesthetic: 0.4},
			expectedStyle:  StyleKinesthetic,
			expectedMargin: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style, margin := tt.weights.Dominant()
			if style != tt.expectedStyle {
				t.Errorf("Expected dominant style %s, got %s", tt.expectedStyle, style)
			}
			if math.Abs(margin-tt.expectedMargin) > WeightEpsilon {
				t.Errorf("Expected margin %f, got %f", tt.expectedMargin, margin)
			}
		})
	}
}

func TestStyleWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights StyleWeights
		wantErr bool
	}{
		{name: "uniform is valid", weights: UniformWeights(), wantErr: false},
		{name: "sum below one", weights: StyleWeights{Visual: 0.5}, wantErr: true},
		{name: "negative component", weights: StyleWeights{Visual: 1.2, Auditory: -0.2}, wantErr: true},
		{name: "sum above one", weights: StyleWeights{Visual: 0.6, Auditory: 0.6}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestDifficultyLevelSteps(t *testing.T) {
	if got := DifficultyBeginner.StepUp(); got != DifficultyIntermediate {
		t.Errorf("Expected intermediate, got %s", got)
	}
	if got := DifficultyAdvanced.StepUp(); got != DifficultyAdvanced {
		t.Errorf("Expected step up to cap at advanced, got %s", got)
	}
	if got := DifficultyIntermediate.StepDown(); got != DifficultyBeginner {
		t.Errorf("Expected beginner, got %s", got)
	}
	if got := DifficultyBeginner.StepDown(); got != DifficultyBeginner {
		t.Errorf("Expected step down to floor at beginner, got %s", got)
	}
	if got := DifficultyBeginner.Distance(DifficultyAdvanced); got != 2 {
		t.Errorf("Expected distance 2, got %d", got)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input    string
		expected DifficultyLevel
		wantErr  bool
	}{
		{input: "beginner", expected: DifficultyBeginner},
		{input: "intermediate", expected: DifficultyIntermediate},
		{input: "advanced", expected: DifficultyAdvanced},
		{input: "expert", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDifficulty(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestCompletionStatusCanTransition(t *testing.T) {
	tests := []struct {
		from    CompletionStatus
		to      CompletionStatus
		allowed bool
	}{
		{StatusNotStarted, StatusInProgress, true},
		{StatusNotStarted, StatusCompleted, true},
		{StatusNotStarted, StatusAbandoned, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusAbandoned, true},
		{StatusInProgress, StatusNotStarted, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusAbandoned, false},
		{StatusAbandoned, StatusInProgress, false},
		{StatusCompleted, StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.allowed {
				t.Errorf("Expected %s -> %s allowed=%v, got %v", tt.from, tt.to, tt.allowed, got)
			}
		})
	}
}

func TestComputeMastery(t *testing.T) {
	score := func(v float64) *float64 { return &v }

	tests := []struct {
		name     string
		status   CompletionStatus
		pct      float64
		score    *float64
		expected float64
	}{
		{name: "completed with score", status: StatusCompleted, pct: 100, score: score(85), expected: 0.85},
		{name: "completed with perfect score", status: StatusCompleted, pct: 100, score: score(100), expected: 1.0},
		{name: "completed score above 100 clamps", status: StatusCompleted, pct: 100, score: score(120), expected: 1.0},
		{name: "completed without score", status: StatusCompleted, pct: 100, expected: 0.8},
		{name: "half done earns quarter mastery", status: StatusInProgress, pct: 50, expected: 0.25},
		{name: "partial caps at half", status: StatusInProgress, pct: 150, expected: 0.5},
		{name: "not started", status: StatusNotStarted, pct: 0, expected: 0},
		{name: "abandoned keeps partial credit", status: StatusAbandoned, pct: 30, expected: 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeMastery(tt.status, tt.pct, tt.score)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected mastery %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestStyleVector(t *testing.T) {
	m := LearningMaterial{Styles: []Style{StyleVisual, StyleKinesthetic}}
	v := m.StyleVector()
	if v.Visual != 0.5 || v.Kinesthetic != 0.5 {
		t.Errorf("Expected 0.5 shares for tagged styles, got %+v", v)
	}
	if v.Auditory != 0 || v.ReadingWriting != 0 {
		t.Errorf("Expected zero for untagged styles, got %+v", v)
	}

	empty := LearningMaterial{}
	if empty.StyleVector().Sum() != 0 {
		t.Error("Expected zero vector for untagged material")
	}
}

func TestNewStudentProfile(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewStudentProfile("student-1", now)

	if p.ID != "student-1" {
		t.Errorf("Expected ID student-1, got %s", p.ID)
	}
	if err := p.StyleWeights.Validate(); err != nil {
		t.Errorf("Expected valid initial weights, got %v", err)
	}
	if p.StyleWeights != UniformWeights() {
		t.Errorf("Expected uniform weights, got %+v", p.StyleWeights)
	}
	if p.DifficultyPreference != DifficultyIntermediate {
		t.Errorf("Expected intermediate preference, got %s", p.DifficultyPreference)
	}
}
