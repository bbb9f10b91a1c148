// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import (
	"errors"
	"testing"

	"github.com/awiesler/tutorium/internal/learning"
)

func pathPool() []learning.LearningMaterial {
	return []learning.LearningMaterial{
		{
			ID: "mat-counting", Subject: "math", Topic: "counting",
			Difficulty: learning.DifficultyBeginner, EstimatedDuration: 20,
			Styles: []learning.Style{learning.StyleVisual},
		},
		{
			ID: "mat-algebra", Subject: "math", Topic: "algebra",
			Difficulty: learning.DifficultyIntermediate, EstimatedDuration: 30,
			Prerequisites: []string{"counting"},
			Styles:        []learning.Style{learning.StyleVisual},
		},
		{
			ID: "mat-calculus", Subject: "math", Topic: "calculus",
			Difficulty: learning.DifficultyAdvanced, EstimatedDuration: 60,
			Prerequisites: []string{"algebra"},
			Styles:        []learning.Style{learning.StyleVisual},
		},
	}
}

func stepIndex(path LearningPath, materialID string) int {
	for i, step := range path.Steps {
		if step.Material.ID == materialID {
			return i
		}
	}
	return -1
}

func TestBuildPathOrdersPrerequisitesFirst(t *testing.T) {
	e := newTestEngine(t)
	profile := visualProfile()

	path, err := e.BuildPath(profile, "math", []string{"calculus"}, pathPool(), nil, testNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(path.Steps) != 3 {
		t.Fatalf("Expected 3 steps pulling in unmastered prerequisites, got %d", len(path.Steps))
	}
	counting := stepIndex(path, "mat-counting")
	algebra := stepIndex(path, "mat-algebra")
	calculus := stepIndex(path, "mat-calculus")
	if counting > algebra || algebra > calculus {
		t.Errorf("Expected counting before algebra before calculus, got %d %d %d", counting, algebra, calculus)
	}

	for i, step := range path.Steps {
		if step.Order != i+1 {
			t.Errorf("Expected step order %d, got %d", i+1, step.Order)
		}
	}
	if path.TotalDuration != 110 {
		t.Errorf("Expected total duration 110, got %d", path.TotalDuration)
	}
	if len(path.DifficultyProgression) != 3 {
		t.Fatalf("Expected progression per step, got %d", len(path.DifficultyProgression))
	}
	for i := 1; i < len(path.DifficultyProgression); i++ {
		if path.DifficultyProgression[i] < path.DifficultyProgression[i-1] {
			t.Error("Expected non-decreasing difficulty progression")
		}
	}
}

func TestBuildPathSkipsMasteredPrerequisites(t *testing.T) {
	e := newTestEngine(t)
	profile := visualProfile()

	history := []learning.ProgressRecord{
		completedRecord("mat-counting", "math", "counting", 90, 10),
		completedRecord("mat-algebra", "math", "algebra", 85, 5),
	}

	path, err := e.BuildPath(profile, "math", []string{"calculus"}, pathPool(), history, testNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(path.Steps) != 1 {
		t.Fatalf("Expected only calculus with prerequisites mastered, got %d steps", len(path.Steps))
	}
	if path.Steps[0].Material.ID != "mat-calculus" {
		t.Errorf("Expected calculus, got %s", path.Steps[0].Material.ID)
	}
}

func TestBuildPathMissingPrerequisiteMaterial(t *testing.T) {
	e := newTestEngine(t)
	profile := visualProfile()

	pool := []learning.LearningMaterial{
		{
			ID: "mat-calculus", Subject: "math", Topic: "calculus",
			Difficulty:    learning.DifficultyAdvanced,
			Prerequisites: []string{"algebra"},
		},
	}

	_, err := e.BuildPath(profile, "math", []string{"calculus"}, pool, nil, testNow)
	if !errors.Is(err, ErrUnsatisfiableTargets) {
		t.Errorf("Expected ErrUnsatisfiableTargets for missing prerequisite material, got %v", err)
	}
}

func TestBuildPathDetectsCycle(t *testing.T) {
	e := newTestEngine(t)
	profile := visualProfile()

	pool := []learning.LearningMaterial{
		{ID: "mat-a", Subject: "math", Topic: "a", Prerequisites: []string{"b"}},
		{ID: "mat-b", Subject: "math", Topic: "b", Prerequisites: []string{"a"}},
	}

	_, err := e.BuildPath(profile, "math", []string{"a"}, pool, nil, testNow)
	if !errors.Is(err, ErrUnsatisfiableTargets) {
		t.Errorf("Expected ErrUnsatisfiableTargets for cycle, got %v", err)
	}
}

func TestBuildPathNoTargets(t *testing.T) {
	e := newTestEngine(t)
	profile := visualProfile()

	_, err := e.BuildPath(profile, "math", nil, pathPool(), nil, testNow)
	if !errors.Is(err, ErrUnsatisfiableTargets) {
		t.Errorf("Expected ErrUnsatisfiableTargets for empty targets, got %v", err)
	}
}

func TestBuildPathMarksRemedialSteps(t *testing.T) {
	e := newTestEngine(t)
	profile := visualProfile()

	// Counting was abandoned with little progress, leaving the topic
	// weak and unmastered.
	weak := completedRecord("mat-counting", "math", "counting", 0, 10)
	weak.Status = learning.StatusAbandoned
	weak.Score = nil
	weak.CompletionPercentage = 20
	weak.MasteryLevel = learning.ComputeMastery(weak.Status, weak.CompletionPercentage, nil)

	path, err := e.BuildPath(profile, "math", []string{"algebra"}, pathPool(), []learning.ProgressRecord{weak}, testNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	counting := stepIndex(path, "mat-counting")
	if counting == -1 {
		t.Fatal("Expected weak prerequisite topic pulled into the path")
	}
	if !path.Steps[counting].Remedial {
		t.Error("Expected weak-topic step marked remedial")
	}
	algebra := stepIndex(path, "mat-algebra")
	if counting > algebra {
		t.Error("Expected remedial counting before algebra")
	}
}

func TestBuildPathIgnoresOtherSubjects(t *testing.T) {
	e := newTestEngine(t)
	profile := visualProfile()

	pool := append(pathPool(), learning.LearningMaterial{
		ID: "mat-physics", Subject: "science", Topic: "counting",
		Difficulty: learning.DifficultyBeginner,
	})

	path, err := e.BuildPath(profile, "math", []string{"counting"}, pool, nil, testNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stepIndex(path, "mat-physics") != -1 {
		t.Error("Expected materials from other subjects excluded")
	}
}
