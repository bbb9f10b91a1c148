// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

// Package learning defines the domain vocabulary shared by the
// personalization engine and its collaborators: student profiles,
// catalog materials and progress records.
//
// All types are plain JSON-serializable snapshots. Nothing in this
// package touches storage; callers pass values in and persist the
// values that come back.
package learning

import (
	"fmt"
	"time"
)

// Style is one of the four VARK learning style dimensions.
type Style string

const (
	// StyleVisual prefers charts, diagrams and images.
	StyleVisual Style = "visual"
	// StyleAuditory prefers lectures, discussion and audio.
	StyleAuditory Style = "auditory"
	// StyleReadingWriting prefers text-based materials.
	StyleReadingWriting Style = "reading_writing"
	// StyleKinesthetic prefers hands-on practice and simulation.
	StyleKinesthetic Style = "kinesthetic"
)

// Styles returns the four VARK dimensions in canonical order.
// The order is fixed so that iteration is deterministic.
func Styles() []Style {
	return []Style{StyleVisual, StyleAuditory, StyleReadingWriting, StyleKinesthetic}
}

// WeightEpsilon is the tolerance used when checking that style weights
// sum to 1.0.
const WeightEpsilon = 1e-6

// StyleWeights is a normalized preference vector over the four VARK
// dimensions. A valid vector has every component in [0, 1] and the
// components summing to 1.0 within WeightEpsilon.
type StyleWeights struct {
	Visual         float64 `json:"visual"`
	Auditory       float64 `json:"auditory"`
	ReadingWriting float64 `json:"reading_writing"`
	Kinesthetic    float64 `json:"kinesthetic"`
}

// UniformWeights returns the cold-start vector: 0.25 for every style.
func UniformWeights() StyleWeights {
	return StyleWeights{Visual: 0.25, Auditory: 0.25, ReadingWriting: 0.25, Kinesthetic: 0.25}
}

// Get returns the weight for a single style. Unknown styles map to 0.
func (w StyleWeights) Get(s Style) float64 {
	switch s {
	case StyleVisual:
		return w.Visual
	case StyleAuditory:
		return w.Auditory
	case StyleReadingWriting:
		return w.ReadingWriting
	case StyleKinesthetic:
		return w.Kinesthetic
	default:
		return 0
	}
}

// Set returns a copy with the weight for s replaced by v.
func (w StyleWeights) Set(s Style, v float64) StyleWeights {
	switch s {
	case StyleVisual:
		w.Visual = v
	case StyleAuditory:
		w.Auditory = v
	case StyleReadingWriting:
		w.ReadingWriting = v
	case StyleKinesthetic:
		w.Kinesthetic = v
	}
	return w
}

// Sum returns the total of all four weights.
func (w StyleWeights) Sum() float64 {
	return w.Visual + w.Auditory + w.ReadingWriting + w.Kinesthetic
}

// Normalize returns a copy scaled so the weights sum to 1.0.
// A zero vector normalizes to the uniform vector rather than dividing
// by zero.
func (w StyleWeights) Normalize() StyleWeights {
	sum := w.Sum()
	if sum <= 0 {
		return UniformWeights()
	}
	return StyleWeights{
		Visual:         w.Visual / sum,
		Auditory:       w.Auditory / sum,
		ReadingWriting: w.ReadingWriting / sum,
		Kinesthetic:    w.Kinesthetic / sum,
	}
}

// Dominant returns the style with the highest weight and the margin to
// the runner-up. Ties resolve in canonical style order so the result
// is deterministic.
func (w StyleWeights) Dominant() (Style, float64) {
	best := StyleVisual
	bestWeight := w.Visual
	second := 0.0
	for _, s := range Styles()[1:] {
		v := w.Get(s)
		switch {
		case v > bestWeight:
			second = bestWeight
			best = s
			bestWeight = v
		case v > second:
			second = v
		}
	}
	return best, bestWeight - second
}

// Validate checks the vector invariants: every weight in [0, 1] and a
// total of 1.0 within WeightEpsilon.
func (w StyleWeights) Validate() error {
	for _, s := range Styles() {
		v := w.Get(s)
		if v < 0 || v > 1 {
			return fmt.Errorf("style weight %s out of range [0, 1]: %f", s, v)
		}
	}
	if sum := w.Sum(); sum < 1-WeightEpsilon || sum > 1+WeightEpsilon {
		return fmt.Errorf("style weights must sum to 1.0, got %f", sum)
	}
	return nil
}

// ToMap returns the weights keyed by style name.
func (w StyleWeights) ToMap() map[Style]float64 {
	return map[Style]float64{
		StyleVisual:         w.Visual,
		StyleAuditory:       w.Auditory,
		StyleReadingWriting: w.ReadingWriting,
		StyleKinesthetic:    w.Kinesthetic,
	}
}

// DifficultyLevel is the ordinal difficulty of a material or the
// target band for a student. Beginner < Intermediate < Advanced.
type DifficultyLevel int

const (
	// DifficultyBeginner is the lowest ordinal level.
	DifficultyBeginner DifficultyLevel = iota
	// DifficultyIntermediate is the middle ordinal level.
	DifficultyIntermediate
	// DifficultyAdvanced is the highest ordinal level.
	DifficultyAdvanced
)

// String returns the wire name of the level.
func (d DifficultyLevel) String() string {
	switch d {
	case DifficultyBeginner:
		return "beginner"
	case DifficultyIntermediate:
		return "intermediate"
	case DifficultyAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a wire name into a DifficultyLevel.
func ParseDifficulty(s string) (DifficultyLevel, error) {
	switch s {
	case "beginner":
		return DifficultyBeginner, nil
	case "intermediate":
		return DifficultyIntermediate, nil
	case "advanced":
		return DifficultyAdvanced, nil
	default:
		return DifficultyBeginner, fmt.Errorf("unknown difficulty level %q", s)
	}
}

// StepUp returns the next level, capped at advanced.
func (d DifficultyLevel) StepUp() DifficultyLevel {
	if d >= DifficultyAdvanced {
		return DifficultyAdvanced
	}
	return d + 1
}

// StepDown returns the previous level, floored at beginner.
func (d DifficultyLevel) StepDown() DifficultyLevel {
	if d <= DifficultyBeginner {
		return DifficultyBeginner
	}
	return d - 1
}

// Distance returns the absolute ordinal distance between two levels.
func (d DifficultyLevel) Distance(other DifficultyLevel) int {
	diff := int(d) - int(other)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// MarshalText implements encoding.TextMarshaler so the level appears
// as its wire name in JSON.
func (d DifficultyLevel) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DifficultyLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// CompletionStatus is the lifecycle state of a progress record.
type CompletionStatus string

const (
	// StatusNotStarted means the record exists but no work was done yet.
	StatusNotStarted CompletionStatus = "not_started"
	// StatusInProgress means the student has begun the material.
	StatusInProgress CompletionStatus = "in_progress"
	// StatusCompleted means the student finished the material.
	StatusCompleted CompletionStatus = "completed"
	// StatusAbandoned is terminal from any state.
	StatusAbandoned CompletionStatus = "abandoned"
)

// CanTransition reports whether a status change is allowed. The
// lifecycle is monotonic forward (not_started -> in_progress ->
// completed) except that abandoned is reachable from any non-terminal
// state. Re-asserting the current status is always allowed.
func (s CompletionStatus) CanTransition(to CompletionStatus) bool {
	if s == to {
		return true
	}
	switch s {
	case StatusNotStarted:
		return to == StatusInProgress || to == StatusCompleted || to == StatusAbandoned
	case StatusInProgress:
		return to == StatusCompleted || to == StatusAbandoned
	case StatusCompleted, StatusAbandoned:
		return false
	default:
		return false
	}
}

// Terminal reports whether no further transitions are allowed.
func (s CompletionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// StudentProfile is the per-student personalization snapshot. The
// engine never mutates a profile in place; operations return a new
// value and the caller persists it.
type StudentProfile struct {
	ID string `json:"id"`

	// StyleWeights is the VARK preference vector. Invariant: sums to
	// 1.0 within WeightEpsilon, each component in [0, 1].
	StyleWeights StyleWeights `json:"style_weights"`

	// DominantStyle is the argmax of StyleWeights. Derived, stored for
	// collaborator convenience only.
	DominantStyle Style `json:"dominant_style"`

	// DifficultyPreference is the student's stated difficulty band,
	// used when history is too sparse for the ZPD controller.
	DifficultyPreference DifficultyLevel `json:"difficulty_preference"`

	// PerformanceScore is the rolling overall score, 0-100.
	PerformanceScore float64 `json:"performance_score"`

	// LearningStreak is the number of consecutive active days.
	LearningStreak int `json:"learning_streak"`

	// TotalStudyTime is cumulative study time in minutes.
	TotalStudyTime int `json:"total_study_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStudentProfile returns an enrollment-time profile with uniform
// style weights and an intermediate difficulty preference.
func NewStudentProfile(id string, now time.Time) StudentProfile {
	return StudentProfile{
		ID:                   id,
		StyleWeights:         UniformWeights(),
		DominantStyle:        StyleVisual,
		DifficultyPreference: DifficultyIntermediate,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// LearningMaterial is an immutable catalog entry owned by the content
// management collaborator.
type LearningMaterial struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Subject     string          `json:"subject"`
	Topic       string          `json:"topic"`
	Difficulty  DifficultyLevel `json:"difficulty_level"`
	ContentType string          `json:"content_type"`

	// Styles is the set of VARK styles this material serves.
	Styles []Style `json:"learning_styles"`

	// Prerequisites is the set of topic IDs that should be mastered
	// before attempting this material.
	Prerequisites []string `json:"prerequisites"`

	// EstimatedDuration is the expected completion time in minutes.
	EstimatedDuration int `json:"estimated_duration"`

	// AverageRating is the aggregate student rating, 0-5.
	AverageRating float64 `json:"average_rating"`

	// ComplexityScore is the intrinsic content complexity, 0-1.
	ComplexityScore float64 `json:"complexity_score"`
}

// ServesStyle reports whether the material is tagged with s.
func (m LearningMaterial) ServesStyle(s Style) bool {
	for _, tag := range m.Styles {
		if tag == s {
			return true
		}
	}
	return false
}

// StyleVector returns an indicator vector over the four VARK
// dimensions, normalized so the tagged styles sum to 1.0. Materials
// with no style tags yield the zero vector.
func (m LearningMaterial) StyleVector() StyleWeights {
	var v StyleWeights
	if len(m.Styles) == 0 {
		return v
	}
	share := 1.0 / float64(len(m.Styles))
	for _, s := range m.Styles {
		v = v.Set(s, v.Get(s)+share)
	}
	return v
}

// ProgressRecord is one (student, material) attempt lifecycle. Subject
// and Topic are denormalized from the catalog at creation so that
// history analysis needs no catalog joins.
type ProgressRecord struct {
	ID         string `json:"id"`
	StudentID  string `json:"student_id"`
	MaterialID string `json:"material_id"`
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`

	Status CompletionStatus `json:"completion_status"`

	// CompletionPercentage is 0-100.
	CompletionPercentage float64 `json:"completion_percentage"`

	// TimeSpent is minutes on task, non-decreasing while in progress.
	TimeSpent int `json:"time_spent"`

	// EstimatedDuration is the catalog estimate in minutes,
	// denormalized at creation for pace analysis.
	EstimatedDuration int `json:"estimated_duration"`

	// Score is the assessment score, 0-100, set only at completion.
	Score *float64 `json:"score,omitempty"`

	// MasteryLevel is the derived 0-1 mastery estimate, recomputed on
	// every update.
	MasteryLevel float64 `json:"mastery_level"`

	// Attempts counts submissions against this material.
	Attempts int `json:"attempts"`

	// ReviewCount counts completed spaced-repetition reviews.
	ReviewCount int `json:"review_count"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Completed reports whether the record reached completed state.
func (r ProgressRecord) Completed() bool {
	return r.Status == StatusCompleted
}

// ComputeMastery derives the mastery level for a record state. A
// completed record with a score maps the score onto [0, 1]; a
// completed record without a score is credited 0.8; partial work earns
// half credit for its completion percentage.
func ComputeMastery(status CompletionStatus, completionPercentage float64, score *float64) float64 {
	switch {
	case status == StatusCompleted && score != nil:
		m := *score / 100.0
		if m > 1 {
			m = 1
		}
		if m < 0 {
			m = 0
		}
		return m
	case status == StatusCompleted:
		return 0.8
	default:
		m := completionPercentage / 200.0
		if m > 0.5 {
			m = 0.5
		}
		if m < 0 {
			m = 0
		}
		return m
	}
}
