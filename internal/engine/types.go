// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import (
	"fmt"

	"github.com/awiesler/tutorium/internal/learning"
)

// RecommendationType classifies a recommendation by intent.
type RecommendationType int

const (
	// TypeNextTopic is the default: unattempted material whose
	// prerequisites are satisfied.
	TypeNextTopic RecommendationType = iota
	// TypeReview is a spaced-repetition revisit of completed material.
	TypeReview
	// TypeChallenge is material one level above the current target for
	// students with a strong style fit.
	TypeChallenge
	// TypeRemedial reinforces a related topic with low mastery.
	TypeRemedial
)

// String returns the wire name of the recommendation type.
func (t RecommendationType) String() string {
	switch t {
	case TypeNextTopic:
		return "next_topic"
	case TypeReview:
		return "review"
	case TypeChallenge:
		return "challenge"
	case TypeRemedial:
		return "remedial"
	default:
		return "unknown"
	}
}

// ParseRecommendationType parses a wire name.
func ParseRecommendationType(s string) (RecommendationType, bool) {
	switch s {
	case "next_topic":
		return TypeNextTopic, true
	case "review":
		return TypeReview, true
	case "challenge":
		return TypeChallenge, true
	case "remedial":
		return TypeRemedial, true
	default:
		return TypeNextTopic, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t RecommendationType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *RecommendationType) UnmarshalText(text []byte) error {
	parsed, ok := ParseRecommendationType(string(text))
	if !ok {
		return fmt.Errorf("unknown recommendation type %q", string(text))
	}
	*t = parsed
	return nil
}

// Suitability is the composite fit between a student and a material,
// with the per-factor breakdown kept for explainability.
type Suitability struct {
	// Score is the weighted composite, 0-1.
	Score float64 `json:"score"`

	// StyleFit is the normalized dot product between the student's
	// style weights and the material's style vector, 0-1.
	StyleFit float64 `json:"style_fit"`

	// DifficultyFit is 1.0 for an exact target match, 0.5 one level
	// off, 0.0 two levels off.
	DifficultyFit float64 `json:"difficulty_fit"`

	// Novelty is 1.0 for unattempted material, decaying with prior
	// completions and recovering with elapsed time.
	Novelty float64 `json:"novelty"`

	// PrereqReadiness is the share of prerequisite topics mastered
	// above the configured threshold, 0-1.
	PrereqReadiness float64 `json:"prerequisite_readiness"`

	// Gated reports that strict prerequisite gating excluded the
	// material from ranking entirely.
	Gated bool `json:"gated,omitempty"`
}

// Recommendation is one ranked suggestion. Derived, never persisted by
// this core.
type Recommendation struct {
	Material learning.LearningMaterial `json:"material"`

	Type RecommendationType `json:"recommendation_type"`

	// Reasoning is a human-readable justification generated from the
	// dominant contributing sub-score.
	Reasoning string `json:"reasoning"`

	// ConfidenceScore is the suitability score itself, 0-1.
	ConfidenceScore float64 `json:"confidence_score"`

	// PriorityScore is the confidence adjusted by the type boost.
	// Unbounded; used only for sort order.
	PriorityScore float64 `json:"priority_score"`

	// Suitability is the full scoring breakdown.
	Suitability Suitability `json:"suitability"`

	// Predicted carries the optional performance forecast.
	Predicted *Prediction `json:"predicted_performance,omitempty"`
}

// Prediction is a lightweight performance forecast for a (student,
// material) pair.
type Prediction struct {
	// PredictedScore is the expected assessment score, 0-100.
	PredictedScore float64 `json:"predicted_score"`

	// CompletionProbability is the chance the student finishes, 0-1.
	CompletionProbability float64 `json:"completion_probability"`

	// EstimatedCompletionTime is the pace-adjusted duration estimate
	// in minutes.
	EstimatedCompletionTime int `json:"estimated_completion_time"`

	// Confidence shrinks toward zero with fewer historical
	// observations, 0-1.
	Confidence float64 `json:"confidence"`
}

// Assessment is an explicit VARK self-assessment: four raw appeal
// ratings, each in [0, 10].
type Assessment struct {
	Visual         float64 `json:"visual" validate:"gte=0,lte=10"`
	Auditory       float64 `json:"auditory" validate:"gte=0,lte=10"`
	ReadingWriting float64 `json:"reading_writing" validate:"gte=0,lte=10"`
	Kinesthetic    float64 `json:"kinesthetic" validate:"gte=0,lte=10"`
}

// StyleUpdate is the result of a profiler run. Dominant style and
// confidence are derived from the weights, reported but never treated
// as ground truth.
type StyleUpdate struct {
	Weights       learning.StyleWeights `json:"style_weights"`
	DominantStyle learning.Style        `json:"dominant_style"`

	// Confidence is the dominant weight minus the runner-up weight.
	Confidence float64 `json:"confidence"`
}

// PathStep is one ordered element of a learning path.
type PathStep struct {
	Material learning.LearningMaterial `json:"material"`

	Suitability Suitability `json:"suitability"`

	// Remedial marks a step inserted to repair low mastery; remedial
	// steps are exempt from the non-decreasing difficulty invariant.
	Remedial bool `json:"remedial,omitempty"`

	// Order is the 1-based position in the path.
	Order int `json:"order"`
}

// LearningPath is an ordered sequence of path steps for one (student,
// subject, target topics) request. Prerequisite topics of step i are
// either already mastered or appear at an earlier index.
type LearningPath struct {
	Subject string     `json:"subject"`
	Steps   []PathStep `json:"steps"`

	// TotalDuration is the sum of estimated durations in minutes.
	TotalDuration int `json:"total_duration"`

	// DifficultyProgression lists the per-step difficulty, non-
	// decreasing except at remedial insertions.
	DifficultyProgression []learning.DifficultyLevel `json:"difficulty_progression"`
}

// Trend labels the direction of recent performance.
type Trend string

const (
	// TrendImproving means second-half scores beat first-half scores
	// beyond the noise threshold.
	TrendImproving Trend = "improving"
	// TrendDeclining means second-half scores trail first-half scores
	// beyond the noise threshold.
	TrendDeclining Trend = "declining"
	// TrendStable means the difference is within noise.
	TrendStable Trend = "stable"
)

// ConsistencyPattern bands the variability of scored work.
type ConsistencyPattern string

const (
	// ConsistencyVeryConsistent: score standard deviation under 10.
	ConsistencyVeryConsistent ConsistencyPattern = "very_consistent"
	// ConsistencyConsistent: standard deviation under 20.
	ConsistencyConsistent ConsistencyPattern = "consistent"
	// ConsistencyVariable: standard deviation under 30.
	ConsistencyVariable ConsistencyPattern = "variable"
	// ConsistencyInconsistent: standard deviation 30 or more.
	ConsistencyInconsistent ConsistencyPattern = "inconsistent"
)

// SubjectSummary is the per-subject analytics breakdown.
type SubjectSummary struct {
	AverageScore   float64 `json:"average_score"`
	CompletionRate float64 `json:"completion_rate"`
	MasteryLevel   float64 `json:"mastery_level"`
	MaterialCount  int     `json:"material_count"`

	// ScoredCount is the number of records carrying a score; strengths
	// and weaknesses require a minimum sample size.
	ScoredCount int `json:"scored_count"`
}

// Summary aggregates a student's windowed progress history. An empty
// history yields the zero summary with TrendStable, never an error.
type Summary struct {
	// AverageScore is the mean of all scored records, 0-100.
	AverageScore float64 `json:"average_score"`

	// ScoreStdDev is the standard deviation of scored records.
	ScoreStdDev float64 `json:"score_std_dev"`

	// CompletionRate is completed / (completed + abandoned + in
	// progress).
	CompletionRate float64 `json:"completion_rate"`

	// PerformanceTrend compares first-half and second-half mean
	// scores.
	PerformanceTrend Trend `json:"performance_trend"`

	// LearningVelocity is the rate of mastery gain per study hour.
	LearningVelocity float64 `json:"learning_velocity"`

	// Consistency bands the score variance.
	Consistency ConsistencyPattern `json:"consistency_pattern"`

	// PaceRatio is actual time spent over estimated duration across
	// completed materials; 1.0 when history carries no estimates.
	PaceRatio float64 `json:"pace_ratio"`

	// SubjectBreakdown is keyed by subject.
	SubjectBreakdown map[string]SubjectSummary `json:"subject_breakdown"`

	// Strengths lists subjects above the strength threshold with a
	// minimum sample size.
	Strengths []string `json:"strengths"`

	// AreasForImprovement lists subjects below the weakness threshold.
	AreasForImprovement []string `json:"areas_for_improvement"`

	// TotalAttempted counts records in the window.
	TotalAttempted int `json:"total_attempted"`

	// MaterialsCompleted counts completed records in the window.
	MaterialsCompleted int `json:"materials_completed"`

	// TotalStudyTime is the summed time spent in minutes.
	TotalStudyTime int `json:"total_study_time"`

	// LearningStreak is the consecutive-active-day count ending at the
	// most recent activity.
	LearningStreak int `json:"learning_streak"`
}

// ProgressEvent is one interaction submission against a (student,
// material) pair. The engine folds it into the existing record (if
// any) and returns the new record value.
type ProgressEvent struct {
	StudentID  string `json:"student_id"`
	MaterialID string `json:"material_id" validate:"required"`

	// CompletionPercentage is the new cumulative completion, 0-100.
	CompletionPercentage float64 `json:"completion_percentage" validate:"gte=0,lte=100"`

	// TimeSpentDelta is additional minutes on task since the last
	// event.
	TimeSpentDelta int `json:"time_spent_delta" validate:"gte=0"`

	// Score is the assessment score, only meaningful at completion.
	Score *float64 `json:"score,omitempty" validate:"omitempty,gte=0,lte=100"`

	// Abandoned marks the attempt as abandoned (terminal).
	Abandoned bool `json:"abandoned,omitempty"`
}
