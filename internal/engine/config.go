// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import (
	"fmt"
	"time"
)

// Config contains all tunable parameters of the personalization
// engine. Every numeric threshold the components use lives here rather
// than in code; DefaultConfig documents the values the engine ships
// with.
type Config struct {
	// Profiler contains parameters for the style profiler.
	Profiler ProfilerConfig `json:"profiler" koanf:"profiler"`

	// Difficulty contains parameters for the ZPD difficulty controller.
	Difficulty DifficultyConfig `json:"difficulty" koanf:"difficulty"`

	// Scoring contains parameters for the suitability scorer.
	Scoring ScoringConfig `json:"scoring" koanf:"scoring"`

	// Recommend contains parameters for recommendation building.
	Recommend RecommendConfig `json:"recommend" koanf:"recommend"`

	// Prediction contains parameters for performance prediction.
	Prediction PredictionConfig `json:"prediction" koanf:"prediction"`

	// Analytics contains parameters for progress summarization.
	Analytics AnalyticsConfig `json:"analytics" koanf:"analytics"`

	// Limits contains operational limits shared by all components.
	Limits LimitsConfig `json:"limits" koanf:"limits"`
}

// ProfilerConfig contains parameters for the style profiler.
type ProfilerConfig struct {
	// SmoothingAlpha is the exponential smoothing constant for
	// implicit style updates: new = alpha*signal + (1-alpha)*old.
	// Higher values make recent behavior dominate faster.
	// Default: 0.2.
	SmoothingAlpha float64 `json:"smoothing_alpha" koanf:"smoothing_alpha"`

	// CompletionWeight is the share of the implicit signal strength
	// contributed by completion percentage.
	// Default: 0.4.
	CompletionWeight float64 `json:"completion_weight" koanf:"completion_weight"`

	// ScoreWeight is the share contributed by the assessment score.
	// Default: 0.4.
	ScoreWeight float64 `json:"score_weight" koanf:"score_weight"`

	// EfficiencyWeight is the share contributed by time-on-task
	// efficiency relative to the material's estimated duration.
	// Default: 0.2.
	EfficiencyWeight float64 `json:"efficiency_weight" koanf:"efficiency_weight"`
}

// DifficultyConfig contains parameters for the difficulty controller.
type DifficultyConfig struct {
	// WindowSize is the number of most recent completed records used
	// for the rolling average. Fewer than two scored records returns
	// the student's stated preference unchanged.
	// Default: 5.
	WindowSize int `json:"window_size" koanf:"window_size"`

	// HighThreshold is the rolling average score at or above which
	// difficulty steps up one level.
	// Default: 85.
	HighThreshold float64 `json:"high_threshold" koanf:"high_threshold"`

	// LowThreshold is the rolling average score at or below which
	// difficulty steps down one level.
	// Default: 60.
	LowThreshold float64 `json:"low_threshold" koanf:"low_threshold"`

	// MinCompletionRate is the completion rate required before a step
	// up is allowed. Prevents promotion on a few lucky completions
	// amid many abandonments.
	// Default: 0.5.
	MinCompletionRate float64 `json:"min_completion_rate" koanf:"min_completion_rate"`
}

// ScoringConfig contains parameters for the suitability scorer.
type ScoringConfig struct {
	// StyleWeight is the contribution of style fit to the composite
	// score. Weights are normalized at runtime.
	// Default: 0.3.
	StyleWeight float64 `json:"style_weight" koanf:"style_weight"`

	// DifficultyWeight is the contribution of difficulty fit.
	// Default: 0.3.
	DifficultyWeight float64 `json:"difficulty_weight" koanf:"difficulty_weight"`

	// NoveltyWeight is the contribution of novelty.
	// Default: 0.2.
	NoveltyWeight float64 `json:"novelty_weight" koanf:"novelty_weight"`

	// PrerequisiteWeight is the contribution of prerequisite
	// readiness.
	// Default: 0.2.
	PrerequisiteWeight float64 `json:"prerequisite_weight" koanf:"prerequisite_weight"`

	// MasteryThreshold is the mastery level at which a prerequisite
	// topic counts as satisfied.
	// Default: 0.7.
	MasteryThreshold float64 `json:"mastery_threshold" koanf:"mastery_threshold"`

	// StrictPrerequisites gates materials with unmet prerequisites out
	// of ranking entirely instead of scoring them low.
	// Default: true.
	StrictPrerequisites bool `json:"strict_prerequisites" koanf:"strict_prerequisites"`

	// NoveltyHalfLife is the elapsed time after which a previously
	// completed material recovers half of its lost novelty.
	// Default: 720h (30 days).
	NoveltyHalfLife time.Duration `json:"novelty_half_life" koanf:"novelty_half_life"`

	// NoveltyCompletionDecay is the multiplicative novelty penalty per
	// prior completion.
	// Default: 0.5.
	NoveltyCompletionDecay float64 `json:"novelty_completion_decay" koanf:"novelty_completion_decay"`
}

// RecommendConfig contains parameters for recommendation building.
type RecommendConfig struct {
	// RemediationThreshold is the mastery level below which a finished
	// prerequisite-adjacent topic triggers remedial recommendations.
	// Default: 0.4.
	RemediationThreshold float64 `json:"remediation_threshold" koanf:"remediation_threshold"`

	// ReviewBaseInterval is the base spaced-repetition interval. A
	// completed material is due for review after
	// ReviewBaseInterval * 2^review_count.
	// Default: 336h (14 days).
	ReviewBaseInterval time.Duration `json:"review_base_interval" koanf:"review_base_interval"`

	// ChallengeStyleFitMin is the style fit required before a
	// one-level-above material is classified as a challenge.
	// Default: 0.6.
	ChallengeStyleFitMin float64 `json:"challenge_style_fit_min" koanf:"challenge_style_fit_min"`

	// Boosts are the per-type priority multipliers applied to the
	// suitability score. Remedial outranks review outranks next_topic
	// outranks challenge, reflecting urgency.
	Boosts TypeBoosts `json:"boosts" koanf:"boosts"`
}

// TypeBoosts are multiplicative priority boosts per recommendation
// type.
type TypeBoosts struct {
	// Remedial boost. Default: 1.3.
	Remedial float64 `json:"remedial" koanf:"remedial"`

	// Review boost. Default: 1.2.
	Review float64 `json:"review" koanf:"review"`

	// NextTopic boost. Default: 1.1.
	NextTopic float64 `json:"next_topic" koanf:"next_topic"`

	// Challenge boost. Default: 1.0.
	Challenge float64 `json:"challenge" koanf:"challenge"`
}

// PredictionConfig contains parameters for performance prediction.
type PredictionConfig struct {
	// StyleWeight is the style fit contribution to the predicted
	// score. Default: 0.4.
	StyleWeight float64 `json:"style_weight" koanf:"style_weight"`

	// DifficultyWeight is the difficulty fit contribution.
	// Default: 0.3.
	DifficultyWeight float64 `json:"difficulty_weight" koanf:"difficulty_weight"`

	// PerformanceWeight is the prior subject performance contribution.
	// Default: 0.3.
	PerformanceWeight float64 `json:"performance_weight" koanf:"performance_weight"`

	// ComplexityPenalty scales how much material complexity depresses
	// the completion probability. Default: 0.2.
	ComplexityPenalty float64 `json:"complexity_penalty" koanf:"complexity_penalty"`

	// FullConfidenceObservations is the number of historical records
	// at which prediction confidence stops growing.
	// Default: 10.
	FullConfidenceObservations int `json:"full_confidence_observations" koanf:"full_confidence_observations"`
}

// AnalyticsConfig contains parameters for progress summarization.
type AnalyticsConfig struct {
	// WindowDays is the default summarization window.
	// Default: 30.
	WindowDays int `json:"window_days" koanf:"window_days"`

	// TrendNoise is the absolute first-half/second-half mean score
	// difference below which the trend reports stable.
	// Default: 5.0.
	TrendNoise float64 `json:"trend_noise" koanf:"trend_noise"`

	// StrengthThreshold is the subject average score at or above which
	// a subject counts as a strength.
	// Default: 85.
	StrengthThreshold float64 `json:"strength_threshold" koanf:"strength_threshold"`

	// WeaknessThreshold is the subject average score at or below which
	// a subject counts as an area for improvement.
	// Default: 60.
	WeaknessThreshold float64 `json:"weakness_threshold" koanf:"weakness_threshold"`

	// MinSamples is the minimum scored records per subject before it
	// can be labeled a strength or weakness.
	// Default: 2.
	MinSamples int `json:"min_samples" koanf:"min_samples"`
}

// LimitsConfig contains operational limits shared by all components.
type LimitsConfig struct {
	// MaxHistory caps the number of progress records any component
	// examines, keeping cost bounded regardless of lifetime history.
	// Default: 100.
	MaxHistory int `json:"max_history" koanf:"max_history"`

	// DefaultLimit is the default number of recommendations returned.
	// Default: 5.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// MaxLimit is the maximum allowed recommendation count.
	// Default: 20.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Profiler: ProfilerConfig{
			SmoothingAlpha:   0.2,
			CompletionWeight: 0.4,
			ScoreWeight:      0.4,
			EfficiencyWeight: 0.2,
		},
		Difficulty: DifficultyConfig{
			WindowSize:        5,
			HighThreshold:     85,
			LowThreshold:      60,
			MinCompletionRate: 0.5,
		},
		Scoring: ScoringConfig{
			StyleWeight:            0.3,
			DifficultyWeight:       0.3,
			NoveltyWeight:          0.2,
			PrerequisiteWeight:     0.2,
			MasteryThreshold:       0.7,
			StrictPrerequisites:    true,
			NoveltyHalfLife:        720 * time.Hour,
			NoveltyCompletionDecay: 0.5,
		},
		Recommend: RecommendConfig{
			RemediationThreshold: 0.4,
			ReviewBaseInterval:   336 * time.Hour,
			ChallengeStyleFitMin: 0.6,
			Boosts: TypeBoosts{
				Remedial:  1.3,
				Review:    1.2,
				NextTopic: 1.1,
				Challenge: 1.0,
			},
		},
		Prediction: PredictionConfig{
			StyleWeight:                0.4,
			DifficultyWeight:           0.3,
			PerformanceWeight:          0.3,
			ComplexityPenalty:          0.2,
			FullConfidenceObservations: 10,
		},
		Analytics: AnalyticsConfig{
			WindowDays:        30,
			TrendNoise:        5.0,
			StrengthThreshold: 85,
			WeaknessThreshold: 60,
			MinSamples:        2,
		},
		Limits: LimitsConfig{
			MaxHistory:   100,
			DefaultLimit: 5,
			MaxLimit:     20,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.Profiler.SmoothingAlpha <= 0 || c.Profiler.SmoothingAlpha > 1 {
		return fmt.Errorf("profiler.smoothing_alpha must be in (0, 1], got %f", c.Profiler.SmoothingAlpha)
	}
	if c.Profiler.CompletionWeight < 0 || c.Profiler.ScoreWeight < 0 || c.Profiler.EfficiencyWeight < 0 {
		return fmt.Errorf("profiler signal weights must be non-negative")
	}
	if c.Profiler.CompletionWeight+c.Profiler.ScoreWeight+c.Profiler.EfficiencyWeight == 0 {
		return fmt.Errorf("profiler signal weights must not all be zero")
	}

	if c.Difficulty.WindowSize < 2 {
		return fmt.Errorf("difficulty.window_size must be at least 2, got %d", c.Difficulty.WindowSize)
	}
	if c.Difficulty.HighThreshold <= c.Difficulty.LowThreshold {
		return fmt.Errorf("difficulty.high_threshold must exceed low_threshold, got %f <= %f",
			c.Difficulty.HighThreshold, c.Difficulty.LowThreshold)
	}
	if c.Difficulty.MinCompletionRate < 0 || c.Difficulty.MinCompletionRate > 1 {
		return fmt.Errorf("difficulty.min_completion_rate must be in [0, 1], got %f", c.Difficulty.MinCompletionRate)
	}

	if c.Scoring.StyleWeight < 0 || c.Scoring.DifficultyWeight < 0 ||
		c.Scoring.NoveltyWeight < 0 || c.Scoring.PrerequisiteWeight < 0 {
		return fmt.Errorf("scoring weights must be non-negative")
	}
	if c.Scoring.StyleWeight+c.Scoring.DifficultyWeight+c.Scoring.NoveltyWeight+c.Scoring.PrerequisiteWeight == 0 {
		return fmt.Errorf("scoring weights must not all be zero")
	}
	if c.Scoring.MasteryThreshold < 0 || c.Scoring.MasteryThreshold > 1 {
		return fmt.Errorf("scoring.mastery_threshold must be in [0, 1], got %f", c.Scoring.MasteryThreshold)
	}
	if c.Scoring.NoveltyHalfLife <= 0 {
		return fmt.Errorf("scoring.novelty_half_life must be positive, got %v", c.Scoring.NoveltyHalfLife)
	}
	if c.Scoring.NoveltyCompletionDecay <= 0 || c.Scoring.NoveltyCompletionDecay >= 1 {
		return fmt.Errorf("scoring.novelty_completion_decay must be in (0, 1), got %f", c.Scoring.NoveltyCompletionDecay)
	}

	if c.Recommend.RemediationThreshold < 0 || c.Recommend.RemediationThreshold > 1 {
		return fmt.Errorf("recommend.remediation_threshold must be in [0, 1], got %f", c.Recommend.RemediationThreshold)
	}
	if c.Recommend.ReviewBaseInterval <= 0 {
		return fmt.Errorf("recommend.review_base_interval must be positive, got %v", c.Recommend.ReviewBaseInterval)
	}
	if c.Recommend.ChallengeStyleFitMin < 0 || c.Recommend.ChallengeStyleFitMin > 1 {
		return fmt.Errorf("recommend.challenge_style_fit_min must be in [0, 1], got %f", c.Recommend.ChallengeStyleFitMin)
	}
	b := c.Recommend.Boosts
	if b.Remedial <= 0 || b.Review <= 0 || b.NextTopic <= 0 || b.Challenge <= 0 {
		return fmt.Errorf("recommend boosts must be positive")
	}
	if !(b.Remedial > b.Review && b.Review > b.NextTopic && b.NextTopic > b.Challenge) {
		return fmt.Errorf("recommend boosts must satisfy remedial > review > next_topic > challenge")
	}

	if c.Prediction.FullConfidenceObservations < 1 {
		return fmt.Errorf("prediction.full_confidence_observations must be positive, got %d",
			c.Prediction.FullConfidenceObservations)
	}
	if c.Prediction.StyleWeight+c.Prediction.DifficultyWeight+c.Prediction.PerformanceWeight == 0 {
		return fmt.Errorf("prediction weights must not all be zero")
	}

	if c.Analytics.WindowDays < 1 {
		return fmt.Errorf("analytics.window_days must be positive, got %d", c.Analytics.WindowDays)
	}
	if c.Analytics.TrendNoise < 0 {
		return fmt.Errorf("analytics.trend_noise must be non-negative, got %f", c.Analytics.TrendNoise)
	}
	if c.Analytics.MinSamples < 1 {
		return fmt.Errorf("analytics.min_samples must be positive, got %d", c.Analytics.MinSamples)
	}

	if c.Limits.MaxHistory < 1 {
		return fmt.Errorf("limits.max_history must be positive, got %d", c.Limits.MaxHistory)
	}
	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d",
			c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types
	clone := *c
	return &clone
}

// normalizedScoringWeights returns the four suitability weights scaled
// to sum to 1.0.
func (c *Config) normalizedScoringWeights() (style, difficulty, novelty, prereq float64) {
	s := c.Scoring
	sum := s.StyleWeight + s.DifficultyWeight + s.NoveltyWeight + s.PrerequisiteWeight
	if sum == 0 {
		return 0.25, 0.25, 0.25, 0.25
	}
	return s.StyleWeight / sum, s.DifficultyWeight / sum, s.NoveltyWeight / sum, s.PrerequisiteWeight / sum
}
