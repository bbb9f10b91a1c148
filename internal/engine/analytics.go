// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import (
	"math"
	"sort"
	"time"

	"github.com/awiesler/tutorium/internal/learning"
)

// Summarize aggregates a student's progress into performance analytics
// over the last windowDays of activity. A non-positive windowDays uses
// the configured default. Summarization never fails: an empty or fully
// filtered history yields the zero summary with a stable trend.
func (e *Engine) Summarize(history []learning.ProgressRecord, windowDays int, now time.Time) Summary {
	if windowDays <= 0 {
		windowDays = e.config.Analytics.WindowDays
	}

	cutoff := now.AddDate(0, 0, -windowDays)
	var window []learning.ProgressRecord
	for _, rec := range e.windowHistory(history) {
		if !rec.UpdatedAt.Before(cutoff) {
			window = append(window, rec)
		}
	}

	summary := Summary{
		PerformanceTrend: TrendStable,
		Consistency:      ConsistencyVeryConsistent,
		PaceRatio:        1.0,
		SubjectBreakdown: map[string]SubjectSummary{},
	}
	if len(window) == 0 {
		return summary
	}

	var scores []float64
	finished := 0
	for _, rec := range window {
		summary.TotalAttempted++
		summary.TotalStudyTime += rec.TimeSpent
		if rec.Completed() {
			summary.MaterialsCompleted++
		}
		if rec.Status.Terminal() || rec.Status == learning.StatusInProgress {
			finished++
		}
		if rec.Score != nil {
			scores = append(scores, *rec.Score)
		}
	}

	if finished > 0 {
		summary.CompletionRate = float64(summary.MaterialsCompleted) / float64(finished)
	}
	summary.AverageScore = mean(scores)
	summary.ScoreStdDev = stddev(scores, summary.AverageScore)
	summary.Consistency = consistencyBand(summary.ScoreStdDev)
	summary.PerformanceTrend = e.trend(window)
	summary.LearningVelocity = learningVelocity(window)
	if ratio := paceRatio(window); ratio > 0 {
		summary.PaceRatio = ratio
	}
	summary.LearningStreak = streakDays(window, now)

	e.subjectBreakdown(window, &summary)

	e.logger.Debug().
		Int("records", len(window)).
		Float64("average_score", summary.AverageScore).
		Str("trend", string(summary.PerformanceTrend)).
		Msg("history summarized")

	return summary
}

// trend splits the window's scored records, ordered oldest-first, into
// halves and compares their mean scores against the noise threshold.
// Fewer than four scored records is always stable.
func (e *Engine) trend(window []learning.ProgressRecord) Trend {
	var scores []float64
	for _, rec := range window {
		if rec.Score != nil {
			scores = append(scores, *rec.Score)
		}
	}
	if len(scores) < 4 {
		return TrendStable
	}

	mid := len(scores) / 2
	delta := mean(scores[mid:]) - mean(scores[:mid])
	switch {
	case delta > e.config.Analytics.TrendNoise:
		return TrendImproving
	case delta < -e.config.Analytics.TrendNoise:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// learningVelocity is the total mastery gained per hour of study
// across the window. Zero study time yields zero velocity.
func learningVelocity(window []learning.ProgressRecord) float64 {
	var masteryGain float64
	minutes := 0
	for _, rec := range window {
		masteryGain += rec.MasteryLevel
		minutes += rec.TimeSpent
	}
	if minutes == 0 {
		return 0
	}
	return masteryGain / (float64(minutes) / 60.0)
}

// subjectBreakdown fills the per-subject summaries and derives the
// strength and improvement lists, sorted alphabetically. A subject
// needs MinSamples scored records before it can carry either label.
func (e *Engine) subjectBreakdown(window []learning.ProgressRecord, summary *Summary) {
	type acc struct {
		scoreSum  float64
		scored    int
		completed int
		finished  int
		mastery   float64
		count     int
	}
	subjects := make(map[string]*acc)
	for _, rec := range window {
		a := subjects[rec.Subject]
		if a == nil {
			a = &acc{}
			subjects[rec.Subject] = a
		}
		a.count++
		a.mastery += rec.MasteryLevel
		if rec.Score != nil {
			a.scoreSum += *rec.Score
			a.scored++
		}
		if rec.Status.Terminal() || rec.Status == learning.StatusInProgress {
			a.finished++
		}
		if rec.Completed() {
			a.completed++
		}
	}

	for subject, a := range subjects {
		sub := SubjectSummary{
			MaterialCount: a.count,
			ScoredCount:   a.scored,
			MasteryLevel:  a.mastery / float64(a.count),
		}
		if a.scored > 0 {
			sub.AverageScore = a.scoreSum / float64(a.scored)
		}
		if a.finished > 0 {
			sub.CompletionRate = float64(a.completed) / float64(a.finished)
		}
		summary.SubjectBreakdown[subject] = sub

		if a.scored < e.config.Analytics.MinSamples {
			continue
		}
		if sub.AverageScore >= e.config.Analytics.StrengthThreshold {
			summary.Strengths = append(summary.Strengths, subject)
		} else if sub.AverageScore <= e.config.Analytics.WeaknessThreshold {
			summary.AreasForImprovement = append(summary.AreasForImprovement, subject)
		}
	}

	sort.Strings(summary.Strengths)
	sort.Strings(summary.AreasForImprovement)
}

// streakDays counts consecutive calendar days with activity, walking
// back from the most recent active day. The streak survives if the
// latest activity was yesterday; a longer gap resets it to zero.
func streakDays(window []learning.ProgressRecord, now time.Time) int {
	days := make(map[string]bool, len(window))
	for _, rec := range window {
		days[rec.UpdatedAt.UTC().Format("2006-01-02")] = true
	}
	if len(days) == 0 {
		return 0
	}

	day := now.UTC()
	today := day.Format("2006-01-02")
	if !days[today] {
		day = day.AddDate(0, 0, -1)
		if !days[day.Format("2006-01-02")] {
			return 0
		}
	}

	streak := 0
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func stddev(vs []float64, mean float64) float64 {
	if len(vs) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vs)))
}

func consistencyBand(std float64) ConsistencyPattern {
	switch {
	case std < 10:
		return ConsistencyVeryConsistent
	case std < 20:
		return ConsistencyConsistent
	case std < 30:
		return ConsistencyVariable
	default:
		return ConsistencyInconsistent
	}
}
