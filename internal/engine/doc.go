// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

// Package engine implements the personalization and recommendation
// engine: learning style profiling, adaptive difficulty targeting,
// material suitability scoring, recommendation generation, learning
// path construction, performance prediction, and progress analytics.
//
// The engine is stateless. Every operation is a pure function of the
// snapshots passed in (profile, catalog materials, progress history),
// so callers own persistence and per-student ordering. Operations for
// different students can run concurrently against the same Engine.
package engine
