// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

// Package cache provides a thread-safe in-memory TTL cache used to
// serve repeated recommendation reads without recomputation. Writes to
// a student's progress or profile invalidate that student's entries by
// key prefix.
package cache
