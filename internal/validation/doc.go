// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

// Package validation provides request payload validation using
// go-playground/validator v10 through a thread-safe singleton, with
// custom tags for difficulty levels and learning styles.
package validation
