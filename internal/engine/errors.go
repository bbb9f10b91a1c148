// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package engine

import "errors"

// Sentinel errors returned by engine operations. Every failure is
// local to one request; none of these is fatal to the process.
var (
	// ErrInvalidAssessment indicates an explicit style assessment whose
	// ratings sum to zero or fall outside the accepted range. The
	// profile is left unchanged.
	ErrInvalidAssessment = errors.New("invalid style assessment")

	// ErrUnsatisfiableTargets indicates path generation could not
	// satisfy prerequisite constraints, either because of a cycle or a
	// missing prerequisite material. No partial path is returned.
	ErrUnsatisfiableTargets = errors.New("unsatisfiable path targets")

	// ErrUnknownMaterial indicates a material ID absent from the
	// catalog snapshot handed to the engine.
	ErrUnknownMaterial = errors.New("unknown learning material")

	// ErrInvalidTransition indicates a progress event that would move
	// a record backwards through its lifecycle.
	ErrInvalidTransition = errors.New("invalid completion status transition")
)
