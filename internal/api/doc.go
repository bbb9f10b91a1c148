// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

// Package api exposes the personalization engine over HTTP using the
// chi router. All responses share a JSON envelope with a status,
// payload, metadata, and optional structured error.
package api
