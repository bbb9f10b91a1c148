// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

// Package store persists student profiles, progress records, and the
// learning material catalog. Two backends are provided: an in-memory
// store for development and tests, and a BadgerDB store for durable
// single-node deployments.
package store
