// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/awiesler/tutorium/internal/learning"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("store: not found")

// ProfileStore persists student profiles.
type ProfileStore interface {
	// PutProfile creates or replaces a profile.
	PutProfile(ctx context.Context, profile learning.StudentProfile) error

	// GetProfile returns the profile with the given student ID, or
	// ErrNotFound.
	GetProfile(ctx context.Context, studentID string) (learning.StudentProfile, error)

	// DeleteProfile removes a profile and all its progress records.
	// Deleting an absent profile returns ErrNotFound.
	DeleteProfile(ctx context.Context, studentID string) error
}

// ProgressStore persists progress records. Each student holds at most
// one record per material; PutProgress replaces any previous record
// for the same (student, material) pair.
type ProgressStore interface {
	PutProgress(ctx context.Context, rec learning.ProgressRecord) error

	// GetProgress returns the record for (student, material), or
	// ErrNotFound.
	GetProgress(ctx context.Context, studentID, materialID string) (learning.ProgressRecord, error)

	// ListProgress returns all records for a student, ordered by
	// material ID. An unknown student yields an empty slice.
	ListProgress(ctx context.Context, studentID string) ([]learning.ProgressRecord, error)
}

// CatalogStore persists the learning material catalog.
type CatalogStore interface {
	PutMaterial(ctx context.Context, material learning.LearningMaterial) error

	// GetMaterial returns the material with the given ID, or
	// ErrNotFound.
	GetMaterial(ctx context.Context, id string) (learning.LearningMaterial, error)

	// ListMaterials returns catalog entries ordered by ID. An empty
	// subject matches everything.
	ListMaterials(ctx context.Context, subject string) ([]learning.LearningMaterial, error)

	DeleteMaterial(ctx context.Context, id string) error
}

// Store is the full persistence surface.
type Store interface {
	ProfileStore
	ProgressStore
	CatalogStore

	Close() error
}

// Open creates a Store for the given backend. The memory backend
// ignores path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "memory":
		return NewMemoryStore(), nil
	case "badger":
		return NewBadgerStore(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
