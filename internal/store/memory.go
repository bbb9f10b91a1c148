// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/awiesler/tutorium/internal/learning"
	"github.com/awiesler/tutorium/internal/metrics"
)

// MemoryStore is an in-memory Store implementation suitable for
// development and tests. All values are copied on the way in and out.
type MemoryStore struct {
	mu        sync.RWMutex
	profiles  map[string]learning.StudentProfile
	progress  map[string]map[string]learning.ProgressRecord
	materials map[string]learning.LearningMaterial
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles:  make(map[string]learning.StudentProfile),
		progress:  make(map[string]map[string]learning.ProgressRecord),
		materials: make(map[string]learning.LearningMaterial),
	}
}

// PutProfile creates or replaces a profile.
func (s *MemoryStore) PutProfile(ctx context.Context, profile learning.StudentProfile) error {
	start := time.Now()
	s.mu.Lock()
	s.profiles[profile.ID] = profile
	s.mu.Unlock()
	metrics.RecordStoreOperation("put", "profile", time.Since(start), nil)
	return nil
}

// GetProfile returns the profile with the given student ID.
func (s *MemoryStore) GetProfile(ctx context.Context, studentID string) (learning.StudentProfile, error) {
	start := time.Now()
	s.mu.RLock()
	profile, ok := s.profiles[studentID]
	s.mu.RUnlock()
	if !ok {
		metrics.RecordStoreOperation("get", "profile", time.Since(start), ErrNotFound)
		return learning.StudentProfile{}, ErrNotFound
	}
	metrics.RecordStoreOperation("get", "profile", time.Since(start), nil)
	return profile, nil
}

// DeleteProfile removes a profile and its progress records.
func (s *MemoryStore) DeleteProfile(ctx context.Context, studentID string) error {
	start := time.Now()
	s.mu.Lock()
	_, ok := s.profiles[studentID]
	if ok {
		delete(s.profiles, studentID)
		delete(s.progress, studentID)
	}
	s.mu.Unlock()
	if !ok {
		metrics.RecordStoreOperation("delete", "profile", time.Since(start), ErrNotFound)
		return ErrNotFound
	}
	metrics.RecordStoreOperation("delete", "profile", time.Since(start), nil)
	return nil
}

// PutProgress creates or replaces the record for (student, material).
func (s *MemoryStore) PutProgress(ctx context.Context, rec learning.ProgressRecord) error {
	start := time.Now()
	s.mu.Lock()
	byMaterial, ok := s.progress[rec.StudentID]
	if !ok {
		byMaterial = make(map[string]learning.ProgressRecord)
		s.progress[rec.StudentID] = byMaterial
	}
	byMaterial[rec.MaterialID] = rec
	s.mu.Unlock()
	metrics.RecordStoreOperation("put", "progress", time.Since(start), nil)
	return nil
}

// GetProgress returns the record for (student, material).
func (s *MemoryStore) GetProgress(ctx context.Context, studentID, materialID string) (learning.ProgressRecord, error) {
	start := time.Now()
	s.mu.RLock()
	rec, ok := s.progress[studentID][materialID]
	s.mu.RUnlock()
	if !ok {
		metrics.RecordStoreOperation("get", "progress", time.Since(start), ErrNotFound)
		return learning.ProgressRecord{}, ErrNotFound
	}
	metrics.RecordStoreOperation("get", "progress", time.Since(start), nil)
	return rec, nil
}

// ListProgress returns all records for a student ordered by material ID.
func (s *MemoryStore) ListProgress(ctx context.Context, studentID string) ([]learning.ProgressRecord, error) {
	start := time.Now()
	s.mu.RLock()
	byMaterial := s.progress[studentID]
	records := make([]learning.ProgressRecord, 0, len(byMaterial))
	for _, rec := range byMaterial {
		records = append(records, rec)
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].MaterialID < records[j].MaterialID
	})
	metrics.RecordStoreOperation("list", "progress", time.Since(start), nil)
	return records, nil
}

// PutMaterial creates or replaces a catalog entry.
func (s *MemoryStore) PutMaterial(ctx context.Context, material learning.LearningMaterial) error {
	start := time.Now()
	s.mu.Lock()
	s.materials[material.ID] = material
	s.mu.Unlock()
	metrics.RecordStoreOperation("put", "material", time.Since(start), nil)
	return nil
}

// GetMaterial returns the material with the given ID.
func (s *MemoryStore) GetMaterial(ctx context.Context, id string) (learning.LearningMaterial, error) {
	start := time.Now()
	s.mu.RLock()
	material, ok := s.materials[id]
	s.mu.RUnlock()
	if !ok {
		metrics.RecordStoreOperation("get", "material", time.Since(start), ErrNotFound)
		return learning.LearningMaterial{}, ErrNotFound
	}
	metrics.RecordStoreOperation("get", "material", time.Since(start), nil)
	return material, nil
}

// ListMaterials returns catalog entries ordered by ID, optionally
// filtered by subject.
func (s *MemoryStore) ListMaterials(ctx context.Context, subject string) ([]learning.LearningMaterial, error) {
	start := time.Now()
	s.mu.RLock()
	materials := make([]learning.LearningMaterial, 0, len(s.materials))
	for _, m := range s.materials {
		if subject == "" || m.Subject == subject {
			materials = append(materials, m)
		}
	}
	s.mu.RUnlock()

	sort.Slice(materials, func(i, j int) bool {
		return materials[i].ID < materials[j].ID
	})
	metrics.RecordStoreOperation("list", "material", time.Since(start), nil)
	return materials, nil
}

// DeleteMaterial removes a catalog entry.
func (s *MemoryStore) DeleteMaterial(ctx context.Context, id string) error {
	start := time.Now()
	s.mu.Lock()
	_, ok := s.materials[id]
	delete(s.materials, id)
	s.mu.Unlock()
	if !ok {
		metrics.RecordStoreOperation("delete", "material", time.Since(start), ErrNotFound)
		return ErrNotFound
	}
	metrics.RecordStoreOperation("delete", "material", time.Since(start), nil)
	return nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
