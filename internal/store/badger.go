// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/awiesler/tutorium/internal/learning"
	"github.com/awiesler/tutorium/internal/metrics"
)

// Key prefixes for BadgerDB storage. Progress keys embed the student
// ID so that a single prefix scan yields one student's history.
const (
	profileKeyPrefix  = "profile:"
	progressKeyPrefix = "progress:"
	materialKeyPrefix = "material:"
)

// BadgerStore is a BadgerDB-backed Store implementation with
// persistence across restarts.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens a BadgerDB at the given path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func progressKey(studentID, materialID string) []byte {
	return []byte(progressKeyPrefix + studentID + ":" + materialID)
}

// put marshals v and stores it under key.
func (s *BadgerStore) put(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// get unmarshals the value at key into out, mapping a missing key to
// ErrNotFound.
func (s *BadgerStore) get(key []byte, out any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
}

// PutProfile creates or replaces a profile.
func (s *BadgerStore) PutProfile(ctx context.Context, profile learning.StudentProfile) error {
	start := time.Now()
	err := s.put([]byte(profileKeyPrefix+profile.ID), profile)
	metrics.RecordStoreOperation("put", "profile", time.Since(start), err)
	return err
}

// GetProfile returns the profile with the given student ID.
func (s *BadgerStore) GetProfile(ctx context.Context, studentID string) (learning.StudentProfile, error) {
	start := time.Now()
	var profile learning.StudentProfile
	err := s.get([]byte(profileKeyPrefix+studentID), &profile)
	metrics.RecordStoreOperation("get", "profile", time.Since(start), err)
	if err != nil {
		return learning.StudentProfile{}, err
	}
	return profile, nil
}

// DeleteProfile removes a profile and all its progress records.
func (s *BadgerStore) DeleteProfile(ctx context.Context, studentID string) error {
	start := time.Now()
	err := s.db.Update(func(txn *badger.Txn) error {
		profileKey := []byte(profileKeyPrefix + studentID)
		if _, err := txn.Get(profileKey); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		if err := txn.Delete(profileKey); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}

		// Collect progress keys first; a writable transaction rejects
		// deletes while an iterator is open.
		var keys [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		prefix := []byte(progressKeyPrefix + studentID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete progress: %w", err)
			}
		}
		return nil
	})
	metrics.RecordStoreOperation("delete", "profile", time.Since(start), err)
	return err
}

// PutProgress creates or replaces the record for (student, material).
func (s *BadgerStore) PutProgress(ctx context.Context, rec learning.ProgressRecord) error {
	start := time.Now()
	err := s.put(progressKey(rec.StudentID, rec.MaterialID), rec)
	metrics.RecordStoreOperation("put", "progress", time.Since(start), err)
	return err
}

// GetProgress returns the record for (student, material).
func (s *BadgerStore) GetProgress(ctx context.Context, studentID, materialID string) (learning.ProgressRecord, error) {
	start := time.Now()
	var rec learning.ProgressRecord
	err := s.get(progressKey(studentID, materialID), &rec)
	metrics.RecordStoreOperation("get", "progress", time.Since(start), err)
	if err != nil {
		return learning.ProgressRecord{}, err
	}
	return rec, nil
}

// ListProgress returns all records for a student ordered by material ID.
func (s *BadgerStore) ListProgress(ctx context.Context, studentID string) ([]learning.ProgressRecord, error) {
	start := time.Now()
	var records []learning.ProgressRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(progressKeyPrefix + studentID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec learning.ProgressRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("read progress: %w", err)
			}
			records = append(records, rec)
		}
		return nil
	})
	metrics.RecordStoreOperation("list", "progress", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	// Keys are scanned in order, but sort anyway so the contract does
	// not depend on key layout.
	sort.Slice(records, func(i, j int) bool {
		return records[i].MaterialID < records[j].MaterialID
	})
	return records, nil
}

// PutMaterial creates or replaces a catalog entry.
func (s *BadgerStore) PutMaterial(ctx context.Context, material learning.LearningMaterial) error {
	start := time.Now()
	err := s.put([]byte(materialKeyPrefix+material.ID), material)
	metrics.RecordStoreOperation("put", "material", time.Since(start), err)
	return err
}

// GetMaterial returns the material with the given ID.
func (s *BadgerStore) GetMaterial(ctx context.Context, id string) (learning.LearningMaterial, error) {
	start := time.Now()
	var material learning.LearningMaterial
	err := s.get([]byte(materialKeyPrefix+id), &material)
	metrics.RecordStoreOperation("get", "material", time.Since(start), err)
	if err != nil {
		return learning.LearningMaterial{}, err
	}
	return material, nil
}

// ListMaterials returns catalog entries ordered by ID, optionally
// filtered by subject.
func (s *BadgerStore) ListMaterials(ctx context.Context, subject string) ([]learning.LearningMaterial, error) {
	start := time.Now()
	var materials []learning.LearningMaterial

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(materialKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var material learning.LearningMaterial
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &material)
			})
			if err != nil {
				return fmt.Errorf("read material: %w", err)
			}
			if subject == "" || material.Subject == subject {
				materials = append(materials, material)
			}
		}
		return nil
	})
	metrics.RecordStoreOperation("list", "material", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	sort.Slice(materials, func(i, j int) bool {
		return materials[i].ID < materials[j].ID
	})
	return materials, nil
}

// DeleteMaterial removes a catalog entry.
func (s *BadgerStore) DeleteMaterial(ctx context.Context, id string) error {
	start := time.Now()
	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(materialKeyPrefix + id)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("get material: %w", err)
		}
		return txn.Delete(key)
	})
	metrics.RecordStoreOperation("delete", "material", time.Since(start), err)
	return err
}

// Close closes the underlying BadgerDB.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
