// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"learnhub/internal/models"
)

// MemoryStore is an in-process Store. Nodes are kept per level in insertion
// order, which serves as the natural tie-break for equal order numbers.
// It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	levels map[models.Level][]*models.Node
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{levels: make(map[models.Level][]*models.Node)}
}

func (s *MemoryStore) match(level models.Level, f Filter) *models.Node {
	id := normalizeID(f.ID)
	for _, n := range s.levels[level] {
		if f.ActiveOnly && !n.IsActive() {
			continue
		}
		if f.ByID() {
			if n.ID == id {
				return n
			}
			continue
		}
		if n.Slug != f.Slug {
			continue
		}
		if level.HasParent() && n.ParentID != normalizeID(f.ParentID) {
			continue
		}
		return n
	}
	return nil
}

// FindOne returns a copy of the node matching f.
func (s *MemoryStore) FindOne(_ context.Context, level models.Level, f Filter) (*models.Node, error) {
	if err := f.Validate(level); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := s.match(level, f)
	if n == nil {
		return nil, ErrNotFound
	}
	cp := *n
	return &cp, nil
}

// ListByExam returns copies of the exam's nodes at level, stably sorted.
func (s *MemoryStore) ListByExam(_ context.Context, level models.Level, examID string, opts ListOptions) ([]models.Node, error) {
	if level == models.LevelExam || !level.Valid() {
		return nil, fmt.Errorf("list by exam: unsupported level %v", level)
	}
	examID = normalizeID(examID)

	s.mu.RLock()
	var items []models.Node
	for _, n := range s.levels[level] {
		if n.ExamID != examID {
			continue
		}
		if opts.ActiveOnly && !n.IsActive() {
			continue
		}
		items = append(items, *n)
	}
	s.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OrderNumber < items[j].OrderNumber
	})
	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}
	return items, nil
}

// IncrementVisits bumps both counters under the write lock.
func (s *MemoryStore) IncrementVisits(_ context.Context, level models.Level, f Filter) (models.Counters, error) {
	if err := f.Validate(level); err != nil {
		return models.Counters{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.match(level, f)
	if n == nil {
		return models.Counters{}, ErrNotFound
	}
	n.Visits++
	n.Today++
	return models.Counters{Visits: n.Visits, Today: n.Today}, nil
}

// SetOrder updates the order number of a single node.
func (s *MemoryStore) SetOrder(_ context.Context, level models.Level, id string, orderNumber int, lastModified string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.match(level, Filter{ID: id})
	if n == nil {
		return ErrNotFound
	}
	n.OrderNumber = orderNumber
	n.UpdatedAt = time.Now()
	if lastModified != "" {
		n.LastModified = lastModified
	}
	return nil
}

// Insert appends a copy of n. Slugs must be unique among siblings.
func (s *MemoryStore) Insert(_ context.Context, level models.Level, n *models.Node) error {
	if !level.Valid() {
		return fmt.Errorf("insert: invalid level %d", level)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = primitive.NewObjectID().Hex()
	}
	n.ID = normalizeID(n.ID)
	n.ParentID = normalizeID(n.ParentID)
	n.ExamID = normalizeID(n.ExamID)
	n.Level = level
	if level == models.LevelSubject && n.ExamID == "" {
		n.ExamID = n.ParentID
	}
	if n.Status == "" {
		n.Status = models.StatusActive
	}

	for _, existing := range s.levels[level] {
		if existing.ID == n.ID {
			return fmt.Errorf("insert %s: duplicate id %s", level, n.ID)
		}
		if existing.Slug == n.Slug && existing.ParentID == n.ParentID {
			return fmt.Errorf("insert %s: duplicate slug %q under %q", level, n.Slug, n.ParentID)
		}
	}

	now := time.Now()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now

	cp := *n
	s.levels[level] = append(s.levels[level], &cp)
	return nil
}

// CountExams returns the number of stored exams.
func (s *MemoryStore) CountExams(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.levels[models.LevelExam])), nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(_ context.Context) error { return nil }
