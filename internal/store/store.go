// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store is the document store layer for content nodes. Every level
// of the tree is served through the same Store interface; backends exist
// for MongoDB (primary), PostgreSQL and an in-process memory store.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"learnhub/internal/models"
)

// ErrNotFound is returned when no document matches a filter.
var ErrNotFound = errors.New("not found")

// Filter selects a single node. When ID is set it wins and the slug fields
// are ignored; otherwise Slug is matched together with ParentID (which is
// required for every level below Exam).
type Filter struct {
	ID         string
	Slug       string
	ParentID   string
	ActiveOnly bool
}

// ByID reports whether the filter selects by identifier.
func (f Filter) ByID() bool {
	return f.ID != ""
}

// Validate checks that the filter can select at most one node of level l.
func (f Filter) Validate(l models.Level) error {
	if !l.Valid() {
		return fmt.Errorf("invalid level %d", l)
	}
	if f.ByID() {
		return nil
	}
	if f.Slug == "" {
		return errors.New("filter needs an id or a slug")
	}
	if l.HasParent() && f.ParentID == "" {
		return fmt.Errorf("%s slug filter needs %s", l, l.ParentField())
	}
	return nil
}

// ListOptions tune exam-scoped listing.
type ListOptions struct {
	ActiveOnly bool
	// Limit caps the number of returned nodes. Zero means no cap.
	Limit int
}

// Store is the document store contract used by the resolver, assembler
// and mutators.
type Store interface {
	// FindOne returns the node matching f, or ErrNotFound.
	FindOne(ctx context.Context, level models.Level, f Filter) (*models.Node, error)

	// ListByExam returns every node of level that belongs to examID, sorted
	// by orderNumber ascending with ties kept in insertion order.
	ListByExam(ctx context.Context, level models.Level, examID string, opts ListOptions) ([]models.Node, error)

	// IncrementVisits atomically adds one to visits and today of the node
	// matching f and returns the post-increment values.
	IncrementVisits(ctx context.Context, level models.Level, f Filter) (models.Counters, error)

	// SetOrder writes a new orderNumber (and lastModified, when non-empty)
	// on a single node. Returns ErrNotFound when id matches nothing.
	SetOrder(ctx context.Context, level models.Level, id string, orderNumber int, lastModified string) error

	// Insert stores a new node, assigning an ID when n.ID is empty.
	Insert(ctx context.Context, level models.Level, n *models.Node) error

	// CountExams returns the number of exam documents. Used by seeding.
	CountExams(ctx context.Context) (int64, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// normalizeID lowercases hex identifiers so every backend compares them
// the same way.
func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
