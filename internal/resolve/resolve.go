// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package resolve turns a path segment that is either a document id or a
// slug into a store filter, resolving parent slugs level by level. The same
// resolver serves every level of the content tree.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"learnhub/internal/apperr"
	"learnhub/internal/models"
	"learnhub/internal/slug"
	"learnhub/internal/store"
)

// Options tune a resolution.
type Options struct {
	// ActiveOnly restricts the target and every ancestor looked up along the
	// way to Active nodes. Mutations and meta lookups leave it off so editors
	// can act on inactive nodes.
	ActiveOnly bool
}

// Resolver resolves id-or-slug parameters against a store.
type Resolver struct {
	store store.Store
}

// New creates a Resolver backed by s.
func New(s store.Store) *Resolver {
	return &Resolver{store: s}
}

// Filter builds the single filter that selects param at level. An id never
// needs parent context. A slug is lowercased and trimmed and, below Exam,
// pinned to its parent id; the parent is taken from pc directly or resolved
// recursively from a parent slug. The returned filter can drive a read or an
// update in one operation.
func (r *Resolver) Filter(ctx context.Context, level models.Level, param string, pc ParentContext, opts Options) (store.Filter, error) {
	if !level.Valid() {
		return store.Filter{}, apperr.InvalidInput("unknown level")
	}
	param = strings.TrimSpace(param)
	if param == "" {
		return store.Filter{}, apperr.InvalidInput(level.String() + " id or slug is required")
	}

	if slug.IsObjectID(param) {
		return store.Filter{ID: param, ActiveOnly: opts.ActiveOnly}, nil
	}

	f := store.Filter{Slug: slug.Normalize(param), ActiveOnly: opts.ActiveOnly}
	if !level.HasParent() {
		return f, nil
	}

	parentID, err := r.parentID(ctx, level, pc, opts)
	if err != nil {
		return store.Filter{}, err
	}
	f.ParentID = parentID
	return f, nil
}

// parentID determines the id of the parent of a node at level.
func (r *Resolver) parentID(ctx context.Context, level models.Level, pc ParentContext, opts Options) (string, error) {
	p := level.Parent()

	if id := pc.IDs[p]; id != "" {
		if !slug.IsObjectID(id) {
			return "", apperr.InvalidInput(fmt.Sprintf("invalid %sId", p.Key()))
		}
		if !opts.ActiveOnly {
			return id, nil
		}
		// An inactive parent hides its children from public reads.
		n, err := r.find(ctx, p, store.Filter{ID: id, ActiveOnly: true})
		if err != nil {
			return "", err
		}
		return n.ID, nil
	}

	ps := pc.Slugs[p]
	if ps == "" {
		return "", apperr.MissingContext(missingContextMessage(level))
	}
	f, err := r.Filter(ctx, p, ps, pc, opts)
	if err != nil {
		return "", err
	}
	n, err := r.find(ctx, p, f)
	if err != nil {
		return "", err
	}
	return n.ID, nil
}

// Resolve returns the node that param identifies at level.
func (r *Resolver) Resolve(ctx context.Context, level models.Level, param string, pc ParentContext, opts Options) (*models.Node, error) {
	f, err := r.Filter(ctx, level, param, pc, opts)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, level, f)
}

func (r *Resolver) find(ctx context.Context, level models.Level, f store.Filter) (*models.Node, error) {
	n, err := r.store.FindOne(ctx, level, f)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound(NotFoundMessage(level))
	}
	if err != nil {
		return nil, apperr.StoreFailure(err)
	}
	return n, nil
}

// NotFoundMessage is the client-facing message for a missing node.
func NotFoundMessage(level models.Level) string {
	return level.String() + " not found"
}
