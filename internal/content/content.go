// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content implements the per-node operations behind the level
// routes: visit counting, batch reordering, SEO meta lookup and public reads.
package content

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"learnhub/internal/apperr"
	"learnhub/internal/models"
	"learnhub/internal/resolve"
	"learnhub/internal/slug"
	"learnhub/internal/store"
)

var (
	visitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnhub_visits_total",
		Help: "Visit increments by level",
	}, []string{"level"})

	reorderItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnhub_reorder_items_total",
		Help: "Reorder items by outcome",
	}, []string{"level", "result"}) // "applied", "dropped", "missing"
)

// Invalidator drops cached hierarchies. An empty exam id means all exams.
type Invalidator interface {
	Invalidate(ctx context.Context, examID string)
}

// Service performs node operations against a store.
type Service struct {
	store    store.Store
	resolver *resolve.Resolver
	cache    Invalidator
	now      func() time.Time
}

// NewService creates a content service. cache may be nil.
func NewService(s store.Store, r *resolve.Resolver, cache Invalidator) *Service {
	return &Service{store: s, resolver: r, cache: cache, now: time.Now}
}

// IncrementVisit resolves the node named by param and adds one to its visit
// counters in a single store update. Every call counts, repeats included.
func (s *Service) IncrementVisit(ctx context.Context, level models.Level, param string, pc resolve.ParentContext) (models.Counters, error) {
	f, err := s.resolver.Filter(ctx, level, param, pc, resolve.Options{})
	if err != nil {
		return models.Counters{}, err
	}
	c, err := s.store.IncrementVisits(ctx, level, f)
	if errors.Is(err, store.ErrNotFound) {
		return models.Counters{}, apperr.NotFound(resolve.NotFoundMessage(level))
	}
	if err != nil {
		return models.Counters{}, apperr.StoreFailure(err)
	}
	visitsTotal.WithLabelValues(level.Plural()).Inc()
	return c, nil
}

// ReorderResult reports what a reorder did.
type ReorderResult struct {
	Applied int
	Dropped int
	Missing int
}

// Reorder writes new order numbers. Malformed items are dropped, the rest
// are applied one by one in input order, each stamped with the same
// lastModified string. Ids that match nothing are skipped. Any other write
// failure stops the batch and is returned; items already written stay
// written. An empty or entirely invalid batch is a successful no-op.
func (s *Service) Reorder(ctx context.Context, level models.Level, raw []RawItem) (ReorderResult, error) {
	if !level.Valid() {
		return ReorderResult{}, apperr.InvalidInput("unknown level")
	}

	items := ParseReorder(raw)
	res := ReorderResult{Dropped: len(raw) - len(items)}
	label := level.Plural()
	reorderItemsTotal.WithLabelValues(label, "dropped").Add(float64(res.Dropped))

	stamp := s.now().Format(models.LastModifiedLayout)
	var err error
	for _, item := range items {
		err = s.store.SetOrder(ctx, level, item.ID, item.OrderNumber, stamp)
		if errors.Is(err, store.ErrNotFound) {
			res.Missing++
			err = nil
			continue
		}
		if err != nil {
			break
		}
		res.Applied++
	}
	reorderItemsTotal.WithLabelValues(label, "applied").Add(float64(res.Applied))
	reorderItemsTotal.WithLabelValues(label, "missing").Add(float64(res.Missing))

	// Exam order is not part of any cached hierarchy.
	if res.Applied > 0 && level != models.LevelExam && s.cache != nil {
		s.cache.Invalidate(ctx, "")
	}

	if err != nil {
		slog.Error("reorder aborted", "level", label, "applied", res.Applied, "error", err)
		return res, apperr.StoreFailure(err)
	}
	slog.Debug("reorder applied", "level", label, "applied", res.Applied, "dropped", res.Dropped, "missing", res.Missing)
	return res, nil
}

// Meta returns the SEO projection of the node with the given id. Slugs are
// not accepted.
func (s *Service) Meta(ctx context.Context, level models.Level, id string) (models.Meta, error) {
	if !level.Valid() {
		return models.Meta{}, apperr.InvalidInput("unknown level")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Meta{}, apperr.InvalidInput(level.String() + " id is required")
	}
	if !slug.IsObjectID(id) {
		return models.Meta{}, apperr.InvalidInput("invalid " + level.Key() + " id")
	}
	n, err := s.store.FindOne(ctx, level, store.Filter{ID: id})
	if errors.Is(err, store.ErrNotFound) {
		return models.Meta{}, apperr.NotFound(resolve.NotFoundMessage(level))
	}
	if err != nil {
		return models.Meta{}, apperr.StoreFailure(err)
	}
	return models.MetaOf(n), nil
}

// Get returns an active node for public display. The node and every
// ancestor named through pc must be active.
func (s *Service) Get(ctx context.Context, level models.Level, param string, pc resolve.ParentContext) (*models.Node, error) {
	return s.resolver.Resolve(ctx, level, param, pc, resolve.Options{ActiveOnly: true})
}
