// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package hierarchy assembles the active content tree of an exam from flat,
// exam-scoped queries: one per level, issued concurrently, then nested by
// parent id.
package hierarchy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"learnhub/internal/apperr"
	"learnhub/internal/models"
	"learnhub/internal/store"
)

var (
	// buildsTotal counts hierarchy builds by where the result came from.
	buildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnhub_hierarchy_builds_total",
		Help: "Hierarchy builds by source",
	}, []string{"source"}) // "cache" or "store"

	// buildDuration tracks store-backed builds.
	buildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "learnhub_hierarchy_build_duration_seconds",
		Help:    "Store-backed hierarchy build duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	}, []string{"depth"}) // "topics" or "full"

	// truncatedTotal counts level queries that hit the configured cap.
	truncatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnhub_hierarchy_truncated_queries_total",
		Help: "Level queries that returned exactly the configured limit",
	}, []string{"level"})
)

// Cache stores encoded hierarchies per exam. *cache.HierarchyCache
// satisfies it.
type Cache interface {
	Get(ctx context.Context, examID string) ([]byte, bool)
	Set(ctx context.Context, examID string, data []byte)
	Invalidate(ctx context.Context, examID string)
	InvalidateAll(ctx context.Context)
}

// Config tunes an Assembler.
type Config struct {
	// QueryLimit caps each level query. Zero means no cap. A query that
	// returns exactly QueryLimit nodes is logged as possibly truncated.
	QueryLimit int

	// Cache, when set, holds Build results.
	Cache Cache
}

// Assembler builds exam hierarchies.
type Assembler struct {
	store store.Store
	limit int
	cache Cache
}

// New creates an Assembler reading from s.
func New(s store.Store, cfg Config) *Assembler {
	return &Assembler{store: s, limit: cfg.QueryLimit, cache: cfg.Cache}
}

var topicLevels = []models.Level{
	models.LevelSubject, models.LevelUnit, models.LevelChapter, models.LevelTopic,
}

var fullLevels = []models.Level{
	models.LevelSubject, models.LevelUnit, models.LevelChapter, models.LevelTopic,
	models.LevelSubtopic, models.LevelDefinition,
}

// Build returns the active subjects of an exam with their units, chapters
// and topics nested in orderNumber order. An exam without subjects yields
// an empty slice.
func (a *Assembler) Build(ctx context.Context, examID string) ([]SubjectTree, error) {
	if examID == "" {
		return nil, apperr.InvalidInput("exam id is required")
	}

	if a.cache != nil {
		if data, ok := a.cache.Get(ctx, examID); ok {
			var subjects []SubjectTree
			if err := json.Unmarshal(data, &subjects); err == nil {
				buildsTotal.WithLabelValues("cache").Inc()
				return subjects, nil
			}
			slog.Warn("hierarchy cache entry unreadable", "exam", examID)
		}
	}

	start := time.Now()
	sets, err := a.fetch(ctx, examID, topicLevels)
	if err != nil {
		return nil, err
	}
	subjects := nest(sets)
	buildDuration.WithLabelValues("topics").Observe(time.Since(start).Seconds())
	buildsTotal.WithLabelValues("store").Inc()

	if a.cache != nil {
		if data, err := json.Marshal(subjects); err == nil {
			a.cache.Set(ctx, examID, data)
		}
	}
	return subjects, nil
}

// BuildFull returns the complete seven-level tree of an exam, including
// subtopics and definitions. It is never cached.
func (a *Assembler) BuildFull(ctx context.Context, exam *models.Node) (*Tree, error) {
	start := time.Now()
	sets, err := a.fetch(ctx, exam.ID, fullLevels)
	if err != nil {
		return nil, err
	}
	t := &Tree{Exam: *exam, Subjects: nest(sets)}
	buildDuration.WithLabelValues("full").Observe(time.Since(start).Seconds())
	buildsTotal.WithLabelValues("store").Inc()
	return t, nil
}

// Invalidate drops the cached hierarchy of one exam, or of every exam when
// examID is empty.
func (a *Assembler) Invalidate(ctx context.Context, examID string) {
	if a.cache == nil {
		return
	}
	if examID == "" {
		a.cache.InvalidateAll(ctx)
		return
	}
	a.cache.Invalidate(ctx, examID)
}

// fetch runs one active, exam-scoped query per level concurrently. The
// first failure cancels the others.
func (a *Assembler) fetch(ctx context.Context, examID string, levels []models.Level) (*levelSets, error) {
	var sets levelSets
	g, gctx := errgroup.WithContext(ctx)
	for _, l := range levels {
		g.Go(func() error {
			nodes, err := a.store.ListByExam(gctx, l, examID, store.ListOptions{ActiveOnly: true, Limit: a.limit})
			if err != nil {
				return fmt.Errorf("list %s: %w", l.Plural(), err)
			}
			if a.limit > 0 && len(nodes) >= a.limit {
				truncatedTotal.WithLabelValues(l.Plural()).Inc()
				slog.Warn("hierarchy query hit limit, results may be truncated",
					"exam", examID, "level", l.Plural(), "limit", a.limit)
			}
			sort.SliceStable(nodes, func(i, j int) bool {
				return nodes[i].OrderNumber < nodes[j].OrderNumber
			})
			sets[l] = nodes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.StoreFailure(err)
	}
	return &sets, nil
}
