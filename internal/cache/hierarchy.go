// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// hierarchy.go caches assembled exam hierarchies in Valkey. Entries are
// opaque JSON blobs keyed by exam id; the assembler owns the encoding.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// hierarchyKeyPrefix is the Valkey key prefix for cached hierarchies.
	hierarchyKeyPrefix = "hierarchy:"

	// DefaultHierarchyTTL is how long an assembled hierarchy stays cached.
	DefaultHierarchyTTL = 5 * time.Minute
)

// HierarchyCache stores assembled hierarchies per exam. Cache errors are
// logged and treated as misses so a Valkey outage only costs latency.
type HierarchyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHierarchyCache creates a cache backed by the given Valkey client.
func NewHierarchyCache(client *redis.Client, ttl time.Duration) *HierarchyCache {
	if ttl <= 0 {
		ttl = DefaultHierarchyTTL
	}
	return &HierarchyCache{client: client, ttl: ttl}
}

// HierarchyKey returns the cache key for an exam.
func HierarchyKey(examID string) string {
	return hierarchyKeyPrefix + examID
}

// Get returns the cached hierarchy for an exam.
func (c *HierarchyCache) Get(ctx context.Context, examID string) ([]byte, bool) {
	val, err := c.client.Get(ctx, HierarchyKey(examID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("hierarchy cache get error", "exam", examID, "error", err)
		return nil, false
	}
	slog.Debug("hierarchy cache hit", "exam", examID)
	return val, true
}

// Set stores an assembled hierarchy with the configured TTL.
func (c *HierarchyCache) Set(ctx context.Context, examID string, data []byte) {
	if err := c.client.Set(ctx, HierarchyKey(examID), data, c.ttl).Err(); err != nil {
		slog.Warn("hierarchy cache set error", "exam", examID, "error", err)
	}
}

// Invalidate drops the cached hierarchy of one exam.
func (c *HierarchyCache) Invalidate(ctx context.Context, examID string) {
	if err := c.client.Del(ctx, HierarchyKey(examID)).Err(); err != nil {
		slog.Warn("hierarchy cache invalidate error", "exam", examID, "error", err)
		return
	}
	slog.Debug("hierarchy cache invalidated", "exam", examID)
}

// InvalidateAll removes every cached hierarchy by scanning for the prefix.
func (c *HierarchyCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, hierarchyKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("hierarchy cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("hierarchy cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("hierarchy cache cleared", "deleted", deleted)
	}
}
