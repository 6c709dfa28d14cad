// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, hierarchyKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(context.Background(), host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestConnectValkeyUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := ConnectValkey(ctx, "127.0.0.1", "1", ""); err == nil {
		t.Error("expected error for unreachable Valkey")
	}
}

func TestHierarchyCacheSetAndGet(t *testing.T) {
	hc := NewHierarchyCache(testValkeyClient(t), time.Minute)
	ctx := context.Background()

	if data, ok := hc.Get(ctx, "exam-a"); ok || data != nil {
		t.Error("expected cache miss")
	}

	tree := []byte(`[{"name":"Physics","units":[]}]`)
	hc.Set(ctx, "exam-a", tree)

	data, ok := hc.Get(ctx, "exam-a")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(data) != string(tree) {
		t.Errorf("data mismatch: got %q, want %q", data, tree)
	}
}

func TestHierarchyCacheInvalidate(t *testing.T) {
	hc := NewHierarchyCache(testValkeyClient(t), time.Minute)
	ctx := context.Background()

	hc.Set(ctx, "exam-a", []byte("[]"))
	hc.Set(ctx, "exam-b", []byte("[]"))

	hc.Invalidate(ctx, "exam-a")

	if _, ok := hc.Get(ctx, "exam-a"); ok {
		t.Error("expected miss after invalidation")
	}
	if _, ok := hc.Get(ctx, "exam-b"); !ok {
		t.Error("other exams must stay cached")
	}
}

func TestHierarchyCacheInvalidateAll(t *testing.T) {
	hc := NewHierarchyCache(testValkeyClient(t), time.Minute)
	ctx := context.Background()

	for _, id := range []string{"exam-a", "exam-b", "exam-c"} {
		hc.Set(ctx, id, []byte("[]"))
	}

	hc.InvalidateAll(ctx)

	for _, id := range []string{"exam-a", "exam-b", "exam-c"} {
		if _, ok := hc.Get(ctx, id); ok {
			t.Errorf("expected miss for %q after InvalidateAll", id)
		}
	}
}

func TestHierarchyKey(t *testing.T) {
	if got := HierarchyKey("65f1c0ffee"); got != "hierarchy:65f1c0ffee" {
		t.Errorf("HierarchyKey: got %q", got)
	}
}

func TestNewHierarchyCacheDefaultTTL(t *testing.T) {
	hc := NewHierarchyCache(nil, 0)
	if hc.ttl != DefaultHierarchyTTL {
		t.Errorf("expected DefaultHierarchyTTL (%v), got %v", DefaultHierarchyTTL, hc.ttl)
	}
}
