// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

// DefaultConnectTimeout bounds a single MongoDB connection attempt.
const DefaultConnectTimeout = 10 * time.Second

// Mongo is a process-wide, lazily connected MongoDB handle. The first call
// to Client dials the server; concurrent first calls share that one attempt.
// A failed attempt is not cached, so the next call dials again.
type Mongo struct {
	uri    string
	dbName string

	// dial is swapped out in tests.
	dial func(ctx context.Context, uri string) (*mongo.Client, error)

	group  singleflight.Group
	mu     sync.RWMutex
	client *mongo.Client
}

// NewMongo returns a handle for the given URI and database name. No
// connection is made until the first call to Client or Database.
func NewMongo(uri, dbName string) *Mongo {
	return &Mongo{uri: uri, dbName: dbName, dial: dialMongo}
}

// dialMongo connects and verifies the connection with a ping.
func dialMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Client returns the shared client, connecting on first use.
func (m *Mongo) Client(ctx context.Context) (*mongo.Client, error) {
	m.mu.RLock()
	c := m.client
	m.mu.RUnlock()
	if c != nil {
		return c, nil
	}

	v, err, _ := m.group.Do("connect", func() (any, error) {
		m.mu.RLock()
		c := m.client
		m.mu.RUnlock()
		if c != nil {
			return c, nil
		}

		// The attempt is shared, so it must not die with the caller that
		// happened to start it.
		dialCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultConnectTimeout)
		defer cancel()

		c, err := m.dial(dialCtx, m.uri)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.client = c
		m.mu.Unlock()
		slog.Info("mongo connected", "database", m.dbName)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Client), nil
}

// Database returns the configured database, connecting on first use.
func (m *Mongo) Database(ctx context.Context) (*mongo.Database, error) {
	c, err := m.Client(ctx)
	if err != nil {
		return nil, err
	}
	return c.Database(m.dbName), nil
}

// Close disconnects the client if one was established.
func (m *Mongo) Close(ctx context.Context) error {
	m.mu.Lock()
	c := m.client
	m.client = nil
	m.mu.Unlock()
	if c == nil {
		return nil
	}
	if err := c.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("mongo disconnect: %w", err)
	}
	return nil
}
