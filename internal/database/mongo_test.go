package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestMongoClientCoalescesFirstConnect(t *testing.T) {
	m := NewMongo("mongodb://unused", "learnhub")

	var dials atomic.Int32
	release := make(chan struct{})
	m.dial = func(ctx context.Context, uri string) (*mongo.Client, error) {
		dials.Add(1)
		<-release
		return new(mongo.Client), nil
	}

	const callers = 16
	var wg sync.WaitGroup
	clients := make([]*mongo.Client, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := m.Client(context.Background())
			if err != nil {
				t.Errorf("Client: %v", err)
				return
			}
			clients[i] = c
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := dials.Load(); got != 1 {
		t.Errorf("dials: got %d, want 1", got)
	}
	for i, c := range clients {
		if c != clients[0] {
			t.Errorf("caller %d got a different client", i)
		}
	}
}

func TestMongoClientDoesNotCacheFailure(t *testing.T) {
	m := NewMongo("mongodb://unused", "learnhub")

	var dials atomic.Int32
	m.dial = func(ctx context.Context, uri string) (*mongo.Client, error) {
		if dials.Add(1) == 1 {
			return nil, errors.New("server selection timeout")
		}
		return new(mongo.Client), nil
	}

	if _, err := m.Client(context.Background()); err == nil {
		t.Fatal("expected first connect to fail")
	}
	c, err := m.Client(context.Background())
	if err != nil {
		t.Fatalf("second connect: %v", err)
	}
	if c == nil {
		t.Fatal("expected a client")
	}
	if _, err := m.Client(context.Background()); err != nil {
		t.Fatalf("cached client: %v", err)
	}
	if got := dials.Load(); got != 2 {
		t.Errorf("dials: got %d, want 2", got)
	}
}

func TestMongoSharedAttemptSurvivesCallerCancel(t *testing.T) {
	m := NewMongo("mongodb://unused", "learnhub")
	m.dial = func(ctx context.Context, uri string) (*mongo.Client, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return new(mongo.Client), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Client(ctx); err != nil {
		t.Fatalf("Client with cancelled caller: %v", err)
	}
}

func TestMongoCloseWithoutConnect(t *testing.T) {
	m := NewMongo("mongodb://unused", "learnhub")
	if err := m.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
