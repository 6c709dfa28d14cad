// Package main is the entry point for the learnhub API server.
// It loads configuration, opens the content store, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"learnhub/internal/cache"
	"learnhub/internal/config"
	"learnhub/internal/content"
	"learnhub/internal/database"
	"learnhub/internal/handlers"
	"learnhub/internal/hierarchy"
	"learnhub/internal/navigation"
	"learnhub/internal/resolve"
	"learnhub/internal/router"
	"learnhub/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: JSON in production, text in development.
	opts := &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.JSONLogs() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreDriver,
	)

	ctx := context.Background()

	s, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Seed development data (no-op if exams already exist).
	if cfg.IsDev() || cfg.StoreDriver == config.DriverMemory {
		f, err := database.LoadSeed(cfg.SeedFile)
		if err != nil {
			slog.Error("failed to load seed file", "path", cfg.SeedFile, "error", err)
			os.Exit(1)
		}
		if err := database.Seed(ctx, s, f); err != nil {
			slog.Error("failed to seed store", "error", err)
			os.Exit(1)
		}
	}

	// Hierarchy cache in Valkey (optional; builds go to the store without it).
	hcfg := hierarchy.Config{QueryLimit: cfg.HierarchyQueryLimit}
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		hcfg.Cache = cache.NewHierarchyCache(valkeyClient, cfg.HierarchyCacheTTL)
	} else {
		slog.Warn("valkey not configured, hierarchy cache disabled")
	}

	res := resolve.New(s)
	asm := hierarchy.New(s, hcfg)

	r := router.New(router.Deps{
		Nodes:          handlers.NewNodes(content.NewService(s, res, asm)),
		Tree:           handlers.NewTree(res, asm, navigation.NewService(s, asm)),
		Store:          s,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openStore connects the configured backend and prepares its schema. The
// returned func releases the connection.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store.NewPostgresStore(db), func() { db.Close() }, nil

	case config.DriverMemory:
		slog.Warn("using in-memory store, data is lost on restart")
		return store.NewMemoryStore(), func() {}, nil

	default:
		m := database.NewMongo(cfg.MongoURI, cfg.MongoDB)
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := m.Close(closeCtx); err != nil {
				slog.Warn("mongo disconnect failed", "error", err)
			}
		}
		s := store.NewMongoStore(m)
		if err := s.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		return s, closeFn, nil
	}
}

// logLevel maps LOG_LEVEL to a slog level, defaulting to info.
func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
