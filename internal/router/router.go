// Package router sets up the HTTP routes and middleware chain for the
// learnhub API.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"learnhub/internal/handlers"
	"learnhub/internal/middleware"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the handlers and probes the router mounts.
type Deps struct {
	Nodes          *handlers.Nodes
	Tree           *handlers.Tree
	Store          Pinger
	RequestTimeout time.Duration
}

// New creates and returns the configured Chi router.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Probes and metrics, no deadline.
	r.Get("/health", healthHandler)
	r.Get("/readyz", readyHandler(d.Store))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(d.RequestTimeout))

		r.Get("/exams/{exam}/hierarchy", d.Tree.Hierarchy)
		r.Get("/nav", d.Tree.Nav)
		r.Get("/breadcrumbs", d.Tree.Breadcrumbs)

		r.Post("/{level}/reorder", d.Nodes.Reorder)
		r.Get("/{level}/{param}", d.Nodes.Get)
		r.Get("/{level}/{param}/meta", d.Nodes.Meta)
		r.Post("/{level}/{param}/visit", d.Nodes.Visit)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// readyHandler reports 503 until the store answers a ping.
func readyHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := p.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}
}
