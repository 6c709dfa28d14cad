// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API: per-level node routes, the exam
// hierarchy, and cross-level navigation.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"learnhub/internal/apperr"
	"learnhub/internal/middleware"
	"learnhub/internal/models"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorBody is the shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// writeError maps err to its status and writes {"error": message}. Store
// failures are logged and pass their message through.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFrom(r.Context()),
			"error", err,
		)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

// levelParam parses the {level} path segment.
func levelParam(r *http.Request) (models.Level, error) {
	raw := chi.URLParam(r, "level")
	l, ok := models.ParseLevel(raw)
	if !ok {
		return 0, apperr.NotFound("unknown level " + `"` + raw + `"`)
	}
	return l, nil
}

// pathParam reads and checks the {param} path segment.
func pathParam(r *http.Request) (string, error) {
	p := chi.URLParam(r, "param")
	if msg := validateParam("param", p); msg != "" {
		return "", apperr.InvalidInput(msg)
	}
	return p, nil
}
