package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"learnhub/internal/apperr"
	"learnhub/internal/content"
	"learnhub/internal/resolve"
)

// Nodes serves the per-level routes under /api/{level}.
type Nodes struct {
	content *content.Service
}

// NewNodes creates the level route handlers.
func NewNodes(c *content.Service) *Nodes {
	return &Nodes{content: c}
}

type visitResponse struct {
	OK     bool  `json:"ok"`
	Visits int64 `json:"visits"`
	Today  int64 `json:"today"`
}

// Visit handles POST /api/{level}/{param}/visit.
func (h *Nodes) Visit(w http.ResponseWriter, r *http.Request) {
	level, err := levelParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	param, err := pathParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	if msg := validateQuery(q); msg != "" {
		writeError(w, r, apperr.InvalidInput(msg))
		return
	}

	c, err := h.content.IncrementVisit(r.Context(), level, param, resolve.ParentContextFromQuery(level, q))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, visitResponse{OK: true, Visits: c.Visits, Today: c.Today})
}

// Meta handles GET /api/{level}/{param}/meta. param must be an id.
func (h *Nodes) Meta(w http.ResponseWriter, r *http.Request) {
	level, err := levelParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	param, err := pathParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	m, err := h.content.Meta(r.Context(), level, param)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type reorderRequest struct {
	Order *[]content.RawItem `json:"order"`
}

type reorderResponse struct {
	OK bool `json:"ok"`
}

// Reorder handles POST /api/{level}/reorder. Individual items that are
// malformed are skipped; only a body that is not JSON or lacks the order
// array is rejected.
func (h *Nodes) Reorder(w http.ResponseWriter, r *http.Request) {
	level, err := levelParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxReorderBodyLen)
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, apperr.InvalidInput("request body too large"))
			return
		}
		writeError(w, r, apperr.InvalidInput("invalid JSON body"))
		return
	}
	if req.Order == nil {
		writeError(w, r, apperr.InvalidInput("order array is required"))
		return
	}
	if len(*req.Order) > maxReorderItems {
		writeError(w, r, apperr.InvalidInput("too many order items"))
		return
	}

	if _, err := h.content.Reorder(r.Context(), level, *req.Order); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reorderResponse{OK: true})
}

// Get handles GET /api/{level}/{param}. Only active nodes are returned.
func (h *Nodes) Get(w http.ResponseWriter, r *http.Request) {
	level, err := levelParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	param, err := pathParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	if msg := validateQuery(q); msg != "" {
		writeError(w, r, apperr.InvalidInput(msg))
		return
	}

	n, err := h.content.Get(r.Context(), level, param, resolve.ParentContextFromQuery(level, q))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}
