package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"learnhub/internal/apperr"
	"learnhub/internal/hierarchy"
	"learnhub/internal/models"
	"learnhub/internal/navigation"
	"learnhub/internal/resolve"
)

// Tree serves the exam hierarchy and the cross-level navigation routes.
type Tree struct {
	resolver  *resolve.Resolver
	assembler *hierarchy.Assembler
	nav       *navigation.Service
}

// NewTree creates the hierarchy and navigation handlers.
func NewTree(r *resolve.Resolver, a *hierarchy.Assembler, nav *navigation.Service) *Tree {
	return &Tree{resolver: r, assembler: a, nav: nav}
}

type hierarchyResponse struct {
	Exam     *models.Node            `json:"exam"`
	Subjects []hierarchy.SubjectTree `json:"subjects"`
}

// Hierarchy handles GET /api/exams/{exam}/hierarchy. The exam may be given
// by id or slug and must be active.
func (h *Tree) Hierarchy(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "exam")
	if msg := validateParam("exam", param); msg != "" {
		writeError(w, r, apperr.InvalidInput(msg))
		return
	}

	exam, err := h.resolver.Resolve(r.Context(), models.LevelExam, param, resolve.ParentContext{}, resolve.Options{ActiveOnly: true})
	if err != nil {
		writeError(w, r, err)
		return
	}
	subjects, err := h.assembler.Build(r.Context(), exam.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hierarchyResponse{Exam: exam, Subjects: subjects})
}

// Nav handles GET /api/nav. An unknown or hidden node yields
// {"prev":null,"next":null}.
func (h *Tree) Nav(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if msg := validateQuery(q); msg != "" {
		writeError(w, r, apperr.InvalidInput(msg))
		return
	}

	nav, err := h.nav.UniversalNav(r.Context(), navigation.PathContextFromQuery(q))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nav)
}

// Breadcrumbs handles GET /api/breadcrumbs.
func (h *Tree) Breadcrumbs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if msg := validateQuery(q); msg != "" {
		writeError(w, r, apperr.InvalidInput(msg))
		return
	}

	crumbs, err := h.nav.Breadcrumbs(r.Context(), navigation.PathContextFromQuery(q))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, crumbs)
}
