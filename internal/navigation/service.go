// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package navigation

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"learnhub/internal/apperr"
	"learnhub/internal/hierarchy"
	"learnhub/internal/models"
	"learnhub/internal/slug"
	"learnhub/internal/store"
)

// PathContext identifies a node by its slug chain, one slug per level from
// the exam down. Levels below the node are left empty.
type PathContext struct {
	Slugs [models.LevelCount]string
}

// PathContextFromQuery reads exam=, subject=, ... definition= from q.
// The <level>Slug spelling (examSlug=) is accepted as well.
func PathContextFromQuery(q url.Values) PathContext {
	var pc PathContext
	for _, l := range models.Levels {
		v := q.Get(l.Key())
		if v == "" {
			v = q.Get(l.Key() + "Slug")
		}
		pc.Slugs[l] = slug.Normalize(v)
	}
	return pc
}

// chain returns the non-empty slug prefix. A gap (a unit without a subject,
// say) is rejected.
func (pc PathContext) chain() ([]string, error) {
	var out []string
	for _, l := range models.Levels {
		s := slug.Normalize(pc.Slugs[l])
		if s == "" {
			for _, rest := range pc.Slugs[l+1:] {
				if strings.TrimSpace(rest) != "" {
					return nil, apperr.InvalidInput(l.Key() + " is required when a deeper level is given")
				}
			}
			break
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, apperr.InvalidInput("exam is required")
	}
	return out, nil
}

// Crumb is one ancestor in a breadcrumb trail.
type Crumb struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Level string `json:"level"`
}

// Service answers navigation queries for the public site.
type Service struct {
	store     store.Store
	assembler *hierarchy.Assembler
}

// NewService creates a navigation service.
func NewService(s store.Store, a *hierarchy.Assembler) *Service {
	return &Service{store: s, assembler: a}
}

// sequence resolves the active exam named by chain[0] and linearizes its
// full tree. chain[0] is rewritten to the exam's slug when it was given as
// an id. A missing or inactive exam yields a nil sequence.
func (s *Service) sequence(ctx context.Context, chain []string) ([]Entry, error) {
	f := store.Filter{Slug: chain[0], ActiveOnly: true}
	if slug.IsObjectID(chain[0]) {
		f = store.Filter{ID: chain[0], ActiveOnly: true}
	}
	exam, err := s.store.FindOne(ctx, models.LevelExam, f)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.StoreFailure(err)
	}
	chain[0] = exam.Slug

	tree, err := s.assembler.BuildFull(ctx, exam)
	if err != nil {
		return nil, err
	}
	return Linearize(tree), nil
}

// UniversalNav returns the nodes immediately before and after the one named
// by pc in the exam's full reading order. A node that is unknown, inactive
// or under an inactive ancestor gets an empty Nav rather than an error.
func (s *Service) UniversalNav(ctx context.Context, pc PathContext) (Nav, error) {
	chain, err := pc.chain()
	if err != nil {
		return Nav{}, err
	}
	entries, err := s.sequence(ctx, chain)
	if err != nil {
		return Nav{}, err
	}
	return Locate(entries, PathOf(chain)), nil
}

// Breadcrumbs returns the ancestor chain of the node named by pc, exam
// first and the node itself last.
func (s *Service) Breadcrumbs(ctx context.Context, pc PathContext) ([]Crumb, error) {
	chain, err := pc.chain()
	if err != nil {
		return nil, err
	}
	level := models.Level(len(chain) - 1)
	entries, err := s.sequence(ctx, chain)
	if err != nil {
		return nil, err
	}
	if Index(entries, PathOf(chain)) < 0 {
		return nil, apperr.NotFound(level.String() + " not found")
	}

	crumbs := make([]Crumb, 0, len(chain))
	for i := 1; i <= len(chain); i++ {
		e := &entries[Index(entries, PathOf(chain[:i]))]
		crumbs = append(crumbs, Crumb{Label: e.Name, Path: e.Path, Level: e.Level.Key()})
	}
	return crumbs, nil
}
