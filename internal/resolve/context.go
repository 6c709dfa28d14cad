// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package resolve

import (
	"net/url"
	"strings"

	"learnhub/internal/models"
)

// ParentContext carries what is known about a node's ancestors: an id
// and/or a slug per level. A slug is only resolvable when the level above
// it is resolvable too, down to the exam.
type ParentContext struct {
	IDs   [models.LevelCount]string
	Slugs [models.LevelCount]string
}

// WithID returns a copy of pc with the id of level l set.
func (pc ParentContext) WithID(l models.Level, id string) ParentContext {
	if l.Valid() {
		pc.IDs[l] = strings.TrimSpace(id)
	}
	return pc
}

// WithSlug returns a copy of pc with the slug of level l set.
func (pc ParentContext) WithSlug(l models.Level, s string) ParentContext {
	if l.Valid() {
		pc.Slugs[l] = strings.TrimSpace(s)
	}
	return pc
}

// ParentContextFromQuery reads ancestor context for a node of level from a
// query string. It accepts parentId/parentSlug for the immediate parent and
// <level>Id/<level>Slug (examId, subjectSlug, ...) for any ancestor. An
// explicit per-level key wins over parentId/parentSlug.
func ParentContextFromQuery(level models.Level, q url.Values) ParentContext {
	var pc ParentContext
	for _, l := range models.Levels {
		if l >= level {
			break
		}
		pc = pc.WithID(l, q.Get(l.Key()+"Id"))
		pc = pc.WithSlug(l, q.Get(l.Key()+"Slug"))
	}
	if level.HasParent() {
		p := level.Parent()
		if pc.IDs[p] == "" {
			pc = pc.WithID(p, q.Get("parentId"))
		}
		if pc.Slugs[p] == "" {
			pc = pc.WithSlug(p, q.Get("parentSlug"))
		}
	}
	return pc
}

// missingContextMessage names the query parameters that would let a slug
// at level be resolved.
func missingContextMessage(level models.Level) string {
	p := level.Parent()
	return level.String() + " slug requires parentId or parentSlug (" +
		p.Key() + "Id or " + p.Key() + "Slug) query parameter"
}
