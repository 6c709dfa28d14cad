// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package navigation flattens an exam's active tree into a single reading
// order and answers prev/next and breadcrumb questions against it.
package navigation

import (
	"strings"

	"learnhub/internal/hierarchy"
	"learnhub/internal/models"
)

// Entry is one node of the linear sequence.
type Entry struct {
	Level models.Level
	Name  string
	Slugs []string // exam slug first, node slug last
	Path  string   // "/" + slugs joined by "/"
}

// Target is a prev/next neighbour as returned to clients.
type Target struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Level string `json:"level"`
	Slug  string `json:"slug"`
}

// Nav holds the neighbours of a node. Either side is nil at the ends of the
// sequence, and both are nil when the node is not in it.
type Nav struct {
	Prev *Target `json:"prev"`
	Next *Target `json:"next"`
}

// PathOf builds the route path for a slug chain.
func PathOf(slugs []string) string {
	return "/" + strings.Join(slugs, "/")
}

func newEntry(l models.Level, n *models.Node, parent []string) Entry {
	slugs := make([]string, len(parent)+1)
	copy(slugs, parent)
	slugs[len(parent)] = n.Slug
	return Entry{Level: l, Name: n.Name, Slugs: slugs, Path: PathOf(slugs)}
}

// Linearize returns the depth-first pre-order reading of t: the exam, then
// each subject followed by everything beneath it, and so on down to
// definitions.
func Linearize(t *hierarchy.Tree) []Entry {
	exam := newEntry(models.LevelExam, &t.Exam, nil)
	out := []Entry{exam}
	for i := range t.Subjects {
		s := &t.Subjects[i]
		se := newEntry(models.LevelSubject, &s.Node, exam.Slugs)
		out = append(out, se)
		for j := range s.Units {
			u := &s.Units[j]
			ue := newEntry(models.LevelUnit, &u.Node, se.Slugs)
			out = append(out, ue)
			for k := range u.Chapters {
				c := &u.Chapters[k]
				ce := newEntry(models.LevelChapter, &c.Node, ue.Slugs)
				out = append(out, ce)
				for m := range c.Topics {
					tp := &c.Topics[m]
					te := newEntry(models.LevelTopic, &tp.Node, ce.Slugs)
					out = append(out, te)
					for n := range tp.Subtopics {
						st := &tp.Subtopics[n]
						ste := newEntry(models.LevelSubtopic, &st.Node, te.Slugs)
						out = append(out, ste)
						for d := range st.Definitions {
							out = append(out, newEntry(models.LevelDefinition, &st.Definitions[d], ste.Slugs))
						}
					}
				}
			}
		}
	}
	return out
}

// Index returns the position of the entry at path, or -1.
func Index(entries []Entry, path string) int {
	for i := range entries {
		if entries[i].Path == path {
			return i
		}
	}
	return -1
}

// Locate returns the neighbours of the entry at path.
func Locate(entries []Entry, path string) Nav {
	i := Index(entries, path)
	if i < 0 {
		return Nav{}
	}
	var nav Nav
	if i > 0 {
		nav.Prev = targetOf(&entries[i-1])
	}
	if i < len(entries)-1 {
		nav.Next = targetOf(&entries[i+1])
	}
	return nav
}

func targetOf(e *Entry) *Target {
	return &Target{
		Label: e.Name,
		Path:  e.Path,
		Level: e.Level.Key(),
		Slug:  e.Slugs[len(e.Slugs)-1],
	}
}
