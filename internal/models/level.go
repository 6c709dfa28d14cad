// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// Level identifies one of the seven kinds of node in the content tree.
// Levels are ordered from the root (Exam) to the leaves (Definition).
type Level int

const (
	LevelExam Level = iota
	LevelSubject
	LevelUnit
	LevelChapter
	LevelTopic
	LevelSubtopic
	LevelDefinition
)

// LevelCount is the number of levels in the tree.
const LevelCount = int(LevelDefinition) + 1

// Levels lists every level in root-to-leaf order.
var Levels = []Level{
	LevelExam, LevelSubject, LevelUnit, LevelChapter,
	LevelTopic, LevelSubtopic, LevelDefinition,
}

type levelInfo struct {
	label       string // "Subject"
	plural      string // "subjects", also the collection/route name
	parentField string // "examId"
}

var levelTable = [...]levelInfo{
	LevelExam:       {label: "Exam", plural: "exams"},
	LevelSubject:    {label: "Subject", plural: "subjects", parentField: "examId"},
	LevelUnit:       {label: "Unit", plural: "units", parentField: "subjectId"},
	LevelChapter:    {label: "Chapter", plural: "chapters", parentField: "unitId"},
	LevelTopic:      {label: "Topic", plural: "topics", parentField: "chapterId"},
	LevelSubtopic:   {label: "Subtopic", plural: "subtopics", parentField: "topicId"},
	LevelDefinition: {label: "Definition", plural: "definitions", parentField: "subtopicId"},
}

// Valid reports whether l is one of the seven known levels.
func (l Level) Valid() bool {
	return l >= LevelExam && l <= LevelDefinition
}

// String returns the display label, e.g. "Chapter".
func (l Level) String() string {
	if !l.Valid() {
		return "Unknown"
	}
	return levelTable[l].label
}

// Plural returns the lowercase plural used for collections and routes.
func (l Level) Plural() string {
	if !l.Valid() {
		return ""
	}
	return levelTable[l].plural
}

// Collection returns the document store collection (or table level tag) name.
func (l Level) Collection() string {
	return l.Plural()
}

// Key returns the lowercase singular form used in query parameters ("subject").
func (l Level) Key() string {
	return strings.ToLower(l.String())
}

// ParentField returns the name of the parent-reference field, or "" for Exam.
func (l Level) ParentField() string {
	if !l.Valid() {
		return ""
	}
	return levelTable[l].parentField
}

// HasParent reports whether the level has a parent level.
func (l Level) HasParent() bool {
	return l > LevelExam && l.Valid()
}

// Parent returns the parent level. Calling it on Exam returns Exam.
func (l Level) Parent() Level {
	if !l.HasParent() {
		return LevelExam
	}
	return l - 1
}

// Child returns the child level and false when l is the leaf level.
func (l Level) Child() (Level, bool) {
	if l >= LevelDefinition || !l.Valid() {
		return l, false
	}
	return l + 1, true
}

// ParseLevel accepts either the plural route form ("subjects") or the
// singular form ("subject"), case-insensitively.
func ParseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range Levels {
		if s == l.Plural() || s == l.Key() {
			return l, true
		}
	}
	return 0, false
}
