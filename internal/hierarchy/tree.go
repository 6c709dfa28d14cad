// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hierarchy

import "learnhub/internal/models"

// SubjectTree is a subject with its ordered units.
type SubjectTree struct {
	models.Node
	Units []UnitTree `json:"units"`
}

// UnitTree is a unit with its ordered chapters.
type UnitTree struct {
	models.Node
	Chapters []ChapterTree `json:"chapters"`
}

// ChapterTree is a chapter with its ordered topics.
type ChapterTree struct {
	models.Node
	Topics []TopicTree `json:"topics"`
}

// TopicTree is a topic. Subtopics are only filled by BuildFull.
type TopicTree struct {
	models.Node
	Subtopics []SubtopicTree `json:"subtopics,omitempty"`
}

// SubtopicTree is a subtopic with its ordered definitions.
type SubtopicTree struct {
	models.Node
	Definitions []models.Node `json:"definitions,omitempty"`
}

// Tree is the complete active hierarchy of one exam, all seven levels deep.
type Tree struct {
	Exam     models.Node   `json:"exam"`
	Subjects []SubjectTree `json:"subjects"`
}

// byParent groups nodes by parent id. Each group keeps the order of the
// input, which is already sorted by orderNumber.
func byParent(nodes []models.Node) map[string][]models.Node {
	m := make(map[string][]models.Node)
	for _, n := range nodes {
		m[n.ParentID] = append(m[n.ParentID], n)
	}
	return m
}

// levelSets holds the exam-scoped result set of each level below Exam,
// indexed by level.
type levelSets [models.LevelCount][]models.Node

// nest assembles subjects from the level sets. Nodes whose parent is not in
// the set of the level above (because it is inactive or missing) are never
// reached, which is what keeps children of inactive parents out.
func nest(sets *levelSets) []SubjectTree {
	units := byParent(sets[models.LevelUnit])
	chapters := byParent(sets[models.LevelChapter])
	topics := byParent(sets[models.LevelTopic])
	subtopics := byParent(sets[models.LevelSubtopic])
	definitions := byParent(sets[models.LevelDefinition])

	out := make([]SubjectTree, 0, len(sets[models.LevelSubject]))
	for _, s := range sets[models.LevelSubject] {
		st := SubjectTree{Node: s, Units: make([]UnitTree, 0, len(units[s.ID]))}
		for _, u := range units[s.ID] {
			ut := UnitTree{Node: u, Chapters: make([]ChapterTree, 0, len(chapters[u.ID]))}
			for _, c := range chapters[u.ID] {
				ct := ChapterTree{Node: c, Topics: make([]TopicTree, 0, len(topics[c.ID]))}
				for _, t := range topics[c.ID] {
					tt := TopicTree{Node: t}
					for _, sub := range subtopics[t.ID] {
						tt.Subtopics = append(tt.Subtopics, SubtopicTree{Node: sub, Definitions: definitions[sub.ID]})
					}
					ct.Topics = append(ct.Topics, tt)
				}
				ut.Chapters = append(ut.Chapters, ct)
			}
			st.Units = append(st.Units, ut)
		}
		out = append(out, st)
	}
	return out
}
