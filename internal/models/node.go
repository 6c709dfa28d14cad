// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"
)

// Status gates visibility of a node in public traversal and navigation.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// SEO holds the search-engine metadata of a node. Fields are passed
// through verbatim; absent values are the zero value.
type SEO struct {
	MetaTitle       string `json:"metaTitle" bson:"metaTitle,omitempty" yaml:"metaTitle"`
	MetaDescription string `json:"metaDescription" bson:"metaDescription,omitempty" yaml:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords" bson:"metaKeywords,omitempty" yaml:"metaKeywords"`
	OGTitle         string `json:"ogTitle" bson:"ogTitle,omitempty" yaml:"ogTitle"`
	OGDescription   string `json:"ogDescription" bson:"ogDescription,omitempty" yaml:"ogDescription"`
	OGImageURL      string `json:"ogImageUrl" bson:"ogImageUrl,omitempty" yaml:"ogImageUrl"`
	CanonicalURL    string `json:"canonicalUrl" bson:"canonicalUrl,omitempty" yaml:"canonicalUrl"`
	NoIndex         bool   `json:"noIndex" bson:"noIndex" yaml:"noIndex"`
	NoFollow        bool   `json:"noFollow" bson:"noFollow" yaml:"noFollow"`
}

// Node is a document at any level of the content tree. Every level shares
// this schema; the Level field says which collection it belongs to and
// ParentID refers to a node of Level.Parent().
type Node struct {
	ID           string    `json:"id"`
	Level        Level     `json:"-"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ParentID     string    `json:"parentId,omitempty"`
	ExamID       string    `json:"examId,omitempty"`
	Status       Status    `json:"status"`
	OrderNumber  int       `json:"orderNumber"`
	Visits       int64     `json:"visits"`
	Today        int64     `json:"today"`
	ContentBody  string    `json:"contentBody,omitempty"`
	SEO          SEO       `json:"seo"`
	LastModified string    `json:"lastModified,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsActive returns true if the node is visible in public traversal.
func (n *Node) IsActive() bool {
	return n.Status == StatusActive
}

// Counters are the visit counters of a node after an increment.
type Counters struct {
	Visits int64 `json:"visits"`
	Today  int64 `json:"today"`
}

// Meta is the SEO projection of a node returned by the meta lookup.
type Meta struct {
	ID              string `json:"id"`
	ParentID        string `json:"parentId"`
	Slug            string `json:"slug"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords"`
	OGTitle         string `json:"ogTitle"`
	OGDescription   string `json:"ogDescription"`
	OGImageURL      string `json:"ogImageUrl"`
	CanonicalURL    string `json:"canonicalUrl"`
	NoIndex         bool   `json:"noIndex"`
	NoFollow        bool   `json:"noFollow"`
}

// MetaOf builds the meta projection of n.
func MetaOf(n *Node) Meta {
	return Meta{
		ID:              n.ID,
		ParentID:        n.ParentID,
		Slug:            n.Slug,
		MetaTitle:       n.SEO.MetaTitle,
		MetaDescription: n.SEO.MetaDescription,
		MetaKeywords:    n.SEO.MetaKeywords,
		OGTitle:         n.SEO.OGTitle,
		OGDescription:   n.SEO.OGDescription,
		OGImageURL:      n.SEO.OGImageURL,
		CanonicalURL:    n.SEO.CanonicalURL,
		NoIndex:         n.SEO.NoIndex,
		NoFollow:        n.SEO.NoFollow,
	}
}

// ReorderItem is a single well-formed entry of a reorder request.
type ReorderItem struct {
	ID          string `json:"id"`
	OrderNumber int    `json:"orderNumber"`
}

// LastModifiedLayout is the human-readable timestamp stamped on reordered
// documents.
const LastModifiedLayout = "Jan 2, 2006, 3:04:05 PM"
