// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings
// and the slug/identifier classification used when resolving path segments.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// objectID matches a 24-character hexadecimal document identifier.
	objectID = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "JEE Main 2026" → "jee-main-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Normalize prepares a slug path segment for lookup: trimmed and lowercased.
// Unlike Generate it does not strip characters, so a slug that was never
// valid simply fails to match.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsObjectID reports whether s has the shape of a document identifier
// (24 hex characters) rather than a slug.
func IsObjectID(s string) bool {
	return objectID.MatchString(s)
}
