package models

import "testing"

// TestNodeIsActive verifies that IsActive returns true only for the exact
// "Active" status.
func TestNodeIsActive(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{name: "active", status: StatusActive, want: true},
		{name: "inactive", status: StatusInactive, want: false},
		{name: "empty status", status: Status(""), want: false},
		{name: "lowercase active", status: Status("active"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Node{Status: tt.status}
			if got := n.IsActive(); got != tt.want {
				t.Errorf("Node{Status: %q}.IsActive() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

// TestMetaOfDefaults verifies that absent SEO fields come back as empty
// strings and false flags.
func TestMetaOfDefaults(t *testing.T) {
	n := &Node{ID: "65f1c0ffee65f1c0ffee0001", ParentID: "65f1c0ffee65f1c0ffee0000", Slug: "physics"}
	m := MetaOf(n)

	if m.ID != n.ID || m.ParentID != n.ParentID || m.Slug != "physics" {
		t.Errorf("identity fields not copied: %+v", m)
	}
	if m.MetaTitle != "" || m.OGImageURL != "" || m.CanonicalURL != "" {
		t.Errorf("expected empty SEO strings, got %+v", m)
	}
	if m.NoIndex || m.NoFollow {
		t.Error("expected false robots flags")
	}
}

func TestMetaOfCopiesSEO(t *testing.T) {
	n := &Node{SEO: SEO{MetaTitle: "Physics", NoIndex: true, OGImageURL: "https://cdn/x.png"}}
	m := MetaOf(n)
	if m.MetaTitle != "Physics" || !m.NoIndex || m.OGImageURL != "https://cdn/x.png" {
		t.Errorf("SEO not copied: %+v", m)
	}
}
