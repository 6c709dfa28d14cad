package database

import (
	"context"
	"strings"
	"testing"

	"learnhub/internal/models"
	"learnhub/internal/store"
)

func TestSeedDefaultFixture(t *testing.T) {
	f, err := LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	s := store.NewMemoryStore()
	ctx := context.Background()

	if err := Seed(ctx, s, f); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	n, err := s.CountExams(ctx)
	if err != nil {
		t.Fatalf("CountExams: %v", err)
	}
	if n != 2 {
		t.Fatalf("exams: got %d, want 2", n)
	}

	exam, err := s.FindOne(ctx, models.LevelExam, store.Filter{Slug: "neet"})
	if err != nil {
		t.Fatalf("FindOne exam: %v", err)
	}
	if exam.SEO.MetaTitle != "NEET Preparation" {
		t.Errorf("exam seo: got %+v", exam.SEO)
	}

	defs, err := s.ListByExam(ctx, models.LevelDefinition, exam.ID, store.ListOptions{})
	if err != nil {
		t.Fatalf("ListByExam: %v", err)
	}
	if len(defs) != 3 {
		t.Errorf("definitions: got %d, want 3", len(defs))
	}

	bio, err := s.FindOne(ctx, models.LevelSubject, store.Filter{Slug: "biology", ParentID: exam.ID})
	if err != nil {
		t.Fatalf("FindOne biology: %v", err)
	}
	if bio.IsActive() {
		t.Error("biology should be seeded inactive")
	}

	// Slugs are generated from names when omitted.
	if _, err := s.FindOne(ctx, models.LevelUnit, store.Filter{Slug: "mechanics", ParentID: mustSubject(t, s, exam.ID, "physics")}); err != nil {
		t.Errorf("generated unit slug: %v", err)
	}
}

func mustSubject(t *testing.T, s store.Store, examID, slug string) string {
	t.Helper()
	n, err := s.FindOne(context.Background(), models.LevelSubject, store.Filter{Slug: slug, ParentID: examID})
	if err != nil {
		t.Fatalf("FindOne subject %q: %v", slug, err)
	}
	return n.ID
}

func TestSeedIdempotent(t *testing.T) {
	f, err := LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	s := store.NewMemoryStore()
	ctx := context.Background()

	// Seed is callable safely on every start: it creates data only when
	// there are no exams.
	if err := Seed(ctx, s, f); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(ctx, s, f); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if n, _ := s.CountExams(ctx); n != 2 {
		t.Errorf("exams after second seed: got %d, want 2", n)
	}
}

func TestSeedRejectsTooDeep(t *testing.T) {
	var y strings.Builder
	y.WriteString("exams:\n")
	indent := "  "
	for i := 0; i < models.LevelCount+1; i++ {
		y.WriteString(indent + "- name: level" + string(rune('a'+i)) + "\n")
		y.WriteString(indent + "  children:\n")
		indent += "    "
	}
	y.WriteString(indent + "- name: leaf\n")

	f, err := ParseSeed([]byte(y.String()))
	if err != nil {
		t.Fatalf("ParseSeed: %v", err)
	}
	err = Seed(context.Background(), store.NewMemoryStore(), f)
	if err == nil || !strings.Contains(err.Error(), "cannot have children") {
		t.Errorf("expected depth error, got %v", err)
	}
}

func TestParseSeedInvalid(t *testing.T) {
	if _, err := ParseSeed([]byte("exams: [unterminated")); err == nil {
		t.Error("expected parse error")
	}
}
