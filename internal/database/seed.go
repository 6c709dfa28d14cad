package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"learnhub/internal/models"
	"learnhub/internal/slug"
)

//go:embed seed/default.yaml
var defaultSeed []byte

// Seeder is the part of the store that seeding needs.
type Seeder interface {
	Insert(ctx context.Context, level models.Level, n *models.Node) error
	CountExams(ctx context.Context) (int64, error)
}

// SeedNode is one node of a seed fixture. Children belong to the next
// level down: an exam's children are subjects, a subject's are units, and
// so on to definitions.
type SeedNode struct {
	Name     string     `yaml:"name"`
	Slug     string     `yaml:"slug"`
	Order    int        `yaml:"order"`
	Status   string     `yaml:"status"`
	Content  string     `yaml:"content"`
	SEO      models.SEO `yaml:"seo"`
	Children []SeedNode `yaml:"children"`
}

// SeedFile is the top-level layout of a seed fixture.
type SeedFile struct {
	Exams []SeedNode `yaml:"exams"`
}

// ParseSeed decodes a YAML seed fixture.
func ParseSeed(data []byte) (*SeedFile, error) {
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed parse: %w", err)
	}
	return &f, nil
}

// LoadSeed reads the fixture at path, or the built-in one when path is empty.
func LoadSeed(path string) (*SeedFile, error) {
	if path == "" {
		return ParseSeed(defaultSeed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed read %s: %w", path, err)
	}
	return ParseSeed(data)
}

// Seed inserts the fixture's exam trees. It does nothing when the store
// already holds at least one exam, so it is safe to call on every start.
func Seed(ctx context.Context, s Seeder, f *SeedFile) error {
	count, err := s.CountExams(ctx)
	if err != nil {
		return fmt.Errorf("seed check exams: %w", err)
	}
	if count > 0 {
		slog.Info("store already seeded, skipping")
		return nil
	}

	var inserted int
	for i := range f.Exams {
		n, err := seedNode(ctx, s, models.LevelExam, &f.Exams[i], "", "")
		if err != nil {
			return err
		}
		inserted += n
	}

	slog.Info("store seeded", "exams", len(f.Exams), "nodes", inserted)
	return nil
}

// seedNode inserts sn at level and recurses into its children. It returns
// the number of nodes inserted.
func seedNode(ctx context.Context, s Seeder, level models.Level, sn *SeedNode, parentID, examID string) (int, error) {
	n := &models.Node{
		Name:        sn.Name,
		Slug:        sn.Slug,
		ParentID:    parentID,
		ExamID:      examID,
		Status:      models.Status(sn.Status),
		OrderNumber: sn.Order,
		ContentBody: sn.Content,
		SEO:         sn.SEO,
	}
	if n.Slug == "" {
		n.Slug = slug.Generate(sn.Name)
	}
	if n.Slug == "" {
		return 0, fmt.Errorf("seed %s: node needs a name or slug", level)
	}
	if n.Status == "" {
		n.Status = models.StatusActive
	}
	if err := s.Insert(ctx, level, n); err != nil {
		return 0, fmt.Errorf("seed insert %s %q: %w", level, n.Slug, err)
	}
	if level == models.LevelExam {
		examID = n.ID
	}

	inserted := 1
	if len(sn.Children) == 0 {
		return inserted, nil
	}
	child, ok := level.Child()
	if !ok {
		return 0, fmt.Errorf("seed %s %q: definitions cannot have children", level, n.Slug)
	}
	for i := range sn.Children {
		c, err := seedNode(ctx, s, child, &sn.Children[i], n.ID, examID)
		if err != nil {
			return 0, err
		}
		inserted += c
	}
	return inserted, nil
}
