// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"learnhub/internal/models"
)

// PostgresStore keeps every level in the single nodes table, tagged by a
// level column. Identifiers are the same 24-hex strings used by MongoDB so
// routes behave identically on either backend.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore with the given database connection.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const nodeColumns = `id, name, slug, parent_id, exam_id, status, order_number,
	visits, today, content_body, seo, last_modified, created_at, updated_at`

// scanNode scans a row selected with nodeColumns.
func scanNode(level models.Level, scanner interface{ Scan(...any) error }) (*models.Node, error) {
	var (
		n        models.Node
		parentID sql.NullString
		examID   sql.NullString
		status   string
		seo      []byte
	)
	err := scanner.Scan(
		&n.ID, &n.Name, &n.Slug, &parentID, &examID, &status, &n.OrderNumber,
		&n.Visits, &n.Today, &n.ContentBody, &seo, &n.LastModified,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.Level = level
	n.Status = models.Status(status)
	n.ParentID = parentID.String
	n.ExamID = examID.String
	if len(seo) > 0 {
		if err := json.Unmarshal(seo, &n.SEO); err != nil {
			return nil, fmt.Errorf("decode seo: %w", err)
		}
	}
	return &n, nil
}

// whereFilter builds the WHERE clause and arguments for f.
func whereFilter(level models.Level, f Filter) (string, []any) {
	args := []any{level.Collection()}
	where := `level = $1`
	if f.ByID() {
		args = append(args, normalizeID(f.ID))
		where += ` AND id = $2`
	} else {
		args = append(args, f.Slug)
		where += ` AND slug = $2`
		if level.HasParent() {
			args = append(args, normalizeID(f.ParentID))
			where += ` AND parent_id = $3`
		}
	}
	if f.ActiveOnly {
		args = append(args, string(models.StatusActive))
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	return where, args
}

// FindOne retrieves the node matching f.
func (s *PostgresStore) FindOne(ctx context.Context, level models.Level, f Filter) (*models.Node, error) {
	if err := f.Validate(level); err != nil {
		return nil, err
	}
	where, args := whereFilter(level, f)
	row := s.db.QueryRowContext(ctx, `SELECT `+nodeColumns+` FROM nodes WHERE `+where+` LIMIT 1`, args...)
	n, err := scanNode(level, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", level, err)
	}
	return n, nil
}

// ListByExam returns the exam's nodes at level ordered by order_number,
// then insertion sequence.
func (s *PostgresStore) ListByExam(ctx context.Context, level models.Level, examID string, opts ListOptions) ([]models.Node, error) {
	if level == models.LevelExam || !level.Valid() {
		return nil, fmt.Errorf("list by exam: unsupported level %v", level)
	}

	query := `SELECT ` + nodeColumns + ` FROM nodes WHERE level = $1 AND exam_id = $2`
	args := []any{level.Collection(), normalizeID(examID)}
	if opts.ActiveOnly {
		args = append(args, string(models.StatusActive))
		query += ` AND status = $3`
	}
	query += ` ORDER BY order_number, seq`
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", level.Plural(), err)
	}
	defer rows.Close()

	var items []models.Node
	for rows.Next() {
		n, err := scanNode(level, rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", level, err)
		}
		items = append(items, *n)
	}
	return items, rows.Err()
}

// IncrementVisits bumps both counters in one UPDATE ... RETURNING.
func (s *PostgresStore) IncrementVisits(ctx context.Context, level models.Level, f Filter) (models.Counters, error) {
	if err := f.Validate(level); err != nil {
		return models.Counters{}, err
	}
	where, args := whereFilter(level, f)

	var c models.Counters
	err := s.db.QueryRowContext(ctx, `
		UPDATE nodes SET visits = visits + 1, today = today + 1
		WHERE `+where+`
		RETURNING visits, today
	`, args...).Scan(&c.Visits, &c.Today)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Counters{}, ErrNotFound
	}
	if err != nil {
		return models.Counters{}, fmt.Errorf("increment %s visits: %w", level, err)
	}
	return c, nil
}

// SetOrder rewrites order_number on one row.
func (s *PostgresStore) SetOrder(ctx context.Context, level models.Level, id string, orderNumber int, lastModified string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE nodes SET
			order_number = $1,
			last_modified = CASE WHEN $2::text = '' THEN last_modified ELSE $2::text END,
			updated_at = NOW()
		WHERE level = $3 AND id = $4
	`, orderNumber, lastModified, level.Collection(), normalizeID(id))
	if err != nil {
		return fmt.Errorf("reorder %s %s: %w", level, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reorder %s %s: %w", level, id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Insert adds a node row, generating an ObjectID-shaped id when needed.
func (s *PostgresStore) Insert(ctx context.Context, level models.Level, n *models.Node) error {
	if !level.Valid() {
		return fmt.Errorf("insert: invalid level %d", level)
	}
	if n.ID == "" {
		n.ID = primitive.NewObjectID().Hex()
	}
	if level == models.LevelSubject && n.ExamID == "" {
		n.ExamID = n.ParentID
	}
	if n.Status == "" {
		n.Status = models.StatusActive
	}
	seo, err := json.Marshal(n.SEO)
	if err != nil {
		return fmt.Errorf("insert %s: encode seo: %w", level, err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO nodes (id, level, name, slug, parent_id, exam_id, status,
		                   order_number, visits, today, content_body, seo, last_modified)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+nodeColumns,
		normalizeID(n.ID), level.Collection(), n.Name, n.Slug,
		normalizeID(n.ParentID), normalizeID(n.ExamID), string(n.Status),
		n.OrderNumber, n.Visits, n.Today, n.ContentBody, string(seo), n.LastModified,
	)
	created, err := scanNode(level, row)
	if err != nil {
		return fmt.Errorf("insert %s: %w", level, err)
	}
	*n = *created
	return nil
}

// CountExams returns the number of exam rows.
func (s *PostgresStore) CountExams(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM nodes WHERE level = $1`,
		models.LevelExam.Collection()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count exams: %w", err)
	}
	return count, nil
}

// Ping verifies the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}
