// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"learnhub/internal/models"
)

// DatabaseProvider hands out the MongoDB database, connecting lazily.
// *database.Mongo satisfies it.
type DatabaseProvider interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

// MongoStore serves nodes from one MongoDB collection per level. Each
// collection carries the parent-reference field named for its parent level
// plus a denormalised examId.
type MongoStore struct {
	db DatabaseProvider
}

// NewMongoStore creates a MongoStore over the given provider.
func NewMongoStore(db DatabaseProvider) *MongoStore {
	return &MongoStore{db: db}
}

// nodeDoc is the persisted shape shared by every level. The parent
// reference is read and written separately because its field name depends
// on the level.
type nodeDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ExamID       primitive.ObjectID `bson:"examId,omitempty"`
	Name         string             `bson:"name"`
	Slug         string             `bson:"slug"`
	Status       string             `bson:"status"`
	OrderNumber  int                `bson:"orderNumber"`
	Visits       int64              `bson:"visits"`
	Today        int64              `bson:"today"`
	ContentBody  string             `bson:"contentBody,omitempty"`
	SEO          models.SEO         `bson:"seo"`
	LastModified string             `bson:"lastModified,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (s *MongoStore) collection(ctx context.Context, level models.Level) (*mongo.Collection, error) {
	db, err := s.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(level.Collection()), nil
}

// filterDoc translates f into a MongoDB filter. ok is false when an id or
// parent id is not a valid ObjectID, which can never match a document.
func filterDoc(level models.Level, f Filter) (bson.D, bool) {
	var doc bson.D
	if f.ByID() {
		oid, err := primitive.ObjectIDFromHex(normalizeID(f.ID))
		if err != nil {
			return nil, false
		}
		doc = bson.D{{Key: "_id", Value: oid}}
	} else {
		doc = bson.D{{Key: "slug", Value: f.Slug}}
		if level.HasParent() {
			pid, err := primitive.ObjectIDFromHex(normalizeID(f.ParentID))
			if err != nil {
				return nil, false
			}
			doc = append(doc, bson.E{Key: level.ParentField(), Value: pid})
		}
	}
	if f.ActiveOnly {
		doc = append(doc, bson.E{Key: "status", Value: string(models.StatusActive)})
	}
	return doc, true
}

// decodeNode converts a raw document of level into a Node.
func decodeNode(level models.Level, raw bson.Raw) (*models.Node, error) {
	var d nodeDoc
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode %s: %w", level, err)
	}
	n := &models.Node{
		ID:           d.ID.Hex(),
		Level:        level,
		Name:         d.Name,
		Slug:         d.Slug,
		Status:       models.Status(d.Status),
		OrderNumber:  d.OrderNumber,
		Visits:       d.Visits,
		Today:        d.Today,
		ContentBody:  d.ContentBody,
		SEO:          d.SEO,
		LastModified: d.LastModified,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if !d.ExamID.IsZero() {
		n.ExamID = d.ExamID.Hex()
	}
	if level.HasParent() {
		if pid, ok := raw.Lookup(level.ParentField()).ObjectIDOK(); ok {
			n.ParentID = pid.Hex()
		}
	}
	return n, nil
}

// FindOne returns the node matching f.
func (s *MongoStore) FindOne(ctx context.Context, level models.Level, f Filter) (*models.Node, error) {
	if err := f.Validate(level); err != nil {
		return nil, err
	}
	filter, ok := filterDoc(level, f)
	if !ok {
		return nil, ErrNotFound
	}
	coll, err := s.collection(ctx, level)
	if err != nil {
		return nil, err
	}

	raw, err := coll.FindOne(ctx, filter).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", level, err)
	}
	return decodeNode(level, raw)
}

// ListByExam queries the level's collection by the denormalised examId.
// Sorting on _id after orderNumber keeps ties in insertion order.
func (s *MongoStore) ListByExam(ctx context.Context, level models.Level, examID string, opts ListOptions) ([]models.Node, error) {
	if level == models.LevelExam || !level.Valid() {
		return nil, fmt.Errorf("list by exam: unsupported level %v", level)
	}
	oid, err := primitive.ObjectIDFromHex(normalizeID(examID))
	if err != nil {
		return nil, nil
	}
	coll, err := s.collection(ctx, level)
	if err != nil {
		return nil, err
	}

	filter := bson.D{{Key: "examId", Value: oid}}
	if opts.ActiveOnly {
		filter = append(filter, bson.E{Key: "status", Value: string(models.StatusActive)})
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "orderNumber", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.D{{Key: "contentBody", Value: 0}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}

	cur, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", level.Plural(), err)
	}
	defer cur.Close(ctx)

	var items []models.Node
	for cur.Next(ctx) {
		n, err := decodeNode(level, cur.Current)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", level.Plural(), err)
	}
	return items, nil
}

// IncrementVisits applies $inc to both counters in one FindOneAndUpdate, so
// the lookup and the write are a single atomic operation.
func (s *MongoStore) IncrementVisits(ctx context.Context, level models.Level, f Filter) (models.Counters, error) {
	if err := f.Validate(level); err != nil {
		return models.Counters{}, err
	}
	filter, ok := filterDoc(level, f)
	if !ok {
		return models.Counters{}, ErrNotFound
	}
	coll, err := s.collection(ctx, level)
	if err != nil {
		return models.Counters{}, err
	}

	update := bson.D{{Key: "$inc", Value: bson.D{
		{Key: "visits", Value: 1},
		{Key: "today", Value: 1},
	}}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.D{{Key: "visits", Value: 1}, {Key: "today", Value: 1}})

	var out struct {
		Visits int64 `bson:"visits"`
		Today  int64 `bson:"today"`
	}
	err = coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Counters{}, ErrNotFound
	}
	if err != nil {
		return models.Counters{}, fmt.Errorf("increment %s visits: %w", level, err)
	}
	return models.Counters{Visits: out.Visits, Today: out.Today}, nil
}

// SetOrder rewrites orderNumber on one document.
func (s *MongoStore) SetOrder(ctx context.Context, level models.Level, id string, orderNumber int, lastModified string) error {
	oid, err := primitive.ObjectIDFromHex(normalizeID(id))
	if err != nil {
		return ErrNotFound
	}
	coll, err := s.collection(ctx, level)
	if err != nil {
		return err
	}

	set := bson.D{
		{Key: "orderNumber", Value: orderNumber},
		{Key: "updatedAt", Value: time.Now()},
	}
	if lastModified != "" {
		set = append(set, bson.E{Key: "lastModified", Value: lastModified})
	}
	res, err := coll.UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("reorder %s %s: %w", level, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Insert stores n in the level's collection.
func (s *MongoStore) Insert(ctx context.Context, level models.Level, n *models.Node) error {
	if !level.Valid() {
		return fmt.Errorf("insert: invalid level %d", level)
	}
	coll, err := s.collection(ctx, level)
	if err != nil {
		return err
	}

	oid := primitive.NewObjectID()
	if n.ID != "" {
		if oid, err = primitive.ObjectIDFromHex(normalizeID(n.ID)); err != nil {
			return fmt.Errorf("insert %s: %w", level, err)
		}
	}
	if level == models.LevelSubject && n.ExamID == "" {
		n.ExamID = n.ParentID
	}
	if n.Status == "" {
		n.Status = models.StatusActive
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now

	d := nodeDoc{
		ID:           oid,
		Name:         n.Name,
		Slug:         n.Slug,
		Status:       string(n.Status),
		OrderNumber:  n.OrderNumber,
		Visits:       n.Visits,
		Today:        n.Today,
		ContentBody:  n.ContentBody,
		SEO:          n.SEO,
		LastModified: n.LastModified,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
	if n.ExamID != "" {
		if d.ExamID, err = primitive.ObjectIDFromHex(normalizeID(n.ExamID)); err != nil {
			return fmt.Errorf("insert %s: examId: %w", level, err)
		}
	}
	raw, err := bson.Marshal(d)
	if err != nil {
		return fmt.Errorf("insert %s: %w", level, err)
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("insert %s: %w", level, err)
	}
	// Subjects already carry examId, which is their parent field.
	if level.HasParent() && level != models.LevelSubject {
		pid, err := primitive.ObjectIDFromHex(normalizeID(n.ParentID))
		if err != nil {
			return fmt.Errorf("insert %s: %s: %w", level, level.ParentField(), err)
		}
		doc = append(doc, bson.E{Key: level.ParentField(), Value: pid})
	}

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert %s: %w", level, err)
	}
	n.ID = oid.Hex()
	n.Level = level
	return nil
}

// CountExams counts documents in the exams collection.
func (s *MongoStore) CountExams(ctx context.Context) (int64, error) {
	coll, err := s.collection(ctx, models.LevelExam)
	if err != nil {
		return 0, err
	}
	n, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count exams: %w", err)
	}
	return n, nil
}

// Ping verifies the MongoDB connection, dialing it if needed.
func (s *MongoStore) Ping(ctx context.Context) error {
	db, err := s.db.Database(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, nil)
}

// EnsureIndexes creates the sibling-scoped unique slug index and the
// exam-scoped listing index on every level's collection.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	for _, level := range models.Levels {
		coll, err := s.collection(ctx, level)
		if err != nil {
			return err
		}
		slugKeys := bson.D{{Key: "slug", Value: 1}}
		if level.HasParent() {
			slugKeys = bson.D{{Key: level.ParentField(), Value: 1}, {Key: "slug", Value: 1}}
		}
		indexes := []mongo.IndexModel{
			{Keys: slugKeys, Options: options.Index().SetUnique(true)},
		}
		if level.HasParent() {
			indexes = append(indexes, mongo.IndexModel{Keys: bson.D{
				{Key: "examId", Value: 1},
				{Key: "status", Value: 1},
				{Key: "orderNumber", Value: 1},
			}})
		}
		if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", level.Plural(), err)
		}
	}
	return nil
}
