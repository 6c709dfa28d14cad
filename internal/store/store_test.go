// store_test.go provides shared helpers for the store tests. The same
// contract suite runs against every backend; PostgreSQL and MongoDB tests
// are skipped if the server is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"learnhub/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "learnhub")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "learnhub")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable&connect_timeout=2"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testMongo returns a MongoStore on a throwaway database that is dropped
// when the test finishes. Skips when MongoDB is unreachable.
func testMongo(t *testing.T) *MongoStore {
	t.Helper()

	uri := envOr("MONGO_URI", "mongodb://localhost:27017/?serverSelectionTimeoutMS=2000")
	name := "learnhub_test_" + primitive.NewObjectID().Hex()[18:]
	conn := database.NewMongo(uri, name)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := conn.Database(ctx)
	if err != nil {
		t.Skipf("skipping integration test: MongoDB not reachable: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		db.Drop(ctx)
		conn.Close(ctx)
	})

	s := NewMongoStore(conn)
	if err := s.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	return s
}

// cleanExam removes a test exam and every node that references it.
// Call in t.Cleanup().
func cleanExam(t *testing.T, db *sql.DB, examSlug string) {
	t.Helper()
	db.Exec(`
		DELETE FROM nodes
		WHERE exam_id IN (SELECT id FROM nodes WHERE level = 'exams' AND slug = $1)
		   OR (level = 'exams' AND slug = $1)
	`, examSlug)
}
