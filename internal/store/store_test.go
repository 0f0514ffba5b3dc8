// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"myblog/internal/database"
	"myblog/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "myblog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "myblog")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser creates a throwaway author and registers cleanup. Deleting the
// user cascades to their posts and comments, so per-post cleanup is not
// needed.
func testUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()

	us := NewUserStore(db)
	email := "test-" + uuid.NewString()[:8] + "@myblog.local"
	u, err := us.Create(email, "secret", "Test Author")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { us.Delete(u.ID) })
	return u
}

// testPost creates a post for the given author with optional category.
func testPost(t *testing.T, db *sql.DB, authorID int64, title, content string, categoryID *int64) *models.Post {
	t.Helper()

	p, err := NewPostStore(db).Create(&models.Post{
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		CategoryID: categoryID,
	}, nil)
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return p
}

// cleanCategories removes test categories by slug. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM categories WHERE slug = $1", slug)
	}
}

// cleanTags removes test tags by name. Call in t.Cleanup().
func cleanTags(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM tags WHERE name = $1", name)
	}
}
