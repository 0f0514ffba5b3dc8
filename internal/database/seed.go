package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// author account, a couple of categories, and a welcome post. It is a
// no-op when users already exist.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("blog"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var authorID int64
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "author@myblog.local", string(hash), "Author").Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	var categoryID int64
	err = db.QueryRow(`
		INSERT INTO categories (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "General", "general", "Everything that fits nowhere else.").Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO posts (title, content, author_id, category_id)
		VALUES ($1, $2, $3, $4)
	`, "Welcome", "This blog is up and running. Log in at `/login` to write your first post.", authorID, categoryID)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	slog.Info("database seeded with default author",
		"email", "author@myblog.local",
		"password", "blog",
	)

	return nil
}
