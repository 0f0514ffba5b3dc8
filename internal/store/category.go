// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"myblog/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.Slug, &c.Description)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name, with post counts. Counts
// are computed fresh on every call so the sidebar always reflects the
// current post set.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.slug, c.description,
		       COUNT(p.id) AS post_count
		FROM categories c
		LEFT JOIN posts p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.PostCount)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// CountUncategorized returns the number of posts with no category assigned.
func (s *CategoryStore) CountUncategorized() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE category_id IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count uncategorized posts: %w", err)
	}
	return count, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// FindByID retrieves a category by id. Returns nil if not found.
func (s *CategoryStore) FindByID(id int64) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categories (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Delete removes a category by id. Its posts are detached, not deleted
// (ON DELETE SET NULL) — they move to the uncategorized bucket.
func (s *CategoryStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
