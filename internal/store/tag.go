// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"myblog/internal/models"
	"myblog/internal/slug"
)

// TagStore manages tags and their post associations.
type TagStore struct {
	db *sql.DB
}

// NewTagStore returns a new TagStore.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

// FindBySlug retrieves a tag by slug. Returns nil if not found.
func (s *TagStore) FindBySlug(tagSlug string) (*models.Tag, error) {
	t := &models.Tag{}
	err := s.db.QueryRow(`SELECT id, name, slug FROM tags WHERE slug = $1`, tagSlug).
		Scan(&t.ID, &t.Name, &t.Slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by slug: %w", err)
	}
	return t, nil
}

// GetOrCreate resolves a tag by name, creating it on first use. Tags are
// never deleted when their last post goes away.
func (s *TagStore) GetOrCreate(name string) (*models.Tag, error) {
	t := &models.Tag{}
	err := s.db.QueryRow(`
		INSERT INTO tags (name, slug)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, slug
	`, name, slug.Generate(name)).Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		return nil, fmt.Errorf("get or create tag: %w", err)
	}
	return t, nil
}

// ListForPost returns the tags attached to a post, ordered by name.
func (s *TagStore) ListForPost(postID int64) ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.slug
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list tags for post: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Delete removes a tag by id. Post links go with it (cascade on the join
// table); posts themselves are untouched.
func (s *TagStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
