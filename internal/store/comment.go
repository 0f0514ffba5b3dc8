// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"myblog/internal/models"
)

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// ListByPost returns a post's comments oldest-first, with author names.
func (s *CommentStore) ListByPost(postID int64) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT cm.id, cm.post_id, cm.author_id, cm.text, cm.created, u.display_name
		FROM comments cm
		JOIN users u ON u.id = cm.author_id
		WHERE cm.post_id = $1
		ORDER BY cm.created, cm.id
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.Created, &c.AuthorName)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a comment by id. Returns nil if not found.
func (s *CommentStore) FindByID(id int64) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		SELECT cm.id, cm.post_id, cm.author_id, cm.text, cm.created, u.display_name
		FROM comments cm
		JOIN users u ON u.id = cm.author_id
		WHERE cm.id = $1
	`, id).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.Created, &c.AuthorName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// Create inserts a new comment and returns it. AuthorID must already be
// resolved — nothing is written for anonymous requests.
func (s *CommentStore) Create(c *models.Comment) (*models.Comment, error) {
	result := &models.Comment{}
	err := s.db.QueryRow(`
		INSERT INTO comments (post_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, post_id, author_id, text, created
	`, c.PostID, c.AuthorID, c.Text).Scan(
		&result.ID, &result.PostID, &result.AuthorID, &result.Text, &result.Created,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return result, nil
}

// UpdateText replaces a comment's text. Author and post references are
// immutable after creation.
func (s *CommentStore) UpdateText(id int64, text string) error {
	_, err := s.db.Exec(`UPDATE comments SET text = $1 WHERE id = $2`, text, id)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// Delete removes a comment by id. The parent post is never affected.
func (s *CommentStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
