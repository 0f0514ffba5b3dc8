// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"myblog/internal/models"
)

// PostStore handles all post-related database operations. Every listing
// method returns posts newest-first by creation time.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postSelect joins author and category so listings can show names without
// extra queries. Category fields are empty strings for uncategorized posts.
const postSelect = `
	SELECT p.id, p.title, p.content, p.created, p.author_id, p.head_image,
	       p.category_id, u.display_name, COALESCE(c.name, ''), COALESCE(c.slug, '')
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id`

// postOrder is the canonical listing order: newest first, id as tiebreak
// for posts created in the same instant.
const postOrder = ` ORDER BY p.created DESC, p.id DESC`

// scanPost scans a postSelect row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Content, &p.Created, &p.AuthorID, &p.HeadImage,
		&p.CategoryID, &p.AuthorName, &p.CategoryName, &p.CategorySlug,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// collectPosts drains rows produced by a postSelect query.
func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// List returns one page of posts, newest first.
func (s *PostStore) List(limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(postSelect+postOrder+` LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return collectPosts(rows)
}

// Count returns the total number of posts.
func (s *PostStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// ListByCategory returns all posts in the given category, newest first.
func (s *PostStore) ListByCategory(categoryID int64) ([]models.Post, error) {
	rows, err := s.db.Query(postSelect+` WHERE p.category_id = $1`+postOrder, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list posts by category: %w", err)
	}
	return collectPosts(rows)
}

// ListUncategorized returns all posts with no category assigned, newest
// first. Together with ListByCategory over every category this partitions
// the full post set.
func (s *PostStore) ListUncategorized() ([]models.Post, error) {
	rows, err := s.db.Query(postSelect + ` WHERE p.category_id IS NULL` + postOrder)
	if err != nil {
		return nil, fmt.Errorf("list uncategorized posts: %w", err)
	}
	return collectPosts(rows)
}

// ListByTag returns all posts carrying the given tag, newest first.
func (s *PostStore) ListByTag(tagID int64) ([]models.Post, error) {
	rows, err := s.db.Query(postSelect+`
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE pt.tag_id = $1`+postOrder, tagID)
	if err != nil {
		return nil, fmt.Errorf("list posts by tag: %w", err)
	}
	return collectPosts(rows)
}

// Search returns posts whose title or content contains the term,
// case-insensitively, newest first. An empty result is not an error.
func (s *PostStore) Search(term string) ([]models.Post, error) {
	pattern := "%" + escapeLike(term) + "%"
	rows, err := s.db.Query(postSelect+`
		WHERE p.title ILIKE $1 ESCAPE '\' OR p.content ILIKE $1 ESCAPE '\'`+postOrder, pattern)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return collectPosts(rows)
}

// escapeLike neutralizes LIKE metacharacters so search terms match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// FindByID retrieves a post by id with its tags loaded. Returns nil if
// not found.
func (s *PostStore) FindByID(id int64) (*models.Post, error) {
	row := s.db.QueryRow(postSelect+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}

	if p.Tags, err = NewTagStore(s.db).ListForPost(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new post and links its tags in a single transaction.
// The created timestamp is assigned by the database and never changes.
func (s *PostStore) Create(p *models.Post, tagIDs []int64) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result := &models.Post{}
	err = tx.QueryRow(`
		INSERT INTO posts (title, content, author_id, head_image, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, content, created, author_id, head_image, category_id
	`, p.Title, p.Content, p.AuthorID, p.HeadImage, p.CategoryID).Scan(
		&result.ID, &result.Title, &result.Content, &result.Created,
		&result.AuthorID, &result.HeadImage, &result.CategoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := linkTags(tx, result.ID, tagIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create post: %w", err)
	}
	return result, nil
}

// Update modifies a post's editable fields and replaces its tag links.
// The created timestamp and author are left untouched.
func (s *PostStore) Update(p *models.Post, tagIDs []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE posts SET title = $1, content = $2, head_image = $3, category_id = $4
		WHERE id = $5
	`, p.Title, p.Content, p.HeadImage, p.CategoryID, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = $1`, p.ID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	if err := linkTags(tx, p.ID, tagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update post: %w", err)
	}
	return nil
}

// linkTags attaches the given tags to a post inside an open transaction.
func linkTags(tx *sql.Tx, postID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		_, err := tx.Exec(`
			INSERT INTO post_tags (post_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID)
		if err != nil {
			return fmt.Errorf("link tag %d: %w", tagID, err)
		}
	}
	return nil
}

// Delete removes a post by id. Its comments cascade with it.
func (s *PostStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
