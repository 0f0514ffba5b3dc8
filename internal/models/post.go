// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Post is a blog entry written in Markdown. Created is set at insert time
// and never changes afterwards; CategoryID is nil for uncategorized posts.
type Post struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Created    time.Time `json:"created"`
	AuthorID   int64     `json:"author_id"`
	HeadImage  *string   `json:"head_image,omitempty"`
	CategoryID *int64    `json:"category_id,omitempty"`

	// Virtual fields populated by store methods.
	AuthorName   string `json:"author_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	CategorySlug string `json:"category_slug,omitempty"`
	Tags         []Tag  `json:"tags,omitempty"`
}
