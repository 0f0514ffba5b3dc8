// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Comment belongs to exactly one post and is removed with it. AuthorID is
// immutable after creation; only that author may edit or delete the comment.
type Comment struct {
	ID       int64     `json:"id"`
	PostID   int64     `json:"post_id"`
	AuthorID int64     `json:"author_id"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`

	// AuthorName is a virtual field populated by store methods.
	AuthorName string `json:"author_name,omitempty"`
}
