// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// UncategorizedSlug is the reserved slug for posts with no category
// assigned. It never matches a real category.
const UncategorizedSlug = "_none"

// Category groups posts under a named topic. Posts can have at most one
// category; deleting a category detaches its posts instead of deleting them.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`

	// PostCount is a virtual field populated by store list methods.
	PostCount int `json:"post_count"`
}
