// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
// Letters and digits from any script are kept, so category and tag names in
// Korean or other non-Latin scripts produce usable slugs.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonSluggable matches anything that isn't a letter, digit, space, or hyphen.
	nonSluggable = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)
	// whitespace matches runs of whitespace for hyphen replacement.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026", "일상 잡담" → "일상-잡담"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonSluggable.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}
