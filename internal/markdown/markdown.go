// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts Markdown source text into HTML using goldmark.
// Post bodies come from the site's author and render with the full
// feature set; comment text comes from arbitrary visitors and is
// additionally sanitized.
package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // GitHub-Flavored Markdown: tables, strikethrough, autolinks, task lists
		extension.Typographer, // Smart quotes and dashes
		highlighting.NewHighlighting( // Syntax highlighting for fenced code blocks
			highlighting.WithStyle("monokai"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(), // Auto-generate heading IDs for anchors
	),
)

// ugc strips anything dangerous from visitor-supplied HTML.
var ugc = bluemonday.UGCPolicy()

// ToHTML converts Markdown source into HTML. Used for post bodies, which
// only the site's author writes.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CommentToHTML converts visitor Markdown into HTML and sanitizes the
// result. Raw HTML, scripts, and event handlers never survive.
func CommentToHTML(source string) (string, error) {
	html, err := ToHTML(source)
	if err != nil {
		return "", err
	}
	return ugc.Sanitize(html), nil
}
