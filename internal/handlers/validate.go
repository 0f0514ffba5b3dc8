package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"myblog/internal/errs"
)

// Validation limits for post and comment fields.
const (
	maxTitleLen     = 30
	maxContentLen   = 100_000
	maxTagLen       = 40
	maxTagCount     = 10
	maxCommentLen   = 10_000
	maxHeadImageLen = 500
)

// validatePost checks post form inputs and returns the first error found.
func validatePost(title, content string) *errs.ValidationError {
	title = strings.TrimSpace(title)
	if title == "" {
		return &errs.ValidationError{Field: "title", Message: "Title is required."}
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return &errs.ValidationError{Field: "title", Message: "Title is too long (max 30 characters)."}
	}
	if strings.TrimSpace(content) == "" {
		return &errs.ValidationError{Field: "content", Message: "Content is required."}
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return &errs.ValidationError{Field: "content", Message: "Content is too long (max 100,000 characters)."}
	}
	return nil
}

// validateComment checks a comment body and returns the first error found.
func validateComment(text string) *errs.ValidationError {
	if strings.TrimSpace(text) == "" {
		return &errs.ValidationError{Field: "text", Message: "Comment text is required."}
	}
	if utf8.RuneCountInString(text) > maxCommentLen {
		return &errs.ValidationError{Field: "text", Message: "Comment is too long (max 10,000 characters)."}
	}
	return nil
}

// httpError writes the response for a domain error, mapping its kind to
// the status code. Validation errors carry their message; everything else
// answers with the bare status text.
func httpError(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	msg := http.StatusText(status)
	if ve := errs.AsValidation(err); ve != nil {
		msg = ve.Message
	}
	http.Error(w, msg, status)
}

// parseTags splits a comma-separated tag field into clean tag names.
// Blank entries and duplicates are dropped; over-long names and anything
// past the tag count cap are ignored rather than rejected.
func parseTags(field string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, part := range strings.Split(field, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		if utf8.RuneCountInString(name) > maxTagLen {
			continue
		}
		seen[name] = true
		names = append(names, name)
		if len(names) == maxTagCount {
			break
		}
	}
	return names
}
