// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package authz holds the authorization rules for posts and comments as
// pure decision functions. Decisions are computed fresh per request from
// the session and the target record; nothing is cached. Handlers map the
// returned error kinds to redirects or status codes.
package authz

import (
	"myblog/internal/errs"
	"myblog/internal/models"
	"myblog/internal/session"
)

// Policy carries the authorization switches chosen at startup.
type Policy struct {
	// RestrictPostUpdates limits the post update route to the post's
	// author. Off by default: historically any logged-in user could
	// reach the edit form, while the EDIT link only showed for the
	// author. The switch makes that gap an explicit deployment choice
	// instead of an accident.
	RestrictPostUpdates bool
}

// CanCreatePost permits post creation for any authenticated identity.
func CanCreatePost(sess *session.Data) bool {
	return sess != nil
}

// CanComment permits comment creation for any authenticated identity.
func CanComment(sess *session.Data) bool {
	return sess != nil
}

// CanEditPost reports whether the acting identity owns the post. This
// drives the EDIT affordance on the detail page.
func CanEditPost(sess *session.Data, post *models.Post) bool {
	return sess != nil && post != nil && sess.UserID == post.AuthorID
}

// CanUpdatePost decides whether the acting identity may submit changes to
// the post. Requires authentication always; requires ownership only when
// the policy says so.
func (p Policy) CanUpdatePost(sess *session.Data, post *models.Post) error {
	if sess == nil {
		return errs.PermissionDenied("update post")
	}
	if p.RestrictPostUpdates && sess.UserID != post.AuthorID {
		return errs.PermissionDenied("update post")
	}
	return nil
}

// CanModifyComment decides whether the acting identity may edit or delete
// the comment. Only the comment's own author qualifies; the post's
// author gets no special treatment.
func CanModifyComment(sess *session.Data, comment *models.Comment) error {
	if sess == nil || sess.UserID != comment.AuthorID {
		return errs.PermissionDenied("modify comment")
	}
	return nil
}
