// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"myblog/internal/authz"
	"myblog/internal/errs"
	"myblog/internal/middleware"
	"myblog/internal/models"
	"myblog/internal/render"
	"myblog/internal/store"
)

// Comments groups the comment handlers: creation under a post, and the
// owner-only edit and delete routes. All routes sit behind RequireAuth.
type Comments struct {
	renderer     *render.Renderer
	commentStore *store.CommentStore
	postStore    *store.PostStore
}

// NewComments creates a new Comments handler group.
func NewComments(renderer *render.Renderer, commentStore *store.CommentStore, postStore *store.PostStore) *Comments {
	return &Comments{
		renderer:     renderer,
		commentStore: commentStore,
		postStore:    postStore,
	}
}

// Create attaches a new comment to the post named in the URL and
// redirects back to the post anchored at the new comment.
func (h *Comments) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpError(w, errs.NotFound("post"))
		return
	}

	post, err := h.postStore.FindByID(postID)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", postID)
		httpError(w, err)
		return
	}
	if post == nil {
		httpError(w, errs.NotFound("post"))
		return
	}

	text := r.FormValue("text")
	if verr := validateComment(text); verr != nil {
		// Nothing is written; send the author back to the post with
		// the message carried across the redirect.
		render.SetFlash(w, render.Flash{Type: "error", Message: verr.Message})
		http.Redirect(w, r, fmt.Sprintf("/%d/", postID), http.StatusSeeOther)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	created, err := h.commentStore.Create(&models.Comment{
		PostID:   postID,
		AuthorID: sess.UserID,
		Text:     text,
	})
	if err != nil {
		slog.Error("create comment failed", "error", err, "post", postID)
		httpError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/%d/#comment-%d", postID, created.ID), http.StatusSeeOther)
}

// EditForm renders the edit form for a comment. Only the comment's
// author gets through.
func (h *Comments) EditForm(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	h.renderer.Page(w, r, "comment_form", &render.PageData{
		Title: "Edit comment",
		Data:  map[string]any{"Comment": comment},
	})
}

// EditSubmit saves the edited comment text and returns to the post,
// anchored at the comment.
func (h *Comments) EditSubmit(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	text := r.FormValue("text")
	if verr := validateComment(text); verr != nil {
		h.renderer.Page(w, r, "comment_form", &render.PageData{
			Title: "Edit comment",
			Data:  map[string]any{"Comment": comment, "Error": verr.Message},
		})
		return
	}

	if err := h.commentStore.UpdateText(comment.ID, text); err != nil {
		slog.Error("update comment failed", "error", err, "id", comment.ID)
		httpError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/%d/#comment-%d", comment.PostID, comment.ID), http.StatusSeeOther)
}

// Delete removes a comment and returns to its post. The post itself is
// never touched.
func (h *Comments) Delete(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	if err := h.commentStore.Delete(comment.ID); err != nil {
		slog.Error("delete comment failed", "error", err, "id", comment.ID)
		httpError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/%d/", comment.PostID), http.StatusSeeOther)
}

// loadOwned resolves the comment from the URL and verifies the acting
// user is its author. It writes the response itself on failure.
func (h *Comments) loadOwned(w http.ResponseWriter, r *http.Request) (*models.Comment, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpError(w, errs.NotFound("comment"))
		return nil, false
	}

	comment, err := h.commentStore.FindByID(id)
	if err != nil {
		slog.Error("find comment failed", "error", err, "id", id)
		httpError(w, err)
		return nil, false
	}
	if comment == nil {
		httpError(w, errs.NotFound("comment"))
		return nil, false
	}

	sess := middleware.SessionFromCtx(r.Context())
	if err := authz.CanModifyComment(sess, comment); err != nil {
		httpError(w, err)
		return nil, false
	}

	return comment, true
}
