// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"myblog/internal/authz"
	"myblog/internal/errs"
	"myblog/internal/middleware"
	"myblog/internal/models"
	"myblog/internal/render"
	"myblog/internal/store"
)

// Posts groups the authoring handlers: the create and update forms and
// their submissions. All routes here sit behind RequireAuth.
type Posts struct {
	renderer      *render.Renderer
	postStore     *store.PostStore
	categoryStore *store.CategoryStore
	tagStore      *store.TagStore
	policy        authz.Policy
}

// NewPosts creates a new Posts handler group.
func NewPosts(renderer *render.Renderer, postStore *store.PostStore, categoryStore *store.CategoryStore, tagStore *store.TagStore, policy authz.Policy) *Posts {
	return &Posts{
		renderer:      renderer,
		postStore:     postStore,
		categoryStore: categoryStore,
		tagStore:      tagStore,
		policy:        policy,
	}
}

// postFormData assembles the template data for the post form, shared by
// the create and update pages.
func (h *Posts) postFormData(heading, action, title, content, tagsValue, headImage string, categoryID int64, formErr string) (map[string]any, error) {
	categories, err := h.categoryStore.List()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return map[string]any{
		"Heading":    heading,
		"Action":     action,
		"Title":      title,
		"Content":    content,
		"TagsValue":  tagsValue,
		"HeadImage":  headImage,
		"CategoryID": categoryID,
		"Categories": categories,
		"Error":      formErr,
	}, nil
}

// CreateForm renders the empty post form.
func (h *Posts) CreateForm(w http.ResponseWriter, r *http.Request) {
	data, err := h.postFormData("New post", "/create/", "", "", "", "", 0, "")
	if err != nil {
		slog.Error("post form data failed", "error", err)
		httpError(w, err)
		return
	}
	h.renderer.Page(w, r, "post_form", &render.PageData{
		Title: "New post",
		Data:  data,
	})
}

// CreateSubmit validates the post form and creates the post, then
// redirects to its detail page.
func (h *Posts) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	title := strings.TrimSpace(r.FormValue("title"))
	content := r.FormValue("content")
	tagsField := r.FormValue("tags")
	headImage := strings.TrimSpace(r.FormValue("head_image"))
	categoryID := parseCategoryID(r.FormValue("category_id"))

	if verr := validatePost(title, content); verr != nil {
		h.renderForm(w, r, "New post", "/create/", title, content, tagsField, headImage, catIDValue(categoryID), verr.Message)
		return
	}

	tagIDs, err := h.resolveTags(tagsField)
	if err != nil {
		slog.Error("resolve tags failed", "error", err)
		httpError(w, err)
		return
	}

	post := &models.Post{
		Title:      title,
		Content:    content,
		AuthorID:   sess.UserID,
		CategoryID: categoryID,
	}
	if headImage != "" {
		post.HeadImage = &headImage
	}

	created, err := h.postStore.Create(post, tagIDs)
	if err != nil {
		slog.Error("create post failed", "error", err)
		httpError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/%d/", created.ID), http.StatusSeeOther)
}

// UpdateForm renders the post form pre-filled with the post's current
// values.
func (h *Posts) UpdateForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadForUpdate(w, r)
	if !ok {
		return
	}

	var tagNames []string
	for _, t := range post.Tags {
		tagNames = append(tagNames, t.Name)
	}

	categoryID := catIDValue(post.CategoryID)
	var headImage string
	if post.HeadImage != nil {
		headImage = *post.HeadImage
	}

	action := fmt.Sprintf("/%d/update/", post.ID)
	data, err := h.postFormData("Edit post", action, post.Title, post.Content,
		strings.Join(tagNames, ", "), headImage, categoryID, "")
	if err != nil {
		slog.Error("post form data failed", "error", err)
		httpError(w, err)
		return
	}

	h.renderer.Page(w, r, "post_form", &render.PageData{
		Title: "Edit post",
		Data:  data,
	})
}

// UpdateSubmit validates the edited form and saves the post. The created
// timestamp and the author never change on update.
func (h *Posts) UpdateSubmit(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadForUpdate(w, r)
	if !ok {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := r.FormValue("content")
	tagsField := r.FormValue("tags")
	headImage := strings.TrimSpace(r.FormValue("head_image"))
	categoryID := parseCategoryID(r.FormValue("category_id"))

	action := fmt.Sprintf("/%d/update/", post.ID)
	if verr := validatePost(title, content); verr != nil {
		h.renderForm(w, r, "Edit post", action, title, content, tagsField, headImage, catIDValue(categoryID), verr.Message)
		return
	}

	tagIDs, err := h.resolveTags(tagsField)
	if err != nil {
		slog.Error("resolve tags failed", "error", err)
		httpError(w, err)
		return
	}

	post.Title = title
	post.Content = content
	post.CategoryID = categoryID
	post.HeadImage = nil
	if headImage != "" {
		post.HeadImage = &headImage
	}

	if err := h.postStore.Update(post, tagIDs); err != nil {
		slog.Error("update post failed", "error", err, "id", post.ID)
		httpError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/%d/", post.ID), http.StatusSeeOther)
}

// loadForUpdate resolves the post from the URL and applies the update
// policy. It writes the response itself on failure.
func (h *Posts) loadForUpdate(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpError(w, errs.NotFound("post"))
		return nil, false
	}

	post, err := h.postStore.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
		httpError(w, err)
		return nil, false
	}
	if post == nil {
		httpError(w, errs.NotFound("post"))
		return nil, false
	}

	sess := middleware.SessionFromCtx(r.Context())
	if err := h.policy.CanUpdatePost(sess, post); err != nil {
		httpError(w, err)
		return nil, false
	}

	return post, true
}

// renderForm re-renders the post form with an error message and the
// submitted values preserved.
func (h *Posts) renderForm(w http.ResponseWriter, r *http.Request, heading, action, title, content, tagsValue, headImage string, categoryID int64, formErr string) {
	data, err := h.postFormData(heading, action, title, content, tagsValue, headImage, categoryID, formErr)
	if err != nil {
		slog.Error("post form data failed", "error", err)
		httpError(w, err)
		return
	}
	h.renderer.Page(w, r, "post_form", &render.PageData{
		Title: heading,
		Data:  data,
	})
}

// resolveTags turns the comma-separated tag field into tag ids, creating
// tags on first use.
func (h *Posts) resolveTags(field string) ([]int64, error) {
	var ids []int64
	for _, name := range parseTags(field) {
		tag, err := h.tagStore.GetOrCreate(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

// parseCategoryID reads the category select value. An empty or invalid
// value means no category.
func parseCategoryID(value string) *int64 {
	if value == "" {
		return nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// catIDValue unwraps an optional category id for the form template,
// using zero for "no category".
func catIDValue(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
