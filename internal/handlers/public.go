// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"myblog/internal/authz"
	"myblog/internal/errs"
	"myblog/internal/markdown"
	"myblog/internal/middleware"
	"myblog/internal/models"
	"myblog/internal/render"
	"myblog/internal/store"
)

// Public groups the handlers for the reader-facing pages: post listings,
// category and tag filters, search, and the post detail page.
type Public struct {
	renderer      *render.Renderer
	postStore     *store.PostStore
	categoryStore *store.CategoryStore
	tagStore      *store.TagStore
	commentStore  *store.CommentStore
	policy        authz.Policy
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, postStore *store.PostStore, categoryStore *store.CategoryStore, tagStore *store.TagStore, commentStore *store.CommentStore, policy authz.Policy) *Public {
	return &Public{
		renderer:      renderer,
		postStore:     postStore,
		categoryStore: categoryStore,
		tagStore:      tagStore,
		commentStore:  commentStore,
		policy:        policy,
	}
}

// CommentView pairs a comment with its rendered HTML and the acting
// user's permission to modify it.
type CommentView struct {
	Comment   *models.Comment
	HTML      template.HTML
	CanModify bool
}

// sidebar loads the category list and uncategorized count every listing
// page shows.
func (p *Public) sidebar(data map[string]any) {
	categories, err := p.categoryStore.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		return
	}
	data["Categories"] = categories

	uncat, err := p.categoryStore.CountUncategorized()
	if err != nil {
		slog.Error("count uncategorized failed", "error", err)
		return
	}
	data["UncategorizedCount"] = uncat
}

// Home renders the paginated post listing, newest first.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)

	posts, err := p.postStore.List(pageSize, (page-1)*pageSize)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		httpError(w, err)
		return
	}

	total, err := p.postStore.Count()
	if err != nil {
		slog.Error("count posts failed", "error", err)
		httpError(w, err)
		return
	}

	nav := paginate("/", page, total)
	data := map[string]any{
		"Posts":    posts,
		"HasOlder": nav.HasOlder,
		"HasNewer": nav.HasNewer,
		"OlderURL": nav.OlderURL,
		"NewerURL": nav.NewerURL,
	}
	p.sidebar(data)

	p.renderer.Page(w, r, "post_list", &render.PageData{
		Title: "Home",
		Data:  data,
	})
}

// PostsByCategory lists all posts in the category named by the slug.
// The reserved slug "_none" selects posts without a category.
func (p *Public) PostsByCategory(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	var (
		posts   []models.Post
		heading string
		err     error
	)

	if slugParam == models.UncategorizedSlug {
		posts, err = p.postStore.ListUncategorized()
		heading = "Category: Uncategorized"
	} else {
		category, findErr := p.categoryStore.FindBySlug(slugParam)
		if findErr != nil {
			slog.Error("find category failed", "error", findErr, "slug", slugParam)
			httpError(w, findErr)
			return
		}
		if category == nil {
			httpError(w, errs.NotFound("category"))
			return
		}
		posts, err = p.postStore.ListByCategory(category.ID)
		heading = "Category: " + category.Name
	}

	if err != nil {
		slog.Error("list posts by category failed", "error", err, "slug", slugParam)
		httpError(w, err)
		return
	}

	data := map[string]any{
		"Posts":   posts,
		"Heading": heading,
	}
	p.sidebar(data)

	p.renderer.Page(w, r, "post_list", &render.PageData{
		Title: heading,
		Data:  data,
	})
}

// PostsByTag lists all posts carrying the tag named by the slug.
func (p *Public) PostsByTag(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	tag, err := p.tagStore.FindBySlug(slugParam)
	if err != nil {
		slog.Error("find tag failed", "error", err, "slug", slugParam)
		httpError(w, err)
		return
	}
	if tag == nil {
		httpError(w, errs.NotFound("tag"))
		return
	}

	posts, err := p.postStore.ListByTag(tag.ID)
	if err != nil {
		slog.Error("list posts by tag failed", "error", err, "slug", slugParam)
		httpError(w, err)
		return
	}

	heading := "Tag: " + tag.Name
	data := map[string]any{
		"Posts":   posts,
		"Heading": heading,
	}
	p.sidebar(data)

	p.renderer.Page(w, r, "post_list", &render.PageData{
		Title: heading,
		Data:  data,
	})
}

// Search lists posts whose title or content contains the term from the
// URL path, case-insensitively. No matches renders an empty listing.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "term")
	if decoded, err := url.PathUnescape(term); err == nil {
		term = decoded
	}

	posts, err := p.postStore.Search(term)
	if err != nil {
		slog.Error("search posts failed", "error", err, "term", term)
		httpError(w, err)
		return
	}

	heading := `Search results for "` + term + `"`
	data := map[string]any{
		"Posts":   posts,
		"Heading": heading,
	}
	p.sidebar(data)

	p.renderer.Page(w, r, "post_list", &render.PageData{
		Title: "Search",
		Data:  data,
	})
}

// PostDetail renders a single post with its rendered markdown content,
// tags, comments, and the edit affordance for the post's author.
func (p *Public) PostDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpError(w, errs.NotFound("post"))
		return
	}

	post, err := p.postStore.FindByID(id)
	if err != nil {
		slog.Error("find post failed", "error", err, "id", id)
		httpError(w, err)
		return
	}
	if post == nil {
		httpError(w, errs.NotFound("post"))
		return
	}

	contentHTML, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Error("render post markdown failed", "error", err, "id", id)
		httpError(w, err)
		return
	}

	comments, err := p.commentStore.ListByPost(id)
	if err != nil {
		slog.Error("list comments failed", "error", err, "id", id)
		httpError(w, err)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		rendered, err := markdown.CommentToHTML(c.Text)
		if err != nil {
			slog.Warn("render comment markdown failed", "error", err, "comment", c.ID)
			continue
		}
		views = append(views, CommentView{
			Comment:   c,
			HTML:      template.HTML(rendered),
			CanModify: authz.CanModifyComment(sess, c) == nil,
		})
	}

	p.renderer.Page(w, r, "post_detail", &render.PageData{
		Title: post.Title,
		Data: map[string]any{
			"Post":        post,
			"ContentHTML": template.HTML(contentHTML),
			"Comments":    views,
			"CanEdit":     authz.CanEditPost(sess, post),
		},
	})
}
