// Package router sets up all HTTP routes and middleware chains for the
// blog. Reader-facing pages are public; authoring and comment routes sit
// behind the session check.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"myblog/internal/handlers"
	"myblog/internal/middleware"
	"myblog/internal/session"
	"myblog/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. loginLimit throttles login attempts per IP;
// it may be nil in tests.
func New(sessionStore *session.Store, auth *handlers.Auth, public *handlers.Public, posts *handlers.Posts, comments *handlers.Comments, loginLimit *middleware.RateLimiter, secure bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))
	r.Use(middleware.NewCSRF(secure))

	// Health check.
	r.Get("/health", healthHandler)

	// Static assets embedded in the binary.
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Auth pages.
	r.Get("/login", auth.LoginPage)
	if loginLimit != nil {
		r.With(loginLimit.Middleware).Post("/login", auth.LoginSubmit)
	} else {
		r.Post("/login", auth.LoginSubmit)
	}
	r.Post("/logout", auth.Logout)

	// Reader-facing pages.
	r.Get("/", public.Home)
	r.Get("/category/{slug}/", public.PostsByCategory)
	r.Get("/tag/{slug}/", public.PostsByTag)
	r.Get("/search/{term}/", public.Search)
	r.Get("/{id}/", public.PostDetail)

	// Authoring and comment routes — session required.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/create/", posts.CreateForm)
		r.Post("/create/", posts.CreateSubmit)
		r.Get("/{id}/update/", posts.UpdateForm)
		r.Post("/{id}/update/", posts.UpdateSubmit)

		r.Post("/{id}/new_comment/", comments.Create)
		r.Get("/edit_comment/{id}/", comments.EditForm)
		r.Post("/edit_comment/{id}/", comments.EditSubmit)
		// Deletion answers GET as well as POST: the historical URL
		// surface deleted via plain links. Ownership is still checked
		// per request.
		r.Get("/delete_comment/{id}/", comments.Delete)
		r.Post("/delete_comment/{id}/", comments.Delete)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
