package handlers

import (
	"log/slog"
	"net/http"

	"myblog/internal/middleware"
	"myblog/internal/render"
	"myblog/internal/session"
	"myblog/internal/store"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
	}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already signed in: back to the blog.
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
	})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	// Find the user by email.
	user, err := a.userStore.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Sign In",
			Data:  map[string]any{"Error": "An unexpected error occurred."},
		})
		return
	}

	// Validate credentials.
	if user == nil || !a.userStore.CheckPassword(user, password) {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Sign In",
			Data:  map[string]any{"Error": "Invalid email or password."},
		})
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		httpError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session and returns to the post listing.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
