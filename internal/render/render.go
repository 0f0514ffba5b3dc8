// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the blog's pages.
// Every page template is paired with the base layout; a few templates
// (login) render standalone as full HTML documents.
package render

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"myblog/internal/middleware"
	"myblog/internal/session"
)

//go:embed templates/blog/*.html
var blogFS embed.FS

// PageData holds all data passed to blog templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Session   *session.Data  // Current user session (nil if unauthenticated)
	CSRFToken string         // CSRF token for forms
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// flashCookie carries one flash message across a redirect. The renderer
// pops it on the next page render.
const flashCookie = "blog_flash"

// SetFlash queues a one-time message to show on the next rendered page.
// Meant to be called right before a redirect.
func SetFlash(w http.ResponseWriter, f Flash) {
	value := base64.URLEncoding.EncodeToString([]byte(f.Type + "|" + f.Message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads the flash cookie, clears it, and returns its message.
// Malformed cookies are dropped silently.
func popFlash(w http.ResponseWriter, r *http.Request) []Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:   flashCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	raw, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(string(raw), "|")
	if !ok || message == "" {
		return nil
	}
	return []Flash{{Type: kind, Message: message}}
}

// Renderer handles template parsing and execution for blog pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login": true,
}

// New creates a Renderer by parsing all blog templates from the embedded
// filesystem. Each page template is paired with the base layout.
// When devMode is true, templates use CDN-hosted assets; when false,
// they reference compiled local static files.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			// isDev returns true when the app runs in development mode.
			// Used by templates to conditionally load CDN vs local assets.
			"isDev": func() bool {
				return devMode
			},
			// fmtDate formats a timestamp the way post bylines show it.
			"fmtDate": func(t time.Time) string {
				return t.Format("Jan 2, 2006")
			},
			// fmtDateTime formats a timestamp with the time of day,
			// used on comments.
			"fmtDateTime": func(t time.Time) string {
				return t.Format("Jan 2, 2006 15:04")
			},
		},
	}

	entries, err := blogFS.ReadDir("templates/blog")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	// Parse each page template paired with the base layout.
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == "base.html" {
			continue
		}

		// Strip .html extension for the template name.
		tmplName := name[:len(name)-len(filepath.Ext(name))]

		var tmpl *template.Template
		var parseErr error

		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(
				blogFS, "templates/blog/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				blogFS, "templates/blog/base.html", "templates/blog/"+name,
			)
		}

		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full blog page. The CSRF token and session are injected
// from the request context when the middleware has run.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	// Inject CSRF token from context (set by CSRF middleware).
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	// Inject session from context.
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	// Pop any flash message queued before the redirect here.
	if data.Flashes == nil {
		data.Flashes = popFlash(w, r)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	execName := "base.html"
	// Standalone pages use their own root template (not base.html).
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	if err := executeTemplate(w, tmpl, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}
