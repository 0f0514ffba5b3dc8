package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const (
	// csrfTokenLength is the byte length of CSRF tokens (32 bytes = 64 hex chars).
	csrfTokenLength = 32

	// CSRFCookieName is the cookie that holds the CSRF token.
	CSRFCookieName = "blog_csrf"

	// CSRFHeaderName is an alternative carrier for the CSRF token,
	// for clients that prefer a header over a form field.
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFFormField is the hidden form field name carried by every form.
	CSRFFormField = "csrf_token"
)

// CSRFTokenKey is the context key under which the current CSRF token is stored.
var CSRFTokenKey = contextKey("csrf_token")

// NewCSRF returns double-submit cookie CSRF protection middleware. It
// generates a token stored in a cookie, exposes the token via the
// request context for templates, and validates that state-changing
// requests (POST, PUT, PATCH, DELETE) include the same token as a
// form field or header. The secure flag controls the cookie's Secure
// attribute.
func NewCSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Ensure a CSRF token cookie exists.
			cookie, err := r.Cookie(CSRFCookieName)
			if err != nil || cookie.Value == "" {
				token, err := generateCSRFToken()
				if err != nil {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteStrictMode,
				})
				cookie = &http.Cookie{Value: token}
			}

			r = r.WithContext(context.WithValue(r.Context(), CSRFTokenKey, cookie.Value))

			// Safe methods don't need CSRF validation.
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			// For state-changing methods, validate the token.
			// Check the form field first, then the header.
			submitted := r.FormValue(CSRFFormField)
			if submitted == "" {
				submitted = r.Header.Get(CSRFHeaderName)
			}

			if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(submitted)) != 1 {
				http.Error(w, "CSRF token mismatch", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CSRFTokenFromCtx extracts the current CSRF token from the request
// context. Templates use it to populate hidden form fields. Returns an
// empty string when the middleware has not run.
func CSRFTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

// generateCSRFToken creates a cryptographically random token.
func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
