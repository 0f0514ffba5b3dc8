package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"myblog/internal/authz"
	"myblog/internal/session"
)

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, authz.Policy{})
	user := env.testUser(t, "correct horse")

	t.Run("valid credentials set a session and redirect home", func(t *testing.T) {
		form := url.Values{
			"email":    {user.Email},
			"password": {"correct horse"},
		}
		rr := httptest.NewRecorder()
		env.Auth.LoginSubmit(rr, formRequest("/login", form))

		if rr.Code != http.StatusSeeOther {
			t.Fatalf("status: got %d, want 303; body: %s", rr.Code, rr.Body.String())
		}
		if loc := rr.Header().Get("Location"); loc != "/" {
			t.Errorf("redirect location: got %q, want /", loc)
		}

		cookie := sessionCookie(rr)
		if cookie == nil {
			t.Fatal("login should set the session cookie")
		}
		if cookie.Value == "" {
			t.Error("session cookie should carry an ID")
		}
		if !cookie.HttpOnly {
			t.Error("session cookie should be HttpOnly")
		}
	})

	t.Run("wrong password re-renders the login page", func(t *testing.T) {
		form := url.Values{
			"email":    {user.Email},
			"password": {"wrong"},
		}
		rr := httptest.NewRecorder()
		env.Auth.LoginSubmit(rr, formRequest("/login", form))

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Invalid email or password.") {
			t.Error("response should carry the generic credential error")
		}
		if sessionCookie(rr) != nil {
			t.Error("failed login must not set a session cookie")
		}
	})

	t.Run("unknown email gets the same generic error", func(t *testing.T) {
		form := url.Values{
			"email":    {"nobody@test.local"},
			"password": {"whatever"},
		}
		rr := httptest.NewRecorder()
		env.Auth.LoginSubmit(rr, formRequest("/login", form))

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Invalid email or password.") {
			t.Error("response should carry the generic credential error")
		}
	})

	t.Run("login page redirects signed-in users home", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req = req.WithContext(ctxWithSession(req.Context(), sessionFor(user)))
		rr := httptest.NewRecorder()
		env.Auth.LoginPage(rr, req)

		if rr.Code != http.StatusSeeOther {
			t.Errorf("status: got %d, want 303", rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/" {
			t.Errorf("redirect location: got %q, want /", loc)
		}
	})

	t.Run("login page renders the form for visitors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		rr := httptest.NewRecorder()
		env.Auth.LoginPage(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Sign In") {
			t.Error("login page should carry its heading")
		}
	})
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, authz.Policy{})
	user := env.testUser(t, "secret")

	// Sign in for real so there is a session to destroy.
	loginRR := httptest.NewRecorder()
	env.Auth.LoginSubmit(loginRR, formRequest("/login", url.Values{
		"email":    {user.Email},
		"password": {"secret"},
	}))
	cookie := sessionCookie(loginRR)
	if cookie == nil {
		t.Fatal("login should set the session cookie")
	}

	req := formRequest("/logout", url.Values{})
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	env.Auth.Logout(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect location: got %q, want /", loc)
	}

	cleared := sessionCookie(rr)
	if cleared == nil {
		t.Fatal("logout should clear the session cookie")
	}
	if cleared.Value != "" && cleared.MaxAge >= 0 {
		t.Error("logout cookie should expire the session")
	}

	// The stored session is gone: a fresh request with the old cookie
	// resolves to no session.
	check := httptest.NewRequest(http.MethodGet, "/", nil)
	check.AddCookie(cookie)
	if data, _ := env.Sessions.Get(check.Context(), check); data != nil {
		t.Error("session should be removed from Valkey after logout")
	}
}
