// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"myblog/internal/authz"
	"myblog/internal/database"
	"myblog/internal/middleware"
	"myblog/internal/models"
	"myblog/internal/render"
	"myblog/internal/session"
	"myblog/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "myblog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "myblog")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Valkey        *redis.Client
	Renderer      *render.Renderer
	Sessions      *session.Store
	UserStore     *store.UserStore
	PostStore     *store.PostStore
	CategoryStore *store.CategoryStore
	TagStore      *store.TagStore
	CommentStore  *store.CommentStore
	Auth          *Auth
	Public        *Public
	Posts         *Posts
	Comments      *Comments
}

// newTestEnv creates a complete test environment with all handler
// dependencies wired against real PostgreSQL and Valkey.
func newTestEnv(t *testing.T, policy authz.Policy) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	commentStore := store.NewCommentStore(db)

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Renderer:      renderer,
		Sessions:      sessions,
		UserStore:     userStore,
		PostStore:     postStore,
		CategoryStore: categoryStore,
		TagStore:      tagStore,
		CommentStore:  commentStore,
		Auth:          NewAuth(renderer, sessions, userStore),
		Public:        NewPublic(renderer, postStore, categoryStore, tagStore, commentStore, policy),
		Posts:         NewPosts(renderer, postStore, categoryStore, tagStore, policy),
		Comments:      NewComments(renderer, commentStore, postStore),
	}
}

// testUser creates a user with a unique email. Deleting the user cascades
// to their posts and comments, so cleanup needs nothing else.
func (e *testEnv) testUser(t *testing.T, password string) *models.User {
	t.Helper()

	email := "handler-" + uuid.NewString() + "@test.local"
	user, err := e.UserStore.Create(email, password, "Handler Tester")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { e.UserStore.Delete(user.ID) })
	return user
}

// testPost creates a post owned by the given user.
func (e *testEnv) testPost(t *testing.T, authorID int64, title string) *models.Post {
	t.Helper()

	post, err := e.PostStore.Create(&models.Post{
		Title:    title,
		Content:  "Handler test content for " + title,
		AuthorID: authorID,
	}, nil)
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return post
}

// sessionFor returns session data matching the given user.
func sessionFor(user *models.User) *session.Data {
	return &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withChiURLParamAndSession adds both chi URL param and session to a request.
func withChiURLParamAndSession(r *http.Request, key, value string, sess *session.Data) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	return r.WithContext(ctx)
}

// formRequest builds a POST request carrying form values.
func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
