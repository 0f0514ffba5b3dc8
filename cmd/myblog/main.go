// Package main is the entry point for the blog server. It loads
// configuration, connects to services, sets up routing, and starts the
// HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myblog/internal/authz"
	"myblog/internal/cache"
	"myblog/internal/config"
	"myblog/internal/database"
	"myblog/internal/handlers"
	"myblog/internal/middleware"
	"myblog/internal/render"
	"myblog/internal/router"
	"myblog/internal/session"
	"myblog/internal/store"
)

func main() {
	// Structured logger — outputs text with debug level everywhere for now.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Initialize the HTML template renderer. In dev mode, templates load
	// assets from CDN; in production they use compiled local files
	// embedded in the binary.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	commentStore := store.NewCommentStore(db)

	// Authorization policy for the update route.
	policy := authz.Policy{RestrictPostUpdates: cfg.RestrictPostEdits}

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore)
	publicHandlers := handlers.NewPublic(renderer, postStore, categoryStore, tagStore, commentStore, policy)
	postHandlers := handlers.NewPosts(renderer, postStore, categoryStore, tagStore, policy)
	commentHandlers := handlers.NewComments(renderer, commentStore, postStore)

	// Throttle login attempts: 10 per minute per IP.
	loginLimit := middleware.NewRateLimiter(10, time.Minute)
	defer loginLimit.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, authHandlers, publicHandlers, postHandlers, commentHandlers, loginLimit, secureCookies)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
