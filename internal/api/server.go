// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/tasknest/internal/platform/config"
	"github.com/taibuivan/tasknest/internal/platform/constants"
	"github.com/taibuivan/tasknest/internal/platform/middleware"
	"github.com/taibuivan/tasknest/internal/todo/list"
	"github.com/taibuivan/tasknest/internal/todo/status"
	"github.com/taibuivan/tasknest/internal/todo/task"
	"github.com/taibuivan/tasknest/internal/users/account"
	"github.com/taibuivan/tasknest/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Metrics exposes the Prometheus registry. Optional.
	Metrics http.Handler

	// Auth handles the public authentication flows.
	Auth *auth.Handler

	// Accounts manages user accounts.
	Accounts *account.Handler

	// Lists, Tasks and Statuses manage the todo domain.
	Lists    *list.Handler
	Tasks    *task.Handler
	Statuses *status.Handler
}

// Dependencies are the cross-cutting collaborators of the middleware chain.
type Dependencies struct {
	// Resolver authenticates bearer tokens. It is the auth guard.
	Resolver middleware.PrincipalResolver

	// Observer records request metrics. Optional.
	Observer middleware.RequestObserver
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// context bounds the background goroutines of the rate limiters.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, deps Dependencies, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	if deps.Observer != nil {
		r.Use(middleware.Metrics(deps.Observer))
	}
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.NewRateLimiter(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst).Handler)
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(deps.Resolver))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	authLimiter := middleware.NewRateLimiter(context, cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)

	r.Route("/api/v1", func(api chi.Router) {
		api.With(authLimiter.Handler).Mount("/auth", h.Auth.Routes())

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)

			protected.Mount("/users", h.Accounts.Routes())
			protected.Mount("/lists", h.Lists.Routes())
			protected.Mount("/tasks", h.Tasks.Routes())
			protected.Mount("/status", h.Statuses.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the root router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
