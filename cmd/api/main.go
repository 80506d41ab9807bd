// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Tasknest HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Run database migrations (idempotent).
//  5. Open the revocation store (Redis, Badger or memory).
//  6. Connect to RabbitMQ when events are enabled.
//  7. Wire services, guard and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/tasknest/internal/api"
	"github.com/taibuivan/tasknest/internal/platform/badger"
	"github.com/taibuivan/tasknest/internal/platform/broker"
	"github.com/taibuivan/tasknest/internal/platform/config"
	"github.com/taibuivan/tasknest/internal/platform/constants"
	"github.com/taibuivan/tasknest/internal/platform/metrics"
	"github.com/taibuivan/tasknest/internal/platform/migration"
	pgstore "github.com/taibuivan/tasknest/internal/platform/postgres"
	redisstore "github.com/taibuivan/tasknest/internal/platform/redis"
	"github.com/taibuivan/tasknest/internal/platform/revocation"
	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/todo/list"
	"github.com/taibuivan/tasknest/internal/todo/status"
	"github.com/taibuivan/tasknest/internal/todo/task"
	"github.com/taibuivan/tasknest/internal/users/account"
	"github.com/taibuivan/tasknest/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Tasknest] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("revocation_backend", cfg.RevocationBackend),
		slog.Bool("events_enabled", cfg.EventsEnabled),
	)

	// Background workers (sweepers, GC, rate limiter cleanup) stop with this context.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Use a 30s deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(appCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.Settings{
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	checks := []api.HealthCheck{{
		Name:  "postgres",
		Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}}

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Revocation Store ───────────────────────────────────────────────
	var revocations auth.RevocationStore

	switch cfg.RevocationBackend {
	case config.RevocationBackendRedis:
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		checks = append(checks, api.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		})
		revocations = revocation.NewRedisStore(rdb)

	case config.RevocationBackendBadger:
		db, err := badger.Open(cfg.BadgerPath, log)
		must(log, err, "open badger")
		defer func() {
			log.Info("closing_badger_store")
			if cerr := db.Close(); cerr != nil {
				log.Error("badger_close_error", slog.Any("error", cerr))
			}
		}()

		store := revocation.NewBadgerStore(db)
		store.RunGC(appCtx, constants.BadgerGCInterval)
		revocations = store

	default:
		store := revocation.NewMemoryStore()
		store.StartSweeper(appCtx, constants.RevocationSweepInterval)
		revocations = store
	}

	// ── 6. Events ─────────────────────────────────────────────────────────
	var publisher auth.EventPublisher = broker.Discard{}
	if cfg.EventsEnabled {
		amqpPublisher, err := broker.Dial(cfg.AMQPURL, log)
		must(log, err, "connect to rabbitmq")
		defer func() {
			if cerr := amqpPublisher.Close(); cerr != nil {
				log.Error("rabbitmq_close_error", slog.Any("error", cerr))
			}
		}()
		publisher = amqpPublisher
	}

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.RefreshTokenTTL)
	must(log, err, "initialize token service")

	recorder := metrics.New()
	must(log, pgstore.RegisterMetrics(recorder.Registry(), pool.Stat), "register pool metrics")
	policy := auth.DefaultPolicy()

	userRepository := auth.NewUserRepository(pool)
	listRepository := list.NewPostgresRepository(pool)

	authService := auth.NewService(userRepository, sec.NewHasher(cfg.BcryptCost), tokens, revocations, log,
		auth.WithEvents(publisher),
		auth.WithRecorder(recorder),
	)
	guard := auth.NewGuard(userRepository, tokens, revocations, policy, log)

	accountService := account.NewService(account.NewAccountRepository(pool), guard, log)
	listService := list.NewService(listRepository, userRepository, guard, log)
	taskService := task.NewService(task.NewPostgresRepository(pool), listRepository, guard, log)
	statusService := status.NewService(status.NewPostgresRepository(pool), guard, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(checks, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   recorder.Handler(),
		Auth:      auth.NewHandler(authService),
		Accounts:  account.NewHandler(accountService),
		Lists:     list.NewHandler(listService),
		Tasks:     task.NewHandler(taskService),
		Statuses:  status.NewHandler(statusService),
	}

	server := api.NewServer(appCtx, cfg, log, api.Dependencies{Resolver: guard, Observer: recorder}, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
