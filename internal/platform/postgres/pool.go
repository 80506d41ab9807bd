// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres provides the managed PostgreSQL connection pool shared by
// the user, list, task and status repositories.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taibuivan/tasknest/internal/platform/constants"
)

const (
	maxConnLifetime   = 60 * time.Minute
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = 1 * time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

// Settings sizes the pool. Zero values keep pgxpool defaults.
type Settings struct {
	MaxConns int32
	MinConns int32
}

/*
NewPool creates a pool, checks it with a ping and logs its size.

Every physical connection gets a statement_timeout equal to the request
deadline, so a query never outlives the request that issued it.

Parameters:
  - ctx: context.Context (bounds the initial connection attempt)
  - dsn: postgres:// URL or libpq DSN
  - settings: Settings
  - logger: *slog.Logger

Returns:
  - *pgxpool.Pool: A ready pool
  - error: DSN parse, connection or ping failures
*/
func NewPool(ctx context.Context, dsn string, settings Settings, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	if settings.MaxConns > 0 {
		poolConfig.MaxConns = settings.MaxConns
	}
	if settings.MinConns > 0 {
		poolConfig.MinConns = settings.MinConns
	}
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	statementTimeout := fmt.Sprintf("SET statement_timeout = '%ds'", int(constants.GlobalRequestTimeout.Seconds()))
	poolConfig.AfterConnect = func(ctx context.Context, connection *pgx.Conn) error {
		_, err := connection.Exec(ctx, statementTimeout)
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.Int("max_conns", int(poolConfig.MaxConns)),
		slog.Int("min_conns", int(poolConfig.MinConns)),
	)

	return pool, nil
}

// Ping verifies that the PostgreSQL connection pool is healthy.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}

// # Metrics

// StatFunc returns a snapshot of pool statistics. [pgxpool.Pool.Stat] satisfies it.
type StatFunc func() *pgxpool.Stat

// RegisterMetrics exports pool gauges (total, idle, acquired, max) on registerer.
func RegisterMetrics(registerer prometheus.Registerer, stat StatFunc) error {
	gauge := func(name, help string, value func(*pgxpool.Stat) int32) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "tasknest",
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(value(stat())) })
	}

	collectors := []prometheus.Collector{
		gauge("total_connections", "Open connections in the pool.", (*pgxpool.Stat).TotalConns),
		gauge("idle_connections", "Idle connections in the pool.", (*pgxpool.Stat).IdleConns),
		gauge("acquired_connections", "Connections currently checked out.", (*pgxpool.Stat).AcquiredConns),
		gauge("max_connections", "Configured pool size.", (*pgxpool.Stat).MaxConns),
	}

	for _, collector := range collectors {
		if err := registerer.Register(collector); err != nil {
			return fmt.Errorf("postgres: register pool metrics: %w", err)
		}
	}

	return nil
}
