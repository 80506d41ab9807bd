// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command seed loads the default task statuses and a small demo workspace.
//
// Pending migrations are applied first. Every insert is ON CONFLICT DO
// NOTHING, so running it twice is harmless.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/taibuivan/tasknest/internal/platform/database/schema"
	"github.com/taibuivan/tasknest/internal/platform/migration"
	pgstore "github.com/taibuivan/tasknest/internal/platform/postgres"
	"github.com/taibuivan/tasknest/internal/platform/sec"
)

type seedConfig struct {
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH"`
	DemoPassword  string `env:"SEED_DEMO_PASSWORD" envDefault:"Demo-pass-123"`
	BcryptCost    int    `env:"BCRYPT_COST"        envDefault:"10"`
}

// Demo rows use fixed identifiers so reruns conflict instead of duplicating.
const (
	demoUserID  = "0190d0c2-5eed-7000-8000-000000000001"
	demoListID  = "0190d0c2-5eed-7000-8000-000000000002"
	demoTaskOne = "0190d0c2-5eed-7000-8000-000000000003"
	demoTaskTwo = "0190d0c2-5eed-7000-8000-000000000004"
)

var statuses = []struct {
	id, name, color string
}{
	{"0190d0c2-5eed-7000-8000-0000000000a1", "pendiente", "yellow"},
	{"0190d0c2-5eed-7000-8000-0000000000a2", "en progreso", "blue"},
	{"0190d0c2-5eed-7000-8000-0000000000a3", "completada", "green"},
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "tasknest-seed"))

	if err := run(log); err != nil {
		log.Error("seed_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("seed_completed")
}

func run(log *slog.Logger) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("seed: failed to load env file: %w", err)
	}

	var cfg seedConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("seed: failed to parse environment variables: %w", err)
	}

	context, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return err
	}

	pool, err := pgstore.NewPool(context, cfg.DatabaseURL, pgstore.Settings{MaxConns: 2}, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	passwordHash, err := sec.NewHasher(cfg.BcryptCost).Hash(cfg.DemoPassword)
	if err != nil {
		return fmt.Errorf("seed: failed to hash demo password: %w", err)
	}

	return pgx.BeginFunc(context, pool, func(tx pgx.Tx) error {
		return seed(context, tx, passwordHash, log)
	})
}

func seed(ctx context.Context, tx pgx.Tx, passwordHash string, log *slog.Logger) error {

	// 1. Statuses
	statusSQL := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		schema.TodoStatus.Table, schema.TodoStatus.ID, schema.TodoStatus.Name, schema.TodoStatus.Color)

	for _, status := range statuses {
		if _, err := tx.Exec(ctx, statusSQL, status.id, status.name, status.color); err != nil {
			return fmt.Errorf("seed: status %q: %w", status.name, err)
		}
	}

	var pendingID string
	lookupSQL := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, schema.TodoStatus.ID, schema.TodoStatus.Table, schema.TodoStatus.Name)
	if err := tx.QueryRow(ctx, lookupSQL, statuses[0].name).Scan(&pendingID); err != nil {
		return fmt.Errorf("seed: lookup status %q: %w", statuses[0].name, err)
	}

	// 2. Demo account
	tag, err := tx.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.Role,
	), demoUserID, "demo", "demo@tasknest.local", passwordHash, sec.RoleUser)
	if err != nil {
		return fmt.Errorf("seed: demo account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Info("seed_demo_account_exists")
	}

	// 3. Demo list and tasks
	if _, err := tx.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		SELECT $1, $2, $3, %s FROM %s WHERE %s = $4
		ON CONFLICT DO NOTHING`,
		schema.TodoList.Table,
		schema.TodoList.ID, schema.TodoList.Title, schema.TodoList.Description, schema.TodoList.OwnerID,
		schema.UserAccount.ID, schema.UserAccount.Table, schema.UserAccount.Username,
	), demoListID, "Getting started", "A sample list created by the seeder", "demo"); err != nil {
		return fmt.Errorf("seed: demo list: %w", err)
	}

	taskSQL := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		SELECT $1, $2, $3, %s, $4 FROM %s WHERE %s = $5
		ON CONFLICT DO NOTHING`,
		schema.TodoTask.Table,
		schema.TodoTask.ID, schema.TodoTask.Title, schema.TodoTask.Description, schema.TodoTask.ListID, schema.TodoTask.StatusID,
		schema.TodoList.ID, schema.TodoList.Table, schema.TodoList.ID,
	)

	tasks := [][3]string{
		{demoTaskOne, "Log in", "POST /api/v1/auth/login with the demo account"},
		{demoTaskTwo, "Create a list", "POST /api/v1/lists"},
	}
	for _, task := range tasks {
		if _, err := tx.Exec(ctx, taskSQL, task[0], task[1], task[2], pendingID, demoListID); err != nil {
			return fmt.Errorf("seed: demo task %q: %w", task[1], err)
		}
	}

	log.Info("seed_applied", slog.Int("statuses", len(statuses)), slog.Int("tasks", len(tasks)))

	return nil
}
