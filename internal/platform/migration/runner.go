// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package migration applies the users and todo schema migrations with
golang-migrate.

Migrations come from the files embedded in the binary ([data.Migrations])
unless a directory is configured, in which case they are read from disk.
The API runs them at startup, before traffic is served, so the schema
always matches the binary.
*/
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/taibuivan/tasknest/data"
)

// Runner owns one golang-migrate instance.
type Runner struct {
	migrator *migrate.Migrate
	logger   *slog.Logger
}

// EmbeddedSource opens the migrations compiled into the binary.
func EmbeddedSource() (source.Driver, error) {
	driver, err := iofs.New(data.Migrations, data.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("migration: failed to open embedded migrations: %w", err)
	}
	return driver, nil
}

/*
New connects to the database at dsn.

Parameters:
  - dsn: postgres:// URL or libpq DSN
  - migrationsPath: directory of .sql files; empty selects the embedded set
  - logger: *slog.Logger

Returns:
  - *Runner: Must be closed by the caller
  - error: Source or database connection failures
*/
func New(dsn, migrationsPath string, logger *slog.Logger) (*Runner, error) {
	databaseURL := convertToPgx5DSN(dsn)

	var (
		migrator *migrate.Migrate
		err      error
	)

	if migrationsPath == "" {
		driver, sourceErr := EmbeddedSource()
		if sourceErr != nil {
			return nil, sourceErr
		}
		migrator, err = migrate.NewWithSourceInstance("iofs", driver, databaseURL)
	} else {
		migrator, err = migrate.New("file://"+migrationsPath, databaseURL)
	}
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}

	migrator.Log = &migrateLogger{logger: logger}

	return &Runner{migrator: migrator, logger: logger}, nil
}

// Up applies every pending migration. A dirty database is refused.
func (runner *Runner) Up() error {
	currentVersion, isDirty, err := runner.migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}
	if isDirty {
		return fmt.Errorf("migration: database is dirty at version %d, fix it by hand then force the version", currentVersion)
	}

	runner.logger.Info("migration_started", slog.Uint64("current_version", uint64(currentVersion)))

	if err := runner.migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			runner.logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := runner.migrator.Version()
	runner.logger.Info("migration_successful",
		slog.Uint64("from_version", uint64(currentVersion)),
		slog.Uint64("to_version", uint64(newVersion)),
	)

	return nil
}

// Close releases the source and the database connection.
func (runner *Runner) Close() {
	sourceError, dbError := runner.migrator.Close()
	if sourceError != nil {
		runner.logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
	}
	if dbError != nil {
		runner.logger.Error("migration_db_close_failed", slog.Any("error", dbError))
	}
}

// RunUp opens a [Runner], applies pending migrations and closes it.
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	runner, err := New(dsn, migrationsPath, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	return runner.Up()
}

// convertToPgx5DSN rewrites postgres:// URLs to the pgx5:// scheme the driver registers.
func convertToPgx5DSN(dsn string) string {
	const pgx5Prefix = "pgx5://"

	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, found := strings.CutPrefix(dsn, prefix); found {
			return pgx5Prefix + rest
		}
	}

	return dsn
}

// migrateLogger forwards golang-migrate output to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug("migration_progress", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (l *migrateLogger) Verbose() bool {
	return false
}
