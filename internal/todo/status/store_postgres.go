// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package status

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tasknest/internal/platform/database/schema"
	"github.com/taibuivan/tasknest/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed status store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var statusColumns = strings.Join(schema.TodoStatus.Columns(), ", ")

// List returns statuses ordered by name.
func (repository *PostgresRepository) List(context context.Context, limit int) ([]*Status, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC LIMIT $1`,
		statusColumns, schema.TodoStatus.Table, schema.TodoStatus.Name)

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_status_repo_list_failed: %w", err)
	}
	defer rows.Close()

	statuses := make([]*Status, 0)
	for rows.Next() {
		status := &Status{}
		if err := rows.Scan(&status.ID, &status.Name, &status.Color); err != nil {
			return nil, fmt.Errorf("postgres_status_repo_scan_failed: %w", err)
		}
		statuses = append(statuses, status)
	}

	return statuses, rows.Err()
}

// FindByID retrieves a single status by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Status, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		statusColumns, schema.TodoStatus.Table, schema.TodoStatus.ID)

	status := &Status{}
	err := repository.pool.QueryRow(context, query, id).Scan(&status.ID, &status.Name, &status.Color)
	if err != nil {
		return nil, dberr.Wrap(err, "Status")
	}

	return status, nil
}

// Create inserts a new status.
func (repository *PostgresRepository) Create(context context.Context, status *Status) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		schema.TodoStatus.Table, schema.TodoStatus.ID, schema.TodoStatus.Name, schema.TodoStatus.Color)

	if _, err := repository.pool.Exec(context, query, status.ID, status.Name, status.Color); err != nil {
		return dberr.Wrap(err, "Status")
	}

	return nil
}

// Update rewrites name and color.
func (repository *PostgresRepository) Update(context context.Context, status *Status) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.TodoStatus.Table, schema.TodoStatus.Name, schema.TodoStatus.Color, schema.TodoStatus.ID)

	tag, err := repository.pool.Exec(context, query, status.ID, status.Name, status.Color)
	if err != nil {
		return dberr.Wrap(err, "Status")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Status")
	}

	return nil
}

/*
Delete removes a status.

Description: todo.task references statuses with ON DELETE RESTRICT, which
Postgres reports as a foreign-key violation. That case becomes [ErrStatusInUse].
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.TodoStatus.Table, schema.TodoStatus.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return ErrStatusInUse.Wrap(err)
		}
		return dberr.Wrap(err, "Status")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Status")
	}

	return nil
}
