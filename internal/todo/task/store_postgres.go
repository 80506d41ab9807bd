// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/taibuivan/tasknest/internal/platform/database/schema"
	"github.com/taibuivan/tasknest/internal/platform/dberr"
	"github.com/taibuivan/tasknest/pkg/query"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed task store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	taskColumns = strings.Join(schema.TodoTask.Columns(), ", ")

	qualifiedTaskColumns = strings.Join(lo.Map(schema.TodoTask.Columns(), func(column string, _ int) string {
		return "t." + column
	}), ", ")
)

func scanTask(row pgx.Row) (*Task, error) {
	task := &Task{}
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.IsCompleted,
		&task.ListID,
		&task.StatusID,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

/*
List returns tasks, joined with their lists so the owner scope can apply.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int

Returns:
  - []*Task: Matching tasks
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit int) ([]*Task, error) {
	var conditions query.Conditions
	conditions.Equal("t."+schema.TodoTask.ListID, filter.ListID).
		Equal("l."+schema.TodoList.OwnerID, filter.ScopeOwnerID)
	query.Equal(&conditions, "t."+schema.TodoTask.IsCompleted, filter.IsCompleted)

	sql := fmt.Sprintf(`
		SELECT %s
		FROM %s t
		JOIN %s l ON l.%s = t.%s%s
		ORDER BY t.%s DESC
		LIMIT %s`,
		qualifiedTaskColumns,
		schema.TodoTask.Table,
		schema.TodoList.Table, schema.TodoList.ID, schema.TodoTask.ListID,
		conditions.Where(),
		schema.TodoTask.CreatedAt,
		conditions.Bind(limit),
	)

	rows, err := repository.pool.Query(context, sql, conditions.Args()...)
	if err != nil {
		return nil, fmt.Errorf("postgres_task_repo_list_failed: %w", err)
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_task_repo_scan_failed: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// FindByID retrieves one task by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Task, error) {
	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, taskColumns, schema.TodoTask.Table, schema.TodoTask.ID)

	task, err := scanTask(repository.pool.QueryRow(context, sql, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Task")
	}

	return task, nil
}

// Create inserts a task and reads back its creation time.
func (repository *PostgresRepository) Create(context context.Context, task *Task) error {
	sql := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`,
		schema.TodoTask.Table,
		schema.TodoTask.ID, schema.TodoTask.Title, schema.TodoTask.Description, schema.TodoTask.DueDate,
		schema.TodoTask.IsCompleted, schema.TodoTask.ListID, schema.TodoTask.StatusID,
		schema.TodoTask.CreatedAt,
	)

	err := repository.pool.QueryRow(context, sql,
		task.ID,
		task.Title,
		task.Description,
		task.DueDate,
		task.IsCompleted,
		task.ListID,
		task.StatusID,
	).Scan(&task.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "Task")
	}

	return nil
}

// Update rewrites every mutable column of a task.
func (repository *PostgresRepository) Update(context context.Context, task *Task) error {
	sql := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		schema.TodoTask.Table,
		schema.TodoTask.Title, schema.TodoTask.Description, schema.TodoTask.DueDate,
		schema.TodoTask.IsCompleted, schema.TodoTask.ListID, schema.TodoTask.StatusID,
		schema.TodoTask.ID,
	)

	tag, err := repository.pool.Exec(context, sql,
		task.ID,
		task.Title,
		task.Description,
		task.DueDate,
		task.IsCompleted,
		task.ListID,
		task.StatusID,
	)
	if err != nil {
		return dberr.Wrap(err, "Task")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Task")
	}

	return nil
}

// Delete removes a task.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	sql := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.TodoTask.Table, schema.TodoTask.ID)

	tag, err := repository.pool.Exec(context, sql, id)
	if err != nil {
		return dberr.Wrap(err, "Task")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Task")
	}

	return nil
}
