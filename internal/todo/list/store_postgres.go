// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package list

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

// NewPostgresRepository constructs a PostgreSQL backed list store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectLists joins each list with its owner's username.
var selectLists = fmt.Sprintf(`
	SELECT %s, a.%s
	FROM %s l
	JOIN %s a ON a.%s = l.%s`,
	strings.Join(lo.Map([]string{
		schema.TodoList.ID, schema.TodoList.Title, schema.TodoList.Description,
		schema.TodoList.OwnerID, schema.TodoList.CreatedAt,
	}, func(column string, _ int) string { return "l." + column }), ", "),
	schema.UserAccount.Username,
	schema.TodoList.Table,
	schema.UserAccount.Table, schema.UserAccount.ID, schema.TodoList.OwnerID,
)

func scanList(row pgx.Row) (*TodoList, error) {
	list := &TodoList{}
	err := row.Scan(&list.ID, &list.Title, &list.Description, &list.OwnerID, &list.CreatedAt, &list.OwnerUsername)
	if err != nil {
		return nil, err
	}
	return list, nil
}

/*
List returns lists joined with their owners.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int

Returns:
  - []*TodoList: Matching lists
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit int) ([]*TodoList, error) {
	var conditions query.Conditions
	conditions.Equal("l."+schema.TodoList.ID, filter.ID).
		Equal("l."+schema.TodoList.OwnerID, filter.OwnerID).
		Equal("a."+schema.UserAccount.Username, filter.Username).
		Equal("a."+schema.UserAccount.Email, filter.Email).
		Equal("l."+schema.TodoList.OwnerID, filter.ScopeOwnerID)

	sql := fmt.Sprintf(`%s%s ORDER BY l.%s DESC LIMIT %s`,
		selectLists, conditions.Where(), schema.TodoList.CreatedAt, conditions.Bind(limit))

	rows, err := repository.pool.Query(context, sql, conditions.Args()...)
	if err != nil {
		return nil, fmt.Errorf("postgres_list_repo_list_failed: %w", err)
	}
	defer rows.Close()

	lists := make([]*TodoList, 0)
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_list_repo_scan_failed: %w", err)
		}
		lists = append(lists, list)
	}

	return lists, rows.Err()
}

// FindByID retrieves one list by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*TodoList, error) {
	sql := fmt.Sprintf(`%s WHERE l.%s = $1`, selectLists, schema.TodoList.ID)

	list, err := scanList(repository.pool.QueryRow(context, sql, id))
	if err != nil {
		return nil, dberr.Wrap(err, "List")
	}

	return list, nil
}

// Create inserts a list and reads back its creation time.
func (repository *PostgresRepository) Create(context context.Context, list *TodoList) error {
	sql := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`,
		schema.TodoList.Table,
		schema.TodoList.ID, schema.TodoList.Title, schema.TodoList.Description, schema.TodoList.OwnerID,
		schema.TodoList.CreatedAt,
	)

	err := repository.pool.QueryRow(context, sql, list.ID, list.Title, list.Description, list.OwnerID).Scan(&list.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "List")
	}

	return nil
}

// Update rewrites title and description.
func (repository *PostgresRepository) Update(context context.Context, list *TodoList) error {
	sql := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.TodoList.Table, schema.TodoList.Title, schema.TodoList.Description, schema.TodoList.ID)

	tag, err := repository.pool.Exec(context, sql, list.ID, list.Title, list.Description)
	if err != nil {
		return dberr.Wrap(err, "List")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "List")
	}

	return nil
}

// Delete removes a list; todo.task rows cascade.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	sql := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.TodoList.Table, schema.TodoList.ID)

	tag, err := repository.pool.Exec(context, sql, id)
	if err != nil {
		return dberr.Wrap(err, "List")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "List")
	}

	return nil
}
