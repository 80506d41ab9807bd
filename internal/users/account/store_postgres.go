// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tasknest/internal/platform/database/schema"
	"github.com/taibuivan/tasknest/internal/platform/dberr"
	"github.com/taibuivan/tasknest/internal/users/auth"
	"github.com/taibuivan/tasknest/pkg/query"
)

// # Repository Implementation

// PostgresAccountRepository implements [Repository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for account administration.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

var accountColumns = strings.Join(schema.UserAccount.Columns(), ", ")

/*
List retrieves accounts from the users.account table.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int

Returns:
  - []*auth.User: Matching accounts
  - error: Database retrieval failures
*/
func (repository *PostgresAccountRepository) List(context context.Context, filter Filter, limit int) ([]*auth.User, error) {
	var conditions query.Conditions
	conditions.Equal(schema.UserAccount.ID, filter.ID).
		Equal(schema.UserAccount.Username, filter.Username).
		Equal(schema.UserAccount.Email, filter.Email).
		Equal(schema.UserAccount.ID, filter.ScopeID)

	sql := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s DESC LIMIT %s`,
		accountColumns, schema.UserAccount.Table, conditions.Where(),
		schema.UserAccount.CreatedAt, conditions.Bind(limit),
	)

	rows, err := repository.pool.Query(context, sql, conditions.Args()...)
	if err != nil {
		return nil, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*auth.User, 0)
	for rows.Next() {
		user, err := auth.ScanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

/*
FindByID retrieves a single account by primary key.
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := auth.ScanUser(repository.pool.QueryRow(context, sql, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
Update modifies the username, email and role of an account.

Description: The unique indexes decide duplicates; a violation is reported as
the matching auth duplicate error.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Duplicate, NOT_FOUND or persistence failures
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	sql := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.Role,
		schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(context, sql, user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		if duplicate := auth.TranslateUniqueViolation(err); duplicate != nil {
			return duplicate
		}
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}

	return nil
}

/*
Delete removes an account. The todo.list foreign key cascades to lists and tasks.
*/
func (repository *PostgresAccountRepository) Delete(context context.Context, id string) error {
	sql := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, sql, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}

	return nil
}
