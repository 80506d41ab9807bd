// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tasknest/internal/platform/database/schema"
	"github.com/taibuivan/tasknest/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// userColumns is the SELECT list matching [ScanUser].
var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

/*
Create persists a new account into the users.account table.

The unique indexes on username and email are the authority on duplicates; a
violation is reported as [ErrDuplicateUsername] or [ErrDuplicateEmail].

Parameters:
  - context: context.Context
  - user: *User (Entity to persist; CreatedAt is filled from the database)

Returns:
  - error: Duplicate errors or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.Role,
		schema.UserAccount.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
	).Scan(&user.CreatedAt)

	if err != nil {
		if duplicate := TranslateUniqueViolation(err); duplicate != nil {
			return duplicate
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves an account by primary key.
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.ID, id)
}

/*
FindByUsername retrieves an account by its unique username.
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.Username, username)
}

/*
FindByEmail retrieves an account by its unique email address.
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.Email, email)
}

// findOne runs a single-row lookup on a unique column.
func (repository *PostgresUserRepository) findOne(context context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, schema.UserAccount.Table, column)

	user, err := ScanUser(repository.pool.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
UpdatePassword replaces the password hash of one account.

Returns:
  - error: NOT_FOUND if no row matched, otherwise persistence failures
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Password, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}

	return nil
}

// # Shared Helpers

// ScanUser scans one row selected with the users.account column list.
func ScanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// TranslateUniqueViolation maps a unique violation on users.account to the
// matching duplicate error. It returns nil for any other error.
func TranslateUniqueViolation(err error) error {
	constraint, ok := dberr.IsUniqueViolation(err)
	if !ok {
		return nil
	}

	switch constraint {
	case schema.UserAccountUsernameKey:
		return ErrDuplicateUsername.Wrap(err)
	case schema.UserAccountEmailKey:
		return ErrDuplicateEmail.Wrap(err)
	default:
		return dberr.Wrap(err, "User")
	}
}
