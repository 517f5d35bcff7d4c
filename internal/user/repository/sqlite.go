package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mcguiretech/truapi/internal/common/db"
	"github.com/mcguiretech/truapi/internal/common/identifier"
	"github.com/mcguiretech/truapi/internal/user/domain"
)

// SQLiteRepository is the file-backed development adapter. Same statements as
// the postgres adapter, driver placeholders aside.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(database *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: database}
}

func sqliteWhere(filter Filter) (string, []any) {
	var clauses []string
	var args []any

	if filter.ID != "" {
		clauses = append(clauses, "id = ?")
		args = append(args, string(filter.ID))
	}
	if filter.Username != "" {
		clauses = append(clauses, "username = ?")
		args = append(args, filter.Username)
	}
	if filter.Email != "" {
		clauses = append(clauses, "email = ?")
		args = append(args, filter.Email)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *SQLiteRepository) Get(ctx context.Context, filter Filter) (*domain.User, error) {
	start := time.Now()

	where, args := sqliteWhere(filter)
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, username, email, display_name FROM users`+where+` LIMIT 1`,
		args...,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.DisplayName)
	if err := db.HandleQueryError(err, errNoRows, "get user", start); err != nil {
		if errors.Is(err, errNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *SQLiteRepository) List(ctx context.Context, filter Filter) ([]domain.User, error) {
	start := time.Now()

	where, args := sqliteWhere(filter)
	query := `SELECT id, username, email, display_name FROM users` + where
	// SQLite requires LIMIT when OFFSET is present; -1 means unlimited.
	if filter.Limit > 0 || filter.Skip > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, maxInt(filter.Skip, 0))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, db.HandleExecError(err, "list users", start)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.DisplayName); err != nil {
			return nil, db.HandleExecError(err, "scan user", start)
		}
		users = append(users, u)
	}

	if rows.Err() != nil {
		return nil, db.HandleExecError(rows.Err(), "list users", start)
	}

	db.HandleExecError(nil, "list users", start)
	return users, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, user domain.User) error {
	start := time.Now()

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO users (id, username, email, display_name)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE
		 SET username = excluded.username,
		     email = excluded.email,
		     display_name = excluded.display_name`,
		string(user.ID),
		user.Username,
		user.Email,
		user.DisplayName,
	)
	return db.HandleExecError(err, "save user", start)
}

func (r *SQLiteRepository) Exists(ctx context.Context, filter Filter) (bool, error) {
	start := time.Now()

	where, args := sqliteWhere(filter)
	row := r.db.QueryRowContext(ctx, `SELECT 1 FROM users`+where+` LIMIT 1`, args...)

	var one int
	err := row.Scan(&one)
	if err := db.HandleQueryError(err, errNoRows, "user exists", start); err != nil {
		if errors.Is(err, errNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id identifier.ID) error {
	start := time.Now()

	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, string(id))
	return db.HandleExecError(err, "delete user", start)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var _ Repository = (*SQLiteRepository)(nil)
