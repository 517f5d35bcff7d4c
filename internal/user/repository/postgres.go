package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/mcguiretech/truapi/internal/common/db"
	"github.com/mcguiretech/truapi/internal/common/identifier"
	"github.com/mcguiretech/truapi/internal/user/domain"
)

var errNoRows = errors.New("no matching rows")

// PgRepository is the production adapter backed by a users table. Every
// operation is a single statement inside its own implicit transaction.
type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func pgWhere(filter Filter) (string, []any) {
	var clauses []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.ID != "" {
		add("id", string(filter.ID))
	}
	if filter.Username != "" {
		add("username", filter.Username)
	}
	if filter.Email != "" {
		add("email", filter.Email)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *PgRepository) Get(ctx context.Context, filter Filter) (*domain.User, error) {
	start := time.Now()

	where, args := pgWhere(filter)
	row := r.pool.QueryRow(
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

func (r *PgRepository) List(ctx context.Context, filter Filter) ([]domain.User, error) {
	start := time.Now()

	where, args := pgWhere(filter)
	query := `SELECT id, username, email, display_name FROM users` + where
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Skip > 0 {
		args = append(args, filter.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
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

func (r *PgRepository) Save(ctx context.Context, user domain.User) error {
	start := time.Now()

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, username, email, display_name)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET username = EXCLUDED.username,
		     email = EXCLUDED.email,
		     display_name = EXCLUDED.display_name`,
		string(user.ID),
		user.Username,
		user.Email,
		user.DisplayName,
	)
	return db.HandleExecError(err, "save user", start)
}

func (r *PgRepository) Exists(ctx context.Context, filter Filter) (bool, error) {
	start := time.Now()

	where, args := pgWhere(filter)
	row := r.pool.QueryRow(ctx, `SELECT 1 FROM users`+where+` LIMIT 1`, args...)

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

func (r *PgRepository) Delete(ctx context.Context, id identifier.ID) error {
	start := time.Now()

	// Zero rows affected means the user was already gone; not an error.
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, string(id))
	return db.HandleExecError(err, "delete user", start)
}

var _ Repository = (*PgRepository)(nil)
