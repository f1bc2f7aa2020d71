package user

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id::text, name, surname, username, email, password_hash, role, phone, active, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (name, surname, username, email, password_hash, role, phone)
VALUES ($1, $2, $3, lower($4), $5, $6, $7)
RETURNING ` + userColumns
	row := r.pool.QueryRow(ctx, q, u.Name, u.Surname, u.Username, u.Email, u.PasswordHash, u.Role, u.Phone)
	out, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: create username=%s error=%v", u.Username, err)
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND active`
	return r.one(ctx, q, id)
}

func (r *postgresRepo) GetByLogin(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE (username = $1 OR email = lower($1)) AND active
LIMIT 1
`
	return r.one(ctx, q, strings.TrimSpace(usernameOrEmail))
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE active ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
UPDATE users
SET name = $2, surname = $3, username = $4, email = lower($5), phone = $6
WHERE id = $1 AND active
RETURNING ` + userColumns
	row := r.pool.QueryRow(ctx, q, u.ID, u.Name, u.Surname, u.Username, u.Email, u.Phone)
	out, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1 AND active`, id, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) UpdateRole(ctx context.Context, id, role string) (*domain.User, error) {
	const q = `UPDATE users SET role = $2 WHERE id = $1 AND active RETURNING ` + userColumns
	return r.one(ctx, q, id, role)
}

func (r *postgresRepo) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET active = false WHERE id = $1 AND active`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("user repo: deactivated id=%s", id)
	return nil
}

func (r *postgresRepo) HasAdmin(ctx context.Context) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE role = $1 AND active)`, domain.RoleAdmin).Scan(&exists)
	return exists, err
}

func (r *postgresRepo) one(ctx context.Context, q string, args ...interface{}) (*domain.User, error) {
	out, err := scanUser(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Surname,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Phone,
		&u.Active,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
