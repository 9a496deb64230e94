package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strettonotes/strettonotes/internal/domain/user"
	"github.com/strettonotes/strettonotes/internal/observability"
)

var ErrEmailAlreadyUsed = errors.New("email already used")

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type UsersRepo struct {
	pool    *pgxpool.Pool
	metrics *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, metrics *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, metrics: metrics}
}

// GetByEmail never selects the password hash. It is the identity-resolution
// path; the hash is reachable only through GetCredentialByEmail.
func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := observe(r.metrics, "users.get_by_email", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, email, full_name, is_admin, created_at
	         FROM users
	         WHERE email = $1`,
			email,
		).Scan(
			&u.ID,
			&u.Email,
			&u.FullName,
			&u.IsAdmin,
			&u.CreatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// GetCredentialByEmail is the only accessor that surfaces the password hash.
// It must not be called outside the login flow.
func (r *UsersRepo) GetCredentialByEmail(ctx context.Context, email string) (user.Credential, error) {
	var c user.Credential

	err := observe(r.metrics, "users.get_credential", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, email, password_hash, full_name, is_admin, created_at
	         FROM users
	         WHERE email = $1`,
			email,
		).Scan(
			&c.ID,
			&c.Email,
			&c.PasswordHash,
			&c.FullName,
			&c.IsAdmin,
			&c.CreatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Credential{}, user.ErrNotFound
		}

		return user.Credential{}, err
	}
	return c, nil
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordHash, fullName string) (user.User, error) {
	u := user.User{
		ID:        uuid.NewString(),
		Email:     email,
		FullName:  fullName,
		IsAdmin:   false,
		CreatedAt: time.Now().UTC(),
	}

	err := observe(r.metrics, "users.create", func() error {
		_, execErr := r.pool.Exec(ctx,
			`INSERT INTO users (id, email, password_hash, full_name, is_admin, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			u.ID, u.Email, passwordHash, u.FullName, u.IsAdmin, u.CreatedAt,
		)
		return execErr
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return user.User{}, ErrEmailAlreadyUsed
		}

		return user.User{}, err
	}

	return u, nil
}
