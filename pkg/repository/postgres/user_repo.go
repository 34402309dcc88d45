package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/resumes/pkg/auth"
)

const uniqueViolation = "23505"

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, nu auth.NewUser) (auth.User, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := auth.User{
		ID:           uuid.New(),
		Email:        nu.Email,
		PasswordHash: nu.PasswordHash,
		Name:         nu.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Email, user.PasswordHash, user.Name, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.User{}, auth.ErrUserAlreadyExists
		}
		return auth.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// GetByEmail matches the email exactly as stored.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM users WHERE email = $1
	`, email)
	var user auth.User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, fmt.Errorf("select user by email: %w", err)
	}
	return normalizeUser(user), nil
}

// GetByID never selects the password hash.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, created_at, updated_at
		FROM users WHERE id = $1
	`, id)
	var user auth.User
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, fmt.Errorf("select user by id: %w", err)
	}
	return normalizeUser(user), nil
}

func normalizeUser(u auth.User) auth.User {
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u
}
