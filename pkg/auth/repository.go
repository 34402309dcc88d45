package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors returned by UserRepository implementations.
var (
	ErrNotFound          = errors.New("not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository abstracts persistence concerns from the domain layer.
type UserRepository interface {
	// Create stores a new user and returns it with store-assigned fields.
	// A duplicate email yields ErrUserAlreadyExists.
	Create(ctx context.Context, user NewUser) (User, error)
	// GetByEmail returns the user including PasswordHash, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (User, error)
	// GetByID returns the user without PasswordHash, or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
}
