package auth

import "context"

// TokenGenerator abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}

// PasswordHasher derives and verifies one-way password hashes.
// Compare must be constant-time with respect to the hash contents.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
