// Package memory holds mutex-guarded in-process stores used for local runs
// and tests without Postgres.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/resumes/pkg/auth"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]auth.User
	byEmail map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[uuid.UUID]auth.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *UserRepository) Create(_ context.Context, nu auth.NewUser) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[nu.Email]; ok {
		return auth.User{}, auth.ErrUserAlreadyExists
	}
	now := time.Now().UTC()
	u := auth.User{
		ID:           uuid.New(),
		Email:        nu.Email,
		PasswordHash: nu.PasswordHash,
		Name:         nu.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u.Public(), nil
}

func (r *UserRepository) name(id uuid.UUID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id].Name
}
