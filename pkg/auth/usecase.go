package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/artem13815/resumes/pkg/apperr"
)

// Caller-facing messages. Sign-in uses a single message for unknown email
// and wrong password.
const (
	MsgEmailTaken         = "email already registered"
	MsgInvalidCredentials = "invalid email or password"
)

// dummyPassword is hashed once at construction; sign-in for an unknown
// email still compares against it so both failure paths do the same work.
const dummyPassword = "resumes-service-dummy-password"

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	SignUp(ctx context.Context, in SignUpInput) (User, error)
	SignIn(ctx context.Context, in SignInInput) (Token, error)
}

type Service struct {
	repo      UserRepository
	hasher    PasswordHasher
	tokens    TokenGenerator
	dummyHash string
}

var _ AuthUseCase = (*Service)(nil)

// NewAuthService returns the default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenGenerator) (*Service, error) {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &Service{repo: repo, hasher: hasher, tokens: tokens, dummyHash: dummy}, nil
}

func (s *Service) SignUp(ctx context.Context, in SignUpInput) (User, error) {
	_, err := s.repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return User{}, apperr.Conflict(MsgEmailTaken)
	case !errors.Is(err, ErrNotFound):
		return User{}, fmt.Errorf("lookup user by email: %w", err)
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, NewUser{
		Email:        in.Email,
		PasswordHash: passwordHash,
		Name:         in.Name,
	})
	if err != nil {
		// lost a race with a concurrent sign-up for the same email
		if errors.Is(err, ErrUserAlreadyExists) {
			return User{}, apperr.Conflict(MsgEmailTaken)
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user.Public(), nil
}

func (s *Service) SignIn(ctx context.Context, in SignInInput) (Token, error) {
	user, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Token{}, fmt.Errorf("lookup user by email: %w", err)
		}
		s.hasher.Compare(s.dummyHash, in.Password)
		return Token{}, apperr.Unauthorized(MsgInvalidCredentials)
	}
	if !s.hasher.Compare(user.PasswordHash, in.Password) {
		return Token{}, apperr.Unauthorized(MsgInvalidCredentials)
	}

	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return Token{}, fmt.Errorf("generate token: %w", err)
	}
	return Token{AccessToken: token}, nil
}
