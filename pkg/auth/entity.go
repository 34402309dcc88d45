package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered applicant.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Public returns a copy of u without the password hash.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// NewUser is what the service hands to the store on sign-up. PasswordHash
// is already derived; the plaintext never reaches the store.
type NewUser struct {
	Email        string
	PasswordHash string
	Name         string
}

type SignUpInput struct {
	Email    string
	Password string
	Name     string
}

type SignInInput struct {
	Email    string
	Password string
}

// Token is the result of a successful sign-in.
type Token struct {
	AccessToken string `json:"accessToken"`
}
