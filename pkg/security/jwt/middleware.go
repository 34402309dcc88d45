package jwt

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/resumes/pkg/apperr"
	"github.com/artem13815/resumes/pkg/auth"
)

const (
	localsUserID = "userId"
	localsUser   = "user"
)

// UserResolver loads the user a token refers to.
type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (auth.User, error)
}

// NewAuthMiddleware returns a Fiber middleware that validates a Bearer JWT
// and resolves its subject. On success the user id and the user are stored
// in c.Locals. Failures are returned as apperr.Unauthorized for the app's
// error handler.
func NewAuthMiddleware(parser *Parser, users UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperr.Unauthorized("missing Authorization header")
		}
		scheme, tokenStr, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return apperr.Unauthorized("unsupported authorization scheme")
		}
		tokenStr = strings.TrimSpace(tokenStr)
		if tokenStr == "" {
			return apperr.Unauthorized("empty token")
		}

		id, err := parser.Subject(tokenStr)
		if err != nil {
			return apperr.Unauthorized(err.Error())
		}
		user, err := users.GetByID(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, auth.ErrNotFound) {
				return apperr.Unauthorized("user not found")
			}
			return err
		}

		SetUser(c, user)
		return c.Next()
	}
}

// SetUser stores the authenticated user in c.Locals without its hash.
func SetUser(c *fiber.Ctx, u auth.User) {
	c.Locals(localsUserID, u.ID)
	c.Locals(localsUser, u.Public())
}

// UserID returns the authenticated user id set by the middleware.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(localsUserID).(uuid.UUID)
	return id, ok
}

// CurrentUser returns the authenticated user set by the middleware.
func CurrentUser(c *fiber.Ctx) (auth.User, bool) {
	u, ok := c.Locals(localsUser).(auth.User)
	return u, ok
}
