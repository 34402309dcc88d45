package jwt

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumes/pkg/apperr"
	"github.com/artem13815/resumes/pkg/auth"
)

type stubResolver map[uuid.UUID]auth.User

func (s stubResolver) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return auth.User{}, auth.ErrNotFound
}

type failingResolver struct{}

func (failingResolver) GetByID(context.Context, uuid.UUID) (auth.User, error) {
	return auth.User{}, errors.New("db down")
}

func newTestApp(users UserResolver) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if apperr.HasKind(err, apperr.KindUnauthorized) {
				return c.Status(http.StatusUnauthorized).SendString(err.Error())
			}
			return c.Status(http.StatusInternalServerError).SendString("internal")
		},
	})
	app.Use(NewAuthMiddleware(NewParser(testSecret, testIssuer), users))
	app.Get("/me", func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return errors.New("no user id")
		}
		u, _ := CurrentUser(c)
		return c.SendString(id.String() + "|" + u.PasswordHash)
	})
	return app
}

func do(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware(t *testing.T) {
	user := auth.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: "secret-hash"}
	gen := NewGenerator(testSecret, testIssuer, time.Hour)
	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)
	stranger, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	app := newTestApp(stubResolver{user.ID: user})

	t.Run("valid bearer", func(t *testing.T) {
		status, body := do(t, app, "Bearer "+token)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, user.ID.String()+"|", body)
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		status, _ := do(t, app, "bearer "+token)
		assert.Equal(t, http.StatusOK, status)
	})

	tests := []struct {
		name   string
		header string
		body   string
	}{
		{"missing header", "", "missing Authorization header"},
		{"no scheme", token, "unsupported authorization scheme"},
		{"basic scheme", "Basic abc", "unsupported authorization scheme"},
		{"bad token", "Bearer nope", ErrInvalidToken.Error()},
		{"unknown subject", "Bearer " + stranger, "user not found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, app, tc.header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tc.body, body)
		})
	}

	t.Run("resolver failure is internal", func(t *testing.T) {
		status, _ := do(t, newTestApp(failingResolver{}), "Bearer "+token)
		assert.Equal(t, http.StatusInternalServerError, status)
	})
}
