package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	router "github.com/artem13815/resumes/api/http"
	"github.com/artem13815/resumes/api/http/handlers"
	"github.com/artem13815/resumes/pkg/auth"
	"github.com/artem13815/resumes/pkg/health"
	"github.com/artem13815/resumes/pkg/repository/memory"
	"github.com/artem13815/resumes/pkg/resume"
	"github.com/artem13815/resumes/pkg/security/hash"
	"github.com/artem13815/resumes/pkg/security/jwt"
)

const (
	secret = "test-secret"
	issuer = "resumes-test"
)

var content = strings.Repeat("ten years of backend work in go and postgres. ", 4)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newServer(t *testing.T) *fiber.App {
	t.Helper()
	users := memory.NewUserRepository()
	resumes := memory.NewResumeRepository(users)

	hasher, err := hash.NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)
	authSvc, err := auth.NewAuthService(users, hasher, jwt.NewGenerator(secret, issuer, time.Hour))
	require.NoError(t, err)

	v := handlers.NewValidator()
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))),
	})
	router.Register(app, router.Handlers{
		Auth:    handlers.NewAuthHandler(authSvc, v, nil),
		Users:   handlers.NewUsersHandler(),
		Resumes: handlers.NewResumesHandler(resume.NewService(resumes), v),
		Health:  handlers.NewHealthHandler(health.NewService()),
	}, jwt.NewAuthMiddleware(jwt.NewParser(secret, issuer), users))
	return app
}

type client struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func (c *client) do(method, path string, body any) (int, envelope) {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if c.token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	resp, err := c.app.Test(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (c *client) signUp(email, name string) auth.User {
	c.t.Helper()
	status, env := c.do(http.MethodPost, "/api/v1/auth/sign-up", map[string]string{
		"email": email, "password": "secret1", "passwordConfirm": "secret1", "name": name,
	})
	require.Equal(c.t, http.StatusCreated, status, env.Message)
	var u auth.User
	require.NoError(c.t, json.Unmarshal(env.Data, &u))
	return u
}

func (c *client) signIn(email, password string) (int, envelope) {
	return c.do(http.MethodPost, "/api/v1/auth/sign-in", map[string]string{"email": email, "password": password})
}

func (c *client) login(email string) *client {
	c.t.Helper()
	status, env := c.signIn(email, "secret1")
	require.Equal(c.t, http.StatusOK, status)
	var tok auth.Token
	require.NoError(c.t, json.Unmarshal(env.Data, &tok))
	return &client{t: c.t, app: c.app, token: tok.AccessToken}
}

func TestScenario(t *testing.T) {
	anon := &client{t: t, app: newServer(t)}

	a := anon.signUp("a@x.com", "A")
	assert.NotEqual(t, "", a.ID.String())

	status, env := anon.do(http.MethodPost, "/api/v1/auth/sign-up", map[string]string{
		"email": "a@x.com", "password": "secret1", "passwordConfirm": "secret1", "name": "A2",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, auth.MsgEmailTaken, env.Message)

	wrongStatus, wrong := anon.signIn("a@x.com", "wrong-secret")
	unknownStatus, unknown := anon.signIn("nobody@x.com", "secret1")
	assert.Equal(t, http.StatusUnauthorized, wrongStatus)
	assert.Equal(t, wrongStatus, unknownStatus)
	assert.Equal(t, wrong, unknown)

	alice := anon.login("a@x.com")
	status, env = alice.do(http.MethodGet, "/api/v1/users/me", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), a.ID.String())

	status, env = alice.do(http.MethodPost, "/api/v1/resumes", map[string]string{"title": "T", "content": content})
	require.Equal(t, http.StatusCreated, status)
	var created resume.Resume
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, resume.StatusApply, created.Status)
	assert.Equal(t, a.ID, created.OwnerID)

	anon.signUp("b@x.com", "B")
	bob := anon.login("b@x.com")
	path := "/api/v1/resumes/" + created.ID.String()

	otherStatus, other := bob.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, otherStatus)
	_, absent := bob.do(http.MethodGet, "/api/v1/resumes/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, absent, other)

	status, _ = bob.do(http.MethodPatch, path, map[string]string{"title": "stolen"})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = bob.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = alice.do(http.MethodPatch, path, map[string]string{"title": "T2"})
	require.Equal(t, http.StatusOK, status)
	var updated resume.Resume
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, content, updated.Content)

	newContent := strings.Repeat("updated summary of go and postgres work. ", 4)
	status, env = alice.do(http.MethodPut, path, map[string]string{"content": newContent})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, newContent, updated.Content)

	status, _ = bob.do(http.MethodPut, path, map[string]string{"title": "stolen"})
	assert.Equal(t, http.StatusNotFound, status)

	status, env = alice.do(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":"`+created.ID.String()+`"}`, string(env.Data))

	status, _ = alice.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListIsOwnerScopedAndOrdered(t *testing.T) {
	anon := &client{t: t, app: newServer(t)}
	anon.signUp("a@x.com", "A")
	anon.signUp("b@x.com", "B")
	alice, bob := anon.login("a@x.com"), anon.login("b@x.com")

	for _, title := range []string{"first", "second", "third"} {
		status, _ := alice.do(http.MethodPost, "/api/v1/resumes", map[string]string{"title": title, "content": content})
		require.Equal(t, http.StatusCreated, status)
	}
	status, _ := bob.do(http.MethodPost, "/api/v1/resumes", map[string]string{"title": "bob's", "content": content})
	require.Equal(t, http.StatusCreated, status)

	titles := func(c *client, query string) []string {
		status, env := c.do(http.MethodGet, "/api/v1/resumes"+query, nil)
		require.Equal(t, http.StatusOK, status)
		var views []resume.View
		require.NoError(t, json.Unmarshal(env.Data, &views))
		out := make([]string, 0, len(views))
		for _, v := range views {
			assert.Equal(t, "A", v.AuthorName)
			out = append(out, v.Title)
		}
		return out
	}

	assert.Equal(t, []string{"third", "second", "first"}, titles(alice, ""))
	assert.Equal(t, []string{"first", "second", "third"}, titles(alice, "?sort=asc"))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	anon := &client{t: t, app: newServer(t)}

	for _, path := range []string{"/api/v1/users/me", "/api/v1/resumes"} {
		status, _ := anon.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}

	forged := &client{t: t, app: anon.app, token: "not.a.jwt"}
	status, _ := forged.do(http.MethodGet, "/api/v1/resumes", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
