package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/resumes/api/http/handlers"
)

type readiness struct{ err error }

func (r readiness) Ready(context.Context) error { return r.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"liveness", "/health", nil, http.StatusOK},
		{"ready", "/ready", nil, http.StatusOK},
		{"not ready", "/ready", errors.New("postgres: refused"), http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := handlers.NewHealthHandler(readiness{err: tc.err})
			app := newApp()
			app.Get("/health", h.Health)
			app.Get("/ready", h.Ready)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
