package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(checks map[string]Check) *gin.Engine {
	h := NewHealthHandler(checks)
	r := gin.New()
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)
	r.OPTIONS("/healthz", h.Health)
	return r
}

func TestHealth_GET(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checks     map[string]Check
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no dependencies",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok"}`,
		},
		{
			name: "all dependencies healthy",
			checks: map[string]Check{
				"db":    func(context.Context) error { return nil },
				"redis": func(context.Context) error { return nil },
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok","checks":{"db":"ok","redis":"ok"}}`,
		},
		{
			name: "one dependency down",
			checks: map[string]Check{
				"db":    func(context.Context) error { return nil },
				"redis": func(context.Context) error { return errors.New("dial tcp: connection refused") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"degraded","checks":{"db":"ok","redis":"dial tcp: connection refused"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			setupRouter(tt.checks).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		})
	}
}

func TestHealth_CheckReceivesDeadline(t *testing.T) {
	t.Parallel()

	var hasDeadline bool
	router := setupRouter(map[string]Check{
		"db": func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		},
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.True(t, hasDeadline)
}

func TestHealth_HEAD(t *testing.T) {
	t.Parallel()

	called := false
	router := setupRouter(map[string]Check{
		"db": func(context.Context) error { called = true; return nil },
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len())
	assert.False(t, called, "HEAD must not run dependency checks")
}

func TestHealth_OPTIONS(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	setupRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/healthz", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
