package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_dashboard/internal/shared/apperr"
)

func TestStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid argument", fmt.Errorf("%w: symbol", apperr.ErrInvalidArgument), http.StatusBadRequest},
		{"data unavailable", fmt.Errorf("wrap: %w", apperr.ErrDataUnavailable), http.StatusNotFound},
		{"upstream failure", errors.New("twelvedata http 500"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "data unavailable keeps message",
			err:        fmt.Errorf("%w: no price history for XXXX", apperr.ErrDataUnavailable),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"data unavailable: no price history for XXXX"}`,
		},
		{
			name:       "invalid argument keeps message",
			err:        fmt.Errorf("%w: days must be positive", apperr.ErrInvalidArgument),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid argument: days must be positive"}`,
		},
		{
			name:       "upstream failure hides detail",
			err:        errors.New(`twelvedata time_series: Get "http://upstream/time_series?apikey=SECRET-KEY-123": EOF`),
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"upstream request failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Error(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.NotContains(t, w.Body.String(), "SECRET-KEY-123")
		})
	}
}
