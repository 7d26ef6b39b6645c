package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_dashboard/internal/feature/indicators/domain/entity"
	"stock_dashboard/internal/shared/apperr"
)

type mockIndicatorsUsecase struct {
	GetIndicatorsFunc func(ctx context.Context, symbol string, start, end time.Time) (*entity.Indicators, error)
}

func (m *mockIndicatorsUsecase) GetIndicators(ctx context.Context, symbol string, start, end time.Time) (*entity.Indicators, error) {
	return m.GetIndicatorsFunc(ctx, symbol, start, end)
}

func TestIndicatorsHandler_GetIndicatorsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		mockFunc       func(ctx context.Context, symbol string, start, end time.Time) (*entity.Indicators, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			url:  "/stocks/AAPL/indicators?start=2024-01-01",
			mockFunc: func(ctx context.Context, symbol string, start, end time.Time) (*entity.Indicators, error) {
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
				return &entity.Indicators{
					Symbol: "AAPL",
					Period: 20,
					EMA:    []entity.Value{{Date: d, Value: 101.5}},
					SMA:    []entity.Value{},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"symbol":"AAPL","period":20,"ema":[{"date":"2024-01-02","value":101.5}],"sma":[]}`,
		},
		{
			name:           "error: malformed date",
			url:            "/stocks/AAPL/indicators?end=soon",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid argument: end date \"soon\""}`,
		},
		{
			name: "error: no data",
			url:  "/stocks/XXXX/indicators",
			mockFunc: func(ctx context.Context, symbol string, start, end time.Time) (*entity.Indicators, error) {
				return nil, fmt.Errorf("%w: no price history for XXXX", apperr.ErrDataUnavailable)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"data unavailable: no price history for XXXX"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewIndicatorsHandler(&mockIndicatorsUsecase{GetIndicatorsFunc: tt.mockFunc})
			h.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

			router := gin.New()
			router.GET("/stocks/:code/indicators", h.GetIndicatorsHandler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
