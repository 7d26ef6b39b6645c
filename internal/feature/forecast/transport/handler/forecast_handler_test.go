package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_dashboard/internal/feature/forecast/domain/entity"
	"stock_dashboard/internal/feature/forecast/transport/handler"
	"stock_dashboard/internal/shared/apperr"
)

type mockForecastUsecase struct {
	ForecastFunc  func(ctx context.Context, symbol string, days int) (*entity.Forecast, error)
	ForecastCalls int
}

func (m *mockForecastUsecase) Forecast(ctx context.Context, symbol string, days int) (*entity.Forecast, error) {
	m.ForecastCalls++
	return m.ForecastFunc(ctx, symbol, days)
}

func TestForecastHandler_GetForecastHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	d := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		mockFunc       func(ctx context.Context, symbol string, days int) (*entity.Forecast, error)
		expectedStatus int
		expectedBody   string
		expectedCalls  int
	}{
		{
			name: "success",
			url:  "/stocks/AAPL/forecast?days=1",
			mockFunc: func(ctx context.Context, symbol string, days int) (*entity.Forecast, error) {
				assert.Equal(t, "AAPL", symbol)
				assert.Equal(t, 1, days)
				return &entity.Forecast{
					Symbol:    "AAPL",
					Days:      1,
					Converged: true,
					Actual:    []entity.Observation{{Date: d, Price: 100}},
					Predicted: []entity.Observation{{Date: d.AddDate(0, 0, 1), Price: 100.5}},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"symbol":"AAPL","days":1,"converged":true,
				"actual":[{"date":"2025-01-10","price":100}],
				"predicted":[{"date":"2025-01-11","price":100.5}]}`,
			expectedCalls: 1,
		},
		{
			name:           "error: missing days",
			url:            "/stocks/AAPL/forecast",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid argument: days is required"}`,
		},
		{
			name:           "error: fractional days",
			url:            "/stocks/AAPL/forecast?days=2.5",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid argument: days \"2.5\" is not an integer"}`,
		},
		{
			name: "error: unknown symbol",
			url:  "/stocks/XXXX/forecast?days=5",
			mockFunc: func(ctx context.Context, symbol string, days int) (*entity.Forecast, error) {
				return nil, fmt.Errorf("%w: no price history for XXXX", apperr.ErrDataUnavailable)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"data unavailable: no price history for XXXX"}`,
			expectedCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockForecastUsecase{ForecastFunc: tt.mockFunc}
			h := handler.NewForecastHandler(mockUC)

			router := gin.New()
			router.GET("/stocks/:code/forecast", h.GetForecastHandler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, tt.expectedCalls, mockUC.ForecastCalls)
		})
	}
}
