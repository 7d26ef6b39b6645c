package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_dashboard/internal/feature/candles/domain/entity"
	"stock_dashboard/internal/shared/apperr"
)

// mockCandlesUsecase はCandlesUsecaseインターフェースのモック実装です。
type mockCandlesUsecase struct {
	GetHistoryFunc  func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error)
	GetHistoryCalls int
}

func (m *mockCandlesUsecase) GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
	m.GetHistoryCalls++
	return m.GetHistoryFunc(ctx, symbol, start, end)
}

// TestCandlesHandler_GetCandlesHandler はGetCandlesHandlerのHTTPリクエスト/レスポンス処理をテストします。
func TestCandlesHandler_GetCandlesHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testTime := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		mockGetHistory func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error)
		expectedStatus int
		expectedBody   string
		expectedCalls  int
	}{
		{
			name: "success: explicit range",
			url:  "/stocks/aapl/candles?start=2023-01-01&end=2023-01-31",
			mockGetHistory: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
				assert.Equal(t, "aapl", symbol)
				assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), start)
				assert.Equal(t, time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), end)
				return []entity.Candle{
					{Time: testTime, Open: 100, High: 110, Low: 90, Close: 105, Volume: 1000},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"symbol":"AAPL","candles":[{"time":"2023-01-03","open":100,"high":110,"low":90,"close":105,"volume":1000}]}`,
			expectedCalls:  1,
		},
		{
			name: "success: default range",
			url:  "/stocks/MSFT/candles",
			mockGetHistory: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
				assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), start)
				assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), end)
				return []entity.Candle{{Time: testTime, Close: 1}}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"symbol":"MSFT","candles":[{"time":"2023-01-03","open":0,"high":0,"low":0,"close":1,"volume":0}]}`,
			expectedCalls:  1,
		},
		{
			name:           "error: start after end",
			url:            "/stocks/AAPL/candles?start=2024-02-01&end=2024-01-01",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid argument: start 2024-02-01 is after end 2024-01-01"}`,
			expectedCalls:  0,
		},
		{
			name: "error: unknown symbol",
			url:  "/stocks/XXXX/candles",
			mockGetHistory: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
				return nil, fmt.Errorf("%w: no price history for XXXX", apperr.ErrDataUnavailable)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"data unavailable: no price history for XXXX"}`,
			expectedCalls:  1,
		},
		{
			name: "error: usecase returns error",
			url:  "/stocks/AAPL/candles",
			mockGetHistory: func(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
				return nil, errors.New("twelvedata http 500")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"upstream request failed"}`,
			expectedCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCandlesUsecase{GetHistoryFunc: tt.mockGetHistory}

			h := NewCandlesHandler(mockUC)
			h.now = func() time.Time { return now }

			router := gin.New()
			router.GET("/stocks/:code/candles", h.GetCandlesHandler)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, tt.expectedCalls, mockUC.GetHistoryCalls)
		})
	}
}
