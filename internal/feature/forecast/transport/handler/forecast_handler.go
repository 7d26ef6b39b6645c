// Package handler はforecastフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/forecast/domain/entity"
	"stock_dashboard/internal/feature/forecast/transport/http/dto"
	"stock_dashboard/internal/feature/forecast/usecase"
	"stock_dashboard/internal/platform/http/response"
)

// ForecastUsecase は予測のユースケースインターフェースです。
type ForecastUsecase interface {
	Forecast(ctx context.Context, symbol string, days int) (*entity.Forecast, error)
}

// ForecastHandler は予測のHTTPリクエストを処理します。
type ForecastHandler struct {
	uc ForecastUsecase
}

func NewForecastHandler(uc ForecastUsecase) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

// GetForecastHandler は GET /api/v1/stocks/:code/forecast?days=5 を処理します。
func (h *ForecastHandler) GetForecastHandler(c *gin.Context) {
	days, err := usecase.ParseHorizon(c.Query("days"))
	if err != nil {
		response.Error(c, err)
		return
	}

	f, err := h.uc.Forecast(c.Request.Context(), c.Param("code"), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewForecastResponse(f))
}
