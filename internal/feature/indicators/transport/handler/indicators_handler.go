// Package handler はindicatorsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	candlesusecase "stock_dashboard/internal/feature/candles/usecase"
	"stock_dashboard/internal/feature/indicators/domain/entity"
	"stock_dashboard/internal/feature/indicators/transport/http/dto"
	"stock_dashboard/internal/platform/http/response"
)

// IndicatorsUsecase は移動平均計算のユースケースインターフェースです。
type IndicatorsUsecase interface {
	GetIndicators(ctx context.Context, symbol string, start, end time.Time) (*entity.Indicators, error)
}

// IndicatorsHandler はインジケーターのHTTPリクエストを処理します。
type IndicatorsHandler struct {
	uc  IndicatorsUsecase
	now func() time.Time
}

func NewIndicatorsHandler(uc IndicatorsUsecase) *IndicatorsHandler {
	return &IndicatorsHandler{uc: uc, now: time.Now}
}

// GetIndicatorsHandler は GET /api/v1/stocks/:code/indicators?start=&end= を処理します。
func (h *IndicatorsHandler) GetIndicatorsHandler(c *gin.Context) {
	start, end, err := candlesusecase.ParseDateRange(c.Query("start"), c.Query("end"), h.now())
	if err != nil {
		response.Error(c, err)
		return
	}

	ind, err := h.uc.GetIndicators(c.Request.Context(), c.Param("code"), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewIndicatorsResponse(ind))
}
