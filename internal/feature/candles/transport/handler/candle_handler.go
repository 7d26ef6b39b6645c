// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/candles/domain/entity"
	"stock_dashboard/internal/feature/candles/transport/http/dto"
	"stock_dashboard/internal/feature/candles/usecase"
	"stock_dashboard/internal/platform/http/response"
)

// CandlesUsecase はローソク足データ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CandlesUsecase interface {
	GetHistory(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error)
}

// CandlesHandler はローソク足データのHTTPリクエストを処理します。
type CandlesHandler struct {
	uc  CandlesUsecase
	now func() time.Time
}

// NewCandlesHandler は指定されたusecaseでCandlesHandlerの新しいインスタンスを生成します。
func NewCandlesHandler(uc CandlesUsecase) *CandlesHandler {
	return &CandlesHandler{uc: uc, now: time.Now}
}

// GetCandlesHandler は銘柄コードと期間を受け取り、日足データをJSONで返します。
//
// エンドポイント例:
// GET /api/v1/stocks/:code/candles?start=2024-01-01&end=2024-12-31
func (h *CandlesHandler) GetCandlesHandler(c *gin.Context) {
	start, end, err := usecase.ParseDateRange(c.Query("start"), c.Query("end"), h.now())
	if err != nil {
		response.Error(c, err)
		return
	}

	candles, err := h.uc.GetHistory(c.Request.Context(), c.Param("code"), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewHistoryResponse(usecase.NormalizeSymbol(c.Param("code")), candles))
}
