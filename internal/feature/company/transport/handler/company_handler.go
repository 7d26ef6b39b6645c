// Package handler はcompanyフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/company/domain/entity"
	"stock_dashboard/internal/feature/company/transport/http/dto"
	"stock_dashboard/internal/platform/http/response"
)

// CompanyUsecase は企業情報取得のユースケースインターフェースです。
type CompanyUsecase interface {
	GetProfile(ctx context.Context, symbol string) (entity.Profile, error)
}

// CompanyHandler は企業情報のHTTPリクエストを処理します。
type CompanyHandler struct {
	uc CompanyUsecase
}

// NewCompanyHandler はCompanyHandlerの新しいインスタンスを生成します。
func NewCompanyHandler(uc CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// GetProfileHandler は GET /api/v1/stocks/:code/profile を処理します。
func (h *CompanyHandler) GetProfileHandler(c *gin.Context) {
	p, err := h.uc.GetProfile(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(p))
}
