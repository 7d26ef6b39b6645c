// Package response はJSON APIのエラーレスポンスを共通化します。
package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/shared/apperr"
)

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// UpstreamFailureMessage は上流の失敗時にクライアントへ返す固定メッセージです。
const UpstreamFailureMessage = "upstream request failed"

// Status はエラーをHTTPステータスへ対応付けます。
// 入力不正は400、データなしは404、それ以外は上流の失敗として502です。
func Status(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrDataUnavailable):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// Message はクライアントへ返すエラーメッセージです。
// 5xxの詳細は返さず、固定メッセージに置き換えます。
func Message(err error) string {
	if Status(err) >= http.StatusInternalServerError {
		return UpstreamFailureMessage
	}
	return err.Error()
}

// Error はerrに対応するステータスでErrorResponseを書き込みます。
// 5xxの詳細はログにのみ残します。
func Error(c *gin.Context, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, ErrorResponse{Error: Message(err)})
}
