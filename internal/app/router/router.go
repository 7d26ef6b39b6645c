// Package router wires HTTP handlers into a gin engine.
package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/platform/http/middleware"
)

// NewRouter はダッシュボード画面、イベント、JSON APIのルートを登録します。
// corsOriginsが空ならCORSヘッダーを付けません。
func NewRouter(h *di.Handlers, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(slog.Default()))

	// プリフライトはルート未登録のOPTIONSでも処理されるようエンジン全体に適用する
	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  corsOrigins,
			AllowMethods:  []string{"GET", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	// ダッシュボード
	r.GET("/", h.Dashboard.Index)
	r.POST("/events/:event", h.Dashboard.Event)

	// JSON API
	api := r.Group("/api/v1")
	{
		api.GET("/symbols", h.Symbols.List)

		stocks := api.Group("/stocks/:code")
		stocks.GET("/candles", h.Candles.GetCandlesHandler)
		stocks.GET("/profile", h.Company.GetProfileHandler)
		stocks.GET("/indicators", h.Indicators.GetIndicatorsHandler)
		stocks.GET("/forecast", h.Forecast.GetForecastHandler)
	}

	return r
}
