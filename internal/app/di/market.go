// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	candlesusecase "stock_dashboard/internal/feature/candles/usecase"
	"stock_dashboard/internal/platform/cache"
	"stock_dashboard/internal/platform/externalapi/twelvedata"
	infrahttp "stock_dashboard/internal/platform/http"
)

// NewMarket creates a fully configured TwelveDataMarket with HTTP client.
func NewMarket(cfg twelvedata.Config) *twelvedata.TwelveDataMarket {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return twelvedata.NewTwelveDataMarket(cfg, httpClient)
}

// NewHistorySource は価格履歴の取得元を選び、Redisキャッシュでラップします。
// sourceが"store"ならDB、それ以外はプロバイダーを直接参照します。
// rdbがnilの場合、キャッシュは素通しになります。
func NewHistorySource(source string, market, store candlesusecase.MarketRepository, rdb *redis.Client, refreshHour int, loc *time.Location) *cache.CachingCandleRepository {
	inner := market
	if source == "store" {
		inner = store
	}
	return cache.NewCachingCandleRepository(rdb, 0, inner, "candles").RefreshDailyAt(refreshHour, loc)
}
