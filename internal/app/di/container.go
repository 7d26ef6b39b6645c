package di

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_dashboard/internal/app/config"
	candleadapters "stock_dashboard/internal/feature/candles/adapters"
	candlehandler "stock_dashboard/internal/feature/candles/transport/handler"
	candlesusecase "stock_dashboard/internal/feature/candles/usecase"
	companyhandler "stock_dashboard/internal/feature/company/transport/handler"
	companyusecase "stock_dashboard/internal/feature/company/usecase"
	dashboardhandler "stock_dashboard/internal/feature/dashboard/transport/handler"
	dashboardusecase "stock_dashboard/internal/feature/dashboard/usecase"
	forecasthandler "stock_dashboard/internal/feature/forecast/transport/handler"
	forecastusecase "stock_dashboard/internal/feature/forecast/usecase"
	indicatorshandler "stock_dashboard/internal/feature/indicators/transport/handler"
	indicatorsusecase "stock_dashboard/internal/feature/indicators/usecase"
	symbollistadapters "stock_dashboard/internal/feature/symbollist/adapters"
	symbollisthandler "stock_dashboard/internal/feature/symbollist/transport/handler"
	symbollistusecase "stock_dashboard/internal/feature/symbollist/usecase"
	"stock_dashboard/internal/platform/cache"
	"stock_dashboard/internal/platform/echarts"
	healthhandler "stock_dashboard/internal/platform/http/handler"
)

// Handlers はルーターに登録するHTTPハンドラーの集合です。
type Handlers struct {
	Health     *healthhandler.HealthHandler
	Candles    *candlehandler.CandlesHandler
	Company    *companyhandler.CompanyHandler
	Indicators *indicatorshandler.IndicatorsHandler
	Forecast   *forecasthandler.ForecastHandler
	Symbols    *symbollisthandler.SymbolHandler
	Dashboard  *dashboardhandler.DashboardHandler
}

// NewHandlers はリポジトリ、ユースケース、ハンドラーを組み立てます。
// rdbはnilでも構いません（キャッシュなし）。
func NewHandlers(cfg *config.Config, gdb *gorm.DB, rdb *redis.Client) *Handlers {
	// Repository
	market := NewMarket(cfg.TwelveDataConfig())
	candleStore := candleadapters.NewCandleStore(gdb)
	symbolRepo := symbollistadapters.NewSymbolRepository(gdb)

	// Redisキャッシュでラップ
	history := NewHistorySource(cfg.HistorySource, market, candleStore, rdb, cfg.Cache.RefreshHour, cfg.Location())
	profiles := cache.NewCachingProfileRepository(rdb, 0, market, "profile")

	// Usecase
	candlesUC := candlesusecase.NewCandlesUsecase(history)
	companyUC := companyusecase.NewCompanyUsecase(profiles)
	indicatorsUC := indicatorsusecase.NewIndicatorsUsecase(candlesUC)
	// 予測は常に直近1年のデータを必要とするため、DBではなくキャッシュ経由でプロバイダーを参照する
	forecastUC := forecastusecase.NewForecastUsecase(
		cache.NewCachingCandleRepository(rdb, 0, market, "forecast").RefreshDailyAt(cfg.Cache.RefreshHour, cfg.Location()),
	)
	symbolUC := symbollistusecase.NewSymbolUsecase(symbolRepo)

	dispatcher := dashboardusecase.NewDispatcher(dashboardusecase.NewActions(dashboardusecase.Deps{
		Profiles:   companyUC,
		History:    candlesUC,
		Indicators: indicatorsUC,
		Forecaster: forecastUC,
	})...)
	slog.Info("dashboard events registered", "events", dispatcher.Events())

	// Handler
	return &Handlers{
		Health:     healthhandler.NewHealthHandler(healthChecks(gdb, rdb)),
		Candles:    candlehandler.NewCandlesHandler(candlesUC),
		Company:    companyhandler.NewCompanyHandler(companyUC),
		Indicators: indicatorshandler.NewIndicatorsHandler(indicatorsUC),
		Forecast:   forecasthandler.NewForecastHandler(forecastUC),
		Symbols:    symbollisthandler.NewSymbolHandler(symbolUC),
		Dashboard:  dashboardhandler.NewDashboardHandler(dispatcher, echarts.NewRenderer(), symbolUC),
	}
}

func healthChecks(gdb *gorm.DB, rdb *redis.Client) map[string]healthhandler.Check {
	checks := map[string]healthhandler.Check{}
	if gdb != nil {
		checks["db"] = func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}
