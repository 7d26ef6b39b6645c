package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"stock_dashboard/internal/app/config"
	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/app/logging"
	"stock_dashboard/internal/app/scheduler"
	candleadapters "stock_dashboard/internal/feature/candles/adapters"
	candlesusecase "stock_dashboard/internal/feature/candles/usecase"
	symbollistadapters "stock_dashboard/internal/feature/symbollist/adapters"
	symbollistusecase "stock_dashboard/internal/feature/symbollist/usecase"
	"stock_dashboard/internal/platform/cache"
	"stock_dashboard/internal/platform/db"
	infraredis "stock_dashboard/internal/platform/redis"
	"stock_dashboard/internal/shared/ratelimiter"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default $CONFIG_PATH or configs/config.yaml)")
	useCron := flag.Bool("cron", false, "keep running and ingest on the configured schedule (ingest.cron)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	closer, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(cfg.Database)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// 書き込み時に該当銘柄のキャッシュを無効化する
	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable. Cache will not be invalidated.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	market := di.NewMarket(cfg.TwelveDataConfig())
	store := cache.NewCachingCandleRepository(rdb, 0, candleadapters.NewCandleStore(gdb), "candles")
	symbolUC := symbollistusecase.NewSymbolUsecase(symbollistadapters.NewSymbolRepository(gdb))
	rl := ratelimiter.NewRateLimiter(cfg.Ingest.RateLimit, cfg.Ingest.RateInterval)
	ingestUC := candlesusecase.NewIngestUsecase(market, store, rl, cfg.Ingest.Window)

	if err := symbolUC.EnsureSymbols(ctx, cfg.Watchlist); err != nil {
		slog.Error("failed to register watchlist", "error", err)
		os.Exit(1)
	}

	job := func(ctx context.Context) error {
		symbols, err := symbolUC.ListActiveCodes(ctx)
		if err != nil {
			return err
		}
		return ingestUC.IngestAll(ctx, symbols)
	}

	sched := scheduler.New(ctx, cfg.Location(), cfg.Ingest.RunTimeout)
	if !*useCron {
		if err := sched.RunNow("ingest", job); err != nil {
			os.Exit(1)
		}
		slog.Info("ingest ok")
		return
	}

	if cfg.Ingest.Cron == "" {
		slog.Error("ingest.cron is not configured")
		os.Exit(1)
	}
	if err := sched.Register("ingest", cfg.Ingest.Cron, job); err != nil {
		slog.Error("failed to register job", "error", err)
		os.Exit(1)
	}
	sched.Start()
	<-ctx.Done()
	sched.Stop()
}
