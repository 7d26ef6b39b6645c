package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock_dashboard/internal/app/config"
	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/app/logging"
	"stock_dashboard/internal/app/router"
	"stock_dashboard/internal/platform/db"
	infraredis "stock_dashboard/internal/platform/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default $CONFIG_PATH or configs/config.yaml)")
	migrate := flag.Bool("migrate", true, "run database migrations on start")
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

	// db
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	if *migrate {
		if err := db.Migrate(gdb); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
	}

	// Redis
	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	handlers := di.NewHandlers(cfg, gdb, rdb)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.NewRouter(handlers, cfg.Server.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", cfg.Server.Addr, "history_source", cfg.HistorySource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
