// Package db はgormによるデータベース接続とマイグレーションを提供します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	candleadapters "stock_dashboard/internal/feature/candles/adapters"
	symboladapters "stock_dashboard/internal/feature/symbollist/adapters"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// retryInterval は接続リトライの待機時間です。テストで短縮できるよう変数にしています。
var retryInterval = 3 * time.Second

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Config はデータベース接続設定です。
type Config struct {
	Driver         string        `yaml:"driver"`
	Path           string        `yaml:"path"`
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	Name           string        `yaml:"name"`
	SSLMode        string        `yaml:"sslmode"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// LoadConfigFromEnv は環境変数でcfgを上書きした設定を返します。
func LoadConfigFromEnv(cfg Config) Config {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&cfg.Driver, "DB_DRIVER")
	override(&cfg.Path, "DB_PATH")
	override(&cfg.Host, "DB_HOST")
	override(&cfg.Port, "DB_PORT")
	override(&cfg.User, "DB_USER")
	override(&cfg.Password, "DB_PASSWORD")
	override(&cfg.Name, "DB_NAME")
	override(&cfg.SSLMode, "DB_SSLMODE")
	return cfg
}

// BuildDSN はドライバーに応じた接続文字列を生成します。
func BuildDSN(cfg Config) (string, error) {
	switch cfg.Driver {
	case "", DriverSQLite:
		if cfg.Path == "" {
			return "file::memory:", nil
		}
		return cfg.Path, nil
	case DriverPostgres:
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// ConnectWithRetry はtimeoutに達するまでopenerを繰り返し呼び出します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open は設定に従ってDBへ接続します。
func Open(cfg Config) (*gorm.DB, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	opener := func(dsn string) (*gorm.DB, error) {
		if cfg.Driver == DriverPostgres {
			return gorm.Open(postgres.Open(dsn), gcfg)
		}
		db, err := gorm.Open(sqlite.Open(dsn), gcfg)
		if err != nil {
			return nil, err
		}
		// sqliteは単一接続で書き込みを直列化する
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
	return ConnectWithRetry(dsn, timeout, opener)
}

// Migrate はアプリケーションのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&candleadapters.CandleModel{},
		&symboladapters.SymbolModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
