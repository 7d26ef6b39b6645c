// Package config loads application settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"stock_dashboard/internal/platform/db"
	"stock_dashboard/internal/platform/externalapi/twelvedata"
	"stock_dashboard/internal/platform/redis"
)

// DefaultPath はCONFIG_PATH未指定時に読む設定ファイルです。
const DefaultPath = "configs/config.yaml"

// History source.
const (
	SourceProvider = "provider"
	SourceStore    = "store"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr            string        `yaml:"addr"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		CORSOrigins     []string      `yaml:"cors_origins"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	TwelveData struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"twelve_data"`
	// HistorySource は価格履歴の取得元です（provider: Twelve Data、store: DB）。
	HistorySource string       `yaml:"history_source"`
	Database      db.Config    `yaml:"database"`
	Redis         redis.Config `yaml:"redis"`
	Cache         struct {
		RefreshHour int    `yaml:"refresh_hour"`
		Timezone    string `yaml:"timezone"`
	} `yaml:"cache"`
	Watchlist []string `yaml:"watchlist"`
	Ingest    struct {
		Cron         string        `yaml:"cron"`
		Window       time.Duration `yaml:"window"`
		RateLimit    int           `yaml:"rate_limit"`
		RateInterval time.Duration `yaml:"rate_interval"`
		RunTimeout   time.Duration `yaml:"run_timeout"`
	} `yaml:"ingest"`
}

// Load は .env、YAMLファイル、環境変数の順に読み込み、最後に既定値を補います。
// ファイルが存在しない場合はエラーにしません。
func Load(path string) (*Config, error) {
	// .envは任意
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	str := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	str(&c.Server.Addr, "SERVER_ADDR")
	if v := os.Getenv("PORT"); v != "" && c.Server.Addr == "" {
		c.Server.Addr = ":" + v
	}
	str(&c.Log.Level, "LOG_LEVEL")
	str(&c.Log.File, "LOG_FILE")
	str(&c.TwelveData.APIKey, "TWELVE_DATA_API_KEY")
	str(&c.TwelveData.BaseURL, "TWELVE_DATA_BASE_URL")
	str(&c.HistorySource, "HISTORY_SOURCE")
	str(&c.Cache.Timezone, "CACHE_TIMEZONE")
	str(&c.Ingest.Cron, "INGEST_CRON")
	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Watchlist = splitList(v)
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("CACHE_REFRESH_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil {
			c.Cache.RefreshHour = h
		}
	}
	c.Database = db.LoadConfigFromEnv(c.Database)
	c.Redis = redis.LoadConfigFromEnv(c.Redis)
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.TwelveData.BaseURL == "" {
		c.TwelveData.BaseURL = twelvedata.DefaultBaseURL
	}
	if c.TwelveData.Timeout <= 0 {
		c.TwelveData.Timeout = 10 * time.Second
	}
	if c.HistorySource == "" {
		c.HistorySource = SourceProvider
	}
	if c.Database.Driver == "" {
		c.Database.Driver = db.DriverSQLite
	}
	if c.Database.Driver == db.DriverSQLite && c.Database.Path == "" {
		c.Database.Path = "data/stock_dashboard.db"
	}
	if c.Cache.RefreshHour == 0 {
		c.Cache.RefreshHour = 8
	}
	if c.Cache.Timezone == "" {
		c.Cache.Timezone = "America/New_York"
	}
	if len(c.Watchlist) == 0 {
		c.Watchlist = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA"}
	}
	if c.Ingest.Window <= 0 {
		c.Ingest.Window = 365 * 24 * time.Hour
	}
	if c.Ingest.RateLimit <= 0 {
		// Twelve Data無料プランは1分あたり8リクエスト
		c.Ingest.RateLimit = 8
	}
	if c.Ingest.RateInterval <= 0 {
		c.Ingest.RateInterval = time.Minute
	}
	if c.Ingest.RunTimeout <= 0 {
		c.Ingest.RunTimeout = 10 * time.Minute
	}
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.TwelveData.APIKey == "" {
		errs = append(errs, errors.New("twelve_data.api_key is required"))
	}
	switch c.HistorySource {
	case SourceProvider, SourceStore:
	default:
		errs = append(errs, fmt.Errorf("history_source must be %q or %q, got %q", SourceProvider, SourceStore, c.HistorySource))
	}
	switch c.Database.Driver {
	case db.DriverSQLite, db.DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("database.driver must be %q or %q, got %q", db.DriverSQLite, db.DriverPostgres, c.Database.Driver))
	}
	if c.Database.Driver == db.DriverPostgres && (c.Database.Host == "" || c.Database.Name == "") {
		errs = append(errs, errors.New("database.host and database.name are required for postgres"))
	}
	if c.Cache.RefreshHour < 0 || c.Cache.RefreshHour > 23 {
		errs = append(errs, fmt.Errorf("cache.refresh_hour must be 0-23, got %d", c.Cache.RefreshHour))
	}
	if _, err := time.LoadLocation(c.Cache.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("cache.timezone: %w", err))
	}
	return errors.Join(errs...)
}

// Location はキャッシュ更新時刻のタイムゾーンです。Validate済みであることを前提とします。
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Cache.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TwelveDataConfig はTwelve Dataクライアント用の設定を返します。
func (c *Config) TwelveDataConfig() twelvedata.Config {
	return twelvedata.Config{
		TwelveDataAPIKey: c.TwelveData.APIKey,
		BaseURL:          c.TwelveData.BaseURL,
		Timeout:          c.TwelveData.Timeout,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
