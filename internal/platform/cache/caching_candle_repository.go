package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_dashboard/internal/feature/candles/domain/entity"
	"stock_dashboard/internal/feature/candles/usecase"
)

// ErrReadOnly は書き込みをサポートしない内部リポジトリへのUpsertBatchで返されます。
var ErrReadOnly = errors.New("cache: inner repository does not support writes")

// CachingCandleRepository decorates a MarketRepository with Redis caching.
// The inner repository is either the market-data provider or the candle store;
// when it also implements usecase.CandleStore, UpsertBatch writes through and
// invalidates the affected symbols.
type CachingCandleRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	ttl       time.Duration
	expiry    func() time.Duration
	namespace string
}

var (
	_ usecase.MarketRepository = (*CachingCandleRepository)(nil)
	_ usecase.CandleStore      = (*CachingCandleRepository)(nil)
)

// NewCachingCandleRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "candles".
// A nil rdb disables caching.
func NewCachingCandleRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketRepository, namespace string) *CachingCandleRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "candles"
	}
	return &CachingCandleRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// RefreshDailyAt はキャッシュの有効期限を毎日hour時（loc）までに変更します。
func (c *CachingCandleRepository) RefreshDailyAt(hour int, loc *time.Location) *CachingCandleRepository {
	c.expiry = func() time.Duration { return TimeUntilNext(hour, loc, time.Now()) }
	return c
}

// GetTimeSeries retrieves candles, checking cache first then falling back to the inner repository.
// Errors and empty results are never cached.
func (c *CachingCandleRepository) GetTimeSeries(ctx context.Context, symbol, interval string, start, end time.Time) ([]entity.Candle, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetTimeSeries(ctx, symbol, interval, start, end)
	}

	key := c.cacheKey(symbol, interval, start, end)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Candle
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("cache get failed", "key", key, "error", err)
	}

	// 2) Fallback to inner repository
	out, err := c.inner.GetTimeSeries(ctx, symbol, interval, start, end)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.currentTTL()).Err()
	}

	return out, nil
}

// UpsertBatch writes through to the inner store and invalidates related cache entries.
func (c *CachingCandleRepository) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	store, ok := c.inner.(usecase.CandleStore)
	if !ok {
		return ErrReadOnly
	}
	if err := store.UpsertBatch(ctx, candles); err != nil {
		return err
	}
	// Exit early if Redis is not configured or there are no candles
	if c.rdb == nil || len(candles) == 0 {
		return nil
	}

	// Invalidate affected cache entries (keys per symbol+interval)
	seen := map[string]struct{}{}
	for _, cd := range candles {
		prefix := c.cacheKeyPrefix(cd.Symbol, cd.Interval)
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		if err := deleteByPattern(ctx, c.rdb, prefix+"*"); err != nil {
			slog.Warn("cache invalidation failed", "prefix", prefix, "error", err)
		}
	}
	return nil
}

func (c *CachingCandleRepository) currentTTL() time.Duration {
	if c.expiry != nil {
		if d := c.expiry(); d > 0 {
			return d
		}
	}
	return c.ttl
}

// cacheKey generates a cache key for a specific query.
func (c *CachingCandleRepository) cacheKey(symbol, interval string, start, end time.Time) string {
	return fmt.Sprintf("%s%s-%s", c.cacheKeyPrefix(symbol, interval), keyDate(start), keyDate(end))
}

// cacheKeyPrefix generates a prefix for invalidating related cache entries.
func (c *CachingCandleRepository) cacheKeyPrefix(symbol, interval string) string {
	return fmt.Sprintf("%s:%s:%s:",
		c.namespace,
		safe(symbol),
		safe(interval),
	)
}

func keyDate(t time.Time) string {
	if t.IsZero() {
		return "open"
	}
	return t.UTC().Format("20060102")
}
