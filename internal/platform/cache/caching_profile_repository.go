package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_dashboard/internal/feature/company/domain/entity"
	"stock_dashboard/internal/feature/company/usecase"
)

// CachingProfileRepository decorates a ProfileRepository with Redis caching.
// 企業情報はほとんど変わらないため、既定のTTLは24時間です。
type CachingProfileRepository struct {
	inner     usecase.ProfileRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ProfileRepository = (*CachingProfileRepository)(nil)

// NewCachingProfileRepository decorates inner with Redis caching. A nil rdb disables caching.
func NewCachingProfileRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProfileRepository, namespace string) *CachingProfileRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if namespace == "" {
		namespace = "profile"
	}
	return &CachingProfileRepository{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

// GetProfile returns the cached profile or fetches and caches it.
func (c *CachingProfileRepository) GetProfile(ctx context.Context, symbol string) (entity.Profile, error) {
	if c.rdb == nil {
		return c.inner.GetProfile(ctx, symbol)
	}

	key := fmt.Sprintf("%s:%s", c.namespace, safe(symbol))
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var p entity.Profile
		if err := json.Unmarshal(b, &p); err == nil {
			return p, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	p, err := c.inner.GetProfile(ctx, symbol)
	if err != nil {
		return entity.Profile{}, err
	}
	if p.Name == "" {
		return p, nil
	}

	if b, err := json.Marshal(p); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return p, nil
}
