// Package cache provides caching implementations for store interfaces.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_notifier/internal/feature/alerts/domain/entity"
	"stock_notifier/internal/feature/alerts/usecase"
)

// CachingDeliveryStore decorates a DeliveryStore with a Redis set per symbol.
// The ledger is append-only, so only positive lookups are cached and a cached
// member never goes stale.
type CachingDeliveryStore struct {
	inner     usecase.DeliveryStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.DeliveryStore = (*CachingDeliveryStore)(nil)

// NewCachingDeliveryStore decorates a DeliveryStore with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "delivered".
func NewCachingDeliveryStore(rdb *redis.Client, ttl time.Duration, inner usecase.DeliveryStore, namespace string) *CachingDeliveryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if namespace == "" {
		namespace = "delivered"
	}
	return &CachingDeliveryStore{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Save records the delivery in the underlying store, then in the cache.
func (c *CachingDeliveryStore) Save(ctx context.Context, symbol string, typ entity.AlertType) error {
	if err := c.inner.Save(ctx, symbol, typ); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	c.remember(ctx, symbol, typ) // Best effort: the database is the source of truth
	return nil
}

// ExistsByType checks the cache first then falls back to the underlying store.
func (c *CachingDeliveryStore) ExistsByType(ctx context.Context, symbol string, typ entity.AlertType) (bool, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.ExistsByType(ctx, symbol, typ)
	}

	// 1) Check cache
	if ok, err := c.rdb.SIsMember(ctx, c.cacheKey(symbol), string(typ)).Result(); err == nil && ok {
		return true, nil
	}

	// 2) Fallback to database
	ok, err := c.inner.ExistsByType(ctx, symbol, typ)
	if err != nil {
		return false, err
	}

	// 3) Warm the cache with positive answers only
	if ok {
		c.remember(ctx, symbol, typ)
	}
	return ok, nil
}

func (c *CachingDeliveryStore) remember(ctx context.Context, symbol string, typ entity.AlertType) {
	key := c.cacheKey(symbol)
	if err := c.rdb.SAdd(ctx, key, string(typ)).Err(); err != nil {
		return
	}
	_ = c.rdb.Expire(ctx, key, c.ttl).Err()
}

// cacheKey generates the set key holding a symbol's delivered types.
func (c *CachingDeliveryStore) cacheKey(symbol string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(symbol))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
