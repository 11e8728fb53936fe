package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_notifier/internal/feature/alerts/adapters"
	"stock_notifier/internal/feature/alerts/usecase"
	"stock_notifier/internal/platform/cache"
	"stock_notifier/internal/platform/session"
)

// NewDeliveryStore creates the delivery ledger store of one watch.
// With a database the ledger rows are durable and reads go through the Redis
// cache (bypassed when rdb is nil). Without one it lives in memory. Durable
// rows and cache keys are scoped to watchID, so a new watch starts empty.
func NewDeliveryStore(db *gorm.DB, rdb *redis.Client, watchID string) usecase.DeliveryStore {
	if db == nil {
		return adapters.NewMemoryDeliveryStore()
	}
	return cache.NewCachingDeliveryStore(rdb, 0, adapters.NewDeliveryStore(db, watchID), "delivered:"+watchID)
}

// NewDelayWindowStore creates the delay window store of one watch.
// Redis is preferred since windows are short-lived, then the database, then memory.
func NewDelayWindowStore(db *gorm.DB, rdb *redis.Client, watchID string) usecase.DelayWindowStore {
	switch {
	case rdb != nil:
		return session.NewDelayWindowRedis(rdb, "delay_window:"+watchID)
	case db != nil:
		return adapters.NewDelayWindowStore(db, watchID)
	default:
		return adapters.NewMemoryDelayWindowStore()
	}
}
