// Package session keeps per-symbol market session state in Redis.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock_notifier/internal/feature/alerts/usecase"

	"github.com/redis/go-redis/v9"
)

// windowTTL bounds how long an abandoned window survives. Reporting delays
// are minutes long, so a day is plenty.
const windowTTL = 24 * time.Hour

// DelayWindowRedis implements usecase.DelayWindowStore using Redis.
type DelayWindowRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.DelayWindowStore = (*DelayWindowRedis)(nil)

// NewDelayWindowRedis creates a new DelayWindowRedis instance.
// If prefix is empty, it uses "delay_window".
func NewDelayWindowRedis(client *redis.Client, prefix string) *DelayWindowRedis {
	if prefix == "" {
		prefix = "delay_window"
	}
	return &DelayWindowRedis{
		client: client,
		prefix: prefix,
	}
}

// windowKey returns the Redis key for a symbol's window.
func (r *DelayWindowRedis) windowKey(symbol string) string {
	return fmt.Sprintf("%s:%s", r.prefix, symbol)
}

// Save opens or restarts the window of symbol.
func (r *DelayWindowRedis) Save(ctx context.Context, symbol string, startedAt time.Time) error {
	return r.client.Set(ctx, r.windowKey(symbol), startedAt.UTC().Format(time.RFC3339Nano), windowTTL).Err()
}

// Get retrieves the start of symbol's window.
func (r *DelayWindowRedis) Get(ctx context.Context, symbol string) (time.Time, bool, error) {
	raw, err := r.client.Get(ctx, r.windowKey(symbol)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}

	startedAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse delay window of %s: %w", symbol, err)
	}
	return startedAt, true, nil
}

// Delete closes the window of symbol.
func (r *DelayWindowRedis) Delete(ctx context.Context, symbol string) error {
	return r.client.Del(ctx, r.windowKey(symbol)).Err()
}
