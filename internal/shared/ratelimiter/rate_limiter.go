// Package ratelimiter paces outbound API calls.
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiter は、interval あたり limit 回までに呼び出しを制限します。
type RateLimiter struct {
	limiter *rate.Limiter
	limit   int
}

var _ RateLimiterInterface = (*RateLimiter)(nil)

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	every := rate.Every(interval / time.Duration(limit))
	return &RateLimiter{limiter: rate.NewLimiter(every, limit), limit: limit}
}

// Wait は上限に達している場合、次の呼び出しが許可されるまで待機します。
// ctx がキャンセルされた場合はエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit > 0 && rl.limiter.Tokens() < 1 {
		slog.Debug("rate limit reached, waiting", "limit", rl.limit)
	}
	return rl.limiter.Wait(ctx)
}
