// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"stock_notifier/internal/platform/config"
	"stock_notifier/internal/platform/externalapi/yahoo"
	infrahttp "stock_notifier/internal/platform/http"
	"stock_notifier/internal/platform/telegram"
	"stock_notifier/internal/shared/ratelimiter"
)

// sendTimeout bounds a single Telegram API call.
const sendTimeout = 15 * time.Second

// NewMarket creates a fully configured YahooMarket with HTTP client and rate limiter.
// The connection pool matches the number of fetch workers.
func NewMarket(env config.Env) *yahoo.YahooMarket {
	httpClient := infrahttp.NewHTTPClient(env.QuoteTimeout, env.MaxFetchWorkers)
	limiter := ratelimiter.NewRateLimiter(env.QuoteRateLimit, time.Minute)
	return yahoo.NewYahooMarket(env.Quote(), httpClient, limiter)
}

// NewSender authenticates the Telegram bot.
func NewSender(cfg telegram.Config) (*telegram.Sender, error) {
	return telegram.NewSender(cfg, infrahttp.NewHTTPClient(sendTimeout, 0))
}
