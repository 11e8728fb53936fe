// Package yahoo provides a client for the Yahoo Finance quote API.
package yahoo

import "time"

// DefaultBaseURL is the public Yahoo Finance query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL   string        // Base URL for the API (e.g., "https://query1.finance.yahoo.com")
	Timeout   time.Duration // HTTP request timeout
	UserAgent string        // Sent on every request; the API rejects empty agents
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (compatible; stock-notifier)"
	}
	return c
}
