// Package dto defines data transfer objects for the quotes HTTP API.
package dto

import "github.com/shopspring/decimal"

// QuoteItem is one symbol's current market data.
// Prices are serialized as strings; optional ones are null when unknown.
type QuoteItem struct {
	Symbol               string              `json:"symbol"`
	Name                 string              `json:"name,omitempty"`
	Currency             string              `json:"currency,omitempty"`
	CurrentPrice         decimal.Decimal     `json:"current_price"`
	PreviousClosePrice   decimal.NullDecimal `json:"previous_close_price"`
	ChangePercent        decimal.NullDecimal `json:"change_percent"`
	OpenPrice            decimal.NullDecimal `json:"open_price"`
	DayHigh              decimal.NullDecimal `json:"day_high"`
	DayLow               decimal.NullDecimal `json:"day_low"`
	FiftyDayAverage      decimal.NullDecimal `json:"fifty_day_average"`
	TwoHundredDayAverage decimal.NullDecimal `json:"two_hundred_day_average"`
	FiftyTwoWeekHigh     decimal.NullDecimal `json:"fifty_two_week_high"`
	FiftyTwoWeekLow      decimal.NullDecimal `json:"fifty_two_week_low"`
	MarketState          string              `json:"market_state,omitempty"`
	PriceDelayInMinutes  int                 `json:"price_delay_in_minutes"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
