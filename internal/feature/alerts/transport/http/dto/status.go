// Package dto defines the response bodies of the watch status API.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WatchStatus summarizes the running watch.
type WatchStatus struct {
	Polls      int        `json:"polls"`
	LastPollAt *time.Time `json:"last_poll_at,omitempty"`
	Symbols    []string   `json:"symbols"`
}

// SnapshotItem is the last observed market data of a symbol.
// Optional prices are null when the source did not report them.
type SnapshotItem struct {
	Symbol               string              `json:"symbol"`
	Name                 string              `json:"name,omitempty"`
	Currency             string              `json:"currency,omitempty"`
	CurrentPrice         decimal.Decimal     `json:"current_price"`
	PreviousClosePrice   decimal.NullDecimal `json:"previous_close_price"`
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

// DeliveredAlertItem is an alert delivered during the current watch.
type DeliveredAlertItem struct {
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// SymbolStatus is the body of GET /watch/:symbol.
type SymbolStatus struct {
	Snapshot   SnapshotItem         `json:"snapshot"`
	ObservedAt time.Time            `json:"observed_at"`
	Delivered  []DeliveredAlertItem `json:"delivered"`
}
