// Package entity defines the market data models shared across features.
package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MarketState is the exchange session phase reported with a snapshot.
// The zero value means the source did not report a state.
type MarketState string

const (
	MarketStateOpen   MarketState = "OPEN"
	MarketStatePre    MarketState = "PRE"
	MarketStatePost   MarketState = "POST"
	MarketStateClosed MarketState = "CLOSED"
)

var hundred = decimal.NewFromInt(100)

// Snapshot is one instrument's market data observed at one poll.
// CurrentPrice is always present. Optional prices use decimal.NullDecimal so
// that a missing value is never mistaken for zero.
type Snapshot struct {
	Symbol       string          // Upper-cased ticker (e.g., "AAPL")
	CurrentPrice decimal.Decimal // Last traded price

	Name     string // Long or short company name, empty when unknown
	Currency string // ISO currency code, empty when unknown

	PreviousClosePrice   decimal.NullDecimal
	OpenPrice            decimal.NullDecimal
	DayHigh              decimal.NullDecimal
	DayLow               decimal.NullDecimal
	FiftyDayAverage      decimal.NullDecimal
	TwoHundredDayAverage decimal.NullDecimal
	FiftyTwoWeekHigh     decimal.NullDecimal
	FiftyTwoWeekLow      decimal.NullDecimal

	MarketState MarketState

	// PriceDelayInMinutes is the exchange reporting lag. Zero means no delay.
	PriceDelayInMinutes int
}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Price wraps a present decimal value as a NullDecimal.
func Price(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// HasDelay reports whether the exchange publishes prices with a lag.
func (s Snapshot) HasDelay() bool {
	return s.PriceDelayInMinutes > 0
}

// ChangeFromPreviousClose returns the percentage change of price relative to
// the previous close. ok is false when the previous close is absent or zero.
func (s Snapshot) ChangeFromPreviousClose(price decimal.Decimal) (pct decimal.Decimal, ok bool) {
	return PercentChange(price, s.PreviousClosePrice)
}

// PercentChange computes (value - base) / base * 100.
// ok is false when base is absent or zero.
func PercentChange(value decimal.Decimal, base decimal.NullDecimal) (decimal.Decimal, bool) {
	if !base.Valid || base.Decimal.IsZero() {
		return decimal.Decimal{}, false
	}
	return value.Sub(base.Decimal).Div(base.Decimal).Mul(hundred), true
}
