// Package entity defines the alert model of the alerts feature.
//
// Alert values can only be produced by the factory functions in this package.
// Each factory is bound to exactly one AlertType, which keeps ad-hoc alert
// types out of the delivery pipeline.
package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AlertType identifies the condition an alert reports. Two alerts are the same
// for deduplication purposes when their types are equal.
type AlertType string

const (
	RegularMarketOpen      AlertType = "REGULAR_MARKET_OPEN"
	RegularMarketClosed    AlertType = "REGULAR_MARKET_CLOSED"
	CloseToSMA50           AlertType = "CLOSE_TO_SMA50"
	CloseToSMA200          AlertType = "CLOSE_TO_SMA200"
	SMA50Crossed           AlertType = "SMA50_CROSSED"
	SMA200Crossed          AlertType = "SMA200_CROSSED"
	FivePercentIncrease    AlertType = "FIVE_PERCENT_INCREASE"
	TenPercentIncrease     AlertType = "TEN_PERCENT_INCREASE"
	FifteenPercentIncrease AlertType = "FIFTEEN_PERCENT_INCREASE"
	TwentyPercentIncrease  AlertType = "TWENTY_PERCENT_INCREASE"
	FivePercentDecrease    AlertType = "FIVE_PERCENT_DECREASE"
	TenPercentDecrease     AlertType = "TEN_PERCENT_DECREASE"
	FifteenPercentDecrease AlertType = "FIFTEEN_PERCENT_DECREASE"
	TwentyPercentDecrease  AlertType = "TWENTY_PERCENT_DECREASE"
	New52WeekHigh          AlertType = "NEW_52_WEEK_HIGH"
	New52WeekLow           AlertType = "NEW_52_WEEK_LOW"
)

var knownTypes = map[AlertType]struct{}{
	RegularMarketOpen:      {},
	RegularMarketClosed:    {},
	CloseToSMA50:           {},
	CloseToSMA200:          {},
	SMA50Crossed:           {},
	SMA200Crossed:          {},
	FivePercentIncrease:    {},
	TenPercentIncrease:     {},
	FifteenPercentIncrease: {},
	TwentyPercentIncrease:  {},
	FivePercentDecrease:    {},
	TenPercentDecrease:     {},
	FifteenPercentDecrease: {},
	TwentyPercentDecrease:  {},
	New52WeekHigh:          {},
	New52WeekLow:           {},
}

// Valid reports whether t is a member of the closed set of alert types.
func (t AlertType) Valid() bool {
	_, ok := knownTypes[t]
	return ok
}

// Direction tells on which side of a moving average the price ended up.
type Direction int

const (
	Above Direction = iota + 1
	Below
)

func (d Direction) String() string {
	if d == Above {
		return "above"
	}
	return "below"
}

// Alert is an immutable, typed, pre-rendered message.
type Alert struct {
	typ     AlertType
	message string
}

func newAlert(typ AlertType, message string) Alert {
	if !typ.Valid() {
		panic(fmt.Sprintf("entity: unknown alert type %q", typ))
	}
	return Alert{typ: typ, message: message}
}

// Type returns the alert type.
func (a Alert) Type() AlertType { return a.typ }

// Message returns the rendered message text.
func (a Alert) Message() string { return a.message }

// Equals reports whether both alerts have the same type. Message text is ignored.
func (a Alert) Equals(other Alert) bool { return a.typ == other.typ }

// IsZero reports whether a was declared without a factory.
func (a Alert) IsZero() bool { return a.typ == "" }

func (a Alert) String() string { return string(a.typ) + ": " + a.message }

// NewRegularMarketOpen reports that the regular session opened.
// change is the move of price against the previous close, when known.
func NewRegularMarketOpen(symbol string, price decimal.Decimal, change decimal.NullDecimal) Alert {
	msg := fmt.Sprintf("%s market is open. Open price: %s", symbol, price)
	if change.Valid {
		msg += fmt.Sprintf(" (%s from last close)", formatPercent(change.Decimal))
	}
	return newAlert(RegularMarketOpen, msg)
}

// NewRegularMarketClosed reports that the regular session closed.
func NewRegularMarketClosed(symbol string, price decimal.Decimal, change decimal.NullDecimal) Alert {
	msg := fmt.Sprintf("%s market is closed. Close price: %s", symbol, price)
	if change.Valid {
		msg += fmt.Sprintf(" (%s on the day)", formatPercent(change.Decimal))
	}
	return newAlert(RegularMarketClosed, msg)
}

// NewCloseToFiftyDayAverage reports that the price trades near the 50-day average.
func NewCloseToFiftyDayAverage(symbol string, price, average, distance decimal.Decimal) Alert {
	return newAlert(CloseToSMA50, closeToAverageMessage(symbol, "50", price, average, distance))
}

// NewCloseToTwoHundredDayAverage reports that the price trades near the 200-day average.
func NewCloseToTwoHundredDayAverage(symbol string, price, average, distance decimal.Decimal) Alert {
	return newAlert(CloseToSMA200, closeToAverageMessage(symbol, "200", price, average, distance))
}

// NewFiftyDayAverageCrossed reports a crossing of the 50-day average.
func NewFiftyDayAverageCrossed(symbol string, price, average decimal.Decimal, dir Direction) Alert {
	return newAlert(SMA50Crossed, crossedMessage(symbol, "50", price, average, dir))
}

// NewTwoHundredDayAverageCrossed reports a crossing of the 200-day average.
func NewTwoHundredDayAverageCrossed(symbol string, price, average decimal.Decimal, dir Direction) Alert {
	return newAlert(SMA200Crossed, crossedMessage(symbol, "200", price, average, dir))
}

func NewFivePercentIncrease(symbol string, change decimal.Decimal) Alert {
	return newAlert(FivePercentIncrease, changeMessage(symbol, "up", 5, change))
}

func NewTenPercentIncrease(symbol string, change decimal.Decimal) Alert {
	return newAlert(TenPercentIncrease, changeMessage(symbol, "up", 10, change))
}

func NewFifteenPercentIncrease(symbol string, change decimal.Decimal) Alert {
	return newAlert(FifteenPercentIncrease, changeMessage(symbol, "up", 15, change))
}

func NewTwentyPercentIncrease(symbol string, change decimal.Decimal) Alert {
	return newAlert(TwentyPercentIncrease, changeMessage(symbol, "up", 20, change))
}

func NewFivePercentDecrease(symbol string, change decimal.Decimal) Alert {
	return newAlert(FivePercentDecrease, changeMessage(symbol, "down", 5, change))
}

func NewTenPercentDecrease(symbol string, change decimal.Decimal) Alert {
	return newAlert(TenPercentDecrease, changeMessage(symbol, "down", 10, change))
}

func NewFifteenPercentDecrease(symbol string, change decimal.Decimal) Alert {
	return newAlert(FifteenPercentDecrease, changeMessage(symbol, "down", 15, change))
}

func NewTwentyPercentDecrease(symbol string, change decimal.Decimal) Alert {
	return newAlert(TwentyPercentDecrease, changeMessage(symbol, "down", 20, change))
}

// NewNew52WeekHigh reports a price above the previously known 52-week high.
func NewNew52WeekHigh(symbol string, price, previousHigh decimal.Decimal) Alert {
	msg := fmt.Sprintf("%s hit a new 52-week high: %s (previous high %s)", symbol, price, previousHigh)
	return newAlert(New52WeekHigh, msg)
}

// NewNew52WeekLow reports a price below the previously known 52-week low.
func NewNew52WeekLow(symbol string, price, previousLow decimal.Decimal) Alert {
	msg := fmt.Sprintf("%s hit a new 52-week low: %s (previous low %s)", symbol, price, previousLow)
	return newAlert(New52WeekLow, msg)
}

func closeToAverageMessage(symbol, days string, price, average, distance decimal.Decimal) string {
	return fmt.Sprintf("%s is close to the %s-day moving average (%s): %s away. Current price: %s",
		symbol, days, average, formatPercent(distance), price)
}

func crossedMessage(symbol, days string, price, average decimal.Decimal, dir Direction) string {
	return fmt.Sprintf("%s crossed %s the %s-day moving average (%s). Current price: %s",
		symbol, dir, days, average, price)
}

func changeMessage(symbol, way string, threshold int, change decimal.Decimal) string {
	return fmt.Sprintf("%s is %s more than %d%% from last close: %s", symbol, way, threshold, formatPercent(change))
}

// formatPercent renders a signed percentage with two decimals, e.g. "+5.25%".
func formatPercent(pct decimal.Decimal) string {
	s := pct.StringFixed(2)
	if pct.IsPositive() {
		s = "+" + s
	}
	return s + "%"
}
