// Package rules turns two consecutive snapshots of an instrument into the
// alerts that the newer one warrants.
package rules

import (
	"github.com/shopspring/decimal"

	market "stock_notifier/internal/domain/entity"
	"stock_notifier/internal/feature/alerts/domain/entity"
)

// closeToAverageBand is the inclusive distance, in percent, within which a
// price counts as close to a moving average.
var closeToAverageBand = decimal.NewFromInt(5)

// Evaluate returns the alerts for current given the snapshot of the previous
// poll, which may be nil. It performs no I/O and never mutates its inputs.
//
// Alerts come back in a fixed order: market open/closed, close to SMA50,
// SMA50 crossed, close to SMA200, SMA200 crossed, percentage change,
// new 52-week high, new 52-week low.
func Evaluate(current market.Snapshot, previous *market.Snapshot) []entity.Alert {
	switch current.MarketState {
	case market.MarketStateOpen:
		return evaluateOpen(current, previous)
	case market.MarketStatePost:
		change, ok := current.ChangeFromPreviousClose(current.CurrentPrice)
		return []entity.Alert{
			entity.NewRegularMarketClosed(current.Symbol, current.CurrentPrice, nullable(change, ok)),
		}
	default:
		return nil
	}
}

func evaluateOpen(current market.Snapshot, previous *market.Snapshot) []entity.Alert {
	symbol := current.Symbol
	alerts := make([]entity.Alert, 0, 8)

	openPrice := current.CurrentPrice
	if current.OpenPrice.Valid {
		openPrice = current.OpenPrice.Decimal
	}
	change, ok := current.ChangeFromPreviousClose(openPrice)
	alerts = append(alerts, entity.NewRegularMarketOpen(symbol, openPrice, nullable(change, ok)))

	if a, ok := closeToAverage(current, current.FiftyDayAverage, entity.NewCloseToFiftyDayAverage); ok {
		alerts = append(alerts, a)
	}
	if a, ok := crossedAverage(current, current.FiftyDayAverage, entity.NewFiftyDayAverageCrossed); ok {
		alerts = append(alerts, a)
	}
	if a, ok := closeToAverage(current, current.TwoHundredDayAverage, entity.NewCloseToTwoHundredDayAverage); ok {
		alerts = append(alerts, a)
	}
	if a, ok := crossedAverage(current, current.TwoHundredDayAverage, entity.NewTwoHundredDayAverageCrossed); ok {
		alerts = append(alerts, a)
	}

	if change, ok := current.ChangeFromPreviousClose(current.CurrentPrice); ok {
		if a, ok := entity.ChangeAlert(symbol, change); ok {
			alerts = append(alerts, a)
		}
	}

	if previous != nil {
		if high := previous.FiftyTwoWeekHigh; high.Valid && current.CurrentPrice.GreaterThan(high.Decimal) {
			alerts = append(alerts, entity.NewNew52WeekHigh(symbol, current.CurrentPrice, high.Decimal))
		}
		if low := previous.FiftyTwoWeekLow; low.Valid && current.CurrentPrice.LessThan(low.Decimal) {
			alerts = append(alerts, entity.NewNew52WeekLow(symbol, current.CurrentPrice, low.Decimal))
		}
	}

	return alerts
}

// closeToAverage fires when the previous close and the current price sit
// strictly on the same side of the average and the current price is within
// the band around it.
func closeToAverage(
	s market.Snapshot,
	average decimal.NullDecimal,
	build func(symbol string, price, average, distance decimal.Decimal) entity.Alert,
) (entity.Alert, bool) {
	if !average.Valid || !s.PreviousClosePrice.Valid {
		return entity.Alert{}, false
	}
	prev, cur, avg := s.PreviousClosePrice.Decimal, s.CurrentPrice, average.Decimal

	bothAbove := prev.GreaterThan(avg) && cur.GreaterThan(avg)
	bothBelow := prev.LessThan(avg) && cur.LessThan(avg)
	if !bothAbove && !bothBelow {
		return entity.Alert{}, false
	}

	distance, ok := market.PercentChange(cur, average)
	if !ok || distance.Abs().GreaterThan(closeToAverageBand) {
		return entity.Alert{}, false
	}
	return build(s.Symbol, cur, avg, distance), true
}

// crossedAverage fires when the previous close and the current price straddle
// the average, counting a current price equal to the average as crossed.
// A previous close equal to the average is not a crossing.
func crossedAverage(
	s market.Snapshot,
	average decimal.NullDecimal,
	build func(symbol string, price, average decimal.Decimal, dir entity.Direction) entity.Alert,
) (entity.Alert, bool) {
	if !average.Valid || !s.PreviousClosePrice.Valid {
		return entity.Alert{}, false
	}
	prev, cur, avg := s.PreviousClosePrice.Decimal, s.CurrentPrice, average.Decimal

	switch {
	case prev.LessThan(avg) && avg.LessThanOrEqual(cur):
		return build(s.Symbol, cur, avg, entity.Above), true
	case prev.GreaterThan(avg) && avg.GreaterThanOrEqual(cur):
		return build(s.Symbol, cur, avg, entity.Below), true
	}
	return entity.Alert{}, false
}

func nullable(d decimal.Decimal, ok bool) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: ok}
}
