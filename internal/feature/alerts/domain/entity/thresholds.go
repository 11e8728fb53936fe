package entity

import "github.com/shopspring/decimal"

// threshold binds a percentage-change magnitude to the factory of its alert.
type threshold struct {
	percent decimal.Decimal
	build   func(symbol string, change decimal.Decimal) Alert
}

// Tables are ordered by descending magnitude so the first match is the
// largest threshold the change satisfies.
var (
	increaseThresholds = []threshold{
		{percent: decimal.NewFromInt(20), build: NewTwentyPercentIncrease},
		{percent: decimal.NewFromInt(15), build: NewFifteenPercentIncrease},
		{percent: decimal.NewFromInt(10), build: NewTenPercentIncrease},
		{percent: decimal.NewFromInt(5), build: NewFivePercentIncrease},
	}
	decreaseThresholds = []threshold{
		{percent: decimal.NewFromInt(-20), build: NewTwentyPercentDecrease},
		{percent: decimal.NewFromInt(-15), build: NewFifteenPercentDecrease},
		{percent: decimal.NewFromInt(-10), build: NewTenPercentDecrease},
		{percent: decimal.NewFromInt(-5), build: NewFivePercentDecrease},
	}
)

// ChangeAlert picks the single percentage-change alert for change, if any.
// Positive changes are matched with >= against the increase table, negative
// changes with <= against the decrease table. Changes strictly inside
// (-5, 5) produce nothing.
func ChangeAlert(symbol string, change decimal.Decimal) (Alert, bool) {
	switch {
	case change.IsPositive():
		for _, th := range increaseThresholds {
			if change.GreaterThanOrEqual(th.percent) {
				return th.build(symbol, change), true
			}
		}
	case change.IsNegative():
		for _, th := range decreaseThresholds {
			if change.LessThanOrEqual(th.percent) {
				return th.build(symbol, change), true
			}
		}
	}
	return Alert{}, false
}
