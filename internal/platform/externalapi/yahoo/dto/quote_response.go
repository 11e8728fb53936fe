// Package dto defines data transfer objects for the Yahoo Finance API responses.
package dto

import "github.com/shopspring/decimal"

// QuoteResponse represents the JSON response from the v7 quote endpoint.
type QuoteResponse struct {
	QuoteResponse struct {
		Result []Quote `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// Quote is one instrument of a quote response. Prices missing from the
// payload decode as invalid NullDecimals.
type Quote struct {
	Symbol                     string              `json:"symbol"`
	ShortName                  string              `json:"shortName"`
	LongName                   string              `json:"longName"`
	Currency                   string              `json:"currency"`
	MarketState                string              `json:"marketState"`
	ExchangeDataDelayedBy      int                 `json:"exchangeDataDelayedBy"`
	RegularMarketPrice         decimal.NullDecimal `json:"regularMarketPrice"`
	RegularMarketPreviousClose decimal.NullDecimal `json:"regularMarketPreviousClose"`
	RegularMarketOpen          decimal.NullDecimal `json:"regularMarketOpen"`
	RegularMarketDayHigh       decimal.NullDecimal `json:"regularMarketDayHigh"`
	RegularMarketDayLow        decimal.NullDecimal `json:"regularMarketDayLow"`
	FiftyDayAverage            decimal.NullDecimal `json:"fiftyDayAverage"`
	TwoHundredDayAverage       decimal.NullDecimal `json:"twoHundredDayAverage"`
	FiftyTwoWeekHigh           decimal.NullDecimal `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow            decimal.NullDecimal `json:"fiftyTwoWeekLow"`
}
