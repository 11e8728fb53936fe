// Package domain defines errors shared by the features that read market data.
package domain

import "errors"

// Price source errors. Callers treat both as a per-symbol failure.
var (
	// ErrSymbolNotFound indicates that the price source does not know the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrIncompleteQuote indicates that the symbol was found but no current price is available.
	ErrIncompleteQuote = errors.New("quote has no current price")
)
