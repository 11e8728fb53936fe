// Package usecase はその場での株価照会を実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	market "stock_notifier/internal/domain/entity"
)

// MaxSymbols は一度に照会できる銘柄数の上限です。
const MaxSymbols = 50

// ErrInvalidSymbol は銘柄コードが空、または上限を超えた場合に返されます。
var ErrInvalidSymbol = errors.New("invalid symbol")

// PriceSource は1銘柄の現在値を取得します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceSource interface {
	FetchOne(ctx context.Context, symbol string) (market.Snapshot, error)
}

// BatchFetcher は複数銘柄をまとめて取得し、失敗した銘柄は結果から除きます。
type BatchFetcher interface {
	FetchMany(ctx context.Context, symbols []string) []market.Snapshot
}

type quotesUsecase struct {
	source  PriceSource
	fetcher BatchFetcher
}

// NewQuotesUsecase は quotesUsecase の新しいインスタンスを生成します。
func NewQuotesUsecase(source PriceSource, fetcher BatchFetcher) *quotesUsecase {
	return &quotesUsecase{source: source, fetcher: fetcher}
}

// GetQuote は1銘柄のスナップショットを返します。
// 未知の銘柄は domain.ErrSymbolNotFound をそのまま返します。
func (u *quotesUsecase) GetQuote(ctx context.Context, symbol string) (market.Snapshot, error) {
	s := market.NormalizeSymbol(symbol)
	if s == "" {
		return market.Snapshot{}, fmt.Errorf("%w: empty symbol", ErrInvalidSymbol)
	}
	return u.source.FetchOne(ctx, s)
}

// GetQuotes は複数銘柄のスナップショットを入力順で返します。
// 重複は除き、取得できなかった銘柄は結果に含めません。
func (u *quotesUsecase) GetQuotes(ctx context.Context, symbols []string) ([]market.Snapshot, error) {
	seen := make(map[string]struct{}, len(symbols))
	normalized := make([]string, 0, len(symbols))
	for _, raw := range symbols {
		s := market.NormalizeSymbol(raw)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		normalized = append(normalized, s)
	}

	switch {
	case len(normalized) == 0:
		return nil, fmt.Errorf("%w: no symbols given", ErrInvalidSymbol)
	case len(normalized) > MaxSymbols:
		return nil, fmt.Errorf("%w: at most %d symbols per request", ErrInvalidSymbol, MaxSymbols)
	}

	return u.fetcher.FetchMany(ctx, normalized), nil
}
