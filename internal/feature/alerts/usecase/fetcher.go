package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	market "stock_notifier/internal/domain/entity"
)

// BatchFetcher fetches many symbols through a PriceSource with a bounded
// number of requests in flight.
type BatchFetcher struct {
	source  PriceSource
	workers int
	logger  *slog.Logger
}

// NewBatchFetcher creates a fetcher running at most workers fetches at once.
// Non-positive worker counts are raised to 1.
func NewBatchFetcher(source PriceSource, workers int, logger *slog.Logger) *BatchFetcher {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchFetcher{source: source, workers: workers, logger: logger}
}

// FetchMany returns the snapshots of every symbol that could be fetched, in
// input order. Failed symbols are logged and left out; the batch itself never
// fails.
func (f *BatchFetcher) FetchMany(ctx context.Context, symbols []string) []market.Snapshot {
	if len(symbols) == 0 {
		return nil
	}

	results := make([]*market.Snapshot, len(symbols))

	var g errgroup.Group
	g.SetLimit(min(f.workers, len(symbols)))
	for i, symbol := range symbols {
		g.Go(func() error {
			s, err := f.source.FetchOne(ctx, symbol)
			if err != nil {
				// 1つの銘柄でエラーが発生しても他の銘柄の取得は続ける
				f.logger.Warn("failed to fetch snapshot", "symbol", symbol, "error", err)
				return nil
			}
			results[i] = &s
			return nil
		})
	}
	_ = g.Wait()

	out := make([]market.Snapshot, 0, len(symbols))
	for _, s := range results {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}
