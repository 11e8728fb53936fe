// Package usecase implements the business logic for the watchlist.
package usecase

import (
	"context"
	"errors"
	"fmt"

	market "stock_notifier/internal/domain/entity"
	"stock_notifier/internal/feature/watchlist/domain/entity"
)

var (
	// ErrInvalidCode is returned when a symbol code is empty after normalization.
	ErrInvalidCode = errors.New("symbol code is required")

	// ErrNotWatched is returned when removing a symbol that is not on the watchlist.
	ErrNotWatched = errors.New("symbol is not on the watchlist")
)

// SymbolRepository abstracts the persistence layer for watched symbols.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, s entity.Symbol) error
	Deactivate(ctx context.Context, code string) (bool, error)
}

// WatchlistUsecase provides business logic for the watchlist.
type WatchlistUsecase struct {
	repo SymbolRepository
}

// NewWatchlistUsecase creates a new WatchlistUsecase with the given repository.
func NewWatchlistUsecase(r SymbolRepository) *WatchlistUsecase {
	return &WatchlistUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols from the repository.
func (u *WatchlistUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// Watch adds code to the watchlist or reactivates it.
func (u *WatchlistUsecase) Watch(ctx context.Context, code, name string, sortKey int) (entity.Symbol, error) {
	code = market.NormalizeSymbol(code)
	if code == "" {
		return entity.Symbol{}, ErrInvalidCode
	}
	s := entity.Symbol{Code: code, Name: name, SortKey: sortKey, IsActive: true}
	if err := u.repo.Upsert(ctx, s); err != nil {
		return entity.Symbol{}, fmt.Errorf("watch %s: %w", code, err)
	}
	return s, nil
}

// Unwatch removes code from the watch.
func (u *WatchlistUsecase) Unwatch(ctx context.Context, code string) error {
	code = market.NormalizeSymbol(code)
	if code == "" {
		return ErrInvalidCode
	}
	ok, err := u.repo.Deactivate(ctx, code)
	if err != nil {
		return fmt.Errorf("unwatch %s: %w", code, err)
	}
	if !ok {
		return ErrNotWatched
	}
	return nil
}

// MergeSymbols returns configured followed by the active watchlist codes,
// normalized and without duplicates.
func (u *WatchlistUsecase) MergeSymbols(ctx context.Context, configured []string) ([]string, error) {
	codes, err := u.repo.ListActiveCodes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(configured)+len(codes))
	seen := make(map[string]struct{}, cap(out))
	for _, list := range [][]string{configured, codes} {
		for _, s := range list {
			s = market.NormalizeSymbol(s)
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out, nil
}
