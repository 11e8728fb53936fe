package usecase

import (
	"context"
	"fmt"
	"time"

	market "stock_notifier/internal/domain/entity"
)

// DelayWindowTracker suppresses alerts while an instrument is inside the
// reporting-delay window that follows a session transition. Exchanges can
// publish the transition before the price fields catch up.
type DelayWindowTracker struct {
	store DelayWindowStore
}

// NewDelayWindowTracker creates a tracker that keeps window starts in store.
func NewDelayWindowTracker(store DelayWindowStore) *DelayWindowTracker {
	return &DelayWindowTracker{store: store}
}

// ShouldSuppress decides whether alerts computed for current must be dropped,
// updating the symbol's window as a side effect:
//   - no delay on the snapshot: never suppress, any open window is cleared
//   - transition into OPEN or POST observed: open a window at now and suppress
//   - open window younger than the delay: suppress
//   - open window as old as the delay or older: clear it and let alerts flow
func (t *DelayWindowTracker) ShouldSuppress(ctx context.Context, symbol string, current market.Snapshot, previous *market.Snapshot, now time.Time) (bool, error) {
	if !current.HasDelay() {
		if err := t.store.Delete(ctx, symbol); err != nil {
			return false, fmt.Errorf("clear delay window for %s: %w", symbol, err)
		}
		return false, nil
	}

	if isDelayRelevantTransition(current, previous) {
		if err := t.store.Save(ctx, symbol, now); err != nil {
			return false, fmt.Errorf("open delay window for %s: %w", symbol, err)
		}
		return true, nil
	}

	startedAt, ok, err := t.store.Get(ctx, symbol)
	if err != nil {
		return false, fmt.Errorf("load delay window for %s: %w", symbol, err)
	}
	if !ok {
		return false, nil
	}

	delay := time.Duration(current.PriceDelayInMinutes) * time.Minute
	if now.Sub(startedAt) < delay {
		return true, nil
	}
	if err := t.store.Delete(ctx, symbol); err != nil {
		return false, fmt.Errorf("clear delay window for %s: %w", symbol, err)
	}
	return false, nil
}

func isDelayRelevantTransition(current market.Snapshot, previous *market.Snapshot) bool {
	if previous == nil || previous.MarketState == current.MarketState {
		return false
	}
	return current.MarketState == market.MarketStateOpen || current.MarketState == market.MarketStatePost
}
