// Package usecase implements the alert decision and delivery engine: the delay
// window tracker, the delivery ledger, the dispatcher and the batch poller.
package usecase

import (
	"context"
	"time"

	market "stock_notifier/internal/domain/entity"
	"stock_notifier/internal/feature/alerts/domain/entity"
)

// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).

// PriceSource looks up the current snapshot of a single symbol.
// Implementations return domain.ErrSymbolNotFound for unknown symbols.
type PriceSource interface {
	FetchOne(ctx context.Context, symbol string) (market.Snapshot, error)
}

// MessageSink delivers a rendered alert message. A non-nil error means the
// message was not delivered.
type MessageSink interface {
	Send(ctx context.Context, text string) error
}

// DeliveryStore persists which alert types were delivered per symbol.
type DeliveryStore interface {
	Save(ctx context.Context, symbol string, typ entity.AlertType) error
	ExistsByType(ctx context.Context, symbol string, typ entity.AlertType) (bool, error)
}

// DelayWindowStore persists the start of a symbol's reporting-delay window.
type DelayWindowStore interface {
	Save(ctx context.Context, symbol string, startedAt time.Time) error
	// Get reports ok=false when the symbol has no open window.
	Get(ctx context.Context, symbol string) (startedAt time.Time, ok bool, err error)
	Delete(ctx context.Context, symbol string) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
