package usecase

import (
	"context"

	"stock_notifier/internal/feature/alerts/domain/entity"
)

// DeliveryLedger records which alert types were delivered for each symbol.
// It is append-only: once recorded, a pair stays delivered for the lifetime
// of the ledger.
type DeliveryLedger struct {
	store DeliveryStore
}

// NewDeliveryLedger creates a ledger backed by store.
func NewDeliveryLedger(store DeliveryStore) *DeliveryLedger {
	return &DeliveryLedger{store: store}
}

// AlreadyDelivered reports whether typ was delivered for symbol.
func (l *DeliveryLedger) AlreadyDelivered(ctx context.Context, symbol string, typ entity.AlertType) (bool, error) {
	return l.store.ExistsByType(ctx, symbol, typ)
}

// Record marks typ as delivered for symbol.
func (l *DeliveryLedger) Record(ctx context.Context, symbol string, typ entity.AlertType) error {
	return l.store.Save(ctx, symbol, typ)
}
