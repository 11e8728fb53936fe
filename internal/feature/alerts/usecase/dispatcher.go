package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	market "stock_notifier/internal/domain/entity"
	"stock_notifier/internal/feature/alerts/domain/entity"
	"stock_notifier/internal/feature/alerts/domain/rules"
)

// Dispatcher runs the rule evaluator for one symbol and delivers each alert
// type at most once.
type Dispatcher struct {
	tracker *DelayWindowTracker
	ledger  *DeliveryLedger
	sink    MessageSink
	logger  *slog.Logger
}

// NewDispatcher wires the dispatcher. A nil logger falls back to slog.Default.
func NewDispatcher(tracker *DelayWindowTracker, ledger *DeliveryLedger, sink MessageSink, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{tracker: tracker, ledger: ledger, sink: sink, logger: logger}
}

// Dispatch delivers the alerts current warrants for symbol and returns the
// ones that were delivered, in rule order.
//
// A failed send is logged and not recorded, so the alert stays eligible on a
// later poll. A ledger or window store failure stops this symbol's cycle and
// is returned together with whatever was delivered before it.
func (d *Dispatcher) Dispatch(ctx context.Context, symbol string, current market.Snapshot, previous *market.Snapshot, now time.Time) ([]entity.Alert, error) {
	suppress, err := d.tracker.ShouldSuppress(ctx, symbol, current, previous, now)
	if err != nil {
		return nil, err
	}
	if suppress {
		d.logger.Debug("alerts suppressed inside delay window", "symbol", symbol, "delay_minutes", current.PriceDelayInMinutes)
		return nil, nil
	}

	candidates := rules.Evaluate(current, previous)
	delivered := make([]entity.Alert, 0, len(candidates))

	for _, alert := range candidates {
		done, err := d.ledger.AlreadyDelivered(ctx, symbol, alert.Type())
		if err != nil {
			return delivered, fmt.Errorf("check ledger for %s %s: %w", symbol, alert.Type(), err)
		}
		if done {
			continue
		}

		if err := d.sink.Send(ctx, alert.Message()); err != nil {
			d.logger.Warn("failed to deliver alert", "symbol", symbol, "type", alert.Type(), "error", err)
			continue
		}

		if err := d.ledger.Record(ctx, symbol, alert.Type()); err != nil {
			delivered = append(delivered, alert)
			return delivered, fmt.Errorf("record %s %s: %w", symbol, alert.Type(), err)
		}
		delivered = append(delivered, alert)
		d.logger.Info("alert delivered", "symbol", symbol, "type", alert.Type())
	}

	return delivered, nil
}
