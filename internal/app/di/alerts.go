package di

import (
	"log/slog"

	"github.com/google/uuid"

	"stock_notifier/internal/feature/alerts/usecase"
)

// NewPoller wires the fetch, decide and deliver pipeline of one watch.
// Every call starts a new watch: ledger and delay windows begin empty even
// when the durable stores already hold rows of earlier watches.
func NewPoller(source usecase.PriceSource, workers int, infra *Infra, sink usecase.MessageSink, logger *slog.Logger) *usecase.BatchPoller {
	watchID := uuid.NewString()
	logger = logger.With("watch_id", watchID)

	tracker := usecase.NewDelayWindowTracker(NewDelayWindowStore(infra.DB, infra.Redis, watchID))
	ledger := usecase.NewDeliveryLedger(NewDeliveryStore(infra.DB, infra.Redis, watchID))
	dispatcher := usecase.NewDispatcher(tracker, ledger, sink, logger)
	fetcher := usecase.NewBatchFetcher(source, workers, logger)
	return usecase.NewBatchPoller(fetcher, dispatcher, nil, logger)
}
