package usecase

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	market "stock_notifier/internal/domain/entity"
	"stock_notifier/internal/feature/alerts/domain/entity"
)

// SnapshotFetcher fetches a batch of symbols, leaving out the ones that fail.
type SnapshotFetcher interface {
	FetchMany(ctx context.Context, symbols []string) []market.Snapshot
}

// AlertDispatcher evaluates and delivers the alerts of one symbol.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, symbol string, current market.Snapshot, previous *market.Snapshot, now time.Time) ([]entity.Alert, error)
}

// DeliveredAlert is an alert delivered during the current watch.
type DeliveredAlert struct {
	Type        entity.AlertType
	Message     string
	DeliveredAt time.Time
}

// PollStatus summarizes the polls run so far.
type PollStatus struct {
	Polls      int
	LastPollAt time.Time
	Symbols    []string // Symbols observed at least once, sorted
}

// SymbolStatus is the last observation of one symbol.
type SymbolStatus struct {
	Snapshot   market.Snapshot
	ObservedAt time.Time
	Delivered  []DeliveredAlert
}

// BatchPoller fetches all watched symbols and dispatches alerts for each one,
// remembering every symbol's last snapshot for the next poll.
type BatchPoller struct {
	fetcher    SnapshotFetcher
	dispatcher AlertDispatcher
	clock      Clock
	logger     *slog.Logger

	mu         sync.RWMutex
	symbols    map[string]*SymbolStatus
	polls      int
	lastPollAt time.Time
}

// NewBatchPoller creates a poller. A nil clock uses the wall clock and a nil
// logger falls back to slog.Default.
func NewBatchPoller(fetcher SnapshotFetcher, dispatcher AlertDispatcher, clock Clock, logger *slog.Logger) *BatchPoller {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchPoller{
		fetcher:    fetcher,
		dispatcher: dispatcher,
		clock:      clock,
		logger:     logger,
		symbols:    make(map[string]*SymbolStatus),
	}
}

// PollAll runs one poll over symbols. Fetch and dispatch failures are
// contained per symbol: they are logged and the remaining symbols proceed.
// Symbols are dispatched one after another in fetch order.
func (p *BatchPoller) PollAll(ctx context.Context, symbols []string) {
	if len(symbols) == 0 {
		return
	}

	logger := p.logger.With("poll_id", uuid.NewString())
	snapshots := p.fetcher.FetchMany(ctx, symbols)
	logger.Info("poll fetched snapshots", "requested", len(symbols), "fetched", len(snapshots))

	for _, current := range snapshots {
		symbol := market.NormalizeSymbol(current.Symbol)
		previous := p.previous(symbol)
		now := p.clock.Now()

		delivered, err := p.dispatcher.Dispatch(ctx, symbol, current, previous, now)
		if err != nil {
			logger.Error("failed to dispatch alerts", "symbol", symbol, "error", err)
		}
		p.observe(symbol, current, now, delivered)
	}

	p.mu.Lock()
	p.polls++
	p.lastPollAt = p.clock.Now()
	p.mu.Unlock()
}

func (p *BatchPoller) previous(symbol string) *market.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	st, ok := p.symbols[symbol]
	if !ok {
		return nil
	}
	s := st.Snapshot
	return &s
}

func (p *BatchPoller) observe(symbol string, s market.Snapshot, now time.Time, delivered []entity.Alert) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.symbols[symbol]
	if !ok {
		st = &SymbolStatus{}
		p.symbols[symbol] = st
	}
	st.Snapshot = s
	st.ObservedAt = now
	for _, a := range delivered {
		st.Delivered = append(st.Delivered, DeliveredAlert{Type: a.Type(), Message: a.Message(), DeliveredAt: now})
	}
}

// Status returns a summary of the polls run so far.
func (p *BatchPoller) Status() PollStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()

	symbols := make([]string, 0, len(p.symbols))
	for s := range p.symbols {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return PollStatus{Polls: p.polls, LastPollAt: p.lastPollAt, Symbols: symbols}
}

// SymbolStatus returns the last observation of symbol.
func (p *BatchPoller) SymbolStatus(symbol string) (SymbolStatus, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	st, ok := p.symbols[market.NormalizeSymbol(symbol)]
	if !ok {
		return SymbolStatus{}, false
	}
	out := *st
	out.Delivered = append([]DeliveredAlert(nil), st.Delivered...)
	return out, true
}
