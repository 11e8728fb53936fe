package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	market "stock_notifier/internal/domain/entity"
	"stock_notifier/internal/feature/alerts/domain/entity"
)

var ErrStore = errors.New("store error")

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func p(s string) decimal.NullDecimal { return market.Price(d(s)) }

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(dur time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(dur)
}

// windowStore is a map-backed DelayWindowStore with optional failure hooks.
type windowStore struct {
	windows map[string]time.Time
	getErr  error
	saveErr error
	delErr  error
}

func newWindowStore() *windowStore {
	return &windowStore{windows: make(map[string]time.Time)}
}

func (s *windowStore) Save(ctx context.Context, symbol string, startedAt time.Time) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.windows[symbol] = startedAt
	return nil
}

func (s *windowStore) Get(ctx context.Context, symbol string) (time.Time, bool, error) {
	if s.getErr != nil {
		return time.Time{}, false, s.getErr
	}
	t, ok := s.windows[symbol]
	return t, ok, nil
}

func (s *windowStore) Delete(ctx context.Context, symbol string) error {
	if s.delErr != nil {
		return s.delErr
	}
	delete(s.windows, symbol)
	return nil
}

// deliveryStore is a map-backed DeliveryStore with optional failure hooks.
type deliveryStore struct {
	delivered map[string]map[entity.AlertType]bool
	existsErr error
	saveErr   error
	saves     int
}

func newDeliveryStore() *deliveryStore {
	return &deliveryStore{delivered: make(map[string]map[entity.AlertType]bool)}
}

func (s *deliveryStore) Save(ctx context.Context, symbol string, typ entity.AlertType) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	if s.delivered[symbol] == nil {
		s.delivered[symbol] = make(map[entity.AlertType]bool)
	}
	s.delivered[symbol][typ] = true
	return nil
}

func (s *deliveryStore) ExistsByType(ctx context.Context, symbol string, typ entity.AlertType) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.delivered[symbol][typ], nil
}

// mockSink records sent messages. SendFunc overrides the default success.
type mockSink struct {
	mu       sync.Mutex
	SendFunc func(ctx context.Context, text string) error
	Sent     []string
}

func (m *mockSink) Send(ctx context.Context, text string) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, text); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, text)
	return nil
}

// mockPriceSource serves snapshots from FetchOneFunc.
type mockPriceSource struct {
	FetchOneFunc func(ctx context.Context, symbol string) (market.Snapshot, error)
}

func (m *mockPriceSource) FetchOne(ctx context.Context, symbol string) (market.Snapshot, error) {
	return m.FetchOneFunc(ctx, symbol)
}

// mockFetcher returns Snapshots and records requested symbols.
type mockFetcher struct {
	FetchManyFunc func(ctx context.Context, symbols []string) []market.Snapshot
	Calls         [][]string
}

func (m *mockFetcher) FetchMany(ctx context.Context, symbols []string) []market.Snapshot {
	m.Calls = append(m.Calls, symbols)
	if m.FetchManyFunc != nil {
		return m.FetchManyFunc(ctx, symbols)
	}
	return nil
}

// mockDispatcher records dispatch calls.
type mockDispatcher struct {
	DispatchFunc func(ctx context.Context, symbol string, current market.Snapshot, previous *market.Snapshot, now time.Time) ([]entity.Alert, error)
	Calls        []dispatchCall
}

type dispatchCall struct {
	Symbol   string
	Current  market.Snapshot
	Previous *market.Snapshot
}

func (m *mockDispatcher) Dispatch(ctx context.Context, symbol string, current market.Snapshot, previous *market.Snapshot, now time.Time) ([]entity.Alert, error) {
	m.Calls = append(m.Calls, dispatchCall{Symbol: symbol, Current: current, Previous: previous})
	if m.DispatchFunc != nil {
		return m.DispatchFunc(ctx, symbol, current, previous, now)
	}
	return nil, nil
}
