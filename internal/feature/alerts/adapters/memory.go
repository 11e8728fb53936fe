package adapters

import (
	"context"
	"sync"
	"time"

	"stock_notifier/internal/feature/alerts/domain/entity"
	"stock_notifier/internal/feature/alerts/usecase"
)

// MemoryDeliveryStore keeps the ledger in process memory. Its contents live
// as long as the process.
type MemoryDeliveryStore struct {
	mu        sync.RWMutex
	delivered map[string]map[entity.AlertType]struct{}
}

var _ usecase.DeliveryStore = (*MemoryDeliveryStore)(nil)

func NewMemoryDeliveryStore() *MemoryDeliveryStore {
	return &MemoryDeliveryStore{delivered: make(map[string]map[entity.AlertType]struct{})}
}

func (s *MemoryDeliveryStore) Save(_ context.Context, symbol string, typ entity.AlertType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	types, ok := s.delivered[symbol]
	if !ok {
		types = make(map[entity.AlertType]struct{})
		s.delivered[symbol] = types
	}
	types[typ] = struct{}{}
	return nil
}

func (s *MemoryDeliveryStore) ExistsByType(_ context.Context, symbol string, typ entity.AlertType) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.delivered[symbol][typ]
	return ok, nil
}

// MemoryDelayWindowStore keeps delay window starts in process memory.
type MemoryDelayWindowStore struct {
	mu      sync.RWMutex
	windows map[string]time.Time
}

var _ usecase.DelayWindowStore = (*MemoryDelayWindowStore)(nil)

func NewMemoryDelayWindowStore() *MemoryDelayWindowStore {
	return &MemoryDelayWindowStore{windows: make(map[string]time.Time)}
}

func (s *MemoryDelayWindowStore) Save(_ context.Context, symbol string, startedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[symbol] = startedAt
	return nil
}

func (s *MemoryDelayWindowStore) Get(_ context.Context, symbol string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.windows[symbol]
	return t, ok, nil
}

func (s *MemoryDelayWindowStore) Delete(_ context.Context, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, symbol)
	return nil
}
