package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	market "stock_notifier/internal/domain/entity"
)

// Poller runs one poll over a list of symbols.
type Poller interface {
	PollAll(ctx context.Context, symbols []string)
}

// MonitorConfig controls the poll loop. The watch ends after Repetitions
// polls or once Duration has elapsed, whichever comes first; a zero value
// disables that limit.
type MonitorConfig struct {
	Symbols     []string
	Interval    time.Duration
	Duration    time.Duration
	Repetitions int
}

// Validate normalizes the symbol list and checks the loop settings.
func (c *MonitorConfig) Validate() error {
	symbols := make([]string, 0, len(c.Symbols))
	seen := make(map[string]struct{}, len(c.Symbols))
	for _, s := range c.Symbols {
		s = market.NormalizeSymbol(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		symbols = append(symbols, s)
	}

	switch {
	case len(symbols) == 0:
		return fmt.Errorf("%w: symbols must be a non-empty list", ErrInvalidMonitorConfig)
	case c.Interval <= 0:
		return fmt.Errorf("%w: interval must be positive", ErrInvalidMonitorConfig)
	case c.Duration < 0 || c.Repetitions < 0:
		return fmt.Errorf("%w: duration and repetitions must not be negative", ErrInvalidMonitorConfig)
	case c.Duration == 0 && c.Repetitions == 0:
		return fmt.Errorf("%w: either duration or repetitions must be positive", ErrInvalidMonitorConfig)
	}
	c.Symbols = symbols
	return nil
}

// Monitor drives repeated polls until its limits are reached or its context
// is cancelled. Cancellation is observed between polls only.
type Monitor struct {
	poller Poller
	cfg    MonitorConfig
	clock  Clock
	logger *slog.Logger
	after  func(time.Duration) <-chan time.Time
}

// NewMonitor validates cfg and creates the loop.
func NewMonitor(poller Poller, cfg MonitorConfig, clock Clock, logger *slog.Logger) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{poller: poller, cfg: cfg, clock: clock, logger: logger, after: time.After}, nil
}

// Run polls until done. It returns the number of polls performed.
func (m *Monitor) Run(ctx context.Context) int {
	m.logger.Info("monitor started",
		"symbols", m.cfg.Symbols,
		"interval", m.cfg.Interval.String(),
		"duration", m.cfg.Duration.String(),
		"repetitions", m.cfg.Repetitions)

	start := m.clock.Now()
	polls := 0
	for ctx.Err() == nil {
		// In-flight fetches finish or time out on their own.
		m.poller.PollAll(context.WithoutCancel(ctx), m.cfg.Symbols)
		polls++

		if m.cfg.Repetitions > 0 && polls >= m.cfg.Repetitions {
			break
		}
		if m.cfg.Duration > 0 && m.clock.Now().Sub(start) >= m.cfg.Duration {
			break
		}

		select {
		case <-ctx.Done():
		case <-m.after(m.cfg.Interval):
		}
	}

	m.logger.Info("monitor finished", "polls", polls, "symbols", len(m.cfg.Symbols), "stopped", ctx.Err() != nil)
	return polls
}
