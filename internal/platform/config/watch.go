package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"stock_notifier/internal/feature/alerts/usecase"
)

// WatchFile is the monitor's watch definition. JSON files are accepted too.
//
//	duration: 390     # minutes
//	repetitions: 0
//	interval: 60      # seconds
//	symbols: [AAPL, MSFT]
type WatchFile struct {
	Duration    int      `yaml:"duration"`
	Repetitions int      `yaml:"repetitions"`
	Interval    int      `yaml:"interval"`
	Symbols     []string `yaml:"symbols"`
}

// LoadWatchFile reads and validates the watch file at path.
func LoadWatchFile(path string) (WatchFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return WatchFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseWatchFile(b)
}

// ParseWatchFile decodes and validates a watch definition.
func ParseWatchFile(b []byte) (WatchFile, error) {
	var w WatchFile
	if err := yaml.Unmarshal(b, &w); err != nil {
		return WatchFile{}, fmt.Errorf("%w: parse watch file: %w", ErrInvalidConfig, err)
	}
	if err := w.Validate(); err != nil {
		return WatchFile{}, err
	}
	return w, nil
}

// Validate checks the loop settings. The symbol list may be empty here when
// the watchlist table supplies the symbols; MonitorConfig validation catches
// an empty final list.
func (w WatchFile) Validate() error {
	switch {
	case w.Interval <= 0:
		return fmt.Errorf("%w: interval must be a positive integer", ErrInvalidConfig)
	case w.Duration < 0:
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidConfig)
	case w.Repetitions < 0:
		return fmt.Errorf("%w: repetitions must not be negative", ErrInvalidConfig)
	case w.Duration == 0 && w.Repetitions == 0:
		return fmt.Errorf("%w: either duration or repetitions must be positive", ErrInvalidConfig)
	}
	return nil
}

// RequireSymbols fails when the file names no symbol. It applies when no
// watchlist table can contribute symbols.
func (w WatchFile) RequireSymbols() error {
	for _, s := range w.Symbols {
		if strings.TrimSpace(s) != "" {
			return nil
		}
	}
	return fmt.Errorf("%w: symbols must be a non-empty list", ErrInvalidConfig)
}

// MonitorConfig converts the file units (minutes, seconds) to durations.
func (w WatchFile) MonitorConfig(symbols []string) usecase.MonitorConfig {
	return usecase.MonitorConfig{
		Symbols:     symbols,
		Interval:    time.Duration(w.Interval) * time.Second,
		Duration:    time.Duration(w.Duration) * time.Minute,
		Repetitions: w.Repetitions,
	}
}
