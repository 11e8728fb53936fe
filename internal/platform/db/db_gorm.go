// Package db opens the gorm connection used by the durable stores.
package db

import (
	"fmt"
	"log/slog"
	"time"

	alertadapters "stock_notifier/internal/feature/alerts/adapters"
	watchentity "stock_notifier/internal/feature/watchlist/domain/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	retryInterval  = 3 * time.Second
	connectTimeout = 60 * time.Second
)

// Config holds the database connection settings.
type Config struct {
	Driver        string // DriverSQLite or DriverPostgres
	SQLitePath    string // File path or ":memory:"
	User          string
	Password      string
	Name          string
	Host          string
	Port          string
	SSLMode       string
	RunMigrations bool
}

// BuildDSN は設定からドライバ用のDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverSQLite {
		if cfg.SQLitePath == "" {
			return "stock_notifier.db"
		}
		return cfg.SQLitePath
	}

	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslmode)
}

// Opener returns the gorm opener for cfg.Driver.
func Opener(cfg Config) (func(dsn string) (*gorm.DB, error), error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	switch cfg.Driver {
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), gcfg) }, nil
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), gcfg) }, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// ConnectWithRetry は接続に成功するか timeout を過ぎるまで opener を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(min(retryInterval, remaining))
	}
}

// Open connects to the configured database and runs migrations when enabled.
func Open(cfg Config) (*gorm.DB, error) {
	opener, err := Opener(cfg)
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), connectTimeout, opener)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite allows a single writer, and :memory: databases are per connection
		sqlDB.SetMaxOpenConns(1)
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}

// Migrate creates or updates the tables of every durable store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&alertadapters.DeliveryModel{},
		&alertadapters.DelayWindowModel{},
		&watchentity.Symbol{},
	)
}
