// Package config loads the process configuration: environment variables
// (optionally from a .env file) and the watch file of the monitor.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"stock_notifier/internal/platform/db"
	"stock_notifier/internal/platform/externalapi/yahoo"
	"stock_notifier/internal/platform/redis"
	"stock_notifier/internal/platform/telegram"
)

const StoreMemory = "memory"

// Env はシステム全体の環境変数設定です
type Env struct {
	// Telegram
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramGroupID  string `envconfig:"TELEGRAM_GROUP_ID"`

	// Fetching
	MaxFetchWorkers int           `envconfig:"MAX_FETCH_WORKERS" default:"4"`
	QuoteBaseURL    string        `envconfig:"QUOTE_BASE_URL"`
	QuoteTimeout    time.Duration `envconfig:"QUOTE_TIMEOUT" default:"10s"`
	QuoteRateLimit  int           `envconfig:"QUOTE_RATE_LIMIT" default:"120"` // requests per minute, 0 disables

	// Logging
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogsDirectory string `envconfig:"LOGS_DIRECTORY"`

	// Stores
	StoreDriver   string `envconfig:"STORE_DRIVER" default:"memory"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"stock_notifier.db"`
	DBHost        string `envconfig:"DB_HOST"`
	DBPort        string `envconfig:"DB_PORT" default:"5432"`
	DBUser        string `envconfig:"DB_USER"`
	DBPassword    string `envconfig:"DB_PASSWORD"`
	DBName        string `envconfig:"DB_NAME"`
	DBSSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"true"`
	RedisHost     string `envconfig:"REDIS_HOST"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	// HTTP
	StatusAddr   string `envconfig:"STATUS_ADDR"`
	HTTPAddr     string `envconfig:"HTTP_ADDR" default:":8080"`
	APIJWTSecret string `envconfig:"API_JWT_SECRET"` // guards watchlist writes; empty leaves them open
}

// ParseEnv は環境変数から設定を読み込みますが、検証はしません。
// 値の変換に失敗した場合は *envconfig.ParseError を包んだエラーと、
// それまでに読み込めた値を返します。
func ParseEnv() (Env, error) {
	// .env が存在しない場合もあるため、エラーは無視する
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return env, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return env, nil
}

// LoadEnv は環境変数から設定を読み込み、検証して返します
func LoadEnv() (Env, error) {
	env, err := ParseEnv()
	if err != nil {
		return Env{}, err
	}
	if err := env.Validate(); err != nil {
		return Env{}, err
	}
	return env, nil
}

// Validate checks the values that have no safe fallback.
func (e Env) Validate() error {
	if e.MaxFetchWorkers <= 0 {
		return fmt.Errorf("%w: MAX_FETCH_WORKERS must be a positive integer", ErrInvalidConfig)
	}
	if e.QuoteRateLimit < 0 {
		return fmt.Errorf("%w: QUOTE_RATE_LIMIT must not be negative", ErrInvalidConfig)
	}
	switch strings.ToLower(e.StoreDriver) {
	case StoreMemory, db.DriverSQLite, db.DriverPostgres:
	default:
		return fmt.Errorf("%w: STORE_DRIVER must be one of memory, sqlite, postgres", ErrInvalidConfig)
	}
	switch strings.ToLower(e.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: LOG_LEVEL must be one of debug, info, warn, error", ErrInvalidConfig)
	}
	return nil
}

// UsesDatabase reports whether the durable stores are backed by SQL.
func (e Env) UsesDatabase() bool {
	return strings.ToLower(e.StoreDriver) != StoreMemory
}

func (e Env) DB() db.Config {
	return db.Config{
		Driver:        strings.ToLower(e.StoreDriver),
		SQLitePath:    e.SQLitePath,
		User:          e.DBUser,
		Password:      e.DBPassword,
		Name:          e.DBName,
		Host:          e.DBHost,
		Port:          e.DBPort,
		SSLMode:       e.DBSSLMode,
		RunMigrations: e.RunMigrations,
	}
}

func (e Env) Redis() redis.Config {
	return redis.Config{Host: e.RedisHost, Port: e.RedisPort, Password: e.RedisPassword}
}

func (e Env) Telegram() telegram.Config {
	return telegram.Config{BotToken: e.TelegramBotToken, GroupID: e.TelegramGroupID}
}

func (e Env) Quote() yahoo.Config {
	return yahoo.Config{BaseURL: e.QuoteBaseURL, Timeout: e.QuoteTimeout}
}
