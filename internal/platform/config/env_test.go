package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_notifier/internal/platform/db"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_GROUP_ID", "MAX_FETCH_WORKERS", "LOG_LEVEL",
		"LOGS_DIRECTORY", "QUOTE_BASE_URL", "QUOTE_TIMEOUT", "QUOTE_RATE_LIMIT",
		"STORE_DRIVER", "SQLITE_PATH", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSLMODE", "RUN_MIGRATIONS", "REDIS_HOST", "REDIS_PORT",
		"REDIS_PASSWORD", "STATUS_ADDR", "HTTP_ADDR", "API_JWT_SECRET",
	} {
		// envconfig は空文字をデフォルト値で置き換えないため、未設定にする
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_GROUP_ID", "-100")

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", env.TelegramBotToken)
	assert.Equal(t, 4, env.MaxFetchWorkers)
	assert.Equal(t, "info", env.LogLevel)
	assert.Equal(t, 10*time.Second, env.QuoteTimeout)
	assert.Equal(t, StoreMemory, env.StoreDriver)
	assert.False(t, env.UsesDatabase())
	assert.Equal(t, ":8080", env.HTTPAddr)
}

func TestLoadEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_FETCH_WORKERS", "8")
	t.Setenv("QUOTE_TIMEOUT", "3s")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "notifier")
	t.Setenv("REDIS_HOST", "cache")

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, 8, env.MaxFetchWorkers)
	assert.Equal(t, 3*time.Second, env.Quote().Timeout)
	assert.True(t, env.UsesDatabase())

	dbc := env.DB()
	assert.Equal(t, db.DriverPostgres, dbc.Driver)
	assert.Equal(t, "db", dbc.Host)
	assert.Equal(t, "5432", dbc.Port)
	assert.Equal(t, "notifier", dbc.Name)
	assert.Equal(t, "cache:6379", env.Redis().Addr())
}

func TestLoadEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"not an integer", "MAX_FETCH_WORKERS", "many"},
		{"zero workers", "MAX_FETCH_WORKERS", "0"},
		{"negative rate", "QUOTE_RATE_LIMIT", "-1"},
		{"unknown driver", "STORE_DRIVER", "mongo"},
		{"unknown level", "LOG_LEVEL", "trace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := LoadEnv()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}
