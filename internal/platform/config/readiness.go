package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"stock_notifier/internal/feature/alerts/usecase"
)

const (
	readyTag    = "[READY]"
	notReadyTag = "[NOT READY]"

	readinessWarning = "Fix the errors above and restart the app for changes to take effect."

	// TestMessage is sent through the sink to prove the credentials work.
	TestMessage = "Hello!\nThis is a test message."
)

// Messenger sends a batch of free-form messages.
type Messenger interface {
	SendAll(ctx context.Context, messages []string) usecase.SendResult
}

// Readiness checks whether the process is configured well enough to watch.
// It inspects the same parsed Env that a watch would run with.
type Readiness struct {
	env       Env
	parseErr  error
	messenger Messenger
}

// NewReadiness creates the check from the result of ParseEnv. A nil messenger
// means the sink could not be built, which is reported as not ready.
func NewReadiness(env Env, parseErr error, messenger Messenger) *Readiness {
	return &Readiness{env: env, parseErr: parseErr, messenger: messenger}
}

// Check runs every check and returns the report and whether all passed.
func (r *Readiness) Check(ctx context.Context) (string, bool) {
	envLine, envOK := r.checkEnv()
	tgLine, tgOK := r.checkTelegram(ctx)

	lines := []string{envLine, tgLine}
	ready := envOK && tgOK
	if !ready {
		lines = append(lines, "", readinessWarning)
	}
	return strings.Join(lines, "\n"), ready
}

func (r *Readiness) checkEnv() (string, bool) {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, "  - "+fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(r.env.TelegramBotToken) == "" {
		add("TELEGRAM_BOT_TOKEN is missing or empty")
	}
	if strings.TrimSpace(r.env.TelegramGroupID) == "" {
		add("TELEGRAM_GROUP_ID is missing or empty")
	}

	var pe *envconfig.ParseError
	switch {
	case errors.As(r.parseErr, &pe):
		add("%s is not a valid %s", pe.KeyName, typeLabel(pe.TypeName))
	case r.parseErr != nil:
		add("%s", strings.TrimPrefix(r.parseErr.Error(), ErrInvalidConfig.Error()+": "))
	default:
		// 変換に成功した場合のみ値の範囲を検証する
		if err := r.env.Validate(); err != nil {
			add("%s", strings.TrimPrefix(err.Error(), ErrInvalidConfig.Error()+": "))
		}
	}

	if dir := r.env.LogsDirectory; dir != "" {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			add("LOGS_DIRECTORY is not a valid directory: %s", dir)
		}
	}

	if len(problems) > 0 {
		return notReadyTag + " Environment variables\n" + strings.Join(problems, "\n"), false
	}
	return readyTag + " Environment variables", true
}

func (r *Readiness) checkTelegram(ctx context.Context) (string, bool) {
	if r.messenger == nil {
		return notReadyTag + " Telegram notifications", false
	}
	res := r.messenger.SendAll(ctx, []string{TestMessage})
	if res.Successful > 0 && res.Failed == 0 {
		return readyTag + " Telegram notifications", true
	}
	return notReadyTag + " Telegram notifications", false
}

func typeLabel(typeName string) string {
	if strings.HasPrefix(typeName, "int") {
		return "integer"
	}
	if i := strings.LastIndex(typeName, "."); i >= 0 {
		typeName = typeName[i+1:]
	}
	return strings.ToLower(typeName)
}
