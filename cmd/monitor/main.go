// Command monitor watches a list of symbols and sends alerts to Telegram.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stock_notifier/internal/app/di"
	"stock_notifier/internal/app/router"
	alertshandler "stock_notifier/internal/feature/alerts/transport/handler"
	"stock_notifier/internal/feature/alerts/usecase"
	watchlistadapters "stock_notifier/internal/feature/watchlist/adapters"
	watchlistusecase "stock_notifier/internal/feature/watchlist/usecase"
	"stock_notifier/internal/platform/config"
	infrahandler "stock_notifier/internal/platform/http/handler"
	"stock_notifier/internal/platform/logger"
)

// messageList collects repeated -send flags.
type messageList []string

func (m *messageList) String() string { return strings.Join(*m, ", ") }

func (m *messageList) Set(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("message must not be empty")
	}
	*m = append(*m, v)
	return nil
}

func main() {
	configPath := flag.String("config", "watch.yaml", "path to the watch file (YAML or JSON)")
	debug := flag.Bool("debug", false, "log at debug level")
	check := flag.Bool("check", false, "check readiness and exit")
	var messages messageList
	flag.Var(&messages, "send", "send a message to the Telegram group and exit (repeatable)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *check:
		os.Exit(runCheck(ctx))
	case len(messages) > 0:
		os.Exit(runSend(ctx, messages))
	}
	os.Exit(run(ctx, *configPath, *debug))
}

func runCheck(ctx context.Context) int {
	env, parseErr := config.ParseEnv()

	var messenger config.Messenger
	sender, err := di.NewSender(env.Telegram())
	if err != nil {
		slog.Warn("telegram unavailable", "error", err)
	} else {
		messenger = usecase.NewMessageUsecase(sender)
	}

	report, ready := config.NewReadiness(env, parseErr, messenger).Check(ctx)
	fmt.Println(report)
	if !ready {
		return 1
	}
	return 0
}

func runSend(ctx context.Context, messages []string) int {
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load environment", "error", err)
		return 1
	}
	sender, err := di.NewSender(env.Telegram())
	if err != nil {
		slog.Error("failed to set up telegram", "error", err)
		return 1
	}

	res := usecase.NewMessageUsecase(sender).SendAll(ctx, messages)
	fmt.Println(sendSummary(res))
	if res.Failed > 0 {
		return 1
	}
	return 0
}

func sendSummary(res usecase.SendResult) string {
	return fmt.Sprintf("Messages sent: %d successful, %d failed", res.Successful, res.Failed)
}

func run(ctx context.Context, configPath string, debug bool) int {
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load environment", "error", err)
		return 1
	}
	level := env.LogLevel
	if debug {
		level = "debug"
	}
	log, closeLog, err := logger.New(level, env.LogsDirectory, time.Now())
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		return 1
	}
	defer closeLog.Close()
	slog.SetDefault(log)

	// 設定の検証はネットワーク接続より前に済ませる
	watch, err := config.LoadWatchFile(configPath)
	if err != nil {
		log.Error("failed to load watch file", "path", configPath, "error", err)
		return 1
	}
	if !env.UsesDatabase() {
		if err := watch.RequireSymbols(); err != nil {
			log.Error("invalid watch file", "path", configPath, "error", err)
			return 1
		}
	}

	infra, err := di.OpenInfra(ctx, env, log)
	if err != nil {
		log.Error("failed to connect backing services", "error", err)
		return 1
	}
	defer func() {
		if err := infra.Close(); err != nil {
			log.Error("failed to close connections", "error", err)
		}
	}()

	symbols := watch.Symbols
	if infra.DB != nil {
		wl := watchlistusecase.NewWatchlistUsecase(watchlistadapters.NewSymbolRepository(infra.DB))
		merged, err := wl.MergeSymbols(ctx, watch.Symbols)
		if err != nil {
			log.Warn("failed to read watchlist, using the watch file only", "error", err)
		} else {
			symbols = merged
		}
	}
	cfg := watch.MonitorConfig(symbols)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid watch settings", "error", err)
		return 1
	}

	sender, err := di.NewSender(env.Telegram())
	if err != nil {
		log.Error("failed to set up telegram", "error", err)
		return 1
	}

	poller := di.NewPoller(di.NewMarket(env), env.MaxFetchWorkers, infra, sender, log)
	monitor, err := usecase.NewMonitor(poller, cfg, nil, log)
	if err != nil {
		log.Error("invalid watch settings", "error", err)
		return 1
	}

	if env.StatusAddr != "" {
		srv := &http.Server{
			Addr: env.StatusAddr,
			Handler: router.NewRouter(router.Handlers{
				Health: infrahandler.Health(infra.HealthChecks()...),
				Status: alertshandler.NewStatusHandler(poller),
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("status server stopped", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info("status server listening", "addr", env.StatusAddr)
	}

	monitor.Run(ctx)
	return 0
}
