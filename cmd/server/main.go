// Command server serves the quote and watchlist HTTP API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock_notifier/internal/app/di"
	"stock_notifier/internal/app/router"
	"stock_notifier/internal/feature/alerts/usecase"
	quoteshandler "stock_notifier/internal/feature/quotes/transport/handler"
	quotesusecase "stock_notifier/internal/feature/quotes/usecase"
	watchlistadapters "stock_notifier/internal/feature/watchlist/adapters"
	watchlisthandler "stock_notifier/internal/feature/watchlist/transport/handler"
	watchlistusecase "stock_notifier/internal/feature/watchlist/usecase"
	"stock_notifier/internal/platform/config"
	infrahandler "stock_notifier/internal/platform/http/handler"
	jwtmw "stock_notifier/internal/platform/jwt"
	"stock_notifier/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load environment", "error", err)
		os.Exit(1)
	}
	log, closeLog, err := logger.New(env.LogLevel, env.LogsDirectory, time.Now())
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer closeLog.Close()
	slog.SetDefault(log)

	infra, err := di.OpenInfra(ctx, env, log)
	if err != nil {
		log.Error("failed to connect backing services", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := infra.Close(); err != nil {
			log.Error("failed to close connections", "error", err)
		}
	}()

	// Usecase
	market := di.NewMarket(env)
	quotesUC := quotesusecase.NewQuotesUsecase(market, usecase.NewBatchFetcher(market, env.MaxFetchWorkers, log))

	// Handler
	handlers := router.Handlers{
		Health: infrahandler.Health(infra.HealthChecks()...),
		Quotes: quoteshandler.NewQuotesHandler(quotesUC),
	}
	if infra.DB != nil {
		watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistadapters.NewSymbolRepository(infra.DB))
		handlers.Watchlist = watchlisthandler.NewWatchlistHandler(watchlistUC)
		if env.APIJWTSecret != "" {
			handlers.WriteAuth = jwtmw.AuthRequired(env.APIJWTSecret)
		} else {
			log.Warn("API_JWT_SECRET is not set, watchlist writes are unauthenticated")
		}
	} else {
		log.Warn("no database configured, watchlist API disabled")
	}

	srv := &http.Server{
		Addr:              env.HTTPAddr,
		Handler:           router.NewRouter(handlers),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("server listening", "addr", env.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
	}
}
