package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/soliveira/tradetalk/internal/config"
	"github.com/soliveira/tradetalk/internal/engine"
	"github.com/soliveira/tradetalk/internal/handler"
	"github.com/soliveira/tradetalk/internal/quote"
	"github.com/soliveira/tradetalk/internal/service"
	"github.com/soliveira/tradetalk/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Instantiate stores.
	portfolioStore := store.NewPortfolioStore()
	holdingStore := store.NewHoldingStore()
	transactionStore := store.NewTransactionStore()
	webhookStore := store.NewWebhookStore()

	// Quote provider: live EODHD when a token is configured, otherwise the
	// in-memory provider for local development.
	var quotes quote.Provider
	if cfg.EODHDAPIToken != "" {
		quotes = quote.NewEODHDClient(cfg.EODHDBaseURL, cfg.EODHDAPIToken, cfg.QuoteTimeout)
		logger.Info("using EODHD quote provider", slog.String("base_url", cfg.EODHDBaseURL))
	} else {
		quotes = quote.NewStaticProvider()
		logger.Warn("EODHD_API_TOKEN not set, using static quote provider")
	}

	// Engine.
	executor := engine.NewExecutor(quotes, holdingStore, transactionStore, portfolioStore, engine.NewLockManager())

	// Services (webhook first — it is the trade service's notifier).
	webhookSvc := service.NewWebhookService(webhookStore, portfolioStore, cfg.WebhookTimeout)
	tradeSvc := service.NewTradeService(executor, portfolioStore, webhookSvc)
	portfolioSvc := service.NewPortfolioService(portfolioStore, holdingStore, transactionStore)
	quoteSvc := service.NewQuoteService(quotes)

	// Session store for pending confirmations.
	sessions := service.NewSessionStore(cfg.ConfirmationTTL, cfg.SweepInterval)
	chatSvc := service.NewChatService(sessions, portfolioStore, quotes, tradeSvc, cfg.PinMaxAttempts)

	// Router.
	router := handler.NewRouter(portfolioSvc, chatSvc, quoteSvc, webhookSvc, logger)

	// Start the confirmation sweeper with a cancellable context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessions.Start(ctx)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop HTTP server, cancel context (stops the sweeper).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}
