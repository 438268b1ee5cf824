package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"finbot/internal/backend"
	"finbot/internal/bot"
	"finbot/internal/config"
	applog "finbot/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.ComponentWebhook, slog.LevelInfo)
	applog.SetDefault(logger)

	logger.Info("Starting finbot-webhook")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.TelegramToken == "" {
		logger.Error("TELEGRAM_BOT_TOKEN is required")
		os.Exit(1)
	}
	if cfg.WebhookURL == "" {
		logger.Error("WEBHOOK_URL is required in webhook mode")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := backend.Open(ctx, cfg, logger.WithComponent(applog.ComponentLedger).Logger)
	if err != nil {
		logger.Error("Failed to initialize ledger store", "error", err, "backend", cfg.LedgerBackend)
		os.Exit(1)
	}
	defer store.Close()

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Error("Failed to initialize Telegram API", "error", err)
		os.Exit(1)
	}

	wh, err := tgbotapi.NewWebhook(cfg.WebhookURL + "/webhook")
	if err != nil {
		logger.Error("Failed to build webhook config", "error", err)
		os.Exit(1)
	}
	if _, err := api.Request(wh); err != nil {
		logger.Error("Failed to register webhook", "error", err, "url", cfg.WebhookURL)
		os.Exit(1)
	}
	logger.Info("Webhook registered", "url", cfg.WebhookURL+"/webhook")

	updates := api.ListenForWebhook("/webhook")
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	b := bot.New(api, store, cfg.Location(), logger.WithComponent(applog.ComponentBot).Logger)
	go func() {
		if err := b.ProcessUpdates(ctx, updates); err != nil && err != context.Canceled {
			logger.Error("Update processing stopped", "error", err)
			cancel()
		}
	}()

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting webhook server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Webhook server stopped gracefully")
}
