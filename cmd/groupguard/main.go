package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sentinelbot/groupguard/pkg/config"
	"github.com/sentinelbot/groupguard/pkg/logger"
	"github.com/sentinelbot/groupguard/pkg/moderation"
	"github.com/sentinelbot/groupguard/pkg/providers"
	"github.com/sentinelbot/groupguard/pkg/telegram"
	"github.com/sentinelbot/groupguard/pkg/webhook"
)

func main() {
	// Best effort: production deploys configure the environment directly.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.ErrorCF("main", "Configuration error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	bot, err := telegram.New(cfg.BotToken)
	if err != nil {
		logger.ErrorCF("main", "Telegram bot init failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	var classifier moderation.Classifier = providers.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.Model)
	if cfg.AnthropicAPIKey != "" {
		classifier = providers.NewFallbackProvider(
			classifier,
			providers.NewClaudeProvider(cfg.AnthropicAPIKey, cfg.FallbackModel),
		)
		logger.InfoCF("main", "Fallback classifier enabled", map[string]interface{}{"model": cfg.FallbackModel})
	}

	handler := webhook.NewHandler(cfg.WebhookSecret, bot, classifier, cfg.ClassifyTimeout, cfg.DownloadTimeout)
	server := webhook.NewServer(cfg.Port, handler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	logger.InfoCF("main", "Moderation bot started", map[string]interface{}{
		"port":  cfg.Port,
		"model": cfg.Model,
	})

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.ErrorCF("main", "Shutdown error", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil {
			logger.ErrorCF("main", "Server error", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
	}
}
