// Package config resolves the service configuration from the environment
// once at startup. The resulting struct is immutable and passed explicitly;
// there are no package-level singletons.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Telegram
	BotToken      string `env:"TELEGRAM_BOT_TOKEN,required,notEmpty"`
	WebhookSecret string `env:"WEBHOOK_SECRET_TOKEN,required,notEmpty"`

	// Classifier
	GeminiAPIKey    string `env:"GEMINI_API_KEY,required,notEmpty"`
	GeminiBaseURL   string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	Model           string `env:"MODERATION_MODEL" envDefault:"gemma-3-27b-it"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	FallbackModel   string `env:"FALLBACK_MODEL" envDefault:"claude-3-5-haiku-latest"`

	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Outbound call deadlines. One stuck external call must not hold a
	// request slot indefinitely.
	ClassifyTimeout time.Duration `env:"CLASSIFY_TIMEOUT" envDefault:"30s"`
	DownloadTimeout time.Duration `env:"DOWNLOAD_TIMEOUT" envDefault:"10s"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Port)
	}
	return cfg, nil
}
