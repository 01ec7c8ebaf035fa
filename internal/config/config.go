// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// TokenSecret is the master secret the tag-signing key is derived from. Required. Never logged.
	TokenSecret string `mapstructure:"TOKEN_SECRET"`
	// TelegramBotToken is the Bot API token used to reach the approver. Required. Never logged.
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	// TelegramBaseURL is the Bot API base URL (default https://api.telegram.org). Override for tests/proxies.
	TelegramBaseURL string `mapstructure:"TELEGRAM_API_BASE_URL"`
	// TelegramAdminID is the Telegram user ID of the single trusted approver. Required.
	TelegramAdminID int64 `mapstructure:"TELEGRAM_ADMIN_ID"`
	// TelegramChatID is the chat approval requests are sent to. Defaults to TelegramAdminID.
	TelegramChatID int64 `mapstructure:"TELEGRAM_CHAT_ID"`
	// WebhookSecret, when set, must match the X-Telegram-Bot-Api-Secret-Token header on webhook calls.
	WebhookSecret string `mapstructure:"WEBHOOK_SECRET"`
	// SessionTTL is the lifetime of pending sessions and unconsumed decisions (e.g. "10m").
	SessionTTL string `mapstructure:"SESSION_TTL"`
	// ReapInterval is how often the reaper sweeps expired entries (e.g. "5m").
	ReapInterval string `mapstructure:"REAP_INTERVAL"`
	// OTLPEndpoint is the OTLP gRPC endpoint for traces/metrics (e.g. http://localhost:4317). Empty disables export.
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP even for https endpoints (standard OTEL_EXPORTER_OTLP_INSECURE behavior).
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("TOKEN_SECRET", "")
	v.SetDefault("TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("TELEGRAM_API_BASE_URL", "https://api.telegram.org")
	v.SetDefault("TELEGRAM_ADMIN_ID", 0)
	v.SetDefault("TELEGRAM_CHAT_ID", 0)
	v.SetDefault("WEBHOOK_SECRET", "")
	v.SetDefault("SESSION_TTL", "10m")
	v.SetDefault("REAP_INTERVAL", "5m")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.TokenSecret == "" {
		return nil, errors.New("config: TOKEN_SECRET must be set")
	}
	if cfg.TelegramBotToken == "" {
		return nil, errors.New("config: TELEGRAM_BOT_TOKEN must be set")
	}
	if cfg.TelegramAdminID == 0 {
		return nil, errors.New("config: TELEGRAM_ADMIN_ID must be set")
	}
	if cfg.TelegramChatID == 0 {
		cfg.TelegramChatID = cfg.TelegramAdminID
	}

	return &cfg, nil
}

// SessionTTLDuration parses SessionTTL as a time.Duration. Returns 10m if unset or invalid.
func (c *Config) SessionTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}

// ReapIntervalDuration parses ReapInterval as a time.Duration. Returns 5m if unset or invalid.
func (c *Config) ReapIntervalDuration() time.Duration {
	d, err := time.ParseDuration(c.ReapInterval)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}
