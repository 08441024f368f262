package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the trading assistant.
type Config struct {
	Port            int
	LogLevel        string
	QuoteTimeout    time.Duration
	ConfirmationTTL time.Duration
	PinMaxAttempts  int
	SweepInterval   time.Duration
	WebhookTimeout  time.Duration
	EODHDAPIToken   string
	EODHDBaseURL    string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	quoteTimeout, err := getDuration("QUOTE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid QUOTE_TIMEOUT: %w", err)
	}

	confirmationTTL, err := getDuration("CONFIRMATION_TTL", 2*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid CONFIRMATION_TTL: %w", err)
	}

	pinMaxAttempts, err := getInt("PIN_MAX_ATTEMPTS", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid PIN_MAX_ATTEMPTS: %w", err)
	}
	if pinMaxAttempts < 1 {
		return nil, fmt.Errorf("invalid PIN_MAX_ATTEMPTS: must be >= 1, got %d", pinMaxAttempts)
	}

	sweepInterval, err := getDuration("SWEEP_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
	}

	webhookTimeout, err := getDuration("WEBHOOK_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WEBHOOK_TIMEOUT: %w", err)
	}

	readTimeout, err := getDuration("READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := getDuration("WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := getDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Port:            port,
		LogLevel:        logLevel,
		QuoteTimeout:    quoteTimeout,
		ConfirmationTTL: confirmationTTL,
		PinMaxAttempts:  pinMaxAttempts,
		SweepInterval:   sweepInterval,
		WebhookTimeout:  webhookTimeout,
		EODHDAPIToken:   getStr("EODHD_API_TOKEN", ""),
		EODHDBaseURL:    getStr("EODHD_BASE_URL", "https://eodhd.com"),
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		IdleTimeout:     idleTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
