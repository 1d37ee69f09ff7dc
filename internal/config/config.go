// Package config reads server settings from the environment (and a .env file outside production).
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store kinds selected by TENNIS_STORE_URL.
const (
	StoreREST   = "rest"
	StoreSQLite = "sqlite"
)

// Defaults.
const (
	DefaultAddr         = ":8080"
	DefaultSlowStoreMs  = 200
	DefaultStoreTimeout = 10 * time.Second
)

// ErrMissing is returned when a required variable is unset.
var ErrMissing = errors.New("required environment variable not set")

// Config holds every server setting.
type Config struct {
	Addr         string
	Env          string
	StoreKind    string
	StoreURL     string // base URL for rest
	StorePath    string // file path for sqlite
	StoreKey     string
	StoreTimeout time.Duration
	SlowStore    time.Duration
	CSRFKey      []byte // nil outside production means "generate one"
	ResendKey    string
	ResendFrom   string
	LogLevel     slog.Level
}

// Production reports whether TENNIS_ENV is "production".
func (c Config) Production() bool {
	return c.Env == "production"
}

// Load reads .env (unless TENNIS_ENV=production) and then the environment.
// POST: returns ErrMissing (wrapped) if the store URL or key is unset
func Load() (Config, error) {
	if os.Getenv("TENNIS_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			slog.Debug("config_event", "event", "dotenv_skipped", "error", err.Error())
		} else {
			slog.Info("config_event", "event", "dotenv_loaded")
		}
	}
	return FromLookup(os.Getenv)
}

// FromLookup builds a Config from getenv.
func FromLookup(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Addr:       get("TENNIS_ADDR", DefaultAddr),
		Env:        get("TENNIS_ENV", "development"),
		StoreKey:   get("TENNIS_STORE_KEY", ""),
		ResendKey:  get("TENNIS_RESEND_KEY", ""),
		ResendFrom: get("TENNIS_RESEND_FROM", "Tennis Club <noreply@example.com>"),
	}

	rawURL := get("TENNIS_STORE_URL", "")
	if rawURL == "" {
		return Config{}, fmt.Errorf("TENNIS_STORE_URL: %w", ErrMissing)
	}
	if cfg.StoreKey == "" {
		return Config{}, fmt.Errorf("TENNIS_STORE_KEY: %w", ErrMissing)
	}
	kind, target, err := ParseStoreURL(rawURL)
	if err != nil {
		return Config{}, err
	}
	cfg.StoreKind = kind
	if kind == StoreSQLite {
		cfg.StorePath = target
	} else {
		cfg.StoreURL = target
	}

	slowMs, err := strconv.Atoi(get("TENNIS_SLOW_STORE_MS", strconv.Itoa(DefaultSlowStoreMs)))
	if err != nil || slowMs <= 0 {
		return Config{}, errors.New("TENNIS_SLOW_STORE_MS must be a positive integer")
	}
	cfg.SlowStore = time.Duration(slowMs) * time.Millisecond

	cfg.StoreTimeout = DefaultStoreTimeout
	if raw := get("TENNIS_STORE_TIMEOUT", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, errors.New("TENNIS_STORE_TIMEOUT must be a positive duration like 10s")
		}
		cfg.StoreTimeout = d
	}

	if raw := get("TENNIS_CSRF_KEY", ""); raw != "" {
		key, err := hex.DecodeString(raw)
		if err != nil || len(key) != 32 {
			return Config{}, errors.New("TENNIS_CSRF_KEY must be 64 hex characters")
		}
		cfg.CSRFKey = key
	} else if cfg.Production() {
		return Config{}, fmt.Errorf("TENNIS_CSRF_KEY: %w", ErrMissing)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("TENNIS_LOG_LEVEL", "INFO"))); err != nil {
		return Config{}, fmt.Errorf("TENNIS_LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// ParseStoreURL splits a store URL into its kind and target.
// "http(s)://host" selects the hosted REST store; "sqlite:path" a local database file.
func ParseStoreURL(raw string) (kind, target string, err error) {
	switch {
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return StoreREST, strings.TrimSuffix(raw, "/"), nil
	case strings.HasPrefix(raw, "sqlite:"):
		path := strings.TrimPrefix(raw, "sqlite:")
		if path == "" {
			return "", "", errors.New("TENNIS_STORE_URL: sqlite path is empty")
		}
		return StoreSQLite, path, nil
	default:
		return "", "", fmt.Errorf("TENNIS_STORE_URL: unsupported scheme in %q", raw)
	}
}
