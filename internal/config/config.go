// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIBaseURL     string
	ListenAddr     string
	DBPath         string
	SecretKey      []byte // nil when SEMEFO_SECRET_KEY is unset
	RequestTimeout time.Duration
	RateLimit      float64
	CacheSessions  int
	CookieSecure   bool
	SessionIdle    time.Duration
}

// HasSecretKey reports whether stored tokens are encrypted at rest.
func (c *Config) HasSecretKey() bool {
	return c.SecretKey != nil
}

// Load reads configuration from environment variables and returns a validated Config.
// Variables already set in the environment win over the optional env file
// (SEMEFO_ENV_FILE, default .env).
// Optional variables with defaults: SEMEFO_API_BASE_URL (http://localhost:8000),
// SEMEFO_LISTEN_ADDR (127.0.0.1:3000), SEMEFO_DB_PATH (semefopanel.db),
// SEMEFO_REQUEST_TIMEOUT (30s), SEMEFO_RATE_LIMIT (20, 0 disables),
// SEMEFO_CACHE_SESSIONS (128, 0 disables), SEMEFO_COOKIE_SECURE (false),
// SEMEFO_SESSION_IDLE (168h). SEMEFO_SECRET_KEY is 64 hex characters when set.
func Load() (*Config, error) {
	envFile := ".env"
	if v, ok := os.LookupEnv("SEMEFO_ENV_FILE"); ok {
		envFile = v
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg := &Config{
		APIBaseURL:     "http://localhost:8000",
		ListenAddr:     "127.0.0.1:3000",
		DBPath:         "semefopanel.db",
		RequestTimeout: 30 * time.Second,
		RateLimit:      20,
		CacheSessions:  128,
		SessionIdle:    7 * 24 * time.Hour,
	}

	if v, ok := os.LookupEnv("SEMEFO_API_BASE_URL"); ok {
		u, err := url.Parse(v)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("SEMEFO_API_BASE_URL must be an absolute URL, got %q", v)
		}
		cfg.APIBaseURL = v
	}

	if v, ok := os.LookupEnv("SEMEFO_LISTEN_ADDR"); ok {
		cfg.ListenAddr = v
	}

	if v, ok := os.LookupEnv("SEMEFO_DB_PATH"); ok {
		cfg.DBPath = v
	}

	if v, ok := os.LookupEnv("SEMEFO_SECRET_KEY"); ok && v != "" {
		key, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("SEMEFO_SECRET_KEY is not valid hex: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("SEMEFO_SECRET_KEY must be 64 hex characters (32 bytes), got %d bytes", len(key))
		}
		cfg.SecretKey = key
	}

	if v, ok := os.LookupEnv("SEMEFO_REQUEST_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SEMEFO_REQUEST_TIMEOUT has invalid duration %q: %w", v, err)
		}
		cfg.RequestTimeout = parsed
	}

	if v, ok := os.LookupEnv("SEMEFO_RATE_LIMIT"); ok {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("SEMEFO_RATE_LIMIT must be a non-negative number, got %q", v)
		}
		cfg.RateLimit = parsed
	}

	if v, ok := os.LookupEnv("SEMEFO_CACHE_SESSIONS"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("SEMEFO_CACHE_SESSIONS must be a non-negative integer, got %q", v)
		}
		cfg.CacheSessions = parsed
	}

	if v, ok := os.LookupEnv("SEMEFO_COOKIE_SECURE"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SEMEFO_COOKIE_SECURE has invalid boolean %q: %w", v, err)
		}
		cfg.CookieSecure = parsed
	}

	if v, ok := os.LookupEnv("SEMEFO_SESSION_IDLE"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("SEMEFO_SESSION_IDLE must be a positive duration, got %q", v)
		}
		cfg.SessionIdle = parsed
	}

	return cfg, nil
}
