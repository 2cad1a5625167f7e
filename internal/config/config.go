// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from CAMPUS_*
// environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"CAMPUS_DB_PATH" envDefault:"./data/campus.db"`
	SessionSecret string `env:"CAMPUS_SESSION_SECRET,required"`
	ServerHost    string `env:"CAMPUS_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"CAMPUS_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"CAMPUS_ENV" envDefault:"development"`

	// SiteURL is the canonical public URL used in the sitemap and robots.txt.
	SiteURL string `env:"CAMPUS_SITE_URL" envDefault:"http://localhost:8080"`

	LogLevel   string `env:"CAMPUS_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"CAMPUS_UPLOADS_DIR" envDefault:"./uploads"`

	// AllowedHosts restricts the Host header in production. Empty means
	// any host is accepted.
	AllowedHosts []string `env:"CAMPUS_ALLOWED_HOSTS" envSeparator:","`

	// Cache configuration
	RedisURL     string `env:"CAMPUS_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"CAMPUS_CACHE_PREFIX" envDefault:"campus:"` // Redis key prefix
	CacheTTL     int    `env:"CAMPUS_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"CAMPUS_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Link checker configuration
	LinkCheckTimeout int `env:"CAMPUS_LINK_CHECK_TIMEOUT" envDefault:"10"` // Per-request timeout in seconds

	// Seeding configuration
	DoSeed bool `env:"CAMPUS_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("CAMPUS_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("CAMPUS_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("CAMPUS_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
