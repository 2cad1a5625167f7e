// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "CAMPUS_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/campus.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/campus.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LinkCheckTimeout != 10 {
		t.Errorf("LinkCheckTimeout = %d, want 10", cfg.LinkCheckTimeout)
	}
	if len(cfg.AllowedHosts) != 0 {
		t.Errorf("AllowedHosts = %v, want empty", cfg.AllowedHosts)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	customSecret := "custom-secret-key-32-bytes-long!"
	setEnv(t, "CAMPUS_SESSION_SECRET", customSecret)
	setEnv(t, "CAMPUS_DB_PATH", "/custom/path.db")
	setEnv(t, "CAMPUS_SERVER_HOST", "0.0.0.0")
	setEnv(t, "CAMPUS_SERVER_PORT", "3000")
	setEnv(t, "CAMPUS_ENV", "production")
	setEnv(t, "CAMPUS_LOG_LEVEL", "debug")
	setEnv(t, "CAMPUS_ALLOWED_HOSTS", "example.edu,www.example.edu")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SessionSecret != customSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, customSecret)
	}
	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3000)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want %q", cfg.Env, "production")
	}
	if len(cfg.AllowedHosts) != 2 || cfg.AllowedHosts[0] != "example.edu" {
		t.Errorf("AllowedHosts = %v, want [example.edu www.example.edu]", cfg.AllowedHosts)
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when CAMPUS_SESSION_SECRET is not set")
	}
}

func TestLoad_SessionSecretTooShort(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"short", "short"},
		{"31_bytes", "1234567890123456789012345678901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "CAMPUS_SESSION_SECRET", tt.secret)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() should fail with %d-byte secret", len(tt.secret))
			}
		})
	}
}

func TestLoad_SessionSecretMinimumLength(t *testing.T) {
	os.Clearenv()
	secret32 := "12345678901234567890123456789012"
	setEnv(t, "CAMPUS_SESSION_SECRET", secret32)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should succeed with 32-byte secret: %v", err)
	}
	if cfg.SessionSecret != secret32 {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, secret32)
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := Config{Env: tt.env}
			if got := cfg.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_ServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"localhost", 8080, "localhost:8080"},
		{"0.0.0.0", 3000, "0.0.0.0:3000"},
		{"127.0.0.1", 443, "127.0.0.1:443"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := Config{ServerHost: tt.host, ServerPort: tt.port}
			if got := cfg.ServerAddr(); got != tt.want {
				t.Errorf("ServerAddr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_UseRedisCache(t *testing.T) {
	if (Config{}).UseRedisCache() {
		t.Error("UseRedisCache() = true with no Redis URL")
	}
	if !(Config{RedisURL: "redis://localhost:6379"}).UseRedisCache() {
		t.Error("UseRedisCache() = false with Redis URL set")
	}
}
