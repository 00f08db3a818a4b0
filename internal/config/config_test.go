// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	// Defaults target postgres, which requires a DSN at validation time.
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = ":memory:"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"negative timeout", func(c *Config) { c.Server.Timeout = -time.Second }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = "postgres"; c.Database.DSN = "" }},
		{"zero default limit", func(c *Config) { c.API.DefaultLimit = 0 }},
		{"max below default limit", func(c *Config) { c.API.DefaultLimit = 50; c.API.MaxLimit = 10 }},
		{"zero rate limit", func(c *Config) { c.API.RateLimitReqs = 0 }},
		{"zero rate window", func(c *Config) { c.API.RateLimitWindow = 0 }},
		{"zero request timeout", func(c *Config) { c.Recommend.RequestTimeout = 0 }},
		{"cache enabled zero ttl", func(c *Config) { c.Recommend.CacheEnabled = true; c.Recommend.CacheTTL = 0 }},
		{"cache enabled zero max items", func(c *Config) { c.Recommend.CacheEnabled = true; c.Recommend.CacheMaxItems = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Database.Driver = "sqlite"
			cfg.Database.DSN = ":memory:"
			tt.mutate(cfg)

			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"SHUTTLE_SERVER_PORT", "server.port"},
		{"SHUTTLE_DATABASE_DSN", "database.dsn"},
		{"SHUTTLE_DATABASE_SEED_MOCK_DATA", "database.seed_mock_data"},
		{"SHUTTLE_API_RATE_LIMIT_REQS", "api.rate_limit_reqs"},
		{"SHUTTLE_RECOMMEND_CACHE_TTL", "recommend.cache_ttl"},
		{"SHUTTLE_LOGGING_LEVEL", "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransform(tt.env); got != tt.want {
				t.Errorf("envTransform(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yamlBody := []byte("server:\n  port: 9000\ndatabase:\n  driver: sqlite\n  dsn: \":memory:\"\n")
	if err := os.WriteFile(configPath, yamlBody, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("SHUTTLE_SERVER_PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Env beats file, file beats defaults.
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want env override 9100", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want file value sqlite", cfg.Database.Driver)
	}
	if cfg.API.DefaultLimit != 8 {
		t.Errorf("API.DefaultLimit = %d, want default 8", cfg.API.DefaultLimit)
	}
}
