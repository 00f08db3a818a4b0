// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

// Package config provides layered configuration loading for ShuttleHub
// using Koanf v2: built-in defaults, optional YAML file, environment
// variable overrides (highest priority).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig holds relational database settings.
// Driver is "postgres" for production or "sqlite" for development and
// tests. SeedMockData loads the deterministic catalog fixture on start,
// which is only useful with a throwaway sqlite database.
type DatabaseConfig struct {
	Driver       string `koanf:"driver"`
	DSN          string `koanf:"dsn"`
	SeedMockData bool   `koanf:"seed_mock_data"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	DefaultLimit    int           `koanf:"default_limit"`
	MaxLimit        int           `koanf:"max_limit"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds recommendation-engine settings that live at the
// service level; scoring weights and caps are configured on the engine
// itself (see internal/recommend.Config).
type RecommendConfig struct {
	RequestTimeout time.Duration `koanf:"request_timeout"`
	CacheEnabled   bool          `koanf:"cache_enabled"`
	CacheTTL       time.Duration `koanf:"cache_ttl"`
	CacheMaxItems  int           `koanf:"cache_max_items"`
}

// Default returns a Config with all default values. Used directly by
// tests; Load layers file and environment overrides on top of it.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Driver:       "postgres",
			DSN:          "",
			SeedMockData: false,
		},
		API: APIConfig{
			DefaultLimit:    8,
			MaxLimit:        100,
			RateLimitReqs:   100,
			RateLimitWindow: 1 * time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			RequestTimeout: 10 * time.Second,
			CacheEnabled:   true,
			CacheTTL:       5 * time.Minute,
			CacheMaxItems:  1000,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for the postgres driver")
	}

	if c.API.DefaultLimit < 1 {
		return fmt.Errorf("api.default_limit must be at least 1, got %d", c.API.DefaultLimit)
	}
	if c.API.MaxLimit < c.API.DefaultLimit {
		return fmt.Errorf("api.max_limit (%d) must be >= api.default_limit (%d)", c.API.MaxLimit, c.API.DefaultLimit)
	}
	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("api.rate_limit_reqs must be at least 1, got %d", c.API.RateLimitReqs)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api.rate_limit_window must be positive, got %s", c.API.RateLimitWindow)
	}

	if c.Recommend.RequestTimeout <= 0 {
		return fmt.Errorf("recommend.request_timeout must be positive, got %s", c.Recommend.RequestTimeout)
	}
	if c.Recommend.CacheEnabled {
		if c.Recommend.CacheTTL <= 0 {
			return fmt.Errorf("recommend.cache_ttl must be positive when the cache is enabled, got %s", c.Recommend.CacheTTL)
		}
		if c.Recommend.CacheMaxItems < 1 {
			return fmt.Errorf("recommend.cache_max_items must be at least 1, got %d", c.Recommend.CacheMaxItems)
		}
	}

	return nil
}
