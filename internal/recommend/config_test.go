// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEngineConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestEngineConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"weight above one", func(c *Config) { c.SourceBrandWeight = 1.2 }},
		{"negative weight", func(c *Config) { c.FallbackWeight = -0.1 }},
		{"zero limit", func(c *Config) { c.BrandSameLimit = 0 }},
		{"max below default", func(c *Config) { c.MaxLimit = 4; c.DefaultLimit = 8 }},
		{"zero epsilon", func(c *Config) { c.TieEpsilon = 0 }},
		{"zero fetch multiplier", func(c *Config) { c.RelatedFetchMultiplier = 0 }},
		{"band lower too high", func(c *Config) { c.PriceBandLower = 1.0 }},
		{"band upper too low", func(c *Config) { c.PriceBandUpper = 0.9 }},
		{"cache ttl zero while enabled", func(c *Config) { c.Cache.TTL = 0 }},
		{"cache entries zero while enabled", func(c *Config) { c.Cache.MaxEntries = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEngineConfigDisabledCacheSkipsCacheChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache = CacheConfig{Enabled: false}
	assert.NoError(t, cfg.Validate())
}

func TestEngineConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.DefaultLimit = 99
	assert.NotEqual(t, cfg.DefaultLimit, clone.DefaultLimit)
}

func TestResultCacheExpiry(t *testing.T) {
	c := newResultCache(CacheConfig{TTL: 20 * time.Millisecond, MaxEntries: 10})
	c.set("k", "v")
	assert.Equal(t, "v", c.get("k"))

	time.Sleep(30 * time.Millisecond)
	assert.Nil(t, c.get("k"))
}

func TestResultCacheEviction(t *testing.T) {
	c := newResultCache(CacheConfig{TTL: time.Minute, MaxEntries: 3})
	c.set("a", 1)
	c.set("b", 2)
	c.set("c", 3)
	c.set("d", 4)
	assert.LessOrEqual(t, c.len(), 3)
	assert.Equal(t, 4, c.get("d"))
}

func TestResultCachePurge(t *testing.T) {
	c := newResultCache(CacheConfig{TTL: time.Minute, MaxEntries: 3})
	c.set("a", 1)
	c.purge()
	assert.Zero(t, c.len())
	assert.Nil(t, c.get("a"))
}

func TestDefaultTablesCoverEveryEnum(t *testing.T) {
	tables := DefaultTables()

	for _, level := range []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced} {
		_, ok := tables.Skills[level]
		assert.True(t, ok, "missing skill entry %q", level)
	}
	for _, flex := range []Flexibility{FlexFlexible, FlexMedium, FlexStiff, FlexExtraStiff} {
		_, ok := tables.Flexibility[flex]
		assert.True(t, ok, "missing flexibility entry %q", flex)
	}
	for _, b := range []Balance{BalanceHeadHeavy, BalanceEven, BalanceHeadLight} {
		_, ok := tables.Balance[b]
		assert.True(t, ok, "missing balance entry %q", b)
	}
	for _, w := range []WeightClass{Weight2U, Weight3U, Weight4U, Weight5U} {
		_, ok := tables.WeightClasses[w]
		assert.True(t, ok, "missing weight class entry %q", w)
	}

	// Advanced is the top tier: no upgrade tokens.
	assert.Empty(t, tables.Skills[SkillAdvanced].Upgrade)

	// Every brand entry carries a shopper-facing reason.
	for name, entry := range tables.Brands {
		assert.NotEmpty(t, entry.Reason, "brand %q", name)
		assert.NotEmpty(t, entry.Same, "brand %q", name)
	}
}
