// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package recommend

import (
	"fmt"
	"time"
)

// Config holds the engine's scoring weights, per-tier result caps and
// cache settings. The defaults reproduce the legacy ranking exactly;
// changing any weight changes ranking order materially, so overrides
// should be deliberate.
type Config struct {
	// Brand-family generator.
	BrandSameWeight       float64 `json:"brand_same_weight"`
	BrandSameLimit        int     `json:"brand_same_limit"`
	BrandCompatibleWeight float64 `json:"brand_compatible_weight"`
	BrandCompatibleLimit  int     `json:"brand_compatible_limit"`

	// Skill-progression generator.
	SkillSameWeight    float64 `json:"skill_same_weight"`
	SkillSameLimit     int     `json:"skill_same_limit"`
	SkillUpgradeWeight float64 `json:"skill_upgrade_weight"`
	SkillUpgradeLimit  int     `json:"skill_upgrade_limit"`

	// Specification-similarity generator. Each active attribute
	// contributes at most two query tiers, each capped at SpecTierLimit.
	FlexExactWeight         float64 `json:"flex_exact_weight"`
	FlexCompatibleWeight    float64 `json:"flex_compatible_weight"`
	BalanceExactWeight      float64 `json:"balance_exact_weight"`
	BalanceCompatibleWeight float64 `json:"balance_compatible_weight"`
	WeightExactWeight       float64 `json:"weight_exact_weight"`
	SpecTierLimit           int     `json:"spec_tier_limit"`

	// Category fallback generator.
	FallbackWeight float64 `json:"fallback_weight"`

	// v1 unified mode source weights applied after deduplication.
	SourceBrandWeight float64 `json:"source_brand_weight"`
	SourceSkillWeight float64 `json:"source_skill_weight"`
	SourceSpecsWeight float64 `json:"source_specs_weight"`

	// v2 Related Products binary contribution weights.
	RelatedSkillWeight float64 `json:"related_skill_weight"`
	RelatedFlexWeight  float64 `json:"related_flex_weight"`
	RelatedStyleWeight float64 `json:"related_style_weight"`

	// Scores closer than TieEpsilon are treated as tied and ordered by
	// price proximity to the source product.
	TieEpsilon float64 `json:"tie_epsilon"`

	// Pool fetch multipliers relative to the requested size.
	RelatedFetchMultiplier    int `json:"related_fetch_multiplier"`
	BestSellerFetchMultiplier int `json:"best_seller_fetch_multiplier"`

	// Best-seller price band bounds as fractions of the source price.
	PriceBandLower float64 `json:"price_band_lower"`
	PriceBandUpper float64 `json:"price_band_upper"`

	// Result limits.
	DefaultLimit int `json:"default_limit"`
	MaxLimit     int `json:"max_limit"`

	// Cache settings for the in-process result cache.
	Cache CacheConfig `json:"cache"`
}

// CacheConfig controls the engine's TTL result cache.
type CacheConfig struct {
	Enabled    bool          `json:"enabled"`
	TTL        time.Duration `json:"ttl"`
	MaxEntries int           `json:"max_entries"`
}

// DefaultConfig returns the configuration reproducing the legacy
// ranking behavior.
func DefaultConfig() *Config {
	return &Config{
		BrandSameWeight:       1.0,
		BrandSameLimit:        4,
		BrandCompatibleWeight: 0.7,
		BrandCompatibleLimit:  2,

		SkillSameWeight:    0.7,
		SkillSameLimit:     3,
		SkillUpgradeWeight: 0.3,
		SkillUpgradeLimit:  3,

		FlexExactWeight:         0.5,
		FlexCompatibleWeight:    0.2,
		BalanceExactWeight:      0.4,
		BalanceCompatibleWeight: 0.15,
		WeightExactWeight:       0.3,
		SpecTierLimit:           2,

		FallbackWeight: 0.1,

		SourceBrandWeight: 0.4,
		SourceSkillWeight: 0.35,
		SourceSpecsWeight: 0.25,

		RelatedSkillWeight: 0.4,
		RelatedFlexWeight:  0.35,
		RelatedStyleWeight: 0.25,

		TieEpsilon: 0.01,

		RelatedFetchMultiplier:    2,
		BestSellerFetchMultiplier: 3,

		PriceBandLower: 0.7,
		PriceBandUpper: 1.3,

		DefaultLimit: 8,
		MaxLimit:     100,

		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	weights := map[string]float64{
		"brand_same_weight":         c.BrandSameWeight,
		"brand_compatible_weight":   c.BrandCompatibleWeight,
		"skill_same_weight":         c.SkillSameWeight,
		"skill_upgrade_weight":      c.SkillUpgradeWeight,
		"flex_exact_weight":         c.FlexExactWeight,
		"flex_compatible_weight":    c.FlexCompatibleWeight,
		"balance_exact_weight":      c.BalanceExactWeight,
		"balance_compatible_weight": c.BalanceCompatibleWeight,
		"weight_exact_weight":       c.WeightExactWeight,
		"fallback_weight":           c.FallbackWeight,
		"source_brand_weight":       c.SourceBrandWeight,
		"source_skill_weight":       c.SourceSkillWeight,
		"source_specs_weight":       c.SourceSpecsWeight,
		"related_skill_weight":      c.RelatedSkillWeight,
		"related_flex_weight":       c.RelatedFlexWeight,
		"related_style_weight":      c.RelatedStyleWeight,
	}
	for name, w := range weights {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %g", name, w)
		}
	}

	limits := map[string]int{
		"brand_same_limit":       c.BrandSameLimit,
		"brand_compatible_limit": c.BrandCompatibleLimit,
		"skill_same_limit":       c.SkillSameLimit,
		"skill_upgrade_limit":    c.SkillUpgradeLimit,
		"spec_tier_limit":        c.SpecTierLimit,
		"default_limit":          c.DefaultLimit,
		"max_limit":              c.MaxLimit,
	}
	for name, n := range limits {
		if n < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", name, n)
		}
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}

	if c.TieEpsilon <= 0 {
		return fmt.Errorf("tie_epsilon must be positive, got %g", c.TieEpsilon)
	}
	if c.RelatedFetchMultiplier < 1 {
		return fmt.Errorf("related_fetch_multiplier must be at least 1, got %d", c.RelatedFetchMultiplier)
	}
	if c.BestSellerFetchMultiplier < 1 {
		return fmt.Errorf("best_seller_fetch_multiplier must be at least 1, got %d", c.BestSellerFetchMultiplier)
	}

	if c.PriceBandLower <= 0 || c.PriceBandLower >= 1 {
		return fmt.Errorf("price_band_lower must be in (0, 1), got %g", c.PriceBandLower)
	}
	if c.PriceBandUpper <= 1 {
		return fmt.Errorf("price_band_upper must be greater than 1, got %g", c.PriceBandUpper)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when enabled, got %s", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be at least 1, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
