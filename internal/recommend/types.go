// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nguyenhoangkha03/shuttlehub/internal/catalog"
)

// ErrProductNotFound indicates the source product does not exist.
// It is the only engine error surfaced to callers as a distinct,
// user-facing condition; every other failure is a generic server error.
var ErrProductNotFound = errors.New("product not found")

// SkillLevel is the extracted shopper-experience tier a product targets.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// Flexibility is the extracted shaft stiffness classification.
type Flexibility string

const (
	FlexFlexible   Flexibility = "flexible"
	FlexMedium     Flexibility = "medium"
	FlexStiff      Flexibility = "stiff"
	FlexExtraStiff Flexibility = "extra_stiff"
)

// Balance is the extracted weight distribution classification.
type Balance string

const (
	BalanceHeadHeavy Balance = "head_heavy"
	BalanceEven      Balance = "even_balance"
	BalanceHeadLight Balance = "head_light"
)

// WeightClass is the extracted racket weight class.
type WeightClass string

const (
	Weight2U WeightClass = "2U"
	Weight3U WeightClass = "3U"
	Weight4U WeightClass = "4U"
	Weight5U WeightClass = "5U"
)

// PlayStyle is the extracted intended usage style. PlayStyleUnknown is
// a deliberate sentinel: it never matches any play style, including
// itself, so two products with unknown styles do not produce a false
// similarity signal.
type PlayStyle string

const (
	StyleAttack   PlayStyle = "attack"
	StyleDefense  PlayStyle = "defense"
	StyleAllround PlayStyle = "allround"
	StyleControl  PlayStyle = "control"

	// PlayStyleUnknown never matches, even against itself.
	PlayStyleUnknown PlayStyle = "unknown"
)

// BrandUnknown is the sentinel brand for products whose brand cannot be
// determined. Brand is never empty.
const BrandUnknown = "Unknown"

// Attributes is the normalized attribute bundle extracted from a
// product's categories and free-text specifications.
//
// Each extracted field falls back to a documented default when the
// underlying specification is missing or unrecognized; the *Specified
// flags record whether a recognized value was actually present, so
// diagnostics can distinguish a true "intermediate" from the default.
// Rankings use only the values, preserving the legacy behavior.
type Attributes struct {
	Brand       string      `json:"brand"`
	SkillLevel  SkillLevel  `json:"skill_level"`
	Flexibility Flexibility `json:"flexibility"`
	Balance     Balance     `json:"balance"`
	WeightClass WeightClass `json:"weight_class"`
	PlayStyle   PlayStyle   `json:"play_style"`

	SkillSpecified       bool `json:"skill_specified"`
	FlexibilitySpecified bool `json:"flexibility_specified"`
	BalanceSpecified     bool `json:"balance_specified"`
	WeightSpecified      bool `json:"weight_specified"`
}

// PriceInfo is a product's resolved display pricing.
type PriceInfo struct {
	DisplayPrice    decimal.Decimal     `json:"display_price"`
	ComparePrice    decimal.NullDecimal `json:"compare_price"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
}

// PriceBand is the best-seller price band around the source product's
// display price. It is surfaced as metadata and is not an exclusion
// filter (observed legacy behavior).
type PriceBand struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Source identifies which candidate generator produced a candidate.
type Source int

const (
	SourceBrand Source = iota
	SourceSkill
	SourceSpecs
	SourceFallback
)

// String returns the generator name for a source.
func (s Source) String() string {
	switch s {
	case SourceBrand:
		return "brand"
	case SourceSkill:
		return "skill"
	case SourceSpecs:
		return "specs"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Candidate is a scored product produced by a candidate generator,
// prior to merging and final ranking.
type Candidate struct {
	Product catalog.Product `json:"product"`
	Score   float64         `json:"score"`
	Source  Source          `json:"-"`
	Reason  string          `json:"reason"`
}

// Rating is a product's aggregated review rating.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Item is one ranked recommendation result.
type Item struct {
	ProductID       uint                `json:"product_id"`
	Name            string              `json:"name"`
	DisplayPrice    decimal.Decimal     `json:"display_price"`
	ComparePrice    decimal.NullDecimal `json:"compare_price"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
	Rating          Rating              `json:"rating"`
	Score           float64             `json:"score"`
	Reason          string              `json:"reason,omitempty"`
	Source          string              `json:"source,omitempty"`
	TotalSales      int                 `json:"total_sales,omitempty"`
	Featured        bool                `json:"featured"`
	InStock         bool                `json:"in_stock"`
}

// UnifiedResponse is the v1 (legacy) single-list response.
type UnifiedResponse struct {
	Items    []Item          `json:"items"`
	Metadata UnifiedMetadata `json:"metadata"`
}

// UnifiedMetadata describes how a v1 result was computed.
type UnifiedMetadata struct {
	RequestID        string         `json:"request_id"`
	SourceAttributes Attributes     `json:"source_attributes"`
	SourcePrice      PriceInfo      `json:"source_price"`
	GeneratorCounts  map[string]int `json:"generator_counts"`
	LatencyMS        int64          `json:"latency_ms"`
	CacheHit         bool           `json:"cache_hit"`
	Timestamp        time.Time      `json:"timestamp"`
}

// TwoListResponse is the v2 response with two independent rankings.
type TwoListResponse struct {
	RelatedProducts []Item          `json:"relatedProducts"`
	YouMightLike    []Item          `json:"youMightLike"`
	Metadata        TwoListMetadata `json:"metadata"`
}

// TwoListMetadata describes how a v2 result was computed.
type TwoListMetadata struct {
	RequestID        string     `json:"request_id"`
	SourceAttributes Attributes `json:"source_attributes"`
	SourcePrice      PriceInfo  `json:"source_price"`
	PriceBand        PriceBand  `json:"price_band"`
	LatencyMS        int64      `json:"latency_ms"`
	CacheHit         bool       `json:"cache_hit"`
	Timestamp        time.Time  `json:"timestamp"`
}

// Diagnostics is the raw, unmerged view of the engine's inputs and
// generator outputs for one product. It exists for tuning the
// compatibility tables and is not intended for production traffic.
type Diagnostics struct {
	ProductID  uint                   `json:"product_id"`
	Attributes Attributes             `json:"attributes"`
	Price      PriceInfo              `json:"price"`
	Generators map[string][]Candidate `json:"generators"`
	Tables     Tables                 `json:"tables"`
}

// CatalogProvider is the read-only data contract the engine depends on.
// It is implemented by the database layer; the indirection keeps this
// package free of persistence imports.
//
// All Find* queries must exclude the given product ID and restrict to
// active, in-stock products. Result ordering is part of the contract
// and is documented per method.
type CatalogProvider interface {
	// GetProduct returns a product with categories, variants and
	// specifications preloaded, or ErrProductNotFound.
	GetProduct(ctx context.Context, id uint) (*catalog.Product, error)

	// FindByCategoryNames returns products belonging to any category
	// with one of the given names, newest first.
	FindByCategoryNames(ctx context.Context, names []string, excludeID uint, limit int) ([]catalog.Product, error)

	// FindBySpecValue returns products owning a specification whose
	// normalized name matches one of fieldNames and whose value
	// contains one of the tokens (case-insensitive), newest first.
	FindBySpecValue(ctx context.Context, fieldNames, tokens []string, excludeID uint, limit int) ([]catalog.Product, error)

	// FindBySharedCategories returns products sharing any of the given
	// category IDs, newest first.
	FindBySharedCategories(ctx context.Context, categoryIDs []uint, excludeID uint, limit int) ([]catalog.Product, error)

	// FindFeatured returns any active, in-stock products ordered by
	// featured flag then recency.
	FindFeatured(ctx context.Context, excludeID uint, limit int) ([]catalog.Product, error)

	// FindByLevel1Categories returns products sharing any of the given
	// level-1 category IDs, ordered by featured flag then recency.
	FindByLevel1Categories(ctx context.Context, categoryIDs []uint, excludeID uint, limit int) ([]catalog.Product, error)

	// SalesTotals returns the summed delivered-order quantities for
	// each of the given product IDs. Products with no delivered sales
	// are absent from the map.
	SalesTotals(ctx context.Context, productIDs []uint) (map[uint]int, error)

	// RatingSummaries returns aggregated review ratings for the given
	// product IDs. Products without reviews are absent from the map.
	RatingSummaries(ctx context.Context, productIDs []uint) (map[uint]Rating, error)
}
