// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package recommend

import (
	"context"
	"fmt"

	"github.com/nguyenhoangkha03/shuttlehub/internal/catalog"
)

// fallbackReason is the fixed reason attached to category-fallback
// candidates.
const fallbackReason = "same category"

// level2CategoryNames returns the names of a product's level-2
// (brand-scoped) categories in membership order.
func level2CategoryNames(p *catalog.Product) []string {
	var names []string
	for _, c := range p.Categories {
		if c.Level == 2 {
			names = append(names, c.Name)
		}
	}
	return names
}

// level1CategoryIDs returns the IDs of a product's level-1 (broad type)
// categories.
func level1CategoryIDs(p *catalog.Product) []uint {
	var ids []uint
	for _, c := range p.Categories {
		if c.Level == 1 {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// allCategoryIDs returns every category ID a product belongs to.
func allCategoryIDs(p *catalog.Product) []uint {
	ids := make([]uint, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// brandEntry looks up the brand compatibility entry for the source
// product's first level-2 category that has one.
func (e *Engine) brandEntry(src *catalog.Product) (BrandCompat, bool) {
	for _, name := range level2CategoryNames(src) {
		if entry, ok := e.tables.Brands[name]; ok {
			return entry, true
		}
	}
	return BrandCompat{}, false
}

// brandFamilyCandidates queries the brand-family generator: products in
// the same brand family and in adjacent brand families, per the brand
// compatibility table entry of the source product's level-2 category.
// Products without a level-2 category (or without a table entry)
// produce no brand candidates.
func (e *Engine) brandFamilyCandidates(ctx context.Context, src *catalog.Product) ([]Candidate, error) {
	entry, ok := e.brandEntry(src)
	if !ok {
		return nil, nil
	}

	same, err := e.provider.FindByCategoryNames(ctx, entry.Same, src.ID, e.config.BrandSameLimit)
	if err != nil {
		return nil, fmt.Errorf("brand same query: %w", err)
	}

	compatible, err := e.provider.FindByCategoryNames(ctx, entry.Compatible, src.ID, e.config.BrandCompatibleLimit)
	if err != nil {
		return nil, fmt.Errorf("brand compatible query: %w", err)
	}

	candidates := make([]Candidate, 0, len(same)+len(compatible))
	for _, p := range same {
		candidates = append(candidates, Candidate{Product: p, Score: e.config.BrandSameWeight, Source: SourceBrand, Reason: entry.Reason})
	}
	for _, p := range compatible {
		candidates = append(candidates, Candidate{Product: p, Score: e.config.BrandCompatibleWeight, Source: SourceBrand, Reason: entry.Reason})
	}
	return candidates, nil
}

// skillCandidates queries the skill-progression generator: products at
// the same skill tier and products one tier up, matched on the
// normalized skill-level specification value.
func (e *Engine) skillCandidates(ctx context.Context, excludeID uint, attrs Attributes) ([]Candidate, error) {
	entry, ok := e.tables.Skills[attrs.SkillLevel]
	if !ok {
		return nil, nil
	}

	var candidates []Candidate

	same, err := e.provider.FindBySpecValue(ctx, skillFieldNames, entry.Same, excludeID, e.config.SkillSameLimit)
	if err != nil {
		return nil, fmt.Errorf("skill same query: %w", err)
	}
	for _, p := range same {
		candidates = append(candidates, Candidate{Product: p, Score: e.config.SkillSameWeight, Source: SourceSkill, Reason: "cùng trình độ chơi"})
	}

	if len(entry.Upgrade) > 0 {
		upgrade, err := e.provider.FindBySpecValue(ctx, skillFieldNames, entry.Upgrade, excludeID, e.config.SkillUpgradeLimit)
		if err != nil {
			return nil, fmt.Errorf("skill upgrade query: %w", err)
		}
		for _, p := range upgrade {
			candidates = append(candidates, Candidate{Product: p, Score: e.config.SkillUpgradeWeight, Source: SourceSkill, Reason: "trình độ nâng cao hơn"})
		}
	}

	return candidates, nil
}

// specTier describes one query tier of the specification-similarity
// generator.
type specTier struct {
	fieldNames []string
	tokens     []string
	weight     float64
	reason     string
}

// specTiers builds the active query tiers for the source product's
// extracted attributes. Only attributes the product actually has a
// value for contribute; each contributes an exact tier and, where the
// compatibility table defines one, a compatible tier.
func (e *Engine) specTiers(attrs Attributes) []specTier {
	var tiers []specTier

	if attrs.FlexibilitySpecified {
		if entry, ok := e.tables.Flexibility[attrs.Flexibility]; ok {
			tiers = append(tiers, specTier{flexFieldNames, entry.Exact, e.config.FlexExactWeight, "độ cứng đũa tương đồng"})
			if len(entry.Compatible) > 0 {
				tiers = append(tiers, specTier{flexFieldNames, entry.Compatible, e.config.FlexCompatibleWeight, "độ cứng đũa gần giống"})
			}
		}
	}

	if attrs.BalanceSpecified {
		if entry, ok := e.tables.Balance[attrs.Balance]; ok {
			tiers = append(tiers, specTier{balanceFieldNames, entry.Exact, e.config.BalanceExactWeight, "điểm cân bằng tương đồng"})
			if len(entry.Compatible) > 0 {
				tiers = append(tiers, specTier{balanceFieldNames, entry.Compatible, e.config.BalanceCompatibleWeight, "điểm cân bằng gần giống"})
			}
		}
	}

	if attrs.WeightSpecified {
		if entry, ok := e.tables.WeightClasses[attrs.WeightClass]; ok {
			tiers = append(tiers, specTier{weightFieldNames, entry.Exact, e.config.WeightExactWeight, "trọng lượng tương đồng"})
		}
	}

	return tiers
}

// specCandidates queries the specification-similarity generator across
// the active tiers for flexibility, balance and weight class.
func (e *Engine) specCandidates(ctx context.Context, excludeID uint, attrs Attributes) ([]Candidate, error) {
	var candidates []Candidate

	for _, tier := range e.specTiers(attrs) {
		products, err := e.provider.FindBySpecValue(ctx, tier.fieldNames, tier.tokens, excludeID, e.config.SpecTierLimit)
		if err != nil {
			return nil, fmt.Errorf("spec similarity query: %w", err)
		}
		for _, p := range products {
			candidates = append(candidates, Candidate{Product: p, Score: tier.weight, Source: SourceSpecs, Reason: tier.reason})
		}
	}

	return candidates, nil
}

// fallbackCandidates queries the category-fallback generator, used only
// when the three primary generators produced zero candidates combined.
// It first tries products sharing any of the source product's
// categories (newest first), then any active, in-stock product ordered
// by featured flag then recency.
func (e *Engine) fallbackCandidates(ctx context.Context, src *catalog.Product, limit int) ([]Candidate, error) {
	products, err := e.provider.FindBySharedCategories(ctx, allCategoryIDs(src), src.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("category fallback query: %w", err)
	}

	if len(products) == 0 {
		products, err = e.provider.FindFeatured(ctx, src.ID, limit)
		if err != nil {
			return nil, fmt.Errorf("featured fallback query: %w", err)
		}
	}

	candidates := make([]Candidate, 0, len(products))
	for _, p := range products {
		candidates = append(candidates, Candidate{Product: p, Score: e.config.FallbackWeight, Source: SourceFallback, Reason: fallbackReason})
	}
	return candidates, nil
}
