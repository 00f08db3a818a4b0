// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package recommend

import (
	"sort"

	"github.com/shopspring/decimal"
)

// dedupeFirstWins removes duplicate products from a merged candidate
// list, keeping the first occurrence. Candidates are merged in
// generator order (brand, skill, specs), so a product found by an
// earlier generator keeps that generator's score and reason.
func dedupeFirstWins(candidates []Candidate) []Candidate {
	seen := make(map[uint]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if _, dup := seen[c.Product.ID]; dup {
			continue
		}
		seen[c.Product.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// applySourceWeights scales each candidate's tier score by its
// generator's source weight. Fallback candidates already carry their
// final flat score and are left untouched.
func (e *Engine) applySourceWeights(candidates []Candidate) {
	for i := range candidates {
		switch candidates[i].Source {
		case SourceBrand:
			candidates[i].Score *= e.config.SourceBrandWeight
		case SourceSkill:
			candidates[i].Score *= e.config.SourceSkillWeight
		case SourceSpecs:
			candidates[i].Score *= e.config.SourceSpecsWeight
		}
	}
}

// sortByScore orders candidates by descending score. The sort is
// stable, so candidates with equal scores keep their generator order.
func sortByScore(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// priceDistance is the absolute difference between two prices.
func priceDistance(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b).Abs()
}

// sortRelated orders Related Products candidates by descending score;
// scores closer than epsilon are treated as tied and broken by price
// proximity to the source price, cheapest distance first. The sorted
// slice pairs each candidate with its resolved display price so the
// tie-break does not resolve prices repeatedly.
func sortRelated(candidates []relatedCandidate, srcPrice decimal.Decimal, epsilon float64) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di := candidates[i].score - candidates[j].score
		if di > -epsilon && di < epsilon {
			return priceDistance(candidates[i].price, srcPrice).
				LessThan(priceDistance(candidates[j].price, srcPrice))
		}
		return di > 0
	})
}

// relatedCandidate is a Related Products pool entry with its binary
// similarity score and resolved display price.
type relatedCandidate struct {
	item  Item
	score float64
	price decimal.Decimal
}

// bestSellerCandidate is a You Might Like pool entry with its delivered
// sales total and resolved display price.
type bestSellerCandidate struct {
	item       Item
	totalSales int
	price      decimal.Decimal
	featured   bool
	createdAt  int64
}

// sortBestSellers orders best-seller candidates by descending sales
// total, then price proximity to the source price, then the featured
// flag, then recency.
func sortBestSellers(candidates []bestSellerCandidate, srcPrice decimal.Decimal) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.totalSales != b.totalSales {
			return a.totalSales > b.totalSales
		}
		da, db := priceDistance(a.price, srcPrice), priceDistance(b.price, srcPrice)
		if !da.Equal(db) {
			return da.LessThan(db)
		}
		if a.featured != b.featured {
			return a.featured
		}
		return a.createdAt > b.createdAt
	})
}

// truncate caps a slice at n elements.
func truncate[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
