// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

// Package recommend implements the product recommendation engine: it
// extracts normalized attributes from free-text catalog specifications,
// fans out candidate generators against the catalog, and ranks the
// merged candidates into the legacy unified list (v1) or the two-list
// Related Products / You Might Like response (v2).
package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nguyenhoangkha03/shuttlehub/internal/catalog"
	"github.com/nguyenhoangkha03/shuttlehub/internal/logging"
)

// Engine computes product recommendations. It is safe for concurrent
// use once a provider is set.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	tables   Tables
	provider CatalogProvider
	cache    *resultCache
}

// NewEngine creates an engine with the given configuration. A nil
// configuration uses the defaults. The provider must be attached with
// SetProvider before serving requests.
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		tables: DefaultTables(),
	}
	if cfg.Cache.Enabled {
		e.cache = newResultCache(cfg.Cache)
	}
	return e, nil
}

// SetProvider attaches the catalog data source.
func (e *Engine) SetProvider(p CatalogProvider) {
	e.provider = p
}

// SetTables replaces the compatibility tables. Intended for tests and
// for tuning experiments.
func (e *Engine) SetTables(t Tables) {
	e.tables = t
}

// InvalidateCache drops all cached responses. Call after catalog
// writes that should be visible immediately.
func (e *Engine) InvalidateCache() {
	if e.cache != nil {
		e.cache.purge()
	}
}

// clampLimit normalizes a requested result size: non-positive values
// fall back to the default, oversized values are capped.
func (e *Engine) clampLimit(n int) int {
	if n <= 0 {
		return e.config.DefaultLimit
	}
	if n > e.config.MaxLimit {
		return e.config.MaxLimit
	}
	return n
}

// RecommendUnified computes the legacy single-list recommendation for a
// product. Candidates from the brand, skill and specification
// generators are gathered concurrently, merged with first-wins
// deduplication, scaled by per-source weights and ranked by score.
// When all three generators come back empty the category fallback fills
// the list instead.
func (e *Engine) RecommendUnified(ctx context.Context, productID uint, limit int) (*UnifiedResponse, error) {
	start := time.Now()
	limit = e.clampLimit(limit)

	cacheKey := fmt.Sprintf("v1:%d:%d", productID, limit)
	if e.cache != nil {
		if v := e.cache.get(cacheKey); v != nil {
			resp := *v.(*UnifiedResponse)
			resp.Metadata.CacheHit = true
			resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
			return &resp, nil
		}
	}

	src, err := e.provider.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	attrs := ExtractAttributes(src)
	price := ResolvePrice(src)

	brand, skill, specs, err := e.gatherCandidates(ctx, src, attrs)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{
		SourceBrand.String(): len(brand),
		SourceSkill.String(): len(skill),
		SourceSpecs.String(): len(specs),
	}

	merged := make([]Candidate, 0, len(brand)+len(skill)+len(specs))
	merged = append(merged, brand...)
	merged = append(merged, skill...)
	merged = append(merged, specs...)

	if len(merged) == 0 {
		fallback, err := e.fallbackCandidates(ctx, src, limit)
		if err != nil {
			return nil, err
		}
		counts[SourceFallback.String()] = len(fallback)
		merged = fallback
	}

	merged = dedupeFirstWins(merged)
	e.applySourceWeights(merged)
	sortByScore(merged)
	merged = truncate(merged, limit)

	items, err := e.buildItems(ctx, merged)
	if err != nil {
		return nil, err
	}

	resp := &UnifiedResponse{
		Items: items,
		Metadata: UnifiedMetadata{
			RequestID:        logging.GenerateRequestID(),
			SourceAttributes: attrs,
			SourcePrice:      price,
			GeneratorCounts:  counts,
			LatencyMS:        time.Since(start).Milliseconds(),
			Timestamp:        time.Now().UTC(),
		},
	}

	if e.cache != nil {
		e.cache.set(cacheKey, resp)
	}

	e.logger.Debug().
		Uint("product_id", productID).
		Int("results", len(items)).
		Dur("latency", time.Since(start)).
		Msg("unified recommendation computed")

	return resp, nil
}

// gatherCandidates runs the three primary generators concurrently.
// Any generator error fails the whole request; partial results are
// never served.
func (e *Engine) gatherCandidates(ctx context.Context, src *catalog.Product, attrs Attributes) (brand, skill, specs []Candidate, err error) {
	var (
		wg   sync.WaitGroup
		errs [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		brand, errs[0] = e.brandFamilyCandidates(ctx, src)
	}()
	go func() {
		defer wg.Done()
		skill, errs[1] = e.skillCandidates(ctx, src.ID, attrs)
	}()
	go func() {
		defer wg.Done()
		specs, errs[2] = e.specCandidates(ctx, src.ID, attrs)
	}()
	wg.Wait()

	for _, genErr := range errs {
		if genErr != nil {
			return nil, nil, nil, genErr
		}
	}
	return brand, skill, specs, nil
}

// RecommendTwoList computes the v2 response: a Related Products list
// scored by attribute similarity against the source product, and a You
// Might Like list of proven sellers from the same broad category.
func (e *Engine) RecommendTwoList(ctx context.Context, productID uint, relatedLimit, likeLimit int) (*TwoListResponse, error) {
	start := time.Now()
	relatedLimit = e.clampLimit(relatedLimit)
	likeLimit = e.clampLimit(likeLimit)

	cacheKey := fmt.Sprintf("v2:%d:%d:%d", productID, relatedLimit, likeLimit)
	if e.cache != nil {
		if v := e.cache.get(cacheKey); v != nil {
			resp := *v.(*TwoListResponse)
			resp.Metadata.CacheHit = true
			resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
			return &resp, nil
		}
	}

	src, err := e.provider.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	attrs := ExtractAttributes(src)
	price := ResolvePrice(src)

	related, err := e.relatedProducts(ctx, src, attrs, price, relatedLimit)
	if err != nil {
		return nil, err
	}

	like, band, err := e.bestSellers(ctx, src, price, likeLimit)
	if err != nil {
		return nil, err
	}

	if err := e.attachRatings(ctx, related, like); err != nil {
		return nil, err
	}

	resp := &TwoListResponse{
		RelatedProducts: related,
		YouMightLike:    like,
		Metadata: TwoListMetadata{
			RequestID:        logging.GenerateRequestID(),
			SourceAttributes: attrs,
			SourcePrice:      price,
			PriceBand:        band,
			LatencyMS:        time.Since(start).Milliseconds(),
			Timestamp:        time.Now().UTC(),
		},
	}

	if e.cache != nil {
		e.cache.set(cacheKey, resp)
	}

	e.logger.Debug().
		Uint("product_id", productID).
		Int("related", len(related)).
		Int("you_might_like", len(like)).
		Dur("latency", time.Since(start)).
		Msg("two-list recommendation computed")

	return resp, nil
}

// relatedProducts builds the Related Products list: a pool of products
// from the same level-2 (brand) categories, scored by binary attribute
// agreement with the source product and ranked with a price-proximity
// tie-break. A product without level-2 categories widens the pool to
// any shared category.
func (e *Engine) relatedProducts(ctx context.Context, src *catalog.Product, srcAttrs Attributes, srcPrice PriceInfo, limit int) ([]Item, error) {
	poolSize := limit * e.config.RelatedFetchMultiplier

	var (
		pool []catalog.Product
		err  error
	)
	if names := level2CategoryNames(src); len(names) > 0 {
		pool, err = e.provider.FindByCategoryNames(ctx, names, src.ID, poolSize)
	} else {
		pool, err = e.provider.FindBySharedCategories(ctx, allCategoryIDs(src), src.ID, poolSize)
	}
	if err != nil {
		return nil, fmt.Errorf("related pool query: %w", err)
	}

	candidates := make([]relatedCandidate, 0, len(pool))
	for i := range pool {
		p := &pool[i]
		score := e.relatedScore(srcAttrs, ExtractAttributes(p))
		item := e.newItem(p, score, "", "")
		candidates = append(candidates, relatedCandidate{
			item:  item,
			score: score,
			price: item.DisplayPrice,
		})
	}

	sortRelated(candidates, srcPrice.DisplayPrice, e.config.TieEpsilon)
	candidates = truncate(candidates, limit)

	items := make([]Item, len(candidates))
	for i, c := range candidates {
		items[i] = c.item
	}
	return items, nil
}

// relatedScore is the binary similarity between two attribute bundles:
// each agreeing attribute contributes its full weight, disagreement
// contributes nothing. An unknown play style never agrees, not even
// with another unknown.
func (e *Engine) relatedScore(src, cand Attributes) float64 {
	var score float64
	if src.SkillLevel == cand.SkillLevel {
		score += e.config.RelatedSkillWeight
	}
	if src.Flexibility == cand.Flexibility {
		score += e.config.RelatedFlexWeight
	}
	if src.PlayStyle != PlayStyleUnknown && src.PlayStyle == cand.PlayStyle {
		score += e.config.RelatedStyleWeight
	}
	return score
}

// bestSellers builds the You Might Like list: products from the source
// product's level-1 categories with at least one delivered sale, ranked
// by sales volume with price-proximity, featured and recency
// tie-breaks. The price band around the source price is reported as
// metadata only; it does not exclude candidates.
func (e *Engine) bestSellers(ctx context.Context, src *catalog.Product, srcPrice PriceInfo, limit int) ([]Item, PriceBand, error) {
	band := PriceBand{
		Min: srcPrice.DisplayPrice.Mul(decimal.NewFromFloat(e.config.PriceBandLower)).Round(2),
		Max: srcPrice.DisplayPrice.Mul(decimal.NewFromFloat(e.config.PriceBandUpper)).Round(2),
	}

	poolSize := limit * e.config.BestSellerFetchMultiplier

	var (
		pool []catalog.Product
		err  error
	)
	if ids := level1CategoryIDs(src); len(ids) > 0 {
		pool, err = e.provider.FindByLevel1Categories(ctx, ids, src.ID, poolSize)
	} else {
		pool, err = e.provider.FindFeatured(ctx, src.ID, poolSize)
	}
	if err != nil {
		return nil, band, fmt.Errorf("best seller pool query: %w", err)
	}

	ids := make([]uint, len(pool))
	for i, p := range pool {
		ids[i] = p.ID
	}
	sales, err := e.provider.SalesTotals(ctx, ids)
	if err != nil {
		return nil, band, fmt.Errorf("sales totals query: %w", err)
	}

	candidates := make([]bestSellerCandidate, 0, len(pool))
	for i := range pool {
		p := &pool[i]
		total := sales[p.ID]
		if total <= 0 {
			continue
		}
		item := e.newItem(p, 0, "", "")
		item.TotalSales = total
		candidates = append(candidates, bestSellerCandidate{
			item:       item,
			totalSales: total,
			price:      item.DisplayPrice,
			featured:   p.Featured,
			createdAt:  p.CreatedAt.UnixNano(),
		})
	}

	sortBestSellers(candidates, srcPrice.DisplayPrice)
	candidates = truncate(candidates, limit)

	items := make([]Item, len(candidates))
	for i, c := range candidates {
		items[i] = c.item
	}
	return items, band, nil
}

// Diagnose runs every generator sequentially for one product and
// returns their raw, unmerged outputs together with the extracted
// attributes and the compatibility tables in effect.
func (e *Engine) Diagnose(ctx context.Context, productID uint) (*Diagnostics, error) {
	src, err := e.provider.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	attrs := ExtractAttributes(src)

	generators := make(map[string][]Candidate, 4)

	brand, err := e.brandFamilyCandidates(ctx, src)
	if err != nil {
		return nil, err
	}
	generators[SourceBrand.String()] = brand

	skill, err := e.skillCandidates(ctx, src.ID, attrs)
	if err != nil {
		return nil, err
	}
	generators[SourceSkill.String()] = skill

	specs, err := e.specCandidates(ctx, src.ID, attrs)
	if err != nil {
		return nil, err
	}
	generators[SourceSpecs.String()] = specs

	fallback, err := e.fallbackCandidates(ctx, src, e.config.DefaultLimit)
	if err != nil {
		return nil, err
	}
	generators[SourceFallback.String()] = fallback

	return &Diagnostics{
		ProductID:  productID,
		Attributes: attrs,
		Price:      ResolvePrice(src),
		Generators: generators,
		Tables:     e.tables,
	}, nil
}

// newItem builds a result item from a product with its resolved price.
func (e *Engine) newItem(p *catalog.Product, score float64, reason, source string) Item {
	price := ResolvePrice(p)
	return Item{
		ProductID:       p.ID,
		Name:            p.Name,
		DisplayPrice:    price.DisplayPrice,
		ComparePrice:    price.ComparePrice,
		DiscountPercent: price.DiscountPercent,
		Score:           score,
		Reason:          reason,
		Source:          source,
		Featured:        p.Featured,
		InStock:         p.InStock,
	}
}

// buildItems converts ranked candidates to result items, fetching the
// rating summaries for the whole batch in one query.
func (e *Engine) buildItems(ctx context.Context, candidates []Candidate) ([]Item, error) {
	ids := make([]uint, len(candidates))
	for i, c := range candidates {
		ids[i] = c.Product.ID
	}
	ratings, err := e.provider.RatingSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("rating summaries query: %w", err)
	}

	items := make([]Item, len(candidates))
	for i, c := range candidates {
		item := e.newItem(&candidates[i].Product, c.Score, c.Reason, c.Source.String())
		item.Rating = ratings[c.Product.ID]
		items[i] = item
	}
	return items, nil
}

// attachRatings fills rating summaries for both v2 lists with a single
// batched query.
func (e *Engine) attachRatings(ctx context.Context, lists ...[]Item) error {
	var ids []uint
	for _, list := range lists {
		for _, item := range list {
			ids = append(ids, item.ProductID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	ratings, err := e.provider.RatingSummaries(ctx, ids)
	if err != nil {
		return fmt.Errorf("rating summaries query: %w", err)
	}
	for _, list := range lists {
		for i := range list {
			list[i].Rating = ratings[list[i].ProductID]
		}
	}
	return nil
}
