// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package recommend

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenhoangkha03/shuttlehub/internal/catalog"
)

// fakeCatalog implements CatalogProvider over an in-memory product
// slice, honoring the contract: queries exclude the given ID, restrict
// to active in-stock products and order newest first.
type fakeCatalog struct {
	products []catalog.Product
	sales    map[uint]int
	ratings  map[uint]Rating
	err      error
	failOn   string // restricts err to one method; empty fails all
}

// fail returns the injected error when it applies to the named method.
func (f *fakeCatalog) fail(method string) error {
	if f.err != nil && (f.failOn == "" || f.failOn == method) {
		return f.err
	}
	return nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, id uint) (*catalog.Product, error) {
	if err := f.fail("GetProduct"); err != nil {
		return nil, err
	}
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (f *fakeCatalog) eligible(p *catalog.Product, excludeID uint) bool {
	return p.ID != excludeID && p.IsActive && p.InStock
}

func (f *fakeCatalog) collect(excludeID uint, limit int, match func(*catalog.Product) bool) ([]catalog.Product, error) {
	var out []catalog.Product
	for i := range f.products {
		p := &f.products[i]
		if f.eligible(p, excludeID) && match(p) {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return truncate(out, limit), nil
}

func (f *fakeCatalog) FindByCategoryNames(_ context.Context, names []string, excludeID uint, limit int) ([]catalog.Product, error) {
	if err := f.fail("FindByCategoryNames"); err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return f.collect(excludeID, limit, func(p *catalog.Product) bool {
		for _, c := range p.Categories {
			if _, ok := set[c.Name]; ok {
				return true
			}
		}
		return false
	})
}

func (f *fakeCatalog) FindBySpecValue(_ context.Context, fieldNames, tokens []string, excludeID uint, limit int) ([]catalog.Product, error) {
	if err := f.fail("FindBySpecValue"); err != nil {
		return nil, err
	}
	fields := make(map[string]struct{}, len(fieldNames))
	for _, n := range fieldNames {
		fields[NormalizeSpecName(n)] = struct{}{}
	}
	return f.collect(excludeID, limit, func(p *catalog.Product) bool {
		for _, s := range p.Specifications {
			if _, ok := fields[NormalizeSpecName(s.Name)]; !ok {
				continue
			}
			value := strings.ToLower(s.Value)
			for _, token := range tokens {
				if strings.Contains(value, strings.ToLower(token)) {
					return true
				}
			}
		}
		return false
	})
}

func (f *fakeCatalog) FindBySharedCategories(_ context.Context, categoryIDs []uint, excludeID uint, limit int) ([]catalog.Product, error) {
	if err := f.fail("FindBySharedCategories"); err != nil {
		return nil, err
	}
	set := make(map[uint]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		set[id] = struct{}{}
	}
	return f.collect(excludeID, limit, func(p *catalog.Product) bool {
		for _, c := range p.Categories {
			if _, ok := set[c.ID]; ok {
				return true
			}
		}
		return false
	})
}

func (f *fakeCatalog) FindFeatured(_ context.Context, excludeID uint, limit int) ([]catalog.Product, error) {
	if err := f.fail("FindFeatured"); err != nil {
		return nil, err
	}
	out, err := f.collect(excludeID, len(f.products), func(*catalog.Product) bool { return true })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Featured != out[j].Featured {
			return out[i].Featured
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return truncate(out, limit), nil
}

func (f *fakeCatalog) FindByLevel1Categories(_ context.Context, categoryIDs []uint, excludeID uint, limit int) ([]catalog.Product, error) {
	if err := f.fail("FindByLevel1Categories"); err != nil {
		return nil, err
	}
	set := make(map[uint]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		set[id] = struct{}{}
	}
	out, err := f.collect(excludeID, len(f.products), func(p *catalog.Product) bool {
		for _, c := range p.Categories {
			if c.Level != 1 {
				continue
			}
			if _, ok := set[c.ID]; ok {
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Featured != out[j].Featured {
			return out[i].Featured
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return truncate(out, limit), nil
}

func (f *fakeCatalog) SalesTotals(_ context.Context, productIDs []uint) (map[uint]int, error) {
	if err := f.fail("SalesTotals"); err != nil {
		return nil, err
	}
	out := make(map[uint]int)
	for _, id := range productIDs {
		if n, ok := f.sales[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (f *fakeCatalog) RatingSummaries(_ context.Context, productIDs []uint) (map[uint]Rating, error) {
	if err := f.fail("RatingSummaries"); err != nil {
		return nil, err
	}
	out := make(map[uint]Rating)
	for _, id := range productIDs {
		if r, ok := f.ratings[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

var baseTime = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

// catRacket is the shared level-1 category; catYonex and catVictor are
// level-2 brand categories.
var (
	catRacket = catalog.Category{ID: 1, Name: "Vợt cầu lông", Level: 1}
	catYonex  = catalog.Category{ID: 2, Name: "Vợt cầu lông Yonex", Level: 2}
	catVictor = catalog.Category{ID: 3, Name: "Vợt cầu lông Victor", Level: 2}
)

func activeProduct(id uint, name, price string, ageDays int, cats ...catalog.Category) catalog.Product {
	return catalog.Product{
		ID:         id,
		Name:       name,
		Price:      dec(price),
		InStock:    true,
		IsActive:   true,
		CreatedAt:  baseTime.Add(-time.Duration(ageDays) * 24 * time.Hour),
		Categories: cats,
	}
}

func newTestEngine(t *testing.T, provider CatalogProvider) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), zerolog.Nop())
	require.NoError(t, err)
	e.SetProvider(provider)
	return e
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BrandSameWeight = 1.5
	_, err := NewEngine(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestRecommendUnifiedNotFound(t *testing.T) {
	e := newTestEngine(t, &fakeCatalog{})
	_, err := e.RecommendUnified(context.Background(), 99, 8)
	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestRecommendUnifiedRanking(t *testing.T) {
	src := activeProduct(1, "Vợt Yonex Astrox 99", "2000000", 0, catRacket, catYonex)
	src.Specifications = []catalog.Specification{{Name: "Trình Độ Chơi", Value: "Nâng cao"}}

	// sameBrand is reachable through both the brand and skill
	// generators; first-wins dedupe must keep the brand candidate.
	sameBrand := activeProduct(2, "Vợt Yonex Astrox 88D", "2100000", 1, catRacket, catYonex)
	sameBrand.Specifications = []catalog.Specification{{Name: "Trình Độ Chơi", Value: "Nâng cao"}}

	sameSkill := activeProduct(3, "Vợt Kumpoo Power Control", "1500000", 2, catRacket)
	sameSkill.Specifications = []catalog.Specification{{Name: "Trình độ chơi", Value: "Chuyên nghiệp"}}

	compatBrand := activeProduct(4, "Vợt Victor Thruster K", "1900000", 3, catRacket, catVictor)

	provider := &fakeCatalog{
		products: []catalog.Product{src, sameBrand, sameSkill, compatBrand},
		ratings:  map[uint]Rating{2: {Average: 4.5, Count: 12}},
	}
	e := newTestEngine(t, provider)

	resp, err := e.RecommendUnified(context.Background(), 1, 8)
	require.NoError(t, err)
	require.Len(t, resp.Items, 3)

	// brand same: 1.0 * 0.4; brand compatible: 0.7 * 0.4;
	// skill same: 0.7 * 0.35.
	assert.Equal(t, uint(2), resp.Items[0].ProductID)
	assert.Equal(t, "brand", resp.Items[0].Source)
	assert.InDelta(t, 0.4, resp.Items[0].Score, 1e-9)

	assert.Equal(t, uint(4), resp.Items[1].ProductID)
	assert.InDelta(t, 0.28, resp.Items[1].Score, 1e-9)

	assert.Equal(t, uint(3), resp.Items[2].ProductID)
	assert.Equal(t, "skill", resp.Items[2].Source)
	assert.InDelta(t, 0.245, resp.Items[2].Score, 1e-9)

	assert.Equal(t, Rating{Average: 4.5, Count: 12}, resp.Items[0].Rating)

	assert.Equal(t, 2, resp.Metadata.GeneratorCounts["brand"])
	assert.Equal(t, 2, resp.Metadata.GeneratorCounts["skill"])
	assert.Equal(t, SkillAdvanced, resp.Metadata.SourceAttributes.SkillLevel)
	assert.NotEmpty(t, resp.Metadata.RequestID)

	for _, item := range resp.Items {
		assert.NotEqual(t, uint(1), item.ProductID, "source product must never be recommended")
	}
}

func TestRecommendUnifiedFallback(t *testing.T) {
	lonely := catalog.Category{ID: 50, Name: "Phụ kiện khác", Level: 1}
	src := activeProduct(10, "Quấn cán vợt", "50000", 0, lonely)

	other1 := activeProduct(11, "Túi vợt Yonex", "500000", 1, catRacket)
	other2 := activeProduct(12, "Balo cầu lông", "700000", 2, catRacket)
	other2.Featured = true

	provider := &fakeCatalog{products: []catalog.Product{src, other1, other2}}
	e := newTestEngine(t, provider)

	resp, err := e.RecommendUnified(context.Background(), 10, 8)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	// Featured products come first in the fallback pool.
	assert.Equal(t, uint(12), resp.Items[0].ProductID)
	for _, item := range resp.Items {
		assert.Equal(t, "fallback", item.Source)
		assert.InDelta(t, 0.1, item.Score, 1e-9)
	}
}

func TestRecommendUnifiedRespectsLimit(t *testing.T) {
	products := []catalog.Product{activeProduct(1, "Vợt Yonex", "2000000", 0, catRacket, catYonex)}
	for i := uint(2); i <= 8; i++ {
		products = append(products, activeProduct(i, "Vợt Yonex khác", "2000000", int(i), catRacket, catYonex))
	}
	e := newTestEngine(t, &fakeCatalog{products: products})

	resp, err := e.RecommendUnified(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(resp.Items), 2)
}

func TestClampLimit(t *testing.T) {
	e := newTestEngine(t, &fakeCatalog{})
	assert.Equal(t, e.config.DefaultLimit, e.clampLimit(0))
	assert.Equal(t, e.config.DefaultLimit, e.clampLimit(-3))
	assert.Equal(t, 5, e.clampLimit(5))
	assert.Equal(t, e.config.MaxLimit, e.clampLimit(10_000))
}

func TestRecommendUnifiedCacheHit(t *testing.T) {
	src := activeProduct(1, "Vợt Yonex", "2000000", 0, catRacket, catYonex)
	other := activeProduct(2, "Vợt Yonex khác", "2100000", 1, catRacket, catYonex)
	e := newTestEngine(t, &fakeCatalog{products: []catalog.Product{src, other}})

	first, err := e.RecommendUnified(context.Background(), 1, 8)
	require.NoError(t, err)
	assert.False(t, first.Metadata.CacheHit)

	second, err := e.RecommendUnified(context.Background(), 1, 8)
	require.NoError(t, err)
	assert.True(t, second.Metadata.CacheHit)
	assert.Equal(t, first.Items, second.Items)

	e.InvalidateCache()
	third, err := e.RecommendUnified(context.Background(), 1, 8)
	require.NoError(t, err)
	assert.False(t, third.Metadata.CacheHit)
}

func TestRecommendTwoListRelatedScoring(t *testing.T) {
	src := activeProduct(1, "Vợt Yonex Astrox 99", "2000000", 0, catRacket, catYonex)
	src.Specifications = []catalog.Specification{
		{Name: "Trình Độ Chơi", Value: "Nâng cao"},
		{Name: "Độ Cứng Đũa", Value: "Cứng"},
		{Name: "Phong Cách Chơi", Value: "Tấn công"},
	}

	// Matches skill and flexibility: 0.4 + 0.35 = 0.75.
	strong := activeProduct(2, "Vợt Yonex Astrox 100ZZ", "2500000", 1, catRacket, catYonex)
	strong.Specifications = []catalog.Specification{
		{Name: "Trình Độ Chơi", Value: "Chuyên nghiệp"},
		{Name: "Độ Cứng Đũa", Value: "Cứng"},
	}

	// Matches flexibility only: 0.35.
	weak := activeProduct(3, "Vợt Yonex Nanoflare", "1800000", 2, catRacket, catYonex)
	weak.Specifications = []catalog.Specification{
		{Name: "Trình Độ Chơi", Value: "Mới bắt đầu"},
		{Name: "Độ Cứng Đũa", Value: "Cứng"},
	}

	provider := &fakeCatalog{products: []catalog.Product{src, strong, weak}}
	e := newTestEngine(t, provider)

	resp, err := e.RecommendTwoList(context.Background(), 1, 8, 8)
	require.NoError(t, err)
	require.Len(t, resp.RelatedProducts, 2)

	assert.Equal(t, uint(2), resp.RelatedProducts[0].ProductID)
	assert.InDelta(t, 0.75, resp.RelatedProducts[0].Score, 1e-9)
	assert.Equal(t, uint(3), resp.RelatedProducts[1].ProductID)
	assert.InDelta(t, 0.35, resp.RelatedProducts[1].Score, 1e-9)

	assert.True(t, resp.Metadata.PriceBand.Min.Equal(dec("1400000")))
	assert.True(t, resp.Metadata.PriceBand.Max.Equal(dec("2600000")))
}

// An unknown play style must not count as agreement, even when both
// products are unknown.
func TestRelatedScoreUnknownStyleNeverMatches(t *testing.T) {
	e := newTestEngine(t, &fakeCatalog{})

	src := Attributes{SkillLevel: SkillAdvanced, Flexibility: FlexStiff, PlayStyle: PlayStyleUnknown}
	cand := Attributes{SkillLevel: SkillAdvanced, Flexibility: FlexStiff, PlayStyle: PlayStyleUnknown}
	assert.InDelta(t, 0.75, e.relatedScore(src, cand), 1e-9)

	cand.PlayStyle = StyleAttack
	src.PlayStyle = StyleAttack
	assert.InDelta(t, 1.0, e.relatedScore(src, cand), 1e-9)
}

// Tied related scores are ordered by price proximity to the source.
func TestRecommendTwoListTieBreakByPrice(t *testing.T) {
	src := activeProduct(1, "Vợt Yonex Astrox 99", "2000000", 5, catRacket, catYonex)
	src.Specifications = []catalog.Specification{{Name: "Độ Cứng Đũa", Value: "Cứng"}}

	// far is newer so the pool lists it first; both score 0.35.
	far := activeProduct(2, "Vợt Yonex xa giá", "2100000", 0, catRacket, catYonex)
	far.Specifications = []catalog.Specification{{Name: "Độ Cứng Đũa", Value: "Cứng"}}
	far.Specifications = append(far.Specifications, catalog.Specification{Name: "Trình Độ Chơi", Value: "Mới bắt đầu"})

	near := activeProduct(3, "Vợt Yonex gần giá", "2010000", 1, catRacket, catYonex)
	near.Specifications = []catalog.Specification{
		{Name: "Độ Cứng Đũa", Value: "Cứng"},
		{Name: "Trình Độ Chơi", Value: "Mới bắt đầu"},
	}

	provider := &fakeCatalog{products: []catalog.Product{src, far, near}}
	e := newTestEngine(t, provider)

	resp, err := e.RecommendTwoList(context.Background(), 1, 8, 8)
	require.NoError(t, err)
	require.Len(t, resp.RelatedProducts, 2)
	assert.Equal(t, uint(3), resp.RelatedProducts[0].ProductID, "10k price distance beats 100k")
	assert.Equal(t, uint(2), resp.RelatedProducts[1].ProductID)
}

func TestRecommendTwoListBestSellers(t *testing.T) {
	src := activeProduct(1, "Vợt Yonex Astrox 99", "2000000", 0, catRacket, catYonex)

	hot := activeProduct(2, "Vợt bán chạy nhất", "2200000", 3, catRacket)
	warm := activeProduct(3, "Vợt bán khá", "1900000", 2, catRacket)
	cold := activeProduct(4, "Vợt chưa ai mua", "2000000", 1, catRacket)

	provider := &fakeCatalog{
		products: []catalog.Product{src, hot, warm, cold},
		sales:    map[uint]int{2: 50, 3: 10},
	}
	e := newTestEngine(t, provider)

	resp, err := e.RecommendTwoList(context.Background(), 1, 8, 8)
	require.NoError(t, err)
	require.Len(t, resp.YouMightLike, 2)

	assert.Equal(t, uint(2), resp.YouMightLike[0].ProductID)
	assert.Equal(t, 50, resp.YouMightLike[0].TotalSales)
	assert.Equal(t, uint(3), resp.YouMightLike[1].ProductID)

	// cold sits inside the price band but has zero delivered sales,
	// so the band alone never qualifies it.
	for _, item := range resp.YouMightLike {
		assert.NotEqual(t, uint(4), item.ProductID)
	}
}

func TestRecommendTwoListBestSellerTieBreaks(t *testing.T) {
	src := activeProduct(1, "Vợt nguồn", "2000000", 0, catRacket)

	// Equal sales; nearer price wins.
	a := activeProduct(2, "Vợt A", "2050000", 5, catRacket)
	b := activeProduct(3, "Vợt B", "2500000", 1, catRacket)

	provider := &fakeCatalog{
		products: []catalog.Product{src, a, b},
		sales:    map[uint]int{2: 7, 3: 7},
	}
	e := newTestEngine(t, provider)

	resp, err := e.RecommendTwoList(context.Background(), 1, 8, 8)
	require.NoError(t, err)
	require.Len(t, resp.YouMightLike, 2)
	assert.Equal(t, uint(2), resp.YouMightLike[0].ProductID)
}

func TestDiagnose(t *testing.T) {
	src := activeProduct(1, "Vợt Yonex Astrox 99", "2000000", 0, catRacket, catYonex)
	src.Specifications = []catalog.Specification{{Name: "Trình Độ Chơi", Value: "Nâng cao"}}
	other := activeProduct(2, "Vợt Yonex Astrox 88D", "2100000", 1, catRacket, catYonex)

	e := newTestEngine(t, &fakeCatalog{products: []catalog.Product{src, other}})

	diag, err := e.Diagnose(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, uint(1), diag.ProductID)
	assert.Equal(t, SkillAdvanced, diag.Attributes.SkillLevel)
	assert.Len(t, diag.Generators["brand"], 1)
	assert.NotNil(t, diag.Tables.Brands)
}

func TestSetTablesReplacesBrandFamilies(t *testing.T) {
	src := activeProduct(1, "Vợt Yonex Astrox 99", "2000000", 0, catRacket, catYonex)
	victor := activeProduct(2, "Vợt Victor Thruster K", "1900000", 1, catRacket, catVictor)
	e := newTestEngine(t, &fakeCatalog{products: []catalog.Product{src, victor}})

	diag, err := e.Diagnose(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, diag.Generators["brand"], 1)

	// Dropping Victor from Yonex's compatible families removes it from
	// the brand generator's candidates.
	tables := DefaultTables()
	tables.Brands["Vợt cầu lông Yonex"] = BrandCompat{
		Same:   []string{"Vợt cầu lông Yonex"},
		Reason: "Thương hiệu Yonex",
	}
	e.SetTables(tables)

	diag, err = e.Diagnose(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, diag.Generators["brand"])
}

func TestEngineGeneratorErrorFailsRequest(t *testing.T) {
	src := activeProduct(1, "Vợt Yonex Astrox 99", "2000000", 0, catRacket, catYonex)
	sibling := activeProduct(2, "Vợt Yonex Nanoflare 800", "1800000", 1, catRacket, catYonex)
	provider := &fakeCatalog{products: []catalog.Product{src, sibling}}
	e := newTestEngine(t, provider)

	resp, err := e.RecommendUnified(context.Background(), 1, 8)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Items)

	// One failing generator query fails the whole request even though
	// the brand generator still has results; partial rankings are
	// never served.
	e.InvalidateCache()
	provider.err = errors.New("connection reset")
	provider.failOn = "FindBySpecValue"
	_, err = e.RecommendUnified(context.Background(), 1, 8)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrProductNotFound))

	// A provider-wide outage fails the request at the source lookup.
	provider.failOn = ""
	_, err = e.RecommendUnified(context.Background(), 1, 8)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrProductNotFound))
}
