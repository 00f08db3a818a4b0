// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/shuttlehub/internal/catalog"
	"github.com/nguyenhoangkha03/shuttlehub/internal/metrics"
	"github.com/nguyenhoangkha03/shuttlehub/internal/recommend"
)

// Store implements recommend.CatalogProvider on top of the catalog
// schema. All Find* queries exclude the given product ID, restrict to
// active in-stock products and preload the associations the engine
// reads (categories, variants, specifications), with variants and
// specifications in insertion order so first-in-list semantics are
// deterministic.
type Store struct {
	db *DB
}

// NewStore creates a catalog store over an open database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// normalizedSpecNameExpr strips the whitespace and trailing-colon noise
// from a free-text specification name in SQL. RTRIM with a character
// set is supported by both postgres and sqlite. Case folding is not
// done here: sqlite's LOWER only folds ASCII, which corrupts the
// Vietnamese names, so casing is covered by the caller passing every
// observed casing in fieldNames.
const normalizedSpecNameExpr = "TRIM(RTRIM(TRIM(specifications.name), ':'))"

// observe records the duration and outcome of one catalog query.
func observe(query string, started time.Time, err error) {
	metrics.RecordDBQuery(query, time.Since(started), err)
}

func (s *Store) preloaded(ctx context.Context) *gorm.DB {
	return s.db.conn.WithContext(ctx).
		Preload("Categories").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("variants.id")
		}).
		Preload("Specifications", func(db *gorm.DB) *gorm.DB {
			return db.Order("specifications.id")
		})
}

// sellable restricts a query to active, in-stock products other than
// the excluded one.
func (s *Store) sellable(ctx context.Context, excludeID uint) *gorm.DB {
	return s.preloaded(ctx).
		Where("products.is_active = ?", true).
		Where("products.in_stock = ?", true).
		Where("products.id <> ?", excludeID)
}

// GetProduct returns one product with its associations, or
// recommend.ErrProductNotFound.
func (s *Store) GetProduct(ctx context.Context, id uint) (*catalog.Product, error) {
	var product catalog.Product
	started := time.Now()
	err := s.preloaded(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		observe("get_product", started, nil)
		return nil, recommend.ErrProductNotFound
	}
	observe("get_product", started, err)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	return &product, nil
}

// FindByCategoryNames returns sellable products belonging to any
// category with one of the given names, newest first.
func (s *Store) FindByCategoryNames(ctx context.Context, names []string, excludeID uint, limit int) ([]catalog.Product, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var products []catalog.Product
	started := time.Now()
	err := s.sellable(ctx, excludeID).
		Distinct("products.*").
		Joins("JOIN product_categories ON product_categories.product_id = products.id").
		Joins("JOIN categories ON categories.id = product_categories.category_id").
		Where("categories.name IN ?", names).
		Order("products.created_at DESC").
		Limit(limit).
		Find(&products).Error
	observe("by_category_name", started, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by category name: %w", err)
	}
	return products, nil
}

// FindBySpecValue returns sellable products owning a specification
// whose normalized name matches one of fieldNames and whose value
// contains one of the tokens, newest first. Value matching is
// case-insensitive; name matching covers every casing listed in
// fieldNames.
func (s *Store) FindBySpecValue(ctx context.Context, fieldNames, tokens []string, excludeID uint, limit int) ([]catalog.Product, error) {
	if len(fieldNames) == 0 || len(tokens) == 0 {
		return nil, nil
	}

	// Accept both the raw casings and the fully normalized form.
	nameVariants := make([]string, 0, len(fieldNames)*2)
	seen := make(map[string]struct{}, len(fieldNames)*2)
	for _, n := range fieldNames {
		for _, v := range []string{strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(n), ":")), recommend.NormalizeSpecName(n)} {
			if _, dup := seen[v]; !dup {
				seen[v] = struct{}{}
				nameVariants = append(nameVariants, v)
			}
		}
	}

	valueClauses := make([]string, len(tokens))
	valueArgs := make([]any, len(tokens))
	for i, token := range tokens {
		valueClauses[i] = "LOWER(specifications.value) LIKE ?"
		valueArgs[i] = "%" + strings.ToLower(token) + "%"
	}

	var products []catalog.Product
	started := time.Now()
	err := s.sellable(ctx, excludeID).
		Distinct("products.*").
		Joins("JOIN specifications ON specifications.product_id = products.id").
		Where(normalizedSpecNameExpr+" IN ?", nameVariants).
		Where("("+strings.Join(valueClauses, " OR ")+")", valueArgs...).
		Order("products.created_at DESC").
		Limit(limit).
		Find(&products).Error
	observe("by_spec_value", started, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by specification: %w", err)
	}
	return products, nil
}

// FindBySharedCategories returns sellable products sharing any of the
// given category IDs, newest first.
func (s *Store) FindBySharedCategories(ctx context.Context, categoryIDs []uint, excludeID uint, limit int) ([]catalog.Product, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	var products []catalog.Product
	started := time.Now()
	err := s.sellable(ctx, excludeID).
		Distinct("products.*").
		Joins("JOIN product_categories ON product_categories.product_id = products.id").
		Where("product_categories.category_id IN ?", categoryIDs).
		Order("products.created_at DESC").
		Limit(limit).
		Find(&products).Error
	observe("by_shared_category", started, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by shared category: %w", err)
	}
	return products, nil
}

// FindFeatured returns sellable products ordered by featured flag then
// recency.
func (s *Store) FindFeatured(ctx context.Context, excludeID uint, limit int) ([]catalog.Product, error) {
	var products []catalog.Product
	started := time.Now()
	err := s.sellable(ctx, excludeID).
		Order("products.featured DESC").
		Order("products.created_at DESC").
		Limit(limit).
		Find(&products).Error
	observe("featured", started, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query featured products: %w", err)
	}
	return products, nil
}

// FindByLevel1Categories returns sellable products in any of the given
// level-1 categories, ordered by featured flag then recency.
func (s *Store) FindByLevel1Categories(ctx context.Context, categoryIDs []uint, excludeID uint, limit int) ([]catalog.Product, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	var products []catalog.Product
	started := time.Now()
	err := s.sellable(ctx, excludeID).
		Distinct("products.*").
		Joins("JOIN product_categories ON product_categories.product_id = products.id").
		Joins("JOIN categories ON categories.id = product_categories.category_id").
		Where("categories.id IN ? AND categories.level = ?", categoryIDs, 1).
		Order("products.featured DESC").
		Order("products.created_at DESC").
		Limit(limit).
		Find(&products).Error
	observe("by_level1_category", started, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by level-1 category: %w", err)
	}
	return products, nil
}

// salesRow receives one sales aggregation result.
type salesRow struct {
	ProductID uint
	Total     int
}

// SalesTotals sums delivered-order quantities per product. Products
// with no delivered sales are absent from the result.
func (s *Store) SalesTotals(ctx context.Context, productIDs []uint) (map[uint]int, error) {
	if len(productIDs) == 0 {
		return map[uint]int{}, nil
	}

	var rows []salesRow
	started := time.Now()
	err := s.db.conn.WithContext(ctx).
		Model(&catalog.OrderItem{}).
		Select("order_items.product_id AS product_id, SUM(order_items.quantity) AS total").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ?", catalog.OrderStatusDelivered).
		Where("order_items.product_id IN ?", productIDs).
		Group("order_items.product_id").
		Scan(&rows).Error
	observe("sales_totals", started, err)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales totals: %w", err)
	}

	totals := make(map[uint]int, len(rows))
	for _, r := range rows {
		totals[r.ProductID] = r.Total
	}
	return totals, nil
}

// ratingRow receives one rating aggregation result.
type ratingRow struct {
	ProductID uint
	Average   float64
	Count     int
}

// RatingSummaries aggregates review ratings per product. Products
// without reviews are absent from the result.
func (s *Store) RatingSummaries(ctx context.Context, productIDs []uint) (map[uint]recommend.Rating, error) {
	if len(productIDs) == 0 {
		return map[uint]recommend.Rating{}, nil
	}

	var rows []ratingRow
	started := time.Now()
	err := s.db.conn.WithContext(ctx).
		Model(&catalog.Review{}).
		Select("product_id, AVG(rating) AS average, COUNT(*) AS count").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	observe("rating_summaries", started, err)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	ratings := make(map[uint]recommend.Rating, len(rows))
	for _, r := range rows {
		ratings[r.ProductID] = recommend.Rating{Average: r.Average, Count: r.Count}
	}
	return ratings, nil
}
