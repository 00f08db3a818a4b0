// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package database

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nguyenhoangkha03/shuttlehub/internal/catalog"
	"github.com/nguyenhoangkha03/shuttlehub/internal/logging"
)

// SeedMockData loads a small deterministic catalog fixture for
// development and demos. It is idempotent: a database that already has
// products is left untouched.
func (db *DB) SeedMockData() error {
	var count int64
	if err := db.conn.Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		logging.Debug().Int64("products", count).Msg("Catalog not empty, skipping mock data seed")
		return nil
	}

	categories := []catalog.Category{
		{ID: 1, Name: "Vợt cầu lông", Level: 1},
		{ID: 2, Name: "Phụ kiện cầu lông", Level: 1},
		{ID: 3, Name: "Vợt cầu lông Yonex", Level: 2},
		{ID: 4, Name: "Vợt cầu lông Victor", Level: 2},
		{ID: 5, Name: "Vợt cầu lông Lining", Level: 2},
		{ID: 6, Name: "Vợt cầu lông Kumpoo", Level: 2},
	}
	if err := db.conn.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	base := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	price := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		if err != nil {
			panic(err)
		}
		return d
	}
	compare := func(s string) decimal.NullDecimal {
		return decimal.NullDecimal{Decimal: price(s), Valid: true}
	}

	products := []catalog.Product{
		{
			ID: 1, Name: "Vợt cầu lông Yonex Astrox 99 Pro", Price: price("4500000"), ComparePrice: compare("5200000"),
			InStock: true, IsActive: true, Featured: true, CreatedAt: base,
			Categories: []catalog.Category{categories[0], categories[2]},
			Specifications: []catalog.Specification{
				{Name: "Trình Độ Chơi", Value: "Nâng cao, chuyên nghiệp"},
				{Name: "Độ Cứng Đũa", Value: "Cứng"},
				{Name: "Điểm Cân Bằng", Value: "Nặng đầu"},
				{Name: "Trọng Lượng", Value: "4U (80-84g)"},
				{Name: "Phong Cách Chơi", Value: "Tấn công"},
			},
			Variants: []catalog.Variant{
				{SKU: "AX99P-4UG5", Price: price("4500000"), Stock: 8, IsDefault: true},
				{SKU: "AX99P-3UG5", Price: price("4600000"), Stock: 3},
			},
		},
		{
			ID: 2, Name: "Vợt cầu lông Yonex Nanoflare 800", Price: price("3800000"),
			InStock: true, IsActive: true, CreatedAt: base.Add(-24 * time.Hour),
			Categories: []catalog.Category{categories[0], categories[2]},
			Specifications: []catalog.Specification{
				{Name: "Trình độ chơi:", Value: "Trung cấp"},
				{Name: "Độ Cứng Đũa", Value: "Siêu cứng"},
				{Name: "Điểm Cân Bằng", Value: "Nhẹ đầu"},
				{Name: "Phong Cách Chơi", Value: "Phòng thủ"},
			},
		},
		{
			ID: 3, Name: "Vợt cầu lông Victor Thruster Ryuga II", Price: price("3900000"), ComparePrice: compare("4300000"),
			InStock: true, IsActive: true, Featured: true, CreatedAt: base.Add(-48 * time.Hour),
			Categories: []catalog.Category{categories[0], categories[3]},
			Specifications: []catalog.Specification{
				{Name: "Trình Độ Chơi", Value: "Nâng cao"},
				{Name: "Độ Cứng Đũa", Value: "Cứng"},
				{Name: "Điểm Cân Bằng", Value: "Nặng đầu"},
				{Name: "Phong Cách Chơi", Value: "Tấn công"},
			},
		},
		{
			ID: 4, Name: "Vợt cầu lông Lining Axforce 80", Price: price("3200000"),
			InStock: true, IsActive: true, CreatedAt: base.Add(-72 * time.Hour),
			Categories: []catalog.Category{categories[0], categories[4]},
			Specifications: []catalog.Specification{
				{Name: "Trình Độ Chơi", Value: "Trung bình"},
				{Name: "Độ Cứng Đũa", Value: "Trung bình"},
				{Name: "Điểm Cân Bằng", Value: "Cân bằng"},
				{Name: "Phong Cách Chơi", Value: "Công thủ toàn diện"},
			},
		},
		{
			ID: 5, Name: "Vợt cầu lông Kumpoo Power Control K520", Price: price("900000"),
			InStock: true, IsActive: true, CreatedAt: base.Add(-96 * time.Hour),
			Categories: []catalog.Category{categories[0], categories[5]},
			Specifications: []catalog.Specification{
				{Name: "Trình Độ Chơi", Value: "Người mới bắt đầu"},
				{Name: "Độ Cứng Đũa", Value: "Dẻo"},
				{Name: "Điểm Cân Bằng", Value: "Cân bằng"},
			},
		},
		{
			ID: 6, Name: "Túi vợt cầu lông Yonex BA92031", Price: price("1200000"),
			InStock: true, IsActive: true, CreatedAt: base.Add(-120 * time.Hour),
			Categories: []catalog.Category{categories[1]},
		},
	}
	if err := db.conn.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	reviews := []catalog.Review{
		{ProductID: 1, Rating: 5, Comment: "Đập cầu cực đã"},
		{ProductID: 1, Rating: 4, Comment: "Hơi nặng đầu với người mới"},
		{ProductID: 3, Rating: 5, Comment: "Đáng tiền"},
		{ProductID: 5, Rating: 4, Comment: "Phù hợp người mới tập"},
	}
	if err := db.conn.Create(&reviews).Error; err != nil {
		return fmt.Errorf("failed to seed reviews: %w", err)
	}

	orders := []catalog.Order{
		{ID: 1, Status: catalog.OrderStatusDelivered, CreatedAt: base.Add(-200 * time.Hour), Items: []catalog.OrderItem{
			{ProductID: 1, Quantity: 2, Price: price("4500000")},
			{ProductID: 5, Quantity: 1, Price: price("900000")},
		}},
		{ID: 2, Status: catalog.OrderStatusDelivered, CreatedAt: base.Add(-150 * time.Hour), Items: []catalog.OrderItem{
			{ProductID: 1, Quantity: 1, Price: price("4500000")},
			{ProductID: 3, Quantity: 3, Price: price("3900000")},
		}},
		// Pending orders never count toward best-seller totals.
		{ID: 3, Status: "pending", CreatedAt: base.Add(-10 * time.Hour), Items: []catalog.OrderItem{
			{ProductID: 2, Quantity: 5, Price: price("3800000")},
		}},
	}
	if err := db.conn.Create(&orders).Error; err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}

	logging.Info().Int("products", len(products)).Msg("Seeded mock catalog data")
	return nil
}
