// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

// Package catalog defines the read model of the retailer's catalog and
// order data as GORM entities.
//
// All entities are created and mutated by the catalog-management
// subsystem; this service only reads them. Prices are stored as
// decimals; a variant's price, when present, supersedes the
// product-level price for display purposes.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusDelivered is the only order state that counts toward
// best-seller sales aggregation.
const OrderStatusDelivered = "delivered"

// Product is a sellable catalog item.
type Product struct {
	ID           uint                `gorm:"primaryKey" json:"id"`
	Name         string              `gorm:"size:255;not null" json:"name"`
	Price        decimal.Decimal     `gorm:"type:decimal(16,2);not null" json:"price"`
	ComparePrice decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"compare_price"`
	InStock      bool                `gorm:"not null;default:true" json:"in_stock"`
	IsActive     bool                `gorm:"not null;default:true" json:"is_active"`
	Featured     bool                `gorm:"not null;default:false" json:"featured"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`

	Categories     []Category      `gorm:"many2many:product_categories" json:"categories,omitempty"`
	Variants       []Variant       `json:"variants,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
	Reviews        []Review        `json:"reviews,omitempty"`
}

// Category groups products. Level 1 is a broad product type ("Vợt cầu
// lông"); level 2 is a brand-scoped sub-category ("Vợt cầu lông
// Yonex"). A product may belong to categories at both levels; level-2
// membership is the operative brand signal.
type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Level int    `gorm:"not null;index" json:"level"`
}

// Specification is a free-text (name, value, category) triple attached
// to a product. Names are not a controlled vocabulary; consumers must
// normalize them (trim whitespace, strip trailing colon) before
// comparison.
type Specification struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Value     string `gorm:"type:text;not null" json:"value"`
	Category  string `gorm:"size:255" json:"category"`
}

// Variant is a purchasable variation of a product with its own price
// and stock. At most one variant should be flagged default, but this is
// not enforced upstream; the price resolver keeps the first default in
// list order.
type Variant struct {
	ID           uint                `gorm:"primaryKey" json:"id"`
	ProductID    uint                `gorm:"not null;index" json:"product_id"`
	SKU          string              `gorm:"size:100" json:"sku"`
	Price        decimal.Decimal     `gorm:"type:decimal(16,2);not null" json:"price"`
	ComparePrice decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"compare_price"`
	Stock        int                 `gorm:"not null;default:0" json:"stock"`
	IsDefault    bool                `gorm:"not null;default:false" json:"is_default"`
}

// Review is a shopper review with an integer rating.
type Review struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	Rating    int    `gorm:"not null" json:"rating"`
	Comment   string `gorm:"type:text" json:"comment"`
}

// Order is the minimal read view of a customer order. Only orders in
// the delivered state count toward sales aggregation.
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Status    string    `gorm:"size:50;not null;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is a line item within an order.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
}
