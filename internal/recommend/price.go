// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package recommend

import (
	"github.com/shopspring/decimal"

	"github.com/nguyenhoangkha03/shuttlehub/internal/catalog"
)

// hundred is the decimal constant for percentage math.
var hundred = decimal.NewFromInt(100)

// ResolvePrice resolves a product's effective display price, comparison
// price and discount percentage.
//
// A product without variants uses its own fields. With variants, the
// variant flagged default is selected (first in list order when more
// than one is flagged); without a default flag the first variant is
// used. If the selected variant is out of stock and another variant has
// positive stock, the first stocked variant takes precedence over the
// default flag. A variant's missing compare price falls back to the
// product-level compare price.
func ResolvePrice(p *catalog.Product) PriceInfo {
	if len(p.Variants) == 0 {
		return PriceInfo{
			DisplayPrice:    p.Price,
			ComparePrice:    p.ComparePrice,
			DiscountPercent: discountPercent(p.Price, p.ComparePrice),
		}
	}

	selected := selectVariant(p.Variants)

	compare := selected.ComparePrice
	if !compare.Valid {
		compare = p.ComparePrice
	}

	return PriceInfo{
		DisplayPrice:    selected.Price,
		ComparePrice:    compare,
		DiscountPercent: discountPercent(selected.Price, compare),
	}
}

// selectVariant picks the variant whose price is shown to the shopper.
func selectVariant(variants []catalog.Variant) catalog.Variant {
	selected := variants[0]
	for _, v := range variants {
		if v.IsDefault {
			selected = v
			break
		}
	}

	if selected.Stock > 0 {
		return selected
	}
	for _, v := range variants {
		if v.Stock > 0 {
			return v
		}
	}
	return selected
}

// discountPercent computes (compare - price) / compare * 100 rounded to
// one decimal place, and zero whenever the compare price is absent or
// not strictly greater than the price.
func discountPercent(price decimal.Decimal, compare decimal.NullDecimal) decimal.Decimal {
	if !compare.Valid || compare.Decimal.LessThanOrEqual(price) {
		return decimal.Zero
	}
	return compare.Decimal.Sub(price).Div(compare.Decimal).Mul(hundred).Round(1)
}
