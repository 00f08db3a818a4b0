// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package recommend

// BrandCompat describes which brand families are treated as identical
// and which as adjacent for one level-2 category.
type BrandCompat struct {
	// Same lists level-2 category names considered the same family.
	Same []string `json:"same"`

	// Compatible lists level-2 category names considered adjacent.
	Compatible []string `json:"compatible"`

	// Reason is the shopper-facing explanation attached to candidates
	// from this entry.
	Reason string `json:"reason"`
}

// SkillCompat holds the specification value tokens identifying the same
// skill tier and the next tier up.
type SkillCompat struct {
	Same    []string `json:"same"`
	Upgrade []string `json:"upgrade"`
}

// SpecCompat distinguishes exact-match value tokens from compatible
// (adjacent) ones for a single specification attribute.
type SpecCompat struct {
	Exact      []string `json:"exact"`
	Compatible []string `json:"compatible,omitempty"`
}

// Tables bundles every static compatibility table the engine consults.
// The diagnostics endpoint exposes the tables in effect so they can be
// tuned against real catalog data.
type Tables struct {
	Brands        map[string]BrandCompat     `json:"brands"`
	Skills        map[SkillLevel]SkillCompat `json:"skills"`
	Flexibility   map[Flexibility]SpecCompat `json:"flexibility"`
	Balance       map[Balance]SpecCompat     `json:"balance"`
	WeightClasses map[WeightClass]SpecCompat `json:"weight_classes"`
}

// DefaultTables returns the compatibility tables for the current
// catalog. Keys of Brands are level-2 category names as stored in the
// categories table; the entries were tuned by the merchandising team
// and change rarely.
func DefaultTables() Tables {
	return Tables{
		Brands: map[string]BrandCompat{
			"Vợt cầu lông Yonex": {
				Same:       []string{"Vợt cầu lông Yonex"},
				Compatible: []string{"Vợt cầu lông Victor", "Vợt cầu lông Lining"},
				Reason:     "Thương hiệu Yonex và các hãng cùng phân khúc",
			},
			"Vợt cầu lông Victor": {
				Same:       []string{"Vợt cầu lông Victor"},
				Compatible: []string{"Vợt cầu lông Yonex", "Vợt cầu lông Mizuno"},
				Reason:     "Thương hiệu Victor và các hãng cùng phân khúc",
			},
			"Vợt cầu lông Lining": {
				Same:       []string{"Vợt cầu lông Lining"},
				Compatible: []string{"Vợt cầu lông Yonex", "Vợt cầu lông Victor"},
				Reason:     "Thương hiệu Lining và các hãng cùng phân khúc",
			},
			"Vợt cầu lông Mizuno": {
				Same:       []string{"Vợt cầu lông Mizuno"},
				Compatible: []string{"Vợt cầu lông Victor", "Vợt cầu lông Yonex"},
				Reason:     "Thương hiệu Mizuno và các hãng cùng phân khúc",
			},
			"Vợt cầu lông Kumpoo": {
				Same:       []string{"Vợt cầu lông Kumpoo"},
				Compatible: []string{"Vợt cầu lông Apacs", "Vợt cầu lông Proace"},
				Reason:     "Thương hiệu Kumpoo và các hãng cùng phân khúc",
			},
			"Vợt cầu lông Apacs": {
				Same:       []string{"Vợt cầu lông Apacs"},
				Compatible: []string{"Vợt cầu lông Kumpoo", "Vợt cầu lông Fleet"},
				Reason:     "Thương hiệu Apacs và các hãng cùng phân khúc",
			},
			"Vợt cầu lông Forza": {
				Same:       []string{"Vợt cầu lông Forza"},
				Compatible: []string{"Vợt cầu lông Victor", "Vợt cầu lông Mizuno"},
				Reason:     "Thương hiệu Forza và các hãng cùng phân khúc",
			},
			"Vợt cầu lông Fleet": {
				Same:       []string{"Vợt cầu lông Fleet"},
				Compatible: []string{"Vợt cầu lông Apacs", "Vợt cầu lông Kumpoo"},
				Reason:     "Thương hiệu Fleet và các hãng cùng phân khúc",
			},
			"Vợt cầu lông Proace": {
				Same:       []string{"Vợt cầu lông Proace"},
				Compatible: []string{"Vợt cầu lông Kumpoo", "Vợt cầu lông Apacs"},
				Reason:     "Thương hiệu Proace và các hãng cùng phân khúc",
			},
			"Vợt cầu lông VNB": {
				Same:       []string{"Vợt cầu lông VNB"},
				Compatible: []string{"Vợt cầu lông Proace", "Vợt cầu lông Kumpoo"},
				Reason:     "Thương hiệu VNB và các hãng cùng phân khúc",
			},
		},

		Skills: map[SkillLevel]SkillCompat{
			SkillBeginner: {
				Same:    []string{"mới bắt đầu", "mới chơi", "người mới", "cơ bản", "beginner"},
				Upgrade: []string{"trung bình", "trung cấp", "intermediate"},
			},
			SkillIntermediate: {
				Same:    []string{"trung bình", "trung cấp", "intermediate"},
				Upgrade: []string{"nâng cao", "chuyên nghiệp", "advanced"},
			},
			SkillAdvanced: {
				Same:    []string{"nâng cao", "chuyên nghiệp", "advanced"},
				Upgrade: nil, // no tier above advanced
			},
		},

		Flexibility: map[Flexibility]SpecCompat{
			FlexFlexible: {
				Exact:      []string{"dẻo", "flexible"},
				Compatible: []string{"trung bình", "medium"},
			},
			FlexMedium: {
				Exact:      []string{"trung bình", "medium"},
				Compatible: []string{"dẻo", "cứng"},
			},
			FlexStiff: {
				Exact:      []string{"cứng", "stiff"},
				Compatible: []string{"trung bình", "siêu cứng"},
			},
			FlexExtraStiff: {
				Exact:      []string{"siêu cứng", "extra stiff"},
				Compatible: []string{"cứng"},
			},
		},

		Balance: map[Balance]SpecCompat{
			BalanceHeadHeavy: {
				Exact:      []string{"nặng đầu", "head heavy"},
				Compatible: []string{"cân bằng"},
			},
			BalanceEven: {
				Exact:      []string{"cân bằng", "even"},
				Compatible: []string{"nặng đầu", "nhẹ đầu"},
			},
			BalanceHeadLight: {
				Exact:      []string{"nhẹ đầu", "head light"},
				Compatible: []string{"cân bằng"},
			},
		},

		WeightClasses: map[WeightClass]SpecCompat{
			Weight2U: {Exact: []string{"2u"}},
			Weight3U: {Exact: []string{"3u"}},
			Weight4U: {Exact: []string{"4u"}},
			Weight5U: {Exact: []string{"5u"}},
		},
	}
}
