// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package recommend

import (
	"strings"

	"github.com/nguyenhoangkha03/shuttlehub/internal/catalog"
)

// Specification field names as they appear in the catalog. Names are
// free text entered by the catalog team in two observed casings, often
// with a trailing colon or stray whitespace; NormalizeSpecName collapses
// all of those before comparison.
var (
	skillFieldNames   = []string{"Trình Độ Chơi", "Trình độ chơi"}
	flexFieldNames    = []string{"Độ Cứng Đũa", "Độ cứng đũa"}
	balanceFieldNames = []string{"Điểm Cân Bằng", "Điểm cân bằng"}
	weightFieldNames  = []string{"Trọng Lượng", "Trọng lượng"}
	styleFieldNames   = []string{"Phong Cách Chơi", "Phong cách chơi"}
)

// knownBrands is the fixed list of brand tokens matched against a
// product's display name when no level-2 category membership exists.
var knownBrands = []string{
	"Yonex",
	"Lining",
	"Victor",
	"Mizuno",
	"Kumpoo",
	"Apacs",
	"Forza",
	"Fleet",
	"Proace",
	"VNB",
}

// skillTokens maps each skill level to the value tokens that identify
// it. Tokens are matched case-insensitively as substrings of the
// specification value, in declaration order; the first level with a
// matching token wins.
var skillTokens = []struct {
	level  SkillLevel
	tokens []string
}{
	{SkillBeginner, []string{"mới bắt đầu", "mới chơi", "người mới", "cơ bản", "beginner"}},
	{SkillAdvanced, []string{"nâng cao", "chuyên nghiệp", "advanced", "chuyên sâu"}},
	{SkillIntermediate, []string{"trung bình", "trung cấp", "intermediate"}},
}

// flexTokens maps flexibility classes to value tokens. "siêu cứng" must
// be checked before "cứng" (substring), so extra-stiff precedes stiff.
var flexTokens = []struct {
	flex   Flexibility
	tokens []string
}{
	{FlexExtraStiff, []string{"siêu cứng", "extra stiff"}},
	{FlexStiff, []string{"cứng", "stiff"}},
	{FlexFlexible, []string{"dẻo", "flexible"}},
	{FlexMedium, []string{"trung bình", "medium"}},
}

var balanceTokens = []struct {
	balance Balance
	tokens  []string
}{
	{BalanceHeadHeavy, []string{"nặng đầu", "head heavy"}},
	{BalanceHeadLight, []string{"nhẹ đầu", "head light"}},
	{BalanceEven, []string{"cân bằng", "even"}},
}

var weightTokens = []struct {
	class  WeightClass
	tokens []string
}{
	{Weight2U, []string{"2u"}},
	{Weight3U, []string{"3u"}},
	{Weight4U, []string{"4u"}},
	{Weight5U, []string{"5u"}},
}

// styleTokens maps play styles to value tokens. "công thủ toàn diện"
// contains both "công" and "thủ", so allround must be checked first.
var styleTokens = []struct {
	style  PlayStyle
	tokens []string
}{
	{StyleAllround, []string{"công thủ toàn diện", "toàn diện", "allround", "all-round", "all round"}},
	{StyleAttack, []string{"tấn công", "attack"}},
	{StyleDefense, []string{"phòng thủ", "defense", "defence"}},
	{StyleControl, []string{"điều cầu", "kiểm soát", "control"}},
}

// NormalizeSpecName normalizes a free-text specification name for
// comparison: trims whitespace, strips a trailing colon and lowercases.
func NormalizeSpecName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, ":")
	name = strings.TrimSpace(name)
	return strings.ToLower(name)
}

// normalizedFieldSet lowercases a list of accepted field names into a
// membership set.
func normalizedFieldSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[NormalizeSpecName(n)] = struct{}{}
	}
	return set
}

// specValue finds the value of the first specification whose normalized
// name is in the accepted set. Returns "" when no such specification
// exists.
func specValue(specs []catalog.Specification, accepted map[string]struct{}) string {
	for _, s := range specs {
		if _, ok := accepted[NormalizeSpecName(s.Name)]; ok {
			return s.Value
		}
	}
	return ""
}

// ExtractAttributes turns a product's category memberships and raw
// specification rows into a normalized attribute bundle. Extraction
// never fails: missing or unrecognized values fall back to the
// documented defaults.
func ExtractAttributes(p *catalog.Product) Attributes {
	attrs := Attributes{
		Brand:       ExtractBrand(p),
		SkillLevel:  SkillIntermediate,
		Flexibility: FlexMedium,
		Balance:     BalanceEven,
		WeightClass: Weight4U,
		PlayStyle:   PlayStyleUnknown,
	}

	if level, ok := extractSkillLevel(p.Specifications); ok {
		attrs.SkillLevel = level
		attrs.SkillSpecified = true
	}
	if flex, ok := extractFlexibility(p.Specifications); ok {
		attrs.Flexibility = flex
		attrs.FlexibilitySpecified = true
	}
	if balance, ok := extractBalance(p.Specifications); ok {
		attrs.Balance = balance
		attrs.BalanceSpecified = true
	}
	if class, ok := extractWeightClass(p.Specifications); ok {
		attrs.WeightClass = class
		attrs.WeightSpecified = true
	}
	if style, ok := extractPlayStyle(p.Specifications); ok {
		attrs.PlayStyle = style
	}

	return attrs
}

// ExtractBrand resolves a product's brand signal. Preference order:
// the name of any level-2 category the product belongs to, then a
// case-insensitive substring match of the display name against the
// known brand list, then the BrandUnknown sentinel. Never empty.
func ExtractBrand(p *catalog.Product) string {
	for _, c := range p.Categories {
		if c.Level == 2 {
			return c.Name
		}
	}

	nameLower := strings.ToLower(p.Name)
	for _, brand := range knownBrands {
		if strings.Contains(nameLower, strings.ToLower(brand)) {
			return brand
		}
	}

	return BrandUnknown
}

func extractSkillLevel(specs []catalog.Specification) (SkillLevel, bool) {
	value := strings.ToLower(specValue(specs, normalizedFieldSet(skillFieldNames)))
	if value == "" {
		return "", false
	}
	for _, entry := range skillTokens {
		for _, token := range entry.tokens {
			if strings.Contains(value, token) {
				return entry.level, true
			}
		}
	}
	return "", false
}

func extractFlexibility(specs []catalog.Specification) (Flexibility, bool) {
	value := strings.ToLower(specValue(specs, normalizedFieldSet(flexFieldNames)))
	if value == "" {
		return "", false
	}
	for _, entry := range flexTokens {
		for _, token := range entry.tokens {
			if strings.Contains(value, token) {
				return entry.flex, true
			}
		}
	}
	return "", false
}

func extractBalance(specs []catalog.Specification) (Balance, bool) {
	value := strings.ToLower(specValue(specs, normalizedFieldSet(balanceFieldNames)))
	if value == "" {
		return "", false
	}
	for _, entry := range balanceTokens {
		for _, token := range entry.tokens {
			if strings.Contains(value, token) {
				return entry.balance, true
			}
		}
	}
	return "", false
}

func extractWeightClass(specs []catalog.Specification) (WeightClass, bool) {
	value := strings.ToLower(specValue(specs, normalizedFieldSet(weightFieldNames)))
	if value == "" {
		return "", false
	}
	for _, entry := range weightTokens {
		for _, token := range entry.tokens {
			if strings.Contains(value, token) {
				return entry.class, true
			}
		}
	}
	return "", false
}

func extractPlayStyle(specs []catalog.Specification) (PlayStyle, bool) {
	value := strings.ToLower(specValue(specs, normalizedFieldSet(styleFieldNames)))
	if value == "" {
		return "", false
	}
	for _, entry := range styleTokens {
		for _, token := range entry.tokens {
			if strings.Contains(value, token) {
				return entry.style, true
			}
		}
	}
	return "", false
}
