package models

import (
	"sort"
	"strings"

	"gorm.io/gorm"
)

// ProductImage is one catalog image of a product.
type ProductImage struct {
	URL     string `json:"url" validate:"required"`
	AltText string `json:"altText"`
}

// Product represents a product in the catalog. Variant axes and images are
// stored as JSON so the row stays a single document-style aggregate.
type Product struct {
	ID            string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string         `json:"name" validate:"required,min=2,max=100"`
	Description   string         `json:"description" validate:"omitempty,max=2000"`
	Price         float64        `json:"price" validate:"required,gt=0"`
	DiscountPrice float64        `json:"discountPrice" validate:"omitempty,gte=0"`
	CountInStock  int            `json:"countInStock" validate:"gte=0"`
	SKU           string         `json:"sku" gorm:"type:varchar(64)"`
	Category      string         `json:"category" gorm:"index;type:varchar(100)"`
	Brand         string         `json:"brand" gorm:"type:varchar(100)"`
	Collections   string         `json:"collections" gorm:"type:varchar(100)"`
	Material      string         `json:"material" gorm:"type:varchar(100)"`
	Gender        string         `json:"gender" gorm:"type:varchar(20)"`
	Sizes         []string       `json:"sizes" gorm:"serializer:json"`
	Colors        []string       `json:"colors" gorm:"serializer:json"`
	Images        []ProductImage `json:"images" gorm:"serializer:json"`
	Tags          []string       `json:"tags" gorm:"serializer:json"`
	Rating        float64        `json:"rating"`
	NumReviews    int            `json:"numReviews"`
	IsFeatured    bool           `json:"isFeatured"`
	IsPublished   bool           `json:"isPublished"`
	CreatedBy     string         `json:"user" gorm:"type:varchar(36)"` // admin who created the product
	gorm.Model
}

// FirstImageURL returns the URL of the first catalog image, or "" when the
// product has none. Cart lines snapshot this at add time.
func (p *Product) FirstImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// Sort keys accepted by the catalog listing.
const (
	SortPriceAsc   = "priceAsc"
	SortPriceDesc  = "priceDesc"
	SortPopularity = "popularity"
)

// FilterAll is the sentinel facet value that disables a facet entirely.
const FilterAll = "all"

// ProductFilter describes the catalog listing facets. Zero-valued fields
// apply no constraint; facets are AND'd together, comma-separated list
// facets are OR'd within themselves.
type ProductFilter struct {
	Collection string
	Category   string
	Material   string
	Brand      string
	Size       string
	Color      string
	Gender     string
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	SortBy     string
	Limit      int // 0 = unlimited
}

// Matches reports whether the product satisfies every active facet.
func (f ProductFilter) Matches(p *Product) bool {
	if !matchFacet(f.Collection, p.Collections) {
		return false
	}
	if !matchFacet(f.Category, p.Category) {
		return false
	}
	if !matchList(f.Material, []string{p.Material}) {
		return false
	}
	if !matchList(f.Brand, []string{p.Brand}) {
		return false
	}
	if !matchList(f.Size, p.Sizes) {
		return false
	}
	if !matchList(f.Color, p.Colors) {
		return false
	}
	if f.Gender != "" && !containsFold(p.Gender, f.Gender) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Search != "" && !containsFold(p.Name, f.Search) && !containsFold(p.Description, f.Search) {
		return false
	}
	return true
}

// Apply filters, sorts and limits the given products in memory. The GORM
// repository pushes the same semantics into SQL; this form backs the
// in-memory repository and tests.
func (f ProductFilter) Apply(products []Product) []Product {
	matched := make([]Product, 0, len(products))
	for i := range products {
		if f.Matches(&products[i]) {
			matched = append(matched, products[i])
		}
	}
	switch f.SortBy {
	case SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	case SortPopularity:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Rating > matched[j].Rating })
	}
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched
}

// matchFacet handles single-value facets with the "all" sentinel.
func matchFacet(want, have string) bool {
	if want == "" || strings.EqualFold(want, FilterAll) {
		return true
	}
	return containsFold(have, want)
}

// matchList handles comma-separated facets: any term matching any value
// satisfies the facet.
func matchList(csv string, values []string) bool {
	terms := SplitFacet(csv)
	if len(terms) == 0 {
		return true
	}
	for _, term := range terms {
		for _, v := range values {
			if containsFold(v, term) {
				return true
			}
		}
	}
	return false
}

// SplitFacet splits a comma-separated facet value into trimmed terms,
// dropping empties.
func SplitFacet(csv string) []string {
	if csv == "" {
		return nil
	}
	var terms []string
	for _, term := range strings.Split(csv, ",") {
		if term = strings.TrimSpace(term); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
