package models_test

import (
	"testing"

	"carryloop/internal/models"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func sampleCatalog() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Linen Shirt", Description: "Breathable summer shirt", Price: 35, Rating: 4.5, Category: "Shirts", Collections: "Summer", Brand: "Northline", Material: "Linen", Gender: "Men", Sizes: []string{"S", "M"}, Colors: []string{"White", "Beige"}},
		{ID: "p2", Name: "Denim Jacket", Description: "Classic denim jacket", Price: 80, Rating: 4.8, Category: "Jackets", Collections: "Winter", Brand: "Urban Co", Material: "Denim", Gender: "Women", Sizes: []string{"M", "L"}, Colors: []string{"Blue"}},
		{ID: "p3", Name: "Wool Sweater", Description: "Warm knit sweater", Price: 55, Rating: 3.9, Category: "Sweaters", Collections: "Winter", Brand: "Northline", Material: "Wool", Gender: "Men", Sizes: []string{"L", "XL"}, Colors: []string{"Grey", "Navy"}},
	}
}

func TestProductFilter_AllSentinelDisablesFacet(t *testing.T) {
	products := sampleCatalog()

	result := models.ProductFilter{Category: "all"}.Apply(products)
	assert.Len(t, result, 3)

	// Case-insensitive sentinel too.
	result = models.ProductFilter{Category: "ALL", Collection: "All"}.Apply(products)
	assert.Len(t, result, 3)

	result = models.ProductFilter{Category: "jackets"}.Apply(products)
	assert.Len(t, result, 1)
	assert.Equal(t, "p2", result[0].ID)
}

func TestProductFilter_PriceRange(t *testing.T) {
	products := sampleCatalog()

	result := models.ProductFilter{MinPrice: floatPtr(10), MaxPrice: floatPtr(55)}.Apply(products)
	assert.Len(t, result, 2)

	// Bounds are inclusive.
	result = models.ProductFilter{MinPrice: floatPtr(55), MaxPrice: floatPtr(55)}.Apply(products)
	assert.Len(t, result, 1)
	assert.Equal(t, "p3", result[0].ID)

	// Either end is optional.
	result = models.ProductFilter{MinPrice: floatPtr(60)}.Apply(products)
	assert.Len(t, result, 1)
	assert.Equal(t, "p2", result[0].ID)
}

func TestProductFilter_ListFacetsOrWithin(t *testing.T) {
	products := sampleCatalog()

	// Comma-separated terms are OR'd within the facet.
	result := models.ProductFilter{Material: "linen,wool"}.Apply(products)
	assert.Len(t, result, 2)

	// Facets AND across each other.
	result = models.ProductFilter{Material: "linen,wool", Brand: "northline", Size: "xl"}.Apply(products)
	assert.Len(t, result, 1)
	assert.Equal(t, "p3", result[0].ID)

	result = models.ProductFilter{Color: "navy,blue"}.Apply(products)
	assert.Len(t, result, 2)
}

func TestProductFilter_Search(t *testing.T) {
	products := sampleCatalog()

	// Search matches name or description, case-insensitively.
	result := models.ProductFilter{Search: "jacket"}.Apply(products)
	assert.Len(t, result, 1)
	assert.Equal(t, "p2", result[0].ID)

	result = models.ProductFilter{Search: "WARM"}.Apply(products)
	assert.Len(t, result, 1)
	assert.Equal(t, "p3", result[0].ID)

	result = models.ProductFilter{Search: "no-such-thing"}.Apply(products)
	assert.Empty(t, result)
}

func TestProductFilter_SortAndLimit(t *testing.T) {
	products := sampleCatalog()

	result := models.ProductFilter{SortBy: models.SortPriceAsc}.Apply(products)
	assert.Equal(t, []string{"p1", "p3", "p2"}, productIDs(result))

	result = models.ProductFilter{SortBy: models.SortPriceDesc}.Apply(products)
	assert.Equal(t, []string{"p2", "p3", "p1"}, productIDs(result))

	result = models.ProductFilter{SortBy: models.SortPopularity}.Apply(products)
	assert.Equal(t, []string{"p2", "p1", "p3"}, productIDs(result))

	result = models.ProductFilter{SortBy: models.SortPriceAsc, Limit: 2}.Apply(products)
	assert.Equal(t, []string{"p1", "p3"}, productIDs(result))

	// Zero limit means unlimited.
	result = models.ProductFilter{Limit: 0}.Apply(products)
	assert.Len(t, result, 3)
}

func productIDs(products []models.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
