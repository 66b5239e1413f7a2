package repositories

import (
	"errors"
	"fmt"
	"strings"

	"carryloop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves every product, published or not.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// Find retrieves products matching the listing facets. The SQL mirrors
// models.ProductFilter.Apply: facets AND'd, list facets OR'd within
// themselves, everything case-insensitive partial match.
func (r *GORMProductRepository) Find(filter models.ProductFilter) ([]models.Product, error) {
	q := r.db.Model(&models.Product{})

	if v := filter.Collection; v != "" && !strings.EqualFold(v, models.FilterAll) {
		q = q.Where("LOWER(collections) LIKE ?", likePattern(v))
	}
	if v := filter.Category; v != "" && !strings.EqualFold(v, models.FilterAll) {
		q = q.Where("LOWER(category) LIKE ?", likePattern(v))
	}
	q = facetAnyOf(q, "material", filter.Material)
	q = facetAnyOf(q, "brand", filter.Brand)
	// Sizes and colors persist as JSON arrays; a LIKE over the serialized
	// column gives the same partial-match behavior as the scalar facets.
	q = facetAnyOf(q, "sizes", filter.Size)
	q = facetAnyOf(q, "colors", filter.Color)
	if filter.Gender != "" {
		q = q.Where("LOWER(gender) LIKE ?", likePattern(filter.Gender))
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	switch filter.SortBy {
	case models.SortPriceAsc:
		q = q.Order("price ASC")
	case models.SortPriceDesc:
		q = q.Order("price DESC")
	case models.SortPopularity:
		q = q.Order("rating DESC")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", product.ID, models.ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// likePattern builds a case-insensitive contains pattern for LIKE.
func likePattern(v string) string {
	return "%" + strings.ToLower(v) + "%"
}

// facetAnyOf adds an OR group of partial matches over a comma-separated
// facet value. An empty facet adds no constraint.
func facetAnyOf(q *gorm.DB, column, csv string) *gorm.DB {
	terms := models.SplitFacet(csv)
	if len(terms) == 0 {
		return q
	}
	clauses := make([]string, 0, len(terms))
	args := make([]interface{}, 0, len(terms))
	for _, term := range terms {
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", column))
		args = append(args, likePattern(term))
	}
	return q.Where(strings.Join(clauses, " OR "), args...)
}
