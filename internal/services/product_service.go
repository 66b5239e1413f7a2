package services

import (
	"carryloop/internal/models"
	"carryloop/internal/repositories"
)

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts retrieves the products matching the listing facets.
func (s *ProductService) ListProducts(filter models.ProductFilter) ([]models.Product, error) {
	return s.repo.Find(filter)
}

// GetAllProducts retrieves every product, including unpublished ones.
// Admin only.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new catalog product recorded against the admin
// who created it.
func (s *ProductService) CreateProduct(product *models.Product, createdBy string) error {
	product.CreatedBy = createdBy
	return s.repo.Create(product)
}

// ProductUpdate carries a partial product update. Nil fields keep their
// current values.
type ProductUpdate struct {
	Name          *string
	Description   *string
	Price         *float64
	DiscountPrice *float64
	CountInStock  *int
	SKU           *string
	Category      *string
	Brand         *string
	Collections   *string
	Material      *string
	Gender        *string
	Sizes         *[]string
	Colors        *[]string
	Images        *[]models.ProductImage
	Tags          *[]string
	IsFeatured    *bool
	IsPublished   *bool
}

// UpdateProduct applies a partial update to an existing product.
func (s *ProductService) UpdateProduct(id string, update ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.DiscountPrice != nil {
		product.DiscountPrice = *update.DiscountPrice
	}
	if update.CountInStock != nil {
		product.CountInStock = *update.CountInStock
	}
	if update.SKU != nil {
		product.SKU = *update.SKU
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Brand != nil {
		product.Brand = *update.Brand
	}
	if update.Collections != nil {
		product.Collections = *update.Collections
	}
	if update.Material != nil {
		product.Material = *update.Material
	}
	if update.Gender != nil {
		product.Gender = *update.Gender
	}
	if update.Sizes != nil {
		product.Sizes = *update.Sizes
	}
	if update.Colors != nil {
		product.Colors = *update.Colors
	}
	if update.Images != nil {
		product.Images = *update.Images
	}
	if update.Tags != nil {
		product.Tags = *update.Tags
	}
	if update.IsFeatured != nil {
		product.IsFeatured = *update.IsFeatured
	}
	if update.IsPublished != nil {
		product.IsPublished = *update.IsPublished
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
