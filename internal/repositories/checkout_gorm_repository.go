package repositories

import (
	"errors"
	"fmt"

	"carryloop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCheckoutRepository is a GORM implementation of CheckoutRepository.
type GORMCheckoutRepository struct {
	db *gorm.DB
}

// NewGORMCheckoutRepository creates a new instance of GORMCheckoutRepository.
func NewGORMCheckoutRepository(db *gorm.DB) *GORMCheckoutRepository {
	return &GORMCheckoutRepository{
		db: db,
	}
}

// GetByID retrieves a checkout by its ID.
func (r *GORMCheckoutRepository) GetByID(id string) (*models.Checkout, error) {
	var checkout models.Checkout
	if err := r.db.First(&checkout, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("checkout with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get checkout by ID %s: %w", id, err)
	}
	return &checkout, nil
}

// Create persists a new checkout at version zero.
func (r *GORMCheckoutRepository) Create(checkout *models.Checkout) error {
	if checkout.ID == "" {
		checkout.ID = uuid.New().String()
	}
	checkout.Version = 0
	if err := r.db.Create(checkout).Error; err != nil {
		return fmt.Errorf("failed to create checkout: %w", err)
	}
	return nil
}

// Save writes the checkout back guarded by its version token.
func (r *GORMCheckoutRepository) Save(checkout *models.Checkout) error {
	readVersion := checkout.Version
	checkout.Version = readVersion + 1
	res := r.db.Model(&models.Checkout{}).
		Where("id = ? AND version = ?", checkout.ID, readVersion).
		Select("*").
		Updates(checkout)
	if res.Error != nil {
		checkout.Version = readVersion
		return fmt.Errorf("failed to save checkout %s: %w", checkout.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		checkout.Version = readVersion
		return fmt.Errorf("checkout %s was modified concurrently: %w", checkout.ID, models.ErrVersionConflict)
	}
	return nil
}
