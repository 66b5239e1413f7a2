package repositories

import (
	"errors"
	"fmt"

	"carryloop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUserID retrieves the cart owned by a registered user.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// GetByGuestID retrieves the cart keyed by a guest identifier.
func (r *GORMCartRepository) GetByGuestID(guestID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.First(&cart, "guest_id = ?", guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for guest %s: %w", guestID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for guest %s: %w", guestID, err)
	}
	return &cart, nil
}

// Create persists a new cart at version zero.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	cart.Version = 0
	if err := r.db.Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// Save writes the cart back guarded by its version token. The row only
// updates when nobody else wrote it since it was read; otherwise the
// caller gets models.ErrVersionConflict and must re-read.
func (r *GORMCartRepository) Save(cart *models.Cart) error {
	readVersion := cart.Version
	cart.Version = readVersion + 1
	res := r.db.Model(&models.Cart{}).
		Where("id = ? AND version = ?", cart.ID, readVersion).
		Select("*").
		Updates(cart)
	if res.Error != nil {
		cart.Version = readVersion
		return fmt.Errorf("failed to save cart %s: %w", cart.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		cart.Version = readVersion
		return fmt.Errorf("cart %s was modified concurrently: %w", cart.ID, models.ErrVersionConflict)
	}
	return nil
}

// Delete removes a cart by its ID.
func (r *GORMCartRepository) Delete(id string) error {
	res := r.db.Delete(&models.Cart{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart with ID %s: %w", id, models.ErrNotFound)
	}
	return nil
}
