package repositories

import "carryloop/internal/models"

// CartRepository defines the interface for cart data access. Save is a
// compare-and-swap on the cart's Version field and fails with
// models.ErrVersionConflict when a concurrent writer got there first.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	GetByGuestID(guestID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	Save(cart *models.Cart) error
	Delete(id string) error
}
