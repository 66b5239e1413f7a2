package repositories

import "carryloop/internal/models"

// CheckoutRepository defines the interface for checkout data access.
// Checkouts are never deleted; Save carries the same version
// compare-and-swap contract as CartRepository.Save.
type CheckoutRepository interface {
	GetByID(id string) (*models.Checkout, error)
	Create(checkout *models.Checkout) error
	Save(checkout *models.Checkout) error
}
