package repositories

import "carryloop/internal/models"

// OrderRepository defines the interface for order data access. Orders are
// created exactly once by checkout finalization and mutated only by admin
// delivery-status updates.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByUserID(userID string) ([]models.Order, error) // newest first
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	Delete(id string) error
}
