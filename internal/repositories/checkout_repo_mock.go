package repositories

import (
	"fmt"
	"sync"

	"carryloop/internal/models"

	"github.com/google/uuid"
)

// MockCheckoutRepository is an in-memory implementation of
// CheckoutRepository with the same version check as the GORM one.
type MockCheckoutRepository struct {
	checkouts map[string]models.Checkout
	mu        sync.RWMutex
}

// NewMockCheckoutRepository creates a new instance of MockCheckoutRepository.
func NewMockCheckoutRepository() *MockCheckoutRepository {
	return &MockCheckoutRepository{
		checkouts: make(map[string]models.Checkout),
	}
}

// GetByID returns a checkout by its ID.
func (r *MockCheckoutRepository) GetByID(id string) (*models.Checkout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	checkout, ok := r.checkouts[id]
	if !ok {
		return nil, fmt.Errorf("checkout with ID %s: %w", id, models.ErrNotFound)
	}
	return &checkout, nil
}

// Create adds a new checkout at version zero.
func (r *MockCheckoutRepository) Create(checkout *models.Checkout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if checkout.ID == "" {
		checkout.ID = uuid.New().String()
	}
	checkout.Version = 0
	r.checkouts[checkout.ID] = *checkout
	return nil
}

// Save writes the checkout back, guarded by its version token.
func (r *MockCheckoutRepository) Save(checkout *models.Checkout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.checkouts[checkout.ID]
	if !ok || stored.Version != checkout.Version {
		return fmt.Errorf("checkout %s was modified concurrently: %w", checkout.ID, models.ErrVersionConflict)
	}
	checkout.Version++
	r.checkouts[checkout.ID] = *checkout
	return nil
}
