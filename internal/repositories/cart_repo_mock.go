package repositories

import (
	"fmt"
	"sync"

	"carryloop/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository. It
// enforces the same version compare-and-swap as the GORM implementation.
type MockCartRepository struct {
	carts map[string]models.Cart
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// GetByUserID returns the cart owned by a registered user.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cart := range r.carts {
		if cart.UserID != "" && cart.UserID == userID {
			c := cart
			return &c, nil
		}
	}
	return nil, fmt.Errorf("cart for user %s: %w", userID, models.ErrNotFound)
}

// GetByGuestID returns the cart keyed by a guest identifier.
func (r *MockCartRepository) GetByGuestID(guestID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cart := range r.carts {
		if cart.GuestID != "" && cart.GuestID == guestID {
			c := cart
			return &c, nil
		}
	}
	return nil, fmt.Errorf("cart for guest %s: %w", guestID, models.ErrNotFound)
}

// Create adds a new cart at version zero.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	cart.Version = 0
	r.carts[cart.ID] = *cart
	return nil
}

// Save writes the cart back, guarded by its version token.
func (r *MockCartRepository) Save(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.carts[cart.ID]
	if !ok || stored.Version != cart.Version {
		return fmt.Errorf("cart %s was modified concurrently: %w", cart.ID, models.ErrVersionConflict)
	}
	cart.Version++
	r.carts[cart.ID] = *cart
	return nil
}

// Delete removes a cart by its ID.
func (r *MockCartRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[id]; !ok {
		return fmt.Errorf("cart with ID %s: %w", id, models.ErrNotFound)
	}
	delete(r.carts, id)
	return nil
}
