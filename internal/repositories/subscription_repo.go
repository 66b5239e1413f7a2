package repositories

import (
	"errors"
	"fmt"

	"carryloop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionRepository defines the interface for newsletter signups.
type SubscriptionRepository interface {
	GetByEmail(email string) (*models.Subscription, error)
	Create(subscription *models.Subscription) error
}

// GORMSubscriptionRepository is a GORM implementation of
// SubscriptionRepository.
type GORMSubscriptionRepository struct {
	db *gorm.DB
}

// NewGORMSubscriptionRepository creates a new GORMSubscriptionRepository.
func NewGORMSubscriptionRepository(db *gorm.DB) *GORMSubscriptionRepository {
	return &GORMSubscriptionRepository{
		db: db,
	}
}

// GetByEmail retrieves a subscription by email.
func (r *GORMSubscriptionRepository) GetByEmail(email string) (*models.Subscription, error) {
	var subscription models.Subscription
	if err := r.db.First(&subscription, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("subscription for %s: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get subscription for %s: %w", email, err)
	}
	return &subscription, nil
}

// Create persists a new subscription.
func (r *GORMSubscriptionRepository) Create(subscription *models.Subscription) error {
	if subscription.ID == "" {
		subscription.ID = uuid.New().String()
	}
	if err := r.db.Create(subscription).Error; err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}
