package services

import (
	"errors"
	"fmt"
	"time"

	"carryloop/internal/models"
	"carryloop/internal/repositories"
)

// SubscriptionService handles newsletter signups.
type SubscriptionService struct {
	repo repositories.SubscriptionRepository
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(repo repositories.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
	}
}

// Subscribe records a newsletter signup. Subscribing twice with the same
// email is a conflict.
func (s *SubscriptionService) Subscribe(email string) (*models.Subscription, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", models.ErrValidation)
	}

	if existing, err := s.repo.GetByEmail(email); err == nil && existing != nil {
		return nil, fmt.Errorf("email %q is already subscribed: %w", email, models.ErrConflict)
	} else if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	subscription := &models.Subscription{
		Email:        email,
		SubscribedAt: time.Now(),
	}
	if err := s.repo.Create(subscription); err != nil {
		return nil, err
	}
	return subscription, nil
}
