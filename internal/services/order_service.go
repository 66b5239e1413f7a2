package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"carryloop/internal/models"
	"carryloop/internal/repositories"
)

// OrderService exposes the order read paths and the admin delivery-status
// mutations.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// GetUserOrders returns the caller's orders, newest first.
func (s *OrderService) GetUserOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// GetOrderByID returns one order with its owner projected in.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.projectOwner(order)
	return order, nil
}

// GetAllOrders returns every order with owner projections. Admin only.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range orders {
		s.projectOwner(&orders[i])
	}
	return orders, nil
}

// UpdateOrderStatus overwrites the order's status. The literal status
// "Delivered" additionally latches IsDelivered and DeliveredAt; no other
// status ever clears them.
func (s *OrderService) UpdateOrderStatus(id, status string) (*models.Order, error) {
	if status == "" {
		return nil, fmt.Errorf("status is required: %w", models.ErrValidation)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	order.Status = status
	if status == models.OrderStatusDelivered {
		now := time.Now()
		order.IsDelivered = true
		order.DeliveredAt = &now
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		body, err := json.Marshal(map[string]interface{}{
			"orderID": order.ID,
			"status":  order.Status,
		})
		if err != nil {
			log.Printf("Failed to marshal %s event: %v", EventOrderStatusUpdated, err)
		} else if err := s.publisher.Publish(EventOrderStatusUpdated, body); err != nil {
			log.Printf("Warning: failed to publish %s event for order %s: %v", EventOrderStatusUpdated, order.ID, err)
		}
	}
	return order, nil
}

// DeleteOrder removes an order entirely. Admin only.
func (s *OrderService) DeleteOrder(id string) error {
	return s.orderRepo.Delete(id)
}

// projectOwner attaches the owner's identity fields to the order. A failed
// owner lookup leaves the projection empty rather than failing the read.
func (s *OrderService) projectOwner(order *models.Order) {
	user, err := s.userRepo.GetByID(order.UserID)
	if err != nil {
		log.Printf("Warning: could not project owner %s for order %s: %v", order.UserID, order.ID, err)
		return
	}
	order.Owner = &models.OrderOwner{
		ID:        user.ID,
		FirstName: user.FirstName,
		Email:     user.Email,
	}
}
