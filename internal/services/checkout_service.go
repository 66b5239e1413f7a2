package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"carryloop/internal/models"
	"carryloop/internal/repositories"
)

// EventPublisher pushes order lifecycle events onto the message broker.
// Implemented by rabbitmq.Client; a nil publisher disables publishing.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// Routing keys for published order events.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status_updated"
)

// CheckoutService drives the checkout state machine:
// pending/unpaid -> paid -> finalised. Transitions are one-directional and
// finalisation emits exactly one order.
type CheckoutService struct {
	checkoutRepo repositories.CheckoutRepository
	orderRepo    repositories.OrderRepository
	cartRepo     repositories.CartRepository
	publisher    EventPublisher
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(checkoutRepo repositories.CheckoutRepository, orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, publisher EventPublisher) *CheckoutService {
	return &CheckoutService{
		checkoutRepo: checkoutRepo,
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		publisher:    publisher,
	}
}

// CreateCheckout snapshots the intended purchase under the caller's
// ownership. TotalPrice is stored as asserted by the client; it is not
// recomputed from the items here.
func (s *CheckoutService) CreateCheckout(userID string, items []models.CheckoutItem, shippingAddress models.Address, paymentMethod string, totalPrice float64) (*models.Checkout, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("checkout requires at least one item: %w", models.ErrValidation)
	}

	checkout := &models.Checkout{
		UserID:          userID,
		Items:           items,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		TotalPrice:      totalPrice,
		PaymentStatus:   models.PaymentPending,
		IsPaid:          false,
	}
	if err := s.checkoutRepo.Create(checkout); err != nil {
		return nil, err
	}
	log.Printf("Checkout %s created for user %s", checkout.ID, userID)
	return checkout, nil
}

// MarkPaid records payment confirmation. Only the literal status "paid"
// transitions the checkout; anything else is rejected without mutation.
func (s *CheckoutService) MarkPaid(checkoutID, paymentStatus string, paymentDetails models.PaymentDetails) (*models.Checkout, error) {
	checkout, err := s.checkoutRepo.GetByID(checkoutID)
	if err != nil {
		return nil, err
	}
	if paymentStatus != models.PaymentPaid {
		return nil, fmt.Errorf("payment status %q is not paid: %w", paymentStatus, models.ErrValidation)
	}

	now := time.Now()
	checkout.IsPaid = true
	checkout.PaymentStatus = paymentStatus
	checkout.PaymentDetails = paymentDetails
	checkout.PaidAt = &now

	if err := s.checkoutRepo.Save(checkout); err != nil {
		return nil, err
	}
	return checkout, nil
}

// Finalize converts a paid checkout into an immutable order, latches the
// checkout's IsFinalised flag and retires the user's open cart. A checkout
// that was already finalised is rejected without emitting a second order;
// so is a checkout that was never paid.
func (s *CheckoutService) Finalize(checkoutID string) (*models.Order, error) {
	checkout, err := s.checkoutRepo.GetByID(checkoutID)
	if err != nil {
		return nil, err
	}
	if checkout.IsFinalised {
		return nil, fmt.Errorf("checkout %s is already finalised: %w", checkoutID, models.ErrValidation)
	}
	if !checkout.IsPaid {
		return nil, fmt.Errorf("checkout %s is not paid: %w", checkoutID, models.ErrValidation)
	}

	order := &models.Order{
		UserID:          checkout.UserID,
		Items:           orderItemsFromCheckout(checkout.Items),
		ShippingAddress: checkout.ShippingAddress,
		PaymentMethod:   checkout.PaymentMethod,
		TotalPrice:      checkout.TotalPrice,
		IsPaid:          true,
		PaidAt:          checkout.PaidAt,
		PaymentStatus:   models.PaymentPaid,
		PaymentDetails:  checkout.PaymentDetails,
		Status:          models.OrderStatusProcessing,
		IsDelivered:     false,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	now := time.Now()
	checkout.IsFinalised = true
	checkout.FinalisedAt = &now
	if err := s.checkoutRepo.Save(checkout); err != nil {
		return nil, err
	}

	// The purchase consumed the user's open cart; retire it. A missing
	// cart or a failed delete does not undo the finalisation.
	if cart, err := s.cartRepo.GetByUserID(checkout.UserID); err == nil {
		if err := s.cartRepo.Delete(cart.ID); err != nil {
			log.Printf("Warning: failed to delete cart for user %s after finalize: %v", checkout.UserID, err)
		}
	} else if !errors.Is(err, models.ErrNotFound) {
		log.Printf("Warning: failed to look up cart for user %s after finalize: %v", checkout.UserID, err)
	}

	s.publishOrderEvent(EventOrderCreated, map[string]interface{}{
		"orderID":    order.ID,
		"userID":     order.UserID,
		"status":     order.Status,
		"totalPrice": order.TotalPrice,
	})
	log.Printf("Checkout %s finalised into order %s", checkout.ID, order.ID)
	return order, nil
}

// publishOrderEvent best-effort publishes an event; broker trouble is
// logged, never propagated to the caller.
func (s *CheckoutService) publishOrderEvent(eventType string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	if err := s.publisher.Publish(eventType, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}

func orderItemsFromCheckout(items []models.CheckoutItem) []models.OrderItem {
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
		})
	}
	return orderItems
}
