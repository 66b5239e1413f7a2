package services_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"carryloop/internal/models"
	"carryloop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCheckoutRepository is a mock implementation of repositories.CheckoutRepository
type MockCheckoutRepository struct {
	mock.Mock
}

func (m *MockCheckoutRepository) GetByID(id string) (*models.Checkout, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Checkout), args.Error(1)
}

func (m *MockCheckoutRepository) Create(checkout *models.Checkout) error {
	args := m.Called(checkout)
	return args.Error(0)
}

func (m *MockCheckoutRepository) Save(checkout *models.Checkout) error {
	args := m.Called(checkout)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetAll() ([]models.Order, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher records published events for assertions.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(eventType string, body []byte) error {
	args := m.Called(eventType, body)
	return args.Error(0)
}

func checkoutItems() []models.CheckoutItem {
	return []models.CheckoutItem{
		{ProductID: "p1", Name: "Linen Shirt", Image: "https://cdn.example.com/p1.jpg", Price: 35.0, Size: "M", Color: "red", Quantity: 2},
	}
}

func paidCheckout() *models.Checkout {
	paidAt := time.Now().Add(-time.Minute)
	return &models.Checkout{
		ID:              "co1",
		UserID:          "u1",
		Items:           checkoutItems(),
		ShippingAddress: models.Address{Address: "1 Main St", City: "Bandung", PostalCode: "40111", Country: "ID"},
		PaymentMethod:   "PayPal",
		TotalPrice:      70.0,
		IsPaid:          true,
		PaymentStatus:   models.PaymentPaid,
		PaidAt:          &paidAt,
	}
}

func TestCheckoutService_CreateCheckout(t *testing.T) {
	checkoutRepo := new(MockCheckoutRepository)
	service := services.NewCheckoutService(checkoutRepo, new(MockOrderRepository), new(MockCartRepository), nil)

	checkoutRepo.On("Create", mock.AnythingOfType("*models.Checkout")).Return(nil).Once()

	// TotalPrice is recorded as asserted, even when it disagrees with the
	// item snapshots.
	checkout, err := service.CreateCheckout("u1", checkoutItems(), models.Address{City: "Bandung"}, "PayPal", 9.99)
	assert.NoError(t, err)
	assert.Equal(t, "u1", checkout.UserID)
	assert.Equal(t, 9.99, checkout.TotalPrice)
	assert.Equal(t, models.PaymentPending, checkout.PaymentStatus)
	assert.False(t, checkout.IsPaid)
	checkoutRepo.AssertExpectations(t)
}

func TestCheckoutService_CreateCheckout_EmptyItems(t *testing.T) {
	checkoutRepo := new(MockCheckoutRepository)
	service := services.NewCheckoutService(checkoutRepo, new(MockOrderRepository), new(MockCartRepository), nil)

	_, err := service.CreateCheckout("u1", nil, models.Address{}, "PayPal", 0)
	assert.ErrorIs(t, err, models.ErrValidation)
	checkoutRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCheckoutService_MarkPaid(t *testing.T) {
	checkoutRepo := new(MockCheckoutRepository)
	service := services.NewCheckoutService(checkoutRepo, new(MockOrderRepository), new(MockCartRepository), nil)

	checkout := &models.Checkout{ID: "co1", UserID: "u1", Items: checkoutItems(), PaymentStatus: models.PaymentPending}
	details := models.PaymentDetails{"transactionId": "tx-9", "payer": "buyer@example.com"}
	checkoutRepo.On("GetByID", "co1").Return(checkout, nil).Once()
	checkoutRepo.On("Save", checkout).Return(nil).Once()

	updated, err := service.MarkPaid("co1", models.PaymentPaid, details)
	assert.NoError(t, err)
	assert.True(t, updated.IsPaid)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, details, updated.PaymentDetails)
	assert.NotNil(t, updated.PaidAt)
	checkoutRepo.AssertExpectations(t)
}

func TestCheckoutService_MarkPaid_RejectsOtherStatuses(t *testing.T) {
	checkoutRepo := new(MockCheckoutRepository)
	service := services.NewCheckoutService(checkoutRepo, new(MockOrderRepository), new(MockCartRepository), nil)

	checkout := &models.Checkout{ID: "co1", UserID: "u1", Items: checkoutItems(), PaymentStatus: models.PaymentPending}
	checkoutRepo.On("GetByID", "co1").Return(checkout, nil).Once()

	_, err := service.MarkPaid("co1", "failed", nil)
	assert.ErrorIs(t, err, models.ErrValidation)
	// Rejection leaves the checkout untouched.
	assert.False(t, checkout.IsPaid)
	assert.Equal(t, models.PaymentPending, checkout.PaymentStatus)
	assert.Nil(t, checkout.PaidAt)
	checkoutRepo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestCheckoutService_Finalize(t *testing.T) {
	checkoutRepo := new(MockCheckoutRepository)
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	publisher := new(MockEventPublisher)
	service := services.NewCheckoutService(checkoutRepo, orderRepo, cartRepo, publisher)

	checkout := paidCheckout()
	cart := &models.Cart{ID: "c1", UserID: "u1"}
	checkoutRepo.On("GetByID", "co1").Return(checkout, nil).Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	checkoutRepo.On("Save", checkout).Return(nil).Once()
	cartRepo.On("GetByUserID", "u1").Return(cart, nil).Once()
	cartRepo.On("Delete", "c1").Return(nil).Once()
	publisher.On("Publish", services.EventOrderCreated, mock.Anything).Return(nil).Once()

	order, err := service.Finalize("co1")
	assert.NoError(t, err)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.False(t, order.IsDelivered)
	assert.True(t, order.IsPaid)
	assert.Equal(t, checkout.TotalPrice, order.TotalPrice)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "Linen Shirt", order.Items[0].Name)

	assert.True(t, checkout.IsFinalised)
	assert.NotNil(t, checkout.FinalisedAt)

	// The published event carries the new order's identity.
	call := publisher.Calls[0]
	var payload map[string]interface{}
	assert.NoError(t, json.Unmarshal(call.Arguments.Get(1).([]byte), &payload))
	assert.Equal(t, "u1", payload["userID"])
	assert.Equal(t, models.OrderStatusProcessing, payload["status"])

	checkoutRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCheckoutService_Finalize_AlreadyFinalised(t *testing.T) {
	checkoutRepo := new(MockCheckoutRepository)
	orderRepo := new(MockOrderRepository)
	service := services.NewCheckoutService(checkoutRepo, orderRepo, new(MockCartRepository), nil)

	checkout := paidCheckout()
	finalisedAt := time.Now()
	checkout.IsFinalised = true
	checkout.FinalisedAt = &finalisedAt
	checkoutRepo.On("GetByID", "co1").Return(checkout, nil).Once()

	_, err := service.Finalize("co1")
	assert.ErrorIs(t, err, models.ErrValidation)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCheckoutService_Finalize_NotPaid(t *testing.T) {
	checkoutRepo := new(MockCheckoutRepository)
	orderRepo := new(MockOrderRepository)
	service := services.NewCheckoutService(checkoutRepo, orderRepo, new(MockCartRepository), nil)

	checkout := paidCheckout()
	checkout.IsPaid = false
	checkout.PaymentStatus = models.PaymentPending
	checkoutRepo.On("GetByID", "co1").Return(checkout, nil).Once()

	_, err := service.Finalize("co1")
	assert.ErrorIs(t, err, models.ErrValidation)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCheckoutService_Finalize_MissingCartTolerated(t *testing.T) {
	checkoutRepo := new(MockCheckoutRepository)
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	service := services.NewCheckoutService(checkoutRepo, orderRepo, cartRepo, nil)

	checkout := paidCheckout()
	checkoutRepo.On("GetByID", "co1").Return(checkout, nil).Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	checkoutRepo.On("Save", checkout).Return(nil).Once()
	cartRepo.On("GetByUserID", "u1").Return(nil, notFoundErr("cart")).Once()

	order, err := service.Finalize("co1")
	assert.NoError(t, err)
	assert.NotNil(t, order)
	cartRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestCheckoutService_Finalize_CartDeleteFailureTolerated(t *testing.T) {
	checkoutRepo := new(MockCheckoutRepository)
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	service := services.NewCheckoutService(checkoutRepo, orderRepo, cartRepo, nil)

	checkout := paidCheckout()
	checkoutRepo.On("GetByID", "co1").Return(checkout, nil).Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	checkoutRepo.On("Save", checkout).Return(nil).Once()
	cartRepo.On("GetByUserID", "u1").Return(&models.Cart{ID: "c1", UserID: "u1"}, nil).Once()
	cartRepo.On("Delete", "c1").Return(errors.New("connection reset")).Once()

	order, err := service.Finalize("co1")
	assert.NoError(t, err)
	assert.NotNil(t, order)
	cartRepo.AssertExpectations(t)
}

func TestCheckoutService_Finalize_PublishFailureTolerated(t *testing.T) {
	checkoutRepo := new(MockCheckoutRepository)
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	publisher := new(MockEventPublisher)
	service := services.NewCheckoutService(checkoutRepo, orderRepo, cartRepo, publisher)

	checkout := paidCheckout()
	checkoutRepo.On("GetByID", "co1").Return(checkout, nil).Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	checkoutRepo.On("Save", checkout).Return(nil).Once()
	cartRepo.On("GetByUserID", "u1").Return(nil, notFoundErr("cart")).Once()
	publisher.On("Publish", services.EventOrderCreated, mock.Anything).Return(errors.New("broker down")).Once()

	order, err := service.Finalize("co1")
	assert.NoError(t, err)
	assert.NotNil(t, order)
	publisher.AssertExpectations(t)
}
