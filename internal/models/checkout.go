package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment status values carried by checkouts and orders.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Address is a shipping destination embedded in checkouts and orders.
type Address struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// CheckoutItem is a denormalized purchase line, same shape as a cart line.
type CheckoutItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
}

// PaymentDetails is the opaque payload handed back by the payment provider.
type PaymentDetails map[string]interface{}

// Checkout is the intended-purchase snapshot taken at checkout time. It
// moves through pending/unpaid -> paid -> finalised, one direction only,
// and is never deleted (audit trail). IsFinalised is a one-way latch: a
// checkout emits at most one order.
type Checkout struct {
	ID              string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string         `json:"user" gorm:"index;type:varchar(36)"`
	Items           []CheckoutItem `json:"checkoutItems" gorm:"serializer:json"`
	ShippingAddress Address        `json:"shippingAddress" gorm:"serializer:json"`
	PaymentMethod   string         `json:"paymentMethod" gorm:"type:varchar(50)"`
	TotalPrice      float64        `json:"totalPrice"`
	PaymentStatus   string         `json:"paymentStatus" gorm:"type:varchar(20)"`
	IsPaid          bool           `json:"isPaid"`
	PaidAt          *time.Time     `json:"paidAt,omitempty"`
	PaymentDetails  PaymentDetails `json:"paymentDetails,omitempty" gorm:"serializer:json"`
	IsFinalised     bool           `json:"isFinalised"`
	FinalisedAt     *time.Time     `json:"finalisedAt,omitempty"`
	Version         int            `json:"-"` // optimistic concurrency token
	gorm.Model
}
