package models

import (
	"time"

	"gorm.io/gorm"
)

// Order status values. Any string is accepted from admins; "Delivered" is
// special-cased to latch the delivery fields.
const (
	OrderStatusProcessing = "Processing"
	OrderStatusDelivered  = "Delivered"
)

// OrderItem is a purchase line copied verbatim from the checkout at
// finalization.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
}

// OrderOwner is the owner projection attached on order reads: identity
// fields only, never the full user record.
type OrderOwner struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
}

// Order is the immutable record emitted when a checkout is finalized.
// After creation only the delivery status fields change, and only through
// admin operations.
type Order struct {
	ID              string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string         `json:"user" gorm:"index;type:varchar(36)"`
	Owner           *OrderOwner    `json:"owner,omitempty" gorm:"-"`
	Items           []OrderItem    `json:"orderItems" gorm:"serializer:json"`
	ShippingAddress Address        `json:"shippingAddress" gorm:"serializer:json"`
	PaymentMethod   string         `json:"paymentMethod" gorm:"type:varchar(50)"`
	TotalPrice      float64        `json:"totalPrice"`
	IsPaid          bool           `json:"isPaid"`
	PaidAt          *time.Time     `json:"paidAt,omitempty"`
	PaymentStatus   string         `json:"paymentStatus" gorm:"type:varchar(20)"`
	PaymentDetails  PaymentDetails `json:"paymentDetails,omitempty" gorm:"serializer:json"`
	Status          string         `json:"status" gorm:"type:varchar(50)"`
	IsDelivered     bool           `json:"isDelivered"`
	DeliveredAt     *time.Time     `json:"deliveredAt,omitempty"`
	gorm.Model
}
