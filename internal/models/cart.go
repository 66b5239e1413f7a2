package models

import "gorm.io/gorm"

// CartItem is one (product, size, color) line inside a cart. Name, Image
// and Price are snapshots taken when the line was added; later catalog
// edits do not change them.
type CartItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Size      string  `json:"size" validate:"required"`
	Color     string  `json:"color" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
}

// Matches reports whether the line carries the given (productID, size,
// color) key. The 3-tuple is the uniqueness key for cart lines.
func (i CartItem) Matches(productID, size, color string) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}

// Cart is a shopping cart owned either by a registered user (UserID set)
// or by an anonymous guest (GuestID set); never both. Line items persist
// as a JSON document alongside the derived total.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string     `json:"userId,omitempty" gorm:"index;type:varchar(36)"`
	GuestID    string     `json:"guestId,omitempty" gorm:"index;type:varchar(64)"`
	Items      []CartItem `json:"products" gorm:"serializer:json"`
	TotalPrice float64    `json:"totalPrice"`
	Version    int        `json:"-"` // optimistic concurrency token
	gorm.Model
}

// RecomputeTotal recalculates TotalPrice from the line items. Every
// mutation path must call it before persisting.
func (c *Cart) RecomputeTotal() {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.TotalPrice = total
}

// FindItem returns the index of the line matching the key, or -1.
func (c *Cart) FindItem(productID, size, color string) int {
	for i, item := range c.Items {
		if item.Matches(productID, size, color) {
			return i
		}
	}
	return -1
}
