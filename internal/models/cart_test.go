package models_test

import (
	"testing"

	"carryloop/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCart_RecomputeTotal(t *testing.T) {
	cart := &models.Cart{
		Items: []models.CartItem{
			{ProductID: "p1", Price: 10.0, Size: "M", Color: "red", Quantity: 2},
			{ProductID: "p2", Price: 5.5, Size: "L", Color: "blue", Quantity: 3},
		},
	}

	cart.RecomputeTotal()
	assert.Equal(t, 36.5, cart.TotalPrice)

	// Emptying the cart brings the total back to zero.
	cart.Items = nil
	cart.RecomputeTotal()
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestCart_FindItem(t *testing.T) {
	cart := &models.Cart{
		Items: []models.CartItem{
			{ProductID: "p1", Size: "M", Color: "red", Quantity: 1},
			{ProductID: "p1", Size: "L", Color: "red", Quantity: 1},
		},
	}

	// The full (productId, size, color) tuple is the line key.
	assert.Equal(t, 0, cart.FindItem("p1", "M", "red"))
	assert.Equal(t, 1, cart.FindItem("p1", "L", "red"))
	assert.Equal(t, -1, cart.FindItem("p1", "M", "blue"))
	assert.Equal(t, -1, cart.FindItem("p2", "M", "red"))
}
