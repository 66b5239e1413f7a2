package services

import (
	"errors"
	"fmt"
	"log"

	"carryloop/internal/models"
	"carryloop/internal/repositories"

	"github.com/google/uuid"
)

// CartIdentity names the owner a cart operation acts for. UserID takes
// precedence when both are set.
type CartIdentity struct {
	UserID  string
	GuestID string
}

// CartService handles cart resolution, line-item mutation and the
// guest-to-user merge performed at login.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ResolveCart finds the cart for the given identity, user first.
func (s *CartService) ResolveCart(identity CartIdentity) (*models.Cart, error) {
	if identity.UserID != "" {
		return s.cartRepo.GetByUserID(identity.UserID)
	}
	if identity.GuestID != "" {
		return s.cartRepo.GetByGuestID(identity.GuestID)
	}
	return nil, fmt.Errorf("no cart identity given: %w", models.ErrNotFound)
}

// AddItem puts a product line into the identity's cart, creating the cart
// on first add. Lines are keyed by (productID, size, color): a matching
// line has its quantity incremented, otherwise a new line captures a
// snapshot of the product's name, image and price.
func (s *CartService) AddItem(identity CartIdentity, productID string, quantity int, size, color string) (*models.Cart, error) {
	if productID == "" || quantity <= 0 || size == "" || color == "" {
		return nil, fmt.Errorf("productId, quantity, size and color are required: %w", models.ErrValidation)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.ResolveCart(identity)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return s.createCart(identity, product, quantity, size, color)
	}

	if idx := cart.FindItem(productID, size, color); idx > -1 {
		cart.Items[idx].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, newCartItem(product, quantity, size, color))
	}
	cart.RecomputeTotal()

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// createCart starts a fresh cart for a first add-to-cart. A cart is owned
// by the user when one is authenticated; otherwise it is keyed by the
// supplied guest identifier, or a freshly generated one.
func (s *CartService) createCart(identity CartIdentity, product *models.Product, quantity int, size, color string) (*models.Cart, error) {
	cart := &models.Cart{
		Items: []models.CartItem{newCartItem(product, quantity, size, color)},
	}
	if identity.UserID != "" {
		cart.UserID = identity.UserID
	} else if identity.GuestID != "" {
		cart.GuestID = identity.GuestID
	} else {
		cart.GuestID = "guest-" + uuid.New().String()
	}
	cart.RecomputeTotal()

	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetItemQuantity overwrites a line's quantity. A quantity of zero or less
// removes the line entirely. A missing line is left alone; the total is
// recomputed and persisted either way.
func (s *CartService) SetItemQuantity(identity CartIdentity, productID string, quantity int, size, color string) (*models.Cart, error) {
	cart, err := s.ResolveCart(identity)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindItem(productID, size, color); idx > -1 {
		if quantity > 0 {
			cart.Items[idx].Quantity = quantity
		} else {
			cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		}
	}
	cart.RecomputeTotal()

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the matching line from the cart. Removing a line that
// is not there is a successful no-op.
func (s *CartService) RemoveItem(identity CartIdentity, productID, size, color string) (*models.Cart, error) {
	cart, err := s.ResolveCart(identity)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindItem(productID, size, color); idx > -1 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}
	cart.RecomputeTotal()

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// MergeGuestCart folds a guest cart into the authenticated user's cart.
// Overlapping lines (same product, size, color) have their quantities
// summed; other guest lines are appended verbatim, carrying their original
// snapshots. When the user has no cart yet the guest cart is re-owned in
// place instead of copied. The merged guest cart is deleted; a failure to
// delete it is logged but does not fail the merge.
func (s *CartService) MergeGuestCart(userID, guestID string) (*models.Cart, error) {
	if guestID == "" {
		return nil, fmt.Errorf("guestId is required: %w", models.ErrValidation)
	}

	guestCart, err := s.cartRepo.GetByGuestID(guestID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("guest cart for %s not found: %w", guestID, models.ErrValidation)
		}
		return nil, err
	}
	if len(guestCart.Items) == 0 {
		return nil, fmt.Errorf("guest cart %s is empty: %w", guestCart.ID, models.ErrValidation)
	}

	userCart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		// No user cart yet: re-own the guest cart, no item copy needed.
		guestCart.UserID = userID
		guestCart.GuestID = ""
		if err := s.cartRepo.Save(guestCart); err != nil {
			return nil, err
		}
		return guestCart, nil
	}

	for _, item := range guestCart.Items {
		if idx := userCart.FindItem(item.ProductID, item.Size, item.Color); idx > -1 {
			userCart.Items[idx].Quantity += item.Quantity
		} else {
			userCart.Items = append(userCart.Items, item)
		}
	}
	userCart.RecomputeTotal()

	if err := s.cartRepo.Save(userCart); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Delete(guestCart.ID); err != nil {
		log.Printf("Warning: failed to delete merged guest cart %s: %v", guestCart.ID, err)
	}
	return userCart, nil
}

// newCartItem builds a line snapshot from the current product record.
func newCartItem(product *models.Product, quantity int, size, color string) models.CartItem {
	return models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.FirstImageURL(),
		Price:     product.Price,
		Size:      size,
		Color:     color,
		Quantity:  quantity,
	}
}
