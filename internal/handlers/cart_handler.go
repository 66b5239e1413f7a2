package handlers

import (
	"log"

	"carryloop/internal/middleware"
	"carryloop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for carts. The mutation routes are
// public: the caller identifies itself by userId or guestId in the
// payload, matching the storefront's anonymous browsing flow.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Put("/", h.HandleSetItemQuantity)
	cartRoutes.Delete("/", h.HandleRemoveItem)
	cartRoutes.Get("/", h.HandleGetCart)
}

// RegisterProtectedRoutes registers the merge route, which needs an
// authenticated user to adopt the guest cart.
func (h *CartHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/cart/merge", h.HandleMergeCart)
}

type cartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color" validate:"required"`
	UserID    string `json:"userId"`
	GuestID   string `json:"guestId"`
}

func (r cartItemRequest) identity() services.CartIdentity {
	return services.CartIdentity{UserID: r.UserID, GuestID: r.GuestID}
}

// HandleAddItem adds a line to the identity's cart, creating the cart on
// first add.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	cart, err := h.service.AddItem(req.identity(), req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		log.Printf("Error adding item to cart: %v", err)
		return respondError(c, err, "Could not add item to cart")
	}
	return c.Status(fiber.StatusOK).JSON(cart)
}

// HandleSetItemQuantity overwrites a line's quantity; zero or less removes
// the line.
func (h *CartHandler) HandleSetItemQuantity(c *fiber.Ctx) error {
	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	cart, err := h.service.SetItemQuantity(req.identity(), req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		log.Printf("Error updating cart item: %v", err)
		return respondError(c, err, "Could not update cart")
	}
	return c.JSON(cart)
}

// HandleRemoveItem drops a line from the cart unconditionally.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart delete request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	cart, err := h.service.RemoveItem(req.identity(), req.ProductID, req.Size, req.Color)
	if err != nil {
		log.Printf("Error removing cart item: %v", err)
		return respondError(c, err, "Could not remove item from cart")
	}
	return c.JSON(cart)
}

// HandleGetCart fetches the cart for a userId or guestId given as query
// parameters.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	identity := services.CartIdentity{
		UserID:  c.Query("userId"),
		GuestID: c.Query("guestId"),
	}

	cart, err := h.service.ResolveCart(identity)
	if err != nil {
		log.Printf("Error resolving cart: %v", err)
		return respondError(c, err, "Cart not found")
	}
	return c.JSON(cart)
}

type mergeCartRequest struct {
	GuestID string `json:"guestId"`
}

// HandleMergeCart folds the guest cart into the authenticated user's cart.
func (h *CartHandler) HandleMergeCart(c *fiber.Ctx) error {
	var req mergeCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing merge request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userID := middleware.UserID(c)
	cart, err := h.service.MergeGuestCart(userID, req.GuestID)
	if err != nil {
		log.Printf("Error merging guest cart for user %s: %v", userID, err)
		return respondError(c, err, "Could not merge guest cart")
	}
	return c.JSON(cart)
}
