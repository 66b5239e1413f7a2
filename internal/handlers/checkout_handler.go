package handlers

import (
	"log"

	"carryloop/internal/middleware"
	"carryloop/internal/models"
	"carryloop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for the checkout lifecycle.
type CheckoutHandler struct {
	service  *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout routes; all require a user.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/", h.HandleCreateCheckout)
	checkoutRoutes.Put("/:id/pay", h.HandleMarkPaid)
	checkoutRoutes.Post("/:id/finalize", h.HandleFinalize)
}

type createCheckoutRequest struct {
	CheckoutItems   []models.CheckoutItem `json:"checkoutItems" validate:"required,min=1,dive"`
	ShippingAddress models.Address        `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod" validate:"required"`
	TotalPrice      float64               `json:"totalPrice" validate:"gte=0"`
}

// HandleCreateCheckout snapshots the intended purchase for the caller.
func (h *CheckoutHandler) HandleCreateCheckout(c *fiber.Ctx) error {
	var req createCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	userID := middleware.UserID(c)
	checkout, err := h.service.CreateCheckout(userID, req.CheckoutItems, req.ShippingAddress, req.PaymentMethod, req.TotalPrice)
	if err != nil {
		log.Printf("Error creating checkout for user %s: %v", userID, err)
		return respondError(c, err, "Could not create checkout")
	}
	return c.Status(fiber.StatusCreated).JSON(checkout)
}

type markPaidRequest struct {
	PaymentStatus  string                `json:"paymentStatus"`
	PaymentDetails models.PaymentDetails `json:"paymentDetails"`
}

// HandleMarkPaid records payment confirmation on the checkout.
func (h *CheckoutHandler) HandleMarkPaid(c *fiber.Ctx) error {
	var req markPaidRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing payment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	checkout, err := h.service.MarkPaid(c.Params("id"), req.PaymentStatus, req.PaymentDetails)
	if err != nil {
		log.Printf("Error marking checkout %s paid: %v", c.Params("id"), err)
		return respondError(c, err, "Could not record payment")
	}
	return c.JSON(checkout)
}

// HandleFinalize converts a paid checkout into an order and retires the
// user's cart.
func (h *CheckoutHandler) HandleFinalize(c *fiber.Ctx) error {
	order, err := h.service.Finalize(c.Params("id"))
	if err != nil {
		log.Printf("Error finalizing checkout %s: %v", c.Params("id"), err)
		return respondError(c, err, "Could not finalize checkout")
	}
	return c.JSON(order)
}
