package handlers

import (
	"log"

	"carryloop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SubscriptionHandler handles newsletter signups.
type SubscriptionHandler struct {
	service *services.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(service *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
	}
}

// RegisterRoutes registers the public subscription route.
func (h *SubscriptionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/subscribe", h.HandleSubscribe)
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// HandleSubscribe records a newsletter signup.
func (h *SubscriptionHandler) HandleSubscribe(c *fiber.Ctx) error {
	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing subscribe body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	subscription, err := h.service.Subscribe(req.Email)
	if err != nil {
		log.Printf("Error subscribing %s: %v", req.Email, err)
		return respondError(c, err, "Could not subscribe")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Successfully subscribed to the newsletter",
		"subscription": subscription,
	})
}
