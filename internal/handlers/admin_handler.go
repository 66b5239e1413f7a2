package handlers

import (
	"log"

	"carryloop/internal/models"
	"carryloop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler bundles the admin panel routes: user management, full
// catalog listing and order administration. The whole group sits behind
// AuthRequired + AdminRequired.
type AdminHandler struct {
	userService    *services.UserService
	productService *services.ProductService
	orderService   *services.OrderService
	validate       *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService *services.UserService, productService *services.ProductService, orderService *services.OrderService) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		productService: productService,
		orderService:   orderService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the admin routes on an already-gated group.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleListUsers)
	router.Post("/", h.HandleCreateUser)
	router.Put("/update/:id", h.HandleUpdateUser)
	router.Delete("/delete/:id", h.HandleDeleteUser)

	router.Get("/getAllProduct", h.HandleListAllProducts)

	router.Get("/allOrders", h.HandleListAllOrders)
	router.Put("/updateOrder/:id", h.HandleUpdateOrder)
	router.Delete("/deleteOrder/:id", h.HandleDeleteOrder)
}

// HandleListUsers lists every account.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return respondError(c, err, "Could not retrieve users")
	}
	return c.JSON(users)
}

type adminCreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"omitempty,oneof=customer admin"`
}

// HandleCreateUser creates an account on a user's behalf.
func (h *AdminHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req adminCreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create-user body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	}
	if err := h.userService.CreateUser(user); err != nil {
		log.Printf("Error creating user: %v", err)
		return respondError(c, err, "Could not create user")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

type adminUpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
}

// HandleUpdateUser applies a partial update to an account.
func (h *AdminHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req adminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-user body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.userService.UpdateUser(c.Params("id"), services.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
	})
	if err != nil {
		log.Printf("Error updating user %s: %v", c.Params("id"), err)
		return respondError(c, err, "Could not update user")
	}
	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// HandleDeleteUser removes an account.
func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	userID := c.Params("id")
	if err := h.userService.DeleteUser(userID); err != nil {
		log.Printf("Error deleting user %s: %v", userID, err)
		return respondError(c, err, "Could not delete user")
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}

// HandleListAllProducts lists the whole catalog, unpublished included.
func (h *AdminHandler) HandleListAllProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetAllProducts()
	if err != nil {
		log.Printf("Error listing all products: %v", err)
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleListAllOrders lists every order with owner projections.
func (h *AdminHandler) HandleListAllOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		log.Printf("Error listing all orders: %v", err)
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

// HandleUpdateOrder overwrites an order's status; "Delivered" also latches
// the delivery fields.
func (h *AdminHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	var req updateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-order body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.orderService.UpdateOrderStatus(c.Params("id"), req.Status)
	if err != nil {
		log.Printf("Error updating order %s: %v", c.Params("id"), err)
		return respondError(c, err, "Could not update order")
	}
	return c.JSON(order)
}

// HandleDeleteOrder removes an order.
func (h *AdminHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if err := h.orderService.DeleteOrder(orderID); err != nil {
		log.Printf("Error deleting order %s: %v", orderID, err)
		return respondError(c, err, "Could not delete order")
	}
	return c.JSON(fiber.Map{
		"message": "Order removed",
	})
}
