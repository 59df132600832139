package handlers

import (
	"log"

	"ecofinds/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for order history.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes. All of them require auth.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// HandleListOrders returns all orders for admins, own orders otherwise.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	userID, role := currentUser(c)
	orders, err := h.service.ListOrders(userID, role)
	if err != nil {
		log.Printf("Error listing orders for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"orders": orders,
	})
}

// HandleGetOrderByID returns one order, visible to its owner or an admin.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	userID, role := currentUser(c)
	order, err := h.service.GetOrder(userID, role, c.Params("id"))
	if err != nil {
		log.Printf("Error getting order %s for user %s: %v", c.Params("id"), userID, err)
		return respondError(c, err)
	}
	return c.JSON(order)
}
