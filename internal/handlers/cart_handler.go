package handlers

import (
	"log"

	"ecofinds/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the cart and the checkout.
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

// RegisterRoutes registers the cart routes. All of them require auth.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Delete("/:id", h.HandleRemoveItem)
	cartRoutes.Post("/checkout", h.HandleCheckout)
}

// HandleGetCart returns the caller's cart with a total over the available
// items and the IDs of any that went unavailable.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID, _ := currentUser(c)
	contents, err := h.service.GetCart(userID)
	if err != nil {
		log.Printf("Error fetching cart for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(contents)
}

// AddItemRequest represents the request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// HandleAddItem adds a product to the caller's cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add to cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	userID, _ := currentUser(c)
	item, err := h.service.AddItem(userID, req.ProductID)
	if err != nil {
		log.Printf("Error adding product %s to cart for user %s: %v", req.ProductID, userID, err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Product added to cart",
		"cartItem": item,
	})
}

// HandleRemoveItem deletes one cart item owned by the caller.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userID, _ := currentUser(c)
	if err := h.service.RemoveItem(userID, c.Params("id")); err != nil {
		log.Printf("Error removing cart item %s for user %s: %v", c.Params("id"), userID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Item removed from cart",
	})
}

// CheckoutRequest represents the request body for checkout.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

// HandleCheckout converts the caller's cart into an order.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	// The body is optional; an empty one means no shipping address.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Printf("Error parsing checkout request body: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}

	userID, _ := currentUser(c)
	order, err := h.service.Checkout(userID, req.ShippingAddress)
	if err != nil {
		log.Printf("Checkout failed for user %s: %v", userID, err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully",
		"order":   order,
	})
}
