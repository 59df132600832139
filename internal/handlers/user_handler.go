package handlers

import (
	"log"

	"ecofinds/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for profiles and user-scoped views.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes. All of them require auth.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/profile", h.HandleGetProfile)
	userRoutes.Put("/profile", h.HandleUpdateProfile)
	userRoutes.Get("/products", h.HandleListOwnProducts)
	userRoutes.Get("/purchases", h.HandleListPurchases)
}

// HandleGetProfile returns the caller's account record.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID, _ := currentUser(c)
	user, err := h.service.GetProfile(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdateProfile applies a partial profile update.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var update services.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing profile update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(update); err != nil {
		return respondValidationErrors(c, err)
	}

	userID, _ := currentUser(c)
	user, err := h.service.UpdateProfile(userID, update)
	if err != nil {
		log.Printf("Error updating profile for user %s: %v", userID, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// HandleListOwnProducts returns all of the caller's listings.
func (h *UserHandler) HandleListOwnProducts(c *fiber.Ctx) error {
	userID, _ := currentUser(c)
	products, err := h.service.ListOwnProducts(userID)
	if err != nil {
		log.Printf("Error listing products for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"products": products,
	})
}

// HandleListPurchases returns the caller's order history.
func (h *UserHandler) HandleListPurchases(c *fiber.Ctx) error {
	userID, _ := currentUser(c)
	orders, err := h.service.ListPurchases(userID)
	if err != nil {
		log.Printf("Error listing purchases for user %s: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"orders": orders,
	})
}
