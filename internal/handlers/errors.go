package handlers

import (
	"errors"
	"log"

	"ecofinds/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps domain errors to HTTP responses. Anything outside the
// taxonomy is a storage or transport fault and surfaces as a plain 500; the
// detail stays in the server log.
func respondError(c *fiber.Ctx, err error) error {
	var unavailable *apperrors.ProductsUnavailableError
	if errors.As(err, &unavailable) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":             "Some products are no longer available",
			"unavailableProducts": unavailable.ProductIDs,
		})
	}

	switch {
	case errors.Is(err, apperrors.ErrEmptyCart),
		errors.Is(err, apperrors.ErrProductSold),
		errors.Is(err, apperrors.ErrDuplicateCartItem),
		errors.Is(err, apperrors.ErrSelfPurchase):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})

	case errors.Is(err, apperrors.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "You don't have permission to perform this action"})

	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrProductNotFound),
		errors.Is(err, apperrors.ErrCartItemNotFound),
		errors.Is(err, apperrors.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})

	case errors.Is(err, apperrors.ErrEmailTaken),
		errors.Is(err, apperrors.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	}

	log.Printf("Internal error handling %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}

// respondValidationErrors shapes validator failures into a field → reason map.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = "failed on the '" + e.Tag() + "' rule"
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// currentUser pulls the identity the auth middleware stored on the request.
func currentUser(c *fiber.Ctx) (userID, role string) {
	if v, ok := c.Locals("user_id").(string); ok {
		userID = v
	}
	if v, ok := c.Locals("role").(string); ok {
		role = v
	}
	return userID, role
}
