package repositories

import "ecofinds/internal/models"

// CartRepository defines the interface for cart item data access.
type CartRepository interface {
	// ListByUser returns the user's cart items with products preloaded.
	ListByUser(userID string) ([]models.CartItem, error)
	GetByID(id string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	Delete(id string) error
}
