package repositories

import "ecofinds/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// CreateFromCart atomically persists an order with its items, marks every
	// referenced product sold, and deletes the converted cart items. It fails
	// without any mutation if a product was sold in the meantime.
	CreateFromCart(order *models.Order, cartItemIDs []string) error
	ListAll() ([]models.Order, error)
	ListByUser(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
}
