package repositories

import (
	"errors"
	"fmt"

	"ecofinds/internal/apperrors"
	"ecofinds/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// CreateFromCart runs the checkout transaction. All steps happen inside one
// database transaction, so a failure at any point leaves no order, no sold
// flags, and the cart intact.
//
// The sold flag is set with a conditional update (is_sold = false in the
// WHERE clause). If another checkout committed the same product first, the
// update affects zero rows and the whole transaction aborts with a
// ProductsUnavailableError naming that product. This closes the double-sale
// race: at most one order can ever contain a given product.
func (r *GORMOrderRepository) CreateFromCart(order *models.Order, cartItemIDs []string) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND is_sold = ?", item.ProductID, false).
				Update("is_sold", true)
			if res.Error != nil {
				return fmt.Errorf("failed to mark product %s sold: %w", item.ProductID, res.Error)
			}
			if res.RowsAffected == 0 {
				// Sold (or deleted) between the availability check and now.
				return &apperrors.ProductsUnavailableError{ProductIDs: []string{item.ProductID}}
			}
		}

		err := tx.Where("user_id = ? AND id IN ?", order.UserID, cartItemIDs).
			Delete(&models.CartItem{}).Error
		if err != nil {
			return fmt.Errorf("failed to clear cart for user %s: %w", order.UserID, err)
		}
		return nil
	})
}

// ListAll retrieves every order, newest first.
func (r *GORMOrderRepository) ListAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *GORMOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves an order with its items by ID.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}
