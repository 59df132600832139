package repositories

import (
	"errors"
	"fmt"

	"ecofinds/internal/apperrors"
	"ecofinds/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// ListByUser retrieves all cart items for a user, oldest first, with the
// referenced products and their sellers preloaded.
func (r *GORMCartRepository) ListByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").Preload("Product.Seller").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items for user %s: %w", userID, err)
	}
	return items, nil
}

// GetByID retrieves a single cart item by its ID.
func (r *GORMCartRepository) GetByID(id string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to get cart item by ID %s: %w", id, err)
	}
	return &item, nil
}

// Create adds a product to a user's cart. The unique (user_id, product_id)
// index catches a duplicate insert racing past the service-level check.
func (r *GORMCartRepository) Create(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateCartItem
		}
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// Delete removes a cart item by its ID.
func (r *GORMCartRepository) Delete(id string) error {
	res := r.db.Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCartItemNotFound
	}
	return nil
}
