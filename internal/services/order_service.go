package services

import (
	"ecofinds/internal/apperrors"
	"ecofinds/internal/models"
	"ecofinds/internal/repositories"
)

// OrderService handles the read side of orders. Orders are only ever created
// through CartService.Checkout; nothing here mutates them.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// ListOrders returns all orders for an admin, or the caller's own orders
// otherwise.
func (s *OrderService) ListOrders(userID, role string) ([]models.Order, error) {
	if role == models.RoleAdmin {
		return s.orderRepo.ListAll()
	}
	return s.orderRepo.ListByUser(userID)
}

// GetOrder returns one order. Visible to its owner and to admins only.
func (s *OrderService) GetOrder(userID, role, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && role != models.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	return order, nil
}
