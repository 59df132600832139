package services

import (
	"encoding/json"
	"log"
	"time"

	"ecofinds/internal/apperrors"
	"ecofinds/internal/models"
	"ecofinds/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher publishes domain events after state changes commit. The
// RabbitMQ client in pkg/rabbitmq implements it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CartContents is the read model for a user's cart: the items, the total of
// the still-available ones, and the IDs of cart items whose product was sold
// from under them.
type CartContents struct {
	Items            []models.CartItem `json:"cartItems"`
	Total            float64           `json:"total"`
	UnavailableItems []string          `json:"unavailableItems"`
}

// CartService handles cart mutation and the checkout transaction.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
	publisher   EventPublisher
}

// NewCartService creates a new CartService. publisher may be nil, in which
// case checkout events are not emitted.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, orderRepo repositories.OrderRepository, publisher EventPublisher) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		publisher:   publisher,
	}
}

// GetCart returns the user's cart. Items whose product has been sold stay
// visible but are flagged unavailable and excluded from the total.
func (s *CartService) GetCart(userID string) (*CartContents, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	contents := &CartContents{
		Items:            items,
		UnavailableItems: []string{},
	}
	for _, item := range items {
		if item.Product == nil || item.Product.IsSold {
			contents.UnavailableItems = append(contents.UnavailableItems, item.ID)
			continue
		}
		contents.Total += item.Product.Price
	}
	return contents, nil
}

// AddItem puts a product into the user's cart. It fails if the product does
// not exist, is already sold, is already in the cart, or is the user's own
// listing.
func (s *CartService) AddItem(userID, productID string) (*models.CartItem, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product.IsSold {
		return nil, apperrors.ErrProductSold
	}
	if product.SellerID == userID {
		return nil, apperrors.ErrSelfPurchase
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

// RemoveItem deletes one cart item. Only the owner may remove it; removal
// has no effect on the product.
func (s *CartService) RemoveItem(userID, cartItemID string) error {
	item, err := s.cartRepo.GetByID(cartItemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return apperrors.ErrForbidden
	}
	return s.cartRepo.Delete(cartItemID)
}

// Checkout converts the user's cart into a durable order, or fails leaving
// all state unchanged.
//
// Preconditions: the cart is non-empty and every referenced product is still
// unsold. The order, its items with prices captured at this instant, the
// sold flags, and the cart deletion are then committed atomically by
// OrderRepository.CreateFromCart. A product sold concurrently between the
// precondition check and the commit surfaces as ProductsUnavailableError and
// rolls back the whole order.
func (s *CartService) Checkout(userID, shippingAddress string) (*models.Order, error) {
	cartItems, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	var unavailable []string
	for _, item := range cartItems {
		if item.Product == nil || item.Product.IsSold {
			unavailable = append(unavailable, item.ProductID)
		}
	}
	if len(unavailable) > 0 {
		return nil, &apperrors.ProductsUnavailableError{ProductIDs: unavailable}
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Status:          models.OrderStatusCompleted,
		ShippingAddress: shippingAddress,
		CreatedAt:       time.Now(),
	}
	cartItemIDs := make([]string, 0, len(cartItems))
	for _, item := range cartItems {
		// Price snapshot: the product's price right now, never re-read later.
		order.Items = append(order.Items, models.OrderItem{
			ProductID:       item.ProductID,
			ProductTitle:    item.Product.Title,
			ProductImageURL: item.Product.ImageURL,
			SellerID:        item.Product.SellerID,
			Price:           item.Product.Price,
		})
		order.TotalAmount += item.Product.Price
		cartItemIDs = append(cartItemIDs, item.ID)
	}

	if err := s.orderRepo.CreateFromCart(order, cartItemIDs); err != nil {
		return nil, err
	}

	s.publishOrderCreated(order)
	return order, nil
}

// publishOrderCreated emits an order.created event. Publishing is best
// effort: the order is already committed, so a broker failure is only logged.
func (s *CartService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}

	payload := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.TotalAmount,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal order created event for order %s: %v", order.ID, err)
		return
	}
	if err := s.publisher.Publish("orders", "order.created", body); err != nil {
		log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Published order created event for order %s", order.ID)
}
