package services_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"ecofinds/internal/apperrors"
	"ecofinds/internal/models"
	"ecofinds/internal/repositories"
	"ecofinds/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupCartTestDB opens a fresh in-memory SQLite database, one per test, and
// migrates the full schema.
func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	require.NoError(t, err)
	return db
}

func newCartService(db *gorm.DB) *services.CartService {
	return services.NewCartService(
		repositories.NewGORMCartRepository(db),
		repositories.NewGORMProductRepository(db),
		repositories.NewGORMOrderRepository(db),
		nil,
	)
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	// The lookup must not include a primary key, or FirstOrCreate re-inserts
	// the role for every user and trips the unique name index.
	var role models.Role
	err := db.Where(models.Role{Name: models.RoleUser}).
		Attrs(models.Role{ID: uuid.New().String()}).
		FirstOrCreate(&role).Error
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "irrelevant",
		RoleID:       role.ID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, sellerID, title string, price float64) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:          uuid.New().String(),
		Title:       title,
		Description: "test listing",
		Price:       price,
		Condition:   models.ConditionGood,
		Category:    "electronics",
		SellerID:    sellerID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// recordingPublisher captures the last published event.
type recordingPublisher struct {
	exchange   string
	routingKey string
	body       []byte
}

func (p *recordingPublisher) Publish(exchange, routingKey string, body []byte) error {
	p.exchange = exchange
	p.routingKey = routingKey
	p.body = body
	return nil
}

func addToCart(t *testing.T, svc *services.CartService, userID, productID string) *models.CartItem {
	t.Helper()
	item, err := svc.AddItem(userID, productID)
	require.NoError(t, err)
	return item
}

func TestCartService_AddItem(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	seller := createTestUser(t, db, "seller")
	buyer := createTestUser(t, db, "buyer")
	product := createTestProduct(t, db, seller.ID, "Camera", 150)

	// Both users share the single seeded role row.
	var roleCount int64
	db.Model(&models.Role{}).Where("name = ?", models.RoleUser).Count(&roleCount)
	require.EqualValues(t, 1, roleCount)

	// Happy path
	item, err := svc.AddItem(buyer.ID, product.ID)
	assert.NoError(t, err)
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, buyer.ID, item.UserID)

	// Adding the same product twice is a duplicate; no second row appears.
	_, err = svc.AddItem(buyer.ID, product.ID)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateCartItem)
	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", buyer.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	// Unknown products fail fast.
	_, err = svc.AddItem(buyer.ID, uuid.New().String())
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)

	// Sellers cannot buy their own listings.
	_, err = svc.AddItem(seller.ID, product.ID)
	assert.ErrorIs(t, err, apperrors.ErrSelfPurchase)

	// Sold products are not purchasable.
	sold := createTestProduct(t, db, seller.ID, "Sold lamp", 30)
	require.NoError(t, db.Model(sold).Update("is_sold", true).Error)
	_, err = svc.AddItem(buyer.ID, sold.ID)
	assert.ErrorIs(t, err, apperrors.ErrProductSold)
}

func TestCartService_RemoveItem(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	seller := createTestUser(t, db, "seller")
	buyer := createTestUser(t, db, "buyer")
	intruder := createTestUser(t, db, "intruder")
	product := createTestProduct(t, db, seller.ID, "Desk", 80)
	item := addToCart(t, svc, buyer.ID, product.ID)

	// A different user may not remove it.
	err := svc.RemoveItem(intruder.ID, item.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// The owner can, and the product itself is untouched.
	assert.NoError(t, svc.RemoveItem(buyer.ID, item.ID))
	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.False(t, stored.IsSold)

	// Removing it again is a NotFound.
	err = svc.RemoveItem(buyer.ID, item.ID)
	assert.ErrorIs(t, err, apperrors.ErrCartItemNotFound)
}

func TestCartService_GetCart_FlagsUnavailableItems(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	seller := createTestUser(t, db, "seller")
	buyer := createTestUser(t, db, "buyer")
	available := createTestProduct(t, db, seller.ID, "Chair", 40)
	gone := createTestProduct(t, db, seller.ID, "Table", 60)

	addToCart(t, svc, buyer.ID, available.ID)
	goneItem := addToCart(t, svc, buyer.ID, gone.ID)

	// The second product sells elsewhere while it sits in the cart.
	require.NoError(t, db.Model(gone).Update("is_sold", true).Error)

	contents, err := svc.GetCart(buyer.ID)
	require.NoError(t, err)
	assert.Len(t, contents.Items, 2)
	assert.InDelta(t, 40, contents.Total, 1e-9)
	assert.Equal(t, []string{goneItem.ID}, contents.UnavailableItems)
}

func TestCartService_Checkout_HappyPath(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	seller := createTestUser(t, db, "seller")
	buyer := createTestUser(t, db, "buyer")
	first := createTestProduct(t, db, seller.ID, "Bicycle", 120)
	second := createTestProduct(t, db, seller.ID, "Helmet", 35.5)

	addToCart(t, svc, buyer.ID, first.ID)
	addToCart(t, svc, buyer.ID, second.ID)

	order, err := svc.Checkout(buyer.ID, "221B Baker Street")
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, buyer.ID, order.UserID)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.Equal(t, "221B Baker Street", order.ShippingAddress)
	assert.InDelta(t, 155.5, order.TotalAmount, 1e-9)

	// Order items map 1:1 onto the former cart items.
	require.Len(t, order.Items, 2)
	gotProducts := map[string]float64{}
	for _, item := range order.Items {
		gotProducts[item.ProductID] = item.Price
	}
	assert.InDelta(t, 120, gotProducts[first.ID], 1e-9)
	assert.InDelta(t, 35.5, gotProducts[second.ID], 1e-9)

	// Both products are now sold and the cart is empty.
	for _, id := range []string{first.ID, second.ID} {
		var p models.Product
		require.NoError(t, db.First(&p, "id = ?", id).Error)
		assert.True(t, p.IsSold)
	}
	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", buyer.ID).Count(&cartCount)
	assert.EqualValues(t, 0, cartCount)

	// The persisted order matches the returned one.
	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, "id = ?", order.ID).Error)
	assert.Len(t, stored.Items, 2)
	assert.InDelta(t, order.TotalAmount, stored.TotalAmount, 1e-9)
}

func TestCartService_Checkout_EmptyCart(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	buyer := createTestUser(t, db, "buyer")

	order, err := svc.Checkout(buyer.ID, "")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.EqualValues(t, 0, orderCount)
}

func TestCartService_Checkout_UnavailableProductAbortsEverything(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	seller := createTestUser(t, db, "seller")
	buyer := createTestUser(t, db, "buyer")
	fine := createTestProduct(t, db, seller.ID, "Monitor", 90)
	gone := createTestProduct(t, db, seller.ID, "Keyboard", 45)

	addToCart(t, svc, buyer.ID, fine.ID)
	addToCart(t, svc, buyer.ID, gone.ID)
	require.NoError(t, db.Model(gone).Update("is_sold", true).Error)

	order, err := svc.Checkout(buyer.ID, "")
	assert.Nil(t, order)

	var unavailable *apperrors.ProductsUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, []string{gone.ID}, unavailable.ProductIDs)

	// Zero mutations: no order, the fine product is still unsold, and the
	// whole cart survives (no partial processing of the available item).
	var orderCount, itemCount, cartCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	db.Model(&models.CartItem{}).Where("user_id = ?", buyer.ID).Count(&cartCount)
	assert.EqualValues(t, 0, orderCount)
	assert.EqualValues(t, 0, itemCount)
	assert.EqualValues(t, 2, cartCount)

	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", fine.ID).Error)
	assert.False(t, p.IsSold)
}

func TestCartService_Checkout_SharedProductSellsOnlyOnce(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	seller := createTestUser(t, db, "seller")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	contested := createTestProduct(t, db, seller.ID, "Record player", 200)

	addToCart(t, svc, alice.ID, contested.ID)
	addToCart(t, svc, bob.ID, contested.ID)

	// Alice commits first.
	aliceOrder, err := svc.Checkout(alice.ID, "")
	require.NoError(t, err)

	// Bob observes the product as unavailable and gets no order.
	bobOrder, err := svc.Checkout(bob.ID, "")
	assert.Nil(t, bobOrder)
	var unavailable *apperrors.ProductsUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, []string{contested.ID}, unavailable.ProductIDs)

	// Exactly one committed order item references the product.
	var itemCount int64
	db.Model(&models.OrderItem{}).Where("product_id = ?", contested.ID).Count(&itemCount)
	assert.EqualValues(t, 1, itemCount)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", aliceOrder.ID).Error)
	assert.Equal(t, alice.ID, stored.UserID)
}

func TestCartService_Checkout_PublishesOrderCreatedEvent(t *testing.T) {
	db := setupCartTestDB(t)
	pub := &recordingPublisher{}
	svc := services.NewCartService(
		repositories.NewGORMCartRepository(db),
		repositories.NewGORMProductRepository(db),
		repositories.NewGORMOrderRepository(db),
		pub,
	)
	seller := createTestUser(t, db, "seller")
	buyer := createTestUser(t, db, "buyer")
	product := createTestProduct(t, db, seller.ID, "Turntable", 75)
	addToCart(t, svc, buyer.ID, product.ID)

	order, err := svc.Checkout(buyer.ID, "")
	require.NoError(t, err)

	// The event must land on the exchange and routing key the broker client
	// declares and binds, or it vanishes into a channel error.
	assert.Equal(t, "orders", pub.exchange)
	assert.Equal(t, "order.created", pub.routingKey)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(pub.body, &event))
	assert.Equal(t, order.ID, event["orderID"])
	assert.Equal(t, buyer.ID, event["userID"])
}

func TestCartService_Checkout_PriceSnapshotSurvivesEdits(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	seller := createTestUser(t, db, "seller")
	buyer := createTestUser(t, db, "buyer")
	product := createTestProduct(t, db, seller.ID, "Guitar", 300)

	addToCart(t, svc, buyer.ID, product.ID)
	order, err := svc.Checkout(buyer.ID, "")
	require.NoError(t, err)

	// The seller edits the price after the sale.
	require.NoError(t, db.Model(product).Update("price", 999).Error)

	var item models.OrderItem
	require.NoError(t, db.First(&item, "order_id = ?", order.ID).Error)
	assert.InDelta(t, 300, item.Price, 1e-9)

	var stored models.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.InDelta(t, 300, stored.TotalAmount, 1e-9)
}
