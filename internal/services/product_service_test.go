package services_test

import (
	"testing"

	"ecofinds/internal/apperrors"
	"ecofinds/internal/models"
	"ecofinds/internal/repositories"
	"ecofinds/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(filter repositories.ProductFilter) ([]models.Product, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) ListBySeller(sellerID string) ([]models.Product, error) {
	args := m.Called(sellerID)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	filter := repositories.ProductFilter{Category: "furniture", Page: 2, PerPage: 6}
	expected := []models.Product{
		{ID: "1", Title: "Armchair", Price: 60},
		{ID: "2", Title: "Bookshelf", Price: 45},
	}

	mockRepo.On("List", filter).Return(expected, nil).Once()

	products, err := service.ListProducts(filter)
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	product := &models.Product{Title: "Old camera", Price: 80, IsSold: true}
	mockRepo.On("Create", product).Return(nil).Once()

	err := service.CreateProduct("seller-1", product)
	assert.NoError(t, err)
	assert.Equal(t, "seller-1", product.SellerID)
	// A fresh listing is never born sold, whatever the request claimed.
	assert.False(t, product.IsSold)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	stored := &models.Product{ID: "p1", Title: "Lamp", Price: 20, SellerID: "seller-1"}
	newTitle := "Brass lamp"
	newPrice := 25.0
	update := services.ProductUpdate{Title: &newTitle, Price: &newPrice}

	// Only the seller may edit.
	mockRepo.On("GetByID", "p1").Return(stored, nil).Once()
	_, err := service.UpdateProduct("someone-else", "p1", update)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", "p1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	updated, err := service.UpdateProduct("seller-1", "p1", update)
	require.NoError(t, err)
	assert.Equal(t, "Brass lamp", updated.Title)
	assert.InDelta(t, 25.0, updated.Price, 1e-9)
	mockRepo.AssertExpectations(t)

	// Unknown product
	mockRepo.On("GetByID", "missing").Return(nil, apperrors.ErrProductNotFound).Once()
	_, err = service.UpdateProduct("seller-1", "missing", update)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	stored := &models.Product{ID: "p1", Title: "Lamp", SellerID: "seller-1"}

	// The seller can delete their own listing.
	mockRepo.On("GetByID", "p1").Return(stored, nil).Once()
	mockRepo.On("Delete", "p1").Return(nil).Once()
	assert.NoError(t, service.DeleteProduct("seller-1", models.RoleUser, "p1"))
	mockRepo.AssertExpectations(t)

	// An admin can delete anyone's listing.
	mockRepo.On("GetByID", "p1").Return(stored, nil).Once()
	mockRepo.On("Delete", "p1").Return(nil).Once()
	assert.NoError(t, service.DeleteProduct("admin-9", models.RoleAdmin, "p1"))
	mockRepo.AssertExpectations(t)

	// Everyone else is forbidden.
	mockRepo.On("GetByID", "p1").Return(stored, nil).Once()
	err := service.DeleteProduct("someone-else", models.RoleUser, "p1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockRepo.AssertExpectations(t)
}
