package services

import (
	"fmt"

	"ecofinds/internal/apperrors"
	"ecofinds/internal/models"
	"ecofinds/internal/repositories"
)

// ProductService handles business logic related to product listings.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts retrieves unsold products matching the filter.
func (s *ProductService) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.List(filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// ListBySeller retrieves every listing of one seller, sold items included.
func (s *ProductService) ListBySeller(sellerID string) ([]models.Product, error) {
	return s.repo.ListBySeller(sellerID)
}

// CreateProduct creates a new listing owned by the given seller.
func (s *ProductService) CreateProduct(sellerID string, product *models.Product) error {
	product.SellerID = sellerID
	product.IsSold = false
	return s.repo.Create(product)
}

// ProductUpdate carries the mutable listing fields. Nil pointers mean
// "leave unchanged".
type ProductUpdate struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category" validate:"omitempty,max=50"`
	Condition   *string  `json:"condition" validate:"omitempty,oneof=new like-new good fair poor"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,max=500"`
}

// UpdateProduct applies the update to a listing. Only the seller may edit a
// product; the sold flag is never touched here.
func (s *ProductService) UpdateProduct(userID, productID string, update ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != userID {
		return nil, apperrors.ErrForbidden
	}

	if update.Title != nil {
		product.Title = *update.Title
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Condition != nil {
		product.Condition = *update.Condition
	}
	if update.ImageURL != nil {
		product.ImageURL = *update.ImageURL
	}

	if err := s.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", productID, err)
	}
	return product, nil
}

// DeleteProduct removes a listing. Allowed for the seller or an admin.
// Cart items referencing the product go with it; order history does not.
func (s *ProductService) DeleteProduct(userID, role, productID string) error {
	product, err := s.repo.GetByID(productID)
	if err != nil {
		return err
	}
	if product.SellerID != userID && role != models.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return s.repo.Delete(productID)
}
