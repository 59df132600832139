package repositories

import "ecofinds/internal/models"

// ProductFilter describes the read-side query composition for the public
// listing: category/condition filters, free-text search over title and
// description, and page-based pagination.
type ProductFilter struct {
	Category  string
	Condition string
	Search    string
	Page      int
	PerPage   int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns unsold products matching the filter, newest first.
	List(filter ProductFilter) ([]models.Product, error)
	ListBySeller(sellerID string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
