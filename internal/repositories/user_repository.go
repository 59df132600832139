package repositories

import "ecofinds/internal/models"

// UserRepository defines the interface for user and role data access.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetRoleByName(name string) (*models.Role, error)
}
