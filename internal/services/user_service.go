package services

import (
	"fmt"

	"ecofinds/internal/apperrors"
	"ecofinds/internal/models"
	"ecofinds/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles profile management and the user-scoped read views
// (own listings, purchase history).
type UserService struct {
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, productRepo repositories.ProductRepository, orderRepo repositories.OrderRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// GetProfile returns the user's own account record.
func (s *UserService) GetProfile(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// ProfileUpdate carries the editable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=100"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=500"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
}

// UpdateProfile applies profile changes, re-checking username uniqueness and
// re-hashing the password when one is supplied.
func (s *UserService) UpdateProfile(userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Username != nil && *update.Username != user.Username {
		if existing, err := s.userRepo.GetByUsername(*update.Username); err == nil && existing != nil {
			return nil, apperrors.ErrUsernameTaken
		}
		user.Username = *update.Username
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	if update.Password != nil && *update.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile for user %s: %w", userID, err)
	}
	return user, nil
}

// ListOwnProducts returns all of the user's listings, sold ones included.
func (s *UserService) ListOwnProducts(userID string) ([]models.Product, error) {
	return s.productRepo.ListBySeller(userID)
}

// ListPurchases returns the user's order history, newest first.
func (s *UserService) ListPurchases(userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}
