// Package apperrors defines the domain error taxonomy shared by services and
// handlers. Services return these values (possibly wrapped with %w) and
// handlers map them to HTTP status codes with errors.Is / errors.As, so no
// layer has to match on error strings.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")

	// ErrForbidden signals an ownership or role violation.
	ErrForbidden = errors.New("permission denied")

	ErrProductSold       = errors.New("product is no longer available")
	ErrDuplicateCartItem = errors.New("product is already in your cart")
	ErrSelfPurchase      = errors.New("you cannot add your own products to cart")
	ErrEmptyCart         = errors.New("your cart is empty")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)

// ProductsUnavailableError reports which products blocked a checkout. It is
// returned both by the precondition check and by the commit-time sold-flag
// guard, so the caller always learns the offending product IDs.
type ProductsUnavailableError struct {
	ProductIDs []string
}

func (e *ProductsUnavailableError) Error() string {
	return fmt.Sprintf("products no longer available: %s", strings.Join(e.ProductIDs, ", "))
}
