package repositories

import (
	"gamestore/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// GetByUser fetches the user's cart with its line items. Returns an
	// error when the user has no cart yet.
	GetByUser(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	// Save persists the cart and its current line items as a whole,
	// replacing any previously stored items.
	Save(cart *models.Cart) error
}
