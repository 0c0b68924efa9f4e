package repositories

import (
	"gamestore/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	// GetByIDForUser fetches an order only if it belongs to the given user.
	GetByIDForUser(id, userID string) (*models.Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(userID string) ([]models.Order, error)
	// HasActiveOrder reports whether the user already holds a pending or
	// completed order for the game. Cancelled orders do not count.
	HasActiveOrder(userID, gameID string) (bool, error)
	UpdateStatus(id string, status string) error
}
