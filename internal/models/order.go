package models

import "gorm.io/gorm"

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is the durable receipt of a purchase of one game by one user.
// PriceAtPurchase freezes the game's price at the moment the order was
// created; later catalog price changes do not affect it.
type Order struct {
	ID              string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string `json:"userId" gorm:"index;type:varchar(36)"`
	GameID          string `json:"gameId" gorm:"index;type:varchar(36)"`
	PriceAtPurchase int64  `json:"priceAtPurchase"`
	Status          string `json:"status" gorm:"type:varchar(20)"`
	gorm.Model
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderView is an order expanded with its game summary for client responses.
type OrderView struct {
	Order
	Game *GameSummary `json:"game,omitempty"`
}
