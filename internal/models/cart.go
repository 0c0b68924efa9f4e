package models

import "gorm.io/gorm"

// Cart is the per-user list of games intended for purchase. The unique
// index on UserID enforces at most one cart per user.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string     `json:"userId" gorm:"uniqueIndex;type:varchar(36)"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	gorm.Model
}

// CartItem is a single line item. There is no quantity; a game is either
// in the cart or not.
type CartItem struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID string `json:"cartId" gorm:"index;type:varchar(36)"`
	GameID string `json:"gameId" gorm:"type:varchar(36)"`
	gorm.Model
}

// Contains reports whether the cart already holds a line item for the game.
func (c *Cart) Contains(gameID string) bool {
	for _, item := range c.Items {
		if item.GameID == gameID {
			return true
		}
	}
	return false
}

// CartItemView is a line item expanded with its game summary.
type CartItemView struct {
	Game GameSummary `json:"game"`
}

// CartView is the cart as returned to clients, with every line item's
// game reference expanded.
type CartView struct {
	ID     string         `json:"id"`
	UserID string         `json:"userId"`
	Items  []CartItemView `json:"items"`
}
