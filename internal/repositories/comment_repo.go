package repositories

import (
	"gamestore/internal/models"
)

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	// ListByGame returns a game's comments, newest first.
	ListByGame(gameID string) ([]models.Comment, error)
	Create(comment *models.Comment) error
}
