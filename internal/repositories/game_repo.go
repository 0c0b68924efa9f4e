package repositories

import (
	"gamestore/internal/models"
)

// GameFilter narrows and pages a catalog listing.
type GameFilter struct {
	Page     int    // 1-based; values < 1 are treated as 1
	Limit    int    // items per page; values < 1 fall back to the default
	Tag      string // exact tag match when non-empty
	Featured bool   // only featured games when true
	Search   string // case-insensitive match over name, description and tags
	Sort     string // e.g. "-createdAt" (default), "price", "-rating", "name"
}

// GameRepository defines the interface for catalog data access.
type GameRepository interface {
	List(filter GameFilter) ([]models.Game, int64, error)
	GetByID(id string) (*models.Game, error)
	GetBySlug(slug string) (*models.Game, error)
	DistinctTags() ([]string, error)
	Create(game *models.Game) error
	Update(game *models.Game) error
	Delete(id string) error
}
