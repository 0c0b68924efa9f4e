package models

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Game represents a game in the store catalog.
// Price is an integer in the smallest unit of the store currency.
type Game struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string     `json:"name" gorm:"uniqueIndex;type:varchar(200)" validate:"required,min=1,max=200"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;type:varchar(200)"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Link        string     `json:"link" validate:"required,url"`
	HeaderImage string     `json:"headerImage" validate:"required"`
	Images      []string   `json:"images" gorm:"serializer:json" validate:"max=10"`
	Tags        []string   `json:"tags" gorm:"serializer:json"`
	Featured    bool       `json:"featured"`
	ReleaseDate *time.Time `json:"releaseDate"`
	Rating      float64    `json:"rating" validate:"gte=0,lte=5"`
	Details     string     `json:"details"`
	Price       int64      `json:"price" validate:"gte=0"`
	gorm.Model  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugEdgeHyphens  = regexp.MustCompile(`(^-|-$)`)
)

// Slugify derives a URL-safe identifier from a game name: lowercase,
// non-alphanumeric runs collapsed to hyphens, edge hyphens trimmed.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	return slugEdgeHyphens.ReplaceAllString(slug, "")
}

// GameSummary is the display-ready subset of a game embedded in cart
// and order responses.
type GameSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Price       int64  `json:"price"`
	HeaderImage string `json:"headerImage"`
}

// Summary returns the display-ready subset of the game.
func (g *Game) Summary() GameSummary {
	return GameSummary{
		ID:          g.ID,
		Name:        g.Name,
		Slug:        g.Slug,
		Price:       g.Price,
		HeaderImage: g.HeaderImage,
	}
}
