package repositories

import (
	"fmt"
	"sort"
	"strings"

	"gamestore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sortColumns maps the API sort keys to SQL order clauses. Unknown keys
// fall back to newest-first.
var sortColumns = map[string]string{
	"createdAt":  "created_at ASC",
	"-createdAt": "created_at DESC",
	"price":      "price ASC",
	"-price":     "price DESC",
	"name":       "name ASC",
	"-name":      "name DESC",
	"rating":     "rating ASC",
	"-rating":    "rating DESC",
}

// GORMGameRepository is a GORM implementation of GameRepository.
type GORMGameRepository struct {
	db *gorm.DB
}

// NewGORMGameRepository creates a new instance of GORMGameRepository.
func NewGORMGameRepository(db *gorm.DB) *GORMGameRepository {
	return &GORMGameRepository{
		db: db,
	}
}

// List retrieves a page of games matching the filter, plus the total count
// of matches across all pages.
func (r *GORMGameRepository) List(filter GameFilter) ([]models.Game, int64, error) {
	query := r.db.Model(&models.Game{})

	if filter.Tag != "" {
		// Tags are stored as a JSON array; match the quoted element.
		query = query.Where("tags LIKE ?", "%"+`"`+filter.Tag+`"`+"%")
	}
	if filter.Featured {
		query = query.Where("featured = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count games: %w", err)
	}

	order, ok := sortColumns[filter.Sort]
	if !ok {
		order = sortColumns["-createdAt"]
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 12
	}

	var games []models.Game
	err := query.Order(order).Offset((page - 1) * limit).Limit(limit).Find(&games).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list games: %w", err)
	}
	return games, total, nil
}

// GetByID retrieves a single game by its ID from the database.
func (r *GORMGameRepository) GetByID(id string) (*models.Game, error) {
	var game models.Game
	if err := r.db.First(&game, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("game with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get game by ID %s: %w", id, err)
	}
	return &game, nil
}

// GetBySlug retrieves a single game by its slug from the database.
func (r *GORMGameRepository) GetBySlug(slug string) (*models.Game, error) {
	var game models.Game
	if err := r.db.First(&game, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("game with slug %s %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get game by slug %s: %w", slug, err)
	}
	return &game, nil
}

// DistinctTags returns every tag used by any game, sorted lexicographically.
// Tags live inside a serialized JSON column, so deduplication happens here
// rather than in SQL.
func (r *GORMGameRepository) DistinctTags() ([]string, error) {
	var games []models.Game
	if err := r.db.Select("tags").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	seen := make(map[string]bool)
	tags := []string{}
	for _, g := range games {
		for _, t := range g.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// Create creates a new game in the database.
func (r *GORMGameRepository) Create(game *models.Game) error {
	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	if err := r.db.Create(game).Error; err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// Update updates an existing game in the database. An explicit Updates with
// Select("*") writes all fields, including zero values, without the upsert
// Save would perform on a missing row.
func (r *GORMGameRepository) Update(game *models.Game) error {
	res := r.db.Model(&models.Game{}).Where("id = ?", game.ID).Select("*").Updates(game)
	if res.Error != nil {
		return fmt.Errorf("failed to update game: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("game with ID %s %w for update", game.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a game by its ID from the database.
func (r *GORMGameRepository) Delete(id string) error {
	res := r.db.Delete(&models.Game{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete game: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("game with ID %s %w for deletion", id, ErrNotFound)
	}
	return nil
}
