package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gamestore/internal/models"

	"github.com/google/uuid"
)

// MockGameRepository is an in-memory implementation of GameRepository.
type MockGameRepository struct {
	games map[string]models.Game
	mu    sync.RWMutex
}

// NewMockGameRepository creates a new instance of MockGameRepository.
func NewMockGameRepository() *MockGameRepository {
	return &MockGameRepository{
		games: make(map[string]models.Game),
	}
}

func matchesFilter(g models.Game, filter GameFilter) bool {
	if filter.Featured && !g.Featured {
		return false
	}
	if filter.Tag != "" {
		found := false
		for _, t := range g.Tags {
			if t == filter.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		haystack := strings.ToLower(g.Name + " " + g.Description + " " + strings.Join(g.Tags, " "))
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

// List returns a page of games matching the filter.
func (r *MockGameRepository) List(filter GameFilter) ([]models.Game, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []models.Game{}
	for _, g := range r.games {
		if matchesFilter(g, filter) {
			matched = append(matched, g)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch filter.Sort {
		case "createdAt":
			return a.CreatedAt.Before(b.CreatedAt)
		case "price":
			return a.Price < b.Price
		case "-price":
			return a.Price > b.Price
		case "name":
			return a.Name < b.Name
		case "-name":
			return a.Name > b.Name
		case "rating":
			return a.Rating < b.Rating
		case "-rating":
			return a.Rating > b.Rating
		default: // "-createdAt"
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	total := int64(len(matched))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 12
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return []models.Game{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// GetByID returns a game by its ID.
func (r *MockGameRepository) GetByID(id string) (*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("game with ID %s %w", id, ErrNotFound)
	}
	return &game, nil
}

// GetBySlug returns a game by its slug.
func (r *MockGameRepository) GetBySlug(slug string) (*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.games {
		if g.Slug == slug {
			game := g
			return &game, nil
		}
	}
	return nil, fmt.Errorf("game with slug %s %w", slug, ErrNotFound)
}

// DistinctTags returns every tag in use, sorted.
func (r *MockGameRepository) DistinctTags() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	tags := []string{}
	for _, g := range r.games {
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

// Create adds a new game.
func (r *MockGameRepository) Create(game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	if game.CreatedAt.IsZero() {
		game.CreatedAt = time.Now()
	}
	r.games[game.ID] = *game
	return nil
}

// Update modifies an existing game.
func (r *MockGameRepository) Update(game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.games[game.ID]
	if !ok {
		return fmt.Errorf("game with ID %s %w for update", game.ID, ErrNotFound)
	}
	r.games[game.ID] = *game
	return nil
}

// Delete removes a game by its ID.
func (r *MockGameRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.games[id]
	if !ok {
		return fmt.Errorf("game with ID %s %w for deletion", id, ErrNotFound)
	}
	delete(r.games, id)
	return nil
}
