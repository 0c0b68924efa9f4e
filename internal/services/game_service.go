package services

import (
	"errors"
	"fmt"

	"gamestore/internal/models"
	"gamestore/internal/repositories"
)

// GameService handles business logic for the catalog.
type GameService struct {
	repo repositories.GameRepository
}

// NewGameService creates a new GameService.
func NewGameService(repo repositories.GameRepository) *GameService {
	return &GameService{
		repo: repo,
	}
}

// ListGames retrieves a page of games matching the filter, plus the total
// match count.
func (s *GameService) ListGames(filter repositories.GameFilter) ([]models.Game, int64, error) {
	return s.repo.List(filter)
}

// GetGameByID retrieves a single game by its ID.
func (s *GameService) GetGameByID(id string) (*models.Game, error) {
	game, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

// GetGameBySlug retrieves a single game by its slug.
func (s *GameService) GetGameBySlug(slug string) (*models.Game, error) {
	game, err := s.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

// ListTags returns every tag in use, sorted lexicographically.
func (s *GameService) ListTags() ([]string, error) {
	return s.repo.DistinctTags()
}

// CreateGame creates a new game, deriving the slug from the name when none
// was supplied. This is the only point where a slug is computed; renames
// never touch it.
func (s *GameService) CreateGame(game *models.Game) error {
	if game.Slug == "" {
		game.Slug = models.Slugify(game.Name)
	}
	if existing, err := s.repo.GetBySlug(game.Slug); err == nil && existing != nil {
		return fmt.Errorf("game with slug %s already exists", game.Slug)
	}
	return s.repo.Create(game)
}

// UpdateGame updates an existing game. The stored slug is preserved even if
// the name changes.
func (s *GameService) UpdateGame(game *models.Game) error {
	existing, err := s.GetGameByID(game.ID)
	if err != nil {
		return err
	}
	game.Slug = existing.Slug
	game.CreatedAt = existing.CreatedAt
	return s.repo.Update(game)
}

// DeleteGame deletes a game by its ID.
func (s *GameService) DeleteGame(id string) error {
	err := s.repo.Delete(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	return nil
}
