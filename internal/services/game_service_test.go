package services_test

import (
	"testing"

	"gamestore/internal/models"
	"gamestore/internal/repositories"
	"gamestore/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestGameService_CreateGameDerivesSlug(t *testing.T) {
	repo := repositories.NewMockGameRepository()
	svc := services.NewGameService(repo)

	game := &models.Game{Name: "Hollow Knight: Silksong", Price: 1999}
	err := svc.CreateGame(game)
	assert.NoError(t, err)
	assert.Equal(t, "hollow-knight-silksong", game.Slug)

	found, err := svc.GetGameBySlug("hollow-knight-silksong")
	assert.NoError(t, err)
	assert.Equal(t, game.ID, found.ID)

	// An explicit slug wins over the derived one
	other := &models.Game{Name: "Hollow Knight", Slug: "hk-classic"}
	err = svc.CreateGame(other)
	assert.NoError(t, err)
	assert.Equal(t, "hk-classic", other.Slug)
}

func TestGameService_CreateGameRejectsDuplicateSlug(t *testing.T) {
	repo := repositories.NewMockGameRepository()
	svc := services.NewGameService(repo)

	assert.NoError(t, svc.CreateGame(&models.Game{Name: "Celeste"}))

	err := svc.CreateGame(&models.Game{Name: "Celeste"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestGameService_UpdateGamePreservesSlug(t *testing.T) {
	repo := repositories.NewMockGameRepository()
	svc := services.NewGameService(repo)

	game := &models.Game{Name: "Outer Wilds", Price: 2499}
	assert.NoError(t, svc.CreateGame(game))
	assert.Equal(t, "outer-wilds", game.Slug)

	// Rename the game; the slug must stay what it was at creation
	renamed := &models.Game{ID: game.ID, Name: "Outer Wilds: Archaeologist Edition", Price: 2999}
	assert.NoError(t, svc.UpdateGame(renamed))
	assert.Equal(t, "outer-wilds", renamed.Slug)

	found, err := svc.GetGameByID(game.ID)
	assert.NoError(t, err)
	assert.Equal(t, "outer-wilds", found.Slug)
	assert.Equal(t, "Outer Wilds: Archaeologist Edition", found.Name)
	assert.Equal(t, int64(2999), found.Price)
}

func TestGameService_UpdateMissingGame(t *testing.T) {
	repo := repositories.NewMockGameRepository()
	svc := services.NewGameService(repo)

	err := svc.UpdateGame(&models.Game{ID: "nope", Name: "Ghost"})
	assert.ErrorIs(t, err, services.ErrGameNotFound)
}

func TestGameService_GetGameNotFound(t *testing.T) {
	repo := repositories.NewMockGameRepository()
	svc := services.NewGameService(repo)

	_, err := svc.GetGameByID("missing")
	assert.ErrorIs(t, err, services.ErrGameNotFound)

	_, err = svc.GetGameBySlug("missing")
	assert.ErrorIs(t, err, services.ErrGameNotFound)

	err = svc.DeleteGame("missing")
	assert.ErrorIs(t, err, services.ErrGameNotFound)
}

func TestGameService_ListGamesFiltering(t *testing.T) {
	repo := repositories.NewMockGameRepository()
	svc := services.NewGameService(repo)

	seed := []*models.Game{
		{Name: "Hollow Knight", Price: 1499, Tags: []string{"metroidvania", "indie"}, Featured: true},
		{Name: "Celeste", Price: 1999, Tags: []string{"platformer", "indie"}, Description: "A tough mountain climb"},
		{Name: "DOOM Eternal", Price: 5999, Tags: []string{"shooter"}, Featured: true},
	}
	for _, g := range seed {
		assert.NoError(t, svc.CreateGame(g))
	}

	names := func(games []models.Game) []string {
		out := []string{}
		for _, g := range games {
			out = append(out, g.Name)
		}
		return out
	}

	games, total, err := svc.ListGames(repositories.GameFilter{Tag: "indie"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.ElementsMatch(t, []string{"Hollow Knight", "Celeste"}, names(games))

	games, total, err = svc.ListGames(repositories.GameFilter{Featured: true})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.ElementsMatch(t, []string{"Hollow Knight", "DOOM Eternal"}, names(games))

	games, _, err = svc.ListGames(repositories.GameFilter{Tag: "indie", Featured: true})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Hollow Knight"}, names(games))

	// Search is case-insensitive over name and description
	games, _, err = svc.ListGames(repositories.GameFilter{Search: "doom"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"DOOM Eternal"}, names(games))

	games, _, err = svc.ListGames(repositories.GameFilter{Search: "MOUNTAIN"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Celeste"}, names(games))

	games, _, err = svc.ListGames(repositories.GameFilter{Sort: "price"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Hollow Knight", "Celeste", "DOOM Eternal"}, names(games))

	games, _, err = svc.ListGames(repositories.GameFilter{Sort: "-price"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"DOOM Eternal", "Celeste", "Hollow Knight"}, names(games))

	// Pagination slices the sorted listing but reports the full total
	games, total, err = svc.ListGames(repositories.GameFilter{Sort: "price", Limit: 2, Page: 2})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"DOOM Eternal"}, names(games))
}

func TestGameService_ListTags(t *testing.T) {
	repo := repositories.NewMockGameRepository()
	svc := services.NewGameService(repo)

	assert.NoError(t, svc.CreateGame(&models.Game{Name: "A", Tags: []string{"rpg", "indie"}}))
	assert.NoError(t, svc.CreateGame(&models.Game{Name: "B", Tags: []string{"indie", "platformer"}}))

	tags, err := svc.ListTags()
	assert.NoError(t, err)
	assert.Equal(t, []string{"indie", "platformer", "rpg"}, tags)
}
