package services_test

import (
	"testing"

	"gamestore/internal/models"
	"gamestore/internal/repositories"
	"gamestore/internal/services"

	"github.com/stretchr/testify/assert"
)

// newCartFixture wires a cart service onto in-memory repositories with two
// seeded games.
func newCartFixture(t *testing.T) (*services.CartService, *services.OrderService, *repositories.MockGameRepository, *repositories.MockOrderRepository, *repositories.MockCartRepository) {
	t.Helper()

	gameRepo := repositories.NewMockGameRepository()
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()

	games := []models.Game{
		{ID: "game-a", Name: "Alpha Quest", Slug: "alpha-quest", Price: 1999, HeaderImage: "a.jpg", Link: "https://example.com/a"},
		{ID: "game-b", Name: "Beta Blade", Slug: "beta-blade", Price: 2999, HeaderImage: "b.jpg", Link: "https://example.com/b"},
	}
	for i := range games {
		assert.NoError(t, gameRepo.Create(&games[i]))
	}

	orderService := services.NewOrderService(orderRepo, gameRepo, nil)
	cartService := services.NewCartService(cartRepo, gameRepo, orderService)
	return cartService, orderService, gameRepo, orderRepo, cartRepo
}

func TestCartService_GetCartCreatesLazily(t *testing.T) {
	cartService, _, _, _, cartRepo := newCartFixture(t)

	// First read creates an empty cart instead of erroring.
	view, err := cartService.GetCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, "user-1", view.UserID)

	// The cart is now persisted.
	cart, err := cartRepo.GetByUser("user-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_AddItem(t *testing.T) {
	cartService, _, _, _, _ := newCartFixture(t)

	view, err := cartService.AddItem("user-1", "game-a")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "game-a", view.Items[0].Game.ID)
	assert.Equal(t, int64(1999), view.Items[0].Game.Price)

	// Adding the same game again fails and leaves the cart unchanged.
	_, err = cartService.AddItem("user-1", "game-a")
	assert.ErrorIs(t, err, services.ErrGameInCart)

	view, err = cartService.GetCart("user-1")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
}

func TestCartService_AddItemGameNotFound(t *testing.T) {
	cartService, _, _, _, cartRepo := newCartFixture(t)

	_, err := cartService.AddItem("user-1", "no-such-game")
	assert.ErrorIs(t, err, services.ErrGameNotFound)

	// No cart was created as a side effect.
	_, err = cartRepo.GetByUser("user-1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	cartService, _, _, _, _ := newCartFixture(t)

	_, err := cartService.AddItem("user-1", "game-a")
	assert.NoError(t, err)
	_, err = cartService.AddItem("user-1", "game-b")
	assert.NoError(t, err)

	view, err := cartService.RemoveItem("user-1", "game-a")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "game-b", view.Items[0].Game.ID)

	// Removing a game not in the cart is an idempotent no-op.
	view, err = cartService.RemoveItem("user-1", "game-a")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
}

func TestCartService_RemoveItemWithoutCart(t *testing.T) {
	cartService, _, _, _, _ := newCartFixture(t)

	_, err := cartService.RemoveItem("user-1", "game-a")
	assert.ErrorIs(t, err, services.ErrCartNotFound)
}

func TestCartService_CheckoutEmptyCart(t *testing.T) {
	cartService, _, _, orderRepo, _ := newCartFixture(t)

	// No cart at all.
	_, err := cartService.Checkout("user-1")
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	// Cart exists but is empty.
	_, err = cartService.GetCart("user-1")
	assert.NoError(t, err)
	_, err = cartService.Checkout("user-1")
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	orders, err := orderRepo.ListByUser("user-1")
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCartService_Checkout(t *testing.T) {
	cartService, _, _, orderRepo, _ := newCartFixture(t)

	_, err := cartService.AddItem("user-1", "game-a")
	assert.NoError(t, err)
	_, err = cartService.AddItem("user-1", "game-b")
	assert.NoError(t, err)

	orders, err := cartService.Checkout("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, order := range orders {
		assert.Equal(t, models.OrderStatusCompleted, order.Status)
		assert.Equal(t, "user-1", order.UserID)
	}

	// The cart is empty afterwards.
	view, err := cartService.GetCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, view.Items)

	stored, err := orderRepo.ListByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestCartService_CheckoutSkipsAlreadyPurchased(t *testing.T) {
	cartService, orderService, _, orderRepo, _ := newCartFixture(t)

	// The user already owns game-a.
	_, err := orderService.PlaceOrder("user-1", "game-a")
	assert.NoError(t, err)

	_, err = cartService.AddItem("user-1", "game-a")
	assert.NoError(t, err)
	_, err = cartService.AddItem("user-1", "game-b")
	assert.NoError(t, err)

	orders, err := cartService.Checkout("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "game-b", orders[0].GameID)

	// The skipped item is gone from the cart too.
	view, err := cartService.GetCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, view.Items)

	stored, err := orderRepo.ListByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestCartService_CheckoutSkipsDeletedGame(t *testing.T) {
	cartService, _, gameRepo, _, _ := newCartFixture(t)

	_, err := cartService.AddItem("user-1", "game-a")
	assert.NoError(t, err)
	_, err = cartService.AddItem("user-1", "game-b")
	assert.NoError(t, err)

	// game-a vanishes from the catalog between add and checkout.
	assert.NoError(t, gameRepo.Delete("game-a"))

	orders, err := cartService.Checkout("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "game-b", orders[0].GameID)

	view, err := cartService.GetCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartService_CheckoutCapturesPriceAtCheckoutTime(t *testing.T) {
	cartService, _, gameRepo, _, _ := newCartFixture(t)

	_, err := cartService.AddItem("user-1", "game-a")
	assert.NoError(t, err)

	// The price changes after the game was added to the cart; the order
	// carries the price at checkout time.
	game, err := gameRepo.GetByID("game-a")
	assert.NoError(t, err)
	game.Price = 4999
	assert.NoError(t, gameRepo.Update(game))

	orders, err := cartService.Checkout("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, int64(4999), orders[0].PriceAtPurchase)

	// A later price change does not touch the frozen snapshot.
	game.Price = 99
	assert.NoError(t, gameRepo.Update(game))
	assert.Equal(t, int64(4999), orders[0].PriceAtPurchase)
}

func TestCartService_CheckoutReentrantAfterPartialFailure(t *testing.T) {
	cartService, _, _, orderRepo, cartRepo := newCartFixture(t)

	_, err := cartService.AddItem("user-1", "game-a")
	assert.NoError(t, err)
	_, err = cartService.AddItem("user-1", "game-b")
	assert.NoError(t, err)

	_, err = cartService.Checkout("user-1")
	assert.NoError(t, err)

	// Simulate a crash between order creation and the cart clear: the
	// orders exist but the items are back in the stored cart.
	cart, err := cartRepo.GetByUser("user-1")
	assert.NoError(t, err)
	cart.Items = []models.CartItem{{GameID: "game-a"}, {GameID: "game-b"}}
	assert.NoError(t, cartRepo.Save(cart))

	// Re-running checkout tolerates the leftover items: no duplicate
	// orders, cart cleared, empty result.
	orders, err := cartService.Checkout("user-1")
	assert.NoError(t, err)
	assert.Empty(t, orders)

	stored, err := orderRepo.ListByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, stored, 2)

	view, err := cartService.GetCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartService_GetCartOmitsDeletedGames(t *testing.T) {
	cartService, _, gameRepo, _, _ := newCartFixture(t)

	_, err := cartService.AddItem("user-1", "game-a")
	assert.NoError(t, err)
	_, err = cartService.AddItem("user-1", "game-b")
	assert.NoError(t, err)

	assert.NoError(t, gameRepo.Delete("game-a"))

	view, err := cartService.GetCart("user-1")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "game-b", view.Items[0].Game.ID)
}
