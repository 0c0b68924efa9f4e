package services_test

import (
	"testing"
	"time"

	"gamestore/internal/models"
	"gamestore/internal/repositories"
	"gamestore/internal/services"

	"github.com/stretchr/testify/assert"
)

func newOrderFixture(t *testing.T) (*services.OrderService, *repositories.MockGameRepository, *repositories.MockOrderRepository) {
	t.Helper()

	gameRepo := repositories.NewMockGameRepository()
	orderRepo := repositories.NewMockOrderRepository()

	game := models.Game{ID: "game-a", Name: "Alpha Quest", Slug: "alpha-quest", Price: 1999, HeaderImage: "a.jpg", Link: "https://example.com/a"}
	assert.NoError(t, gameRepo.Create(&game))

	return services.NewOrderService(orderRepo, gameRepo, nil), gameRepo, orderRepo
}

func TestOrderService_PlaceOrder(t *testing.T) {
	orderService, _, _ := newOrderFixture(t)

	order, err := orderService.PlaceOrder("user-1", "game-a")
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "game-a", order.GameID)
	assert.Equal(t, int64(1999), order.PriceAtPurchase)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
}

func TestOrderService_PlaceOrderTwiceConflicts(t *testing.T) {
	orderService, _, orderRepo := newOrderFixture(t)

	_, err := orderService.PlaceOrder("user-1", "game-a")
	assert.NoError(t, err)

	_, err = orderService.PlaceOrder("user-1", "game-a")
	assert.ErrorIs(t, err, services.ErrAlreadyPurchased)

	orders, err := orderRepo.ListByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)

	// A different user is unaffected.
	_, err = orderService.PlaceOrder("user-2", "game-a")
	assert.NoError(t, err)
}

func TestOrderService_PlaceOrderCancelledDoesNotBlock(t *testing.T) {
	orderService, _, orderRepo := newOrderFixture(t)

	order, err := orderService.PlaceOrder("user-1", "game-a")
	assert.NoError(t, err)

	// A cancelled order does not count as purchased.
	assert.NoError(t, orderRepo.UpdateStatus(order.ID, models.OrderStatusCancelled))

	_, err = orderService.PlaceOrder("user-1", "game-a")
	assert.NoError(t, err)
}

func TestOrderService_PlaceOrderGameNotFound(t *testing.T) {
	orderService, _, _ := newOrderFixture(t)

	_, err := orderService.PlaceOrder("user-1", "no-such-game")
	assert.ErrorIs(t, err, services.ErrGameNotFound)
}

func TestOrderService_GetOrdersByUserNewestFirst(t *testing.T) {
	orderService, _, orderRepo := newOrderFixture(t)

	older := models.Order{ID: "o-1", UserID: "user-1", GameID: "game-a", Status: models.OrderStatusCompleted}
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := models.Order{ID: "o-2", UserID: "user-1", GameID: "game-x", Status: models.OrderStatusCompleted}
	newer.CreatedAt = time.Now()
	assert.NoError(t, orderRepo.Create(&older))
	assert.NoError(t, orderRepo.Create(&newer))

	views, err := orderService.GetOrdersByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, "o-2", views[0].ID)
	assert.Equal(t, "o-1", views[1].ID)

	// game-a still exists so its summary is expanded; game-x is gone and
	// the order is listed with a nil game.
	assert.NotNil(t, views[1].Game)
	assert.Equal(t, "Alpha Quest", views[1].Game.Name)
	assert.Nil(t, views[0].Game)
}

func TestOrderService_GetOrderForUserScoping(t *testing.T) {
	orderService, _, _ := newOrderFixture(t)

	order, err := orderService.PlaceOrder("user-1", "game-a")
	assert.NoError(t, err)

	view, err := orderService.GetOrderForUser(order.ID, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, order.ID, view.ID)

	// Another caller cannot see it.
	_, err = orderService.GetOrderForUser(order.ID, "user-2")
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	orderService, _, _ := newOrderFixture(t)

	order, err := orderService.PlaceOrder("user-1", "game-a")
	assert.NoError(t, err)

	assert.NoError(t, orderService.UpdateOrderStatus(order.ID, models.OrderStatusCancelled))

	err = orderService.UpdateOrderStatus(order.ID, "shipped")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")

	err = orderService.UpdateOrderStatus("no-such-order", models.OrderStatusCancelled)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}
