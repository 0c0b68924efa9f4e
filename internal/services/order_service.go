package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gamestore/internal/models"
	"gamestore/internal/repositories"
	"gamestore/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	gameRepo  repositories.GameRepository
	mqClient  *rabbitmq.Client // optional; nil disables event publishing
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, gameRepo repositories.GameRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		gameRepo:  gameRepo,
		mqClient:  mqClient,
	}
}

// PlaceOrder creates a completed order for one game, capturing the game's
// current price. It is idempotent per (user, game): when a pending or
// completed order already exists it returns ErrAlreadyPurchased and writes
// nothing. Both the direct-purchase endpoint and each checkout line item go
// through here.
func (s *OrderService) PlaceOrder(userID, gameID string) (*models.Order, error) {
	game, err := s.gameRepo.GetByID(gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to resolve game %s: %w", gameID, err)
	}

	exists, err := s.orderRepo.HasActiveOrder(userID, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing orders: %w", err)
	}
	if exists {
		return nil, ErrAlreadyPurchased
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		GameID:          gameID,
		PriceAtPurchase: game.Price, // Price at the time of purchase
		Status:          models.OrderStatusCompleted,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishOrderCreated(order)
	return order, nil
}

// publishOrderCreated emits an order.created event. Publishing is
// best-effort: failures are logged and never fail the purchase.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"gameID":  order.GameID,
		"price":   order.PriceAtPurchase,
		"status":  order.Status,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.mqClient.Publish("order", "order.created", body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
	}
}

// GetOrdersByUser retrieves a user's orders, newest first, each expanded
// with its game summary. Orders whose game has since been deleted keep a nil
// game and are still listed.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.OrderView, error) {
	orders, err := s.orderRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, s.expand(order))
	}
	return views, nil
}

// GetOrderForUser retrieves a single order, scoped to its owner.
func (s *OrderService) GetOrderForUser(id, userID string) (*models.OrderView, error) {
	order, err := s.orderRepo.GetByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	view := s.expand(*order)
	return &view, nil
}

func (s *OrderService) expand(order models.Order) models.OrderView {
	view := models.OrderView{Order: order}
	if game, err := s.gameRepo.GetByID(order.GameID); err == nil {
		summary := game.Summary()
		view.Game = &summary
	}
	return view
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("invalid order status: %s", status)
	}

	err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}
