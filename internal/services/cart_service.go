package services

import (
	"errors"
	"fmt"

	"gamestore/internal/models"
	"gamestore/internal/repositories"
)

// CartService owns the per-user cart and its transition into orders.
//
// Per (user, game) the states are: absent -> in-cart -> purchased, with an
// explicit removal path back from in-cart to absent. Purchased is terminal.
type CartService struct {
	cartRepo     repositories.CartRepository
	gameRepo     repositories.GameRepository
	orderService *OrderService
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, gameRepo repositories.GameRepository, orderService *OrderService) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		gameRepo:     gameRepo,
		orderService: orderService,
	}
}

// GetCart returns the user's cart with every line item expanded into a
// display-ready game summary, creating an empty cart on first read. Safe to
// call before anything was added.
func (s *CartService) GetCart(userID string) (*models.CartView, error) {
	cart, err := s.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return s.expand(cart), nil
}

// AddItem appends a game to the user's cart. The game must exist, and a
// game already in the cart is rejected without mutating anything.
func (s *CartService) AddItem(userID, gameID string) (*models.CartView, error) {
	if _, err := s.gameRepo.GetByID(gameID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to resolve game %s: %w", gameID, err)
	}

	cart, err := s.getOrCreate(userID)
	if err != nil {
		return nil, err
	}

	if cart.Contains(gameID) {
		return nil, ErrGameInCart
	}

	cart.Items = append(cart.Items, models.CartItem{GameID: gameID})
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return s.expand(cart), nil
}

// RemoveItem removes a game from the user's cart. Removing a game that is
// not in the cart succeeds and changes nothing; a user without a cart gets
// a not-found error.
func (s *CartService) RemoveItem(userID, gameID string) (*models.CartView, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.GameID != gameID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return s.expand(cart), nil
}

// Checkout converts every eligible line item into a completed order and
// clears the cart. Items whose game was deleted are skipped silently, as are
// items the user already holds an active order for; both still leave the
// cart. Returns only the orders created by this call, which may be none.
//
// Orders and the cart clear are separate writes. If the process dies in
// between, re-running checkout is safe: the existing-order check inside
// PlaceOrder refuses to duplicate anything already purchased.
func (s *CartService) Checkout(userID string) ([]models.Order, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	orders := []models.Order{}
	for _, item := range cart.Items {
		order, err := s.orderService.PlaceOrder(userID, item.GameID)
		if err != nil {
			if errors.Is(err, ErrGameNotFound) || errors.Is(err, ErrAlreadyPurchased) {
				continue
			}
			return nil, fmt.Errorf("checkout failed on game %s: %w", item.GameID, err)
		}
		orders = append(orders, *order)
	}

	cart.Items = []models.CartItem{}
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return orders, nil
}

// getOrCreate implements the lazy-create-on-read cart: the caller always
// gets an owned, possibly empty cart, never a nil.
func (s *CartService) getOrCreate(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// expand resolves each line item's game into a summary. Items whose game no
// longer exists are omitted from the view.
func (s *CartService) expand(cart *models.Cart) *models.CartView {
	view := &models.CartView{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  []models.CartItemView{},
	}
	for _, item := range cart.Items {
		game, err := s.gameRepo.GetByID(item.GameID)
		if err != nil {
			continue
		}
		view.Items = append(view.Items, models.CartItemView{Game: game.Summary()})
	}
	return view
}
