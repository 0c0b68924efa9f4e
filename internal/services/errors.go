package services

import "errors"

// Business errors surfaced by the services. Handlers classify them with
// errors.Is to pick the HTTP status; the messages are client-facing.
var (
	ErrGameNotFound  = errors.New("Game not found")
	ErrCartNotFound  = errors.New("Cart not found")
	ErrOrderNotFound = errors.New("Order not found")
	ErrUserNotFound  = errors.New("User not found")

	ErrGameInCart       = errors.New("Game already in cart")
	ErrAlreadyPurchased = errors.New("You have already purchased this game")
	ErrEmptyCart        = errors.New("Cart is empty")

	ErrEmailTaken         = errors.New("Email has already been used.")
	ErrUsernameTaken      = errors.New("Username has already been used.")
	ErrInvalidCredentials = errors.New("Email or password is incorrect")
)
