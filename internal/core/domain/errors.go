package domain

import "errors"

// Sentinel domain errors. The HTTP layer maps each to a status code in
// internal/api/error_handler.go; services return them unwrapped or wrapped
// with %w so errors.Is keeps working across layers.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidRole      = errors.New("role must be admin, seller or buyer")
	ErrNegativeDeposit  = errors.New("deposit cannot be negative")

	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")
	ErrInvalidCost     = errors.New("cost must be a 5, 10, 20, 50 or 100 cent coin")
	ErrInvalidStock    = errors.New("amount available must be between 1 and 20")

	ErrInvalidCoin       = errors.New("amount must be a 5, 10, 20, 50 or 100 cent coin")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("not enough products available")
	ErrInsufficientFunds = errors.New("insufficient funds, please deposit more money")
)
