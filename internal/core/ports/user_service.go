package ports

import (
	"context"

	"github.com/vendhub/vending-machine/internal/core/domain"
)

// CreateUserInput carries the fields for account sign-up.
type CreateUserInput struct {
	Username string
	Password string
	Role     domain.Role
}

// UpdateUserInput is a partial patch. Nil fields are left unchanged; a
// non-nil field is applied even when it holds the zero value, so an
// explicit deposit of 0 really clears the balance.
type UpdateUserInput struct {
	Username *string
	Password *string
	Role     *domain.Role
	Deposit  *int
}

// UserPage is one page of accounts plus the total count.
type UserPage struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService owns the account ledger: sign-up, admin CRUD, and the
// buyer-facing deposit/reset operations.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter PageFilter) (*UserPage, error)
	Update(ctx context.Context, id string, patch UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	// Deposit adds a single coin to the user's balance. The amount must be
	// an accepted denomination.
	Deposit(ctx context.Context, userID string, amount int) (*domain.User, error)
	// ResetDeposit zeroes the balance unconditionally. Idempotent.
	ResetDeposit(ctx context.Context, userID string) (*domain.User, error)
}
