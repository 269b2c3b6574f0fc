package ports

import (
	"context"

	"github.com/vendhub/vending-machine/internal/core/domain"
)

// PageFilter carries pagination parameters for list queries.
type PageFilter struct {
	Page  int // 1-based
	Limit int // max rows per page (capped at 100 by the service)
}

// UserRepository defines persistence operations for accounts.
//
// AddDeposit and ResetDeposit are single atomic document updates so
// concurrent deposits never lose increments; the debit side of a purchase
// lives on PurchaseRepository instead because it must commit together with
// the stock decrement.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PageFilter) ([]*domain.User, int64, error)

	// AddDeposit atomically increments the user's balance.
	AddDeposit(ctx context.Context, id string, amount int) (*domain.User, error)
	// ResetDeposit atomically sets the user's balance to zero.
	ResetDeposit(ctx context.Context, id string) (*domain.User, error)
}
