package ports

import (
	"context"

	"github.com/vendhub/vending-machine/internal/core/domain"
)

// PurchaseRepository commits the two mutations of a purchase as one atomic
// unit: amount_available -= quantity on the product and deposit -= total on
// the buyer. Either both are durably applied or neither is.
//
// Both updates are guarded, so a concurrent purchase that would drive stock
// or balance negative aborts with ErrInsufficientStock or
// ErrInsufficientFunds instead of losing an update. ErrProductNotFound is
// returned when the product vanished between validation and commit.
type PurchaseRepository interface {
	// Execute returns the product snapshot after the decrement and the
	// buyer's remaining deposit after the debit.
	Execute(ctx context.Context, buyerID, productID string, quantity, total int) (*domain.Product, int, error)
}
