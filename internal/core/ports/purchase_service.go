package ports

import (
	"context"

	"github.com/vendhub/vending-machine/internal/core/domain"
)

// BuyInput carries everything needed to execute a purchase. IdempotencyKey
// is optional; when set, replaying the same key returns the receipt of the
// first successful purchase without charging again.
type BuyInput struct {
	ProductID      string
	Quantity       int
	BuyerID        string
	IdempotencyKey string
}

// PurchaseService orchestrates a buy: resolves the product, validates
// quantity, stock and funds, then commits the stock decrement and balance
// debit atomically. No partial purchases, no reservation semantics.
type PurchaseService interface {
	Buy(ctx context.Context, input BuyInput) (*domain.Receipt, error)
}
