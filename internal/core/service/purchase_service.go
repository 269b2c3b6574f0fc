package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vendhub/vending-machine/internal/core/domain"
	"github.com/vendhub/vending-machine/internal/core/ports"
)

// ReceiptCache abstracts the purchase idempotency store (Redis). A buy
// replayed with the same Idempotency-Key returns the cached receipt
// instead of charging the buyer twice.
type ReceiptCache interface {
	Get(ctx context.Context, key string) (*domain.Receipt, bool, error)
	Save(ctx context.Context, key string, receipt *domain.Receipt) error
}

type purchaseService struct {
	products  ports.ProductRepository
	users     ports.UserRepository
	purchases ports.PurchaseRepository
	receipts  ReceiptCache
	log       zerolog.Logger
}

// NewPurchaseService returns the transaction orchestrator. receipts may be
// nil, in which case idempotency keys are ignored.
func NewPurchaseService(
	products ports.ProductRepository,
	users ports.UserRepository,
	purchases ports.PurchaseRepository,
	receipts ReceiptCache,
	log zerolog.Logger,
) ports.PurchaseService {
	return &purchaseService{
		products:  products,
		users:     users,
		purchases: purchases,
		receipts:  receipts,
		log:       log,
	}
}

// Buy executes a purchase in a single pass with no intermediate persisted
// state. Validation failures raise before any mutation; the stock decrement
// and balance debit commit together or not at all.
func (s *purchaseService) Buy(ctx context.Context, in ports.BuyInput) (*domain.Receipt, error) {
	// Idempotent replay: same key, same receipt, no second charge.
	if in.IdempotencyKey != "" && s.receipts != nil {
		receipt, found, err := s.receipts.Get(ctx, in.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Str("key", in.IdempotencyKey).Msg("receipt cache lookup failed, proceeding")
		} else if found {
			s.log.Info().Str("key", in.IdempotencyKey).Str("product_id", receipt.Product.ID).Msg("idempotent replay")
			return receipt, nil
		}
	}

	product, err := s.products.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Quantity > product.AmountAvailable {
		return nil, domain.ErrInsufficientStock
	}

	buyer, err := s.users.FindByID(ctx, in.BuyerID)
	if err != nil {
		return nil, err
	}

	total := product.Cost * in.Quantity
	if buyer.Deposit < total {
		return nil, domain.ErrInsufficientFunds
	}

	// Commit point: both mutations in one atomic unit. The guarded updates
	// re-check stock and funds, so a concurrent purchase that raced past the
	// reads above aborts here instead of going negative.
	updated, remaining, err := s.purchases.Execute(ctx, in.BuyerID, in.ProductID, in.Quantity, total)
	if err != nil {
		return nil, fmt.Errorf("execute purchase: %w", err)
	}

	receipt := &domain.Receipt{
		Total:    total,
		Change:   remaining,
		Product:  *updated,
		Quantity: in.Quantity,
	}

	if in.IdempotencyKey != "" && s.receipts != nil {
		if err := s.receipts.Save(ctx, in.IdempotencyKey, receipt); err != nil {
			s.log.Warn().Err(err).Str("key", in.IdempotencyKey).Msg("failed to cache receipt")
		}
	}

	s.log.Info().
		Str("buyer_id", in.BuyerID).
		Str("product_id", in.ProductID).
		Int("quantity", in.Quantity).
		Int("total", total).
		Int("change", remaining).
		Msg("purchase completed")

	return receipt, nil
}
