package ports

import (
	"context"

	"github.com/vendhub/vending-machine/internal/core/domain"
)

// ListProductsFilter carries query parameters for listing products.
// SellerID empty = whole catalog; non-empty = that seller's listings only.
type ListProductsFilter struct {
	SellerID string
	Page     int
	Limit    int
}

// ProductRepository defines persistence operations for catalog listings.
//
// Replace and Delete are owner-scoped: the query filters by both id and
// seller id in one shot, so a non-owner gets ErrProductNotFound without the
// repository ever revealing that the product exists (anti-enumeration).
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByName does a case-sensitive exact match on the unique product name.
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	// Replace overwrites name/cost/amount on the product owned by sellerID.
	// Returns ErrProductNotFound when the id is absent or owned by someone else.
	Replace(ctx context.Context, p *domain.Product) error
	// Delete removes the product owned by sellerID, with the same masking.
	Delete(ctx context.Context, id, sellerID string) error
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
}
