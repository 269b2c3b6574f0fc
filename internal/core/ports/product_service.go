package ports

import (
	"context"

	"github.com/vendhub/vending-machine/internal/core/domain"
)

// ProductInput carries the writable product fields. Update uses full
// replace semantics: all three fields are validated and applied together.
type ProductInput struct {
	Name            string
	Cost            int
	AmountAvailable int
}

// ProductPage is one page of listings plus the total count.
type ProductPage struct {
	Items      []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductService owns the inventory catalog. Mutations are seller-scoped:
// updating or deleting someone else's product fails with
// domain.ErrProductNotFound, never ErrForbidden.
type ProductService interface {
	Create(ctx context.Context, input ProductInput, sellerID string) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput, sellerID string) (*domain.Product, error)
	Delete(ctx context.Context, id, sellerID string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ListProductsFilter) (*ProductPage, error)
}
