package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vendhub/vending-machine/internal/core/domain"
	"github.com/vendhub/vending-machine/internal/core/ports"
)

// ProductService implements the inventory catalog.
type ProductService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

func (s *ProductService) Create(ctx context.Context, input ports.ProductInput, sellerID string) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByName(ctx, input.Name); err == nil {
		return nil, domain.ErrProductExists
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Cost:            input.Cost,
		AmountAvailable: input.AmountAvailable,
		SellerID:        sellerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", product.ID).Str("name", product.Name).Str("seller_id", sellerID).Msg("product created")
	return product, nil
}

// Update replaces name, cost and amount on a product owned by sellerID.
// A product that is absent or owned by another seller fails with
// ErrProductNotFound in both cases, so callers cannot probe for existence.
func (s *ProductService) Update(ctx context.Context, id string, input ports.ProductInput, sellerID string) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	// Resolve ownership before anything else: a non-owner must get NotFound
	// here, never a conflict that leaks another product's name.
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.SellerID != sellerID {
		return nil, domain.ErrProductNotFound
	}

	// Renaming onto a name held by a different product is a conflict.
	if existing, err := s.repo.FindByName(ctx, input.Name); err == nil {
		if existing.ID != id {
			return nil, domain.ErrProductExists
		}
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, err
	}

	product := &domain.Product{
		ID:              id,
		Name:            input.Name,
		Cost:            input.Cost,
		AmountAvailable: input.AmountAvailable,
		SellerID:        sellerID,
		UpdatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Replace(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", id).Str("seller_id", sellerID).Msg("product updated")
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id, sellerID string) error {
	if err := s.repo.Delete(ctx, id, sellerID); err != nil {
		return err
	}
	s.log.Info().Str("product_id", id).Str("seller_id", sellerID).Msg("product deleted")
	return nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, filter ports.ListProductsFilter) (*ports.ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ProductPage{
		Items:      products,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func validateProductInput(input ports.ProductInput) error {
	if input.Cost < 0 || !domain.AllowedCoin(input.Cost) {
		return domain.ErrInvalidCost
	}
	if input.AmountAvailable <= 0 || input.AmountAvailable > domain.MaxStock {
		return domain.ErrInvalidStock
	}
	return nil
}
