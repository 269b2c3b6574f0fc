package service

import (
	"context"
	"sync"

	"github.com/vendhub/vending-machine/internal/core/domain"
	"github.com/vendhub/vending-machine/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests. They mirror the
// guarded queries the Mongo repositories run, including ownership masking
// and the $gte purchase guards.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, filter ports.PageFilter) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.User
	for _, u := range r.users {
		all = append(all, cloneUser(u))
	}
	return paginate(all, filter.Page, filter.Limit), int64(len(r.users)), nil
}

func (r *stubUserRepo) AddDeposit(_ context.Context, id string, amount int) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Deposit += amount
	return cloneUser(u), nil
}

func (r *stubUserRepo) ResetDeposit(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Deposit = 0
	return cloneUser(u), nil
}

type stubProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product // by id
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.Name == p.Name {
			return domain.ErrProductExists
		}
	}
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) FindByName(_ context.Context, name string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Name == name {
			return cloneProduct(p), nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// Replace enforces the same owner-scoped filter as the Mongo repository:
// a mismatched seller reads as not found.
func (r *stubProductRepo) Replace(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[p.ID]
	if !ok || existing.SellerID != p.SellerID {
		return domain.ErrProductNotFound
	}
	existing.Name = p.Name
	existing.Cost = p.Cost
	existing.AmountAvailable = p.AmountAvailable
	existing.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id, sellerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[id]
	if !ok || existing.SellerID != sellerID {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) List(_ context.Context, filter ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Product
	for _, p := range r.products {
		if filter.SellerID != "" && p.SellerID != filter.SellerID {
			continue
		}
		matched = append(matched, cloneProduct(p))
	}
	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

// stubPurchaseRepo applies both purchase mutations under one lock with the
// same guards the transactional Mongo implementation runs.
type stubPurchaseRepo struct {
	mu       sync.Mutex
	users    *stubUserRepo
	products *stubProductRepo
	calls    int
}

func newStubPurchaseRepo(users *stubUserRepo, products *stubProductRepo) *stubPurchaseRepo {
	return &stubPurchaseRepo{users: users, products: products}
}

func (r *stubPurchaseRepo) Execute(_ context.Context, buyerID, productID string, quantity, total int) (*domain.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	r.products.mu.Lock()
	defer r.products.mu.Unlock()

	r.calls++

	product, ok := r.products.products[productID]
	if !ok {
		return nil, 0, domain.ErrProductNotFound
	}
	if product.AmountAvailable < quantity {
		return nil, 0, domain.ErrInsufficientStock
	}

	buyer, ok := r.users.users[buyerID]
	if !ok {
		return nil, 0, domain.ErrUserNotFound
	}
	if buyer.Deposit < total {
		return nil, 0, domain.ErrInsufficientFunds
	}

	product.AmountAvailable -= quantity
	buyer.Deposit -= total
	return cloneProduct(product), buyer.Deposit, nil
}

// stubReceiptCache is an in-memory ReceiptCache.
type stubReceiptCache struct {
	mu       sync.Mutex
	receipts map[string]*domain.Receipt
}

func newStubReceiptCache() *stubReceiptCache {
	return &stubReceiptCache{receipts: make(map[string]*domain.Receipt)}
}

func (c *stubReceiptCache) Get(_ context.Context, key string) (*domain.Receipt, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.receipts[key]
	if !ok {
		return nil, false, nil
	}
	clone := *r
	return &clone, true, nil
}

func (c *stubReceiptCache) Save(_ context.Context, key string, receipt *domain.Receipt) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clone := *receipt
	c.receipts[key] = &clone
	return nil
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * limit
	if skip >= len(items) {
		return nil
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}
