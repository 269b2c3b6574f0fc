package domain

import "time"

// MaxStock caps how many units a single product slot can hold.
const MaxStock = 20

// Product is a catalog listing. Name is unique across the whole catalog,
// Cost must be an allowed coin value, AmountAvailable stays in [0, MaxStock].
// SellerID is set at creation and never transferable.
type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"product_name"`
	Cost            int       `json:"cost"`
	AmountAvailable int       `json:"amount_available"`
	SellerID        string    `json:"seller_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
