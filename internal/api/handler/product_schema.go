package handler

import "time"

// productRequest is used for both create and update; update has full
// replace semantics, so all fields are required either way. Cost is
// checked against the coin policy by the service, not here.
type productRequest struct {
	ProductName     string `json:"product_name"     validate:"required,min=3,max=50"`
	Cost            int    `json:"cost"             validate:"required"`
	AmountAvailable int    `json:"amount_available" validate:"required"`
}

// buyRequest carries the purchase quantity. No validate tag: zero and
// negative quantities must surface as a domain error, not a schema error.
type buyRequest struct {
	Amount int `json:"amount"`
}

type productResponse struct {
	ID              string    `json:"id"`
	ProductName     string    `json:"product_name"`
	Cost            int       `json:"cost"`
	AmountAvailable int       `json:"amount_available"`
	SellerID        string    `json:"seller_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type listProductsResponse struct {
	Data       []productResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// receiptResponse mirrors the purchase receipt: change is the buyer's
// remaining deposit after the debit.
type receiptResponse struct {
	Total   int             `json:"total"`
	Change  int             `json:"change"`
	Product productResponse `json:"product"`
	Amount  int             `json:"amount"`
}
