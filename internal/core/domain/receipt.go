package domain

// Receipt is the result of a completed purchase. It is returned to the
// buyer and never persisted. Change is the buyer's remaining deposit after
// the debit, not a coin-by-coin breakdown.
type Receipt struct {
	Total    int     `json:"total"`
	Change   int     `json:"change"`
	Product  Product `json:"product"`
	Quantity int     `json:"amount"`
}
