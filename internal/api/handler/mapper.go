package handler

import (
	"github.com/vendhub/vending-machine/internal/core/domain"
	"github.com/vendhub/vending-machine/internal/core/ports"
)

// --- Domain to HTTP response mapping ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Deposit:   u.Deposit,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:              p.ID,
		ProductName:     p.Name,
		Cost:            p.Cost,
		AmountAvailable: p.AmountAvailable,
		SellerID:        p.SellerID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toReceiptResponse(r *domain.Receipt) receiptResponse {
	return receiptResponse{
		Total:   r.Total,
		Change:  r.Change,
		Product: toProductResponse(&r.Product),
		Amount:  r.Quantity,
	}
}

func toListUsersResponse(page *ports.UserPage) listUsersResponse {
	items := make([]userResponse, 0, len(page.Items))
	for _, u := range page.Items {
		items = append(items, toUserResponse(u))
	}
	return listUsersResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
}

func toListProductsResponse(page *ports.ProductPage) listProductsResponse {
	items := make([]productResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, toProductResponse(p))
	}
	return listProductsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
}
