package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vendhub/vending-machine/internal/api/metrics"
	"github.com/vendhub/vending-machine/internal/core/domain"
	"github.com/vendhub/vending-machine/internal/core/ports"
)

// ProductHandler handles catalog CRUD and the buy operation.
type ProductHandler struct {
	products  ports.ProductService
	purchases ports.PurchaseService
}

func NewProductHandler(products ports.ProductService, purchases ports.PurchaseService) *ProductHandler {
	return &ProductHandler{products: products, purchases: purchases}
}

// List handles GET /api/v1/products: any authenticated caller.
//
// @Summary      List the catalog
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listProductsResponse
// @Failure      401    {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.products.List(c.Request().Context(), ports.ListProductsFilter{Page: page, Limit: limit})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListProductsResponse(result))
}

// ListMine handles GET /api/v1/products/mine: seller only, own listings.
//
// @Summary      List own products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listProductsResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /products/mine [get]
func (h *ProductHandler) ListMine(c echo.Context) error {
	sellerID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.products.List(c.Request().Context(), ports.ListProductsFilter{
		SellerID: sellerID,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListProductsResponse(result))
}

// Get handles GET /api/v1/products/:id: any authenticated caller, no
// ownership filtering.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.products.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Create handles POST /api/v1/products: seller only; the caller becomes
// the owner.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	sellerID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.products.Create(c.Request().Context(), toProductInput(req), sellerID)
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// Update handles PUT /api/v1/products/:id: seller only, full replace.
// Someone else's product reads as 404, never 403.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product details (full replace)"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	sellerID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.products.Update(c.Request().Context(), c.Param("id"), toProductInput(req), sellerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete handles DELETE /api/v1/products/:id: seller only, same masking
// as Update.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	sellerID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.products.Delete(c.Request().Context(), c.Param("id"), sellerID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "product deleted"})
}

// Buy handles POST /api/v1/products/:id/buy: buyer only. An optional
// Idempotency-Key header makes resubmission safe.
//
// @Summary      Buy a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string      false  "Key to make resubmission safe"
// @Param        id               path      string      true   "Product id"
// @Param        body             body      buyRequest  true   "Quantity to buy"
// @Success      200              {object}  receiptResponse
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /products/{id}/buy [post]
func (h *ProductHandler) Buy(c echo.Context) error {
	buyerID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req buyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	receipt, err := h.purchases.Buy(c.Request().Context(), ports.BuyInput{
		ProductID:      c.Param("id"),
		Quantity:       req.Amount,
		BuyerID:        buyerID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		metrics.PurchasesTotal.WithLabelValues(purchaseOutcome(err)).Inc()
		return err
	}

	metrics.PurchasesTotal.WithLabelValues("completed").Inc()
	metrics.PurchaseAmountCents.Observe(float64(receipt.Total))
	return c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

func purchaseOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "out_of_stock"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrProductNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func toProductInput(req productRequest) ports.ProductInput {
	return ports.ProductInput{
		Name:            req.ProductName,
		Cost:            req.Cost,
		AmountAvailable: req.AmountAvailable,
	}
}
