package service

import (
	"context"

	"github.com/shopspring/decimal"

	"tndshop/internal/cart"
	"tndshop/internal/checkout"
	"tndshop/internal/model"
)

// ProductFilter narrows the public catalogue listing.
type ProductFilter struct {
	Category string // exact category match; empty means all
	Query    string // case-insensitive substring over name and description
	Sort     string // "price-asc", "price-desc" or "newest"; empty keeps catalogue order
}

// Quote is a priced view of a cart against the live catalogue.
type Quote struct {
	Lines       []cart.Line     `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
}

// ProductService defines catalogue operations, public and admin.
type ProductService interface {
	// ListPublic retrieves active products, filtered and sorted for the shop page.
	ListPublic(ctx context.Context, filter ProductFilter) ([]model.Product, error)

	// ListAdmin retrieves all products, optionally only the visible ones.
	ListAdmin(ctx context.Context, onlyVisible bool) ([]model.Product, error)

	// Upsert creates a product (empty input ID) or updates an existing one.
	Upsert(ctx context.Context, input model.ProductInput) (*model.Product, error)

	// Delete removes a product. The caller must present the product-action
	// key, which is independent of the admin key.
	Delete(ctx context.Context, id, actionKey string) error

	// AdjustStock shifts a product's stock by delta, clamped at zero.
	AdjustStock(ctx context.Context, id string, delta int) (*model.Product, error)

	// SetActive toggles a product's public visibility.
	SetActive(ctx context.Context, id string, active bool) (*model.Product, error)
}

// OrderService defines the order lifecycle: quoting, placement, listing and
// status transitions.
type OrderService interface {
	// Quote prices a cart against the live catalogue without mutating anything.
	Quote(ctx context.Context, entries []cart.Entry) (*Quote, error)

	// PlaceOrder validates the checkout form against the cart and, on
	// success, atomically snapshots a new order and decrements stock.
	PlaceOrder(ctx context.Context, entries []cart.Entry, form checkout.Form) (*model.Order, error)

	// List retrieves orders filtered by exact status and a free-text match
	// over id, customer name and phone.
	List(ctx context.Context, status, query string) ([]model.Order, error)

	// SetStatus transitions an order to a new status. Entering Cancelled
	// from another status with restock set re-increments the ordered stock.
	SetStatus(ctx context.Context, id string, status model.OrderStatus, restock bool) (*model.Order, error)

	// Stats summarises the order book for the admin dashboard.
	Stats(ctx context.Context) (*model.OrderStats, error)

	// ExportCSV renders the filtered order list as CSV.
	ExportCSV(ctx context.Context, status, query string) ([]byte, error)
}
