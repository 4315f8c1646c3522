// Package store persists the shop's two collections. The contract is
// deliberately coarse: read the full collection, mutate in memory, write
// the full collection back. There are no row-level updates, so backends can
// be a flat JSON file, an in-memory slice or a single database document
// without the core logic knowing the difference.
package store

import (
	"context"

	"tndshop/internal/model"
)

// Collection is the whole-collection persistence contract.
type Collection[T any] interface {
	// List returns the full collection. A collection that has never been
	// written reads as empty, not as an error.
	List(ctx context.Context) ([]T, error)

	// ReplaceAll overwrites the full collection, preserving element order.
	ReplaceAll(ctx context.Context, items []T) error
}

// ProductStore holds the product catalogue.
type ProductStore = Collection[model.Product]

// OrderStore holds the order book.
type OrderStore = Collection[model.Order]

// Collection names shared by the file and postgres backends.
const (
	ProductsCollection = "products"
	OrdersCollection   = "orders"
)
