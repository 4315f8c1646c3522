// Package cart implements the shopping cart: a small ordered list of
// (product id, quantity) references that only becomes priced line items
// when materialized against the live catalogue.
package cart

import "tndshop/internal/model"

// Entry is a cart reference to a product. Quantity is always positive; an
// entry whose quantity would drop to zero is removed rather than stored.
type Entry struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"qty"`
}

// Line is a cart entry materialized against the catalogue: the live product
// plus the quantity held in the cart.
type Line struct {
	Product  model.Product `json:"product"`
	Quantity int           `json:"qty"`
}

// Add merges qty of the given product into the entries, clamping the
// resulting quantity to the product's stock. Adding an inactive or
// out-of-stock product is a no-op. At most one entry exists per product.
func Add(entries []Entry, product model.Product, qty int) []Entry {
	if !product.Active || product.Stock <= 0 {
		return entries
	}
	if qty < 1 {
		qty = 1
	}
	for i, e := range entries {
		if e.ProductID == product.ID {
			entries[i].Quantity = clamp(e.Quantity+qty, product.Stock)
			return entries
		}
	}
	return append(entries, Entry{ProductID: product.ID, Quantity: clamp(qty, product.Stock)})
}

// SetQuantity sets the quantity of an existing entry, clamped to
// [0, product.Stock]. A resulting quantity of zero removes the entry.
// Products absent from the cart are left alone.
func SetQuantity(entries []Entry, product model.Product, qty int) []Entry {
	for i, e := range entries {
		if e.ProductID != product.ID {
			continue
		}
		v := clamp(qty, product.Stock)
		if v <= 0 {
			return append(entries[:i], entries[i+1:]...)
		}
		entries[i].Quantity = v
		return entries
	}
	return entries
}

// Remove deletes the entry for the given product id, if present.
func Remove(entries []Entry, productID string) []Entry {
	for i, e := range entries {
		if e.ProductID == productID {
			return append(entries[:i], entries[i+1:]...)
		}
	}
	return entries
}

// Count returns the total quantity across all entries.
func Count(entries []Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Quantity
	}
	return n
}

// Materialize resolves entries against the catalogue, producing one line
// per entry in cart insertion order. Entries whose product no longer exists
// are dropped, not errored; entries with non-positive quantities are
// dropped as well.
func Materialize(products []model.Product, entries []Entry) []Line {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]Line, 0, len(entries))
	for _, e := range entries {
		if e.Quantity <= 0 {
			continue
		}
		p, ok := byID[e.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, Line{Product: p, Quantity: e.Quantity})
	}
	return lines
}

func clamp(qty, stock int) int {
	if stock < 0 {
		stock = 0
	}
	if qty < 0 {
		qty = 0
	}
	if qty > stock {
		return stock
	}
	return qty
}
