// Package pricing holds the shop's money arithmetic: line totals, cart
// subtotals and the tiered delivery fee. All values are decimals in TND
// major units with 3-decimal semantics; display formatting is a
// presentation concern and lives with the clients.
package pricing

import (
	"github.com/shopspring/decimal"

	"tndshop/internal/cart"
)

// Policy computes order totals under a two-tier delivery fee: a flat fee
// below the free-shipping threshold, free at or above it, and no fee at all
// on an empty cart.
type Policy struct {
	FreeShippingThreshold decimal.Decimal
	FlatFee               decimal.Decimal
}

// NewPolicy creates a pricing policy from the configured constants.
func NewPolicy(freeShippingThreshold, flatFee decimal.Decimal) Policy {
	return Policy{
		FreeShippingThreshold: freeShippingThreshold,
		FlatFee:               flatFee,
	}
}

// LineTotal returns price * qty for a single cart line.
func LineTotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

// Subtotal sums the line totals of the materialized cart. An empty cart
// yields zero.
func Subtotal(lines []cart.Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(LineTotal(line.Product.Price, line.Quantity))
	}
	return total
}

// DeliveryFee returns the fee for a given subtotal. A zero subtotal carries
// no fee (no purchase intent yet), and the fee is waived at or above the
// free-shipping threshold.
func (p Policy) DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() {
		return decimal.Zero
	}
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatFee
}

// GrandTotal returns subtotal plus the delivery fee for that subtotal.
func (p Policy) GrandTotal(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(p.DeliveryFee(subtotal))
}
