package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item in the shop catalogue.
// Stock is never negative; every mutation clamps at zero.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProductInput is the payload for creating or updating a product.
// An empty ID means create; a non-empty ID means update that product.
type ProductInput struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
}
