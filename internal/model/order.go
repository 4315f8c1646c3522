package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethodCOD is the only supported payment method.
const PaymentMethodCOD = "Cash on Delivery"

// OrderStatus is one of the four recognised order states. The values are
// case-sensitive strings; anything else is not a recognised state.
type OrderStatus string

const (
	StatusNew        OrderStatus = "New"
	StatusProcessing OrderStatus = "Processing"
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
)

// Statuses returns all recognised order statuses.
func Statuses() []OrderStatus {
	return []OrderStatus{StatusNew, StatusProcessing, StatusCompleted, StatusCancelled}
}

// IsValid reports whether s is a recognised order status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to
// another. The current policy allows any recognised status to transition to
// any other, including reopening a Completed or Cancelled order. Callers
// must go through this predicate so a stricter policy can be substituted
// without touching call sites.
func CanTransition(from, to OrderStatus) bool {
	return from.IsValid() && to.IsValid()
}

// OrderItem is a line captured at order time. It snapshots the product's
// name and price so later catalogue edits never change placed orders.
type OrderItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Qty   int             `json:"qty"`
}

// Customer holds the shipping and contact details attached to an order.
type Customer struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Governorate string `json:"governorate"`
	PostalCode  string `json:"postalCode"`
	Notes       string `json:"notes,omitempty"`
}

// Order represents a placed order. Everything except Status is immutable
// after creation; orders are never deleted.
type Order struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Items         []OrderItem     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DeliveryFee   decimal.Decimal `json:"deliveryFee"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        OrderStatus     `json:"status"`
	Customer      Customer        `json:"customer"`
}

// OrderStats summarises the order book for the admin dashboard. Revenue and
// items sold count Completed orders only.
type OrderStats struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Orders    int             `json:"orders"`
	ItemsSold int             `json:"itemsSold"`
}
