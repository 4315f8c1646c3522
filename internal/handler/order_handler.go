package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"tndshop/internal/cart"
	"tndshop/internal/checkout"
	"tndshop/internal/service"
)

// OrderHandler handles cart quoting and checkout.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// QuoteRequest carries the cart entries to price.
type QuoteRequest struct {
	Items []cart.Entry `json:"items"`
}

// CheckoutRequest carries the cart entries and the customer form.
type CheckoutRequest struct {
	Items    []cart.Entry  `json:"items"`
	Customer checkout.Form `json:"customer"`
}

// CheckoutResponse confirms a placed order.
type CheckoutResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

// Quote handles POST /api/cart: it prices the submitted entries against the
// live catalogue, dropping broken references and clamped quantities the
// same way checkout will.
func (h *OrderHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	quote, err := h.service.Quote(r.Context(), req.Items)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// Create handles POST /api/orders: the cash-on-delivery checkout.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), req.Items, req.Customer)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, CheckoutResponse{Success: true, OrderID: order.ID})
}
