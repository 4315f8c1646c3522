package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"tndshop/internal/checkout"
	"tndshop/internal/service"
)

// ProductHandler handles the public catalogue endpoints.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products with category, search and sort filters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := service.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
		Sort:     r.URL.Query().Get("sort"),
	}

	products, err := h.service.ListPublic(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Governorates handles GET /api/governorates.
func (h *ProductHandler) Governorates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, checkout.Governorates())
}
